package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	assetMocks "github.com/x-xyz/market/domain/asset/mocks"
	"github.com/x-xyz/market/domain/event"
	eventMocks "github.com/x-xyz/market/domain/event/mocks"
	"github.com/x-xyz/market/domain/listing"
	listingMocks "github.com/x-xyz/market/domain/listing/mocks"
	"github.com/x-xyz/market/service/ledger"
	"github.com/x-xyz/market/stores/listing/repository"
)

var (
	mockCtx = ctx.Background()
	now     = time.Unix(1660000000, 0).UTC()
	seller  = domain.Address("0x00000000000000000000000000000000000000a1")
	nft     = domain.Address("0x00000000000000000000000000000000000000f1")
)

type listingSuite struct {
	suite.Suite

	custody *assetMocks.Custody
	events  *eventMocks.UseCase
	repo    listing.Repo
	im      listing.UseCase
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupTest() {
	s.custody = &assetMocks.Custody{}
	s.events = &eventMocks.UseCase{}
	s.repo = repository.NewMemoryRepo("black")
	s.im = New(&ListingUseCaseCfg{
		Repo:    s.repo,
		Custody: s.custody,
		Ledger:  ledger.New("black"),
		Events:  s.events,
		Clock:   func() time.Time { return now },
	})
	s.custody.On("KindOf", mock.Anything, nft).Return(asset.KindUnique, nil).Maybe()
}

func (s *listingSuite) TearDownTest() {
	s.custody.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func ref(id int64) asset.Ref {
	return asset.Ref{Kind: asset.KindUnique, Contract: nft, Id: big.NewInt(id), Quantity: big.NewInt(1)}
}

func params(id, price int64) listing.CreateParams {
	return listing.CreateParams{
		AssetContract: nft,
		AssetId:       big.NewInt(id),
		Quantity:      big.NewInt(1),
		Price:         big.NewInt(price),
	}
}

func (s *listingSuite) TestCreate() {
	s.custody.On("Authorize", mock.Anything, ref(7), seller).Return(nil).Once()
	s.custody.On("TakeCustody", mock.Anything, ref(7), seller).Return(nil).Once()
	s.events.On("Emit", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeListingCreated && *e.SaleId == 0 && e.IsUnique() && e.Amount == "30"
	})).Return(nil).Once()

	id, err := s.im.Create(mockCtx, seller, params(7, 30))
	s.NoError(err)
	s.Equal(uint64(0), id)

	l, err := s.im.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(listing.StatusActive, l.Status)
	s.Equal(now, l.ActiveFrom)
	s.Equal(big.NewInt(30), l.Price)
}

func (s *listingSuite) TestCreateUniqueFixesQuantity() {
	for i, q := range []*big.Int{big.NewInt(3), nil} {
		id := int64(10 + i)
		s.custody.On("Authorize", mock.Anything, ref(id), seller).Return(nil).Once()
		s.custody.On("TakeCustody", mock.Anything, ref(id), seller).Return(nil).Once()
		s.events.On("Emit", mock.Anything, mock.Anything).Return(nil).Once()

		p := params(id, 30)
		p.Quantity = q
		saleId, err := s.im.Create(mockCtx, seller, p)
		s.Require().NoError(err)

		l, err := s.im.Get(mockCtx, saleId)
		s.NoError(err)
		s.Equal(big.NewInt(1), l.Quantity)
	}
}

func (s *listingSuite) TestCreateSequenceFailure() {
	repo := &listingMocks.Repo{}
	defer repo.AssertExpectations(s.T())
	im := New(&ListingUseCaseCfg{
		Repo:    repo,
		Custody: s.custody,
		Ledger:  ledger.New("black"),
		Events:  s.events,
		Clock:   func() time.Time { return now },
	})
	boom := errors.New("sequence unavailable")
	s.custody.On("Authorize", mock.Anything, ref(7), seller).Return(nil).Once()
	repo.On("NextId", mock.Anything).Return(uint64(0), boom).Once()

	_, err := im.Create(mockCtx, seller, params(7, 30))
	s.ErrorIs(err, boom)
	s.custody.AssertNotCalled(s.T(), "TakeCustody", mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingSuite) TestCreateRejectsZeroPrice() {
	_, err := s.im.Create(mockCtx, seller, params(7, 0))
	s.Equal(domain.ErrInvalidPrice, err)
}

func (s *listingSuite) TestCreateUnauthorizedLeavesNoTrace() {
	s.custody.On("Authorize", mock.Anything, ref(7), seller).Return(domain.ErrCustodyNotAuthorized).Once()

	_, err := s.im.Create(mockCtx, seller, params(7, 30))
	s.Equal(domain.ErrCustodyNotAuthorized, err)

	res, err := s.im.FindAll(mockCtx)
	s.NoError(err)
	s.Empty(res)
}

func (s *listingSuite) TestCreateBulk() {
	for _, id := range []int64{1, 2} {
		s.custody.On("Authorize", mock.Anything, ref(id), seller).Return(nil).Once()
		s.custody.On("TakeCustody", mock.Anything, ref(id), seller).Return(nil).Once()
	}
	s.events.On("Emit", mock.Anything, mock.Anything).Return(nil).Twice()

	ids, err := s.im.CreateBulk(mockCtx, seller, listing.BulkCreateParams{
		AssetContract: nft,
		AssetIds:      []*big.Int{big.NewInt(1), big.NewInt(2)},
		Quantities:    []*big.Int{big.NewInt(1), big.NewInt(1)},
		Prices:        []*big.Int{big.NewInt(10), big.NewInt(20)},
		ActiveFroms:   []time.Time{now, now.Add(time.Hour)},
	})
	s.NoError(err)
	s.Equal([]uint64{0, 1}, ids)
}

func (s *listingSuite) TestCreateBulkLengthMismatch() {
	_, err := s.im.CreateBulk(mockCtx, seller, listing.BulkCreateParams{
		AssetContract: nft,
		AssetIds:      []*big.Int{big.NewInt(1), big.NewInt(2)},
		Quantities:    []*big.Int{big.NewInt(1)},
		Prices:        []*big.Int{big.NewInt(10), big.NewInt(20)},
		ActiveFroms:   []time.Time{now, now},
	})
	s.Equal(domain.ErrLengthMismatch, err)
}

func (s *listingSuite) TestCreateBulkIsAllOrNothing() {
	s.custody.On("Authorize", mock.Anything, ref(1), seller).Return(nil).Once()
	s.custody.On("TakeCustody", mock.Anything, ref(1), seller).Return(nil).Once()
	s.events.On("Emit", mock.Anything, mock.Anything).Return(nil).Once()
	s.custody.On("Authorize", mock.Anything, ref(2), seller).Return(domain.ErrNotAssetOwner).Once()

	_, err := s.im.CreateBulk(mockCtx, seller, listing.BulkCreateParams{
		AssetContract: nft,
		AssetIds:      []*big.Int{big.NewInt(1), big.NewInt(2)},
		Quantities:    []*big.Int{big.NewInt(1), big.NewInt(1)},
		Prices:        []*big.Int{big.NewInt(10), big.NewInt(20)},
		ActiveFroms:   []time.Time{now, now},
	})
	s.Equal(domain.ErrNotAssetOwner, err)

	res, err := s.im.FindAll(mockCtx)
	s.NoError(err)
	s.Empty(res)

	// the reverted batch gave its id back
	s.custody.On("Authorize", mock.Anything, ref(3), seller).Return(nil).Once()
	s.custody.On("TakeCustody", mock.Anything, ref(3), seller).Return(nil).Once()
	s.events.On("Emit", mock.Anything, mock.Anything).Return(nil).Once()
	id, err := s.im.Create(mockCtx, seller, params(3, 10))
	s.NoError(err)
	s.Equal(uint64(0), id)
}

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
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
	auctionMocks "github.com/x-xyz/market/domain/auction/mocks"
	eventMocks "github.com/x-xyz/market/domain/event/mocks"
	"github.com/x-xyz/market/service/ledger"
	"github.com/x-xyz/market/stores/auction/repository"
)

var (
	mockCtx = ctx.Background()
	now     = time.Unix(1660000000, 0).UTC()
	seller  = domain.Address("0x00000000000000000000000000000000000000a1")
	multi   = domain.Address("0x00000000000000000000000000000000000000f2")
)

type auctionSuite struct {
	suite.Suite

	custody *assetMocks.Custody
	events  *eventMocks.UseCase
	im      auction.UseCase
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.custody = &assetMocks.Custody{}
	s.events = &eventMocks.UseCase{}
	s.im = New(&AuctionUseCaseCfg{
		Repo:    repository.NewMemoryRepo("game"),
		Custody: s.custody,
		Ledger:  ledger.New("game"),
		Events:  s.events,
		Clock:   func() time.Time { return now },
	})
	s.custody.On("KindOf", mock.Anything, multi).Return(asset.KindCountable, nil).Maybe()
}

func (s *auctionSuite) TearDownTest() {
	s.custody.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func countable(id, qty int64) asset.Ref {
	return asset.Ref{Kind: asset.KindCountable, Contract: multi, Id: big.NewInt(id), Quantity: big.NewInt(qty)}
}

func (s *auctionSuite) TestCreate() {
	s.custody.On("Authorize", mock.Anything, countable(3, 5), seller).Return(nil).Once()
	s.custody.On("TakeCustody", mock.Anything, countable(3, 5), seller).Return(nil).Once()
	s.events.On("Emit", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeAuctionCreated && !e.IsUnique() && e.Quantity == "5" && e.Data["duration"] == "3600"
	})).Return(nil).Once()

	id, err := s.im.Create(mockCtx, seller, auction.CreateParams{
		AssetContract: multi,
		AssetId:       big.NewInt(3),
		Quantity:      big.NewInt(5),
		ReservePrice:  big.NewInt(20),
		StartTime:     now.Add(time.Minute),
		Duration:      time.Hour,
	})
	s.NoError(err)

	a, err := s.im.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(auction.StatusActive, a.Status)
	s.False(a.HasBid())
	s.Equal(0, a.HighestBid.Sign())
	s.Equal(now.Add(time.Minute+time.Hour), a.EndTime())
	s.False(a.IsOpen(now))
}

func (s *auctionSuite) TestCreateValidation() {
	p := auction.CreateParams{
		AssetContract: multi,
		AssetId:       big.NewInt(3),
		Quantity:      big.NewInt(5),
		ReservePrice:  big.NewInt(20),
	}
	_, err := s.im.Create(mockCtx, seller, p)
	s.Equal(domain.ErrBadParamInput, err)

	p.Duration = time.Hour
	p.ReservePrice = big.NewInt(-1)
	_, err = s.im.Create(mockCtx, seller, p)
	s.Equal(domain.ErrInvalidPrice, err)
}

func (s *auctionSuite) TestCreateBulkLengthMismatch() {
	_, err := s.im.CreateBulk(mockCtx, seller, auction.BulkCreateParams{
		AssetContract: multi,
		AssetIds:      []*big.Int{big.NewInt(1)},
		Quantities:    []*big.Int{big.NewInt(1)},
		ReservePrices: []*big.Int{big.NewInt(1)},
		StartTimes:    []time.Time{now},
		Durations:     []time.Duration{},
	})
	s.Equal(domain.ErrLengthMismatch, err)
}

func (s *auctionSuite) TestCreateBulk() {
	for _, id := range []int64{1, 2} {
		s.custody.On("Authorize", mock.Anything, countable(id, 2), seller).Return(nil).Once()
		s.custody.On("TakeCustody", mock.Anything, countable(id, 2), seller).Return(nil).Once()
	}
	s.events.On("Emit", mock.Anything, mock.Anything).Return(nil).Twice()

	ids, err := s.im.CreateBulk(mockCtx, seller, auction.BulkCreateParams{
		AssetContract: multi,
		AssetIds:      []*big.Int{big.NewInt(1), big.NewInt(2)},
		Quantities:    []*big.Int{big.NewInt(2), big.NewInt(2)},
		ReservePrices: []*big.Int{big.NewInt(0), big.NewInt(5)},
		StartTimes:    []time.Time{now, now},
		Durations:     []time.Duration{time.Hour, 2 * time.Hour},
	})
	s.NoError(err)
	s.Equal([]uint64{0, 1}, ids)

	res, err := s.im.FindAll(mockCtx, auction.WithStatus(auction.StatusActive))
	s.NoError(err)
	s.Len(res, 2)
}

func (s *auctionSuite) TestCreateSequenceFailure() {
	repo := &auctionMocks.Repo{}
	defer repo.AssertExpectations(s.T())
	im := New(&AuctionUseCaseCfg{
		Repo:    repo,
		Custody: s.custody,
		Ledger:  ledger.New("game"),
		Events:  s.events,
		Clock:   func() time.Time { return now },
	})
	boom := errors.New("sequence unavailable")
	s.custody.On("Authorize", mock.Anything, countable(3, 1), seller).Return(nil).Once()
	repo.On("NextId", mock.Anything).Return(uint64(0), boom).Once()

	_, err := im.Create(mockCtx, seller, auction.CreateParams{
		AssetContract: multi,
		AssetId:       big.NewInt(3),
		Quantity:      big.NewInt(1),
		ReservePrice:  big.NewInt(1),
		Duration:      time.Hour,
	})
	s.ErrorIs(err, boom)
	s.custody.AssertNotCalled(s.T(), "TakeCustody", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestCreateUniqueFixesQuantity() {
	nft := domain.Address("0x00000000000000000000000000000000000000f1")
	unique := asset.Ref{Kind: asset.KindUnique, Contract: nft, Id: big.NewInt(9), Quantity: big.NewInt(1)}
	s.custody.On("KindOf", mock.Anything, nft).Return(asset.KindUnique, nil).Once()
	s.custody.On("Authorize", mock.Anything, unique, seller).Return(nil).Once()
	s.custody.On("TakeCustody", mock.Anything, unique, seller).Return(nil).Once()
	s.events.On("Emit", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeAuctionCreated && e.IsUnique() && e.Quantity == "1"
	})).Return(nil).Once()

	id, err := s.im.Create(mockCtx, seller, auction.CreateParams{
		AssetContract: nft,
		AssetId:       big.NewInt(9),
		Quantity:      big.NewInt(4),
		ReservePrice:  big.NewInt(20),
		Duration:      time.Hour,
	})
	s.Require().NoError(err)

	a, err := s.im.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(big.NewInt(1), a.Quantity)
}

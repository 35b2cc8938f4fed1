package repository

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/service/query"
	queryMocks "github.com/x-xyz/market/service/query/mocks"
)

var (
	mockCtx = ctx.Background()
	seller  = domain.Address("0x00000000000000000000000000000000000000a1")
	buyer   = domain.Address("0x00000000000000000000000000000000000000b1")
	nft     = domain.Address("0x00000000000000000000000000000000000000f1")
	created = time.Unix(1660000000, 0).UTC()
)

func newListing(id uint64, assetId int64) *listing.Listing {
	return &listing.Listing{
		Id:            id,
		Seller:        seller,
		AssetContract: nft,
		AssetId:       big.NewInt(assetId),
		Quantity:      big.NewInt(1),
		Kind:          asset.KindUnique,
		Price:         big.NewInt(30),
		ActiveFrom:    created,
		Status:        listing.StatusActive,
		CreatedAt:     created,
	}
}

type memorySuite struct {
	suite.Suite
	repo listing.Repo
}

func (s *memorySuite) SetupTest() {
	s.repo = NewMemoryRepo("official")
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (s *memorySuite) TestNextIdRevert() {
	j := journal.New()
	c := journal.With(mockCtx, j)
	id, err := s.repo.NextId(c)
	s.NoError(err)
	s.Equal(uint64(0), id)
	id, err = s.repo.NextId(c)
	s.NoError(err)
	s.Equal(uint64(1), id)

	j.Revert()
	id, err = s.repo.NextId(mockCtx)
	s.NoError(err)
	s.Equal(uint64(0), id)
}

func (s *memorySuite) TestInsertFindPatch() {
	s.NoError(s.repo.Insert(mockCtx, newListing(0, 7)))

	l, err := s.repo.FindOne(mockCtx, 0)
	s.NoError(err)
	s.Equal("official", l.Market)
	s.Equal(big.NewInt(7), l.AssetId)

	// callers cannot alias stored amounts
	l.Price.SetInt64(1)
	again, err := s.repo.FindOne(mockCtx, 0)
	s.NoError(err)
	s.Equal(big.NewInt(30), again.Price)

	_, err = s.repo.FindOne(mockCtx, 9)
	s.Equal(domain.ErrNotFound, err)

	j := journal.New()
	sold := listing.StatusSold
	s.NoError(s.repo.Patch(journal.With(mockCtx, j), 0, &listing.PatchableListing{Status: &sold, Buyer: &buyer}))
	l, err = s.repo.FindOne(mockCtx, 0)
	s.NoError(err)
	s.Equal(listing.StatusSold, l.Status)
	s.Equal(buyer, l.Buyer)

	j.Revert()
	l, err = s.repo.FindOne(mockCtx, 0)
	s.NoError(err)
	s.Equal(listing.StatusActive, l.Status)
	s.True(l.Buyer.IsEmpty())

	s.Equal(domain.ErrNotFound, s.repo.Patch(mockCtx, 9, &listing.PatchableListing{Status: &sold}))
}

func (s *memorySuite) TestFindAll() {
	for i := 0; i < 5; i++ {
		s.NoError(s.repo.Insert(mockCtx, newListing(uint64(i), int64(i%2))))
	}
	sold := listing.StatusSold
	s.NoError(s.repo.Patch(mockCtx, 3, &listing.PatchableListing{Status: &sold}))

	all, err := s.repo.FindAll(mockCtx)
	s.NoError(err)
	s.Len(all, 5)
	for i, l := range all {
		s.Equal(uint64(i), l.Id)
	}

	active, err := s.repo.FindAll(mockCtx, listing.WithStatus(listing.StatusActive))
	s.NoError(err)
	s.Len(active, 4)

	odd, err := s.repo.FindAll(mockCtx, listing.WithAsset(nft, big.NewInt(1)))
	s.NoError(err)
	s.Len(odd, 2)

	page, err := s.repo.FindAll(mockCtx, listing.WithPagination(1, 2))
	s.NoError(err)
	s.Len(page, 2)
	s.Equal(uint64(1), page[0].Id)

	none, err := s.repo.FindAll(mockCtx, listing.WithSeller(buyer))
	s.NoError(err)
	s.Empty(none)
}

type mongoSuite struct {
	suite.Suite
	q    *queryMocks.Mongo
	repo listing.Repo
}

func (s *mongoSuite) SetupTest() {
	s.q = &queryMocks.Mongo{}
	s.repo = NewMongoRepo(s.q, "game")
}

func (s *mongoSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func TestMongoSuite(t *testing.T) {
	suite.Run(t, new(mongoSuite))
}

func (s *mongoSuite) TestNextIdCompensates() {
	sel := bson.M{"_id": "listings:game"}
	s.q.On("Increment", mock.Anything, domain.TableSequences, sel, mock.Anything, "value", 1).
		Run(func(args mock.Arguments) {
			args.Get(3).(*query.Sequence).Value = 5
		}).Return(nil).Once()

	j := journal.New()
	id, err := s.repo.NextId(journal.With(mockCtx, j))
	s.NoError(err)
	s.Equal(uint64(4), id)

	s.q.On("Increment", mock.Anything, domain.TableSequences, sel, mock.Anything, "value", -1).Return(nil).Once()
	j.Revert()
}

func (s *mongoSuite) TestFindOne() {
	sel := bson.M{"market": "game", "id": uint64(3)}
	s.q.On("FindOne", mock.Anything, domain.TableListings, sel, mock.Anything).Return(query.ErrNotFound).Once()
	_, err := s.repo.FindOne(mockCtx, 3)
	s.Equal(domain.ErrNotFound, err)

	s.q.On("FindOne", mock.Anything, domain.TableListings, sel, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*listingDoc) = *toDoc(newListing(3, 11))
		}).Return(nil).Once()
	l, err := s.repo.FindOne(mockCtx, 3)
	s.NoError(err)
	s.Equal(big.NewInt(11), l.AssetId)
	s.Equal(big.NewInt(30), l.Price)
}

func (s *mongoSuite) TestInsertCompensates() {
	s.q.On("Insert", mock.Anything, domain.TableListings, mock.Anything).Return(nil).Once()
	j := journal.New()
	s.NoError(s.repo.Insert(journal.With(mockCtx, j), newListing(2, 1)))

	s.q.On("Remove", mock.Anything, domain.TableListings, bson.M{"market": "game", "id": uint64(2)}).Return(nil).Once()
	j.Revert()
}

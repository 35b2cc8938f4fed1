package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/audit"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/domain/settlement"
	"github.com/x-xyz/market/domain/treasury"
	"github.com/x-xyz/market/service/chain/simulated"
	"github.com/x-xyz/market/service/ledger"
	auditUC "github.com/x-xyz/market/stores/audit/usecase"
	auctionRepo "github.com/x-xyz/market/stores/auction/repository"
	auctionUC "github.com/x-xyz/market/stores/auction/usecase"
	"github.com/x-xyz/market/stores/custody"
	custodyUC "github.com/x-xyz/market/stores/custody/usecase"
	eventRepo "github.com/x-xyz/market/stores/event/repository"
	eventUC "github.com/x-xyz/market/stores/event/usecase"
	listingRepo "github.com/x-xyz/market/stores/listing/repository"
	listingUC "github.com/x-xyz/market/stores/listing/usecase"
	treasuryRepo "github.com/x-xyz/market/stores/treasury/repository"
	treasuryUC "github.com/x-xyz/market/stores/treasury/usecase"
)

var (
	mockCtx   = ctx.Background()
	start     = time.Unix(1660000000, 0).UTC()
	custodian = domain.Address("0x00000000000000000000000000000000000000c0")
	admin     = domain.Address("0x00000000000000000000000000000000000000ad")
	alice     = domain.Address("0x00000000000000000000000000000000000000a1")
	bob       = domain.Address("0x00000000000000000000000000000000000000b1")
	carol     = domain.Address("0x00000000000000000000000000000000000000c1")
	dave      = domain.Address("0x00000000000000000000000000000000000000d1")
	lp        = domain.Address("0x00000000000000000000000000000000000000e1")
	stableA   = domain.Address("0x0000000000000000000000000000000000000e01")
	counterA  = domain.Address("0x0000000000000000000000000000000000000e02")
	routerA   = domain.Address("0x0000000000000000000000000000000000000e03")
	nftA      = domain.Address("0x0000000000000000000000000000000000000e04")
	multiA    = domain.Address("0x0000000000000000000000000000000000000e05")
	wallets   = treasury.WalletConfig{
		Rewards:     "0x00000000000000000000000000000000000000f1",
		Server:      "0x00000000000000000000000000000000000000f2",
		Maintenance: "0x00000000000000000000000000000000000000f3",
	}
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func milli(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e15))
}

// scenarioSuite drives a whole market on the simulated chain.
type scenarioSuite struct {
	suite.Suite

	now     time.Time
	chain   *simulated.Chain
	stable  *simulated.Token
	counter *simulated.Token
	router  *simulated.Router
	nft     *simulated.Unique
	multi   *simulated.Countable
	wallets treasury.WalletConfig

	events   event.UseCase
	treasury treasury.UseCase
	listings listing.UseCase
	auctions auction.UseCase
	settle   settlement.UseCase
	audit    audit.UseCase
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(scenarioSuite))
}

func (s *scenarioSuite) SetupTest() {
	s.now = start
	clock := func() time.Time { return s.now }
	s.chain = simulated.NewChain(clock)
	s.stable = s.chain.Token(stableA, "BUSD")
	s.counter = s.chain.Token(counterA, "ECCHI")
	s.router = s.chain.Router(routerA)
	s.nft = s.chain.Unique(nftA)
	s.multi = s.chain.Countable(multiA)
	s.wallets = wallets
	s.build(treasury.DefaultFeeSchedule, ether(50), true)
}

func (s *scenarioSuite) build(fees treasury.FeeSchedule, cap *big.Int, initTreasury bool) {
	const market = "official"
	clock := func() time.Time { return s.now }
	led := ledger.New(market)
	payToken := domain.PayToken{Symbol: "BUSD", Decimals: 18, Address: stableA}
	payment := s.stable.As(custodian)

	registry := custody.NewRegistry().
		AddUnique(nftA, s.nft.As(custodian)).
		AddCountable(multiA, s.multi.As(custodian))
	cust := custodyUC.New(custodian, registry)

	listings := listingRepo.NewMemoryRepo(market)
	auctions := auctionRepo.NewMemoryRepo(market)
	treasuries := treasuryRepo.NewMemoryRepo()

	s.events = eventUC.New(&eventUC.EventUseCaseCfg{
		Market: market,
		Repo:   eventRepo.NewMemoryRepo(market),
		Clock:  clock,
	})
	s.treasury = treasuryUC.New(&treasuryUC.TreasuryUseCaseCfg{
		Market:       market,
		Fees:         fees,
		Custodian:    custodian,
		Admins:       domain.Addresses{admin},
		PayToken:     payToken,
		CounterToken: domain.PayToken{Symbol: "ECCHI", Decimals: 18, Address: counterA},
		Payment:      payment,
		Counter:      s.counter.As(custodian),
		Pool:         s.router.As(custodian),
		Repo:         treasuries,
		Ledger:       led,
		Events:       s.events,
		Clock:        clock,
	})
	s.listings = listingUC.New(&listingUC.ListingUseCaseCfg{
		Repo:    listings,
		Custody: cust,
		Ledger:  led,
		Events:  s.events,
		Clock:   clock,
	})
	s.auctions = auctionUC.New(&auctionUC.AuctionUseCaseCfg{
		Repo:    auctions,
		Custody: cust,
		Ledger:  led,
		Events:  s.events,
		Clock:   clock,
	})
	s.settle = New(&SettlementUseCaseCfg{
		Market:   market,
		Admins:   domain.Addresses{admin},
		PayToken: payToken,
		Payment:  payment,
		Listings: listings,
		Auctions: auctions,
		Custody:  cust,
		Treasury: s.treasury,
		Ledger:   led,
		Events:   s.events,
		Clock:    clock,
	})
	s.audit = auditUC.New(&auditUC.AuditUseCaseCfg{
		Market:   market,
		Listings: listings,
		Auctions: auctions,
		Treasury: treasuries,
		Custody:  cust,
		Payment:  payment,
		Ledger:   led,
	})

	if initTreasury {
		_, err := s.treasury.Init(mockCtx, s.wallets, cap)
		s.Require().NoError(err)
	}
}

func (s *scenarioSuite) balance(holder domain.Address) *big.Int {
	b, err := s.stable.As(holder).BalanceOf(mockCtx, holder)
	s.Require().NoError(err)
	return b
}

func (s *scenarioSuite) fund(holder domain.Address, amount *big.Int) {
	s.stable.Mint(holder, amount)
	s.Require().NoError(s.stable.As(holder).Approve(mockCtx, custodian, amount))
}

func (s *scenarioSuite) ownerOf(id int64) domain.Address {
	owner, err := s.nft.As(custodian).OwnerOf(mockCtx, big.NewInt(id))
	s.Require().NoError(err)
	return owner
}

func (s *scenarioSuite) multiOf(holder domain.Address, id int64) *big.Int {
	b, err := s.multi.As(holder).BalanceOf(mockCtx, holder, big.NewInt(id))
	s.Require().NoError(err)
	return b
}

func (s *scenarioSuite) list(id int64, price *big.Int, activeFrom time.Time) uint64 {
	s.nft.Mint(alice, big.NewInt(id))
	s.nft.SetApprovalForAll(alice, custodian, true)
	saleId, err := s.listings.Create(mockCtx, alice, listing.CreateParams{
		AssetContract: nftA,
		AssetId:       big.NewInt(id),
		Quantity:      big.NewInt(1),
		Price:         price,
		ActiveFrom:    activeFrom,
	})
	s.Require().NoError(err)
	return saleId
}

func (s *scenarioSuite) requireHealthy() *audit.Report {
	report, err := s.audit.Run(mockCtx)
	s.Require().NoError(err)
	for _, l := range report.Assets {
		s.True(l.Balanced(), "asset %s/%s expected %s held %s", l.Contract, l.AssetId, l.Expected, l.Held)
	}
	s.True(report.Healthy())
	return report
}

func (s *scenarioSuite) eventTypes() []event.Type {
	res, err := s.events.FindAll(mockCtx)
	s.Require().NoError(err)
	types := []event.Type{}
	for i := len(res) - 1; i >= 0; i-- {
		types = append(types, res[i].Type)
	}
	return types
}

func (s *scenarioSuite) TestFixedSale() {
	id := s.list(1, ether(30), time.Time{})
	s.Equal(custodian, s.ownerOf(1))
	report := s.requireHealthy()
	s.Len(report.Assets, 1)

	s.fund(bob, ether(30))
	receipt, err := s.settle.Buy(mockCtx, bob, id)
	s.Require().NoError(err)
	s.Equal(bob, receipt.Winner)
	s.Equal(ether(30), receipt.Price)
	s.False(receipt.Liquidity.Attempted)

	s.Equal(bob, s.ownerOf(1))
	s.Equal(0, s.balance(bob).Sign())
	s.Equal(milli(29400), s.balance(alice))
	s.Equal(milli(300), s.balance(wallets.Rewards))
	s.Equal(milli(150), s.balance(wallets.Server))
	s.Equal(milli(150), s.balance(wallets.Maintenance))
	s.Equal(0, s.balance(custodian).Sign())

	l, err := s.listings.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(listing.StatusSold, l.Status)
	s.Equal(bob, l.Buyer)

	s.Equal([]event.Type{event.TypeListingCreated, event.TypeListingSold}, s.eventTypes())
	report = s.requireHealthy()
	s.Empty(report.Assets)
}

func (s *scenarioSuite) TestDoubleBuyPullsOnce() {
	id := s.list(1, ether(30), time.Time{})
	s.fund(bob, ether(30))
	s.fund(dave, ether(30))

	_, err := s.settle.Buy(mockCtx, bob, id)
	s.Require().NoError(err)
	_, err = s.settle.Buy(mockCtx, dave, id)
	s.Equal(domain.ErrAlreadySold, err)

	s.Equal(ether(30), s.balance(dave))
	s.Equal(milli(29400), s.balance(alice))
}

func (s *scenarioSuite) TestBuyPreconditions() {
	id := s.list(1, ether(30), start.Add(time.Hour))

	_, err := s.settle.Buy(mockCtx, bob, 42)
	s.Equal(domain.ErrNotFound, err)

	s.fund(bob, ether(30))
	_, err = s.settle.Buy(mockCtx, bob, id)
	s.Equal(domain.ErrNotYetActive, err)

	s.now = start.Add(time.Hour)
	s.stable.Mint(carol, ether(30))
	_, err = s.settle.Buy(mockCtx, carol, id)
	s.Equal(domain.ErrInsufficientApproval, err)

	s.Require().NoError(s.stable.As(dave).Approve(mockCtx, custodian, ether(30)))
	_, err = s.settle.Buy(mockCtx, dave, id)
	s.Equal(domain.ErrInsufficientFunds, err)

	// nothing moved
	s.Equal(custodian, s.ownerOf(1))
	s.Equal(ether(30), s.balance(carol))
	l, err := s.listings.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(listing.StatusActive, l.Status)

	_, err = s.settle.Buy(mockCtx, bob, id)
	s.NoError(err)
}

func (s *scenarioSuite) TestFeeSplitIsExact() {
	id := s.list(1, big.NewInt(12345), time.Time{})
	s.fund(bob, big.NewInt(12345))

	receipt, err := s.settle.Buy(mockCtx, bob, id)
	s.Require().NoError(err)
	s.Equal(big.NewInt(123), receipt.Split.Rewards)
	s.Equal(big.NewInt(61), receipt.Split.Server)
	s.Equal(big.NewInt(61), receipt.Split.Maintenance)
	s.Equal(big.NewInt(12100), receipt.Split.Seller)

	sum := new(big.Int)
	for _, a := range []domain.Address{alice, wallets.Rewards, wallets.Server, wallets.Maintenance} {
		sum.Add(sum, s.balance(a))
	}
	s.Equal(big.NewInt(12345), sum)
}

func (s *scenarioSuite) TestTreasuryFailureRevertsSale() {
	s.build(treasury.DefaultFeeSchedule, ether(50), false)
	id := s.list(1, ether(30), time.Time{})
	s.fund(bob, ether(30))

	_, err := s.settle.Buy(mockCtx, bob, id)
	s.Equal(domain.ErrNotFound, err)
	s.Equal(ether(30), s.balance(bob))
	s.Equal(custodian, s.ownerOf(1))
	s.Equal([]event.Type{event.TypeListingCreated}, s.eventTypes())
}

func (s *scenarioSuite) TestReleaseFailureMovesNoFunds() {
	id := s.list(1, ether(30), time.Time{})
	s.fund(bob, ether(30))
	// the token left custody behind the market's back
	s.nft.Mint(carol, big.NewInt(1))

	_, err := s.settle.Buy(mockCtx, bob, id)
	s.Equal(domain.ErrNotAssetOwner, err)

	s.Equal(ether(30), s.balance(bob))
	for _, a := range []domain.Address{alice, custodian, wallets.Rewards, wallets.Server, wallets.Maintenance} {
		s.Equal(0, s.balance(a).Sign(), "balance of %s", a)
	}
	l, err := s.listings.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(listing.StatusActive, l.Status)
	s.Equal([]event.Type{event.TypeListingCreated}, s.eventTypes())
}

func (s *scenarioSuite) TestAuction() {
	s.multi.Mint(alice, big.NewInt(3), big.NewInt(10))
	s.multi.SetApprovalForAll(alice, custodian, true)
	id, err := s.auctions.Create(mockCtx, alice, auction.CreateParams{
		AssetContract: multiA,
		AssetId:       big.NewInt(3),
		Quantity:      big.NewInt(5),
		ReservePrice:  ether(20),
		StartTime:     start.Add(time.Minute),
		Duration:      time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(big.NewInt(5), s.multiOf(custodian, 3))
	s.Equal(big.NewInt(5), s.multiOf(alice, 3))

	s.fund(carol, ether(20))
	s.fund(bob, ether(21))

	err = s.settle.Bid(mockCtx, carol, id, ether(20))
	s.True(errors.Is(err, domain.ErrNotOnAuction))
	s.Equal(domain.ErrNotOpenYet, err)
	s.Equal("Item is not on auction", err.Error())

	s.now = start.Add(time.Minute)
	s.Equal(domain.ErrBidTooLow, s.settle.Bid(mockCtx, carol, id, milli(19999)))
	s.NoError(s.settle.Bid(mockCtx, carol, id, ether(20)))
	s.Equal(0, s.balance(carol).Sign())

	s.Equal(domain.ErrBidTooLow, s.settle.Bid(mockCtx, bob, id, ether(20)))
	s.NoError(s.settle.Bid(mockCtx, bob, id, ether(21)))
	// the superseded bid came back in full
	s.Equal(ether(20), s.balance(carol))
	s.Equal(ether(21), s.balance(custodian))

	report := s.requireHealthy()
	s.Equal(ether(21), report.BidEscrow)
	s.Equal(big.NewInt(5), report.Assets[0].Expected)

	_, err = s.settle.FinishAuction(mockCtx, bob, id)
	s.Equal(domain.ErrUnauthorized, err)
	_, err = s.settle.FinishAuction(mockCtx, alice, id)
	s.Equal(domain.ErrAuctionStillRunning, err)

	s.now = start.Add(time.Minute + time.Hour)
	err = s.settle.Bid(mockCtx, carol, id, ether(22))
	s.Equal(domain.ErrAuctionExpired, err)
	s.Equal("Item is not on auction", err.Error())

	receipt, err := s.settle.FinishAuction(mockCtx, alice, id)
	s.Require().NoError(err)
	s.Equal(bob, receipt.Winner)
	s.Equal(ether(21), receipt.Price)
	s.Equal(big.NewInt(5), s.multiOf(bob, 3))
	s.Equal(milli(20580), s.balance(alice))
	s.Equal(0, s.balance(custodian).Sign())

	_, err = s.settle.FinishAuction(mockCtx, alice, id)
	s.Equal(domain.ErrAlreadyFinished, err)
	s.Equal(domain.ErrNotFound, s.settle.Bid(mockCtx, carol, id, ether(30)))
	_, err = s.settle.FinishAuction(mockCtx, alice, 99)
	s.Equal(domain.ErrInvalidSaleId, err)

	s.Equal([]event.Type{
		event.TypeAuctionCreated,
		event.TypeBidPlaced,
		event.TypeBidRefunded,
		event.TypeBidPlaced,
		event.TypeAuctionFinished,
	}, s.eventTypes())
	s.requireHealthy()
}

func (s *scenarioSuite) TestFinishWithoutBids() {
	s.nft.Mint(alice, big.NewInt(9))
	s.nft.SetApprovalForAll(alice, custodian, true)
	id, err := s.auctions.Create(mockCtx, alice, auction.CreateParams{
		AssetContract: nftA,
		AssetId:       big.NewInt(9),
		Quantity:      big.NewInt(1),
		ReservePrice:  ether(5),
		Duration:      time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(custodian, s.ownerOf(9))

	s.now = start.Add(2 * time.Hour)
	receipt, err := s.settle.FinishAuction(mockCtx, admin, id)
	s.Require().NoError(err)
	s.Nil(receipt.Split)
	s.True(receipt.Winner.IsEmpty())
	s.Equal(alice, s.ownerOf(9))
	s.Equal(0, s.balance(alice).Sign())

	a, err := s.auctions.Get(mockCtx, id)
	s.NoError(err)
	s.Equal(auction.StatusFinished, a.Status)
}

func (s *scenarioSuite) seedPool() {
	s.stable.Mint(lp, ether(1000))
	s.counter.Mint(lp, ether(2000))
	s.Require().NoError(s.stable.As(lp).Approve(mockCtx, routerA, ether(1000)))
	s.Require().NoError(s.counter.As(lp).Approve(mockCtx, routerA, ether(2000)))
	_, _, _, err := s.router.As(lp).AddLiquidity(mockCtx, stableA, counterA, ether(1000), ether(2000), big.NewInt(0), big.NewInt(0), lp, start.Add(time.Hour))
	s.Require().NoError(err)
}

func (s *scenarioSuite) TestLiquidityConversion() {
	s.wallets.Rewards = custodian
	s.build(treasury.DefaultFeeSchedule, ether(1), true)
	s.seedPool()
	s.fund(bob, ether(180))

	first, err := s.settle.Buy(mockCtx, bob, s.list(1, ether(60), time.Time{}))
	s.Require().NoError(err)
	s.False(first.Liquidity.Attempted)
	s.Equal(milli(600), first.Split.Rewards)
	s.Equal(milli(600), first.Split.Retained)
	s.Equal(milli(600), s.balance(custodian))
	s.Equal(milli(300), s.balance(wallets.Server))

	// a paused pool fails the conversion, never the sale
	s.router.Pause(true)
	second, err := s.settle.Buy(mockCtx, bob, s.list(2, ether(60), time.Time{}))
	s.Require().NoError(err)
	s.True(second.Liquidity.Attempted)
	s.Equal(domain.ErrSwapFailed, second.Liquidity.Err)
	s.Equal(bob, s.ownerOf(2))
	state, err := s.treasury.Get(mockCtx)
	s.NoError(err)
	s.Equal(milli(1200), state.Accumulated)
	s.Contains(s.eventTypes(), event.TypeSwapFailed)
	s.requireHealthy()

	s.router.Pause(false)
	third, err := s.settle.Buy(mockCtx, bob, s.list(3, ether(60), time.Time{}))
	s.Require().NoError(err)
	s.Require().NotNil(third.Liquidity.Conversion)
	s.Equal(milli(900), third.Liquidity.Conversion.TokensSwapped)
	s.True(s.router.SharesOf(stableA, counterA, custodian).Sign() > 0)

	state, err = s.treasury.Get(mockCtx)
	s.NoError(err)
	s.Equal(new(big.Int).Sub(milli(1800), third.Liquidity.Conversion.Converted()), state.Accumulated)
	s.Contains(s.eventTypes(), event.TypeLiquidityAdded)
	s.requireHealthy()
}

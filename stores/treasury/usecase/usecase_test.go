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
	"github.com/x-xyz/market/domain/event"
	eventMocks "github.com/x-xyz/market/domain/event/mocks"
	"github.com/x-xyz/market/domain/treasury"
	treasuryMocks "github.com/x-xyz/market/domain/treasury/mocks"
	"github.com/x-xyz/market/service/cache"
	"github.com/x-xyz/market/service/cache/provider/primitive"
	"github.com/x-xyz/market/service/chain/simulated"
	"github.com/x-xyz/market/service/ledger"
	"github.com/x-xyz/market/stores/treasury/repository"
)

var (
	mockCtx   = ctx.Background()
	now       = time.Unix(1660000000, 0)
	custodian = domain.Address("0x00000000000000000000000000000000000000c0")
	admin     = domain.Address("0x00000000000000000000000000000000000000ad")
	lp        = domain.Address("0x00000000000000000000000000000000000000b0")
	stableA   = domain.Address("0x0000000000000000000000000000000000000e01")
	counterA  = domain.Address("0x0000000000000000000000000000000000000e02")
	routerA   = domain.Address("0x0000000000000000000000000000000000000e03")
	// rewards stay with the custodian and feed the pool
	wallets = treasury.WalletConfig{
		Rewards:     custodian,
		Server:      "0x00000000000000000000000000000000000000a2",
		Maintenance: "0x00000000000000000000000000000000000000a3",
	}
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func milliEther(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e15))
}

type treasurySuite struct {
	suite.Suite

	chain   *simulated.Chain
	stable  *simulated.Token
	counter *simulated.Token
	router  *simulated.Router
	events  *eventMocks.UseCase
	ledger  domain.Ledger
	repo    treasury.Repo
	im      treasury.UseCase
}

func TestTreasurySuite(t *testing.T) {
	suite.Run(t, new(treasurySuite))
}

func (s *treasurySuite) SetupTest() {
	clock := func() time.Time { return now }
	s.chain = simulated.NewChain(clock)
	s.stable = s.chain.Token(stableA, "BUSD")
	s.counter = s.chain.Token(counterA, "ECCHI")
	s.router = s.chain.Router(routerA)
	s.events = &eventMocks.UseCase{}
	s.events.On("Emit", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.ledger = ledger.New("grey")
	s.repo = repository.NewMemoryRepo()

	s.use(s.repo, s.router.As(custodian))
}

func (s *treasurySuite) use(repo treasury.Repo, pool treasury.LiquidityPool) {
	clock := func() time.Time { return now }
	s.im = New(&TreasuryUseCaseCfg{
		Market:       "grey",
		Fees:         treasury.DefaultFeeSchedule,
		Custodian:    custodian,
		Admins:       domain.Addresses{admin},
		PayToken:     domain.PayToken{Symbol: "BUSD", Decimals: 18, Address: stableA},
		CounterToken: domain.PayToken{Symbol: "ECCHI", Decimals: 18, Address: counterA},
		Payment:      s.stable.As(custodian),
		Counter:      s.counter.As(custodian),
		Pool:         pool,
		Repo:         repo,
		Ledger:       s.ledger,
		Events:       s.events,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "treasury",
			Cache: primitive.NewPrimitive("treasury", 1),
		}),
		Clock: clock,
	})
	if _, ok := repo.(*treasuryMocks.Repo); ok {
		return
	}
	_, err := s.im.Init(mockCtx, wallets, ether(2))
	s.Require().NoError(err)
}

func (s *treasurySuite) balance(t *simulated.Token, holder domain.Address) *big.Int {
	b, err := t.As(holder).BalanceOf(mockCtx, holder)
	s.Require().NoError(err)
	return b
}

func (s *treasurySuite) seedPool() {
	s.stable.Mint(lp, ether(1000))
	s.counter.Mint(lp, ether(2000))
	s.Require().NoError(s.stable.As(lp).Approve(mockCtx, routerA, ether(1000)))
	s.Require().NoError(s.counter.As(lp).Approve(mockCtx, routerA, ether(2000)))
	_, _, _, err := s.router.As(lp).AddLiquidity(mockCtx, stableA, counterA, ether(1000), ether(2000), big.NewInt(0), big.NewInt(0), lp, now.Add(time.Minute))
	s.Require().NoError(err)
}

// settle runs one sale of gross the custodian already collected.
func (s *treasurySuite) settle(gross *big.Int) *treasury.Settlement {
	s.stable.Mint(custodian, gross)
	var res *treasury.Settlement
	s.Require().NoError(s.ledger.Execute(mockCtx, "test.settle", func(c ctx.Ctx) error {
		var err error
		res, err = s.im.Settle(c, gross)
		return err
	}))
	return res
}

func (s *treasurySuite) state() *treasury.State {
	state, err := s.repo.FindOne(mockCtx, "grey")
	s.Require().NoError(err)
	return state
}

func (s *treasurySuite) TestInitKeepsExistingState() {
	other := treasury.WalletConfig{Rewards: admin, Server: admin, Maintenance: admin}
	state, err := s.im.Init(mockCtx, other, ether(5))
	s.NoError(err)
	s.Equal(wallets, state.Wallets)
	s.Equal(ether(2), state.Cap)
	s.Equal(0, state.CounterHeld.Sign())

	_, err = s.im.Init(mockCtx, treasury.WalletConfig{Rewards: admin}, ether(1))
	s.Equal(domain.ErrInvalidAddress, err)
}

func (s *treasurySuite) TestSettleSplitsGross() {
	res := s.settle(ether(100))

	s.Equal(ether(100), res.Split.Gross)
	s.Equal(ether(1), res.Split.Rewards)
	s.Equal(ether(1), res.Split.Retained)
	s.Equal(ether(98), res.SellerProceeds)
	s.False(res.Liquidity.Attempted)

	s.Equal(milliEther(500), s.balance(s.stable, wallets.Server))
	s.Equal(milliEther(500), s.balance(s.stable, wallets.Maintenance))
	// seller proceeds and the rewards cut stay with the custodian
	s.Equal(ether(99), s.balance(s.stable, custodian))

	state, err := s.im.Get(mockCtx)
	s.NoError(err)
	s.Equal(ether(1), state.Accumulated)
}

func (s *treasurySuite) TestSettleRejectsNegative() {
	_, err := s.im.Settle(mockCtx, big.NewInt(-1))
	s.Equal(domain.ErrInvalidPrice, err)
}

func (s *treasurySuite) TestSettleRepoFailure() {
	repo := &treasuryMocks.Repo{}
	defer repo.AssertExpectations(s.T())
	s.use(repo, nil)
	boom := errors.New("mongo unavailable")
	repo.On("FindOne", mock.Anything, "grey").Return(nil, boom).Once()

	s.stable.Mint(custodian, ether(100))
	err := s.ledger.Execute(mockCtx, "test.settle", func(c ctx.Ctx) error {
		_, err := s.im.Settle(c, ether(100))
		return err
	})
	s.ErrorIs(err, boom)
	s.Equal(0, s.balance(s.stable, wallets.Server).Sign())
	s.Equal(ether(100), s.balance(s.stable, custodian))
	repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *treasurySuite) TestPayOutsideLedgerCall() {
	s.stable.Mint(custodian, ether(1))
	s.NoError(s.im.Pay(mockCtx, "refund", lp, ether(1)))
	s.Equal(ether(1), s.balance(s.stable, lp))

	s.Error(s.im.Pay(mockCtx, "refund", lp, ether(1)))
	s.Equal(domain.ErrInvalidAddress, s.im.Pay(mockCtx, "refund", "", ether(1)))
	s.NoError(s.im.Pay(mockCtx, "refund", lp, big.NewInt(0)))
}

func (s *treasurySuite) TestPayoutWaitsForCommit() {
	s.stable.Mint(custodian, ether(1))
	boom := errors.New("later step failed")
	err := s.ledger.Execute(mockCtx, "test.pay", func(c ctx.Ctx) error {
		if err := s.im.Pay(c, "seller", lp, ether(1)); err != nil {
			return err
		}
		s.Equal(0, s.balance(s.stable, lp).Sign())
		return boom
	})
	s.Equal(boom, err)
	s.Equal(0, s.balance(s.stable, lp).Sign())
	s.Equal(ether(1), s.balance(s.stable, custodian))
}

func (s *treasurySuite) TestConversionAtCap() {
	s.seedPool()
	first := s.settle(ether(100))
	s.False(first.Liquidity.Attempted)

	second := s.settle(ether(100))
	s.True(second.Liquidity.Attempted)
	s.NoError(second.Liquidity.Err)
	conv := second.Liquidity.Conversion
	s.Require().NotNil(conv)
	s.Equal(ether(1), conv.TokensSwapped)
	s.True(conv.CounterReceived.Sign() > 0)
	s.True(conv.TokensIntoLiquidity.Sign() > 0)
	s.True(s.router.SharesOf(stableA, counterA, custodian).Sign() > 0)

	state := s.state()
	s.Equal(new(big.Int).Sub(ether(2), conv.Converted()), state.Accumulated)
	s.Equal(new(big.Int).Sub(conv.CounterReceived, conv.CounterIntoLiquidity), state.CounterHeld)
	s.True(state.Accumulated.Cmp(state.Cap) < 0)

	s.events.AssertCalled(s.T(), "Emit", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeLiquidityAdded && e.Data["tokensSwapped"] == ether(1).String()
	}))
}

func (s *treasurySuite) TestConversionFailureKeepsSale() {
	s.seedPool()
	s.settle(ether(100))
	s.router.Pause(true)

	res := s.settle(ether(100))
	s.True(res.Liquidity.Attempted)
	s.Equal(domain.ErrSwapFailed, res.Liquidity.Err)
	s.Nil(res.Liquidity.Conversion)

	// fees of both sales went out, the rewards cut waits for the pool
	s.Equal(ether(1), s.balance(s.stable, wallets.Server))
	s.Equal(ether(198), s.balance(s.stable, custodian))
	allowance, err := s.stable.As(custodian).Allowance(mockCtx, custodian, routerA)
	s.NoError(err)
	s.Equal(0, allowance.Sign())

	state := s.state()
	s.Equal(ether(2), state.Accumulated)
	s.Equal(0, state.CounterHeld.Sign())

	s.events.AssertCalled(s.T(), "Emit", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeSwapFailed && e.Data["accumulated"] == ether(2).String()
	}))

	// the next sale retries the conversion
	s.router.Pause(false)
	res = s.settle(ether(100))
	s.Require().NotNil(res.Liquidity.Conversion)
	s.Equal(milliEther(1500), res.Liquidity.Conversion.TokensSwapped)
}

func (s *treasurySuite) TestPoolingFailureKeepsSwap() {
	pool := &treasuryMocks.LiquidityPool{}
	defer pool.AssertExpectations(s.T())
	s.repo = repository.NewMemoryRepo()
	s.use(s.repo, pool)
	boom := errors.New("router: INSUFFICIENT_B_AMOUNT")
	path := []domain.Address{stableA, counterA}

	pool.On("Address").Return(routerA)
	pool.On("SwapExactTokensForTokens", mock.Anything, ether(1), big.NewInt(0), path, custodian, mock.Anything).
		Return([]*big.Int{ether(1), ether(2)}, nil).Once()
	pool.On("AddLiquidity", mock.Anything, stableA, counterA, ether(1), ether(2), mock.Anything, mock.Anything, custodian, mock.Anything).
		Return(nil, nil, nil, boom).Once()

	s.settle(ether(100))
	res := s.settle(ether(100))
	s.True(res.Liquidity.Attempted)
	s.Equal(domain.ErrSwapFailed, res.Liquidity.Err)
	s.Nil(res.Liquidity.Conversion)

	// the swap stays on the books
	state := s.state()
	s.Equal(ether(1), state.Accumulated)
	s.Equal(ether(2), state.CounterHeld)
	s.events.AssertCalled(s.T(), "Emit", mock.Anything, mock.MatchedBy(func(e *event.Event) bool {
		return e.Type == event.TypeSwapFailed && e.Data["counterHeld"] == ether(2).String()
	}))

	// the next sale pools what is held without swapping again
	pool.On("AddLiquidity", mock.Anything, stableA, counterA, ether(2), ether(2), mock.Anything, mock.Anything, custodian, mock.Anything).
		Return(ether(1), ether(2), ether(1), nil).Once()
	res = s.settle(ether(100))
	s.NoError(res.Liquidity.Err)
	s.Require().NotNil(res.Liquidity.Conversion)
	s.Equal(0, res.Liquidity.Conversion.TokensSwapped.Sign())
	s.Equal(ether(1), res.Liquidity.Conversion.TokensIntoLiquidity)

	state = s.state()
	s.Equal(ether(1), state.Accumulated)
	s.Equal(0, state.CounterHeld.Sign())
}

func (s *treasurySuite) TestSwapWithoutAmounts() {
	pool := &treasuryMocks.LiquidityPool{}
	defer pool.AssertExpectations(s.T())
	s.repo = repository.NewMemoryRepo()
	s.use(s.repo, pool)

	pool.On("Address").Return(routerA)
	pool.On("SwapExactTokensForTokens", mock.Anything, ether(1), big.NewInt(0), mock.Anything, custodian, mock.Anything).
		Return([]*big.Int{}, nil).Once()

	s.settle(ether(100))
	var res *treasury.Settlement
	s.NotPanics(func() { res = s.settle(ether(100)) })
	s.Equal(domain.ErrSwapFailed, res.Liquidity.Err)

	state := s.state()
	s.Equal(ether(2), state.Accumulated)
	s.Equal(0, state.CounterHeld.Sign())
	pool.AssertNotCalled(s.T(), "AddLiquidity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *treasurySuite) TestChangeWalletAddresses() {
	next := treasury.WalletConfig{
		Rewards:     "0x00000000000000000000000000000000000000D1",
		Server:      "0x00000000000000000000000000000000000000d2",
		Maintenance: "0x00000000000000000000000000000000000000d3",
	}
	s.Equal(domain.ErrUnauthorized, s.im.ChangeWalletAddresses(mockCtx, lp, next))

	// warm the cache first
	state, err := s.im.Get(mockCtx)
	s.NoError(err)
	s.Equal(wallets, state.Wallets)

	s.NoError(s.im.ChangeWalletAddresses(mockCtx, admin, next))
	state, err = s.im.Get(mockCtx)
	s.NoError(err)
	s.Equal(next.Rewards.ToLower(), state.Wallets.Rewards)

	// an outside rewards wallet takes the whole rewards cut
	res := s.settle(ether(100))
	s.Equal(0, res.Split.Retained.Sign())
	s.Equal(ether(1), s.balance(s.stable, next.Rewards.ToLower()))
	s.Equal(milliEther(500), s.balance(s.stable, next.Server))
	s.Equal(0, s.balance(s.stable, wallets.Server).Sign())
	s.Equal(0, s.state().Accumulated.Sign())
}

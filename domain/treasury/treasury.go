package treasury

import (
	"math/big"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
)

// BpsDenominator is the denominator of every basis-point value.
const BpsDenominator = 10000

type WalletConfig struct {
	Rewards     domain.Address `json:"rewards" bson:"rewards" mapstructure:"rewards"`
	Server      domain.Address `json:"server" bson:"server" mapstructure:"server"`
	Maintenance domain.Address `json:"maintenance" bson:"maintenance" mapstructure:"maintenance"`
}

func (w WalletConfig) IsValid() bool {
	return !w.Rewards.IsEmpty() && !w.Server.IsEmpty() && !w.Maintenance.IsEmpty()
}

// FeeSchedule holds the protocol cuts in basis points of the gross amount.
type FeeSchedule struct {
	RewardsBps     int64 `json:"rewardsBps" mapstructure:"rewardsBps"`
	ServerBps      int64 `json:"serverBps" mapstructure:"serverBps"`
	MaintenanceBps int64 `json:"maintenanceBps" mapstructure:"maintenanceBps"`
}

// DefaultFeeSchedule is 1% rewards, 0.5% server, 0.5% maintenance.
var DefaultFeeSchedule = FeeSchedule{
	RewardsBps:     100,
	ServerBps:      50,
	MaintenanceBps: 50,
}

func (f FeeSchedule) IsValid() bool {
	for _, v := range []int64{f.RewardsBps, f.ServerBps, f.MaintenanceBps} {
		if v < 0 || v > BpsDenominator {
			return false
		}
	}
	return f.RewardsBps+f.ServerBps+f.MaintenanceBps <= BpsDenominator
}

// Split is the apportionment of one gross amount. Rewards, Server, Maintenance and
// Seller always sum to Gross. Retained is the part of Rewards that stays with the
// custodian, which is all of it when the rewards wallet is the custodian.
type Split struct {
	Gross       *big.Int
	Rewards     *big.Int
	Server      *big.Int
	Maintenance *big.Int
	Seller      *big.Int
	Retained    *big.Int
}

// Forwarded is the part of the rewards cut paid out to the rewards wallet.
func (s *Split) Forwarded() *big.Int {
	return new(big.Int).Sub(s.Rewards, s.Retained)
}

// ComputeSplit floors every cut and gives the rounding remainder to the seller. With
// retainRewards the rewards cut accumulates instead of being forwarded.
func ComputeSplit(gross *big.Int, f FeeSchedule, retainRewards bool) *Split {
	cut := func(n *big.Int, bps int64) *big.Int {
		res := new(big.Int).Mul(n, big.NewInt(bps))
		return res.Quo(res, big.NewInt(BpsDenominator))
	}
	s := &Split{
		Gross:       domain.Copy(gross),
		Rewards:     cut(gross, f.RewardsBps),
		Server:      cut(gross, f.ServerBps),
		Maintenance: cut(gross, f.MaintenanceBps),
		Retained:    new(big.Int),
	}
	if retainRewards {
		s.Retained.Set(s.Rewards)
	}
	s.Seller = new(big.Int).Sub(s.Gross, s.Rewards)
	s.Seller.Sub(s.Seller, s.Server)
	s.Seller.Sub(s.Seller, s.Maintenance)
	return s
}

// State is the process-wide treasury state of one market.
type State struct {
	Market      string       `json:"market"`
	Wallets     WalletConfig `json:"wallets"`
	Accumulated *big.Int     `json:"accumulated"`
	Cap         *big.Int     `json:"cap"`
	// CounterHeld is counter token bought by a conversion whose pooling step failed. The
	// next conversion pools it before swapping again.
	CounterHeld *big.Int     `json:"counterHeld"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (s *State) Clone() *State {
	cp := *s
	cp.Accumulated = domain.Copy(s.Accumulated)
	cp.Cap = domain.Copy(s.Cap)
	cp.CounterHeld = domain.Copy(s.CounterHeld)
	return &cp
}

// LiquidityPool is a UniswapV2-style router. The handle acts as the custodian.
type LiquidityPool interface {
	Address() domain.Address
	SwapExactTokensForTokens(c ctx.Ctx, amountIn, amountOutMin *big.Int, path []domain.Address, to domain.Address, deadline time.Time) ([]*big.Int, error)
	AddLiquidity(c ctx.Ctx, tokenA, tokenB domain.Address, amountADesired, amountBDesired, amountAMin, amountBMin *big.Int, to domain.Address, deadline time.Time) (amountA, amountB, liquidity *big.Int, err error)
}

// Conversion describes one liquidity conversion.
type Conversion struct {
	TokensSwapped        *big.Int `json:"tokensSwapped"`
	CounterReceived      *big.Int `json:"counterReceived"`
	TokensIntoLiquidity  *big.Int `json:"tokensIntoLiquidity"`
	CounterIntoLiquidity *big.Int `json:"counterIntoLiquidity"`
	Liquidity            *big.Int `json:"liquidity"`
}

// Converted is what left the accumulated balance.
func (c *Conversion) Converted() *big.Int {
	return new(big.Int).Add(c.TokensSwapped, c.TokensIntoLiquidity)
}

// LiquidityReport is the secondary signal of a settlement that crossed the cap.
// It is filled once the conversion phase ran, before the settling call returns.
type LiquidityReport struct {
	Attempted  bool        `json:"attempted"`
	Conversion *Conversion `json:"conversion,omitempty"`
	Err        error       `json:"-"`
}

// Settlement is the result of Settle.
type Settlement struct {
	Split          *Split
	SellerProceeds *big.Int
	Liquidity      *LiquidityReport
}

type Repo interface {
	// FindOne returns domain.ErrNotFound before the market is initialized.
	FindOne(c ctx.Ctx, market string) (*State, error)
	Upsert(c ctx.Ctx, state *State) error
}

type UseCase interface {
	// Init creates the state of the market once; later calls keep the stored state.
	Init(c ctx.Ctx, wallets WalletConfig, cap *big.Int) (*State, error)
	Get(c ctx.Ctx) (*State, error)
	// Settle splits gross, which the custodian already holds, schedules the payout of
	// the cuts, accumulates the retained share and schedules the liquidity conversion
	// once the cap is reached. The seller proceeds are left for the caller to pay out.
	Settle(c ctx.Ctx, gross *big.Int) (*Settlement, error)
	// Pay sends amount from the custodian to to once the current call commits. A failed
	// payout is reported with a PayoutFailed event.
	Pay(c ctx.Ctx, name string, to domain.Address, amount *big.Int) error
	ChangeWalletAddresses(c ctx.Ctx, caller domain.Address, wallets WalletConfig) error
}

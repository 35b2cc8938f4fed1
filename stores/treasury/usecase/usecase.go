package usecase

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/treasury"
	"github.com/x-xyz/market/service/cache"
)

const defaultSwapDeadline = 5 * time.Minute

var met = metrics.New("treasury")

type TreasuryUseCaseCfg struct {
	Market    string
	Fees      treasury.FeeSchedule
	Custodian domain.Address
	Admins    domain.Addresses

	// PayToken describes Payment; CounterToken describes Counter.
	PayToken     domain.PayToken
	CounterToken domain.PayToken
	Payment      domain.PaymentToken
	Counter      domain.PaymentToken
	// Pool is optional; without it the accumulated balance only grows.
	Pool         treasury.LiquidityPool
	SwapDeadline time.Duration

	Repo   treasury.Repo
	Ledger domain.Ledger
	Events event.UseCase
	Cache  cache.Service
	Clock  domain.Clock
}

type impl struct {
	market       string
	fees         treasury.FeeSchedule
	custodian    domain.Address
	admins       domain.Addresses
	payToken     domain.PayToken
	counterToken domain.PayToken
	payment      domain.PaymentToken
	counter      domain.PaymentToken
	pool         treasury.LiquidityPool
	swapDeadline time.Duration
	repo         treasury.Repo
	ledger       domain.Ledger
	events       event.UseCase
	cache        cache.Service
	clock        domain.Clock
}

func New(cfg *TreasuryUseCaseCfg) treasury.UseCase {
	im := &impl{
		market:       cfg.Market,
		fees:         cfg.Fees,
		custodian:    cfg.Custodian.ToLower(),
		admins:       cfg.Admins,
		payToken:     cfg.PayToken,
		counterToken: cfg.CounterToken,
		payment:      cfg.Payment,
		counter:      cfg.Counter,
		pool:         cfg.Pool,
		swapDeadline: cfg.SwapDeadline,
		repo:         cfg.Repo,
		ledger:       cfg.Ledger,
		events:       cfg.Events,
		cache:        cfg.Cache,
		clock:        cfg.Clock,
	}
	if im.swapDeadline <= 0 {
		im.swapDeadline = defaultSwapDeadline
	}
	if im.clock == nil {
		im.clock = time.Now
	}
	return im
}

func (im *impl) Init(c ctx.Ctx, wallets treasury.WalletConfig, cap *big.Int) (*treasury.State, error) {
	if !wallets.IsValid() {
		return nil, domain.ErrInvalidAddress
	}
	if cap == nil {
		cap = big.NewInt(0)
	}
	if cap.Sign() < 0 {
		return nil, domain.ErrBadParamInput
	}

	var res *treasury.State
	err := im.ledger.Execute(c, "treasury.init", func(c ctx.Ctx) error {
		state, err := im.repo.FindOne(c, im.market)
		if err == nil {
			res = state
			return nil
		} else if err != domain.ErrNotFound {
			c.WithField("err", err).Error("repo.FindOne failed")
			return err
		}

		state = &treasury.State{
			Market:      im.market,
			Wallets:     lowerWallets(wallets),
			Accumulated: big.NewInt(0),
			Cap:         domain.Copy(cap),
			CounterHeld: big.NewInt(0),
			UpdatedAt:   im.clock(),
		}
		if err := im.save(c, state); err != nil {
			return err
		}
		res = state
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Get(c ctx.Ctx) (*treasury.State, error) {
	if im.cache == nil {
		return im.repo.FindOne(c, im.market)
	}
	state := &treasury.State{}
	if err := im.cache.GetByFunc(c, im.market, state, func() (interface{}, error) {
		return im.repo.FindOne(c, im.market)
	}); err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).Error("cache.GetByFunc failed")
		}
		return nil, err
	}
	return state, nil
}

func (im *impl) ChangeWalletAddresses(c ctx.Ctx, caller domain.Address, wallets treasury.WalletConfig) error {
	if !im.admins.Contains(caller) {
		return domain.ErrUnauthorized
	}
	if !wallets.IsValid() {
		return domain.ErrInvalidAddress
	}

	return im.ledger.Execute(c, "treasury.changeWalletAddresses", func(c ctx.Ctx) error {
		state, err := im.repo.FindOne(c, im.market)
		if err != nil {
			c.WithField("err", err).Error("repo.FindOne failed")
			return err
		}
		state.Wallets = lowerWallets(wallets)
		state.UpdatedAt = im.clock()
		if err := im.save(c, state); err != nil {
			return err
		}
		return im.events.Emit(c, &event.Event{
			Type:    event.TypeWalletsChanged,
			Account: caller.ToLower(),
			Data: map[string]string{
				"rewards":     string(state.Wallets.Rewards),
				"server":      string(state.Wallets.Server),
				"maintenance": string(state.Wallets.Maintenance),
			},
		})
	})
}

func (im *impl) Settle(c ctx.Ctx, gross *big.Int) (*treasury.Settlement, error) {
	if gross == nil || gross.Sign() < 0 {
		return nil, domain.ErrInvalidPrice
	}
	state, err := im.repo.FindOne(c, im.market)
	if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}

	// a rewards wallet pointing at the custodian keeps the rewards cut for liquidity
	split := treasury.ComputeSplit(gross, im.fees, state.Wallets.Rewards.Equals(im.custodian))
	cuts := []struct {
		name string
		to   domain.Address
		amt  *big.Int
	}{
		{"rewards", state.Wallets.Rewards, split.Forwarded()},
		{"server", state.Wallets.Server, split.Server},
		{"maintenance", state.Wallets.Maintenance, split.Maintenance},
	}
	for _, p := range cuts {
		if p.amt.Sign() == 0 {
			continue
		}
		if err := im.Pay(c, p.name, p.to, p.amt); err != nil {
			c.WithFields(log.Fields{"err": err, "wallet": p.name, "amount": p.amt}).Error("Pay failed")
			return nil, err
		}
		met.BumpSum("fee", im.float(im.payToken, p.amt), "market", im.market, "wallet", p.name)
	}

	if split.Retained.Sign() > 0 {
		state.Accumulated.Add(state.Accumulated, split.Retained)
		state.UpdatedAt = im.clock()
		if err := im.save(c, state); err != nil {
			return nil, err
		}
	}

	report := &treasury.LiquidityReport{}
	if im.pool != nil && im.due(state) {
		report.Attempted = true
		fail := func(fc ctx.Ctx, cause error) {
			report.Conversion = nil
			report.Err = domain.ErrSwapFailed
			im.swapFailed(fc, cause)
		}
		journal.Then(c, journal.FollowUp{
			Name: "swap",
			Run: func(fc ctx.Ctx) error {
				conv, err := im.swap(fc)
				if err != nil {
					return err
				}
				journal.Then(fc, journal.FollowUp{
					Name: "addLiquidity",
					Run: func(lc ctx.Ctx) error {
						if err := im.addLiquidity(lc, conv); err != nil {
							return err
						}
						report.Conversion = conv
						return nil
					},
					OnFail: fail,
				})
				return nil
			},
			OnFail: fail,
		})
	}

	return &treasury.Settlement{
		Split:          split,
		SellerProceeds: domain.Copy(split.Seller),
		Liquidity:      report,
	}, nil
}

// due reports whether a conversion should run: the cap is reached, or counter token from
// an earlier conversion still waits to be pooled.
func (im *impl) due(state *treasury.State) bool {
	if state.CounterHeld != nil && state.CounterHeld.Sign() > 0 {
		return true
	}
	return state.Cap.Sign() > 0 && state.Accumulated.Cmp(state.Cap) >= 0
}

func (im *impl) Pay(c ctx.Ctx, name string, to domain.Address, amount *big.Int) error {
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}
	amount = domain.Copy(amount)
	return journal.Pay(c, journal.Payout{
		Name: name,
		Run: func(pc ctx.Ctx) error {
			if err := im.payment.Transfer(pc, to, amount); err != nil {
				return xerrors.Errorf("pay %s %s to %s: %w", name, amount, to, err)
			}
			return nil
		},
		OnFail: func(fc ctx.Ctx, cause error) {
			im.payoutFailed(fc, name, to, amount, cause)
		},
	})
}

func (im *impl) payoutFailed(c ctx.Ctx, name string, to domain.Address, amount *big.Int, cause error) {
	met.BumpSum("payout.failed", 1, "market", im.market, "payout", name)
	c.WithFields(log.Fields{"err": cause, "payout": name, "to": to, "amount": amount}).Error("payout failed")
	if err := im.events.Emit(c, &event.Event{
		Type:    event.TypePayoutFailed,
		Account: to.ToLower(),
		Amount:  amount.String(),
		Data: map[string]string{
			"payout": name,
			"reason": cause.Error(),
		},
	}); err != nil {
		c.WithField("err", err).Error("events.Emit failed")
	}
}

// swap sells half of the accumulated balance for the counter token and commits the
// result on its own, since a swap on chain cannot be taken back. It is skipped while
// counter token from an earlier conversion is still held.
func (im *impl) swap(c ctx.Ctx) (*treasury.Conversion, error) {
	conv := &treasury.Conversion{
		TokensSwapped:        big.NewInt(0),
		CounterReceived:      big.NewInt(0),
		TokensIntoLiquidity:  big.NewInt(0),
		CounterIntoLiquidity: big.NewInt(0),
		Liquidity:            big.NewInt(0),
	}
	state, err := im.repo.FindOne(c, im.market)
	if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}
	if state.CounterHeld == nil {
		state.CounterHeld = big.NewInt(0)
	}
	if state.CounterHeld.Sign() > 0 {
		c.WithField("counterHeld", state.CounterHeld).Info("pooling counter token already held")
		return conv, nil
	}

	half := new(big.Int).Quo(state.Accumulated, domain.Big2)
	if half.Sign() == 0 {
		return conv, nil
	}
	if err := im.payment.Approve(c, im.pool.Address(), half); err != nil {
		c.WithFields(log.Fields{"err": err, "amount": half}).Error("payment.Approve failed")
		return nil, err
	}
	path := []domain.Address{im.payToken.Address, im.counterToken.Address}
	amounts, err := im.pool.SwapExactTokensForTokens(c, half, big.NewInt(0), path, im.custodian, im.clock().Add(im.swapDeadline))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "amountIn": half}).Error("pool.SwapExactTokensForTokens failed")
		return nil, err
	}
	if len(amounts) < len(path) || amounts[len(amounts)-1] == nil {
		return nil, xerrors.Errorf("swap returned %d amounts for a %d hop path", len(amounts), len(path))
	}
	received := domain.Copy(amounts[len(amounts)-1])

	state.Accumulated.Sub(state.Accumulated, half)
	state.CounterHeld.Add(state.CounterHeld, received)
	state.UpdatedAt = im.clock()
	if err := im.save(c, state); err != nil {
		return nil, err
	}
	conv.TokensSwapped = half
	conv.CounterReceived = received
	return conv, nil
}

// addLiquidity pools the accumulated balance against the counter token held. Whatever
// the pool does not take stays on the books.
func (im *impl) addLiquidity(c ctx.Ctx, conv *treasury.Conversion) error {
	state, err := im.repo.FindOne(c, im.market)
	if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return err
	}
	tokens, counter := domain.Copy(state.Accumulated), domain.Copy(state.CounterHeld)
	if tokens.Sign() == 0 || counter.Sign() == 0 {
		return nil
	}
	router := im.pool.Address()
	deadline := im.clock().Add(im.swapDeadline)

	if err := im.payment.Approve(c, router, tokens); err != nil {
		c.WithFields(log.Fields{"err": err, "amount": tokens}).Error("payment.Approve failed")
		return err
	}
	if err := im.counter.Approve(c, router, counter); err != nil {
		c.WithFields(log.Fields{"err": err, "amount": counter}).Error("counter.Approve failed")
		return err
	}
	amountA, amountB, liquidity, err := im.pool.AddLiquidity(c, im.payToken.Address, im.counterToken.Address, tokens, counter, big.NewInt(0), big.NewInt(0), im.custodian, deadline)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "amountA": tokens, "amountB": counter}).Error("pool.AddLiquidity failed")
		return err
	}

	conv.TokensIntoLiquidity = amountA
	conv.CounterIntoLiquidity = amountB
	conv.Liquidity = liquidity
	state.Accumulated.Sub(state.Accumulated, amountA)
	state.CounterHeld = new(big.Int).Sub(counter, amountB)
	state.UpdatedAt = im.clock()
	if err := im.save(c, state); err != nil {
		return err
	}

	if err := im.events.Emit(c, &event.Event{
		Type:   event.TypeLiquidityAdded,
		Amount: conv.Converted().String(),
		Data: map[string]string{
			"tokensSwapped":        conv.TokensSwapped.String(),
			"counterReceived":      conv.CounterReceived.String(),
			"tokensIntoLiquidity":  conv.TokensIntoLiquidity.String(),
			"counterIntoLiquidity": conv.CounterIntoLiquidity.String(),
		},
	}); err != nil {
		return err
	}

	met.BumpSum("liquidity.added", im.float(im.payToken, conv.Converted()), "market", im.market)
	c.WithFields(log.Fields{
		"swapped":  im.payToken.Format(conv.TokensSwapped),
		"received": im.counterToken.Format(conv.CounterReceived),
		"pooled":   im.payToken.Format(conv.TokensIntoLiquidity),
	}).Info("liquidity added")
	return nil
}

func (im *impl) swapFailed(c ctx.Ctx, cause error) {
	met.BumpSum("liquidity.failed", 1, "market", im.market)
	c.WithFields(log.Fields{"err": cause}).Warn("liquidity conversion failed")

	data := map[string]string{"reason": cause.Error()}
	if state, err := im.repo.FindOne(c, im.market); err == nil {
		data["accumulated"] = state.Accumulated.String()
		data["counterHeld"] = domain.AmountString(state.CounterHeld)
	}
	if err := im.events.Emit(c, &event.Event{Type: event.TypeSwapFailed, Data: data}); err != nil {
		c.WithField("err", err).Error("events.Emit failed")
	}
}

func (im *impl) save(c ctx.Ctx, state *treasury.State) error {
	if err := im.repo.Upsert(c, state); err != nil {
		c.WithField("err", err).Error("repo.Upsert failed")
		return err
	}
	if im.cache != nil {
		journal.OnCommit(c, func() {
			_ = im.cache.Del(c, im.market)
		})
	}
	return nil
}

func (im *impl) float(t domain.PayToken, amount *big.Int) float64 {
	return decimal.NewFromBigInt(amount, -t.Decimals).InexactFloat64()
}

func lowerWallets(w treasury.WalletConfig) treasury.WalletConfig {
	return treasury.WalletConfig{
		Rewards:     w.Rewards.ToLower(),
		Server:      w.Server.ToLower(),
		Maintenance: w.Maintenance.ToLower(),
	}
}

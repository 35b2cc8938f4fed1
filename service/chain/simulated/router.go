package simulated

import (
	"math/big"
	"sync"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/treasury"
)

var (
	feeNumerator   = big.NewInt(997)
	feeDenominator = big.NewInt(1000)
)

type pairKey [2]domain.Address

func sortedPair(a, b domain.Address) (pairKey, bool) {
	if a < b {
		return pairKey{a, b}, false
	}
	return pairKey{b, a}, true
}

type pair struct {
	reserve0 *big.Int
	reserve1 *big.Int
	supply   *big.Int
	shares   map[domain.Address]*big.Int
}

func (p *pair) clone() *pair {
	cp := &pair{
		reserve0: domain.Copy(p.reserve0),
		reserve1: domain.Copy(p.reserve1),
		supply:   domain.Copy(p.supply),
		shares:   make(map[domain.Address]*big.Int, len(p.shares)),
	}
	for k, v := range p.shares {
		cp.shares[k] = domain.Copy(v)
	}
	return cp
}

// Router is a UniswapV2 style router over constant product pairs with the 0.3% fee.
// The router account itself holds the reserves.
type Router struct {
	mu     sync.Mutex
	addr   domain.Address
	clock  domain.Clock
	tokens func(domain.Address) (*Token, bool)
	pairs  map[pairKey]*pair
	paused bool
}

func NewRouter(addr domain.Address, clock domain.Clock, tokens func(domain.Address) (*Token, bool)) *Router {
	return &Router{
		addr:   addr.ToLower(),
		clock:  clock,
		tokens: tokens,
		pairs:  map[pairKey]*pair{},
	}
}

func (r *Router) Address() domain.Address {
	return r.addr
}

// Pause makes every call fail until unpaused.
func (r *Router) Pause(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = paused
}

// Reserves returns the reserves of (a, b) in that order.
func (r *Router) Reserves(a, b domain.Address) (*big.Int, *big.Int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, flipped := sortedPair(a.ToLower(), b.ToLower())
	p, ok := r.pairs[k]
	if !ok {
		return new(big.Int), new(big.Int)
	}
	if flipped {
		return domain.Copy(p.reserve1), domain.Copy(p.reserve0)
	}
	return domain.Copy(p.reserve0), domain.Copy(p.reserve1)
}

// SharesOf is the liquidity held by owner in the (a, b) pair.
func (r *Router) SharesOf(a, b, owner domain.Address) *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, _ := sortedPair(a.ToLower(), b.ToLower())
	if p, ok := r.pairs[k]; ok {
		return domain.Copy(p.shares[owner.ToLower()])
	}
	return new(big.Int)
}

func (r *Router) As(account domain.Address) treasury.LiquidityPool {
	return &routerHandle{r, account.ToLower()}
}

// GetAmountOut applies the pool fee: in*997*rOut / (rIn*1000 + in*997).
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	inWithFee := new(big.Int).Mul(amountIn, feeNumerator)
	num := new(big.Int).Mul(inWithFee, reserveOut)
	den := new(big.Int).Mul(reserveIn, feeDenominator)
	den.Add(den, inWithFee)
	return num.Quo(num, den)
}

// setPair must be called with mu held.
func (r *Router) setPair(c ctx.Ctx, k pairKey, p *pair) {
	prev, had := r.pairs[k]
	r.pairs[k] = p
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if had {
			r.pairs[k] = prev
		} else {
			delete(r.pairs, k)
		}
	})
}

func (r *Router) check(deadline time.Time) error {
	if r.paused {
		return ErrPaused
	}
	if r.clock().After(deadline) {
		return ErrExpired
	}
	return nil
}

type routerHandle struct {
	r       *Router
	account domain.Address
}

func (h *routerHandle) Address() domain.Address {
	return h.r.addr
}

func (h *routerHandle) SwapExactTokensForTokens(c ctx.Ctx, amountIn, amountOutMin *big.Int, path []domain.Address, to domain.Address, deadline time.Time) ([]*big.Int, error) {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	if err := h.r.check(deadline); err != nil {
		return nil, err
	}
	if len(path) != 2 {
		return nil, ErrInvalidPath
	}
	tIn, okIn := h.r.tokens(path[0])
	tOut, okOut := h.r.tokens(path[1])
	if !okIn || !okOut {
		return nil, ErrInvalidPath
	}

	k, flipped := sortedPair(tIn.Address(), tOut.Address())
	p, ok := h.r.pairs[k]
	if !ok || p.reserve0.Sign() == 0 || p.reserve1.Sign() == 0 {
		return nil, ErrNoLiquidity
	}
	reserveIn, reserveOut := p.reserve0, p.reserve1
	if flipped {
		reserveIn, reserveOut = p.reserve1, p.reserve0
	}
	amountOut := GetAmountOut(amountIn, reserveIn, reserveOut)
	if amountOut.Sign() == 0 || amountOut.Cmp(amountOutMin) < 0 {
		return nil, ErrInsufficientOutput
	}

	if err := tIn.As(h.r.addr).TransferFrom(c, h.account, h.r.addr, amountIn); err != nil {
		return nil, err
	}
	if err := tOut.As(h.r.addr).Transfer(c, to, amountOut); err != nil {
		return nil, err
	}

	next := p.clone()
	if flipped {
		next.reserve1.Add(next.reserve1, amountIn)
		next.reserve0.Sub(next.reserve0, amountOut)
	} else {
		next.reserve0.Add(next.reserve0, amountIn)
		next.reserve1.Sub(next.reserve1, amountOut)
	}
	h.r.setPair(c, k, next)
	return []*big.Int{domain.Copy(amountIn), amountOut}, nil
}

func (h *routerHandle) AddLiquidity(c ctx.Ctx, tokenA, tokenB domain.Address, amountADesired, amountBDesired, amountAMin, amountBMin *big.Int, to domain.Address, deadline time.Time) (*big.Int, *big.Int, *big.Int, error) {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	if err := h.r.check(deadline); err != nil {
		return nil, nil, nil, err
	}
	tA, okA := h.r.tokens(tokenA)
	tB, okB := h.r.tokens(tokenB)
	if !okA || !okB || tA == tB {
		return nil, nil, nil, ErrInvalidPath
	}

	k, flipped := sortedPair(tA.Address(), tB.Address())
	p, ok := h.r.pairs[k]
	if !ok {
		p = &pair{new(big.Int), new(big.Int), new(big.Int), map[domain.Address]*big.Int{}}
	}
	reserveA, reserveB := p.reserve0, p.reserve1
	if flipped {
		reserveA, reserveB = p.reserve1, p.reserve0
	}

	amountA, amountB := domain.Copy(amountADesired), domain.Copy(amountBDesired)
	if reserveA.Sign() > 0 && reserveB.Sign() > 0 {
		optimalB := quote(amountADesired, reserveA, reserveB)
		if optimalB.Cmp(amountBDesired) <= 0 {
			if optimalB.Cmp(amountBMin) < 0 {
				return nil, nil, nil, ErrInsufficientAmount
			}
			amountB = optimalB
		} else {
			optimalA := quote(amountBDesired, reserveB, reserveA)
			if optimalA.Cmp(amountAMin) < 0 {
				return nil, nil, nil, ErrInsufficientAmount
			}
			amountA = optimalA
		}
	}

	var liquidity *big.Int
	if p.supply.Sign() == 0 {
		liquidity = new(big.Int).Sqrt(new(big.Int).Mul(amountA, amountB))
	} else {
		la := new(big.Int).Mul(amountA, p.supply)
		la.Quo(la, reserveA)
		lb := new(big.Int).Mul(amountB, p.supply)
		lb.Quo(lb, reserveB)
		liquidity = la
		if lb.Cmp(la) < 0 {
			liquidity = lb
		}
	}
	if liquidity.Sign() == 0 {
		return nil, nil, nil, ErrNoLiquidity
	}

	if err := tA.As(h.r.addr).TransferFrom(c, h.account, h.r.addr, amountA); err != nil {
		return nil, nil, nil, err
	}
	if err := tB.As(h.r.addr).TransferFrom(c, h.account, h.r.addr, amountB); err != nil {
		return nil, nil, nil, err
	}

	next := p.clone()
	if flipped {
		next.reserve0.Add(next.reserve0, amountB)
		next.reserve1.Add(next.reserve1, amountA)
	} else {
		next.reserve0.Add(next.reserve0, amountA)
		next.reserve1.Add(next.reserve1, amountB)
	}
	next.supply.Add(next.supply, liquidity)
	owner := to.ToLower()
	next.shares[owner] = new(big.Int).Add(domain.Copy(next.shares[owner]), liquidity)
	h.r.setPair(c, k, next)
	return amountA, amountB, liquidity, nil
}

// quote is amountA * reserveB / reserveA.
func quote(amountA, reserveA, reserveB *big.Int) *big.Int {
	res := new(big.Int).Mul(amountA, reserveB)
	return res.Quo(res, reserveA)
}

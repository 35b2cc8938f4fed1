// Package simulated is an in-memory host ledger: ERC20, ERC721 and ERC1155 style
// contracts plus a constant product router. Every mutation made under a ledger call is
// journaled, so a failed call leaves balances untouched. It backs the dev mode and the
// scenario tests.
package simulated

import (
	"errors"
	"sync"

	"github.com/x-xyz/market/domain"
)

var (
	ErrPaused             = errors.New("router is paused")
	ErrExpired            = errors.New("router: EXPIRED")
	ErrInsufficientOutput = errors.New("router: INSUFFICIENT_OUTPUT_AMOUNT")
	ErrInsufficientAmount = errors.New("router: INSUFFICIENT_AMOUNT")
	ErrNoLiquidity        = errors.New("router: INSUFFICIENT_LIQUIDITY")
	ErrInvalidPath        = errors.New("router: INVALID_PATH")
)

// Chain owns every simulated contract so markets sharing a token see one balance sheet.
type Chain struct {
	mu         sync.Mutex
	clock      domain.Clock
	tokens     map[domain.Address]*Token
	uniques    map[domain.Address]*Unique
	countables map[domain.Address]*Countable
	routers    map[domain.Address]*Router
}

func NewChain(clock domain.Clock) *Chain {
	return &Chain{
		clock:      clock,
		tokens:     map[domain.Address]*Token{},
		uniques:    map[domain.Address]*Unique{},
		countables: map[domain.Address]*Countable{},
		routers:    map[domain.Address]*Router{},
	}
}

// Token returns the token at addr, deploying it on first use.
func (ch *Chain) Token(addr domain.Address, symbol string) *Token {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	addr = addr.ToLower()
	if t, ok := ch.tokens[addr]; ok {
		return t
	}
	t := NewToken(addr, symbol)
	ch.tokens[addr] = t
	return t
}

func (ch *Chain) Unique(addr domain.Address) *Unique {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	addr = addr.ToLower()
	if u, ok := ch.uniques[addr]; ok {
		return u
	}
	u := NewUnique(addr)
	ch.uniques[addr] = u
	return u
}

func (ch *Chain) Countable(addr domain.Address) *Countable {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	addr = addr.ToLower()
	if m, ok := ch.countables[addr]; ok {
		return m
	}
	m := NewCountable(addr)
	ch.countables[addr] = m
	return m
}

// Router returns the router at addr. Tokens are resolved through the chain.
func (ch *Chain) Router(addr domain.Address) *Router {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	addr = addr.ToLower()
	if r, ok := ch.routers[addr]; ok {
		return r
	}
	r := NewRouter(addr, ch.clock, ch.lookupToken)
	ch.routers[addr] = r
	return r
}

func (ch *Chain) lookupToken(addr domain.Address) (*Token, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	t, ok := ch.tokens[addr.ToLower()]
	return t, ok
}

package simulated

import (
	"math/big"
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
)

// Token is a fungible ERC20 style token.
type Token struct {
	mu         sync.Mutex
	addr       domain.Address
	symbol     string
	balances   map[domain.Address]*big.Int
	allowances map[domain.Address]map[domain.Address]*big.Int
}

func NewToken(addr domain.Address, symbol string) *Token {
	return &Token{
		addr:       addr.ToLower(),
		symbol:     symbol,
		balances:   map[domain.Address]*big.Int{},
		allowances: map[domain.Address]map[domain.Address]*big.Int{},
	}
}

func (t *Token) Address() domain.Address {
	return t.addr
}

func (t *Token) Symbol() string {
	return t.symbol
}

// Mint credits amount to holder outside of any ledger call.
func (t *Token) Mint(holder domain.Address, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	holder = holder.ToLower()
	t.balances[holder] = new(big.Int).Add(t.balance(holder), amount)
}

// As returns the handle used by account.
func (t *Token) As(account domain.Address) domain.PaymentToken {
	return &tokenHandle{t, account.ToLower()}
}

func (t *Token) balance(holder domain.Address) *big.Int {
	if b, ok := t.balances[holder]; ok {
		return b
	}
	return domain.Big0
}

func (t *Token) allowance(owner, spender domain.Address) *big.Int {
	if a, ok := t.allowances[owner][spender]; ok {
		return a
	}
	return domain.Big0
}

func (t *Token) setBalance(c ctx.Ctx, holder domain.Address, v *big.Int) {
	prev, had := t.balances[holder]
	t.balances[holder] = v
	journal.OnRevert(c, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if had {
			t.balances[holder] = prev
		} else {
			delete(t.balances, holder)
		}
	})
}

func (t *Token) setAllowance(c ctx.Ctx, owner, spender domain.Address, v *big.Int) {
	if t.allowances[owner] == nil {
		t.allowances[owner] = map[domain.Address]*big.Int{}
	}
	prev, had := t.allowances[owner][spender]
	t.allowances[owner][spender] = v
	journal.OnRevert(c, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if had {
			t.allowances[owner][spender] = prev
		} else {
			delete(t.allowances[owner], spender)
		}
	})
}

// move must be called with mu held.
func (t *Token) move(c ctx.Ctx, from, to domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidPrice
	}
	fromBal := t.balance(from)
	if fromBal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	if from == to || amount.Sign() == 0 {
		return nil
	}
	t.setBalance(c, from, new(big.Int).Sub(fromBal, amount))
	t.setBalance(c, to, new(big.Int).Add(t.balance(to), amount))
	return nil
}

type tokenHandle struct {
	t       *Token
	account domain.Address
}

func (h *tokenHandle) TransferFrom(c ctx.Ctx, payer, payee domain.Address, amount *big.Int) error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	payer, payee = payer.ToLower(), payee.ToLower()

	if h.t.balance(payer).Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	if payer != h.account {
		allowance := h.t.allowance(payer, h.account)
		if allowance.Cmp(amount) < 0 {
			return domain.ErrInsufficientApproval
		}
		h.t.setAllowance(c, payer, h.account, new(big.Int).Sub(allowance, amount))
	}
	return h.t.move(c, payer, payee, amount)
}

func (h *tokenHandle) Transfer(c ctx.Ctx, to domain.Address, amount *big.Int) error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.t.move(c, h.account, to.ToLower(), amount)
}

func (h *tokenHandle) Approve(c ctx.Ctx, spender domain.Address, amount *big.Int) error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	h.t.setAllowance(c, h.account, spender.ToLower(), domain.Copy(amount))
	return nil
}

func (h *tokenHandle) BalanceOf(c ctx.Ctx, holder domain.Address) (*big.Int, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return domain.Copy(h.t.balance(holder.ToLower())), nil
}

func (h *tokenHandle) Allowance(c ctx.Ctx, owner, spender domain.Address) (*big.Int, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return domain.Copy(h.t.allowance(owner.ToLower(), spender.ToLower())), nil
}

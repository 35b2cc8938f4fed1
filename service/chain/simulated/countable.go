package simulated

import (
	"math/big"
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

type balanceKey struct {
	id     string
	holder domain.Address
}

// Countable is an ERC1155 style collection.
type Countable struct {
	mu        sync.Mutex
	addr      domain.Address
	balances  map[balanceKey]*big.Int
	approvals approvals
}

func NewCountable(addr domain.Address) *Countable {
	return &Countable{
		addr:      addr.ToLower(),
		balances:  map[balanceKey]*big.Int{},
		approvals: approvals{},
	}
}

func (m *Countable) Address() domain.Address {
	return m.addr
}

func (m *Countable) Mint(to domain.Address, id, amount *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := balanceKey{id.String(), to.ToLower()}
	m.balances[k] = new(big.Int).Add(m.balance(k), amount)
}

func (m *Countable) SetApprovalForAll(owner, operator domain.Address, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals.set(owner.ToLower(), operator.ToLower(), ok)
}

func (m *Countable) As(account domain.Address) asset.CountableAssetTransfer {
	return &countableHandle{m, account.ToLower()}
}

func (m *Countable) balance(k balanceKey) *big.Int {
	if b, ok := m.balances[k]; ok {
		return b
	}
	return domain.Big0
}

func (m *Countable) setBalance(c ctx.Ctx, k balanceKey, v *big.Int) {
	prev, had := m.balances[k]
	m.balances[k] = v
	journal.OnRevert(c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if had {
			m.balances[k] = prev
		} else {
			delete(m.balances, k)
		}
	})
}

type countableHandle struct {
	m       *Countable
	account domain.Address
}

func (h *countableHandle) SafeTransferFrom(c ctx.Ctx, from, to domain.Address, id, amount *big.Int) error {
	return h.SafeBatchTransferFrom(c, from, to, []*big.Int{id}, []*big.Int{amount})
}

// SafeBatchTransferFrom validates every pair before moving anything.
func (h *countableHandle) SafeBatchTransferFrom(c ctx.Ctx, from, to domain.Address, ids, amounts []*big.Int) error {
	if len(ids) != len(amounts) {
		return domain.ErrLengthMismatch
	}
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	from, to = from.ToLower(), to.ToLower()

	if h.account != from && !h.m.approvals.get(from, h.account) {
		return domain.ErrCustodyNotAuthorized
	}
	need := map[string]*big.Int{}
	for i, id := range ids {
		if amounts[i].Sign() < 0 {
			return domain.ErrInvalidQuantity
		}
		n, ok := need[id.String()]
		if !ok {
			n = new(big.Int)
			need[id.String()] = n
		}
		n.Add(n, amounts[i])
	}
	for id, n := range need {
		if h.m.balance(balanceKey{id, from}).Cmp(n) < 0 {
			return domain.ErrNotAssetOwner
		}
	}
	if from == to {
		return nil
	}
	for i, id := range ids {
		src, dst := balanceKey{id.String(), from}, balanceKey{id.String(), to}
		h.m.setBalance(c, src, new(big.Int).Sub(h.m.balance(src), amounts[i]))
		h.m.setBalance(c, dst, new(big.Int).Add(h.m.balance(dst), amounts[i]))
	}
	return nil
}

func (h *countableHandle) BalanceOf(c ctx.Ctx, holder domain.Address, id *big.Int) (*big.Int, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	return domain.Copy(h.m.balance(balanceKey{id.String(), holder.ToLower()})), nil
}

func (h *countableHandle) IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) (bool, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	return h.m.approvals.get(owner.ToLower(), operator.ToLower()), nil
}

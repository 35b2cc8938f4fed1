package simulated

import (
	"math/big"
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

type approvals map[domain.Address]map[domain.Address]bool

func (a approvals) get(owner, operator domain.Address) bool {
	return a[owner][operator]
}

func (a approvals) set(owner, operator domain.Address, ok bool) {
	if a[owner] == nil {
		a[owner] = map[domain.Address]bool{}
	}
	a[owner][operator] = ok
}

// Unique is an ERC721 style collection.
type Unique struct {
	mu        sync.Mutex
	addr      domain.Address
	owners    map[string]domain.Address
	approvals approvals
}

func NewUnique(addr domain.Address) *Unique {
	return &Unique{
		addr:      addr.ToLower(),
		owners:    map[string]domain.Address{},
		approvals: approvals{},
	}
}

func (u *Unique) Address() domain.Address {
	return u.addr
}

func (u *Unique) Mint(to domain.Address, id *big.Int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.owners[id.String()] = to.ToLower()
}

func (u *Unique) SetApprovalForAll(owner, operator domain.Address, ok bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.approvals.set(owner.ToLower(), operator.ToLower(), ok)
}

func (u *Unique) As(account domain.Address) asset.UniqueAssetTransfer {
	return &uniqueHandle{u, account.ToLower()}
}

type uniqueHandle struct {
	u       *Unique
	account domain.Address
}

func (h *uniqueHandle) TransferFrom(c ctx.Ctx, from, to domain.Address, id *big.Int) error {
	h.u.mu.Lock()
	defer h.u.mu.Unlock()
	from, to = from.ToLower(), to.ToLower()

	key := id.String()
	owner, ok := h.u.owners[key]
	if !ok || owner != from {
		return domain.ErrNotAssetOwner
	}
	if h.account != from && !h.u.approvals.get(from, h.account) {
		return domain.ErrCustodyNotAuthorized
	}
	h.u.owners[key] = to
	journal.OnRevert(c, func() {
		h.u.mu.Lock()
		defer h.u.mu.Unlock()
		h.u.owners[key] = owner
	})
	return nil
}

func (h *uniqueHandle) OwnerOf(c ctx.Ctx, id *big.Int) (domain.Address, error) {
	h.u.mu.Lock()
	defer h.u.mu.Unlock()
	owner, ok := h.u.owners[id.String()]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (h *uniqueHandle) IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) (bool, error) {
	h.u.mu.Lock()
	defer h.u.mu.Unlock()
	return h.u.approvals.get(owner.ToLower(), operator.ToLower()), nil
}

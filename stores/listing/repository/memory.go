package repository

import (
	"sort"
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/listing"
)

// memoryRepo keeps listings in process. Writes are journaled.
type memoryRepo struct {
	mu     sync.RWMutex
	market string
	seq    uint64
	items  map[uint64]*listing.Listing
}

func NewMemoryRepo(market string) listing.Repo {
	return &memoryRepo{
		market: market,
		items:  map[uint64]*listing.Listing{},
	}
}

func (r *memoryRepo) NextId(c ctx.Ctx) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.seq
	r.seq++
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.seq--
	})
	return id, nil
}

func (r *memoryRepo) Insert(c ctx.Ctx, l *listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := l.Clone()
	cp.Market = r.market
	r.items[cp.Id] = cp
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.items, cp.Id)
	})
	return nil
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id uint64) (*listing.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l.Clone(), nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	o, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	res := []*listing.Listing{}
	for _, l := range r.items {
		if o.Seller != nil && !l.Seller.Equals(*o.Seller) {
			continue
		}
		if o.Status != nil && l.Status != *o.Status {
			continue
		}
		if o.AssetContract != nil && !l.AssetContract.Equals(*o.AssetContract) {
			continue
		}
		if o.AssetId != nil && l.AssetId.Cmp(o.AssetId) != 0 {
			continue
		}
		res = append(res, l.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return paginate(res, o.Offset, o.Limit), nil
}

func (r *memoryRepo) Patch(c ctx.Ctx, id uint64, p *listing.PatchableListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := l.Clone()
	next := l.Clone()
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.Buyer != nil {
		next.Buyer = p.Buyer.ToLower()
	}
	if p.SoldAt != nil {
		t := *p.SoldAt
		next.SoldAt = &t
	}
	r.items[id] = next
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.items[id] = prev
	})
	return nil
}

func paginate(res []*listing.Listing, offset, limit *int32) []*listing.Listing {
	if offset != nil && *offset > 0 {
		if int(*offset) >= len(res) {
			return []*listing.Listing{}
		}
		res = res[*offset:]
	}
	if limit != nil && *limit > 0 && int(*limit) < len(res) {
		res = res[:*limit]
	}
	return res
}

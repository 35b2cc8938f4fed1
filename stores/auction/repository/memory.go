package repository

import (
	"sort"
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/auction"
)

type memoryRepo struct {
	mu     sync.RWMutex
	market string
	seq    uint64
	items  map[uint64]*auction.Auction
}

func NewMemoryRepo(market string) auction.Repo {
	return &memoryRepo{
		market: market,
		items:  map[uint64]*auction.Auction{},
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

func (r *memoryRepo) Insert(c ctx.Ctx, a *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := a.Clone()
	cp.Market = r.market
	r.items[cp.Id] = cp
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.items, cp.Id)
	})
	return nil
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	o, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	res := []*auction.Auction{}
	for _, a := range r.items {
		if o.Seller != nil && !a.Seller.Equals(*o.Seller) {
			continue
		}
		if o.HighestBidder != nil && !a.HighestBidder.Equals(*o.HighestBidder) {
			continue
		}
		if o.Status != nil && a.Status != *o.Status {
			continue
		}
		if o.AssetContract != nil && !a.AssetContract.Equals(*o.AssetContract) {
			continue
		}
		if o.AssetId != nil && a.AssetId.Cmp(o.AssetId) != 0 {
			continue
		}
		res = append(res, a.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	if o.Offset != nil && *o.Offset > 0 {
		if int(*o.Offset) >= len(res) {
			return []*auction.Auction{}, nil
		}
		res = res[*o.Offset:]
	}
	if o.Limit != nil && *o.Limit > 0 && int(*o.Limit) < len(res) {
		res = res[:*o.Limit]
	}
	return res, nil
}

func (r *memoryRepo) Patch(c ctx.Ctx, id uint64, p *auction.PatchableAuction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := a.Clone()
	next := a.Clone()
	if p.HighestBidder != nil {
		next.HighestBidder = p.HighestBidder.ToLower()
	}
	if p.HighestBid != nil {
		next.HighestBid = domain.Copy(p.HighestBid)
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.FinishedAt != nil {
		t := *p.FinishedAt
		next.FinishedAt = &t
	}
	r.items[id] = next
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.items[id] = prev
	})
	return nil
}

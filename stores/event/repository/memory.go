package repository

import (
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain/event"
)

type memoryRepo struct {
	mu     sync.RWMutex
	market string
	events []*event.Event
}

func NewMemoryRepo(market string) event.Repo {
	return &memoryRepo{market: market}
}

func (r *memoryRepo) Insert(c ctx.Ctx, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	cp.Market = r.market
	r.events = append(r.events, &cp)
	n := len(r.events)
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = r.events[:n-1]
	})
	return nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, opts ...event.FindAllOptionsFunc) ([]*event.Event, error) {
	o, err := event.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	res := []*event.Event{}
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if o.Type != nil && e.Type != *o.Type {
			continue
		}
		if o.SaleId != nil && (e.SaleId == nil || *e.SaleId != *o.SaleId) {
			continue
		}
		if o.Account != nil && !e.Seller.Equals(*o.Account) && !e.Account.Equals(*o.Account) {
			continue
		}
		cp := *e
		res = append(res, &cp)
	}

	if o.Offset != nil && *o.Offset > 0 {
		if int(*o.Offset) >= len(res) {
			return []*event.Event{}, nil
		}
		res = res[*o.Offset:]
	}
	if o.Limit != nil && *o.Limit > 0 && int(*o.Limit) < len(res) {
		res = res[:*o.Limit]
	}
	return res, nil
}

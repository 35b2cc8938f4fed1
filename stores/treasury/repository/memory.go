package repository

import (
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/treasury"
)

type memoryRepo struct {
	mu     sync.RWMutex
	states map[string]*treasury.State
}

func NewMemoryRepo() treasury.Repo {
	return &memoryRepo{states: map[string]*treasury.State{}}
}

func (r *memoryRepo) FindOne(c ctx.Ctx, market string) (*treasury.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[market]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memoryRepo) Upsert(c ctx.Ctx, s *treasury.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, existed := r.states[s.Market]
	r.states[s.Market] = s.Clone()
	journal.OnRevert(c, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if existed {
			r.states[s.Market] = prev
		} else {
			delete(r.states, s.Market)
		}
	})
	return nil
}

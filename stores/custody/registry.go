package custody

import (
	"sync"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

// Registry is the configured set of accepted asset contracts of one market.
type Registry struct {
	mu        sync.RWMutex
	unique    map[domain.Address]asset.UniqueAssetTransfer
	countable map[domain.Address]asset.CountableAssetTransfer
}

func NewRegistry() *Registry {
	return &Registry{
		unique:    map[domain.Address]asset.UniqueAssetTransfer{},
		countable: map[domain.Address]asset.CountableAssetTransfer{},
	}
}

func (r *Registry) AddUnique(contract domain.Address, h asset.UniqueAssetTransfer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unique[contract.ToLower()] = h
	return r
}

func (r *Registry) AddCountable(contract domain.Address, h asset.CountableAssetTransfer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countable[contract.ToLower()] = h
	return r
}

func (r *Registry) Kind(c ctx.Ctx, contract domain.Address) (asset.Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.unique[contract.ToLower()]; ok {
		return asset.KindUnique, nil
	}
	if _, ok := r.countable[contract.ToLower()]; ok {
		return asset.KindCountable, nil
	}
	return "", domain.ErrUnsupportedAsset
}

func (r *Registry) Unique(c ctx.Ctx, contract domain.Address) (asset.UniqueAssetTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.unique[contract.ToLower()]
	if !ok {
		return nil, domain.ErrUnsupportedAsset
	}
	return h, nil
}

func (r *Registry) Countable(c ctx.Ctx, contract domain.Address) (asset.CountableAssetTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.countable[contract.ToLower()]
	if !ok {
		return nil, domain.ErrUnsupportedAsset
	}
	return h, nil
}

// Contracts lists every accepted contract with its kind.
func (r *Registry) Contracts() map[domain.Address]asset.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := map[domain.Address]asset.Kind{}
	for a := range r.unique {
		res[a] = asset.KindUnique
	}
	for a := range r.countable {
		res[a] = asset.KindCountable
	}
	return res
}

package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Loader produces the value for a missed key.
type Loader func() (interface{}, error)

// Service caches json encoded values under a common prefix.
type Service interface {
	// GetByFunc fills container from the cache, or from load on a miss and caches it.
	GetByFunc(c ctx.Ctx, key string, container interface{}, load Loader) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
}

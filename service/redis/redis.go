package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain/keys"
)

var (
	ErrNotFound = errors.New("redis key not found")
	ErrNoTTL    = errors.New("redis key has no ttl")
	// ErrGapTime is returned when no pool serves the command
	ErrGapTime = errors.New("redis pool unavailable")
	ErrLockHeld = errors.New("redis lock is held by someone else")
)

// Forever disables the expiry of a key.
const Forever = time.Duration(-1)

type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX reports whether key was set.
	SetNX(c ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(c ctx.Ctx, ks ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key.
	TTL(c ctx.Ctx, key string) (int, error)
	ScriptDo(c ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error)
	Ping(c ctx.Ctx) error
	Name() string
}

// ScriptHdl is a lua script with a fixed number of keys.
type ScriptHdl struct {
	script   *redis.Script
	keyCount int
}

func NewScript(keyCount int, src string) *ScriptHdl {
	return &ScriptHdl{
		script:   redis.NewScript(keyCount, src),
		keyCount: keyCount,
	}
}

// Do runs the script through EVALSHA, falling back to EVAL on a cache miss.
func (h *ScriptHdl) Do(conn redis.Conn, keysAndArgs ...interface{}) (interface{}, error) {
	return h.script.Do(conn, keysAndArgs...)
}

func (h *ScriptHdl) prefix(keysAndArgs ...interface{}) string {
	if h.keyCount == 0 || len(keysAndArgs) == 0 {
		return "n/a"
	}
	if k, ok := keysAndArgs[0].(string); ok {
		return keys.GetPrefix(k)
	}
	return "n/a"
}

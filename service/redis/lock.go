package redis

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/market/base/backoff"
	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
)

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type LockConfig struct {
	// TTL bounds how long a crashed holder blocks the others.
	TTL          time.Duration
	RetryStart   time.Duration
	RetryLimit   time.Duration
	AcquireLimit time.Duration
}

var DefaultLockConfig = LockConfig{
	TTL:          30 * time.Second,
	RetryStart:   10 * time.Millisecond,
	RetryLimit:   500 * time.Millisecond,
	AcquireLimit: 10 * time.Second,
}

type Locker interface {
	// Lock blocks until key is held, AcquireLimit passes or c is done.
	Lock(c ctx.Ctx, key string) (unlock func(), err error)
}

type locker struct {
	redis Service
	cfg   LockConfig
}

func NewLocker(redis Service, cfg LockConfig) Locker {
	return &locker{redis: redis, cfg: cfg}
}

func (l *locker) Lock(c ctx.Ctx, key string) (func(), error) {
	token := uuid.New().String()
	bo := backoff.NewExponential(l.cfg.RetryStart, l.cfg.RetryLimit)
	deadline := time.Now().Add(l.cfg.AcquireLimit)

	for {
		ok, err := l.redis.SetNX(c, key, []byte(token), l.cfg.TTL)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "key": key}).Error("redis.SetNX failed")
			return nil, err
		}
		if ok {
			return func() { l.release(c, key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockHeld
		}
		if err := bo.Backoff(c); err != nil {
			return nil, err
		}
	}
}

func (l *locker) release(c ctx.Ctx, key, token string) {
	if _, err := l.redis.ScriptDo(c, releaseScript, key, token); err != nil {
		// the ttl frees the key eventually
		c.WithFields(log.Fields{"err": err, "key": key}).Warn("release lock failed")
	}
}

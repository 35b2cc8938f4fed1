package redisclient

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/market/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	dialRetries = 3
)

type Config struct {
	URI            string  `mapstructure:"uri"`
	Password       string  `mapstructure:"password"`
	PoolMultiplier float64 `mapstructure:"poolMultiplier"`
	// Retry redials with jitter; unit tests leave it off.
	Retry bool `mapstructure:"retry"`
}

// MustConnectRedis panics if the connection fails.
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

func ConnectRedis(cfg Config) (*redis.Pool, error) {
	maxIdle, maxActive := 200, 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// 25% idle
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	p := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	if err := dial(p, cfg); err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Error("fail to dial Redis")
		return nil, err
	}

	log.Log().WithField("redisURI", cfg.URI).Info("redis connected")
	return p, nil
}

// dial connects once, plus dialRetries more times with at least one second of jitter
// when cfg.Retry is set.
func dial(p *redis.Pool, cfg Config) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	var err error
	for i := 0; i <= dialRetries; i++ {
		if i > 0 {
			if !cfg.Retry {
				break
			}
			time.Sleep(time.Second + time.Duration(r.Float32()*1000)*time.Millisecond)
		}
		var c redis.Conn
		if c, err = p.Dial(); err != nil {
			log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err, "attempt": i}).Warn("fail to dial Redis")
			continue
		}
		err = p.TestOnBorrow(c, time.Time{})
		c.Close()
		if err == nil {
			return nil
		}
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err, "attempt": i}).Warn("fail to ping Redis")
	}
	return err
}

package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain/keys"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1

	delBatchSize = 100
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	if r.pools == nil || r.pools.Src == nil {
		return nil, ErrGapTime
	}

	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(c ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	reply, err := redis.DoContext(conn, c, commandName, args...)

	// release the connection right away so the pool needs fewer of them
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) tags(fn, key string) []string {
	return []string{"func", fn, "cluster", r.name, "prefix", keys.GetPrefix(key)}
}

func (r *redImpl) bumpTTL(expire time.Duration, tags []string) {
	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
	} else {
		r.met.BumpAvg("ttl", expire.Seconds(), tags...)
	}
}

func (r *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(c, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("GET redis failed")
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.bumpTTL(expire, tags)
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	args := []interface{}{key, val}
	if expire != Forever {
		args = append(args, "PX", int64(expire/time.Millisecond))
	}
	if _, err := r.connDo(c, "SET", args...); err != nil {
		c.WithField("err", err).Error("set redis failed")
		return err
	}
	return nil
}

func (r *redImpl) SetNX(c ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	tags := r.tags("setnx", key)
	defer r.met.BumpTime("time", tags...).End()
	r.bumpTTL(expire, tags)

	args := []interface{}{key, val, "NX"}
	if expire != Forever {
		args = append(args, "PX", int64(expire/time.Millisecond))
	}
	// SET NX replies nil when the key exists
	_, err := redis.String(r.connDo(c, "SET", args...))
	if err == redis.ErrNil {
		return false, nil
	} else if err != nil {
		c.WithField("err", err).Error("setnx redis failed")
		return false, err
	}
	return true, nil
}

func (r *redImpl) Del(c ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, fmt.Errorf("length of keys is 0")
	}

	tags := r.tags("del", ks[0])
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("elements", float64(len(ks)), tags...)

	affected := 0
	for start := 0; start < len(ks); start += delBatchSize {
		end := start + delBatchSize
		if end > len(ks) {
			end = len(ks)
		}
		res, err := redis.Int(r.connDo(c, "DEL", redis.Args{}.AddFlat(ks[start:end])...))
		if err != nil {
			c.WithField("err", err).Error("DEL redis failed")
			return 0, err
		}
		affected += res
	}
	return affected, nil
}

func (r *redImpl) Exists(c ctx.Ctx, key string) (bool, error) {
	defer r.met.BumpTime("time", r.tags("exists", key)...).End()
	res, err := redis.Bool(r.connDo(c, "EXISTS", key))
	if err != nil {
		c.WithField("err", err).Error("Exists redis failed")
	}
	return res, err
}

func (r *redImpl) TTL(c ctx.Ctx, key string) (int, error) {
	defer r.met.BumpTime("time", r.tags("ttl", key)...).End()
	res, err := redis.Int(r.connDo(c, "TTL", key))
	if err != nil {
		c.WithField("err", err).Error("TTL redis failed")
		return 0, err
	}

	if res == retTTLNoKey {
		return res, ErrNotFound
	} else if res == retTTLNoExpire {
		return res, ErrNoTTL
	}
	return res, nil
}

func (r *redImpl) ScriptDo(c ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error) {
	defer r.met.BumpTime("time", "func", "scriptdo", "cluster", r.name, "prefix", hdl.prefix(keysAndArgs...)).End()

	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
		}
	}()

	value, err := hdl.Do(conn, keysAndArgs...)
	if err != nil && err != redis.ErrNil {
		c.WithField("err", err).Error("ScriptDo redis failed")
	}
	return value, err
}

func (r *redImpl) Ping(c ctx.Ctx) error {
	defer r.met.BumpTime("time", "func", "ping", "cluster", r.name, "prefix", keys.PfxHealthCheck).End()
	_, err := r.connDo(c, "PING")
	return err
}

func (r *redImpl) Name() string {
	return r.name
}

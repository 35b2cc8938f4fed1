package cache

import (
	"encoding/json"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/service/cache/provider"
)

type impl struct {
	ttl   time.Duration
	pfx   string
	cache provider.Provider
}

func New(config ServiceConfig) Service {
	return &impl{
		ttl:   config.Ttl,
		pfx:   config.Pfx,
		cache: config.Cache,
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, load Loader) error {
	if err := im.Get(c, key, container); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}

	val, err := load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(val)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("json.Marshal failed")
		return err
	}
	if err := im.cache.Set(c, im.key(key), raw, im.ttl); err != nil {
		// serve the loaded value anyway
		c.WithFields(log.Fields{"err": err, "key": key}).Warn("cache.Set failed")
	}
	return json.Unmarshal(raw, container)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	raw, _, err := im.cache.Get(c, im.key(key))
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("cache.Get failed")
		return err
	}
	if err := json.Unmarshal(raw, container); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("json.Unmarshal failed")
		return err
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("json.Marshal failed")
		return err
	}
	return im.cache.Set(c, im.key(key), raw, im.ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if err := im.cache.Del(c, im.key(key)); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("cache.Del failed")
		return err
	}
	return nil
}

func (im *impl) key(k string) string {
	return keys.RedisKey(im.pfx, k)
}

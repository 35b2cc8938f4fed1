package bootstrap

import (
	"fmt"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/database/mongoclient"
	"github.com/x-xyz/market/base/database/redisclient"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/service/cache/provider"
	"github.com/x-xyz/market/service/cache/provider/compound"
	"github.com/x-xyz/market/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/market/service/cache/provider/redis"
	"github.com/x-xyz/market/service/chain"
	"github.com/x-xyz/market/service/chain/contract"
	"github.com/x-xyz/market/service/chain/simulated"
	"github.com/x-xyz/market/service/notifier/discord"
	"github.com/x-xyz/market/service/notifier/webhook"
	"github.com/x-xyz/market/service/query"
	"github.com/x-xyz/market/service/redis"
	market_usecase "github.com/x-xyz/market/stores/market/usecase"
)

const defaultLocalCacheMB = 16

// Runtime is everything a binary needs after the markets are assembled.
type Runtime struct {
	Config  *Config
	Markets market.Markets

	Mongo *mongoclient.Client
	Redis redis.Service
	Cache provider.Provider
	// Chain is nil when the markets run on the simulated chain.
	Chain   chain.Client
	Handles market.Chain
	Pool    *goroutines.Pool
}

// Close waits for queued notifications.
func (r *Runtime) Close() {
	if r.Pool != nil {
		r.Pool.Release()
	}
	log.Sync()
}

// Build connects the configured infrastructure and assembles every market.
func Build(c ctx.Ctx, cfg *Config) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Markets: market.Markets{}}

	var q query.Mongo
	if cfg.Mongo.Enabled {
		c.Info("init mongo")
		rt.Mongo = mongoclient.MustConnectMongoClient(cfg.Mongo.Config)
		q = query.New(rt.Mongo, query.Options{
			CheckIndex:   cfg.Mongo.CheckIndex,
			Transactions: cfg.Mongo.Transactions,
		})
	} else {
		c.Warn("mongo disabled, markets keep their state in memory")
	}

	var locker redis.Locker
	localMB := cfg.Redis.LocalCacheMB
	if localMB <= 0 {
		localMB = defaultLocalCacheMB
	}
	local := primitive.NewPrimitive("market", localMB)
	rt.Cache = local
	if cfg.Redis.Enabled {
		c.Info("init redis")
		name := cfg.Redis.Name
		if name == "" {
			name = "market"
		}
		pool := redisclient.MustConnectRedis(cfg.Redis.Config)
		rt.Redis = redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
		locker = redis.NewLocker(rt.Redis, redis.DefaultLockConfig)
		rt.Cache = compound.NewCompound(local, redisProvider.NewRedis(rt.Redis))
	}

	if cfg.Chain.Simulated {
		if cfg.Chain.Custodian.IsEmpty() {
			return nil, fmt.Errorf("chain.custodian is required on the simulated chain: %w", domain.ErrBadParamInput)
		}
		c.WithField("custodian", cfg.Chain.Custodian).Warn("running on the simulated chain")
		rt.Handles = simulated.NewChain(time.Now).Handles(cfg.Chain.Custodian)
	} else {
		client, err := chain.NewClient(c, cfg.Chain.ClientCfg)
		if err != nil {
			c.WithField("err", err).Error("chain.NewClient failed")
			return nil, err
		}
		rt.Chain = client
		rt.Handles = contract.NewHandles(client)
	}

	workers := cfg.Notifier.Workers
	if workers > 0 {
		rt.Pool = goroutines.NewPool(workers, goroutines.WithTaskQueueLength(1024))
	}

	var webhooks []event.Notifier
	for _, w := range cfg.Notifier.Webhooks {
		if w.Url != "" {
			webhooks = append(webhooks, webhook.New(w))
		}
	}
	var discordSession discord.Sender
	if cfg.Notifier.Discord.BotKey != "" {
		session, err := discord.Dial(cfg.Notifier.Discord.BotKey)
		if err != nil {
			c.WithField("err", err).Error("discord.Dial failed")
			return nil, err
		}
		discordSession = session
	}

	for _, mc := range cfg.Markets {
		if _, ok := rt.Markets[mc.Name]; ok {
			return nil, fmt.Errorf("duplicated market %q: %w", mc.Name, domain.ErrBadParamInput)
		}
		notifiers := append([]event.Notifier{}, webhooks...)
		if discordSession != nil {
			notifiers = append(notifiers, discord.New(discordSession, cfg.Notifier.Discord, mc.PayToken))
		}

		m, err := market_usecase.New(c, &market_usecase.MarketUseCaseCfg{
			Config:    mc,
			Admins:    cfg.Admins,
			Chain:     rt.Handles,
			Query:     q,
			Locker:    locker,
			Cache:     rt.Cache,
			Notifiers: notifiers,
			Pool:      rt.Pool,
			Clock:     time.Now,
		})
		if err != nil {
			c.WithFields(log.Fields{"err": err, "market": mc.Name}).Error("market_usecase.New failed")
			return nil, err
		}
		rt.Markets[mc.Name] = m
	}
	c.WithField("markets", len(rt.Markets)).Info("markets assembled")
	return rt, nil
}

package usecase

import (
	"math/big"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/domain/treasury"
	"github.com/x-xyz/market/service/cache"
	"github.com/x-xyz/market/service/cache/provider"
	"github.com/x-xyz/market/service/ledger"
	"github.com/x-xyz/market/service/query"
	"github.com/x-xyz/market/service/redis"
	auction_repository "github.com/x-xyz/market/stores/auction/repository"
	auction_usecase "github.com/x-xyz/market/stores/auction/usecase"
	audit_usecase "github.com/x-xyz/market/stores/audit/usecase"
	"github.com/x-xyz/market/stores/custody"
	custody_usecase "github.com/x-xyz/market/stores/custody/usecase"
	event_repository "github.com/x-xyz/market/stores/event/repository"
	event_usecase "github.com/x-xyz/market/stores/event/usecase"
	listing_repository "github.com/x-xyz/market/stores/listing/repository"
	listing_usecase "github.com/x-xyz/market/stores/listing/usecase"
	settlement_usecase "github.com/x-xyz/market/stores/settlement/usecase"
	treasury_repository "github.com/x-xyz/market/stores/treasury/repository"
	treasury_usecase "github.com/x-xyz/market/stores/treasury/usecase"
)

const treasuryCacheTTL = 30 * time.Second

type AssetCfg struct {
	Address domain.Address `mapstructure:"address"`
	Kind    asset.Kind     `mapstructure:"kind"`
}

// Config is one entry of the markets list.
type Config struct {
	Name     string          `mapstructure:"name"`
	PayToken domain.PayToken `mapstructure:"payToken"`
	// CounterToken and Router enable liquidity conversion; leave them empty to only
	// accumulate.
	CounterToken domain.PayToken       `mapstructure:"counterToken"`
	Router       domain.Address        `mapstructure:"router"`
	Cap          string                `mapstructure:"cap"`
	Fees         treasury.FeeSchedule  `mapstructure:"fees"`
	// An empty rewards wallet means the custodian itself.
	Wallets      treasury.WalletConfig `mapstructure:"wallets"`
	Assets       []AssetCfg            `mapstructure:"assets"`
}

type MarketUseCaseCfg struct {
	Config Config
	Admins domain.Addresses
	Chain  market.Chain

	// Query backs the repositories and transactions; nil keeps everything in memory.
	Query query.Mongo
	// Locker serializes the market across replicas; optional.
	Locker redis.Locker
	// Cache holds the treasury read path; optional.
	Cache provider.Provider

	Notifiers []event.Notifier
	Pool      *goroutines.Pool
	Clock     domain.Clock
}

type repos struct {
	listings listing.Repo
	auctions auction.Repo
	events   event.Repo
	treasury treasury.Repo
}

func newRepos(q query.Mongo, name string) repos {
	if q == nil {
		return repos{
			listings: listing_repository.NewMemoryRepo(name),
			auctions: auction_repository.NewMemoryRepo(name),
			events:   event_repository.NewMemoryRepo(name),
			treasury: treasury_repository.NewMemoryRepo(),
		}
	}
	return repos{
		listings: listing_repository.NewMongoRepo(q, name),
		auctions: auction_repository.NewMongoRepo(q, name),
		events:   event_repository.NewMongoRepo(q, name),
		treasury: treasury_repository.NewMongoRepo(q),
	}
}

// New assembles one market instance and initializes its treasury.
func New(c ctx.Ctx, cfg *MarketUseCaseCfg) (*market.Market, error) {
	mc := cfg.Config
	c = ctx.WithValue(c, "market", mc.Name)

	if mc.Name == "" || mc.PayToken.Address.IsEmpty() {
		c.Error("market name and pay token are required")
		return nil, domain.ErrBadParamInput
	}
	if !mc.Fees.IsValid() {
		c.WithField("fees", mc.Fees).Error("invalid fee schedule")
		return nil, domain.ErrBadParamInput
	}
	capAmount := big.NewInt(0)
	if mc.Cap != "" {
		n, err := domain.ParseAmount(mc.Cap)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "cap": mc.Cap}).Error("invalid cap")
			return nil, err
		}
		capAmount = n
	}

	registry := custody.NewRegistry()
	for _, a := range mc.Assets {
		switch a.Kind {
		case asset.KindUnique:
			h, err := cfg.Chain.Unique(c, a.Address)
			if err != nil {
				c.WithFields(log.Fields{"err": err, "contract": a.Address}).Error("chain.Unique failed")
				return nil, err
			}
			registry.AddUnique(a.Address, h)
		case asset.KindCountable:
			h, err := cfg.Chain.Countable(c, a.Address)
			if err != nil {
				c.WithFields(log.Fields{"err": err, "contract": a.Address}).Error("chain.Countable failed")
				return nil, err
			}
			registry.AddCountable(a.Address, h)
		default:
			c.WithFields(log.Fields{"contract": a.Address, "kind": a.Kind}).Error("unknown asset kind")
			return nil, domain.ErrUnsupportedAsset
		}
	}

	custodian := cfg.Chain.Custodian()
	custodyUC := custody_usecase.New(custodian, registry)
	payment := cfg.Chain.Payment(mc.PayToken.Address)

	rs := newRepos(cfg.Query, mc.Name)

	opts := []ledger.Option{}
	if cfg.Query != nil {
		opts = append(opts, ledger.WithTransactions(cfg.Query))
	}
	if cfg.Locker != nil {
		opts = append(opts, ledger.WithLocker(cfg.Locker))
	}
	led := ledger.New(mc.Name, opts...)

	events := event_usecase.New(&event_usecase.EventUseCaseCfg{
		Market:    mc.Name,
		Repo:      rs.events,
		Notifiers: cfg.Notifiers,
		Pool:      cfg.Pool,
		Clock:     cfg.Clock,
	})

	treasuryCfg := &treasury_usecase.TreasuryUseCaseCfg{
		Market:    mc.Name,
		Fees:      mc.Fees,
		Custodian: custodian,
		Admins:    cfg.Admins,
		PayToken:  mc.PayToken,
		Payment:   payment,
		Repo:      rs.treasury,
		Ledger:    led,
		Events:    events,
		Clock:     cfg.Clock,
	}
	if !mc.CounterToken.Address.IsEmpty() && !mc.Router.IsEmpty() {
		treasuryCfg.CounterToken = mc.CounterToken
		treasuryCfg.Counter = cfg.Chain.Payment(mc.CounterToken.Address)
		treasuryCfg.Pool = cfg.Chain.Pool(mc.Router)
	}
	if cfg.Cache != nil {
		treasuryCfg.Cache = cache.New(cache.ServiceConfig{
			Ttl:   treasuryCacheTTL,
			Pfx:   keys.PfxTreasury,
			Cache: cfg.Cache,
		})
	}
	treasuryUC := treasury_usecase.New(treasuryCfg)
	wallets := mc.Wallets
	if wallets.Rewards.IsEmpty() {
		// rewards then accumulate with the custodian and feed liquidity
		wallets.Rewards = custodian
	}
	if _, err := treasuryUC.Init(c, wallets, capAmount); err != nil {
		c.WithField("err", err).Error("treasury.Init failed")
		return nil, err
	}

	listings := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		Repo:    rs.listings,
		Custody: custodyUC,
		Ledger:  led,
		Events:  events,
		Clock:   cfg.Clock,
	})
	auctions := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Repo:    rs.auctions,
		Custody: custodyUC,
		Ledger:  led,
		Events:  events,
		Clock:   cfg.Clock,
	})
	settlement := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		Market:   mc.Name,
		Admins:   cfg.Admins,
		PayToken: mc.PayToken,
		Payment:  payment,
		Listings: rs.listings,
		Auctions: rs.auctions,
		Custody:  custodyUC,
		Treasury: treasuryUC,
		Ledger:   led,
		Events:   events,
		Clock:    cfg.Clock,
	})
	audit := audit_usecase.New(&audit_usecase.AuditUseCaseCfg{
		Market:   mc.Name,
		Listings: rs.listings,
		Auctions: rs.auctions,
		Treasury: rs.treasury,
		Custody:  custodyUC,
		Payment:  payment,
		Ledger:   led,
	})

	c.WithFields(log.Fields{"custodian": custodian, "assets": len(mc.Assets), "cap": capAmount}).Info("market ready")
	return &market.Market{
		Name:       mc.Name,
		PayToken:   mc.PayToken,
		Listings:   listings,
		Auctions:   auctions,
		Settlement: settlement,
		Treasury:   treasuryUC,
		Events:     events,
		Audit:      audit,
	}, nil
}

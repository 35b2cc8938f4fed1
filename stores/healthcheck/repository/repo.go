package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/database/mongoclient"
	"github.com/x-xyz/market/domain"
	hcdomain "github.com/x-xyz/market/domain/healthcheck"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/service/redis"
)

const (
	nameMongo = "mongo"
	nameRedis = "redis"
	nameChain = "chain"
)

type impl struct {
	mgoClient  *mongoclient.Client
	redisCache redis.Service
	chain      market.Chain
	payToken   domain.Address
	names      []string
}

// New checks the backends that are configured; nil ones are skipped. The chain is
// checked by reading the custodian balance of payToken.
func New(mgoClient *mongoclient.Client, redisCache redis.Service, chain market.Chain, payToken domain.Address) hcdomain.HealthCheckRepo {
	im := &impl{
		mgoClient:  mgoClient,
		redisCache: redisCache,
		chain:      chain,
		payToken:   payToken,
	}
	if mgoClient != nil {
		im.names = append(im.names, nameMongo)
	}
	if redisCache != nil {
		im.names = append(im.names, nameRedis)
	}
	if chain != nil && !payToken.IsEmpty() {
		im.names = append(im.names, nameChain)
	}
	return im
}

func (im *impl) Names() []string {
	return im.names
}

func (im *impl) Ping(c ctx.Ctx, name string) error {
	switch name {
	case nameMongo:
		return im.mgoClient.Ping(c, readpref.Primary())
	case nameRedis:
		return im.redisCache.Set(c, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second)
	case nameChain:
		_, err := im.chain.Payment(im.payToken).BalanceOf(c, im.chain.Custodian())
		return err
	}
	return domain.ErrNotFound
}

package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/treasury"
	"github.com/x-xyz/market/service/query"
)

type stateDoc struct {
	Market      string                `bson:"market"`
	Wallets     treasury.WalletConfig `bson:"wallets"`
	Accumulated string                `bson:"accumulated"`
	Cap         string                `bson:"cap"`
	CounterHeld string                `bson:"counterHeld,omitempty"`
	UpdatedAt   time.Time             `bson:"updatedAt"`
}

func toDoc(s *treasury.State) *stateDoc {
	return &stateDoc{
		Market: s.Market,
		Wallets: treasury.WalletConfig{
			Rewards:     s.Wallets.Rewards.ToLower(),
			Server:      s.Wallets.Server.ToLower(),
			Maintenance: s.Wallets.Maintenance.ToLower(),
		},
		Accumulated: domain.AmountString(s.Accumulated),
		Cap:         domain.AmountString(s.Cap),
		CounterHeld: domain.AmountString(s.CounterHeld),
		UpdatedAt:   s.UpdatedAt,
	}
}

func (d *stateDoc) toState() (*treasury.State, error) {
	counter := d.CounterHeld
	if counter == "" {
		counter = "0"
	}
	nums, err := domain.ToBigInt([]string{d.Accumulated, d.Cap, counter})
	if err != nil {
		return nil, err
	}
	return &treasury.State{
		Market:      d.Market,
		Wallets:     d.Wallets,
		Accumulated: nums[0],
		Cap:         nums[1],
		CounterHeld: nums[2],
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

type mongoRepo struct {
	q query.Mongo
}

func NewMongoRepo(q query.Mongo) treasury.Repo {
	return &mongoRepo{q: q}
}

func (r *mongoRepo) findDoc(c ctx.Ctx, market string) (*stateDoc, error) {
	doc := &stateDoc{}
	if err := r.q.FindOne(c, domain.TableTreasury, bson.M{"market": market}, doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "market": market}).Error("q.FindOne failed")
		return nil, err
	}
	return doc, nil
}

func (r *mongoRepo) FindOne(c ctx.Ctx, market string) (*treasury.State, error) {
	doc, err := r.findDoc(c, market)
	if err != nil {
		return nil, err
	}
	return doc.toState()
}

func (r *mongoRepo) Upsert(c ctx.Ctx, s *treasury.State) error {
	sel := bson.M{"market": s.Market}
	prev, err := r.findDoc(c, s.Market)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if err := r.q.Upsert(c, domain.TableTreasury, sel, toDoc(s)); err != nil {
		c.WithFields(log.Fields{"err": err, "market": s.Market}).Error("q.Upsert failed")
		return err
	}
	query.Compensate(c, func() {
		var err error
		if prev == nil {
			err = r.q.Remove(c, domain.TableTreasury, sel)
		} else {
			err = r.q.Upsert(c, domain.TableTreasury, sel, prev)
		}
		if err != nil {
			c.WithFields(log.Fields{"err": err, "market": s.Market}).Error("failed to restore treasury")
		}
	})
	return nil
}

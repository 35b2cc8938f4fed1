package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/service/query"
)

// eventDoc adds the per-market insertion order, events of one call share CreatedAt.
type eventDoc struct {
	event.Event `bson:",inline"`
	Seq         uint64 `bson:"seq"`
}

type mongoRepo struct {
	q      query.Mongo
	market string
}

func NewMongoRepo(q query.Mongo, market string) event.Repo {
	return &mongoRepo{q: q, market: market}
}

func (r *mongoRepo) Insert(c ctx.Ctx, e *event.Event) error {
	seq, err := query.NextSequence(c, r.q, keys.RedisKey(string(domain.TableEvents), r.market))
	if err != nil {
		c.WithField("err", err).Error("query.NextSequence failed")
		return err
	}
	doc := &eventDoc{Event: *e, Seq: seq}
	doc.Market = r.market
	if err := r.q.Insert(c, domain.TableEvents, doc); err != nil {
		c.WithFields(log.Fields{"err": err, "type": e.Type}).Error("q.Insert failed")
		return err
	}
	query.Compensate(c, func() {
		if err := r.q.Remove(c, domain.TableEvents, bson.M{"_id": e.Id}); err != nil {
			c.WithFields(log.Fields{"err": err, "id": e.Id}).Error("failed to remove event")
		}
	})
	return nil
}

func (r *mongoRepo) FindAll(c ctx.Ctx, opts ...event.FindAllOptionsFunc) ([]*event.Event, error) {
	o, err := event.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("event.GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{"market": r.market}
	if o.Type != nil {
		qry["type"] = *o.Type
	}
	if o.SaleId != nil {
		qry["saleId"] = *o.SaleId
	}
	if o.Account != nil {
		qry["$or"] = []bson.M{{"seller": *o.Account}, {"account": *o.Account}}
	}
	offset, limit := 0, 0
	if o.Offset != nil {
		offset = int(*o.Offset)
	}
	if o.Limit != nil {
		limit = int(*o.Limit)
	}

	docs := []*eventDoc{}
	if err := r.q.Search(c, domain.TableEvents, offset, limit, "-seq", qry, &docs); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	res := make([]*event.Event, 0, len(docs))
	for _, d := range docs {
		e := d.Event
		res = append(res, &e)
	}
	return res, nil
}

package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/service/query"
)

// listingDoc stores amounts as decimal strings.
type listingDoc struct {
	Market        string         `bson:"market"`
	Id            uint64         `bson:"id"`
	Seller        domain.Address `bson:"seller"`
	AssetContract domain.Address `bson:"assetContract"`
	AssetId       string         `bson:"assetId"`
	Quantity      string         `bson:"quantity"`
	Kind          asset.Kind     `bson:"kind"`
	Price         string         `bson:"price"`
	ActiveFrom    time.Time      `bson:"activeFrom"`
	Status        listing.Status `bson:"status"`
	Buyer         domain.Address `bson:"buyer,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt"`
	SoldAt        *time.Time     `bson:"soldAt,omitempty"`
}

func toDoc(l *listing.Listing) *listingDoc {
	return &listingDoc{
		Market:        l.Market,
		Id:            l.Id,
		Seller:        l.Seller.ToLower(),
		AssetContract: l.AssetContract.ToLower(),
		AssetId:       domain.AmountString(l.AssetId),
		Quantity:      domain.AmountString(l.Quantity),
		Kind:          l.Kind,
		Price:         domain.AmountString(l.Price),
		ActiveFrom:    l.ActiveFrom,
		Status:        l.Status,
		Buyer:         l.Buyer.ToLower(),
		CreatedAt:     l.CreatedAt,
		SoldAt:        l.SoldAt,
	}
}

func (d *listingDoc) toListing() (*listing.Listing, error) {
	nums, err := domain.ToBigInt([]string{d.AssetId, d.Quantity, d.Price})
	if err != nil {
		return nil, err
	}
	return &listing.Listing{
		Market:        d.Market,
		Id:            d.Id,
		Seller:        d.Seller,
		AssetContract: d.AssetContract,
		AssetId:       nums[0],
		Quantity:      nums[1],
		Kind:          d.Kind,
		Price:         nums[2],
		ActiveFrom:    d.ActiveFrom,
		Status:        d.Status,
		Buyer:         d.Buyer,
		CreatedAt:     d.CreatedAt,
		SoldAt:        d.SoldAt,
	}, nil
}

type mongoRepo struct {
	q      query.Mongo
	market string
}

func NewMongoRepo(q query.Mongo, market string) listing.Repo {
	return &mongoRepo{q: q, market: market}
}

func (r *mongoRepo) selector(id uint64) bson.M {
	return bson.M{"market": r.market, "id": id}
}

func (r *mongoRepo) NextId(c ctx.Ctx) (uint64, error) {
	id, err := query.NextSequence(c, r.q, keys.RedisKey(string(domain.TableListings), r.market))
	if err != nil {
		c.WithField("err", err).Error("query.NextSequence failed")
		return 0, err
	}
	return id, nil
}

func (r *mongoRepo) Insert(c ctx.Ctx, l *listing.Listing) error {
	doc := toDoc(l)
	doc.Market = r.market
	if err := r.q.Insert(c, domain.TableListings, doc); err != nil {
		c.WithFields(log.Fields{"err": err, "id": l.Id}).Error("q.Insert failed")
		return err
	}
	query.Compensate(c, func() {
		if err := r.q.Remove(c, domain.TableListings, r.selector(l.Id)); err != nil {
			c.WithFields(log.Fields{"err": err, "id": l.Id}).Error("failed to remove listing")
		}
	})
	return nil
}

func (r *mongoRepo) findDoc(c ctx.Ctx, id uint64) (*listingDoc, error) {
	doc := &listingDoc{}
	if err := r.q.FindOne(c, domain.TableListings, r.selector(id), doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return doc, nil
}

func (r *mongoRepo) FindOne(c ctx.Ctx, id uint64) (*listing.Listing, error) {
	doc, err := r.findDoc(c, id)
	if err != nil {
		return nil, err
	}
	return doc.toListing()
}

func (r *mongoRepo) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	o, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{"market": r.market}
	if o.Seller != nil {
		qry["seller"] = *o.Seller
	}
	if o.Status != nil {
		qry["status"] = *o.Status
	}
	if o.AssetContract != nil {
		qry["assetContract"] = *o.AssetContract
	}
	if o.AssetId != nil {
		qry["assetId"] = o.AssetId.String()
	}
	offset, limit := 0, 0
	if o.Offset != nil {
		offset = int(*o.Offset)
	}
	if o.Limit != nil {
		limit = int(*o.Limit)
	}

	docs := []*listingDoc{}
	if err := r.q.Search(c, domain.TableListings, offset, limit, "id", qry, &docs); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	res := make([]*listing.Listing, 0, len(docs))
	for _, d := range docs {
		l, err := d.toListing()
		if err != nil {
			c.WithFields(log.Fields{"err": err, "id": d.Id}).Error("toListing failed")
			return nil, err
		}
		res = append(res, l)
	}
	return res, nil
}

type patchDoc struct {
	Status *listing.Status `bson:"status,omitempty"`
	Buyer  *domain.Address `bson:"buyer,omitempty"`
	SoldAt *time.Time      `bson:"soldAt,omitempty"`
}

func (r *mongoRepo) Patch(c ctx.Ctx, id uint64, p *listing.PatchableListing) error {
	prev, err := r.findDoc(c, id)
	if err != nil {
		return err
	}
	upd := patchDoc{Status: p.Status, SoldAt: p.SoldAt}
	if p.Buyer != nil {
		b := p.Buyer.ToLower()
		upd.Buyer = &b
	}
	if err := r.q.Patch(c, domain.TableListings, r.selector(id), upd); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.Patch failed")
		return err
	}
	query.Compensate(c, func() {
		if err := r.q.Upsert(c, domain.TableListings, r.selector(id), prev); err != nil {
			c.WithFields(log.Fields{"err": err, "id": id}).Error("failed to restore listing")
		}
	})
	return nil
}

package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/service/query"
)

type auctionDoc struct {
	Market        string         `bson:"market"`
	Id            uint64         `bson:"id"`
	Seller        domain.Address `bson:"seller"`
	AssetContract domain.Address `bson:"assetContract"`
	AssetId       string         `bson:"assetId"`
	Quantity      string         `bson:"quantity"`
	Kind          asset.Kind     `bson:"kind"`
	ReservePrice  string         `bson:"reservePrice"`
	StartTime     time.Time      `bson:"startTime"`
	DurationSec   int64          `bson:"durationSec"`
	HighestBidder domain.Address `bson:"highestBidder"`
	HighestBid    string         `bson:"highestBid"`
	Status        auction.Status `bson:"status"`
	CreatedAt     time.Time      `bson:"createdAt"`
	FinishedAt    *time.Time     `bson:"finishedAt,omitempty"`
}

func toDoc(a *auction.Auction) *auctionDoc {
	return &auctionDoc{
		Market:        a.Market,
		Id:            a.Id,
		Seller:        a.Seller.ToLower(),
		AssetContract: a.AssetContract.ToLower(),
		AssetId:       domain.AmountString(a.AssetId),
		Quantity:      domain.AmountString(a.Quantity),
		Kind:          a.Kind,
		ReservePrice:  domain.AmountString(a.ReservePrice),
		StartTime:     a.StartTime,
		DurationSec:   int64(a.Duration / time.Second),
		HighestBidder: a.HighestBidder.ToLower(),
		HighestBid:    domain.AmountString(a.HighestBid),
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		FinishedAt:    a.FinishedAt,
	}
}

func (d *auctionDoc) toAuction() (*auction.Auction, error) {
	nums, err := domain.ToBigInt([]string{d.AssetId, d.Quantity, d.ReservePrice, d.HighestBid})
	if err != nil {
		return nil, err
	}
	return &auction.Auction{
		Market:        d.Market,
		Id:            d.Id,
		Seller:        d.Seller,
		AssetContract: d.AssetContract,
		AssetId:       nums[0],
		Quantity:      nums[1],
		Kind:          d.Kind,
		ReservePrice:  nums[2],
		StartTime:     d.StartTime,
		Duration:      time.Duration(d.DurationSec) * time.Second,
		HighestBidder: d.HighestBidder,
		HighestBid:    nums[3],
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		FinishedAt:    d.FinishedAt,
	}, nil
}

type mongoRepo struct {
	q      query.Mongo
	market string
}

func NewMongoRepo(q query.Mongo, market string) auction.Repo {
	return &mongoRepo{q: q, market: market}
}

func (r *mongoRepo) selector(id uint64) bson.M {
	return bson.M{"market": r.market, "id": id}
}

func (r *mongoRepo) NextId(c ctx.Ctx) (uint64, error) {
	id, err := query.NextSequence(c, r.q, keys.RedisKey(string(domain.TableAuctions), r.market))
	if err != nil {
		c.WithField("err", err).Error("query.NextSequence failed")
		return 0, err
	}
	return id, nil
}

func (r *mongoRepo) Insert(c ctx.Ctx, a *auction.Auction) error {
	doc := toDoc(a)
	doc.Market = r.market
	if err := r.q.Insert(c, domain.TableAuctions, doc); err != nil {
		c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("q.Insert failed")
		return err
	}
	query.Compensate(c, func() {
		if err := r.q.Remove(c, domain.TableAuctions, r.selector(a.Id)); err != nil {
			c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("failed to remove auction")
		}
	})
	return nil
}

func (r *mongoRepo) findDoc(c ctx.Ctx, id uint64) (*auctionDoc, error) {
	doc := &auctionDoc{}
	if err := r.q.FindOne(c, domain.TableAuctions, r.selector(id), doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return doc, nil
}

func (r *mongoRepo) FindOne(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	doc, err := r.findDoc(c, id)
	if err != nil {
		return nil, err
	}
	return doc.toAuction()
}

func (r *mongoRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	o, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{"market": r.market}
	if o.Seller != nil {
		qry["seller"] = *o.Seller
	}
	if o.HighestBidder != nil {
		qry["highestBidder"] = *o.HighestBidder
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

	docs := []*auctionDoc{}
	if err := r.q.Search(c, domain.TableAuctions, offset, limit, "id", qry, &docs); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	res := make([]*auction.Auction, 0, len(docs))
	for _, d := range docs {
		a, err := d.toAuction()
		if err != nil {
			c.WithFields(log.Fields{"err": err, "id": d.Id}).Error("toAuction failed")
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}

type patchDoc struct {
	HighestBidder *domain.Address `bson:"highestBidder,omitempty"`
	HighestBid    *string         `bson:"highestBid,omitempty"`
	Status        *auction.Status `bson:"status,omitempty"`
	FinishedAt    *time.Time      `bson:"finishedAt,omitempty"`
}

func (r *mongoRepo) Patch(c ctx.Ctx, id uint64, p *auction.PatchableAuction) error {
	prev, err := r.findDoc(c, id)
	if err != nil {
		return err
	}
	upd := patchDoc{Status: p.Status, FinishedAt: p.FinishedAt}
	if p.HighestBidder != nil {
		b := p.HighestBidder.ToLower()
		upd.HighestBidder = &b
	}
	if p.HighestBid != nil {
		bid := p.HighestBid.String()
		upd.HighestBid = &bid
	}
	if err := r.q.Patch(c, domain.TableAuctions, r.selector(id), upd); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.Patch failed")
		return err
	}
	query.Compensate(c, func() {
		if err := r.q.Upsert(c, domain.TableAuctions, r.selector(id), prev); err != nil {
			c.WithFields(log.Fields{"err": err, "id": id}).Error("failed to restore auction")
		}
	})
	return nil
}

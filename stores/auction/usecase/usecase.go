package usecase

import (
	"strconv"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
)

type AuctionUseCaseCfg struct {
	Repo    auction.Repo
	Custody asset.Custody
	Ledger  domain.Ledger
	Events  event.UseCase
	Clock   domain.Clock
}

type impl struct {
	repo    auction.Repo
	custody asset.Custody
	ledger  domain.Ledger
	events  event.UseCase
	clock   domain.Clock
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	im := &impl{
		repo:    cfg.Repo,
		custody: cfg.Custody,
		ledger:  cfg.Ledger,
		events:  cfg.Events,
		clock:   cfg.Clock,
	}
	if im.clock == nil {
		im.clock = time.Now
	}
	return im
}

func (im *impl) Create(c ctx.Ctx, seller domain.Address, p auction.CreateParams) (uint64, error) {
	var id uint64
	err := im.ledger.Execute(c, "auction.create", func(c ctx.Ctx) error {
		var err error
		id, err = im.create(c, seller, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (im *impl) CreateBulk(c ctx.Ctx, seller domain.Address, p auction.BulkCreateParams) ([]uint64, error) {
	params, err := p.Split()
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(params))
	err = im.ledger.Execute(c, "auction.createBulk", func(c ctx.Ctx) error {
		ids = ids[:0]
		for i, param := range params {
			id, err := im.create(c, seller, param)
			if err != nil {
				c.WithFields(log.Fields{"err": err, "index": i}).Info("bulk auction entry rejected")
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (im *impl) create(c ctx.Ctx, seller domain.Address, p auction.CreateParams) (uint64, error) {
	if seller.IsEmpty() || p.AssetContract.IsEmpty() {
		return 0, domain.ErrInvalidAddress
	}
	if p.AssetId == nil || p.AssetId.Sign() < 0 || p.Duration <= 0 {
		return 0, domain.ErrBadParamInput
	}
	if p.ReservePrice == nil || p.ReservePrice.Sign() < 0 {
		return 0, domain.ErrInvalidPrice
	}

	kind, err := im.custody.KindOf(c, p.AssetContract)
	if err != nil {
		return 0, err
	}
	ref := asset.NewRef(kind, p.AssetContract, p.AssetId, p.Quantity)
	if err := im.custody.Authorize(c, ref, seller); err != nil {
		return 0, err
	}

	id, err := im.repo.NextId(c)
	if err != nil {
		return 0, err
	}
	if err := im.custody.TakeCustody(c, ref, seller); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("custody.TakeCustody failed")
		return 0, err
	}

	now := im.clock()
	start := p.StartTime
	if start.IsZero() {
		start = now
	}
	a := &auction.Auction{
		Id:            id,
		Seller:        seller.ToLower(),
		AssetContract: ref.Contract,
		AssetId:       ref.Id,
		Quantity:      ref.Quantity,
		Kind:          kind,
		ReservePrice:  domain.Copy(p.ReservePrice),
		StartTime:     start,
		Duration:      p.Duration,
		HighestBid:    domain.Copy(domain.Big0),
		Status:        auction.StatusActive,
		CreatedAt:     now,
	}
	if err := im.repo.Insert(c, a); err != nil {
		return 0, err
	}

	if err := im.events.Emit(c, &event.Event{
		Type:          event.TypeAuctionCreated,
		SaleId:        &a.Id,
		Seller:        a.Seller,
		AssetContract: a.AssetContract,
		AssetId:       a.AssetId.String(),
		Quantity:      a.Quantity.String(),
		Kind:          a.Kind,
		Amount:        a.ReservePrice.String(),
		Data: map[string]string{
			"startTime": strconv.FormatInt(a.StartTime.Unix(), 10),
			"duration":  strconv.FormatInt(int64(a.Duration/time.Second), 10),
		},
	}); err != nil {
		return 0, err
	}
	return id, nil
}

func (im *impl) Get(c ctx.Ctx, id uint64) (*auction.Auction, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

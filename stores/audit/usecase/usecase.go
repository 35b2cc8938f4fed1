package usecase

import (
	"math/big"
	"sort"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/audit"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/domain/treasury"
)

type AuditUseCaseCfg struct {
	Market   string
	Listings listing.Repo
	Auctions auction.Repo
	Treasury treasury.Repo
	Custody  asset.Custody
	Payment  domain.PaymentToken
	Ledger   domain.Ledger
}

type impl struct {
	market   string
	listings listing.Repo
	auctions auction.Repo
	treasury treasury.Repo
	custody  asset.Custody
	payment  domain.PaymentToken
	ledger   domain.Ledger
}

func New(cfg *AuditUseCaseCfg) audit.UseCase {
	return &impl{
		market:   cfg.Market,
		listings: cfg.Listings,
		auctions: cfg.Auctions,
		treasury: cfg.Treasury,
		custody:  cfg.Custody,
		payment:  cfg.Payment,
		ledger:   cfg.Ledger,
	}
}

type lineKey struct {
	kind     asset.Kind
	contract domain.Address
	id       string
}

// Run takes a snapshot between two calls of the market.
func (im *impl) Run(c ctx.Ctx) (*audit.Report, error) {
	var res *audit.Report
	err := im.ledger.Execute(c, "audit.run", func(c ctx.Ctx) error {
		var err error
		res, err = im.run(c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) run(c ctx.Ctx) (*audit.Report, error) {
	listings, err := im.listings.FindAll(c, listing.WithStatus(listing.StatusActive))
	if err != nil {
		c.WithField("err", err).Error("listings.FindAll failed")
		return nil, err
	}
	auctions, err := im.auctions.FindAll(c, auction.WithStatus(auction.StatusActive))
	if err != nil {
		c.WithField("err", err).Error("auctions.FindAll failed")
		return nil, err
	}

	lines := map[lineKey]*audit.AssetLine{}
	add := func(ref asset.Ref) {
		k := lineKey{ref.Kind, ref.Contract.ToLower(), ref.Id.String()}
		l, ok := lines[k]
		if !ok {
			l = &audit.AssetLine{
				Kind:     ref.Kind,
				Contract: k.contract,
				AssetId:  domain.Copy(ref.Id),
				Expected: new(big.Int),
			}
			lines[k] = l
		}
		l.Expected.Add(l.Expected, ref.Quantity)
	}

	report := &audit.Report{
		Market:    im.market,
		Assets:    []*audit.AssetLine{},
		BidEscrow: new(big.Int),
	}
	for _, l := range listings {
		add(l.AssetRef())
	}
	for _, a := range auctions {
		add(a.AssetRef())
		if a.HasBid() {
			report.BidEscrow.Add(report.BidEscrow, a.HighestBid)
		}
	}

	for _, l := range lines {
		held, err := im.custody.Holding(c, l.Kind, l.Contract, l.AssetId)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "contract": l.Contract, "id": l.AssetId}).Error("custody.Holding failed")
			return nil, err
		}
		l.Held = held
		report.Assets = append(report.Assets, l)
	}
	sort.Slice(report.Assets, func(i, j int) bool {
		a, b := report.Assets[i], report.Assets[j]
		if a.Contract != b.Contract {
			return a.Contract < b.Contract
		}
		return a.AssetId.Cmp(b.AssetId) < 0
	})

	state, err := im.treasury.FindOne(c, im.market)
	if err == domain.ErrNotFound {
		report.Retained = new(big.Int)
	} else if err != nil {
		c.WithField("err", err).Error("treasury.FindOne failed")
		return nil, err
	} else {
		report.Retained = state.Accumulated
	}

	held, err := im.payment.BalanceOf(c, im.custody.Custodian())
	if err != nil {
		c.WithField("err", err).Error("payment.BalanceOf failed")
		return nil, err
	}
	report.PaymentHeld = held

	if !report.Healthy() {
		c.WithFields(log.Fields{
			"discrepancies": len(report.Discrepancies()),
			"bidEscrow":     report.BidEscrow,
			"retained":      report.Retained,
			"paymentHeld":   report.PaymentHeld,
		}).Warn("escrow audit found a shortfall")
	}
	return report, nil
}

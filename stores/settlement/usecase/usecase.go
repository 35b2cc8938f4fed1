package usecase

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/domain/settlement"
	"github.com/x-xyz/market/domain/treasury"
)

var met = metrics.New("settlement")

type SettlementUseCaseCfg struct {
	Market   string
	Admins   domain.Addresses
	PayToken domain.PayToken
	Payment  domain.PaymentToken
	Listings listing.Repo
	Auctions auction.Repo
	Custody  asset.Custody
	Treasury treasury.UseCase
	Ledger   domain.Ledger
	Events   event.UseCase
	Clock    domain.Clock
}

type impl struct {
	market   string
	admins   domain.Addresses
	payToken domain.PayToken
	payment  domain.PaymentToken
	listings listing.Repo
	auctions auction.Repo
	custody  asset.Custody
	treasury treasury.UseCase
	ledger   domain.Ledger
	events   event.UseCase
	clock    domain.Clock
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	im := &impl{
		market:   cfg.Market,
		admins:   cfg.Admins,
		payToken: cfg.PayToken,
		payment:  cfg.Payment,
		listings: cfg.Listings,
		auctions: cfg.Auctions,
		custody:  cfg.Custody,
		treasury: cfg.Treasury,
		ledger:   cfg.Ledger,
		events:   cfg.Events,
		clock:    cfg.Clock,
	}
	if im.clock == nil {
		im.clock = time.Now
	}
	return im
}

func (im *impl) Buy(c ctx.Ctx, buyer domain.Address, listingId uint64) (*settlement.Receipt, error) {
	if buyer.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}

	var receipt *settlement.Receipt
	err := im.ledger.Execute(c, "settlement.buy", func(c ctx.Ctx) error {
		now := im.clock()
		l, err := im.listings.FindOne(c, listingId)
		if err != nil {
			return err
		}
		if l.Status == listing.StatusSold {
			return domain.ErrAlreadySold
		}
		if now.Before(l.ActiveFrom) {
			return domain.ErrNotYetActive
		}

		if err := im.payment.TransferFrom(c, buyer, im.custody.Custodian(), l.Price); err != nil {
			c.WithFields(log.Fields{"err": err, "buyer": buyer, "price": l.Price}).Info("payment.TransferFrom failed")
			return err
		}
		if err := im.custody.ReleaseCustody(c, l.AssetRef(), buyer); err != nil {
			c.WithFields(log.Fields{"err": err, "id": l.Id}).Error("custody.ReleaseCustody failed")
			return err
		}
		st, err := im.payout(c, l.Seller, l.Price)
		if err != nil {
			return err
		}

		sold := listing.StatusSold
		b := buyer.ToLower()
		if err := im.listings.Patch(c, l.Id, &listing.PatchableListing{
			Status: &sold,
			Buyer:  &b,
			SoldAt: &now,
		}); err != nil {
			return err
		}

		if err := im.events.Emit(c, &event.Event{
			Type:          event.TypeListingSold,
			SaleId:        &l.Id,
			Seller:        l.Seller,
			Account:       b,
			AssetContract: l.AssetContract,
			AssetId:       l.AssetId.String(),
			Quantity:      l.Quantity.String(),
			Kind:          l.Kind,
			Amount:        l.Price.String(),
		}); err != nil {
			return err
		}

		receipt = &settlement.Receipt{
			SaleId:    l.Id,
			Winner:    b,
			Price:     domain.Copy(l.Price),
			Split:     st.Split,
			Liquidity: st.Liquidity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	im.bumpVolume("buy", receipt.Price)
	return receipt, nil
}

func (im *impl) Bid(c ctx.Ctx, bidder domain.Address, auctionId uint64, amount *big.Int) error {
	if bidder.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBidTooLow
	}

	err := im.ledger.Execute(c, "settlement.bid", func(c ctx.Ctx) error {
		now := im.clock()
		a, err := im.auctions.FindOne(c, auctionId)
		if err != nil {
			return err
		}
		if a.Status != auction.StatusActive {
			return domain.ErrNotFound
		}
		if now.Before(a.StartTime) {
			return domain.ErrNotOpenYet
		}
		if !now.Before(a.EndTime()) {
			return domain.ErrAuctionExpired
		}
		if amount.Cmp(a.MinimumBid()) < 0 {
			return domain.ErrBidTooLow
		}

		if err := im.payment.TransferFrom(c, bidder, im.custody.Custodian(), amount); err != nil {
			c.WithFields(log.Fields{"err": err, "bidder": bidder, "amount": amount}).Info("payment.TransferFrom failed")
			return err
		}
		if a.HasBid() {
			if err := im.treasury.Pay(c, "refund", a.HighestBidder, a.HighestBid); err != nil {
				c.WithFields(log.Fields{"err": err, "bidder": a.HighestBidder, "amount": a.HighestBid}).Error("refund failed")
				return err
			}
			if err := im.events.Emit(c, &event.Event{
				Type:    event.TypeBidRefunded,
				SaleId:  &a.Id,
				Seller:  a.Seller,
				Account: a.HighestBidder,
				Amount:  a.HighestBid.String(),
			}); err != nil {
				return err
			}
		}

		b := bidder.ToLower()
		if err := im.auctions.Patch(c, a.Id, &auction.PatchableAuction{
			HighestBidder: &b,
			HighestBid:    domain.Copy(amount),
		}); err != nil {
			return err
		}
		return im.events.Emit(c, &event.Event{
			Type:    event.TypeBidPlaced,
			SaleId:  &a.Id,
			Seller:  a.Seller,
			Account: b,
			Amount:  amount.String(),
		})
	})
	if err != nil {
		return err
	}

	im.bumpVolume("bid", amount)
	return nil
}

func (im *impl) FinishAuction(c ctx.Ctx, caller domain.Address, auctionId uint64) (*settlement.Receipt, error) {
	var receipt *settlement.Receipt
	err := im.ledger.Execute(c, "settlement.finishAuction", func(c ctx.Ctx) error {
		now := im.clock()
		a, err := im.auctions.FindOne(c, auctionId)
		if err == domain.ErrNotFound {
			return domain.ErrInvalidSaleId
		} else if err != nil {
			return err
		}
		if !caller.Equals(a.Seller) && !im.admins.Contains(caller) {
			return domain.ErrUnauthorized
		}
		if a.Status == auction.StatusFinished {
			return domain.ErrAlreadyFinished
		}
		if now.Before(a.EndTime()) {
			return domain.ErrAuctionStillRunning
		}

		receipt = &settlement.Receipt{SaleId: a.Id, Price: new(big.Int)}
		if a.HasBid() {
			if err := im.custody.ReleaseCustody(c, a.AssetRef(), a.HighestBidder); err != nil {
				c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("custody.ReleaseCustody failed")
				return err
			}
			st, err := im.payout(c, a.Seller, a.HighestBid)
			if err != nil {
				return err
			}
			receipt.Winner = a.HighestBidder
			receipt.Price = domain.Copy(a.HighestBid)
			receipt.Split = st.Split
			receipt.Liquidity = st.Liquidity
		} else if err := im.custody.ReleaseCustody(c, a.AssetRef(), a.Seller); err != nil {
			c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("custody.ReleaseCustody failed")
			return err
		}

		finished := auction.StatusFinished
		if err := im.auctions.Patch(c, a.Id, &auction.PatchableAuction{
			Status:     &finished,
			FinishedAt: &now,
		}); err != nil {
			return err
		}
		return im.events.Emit(c, &event.Event{
			Type:          event.TypeAuctionFinished,
			SaleId:        &a.Id,
			Seller:        a.Seller,
			Account:       receipt.Winner,
			AssetContract: a.AssetContract,
			AssetId:       a.AssetId.String(),
			Quantity:      a.Quantity.String(),
			Kind:          a.Kind,
			Amount:        receipt.Price.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	im.bumpVolume("finish", receipt.Price)
	return receipt, nil
}

// payout settles gross, already held by the custodian, and schedules the seller's share.
// Nothing leaves the custodian until the whole call has committed.
func (im *impl) payout(c ctx.Ctx, seller domain.Address, gross *big.Int) (*treasury.Settlement, error) {
	st, err := im.treasury.Settle(c, gross)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "gross": gross}).Error("treasury.Settle failed")
		return nil, err
	}
	if st.SellerProceeds.Sign() > 0 {
		if err := im.treasury.Pay(c, "seller", seller, st.SellerProceeds); err != nil {
			c.WithFields(log.Fields{"err": err, "seller": seller, "amount": st.SellerProceeds}).Error("treasury.Pay failed")
			return nil, err
		}
	}
	return st, nil
}

func (im *impl) bumpVolume(op string, amount *big.Int) {
	if amount == nil || amount.Sign() == 0 {
		return
	}
	v := decimal.NewFromBigInt(amount, -im.payToken.Decimals).InexactFloat64()
	met.BumpSum("volume", v, "market", im.market, "op", op)
}

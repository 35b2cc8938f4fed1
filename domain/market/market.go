package market

import (
	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
	"github.com/x-xyz/market/domain/audit"
	"github.com/x-xyz/market/domain/auction"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/listing"
	"github.com/x-xyz/market/domain/settlement"
	"github.com/x-xyz/market/domain/treasury"
)

// Market is one independently configured instance: its own sequences, treasury,
// wallets and cap.
type Market struct {
	Name       string
	PayToken   domain.PayToken
	Listings   listing.UseCase
	Auctions   auction.UseCase
	Settlement settlement.UseCase
	Treasury   treasury.UseCase
	Events     event.UseCase
	Audit      audit.UseCase
}

type Markets map[string]*Market

func (ms Markets) Get(name string) (*Market, error) {
	if m, ok := ms[name]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

// Chain hands out contract handles bound to the custodian account.
type Chain interface {
	Custodian() domain.Address
	Payment(token domain.Address) domain.PaymentToken
	// Unique and Countable fail with domain.ErrUnsupportedAsset when the contract does
	// not implement the declared standard.
	Unique(c ctx.Ctx, contract domain.Address) (asset.UniqueAssetTransfer, error)
	Countable(c ctx.Ctx, contract domain.Address) (asset.CountableAssetTransfer, error)
	Pool(router domain.Address) treasury.LiquidityPool
}

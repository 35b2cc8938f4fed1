package settlement

import (
	"math/big"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/treasury"
)

// Receipt describes a completed settlement. Split is nil when an auction finished
// without bids.
type Receipt struct {
	SaleId    uint64
	Winner    domain.Address
	Price     *big.Int
	Split     *treasury.Split
	Liquidity *treasury.LiquidityReport
}

// UseCase is the buyer-facing surface: every call is atomic and serialized per market.
type UseCase interface {
	Buy(c ctx.Ctx, buyer domain.Address, listingId uint64) (*Receipt, error)
	Bid(c ctx.Ctx, bidder domain.Address, auctionId uint64, amount *big.Int) error
	FinishAuction(c ctx.Ctx, caller domain.Address, auctionId uint64) (*Receipt, error)
}

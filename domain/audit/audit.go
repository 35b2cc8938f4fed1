package audit

import (
	"math/big"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

// AssetLine compares what active sales say the custodian should hold of one asset with
// what it holds.
type AssetLine struct {
	Kind     asset.Kind     `json:"kind"`
	Contract domain.Address `json:"contract"`
	AssetId  *big.Int       `json:"assetId"`
	Expected *big.Int       `json:"expected"`
	Held     *big.Int       `json:"held"`
}

// Balanced reports whether the custodian holds exactly the expected quantity.
// Assets escrowed by another market sharing the custodian show up as surplus.
func (l *AssetLine) Balanced() bool {
	return l.Expected.Cmp(l.Held) == 0
}

type Report struct {
	Market string       `json:"market"`
	Assets []*AssetLine `json:"assets"`
	// BidEscrow is the sum of highest bids of active auctions.
	BidEscrow *big.Int `json:"bidEscrow"`
	// Retained is the accumulated protocol balance awaiting conversion.
	Retained *big.Int `json:"retained"`
	// PaymentHeld is the custodian's payment token balance. It covers BidEscrow plus
	// Retained unless funds left the custodian outside a settlement.
	PaymentHeld *big.Int `json:"paymentHeld"`
}

func (r *Report) Healthy() bool {
	for _, l := range r.Assets {
		if l.Expected.Cmp(l.Held) > 0 {
			return false
		}
	}
	owed := new(big.Int).Add(r.BidEscrow, r.Retained)
	return r.PaymentHeld.Cmp(owed) >= 0
}

// Discrepancies are the lines where the custodian holds less than it owes.
func (r *Report) Discrepancies() []*AssetLine {
	res := []*AssetLine{}
	for _, l := range r.Assets {
		if l.Expected.Cmp(l.Held) > 0 {
			res = append(res, l)
		}
	}
	return res
}

type UseCase interface {
	Run(c ctx.Ctx) (*Report, error)
}

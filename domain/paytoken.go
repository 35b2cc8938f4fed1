package domain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/market/base/ctx"
)

// PayToken describes the token a market instance accepts.
type PayToken struct {
	Name     string  `json:"name" bson:"name" mapstructure:"name"`
	Symbol   string  `json:"symbol" bson:"symbol" mapstructure:"symbol"`
	Decimals int32   `json:"decimals" bson:"decimals" mapstructure:"decimals"`
	Address  Address `json:"address" bson:"address" mapstructure:"address"`
}

// Format renders a base-unit amount for humans, e.g. 30000000000000000000 -> "30 BUSD".
func (t *PayToken) Format(amount *big.Int) string {
	d := decimal.NewFromBigInt(Copy(amount), -t.Decimals)
	if t.Symbol == "" {
		return d.String()
	}
	return d.String() + " " + t.Symbol
}

// PaymentToken is the fungible payment capability. The handle acts as the market
// custodian: TransferFrom spends the custodian's allowance, Transfer and Approve spend
// the custodian's own balance.
type PaymentToken interface {
	TransferFrom(c ctx.Ctx, payer, payee Address, amount *big.Int) error
	Transfer(c ctx.Ctx, to Address, amount *big.Int) error
	Approve(c ctx.Ctx, spender Address, amount *big.Int) error
	BalanceOf(c ctx.Ctx, holder Address) (*big.Int, error)
	Allowance(c ctx.Ctx, owner, spender Address) (*big.Int, error)
}

// Ledger runs one external call to completion with no interleaving against the same
// market, committing every effect of fn or none of them.
type Ledger interface {
	Execute(c ctx.Ctx, op string, fn func(ctx.Ctx) error) error
}

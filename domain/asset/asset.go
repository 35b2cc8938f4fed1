package asset

import (
	"math/big"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
)

// Kind is the tagged variant recorded on every listing and auction at creation time.
// Transfers dispatch on it; the asset contract is never inspected at call time.
type Kind string

const (
	KindUnique    Kind = "unique"
	KindCountable Kind = "countable"
)

func (k Kind) IsValid() bool {
	return k == KindUnique || k == KindCountable
}

// UniqueAssetTransfer is an ERC721-style collection. The handle acts as the custodian.
type UniqueAssetTransfer interface {
	TransferFrom(c ctx.Ctx, from, to domain.Address, id *big.Int) error
	OwnerOf(c ctx.Ctx, id *big.Int) (domain.Address, error)
	IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) (bool, error)
}

// CountableAssetTransfer is an ERC1155-style collection. The handle acts as the custodian.
type CountableAssetTransfer interface {
	SafeTransferFrom(c ctx.Ctx, from, to domain.Address, id, amount *big.Int) error
	SafeBatchTransferFrom(c ctx.Ctx, from, to domain.Address, ids, amounts []*big.Int) error
	BalanceOf(c ctx.Ctx, holder domain.Address, id *big.Int) (*big.Int, error)
	IsApprovedForAll(c ctx.Ctx, owner, operator domain.Address) (bool, error)
}

// Registry resolves the accepted asset contracts of a market.
type Registry interface {
	Kind(c ctx.Ctx, contract domain.Address) (Kind, error)
	Unique(c ctx.Ctx, contract domain.Address) (UniqueAssetTransfer, error)
	Countable(c ctx.Ctx, contract domain.Address) (CountableAssetTransfer, error)
}

// Ref identifies an escrowed quantity.
type Ref struct {
	Kind     Kind
	Contract domain.Address
	Id       *big.Int
	Quantity *big.Int
}

// NewRef builds a Ref, fixing the quantity of a unique asset to one.
func NewRef(kind Kind, contract domain.Address, id, quantity *big.Int) Ref {
	if kind == KindUnique {
		quantity = domain.Big1
	}
	return Ref{
		Kind:     kind,
		Contract: contract.ToLower(),
		Id:       domain.Copy(id),
		Quantity: domain.Copy(quantity),
	}
}

// Custody moves assets in and out of the custodian account.
type Custody interface {
	// Custodian is the account holding escrowed assets.
	Custodian() domain.Address
	// KindOf returns the declared kind of an accepted contract.
	KindOf(c ctx.Ctx, contract domain.Address) (Kind, error)
	// Authorize checks that owner holds at least ref.Quantity and has approved the
	// custodian as operator. It never requests the approval.
	Authorize(c ctx.Ctx, ref Ref, owner domain.Address) error
	TakeCustody(c ctx.Ctx, ref Ref, from domain.Address) error
	ReleaseCustody(c ctx.Ctx, ref Ref, to domain.Address) error
	// Holding is what the custodian currently holds of (contract, id).
	Holding(c ctx.Ctx, kind Kind, contract domain.Address, id *big.Int) (*big.Int, error)
}

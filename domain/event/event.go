package event

import (
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

type Type string

const (
	TypeListingCreated  Type = "FixedSaleCreated"
	TypeListingSold     Type = "FixedSaleSuccessful"
	TypeAuctionCreated  Type = "AuctionCreated"
	TypeBidPlaced       Type = "BidPlaced"
	TypeBidRefunded     Type = "BidRefunded"
	TypeAuctionFinished Type = "AuctionFinished"
	TypeLiquidityAdded  Type = "SwapAndLiquify"
	TypeSwapFailed      Type = "SwapFailed"
	TypeWalletsChanged  Type = "WalletsChanged"
	TypePayoutFailed    Type = "PayoutFailed"
)

// Event is one observable outcome of a committed call. Amounts are base-unit decimal
// strings.
type Event struct {
	Id            string            `json:"id" bson:"_id"`
	Market        string            `json:"market" bson:"market"`
	Type          Type              `json:"type" bson:"type"`
	SaleId        *uint64           `json:"saleId,omitempty" bson:"saleId,omitempty"`
	Seller        domain.Address    `json:"seller,omitempty" bson:"seller,omitempty"`
	Account       domain.Address    `json:"account,omitempty" bson:"account,omitempty"`
	AssetContract domain.Address    `json:"assetContract,omitempty" bson:"assetContract,omitempty"`
	AssetId       string            `json:"assetId,omitempty" bson:"assetId,omitempty"`
	Quantity      string            `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Kind          asset.Kind        `json:"kind,omitempty" bson:"kind,omitempty"`
	Amount        string            `json:"amount,omitempty" bson:"amount,omitempty"`
	Data          map[string]string `json:"data,omitempty" bson:"data,omitempty"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt"`
}

// IsUnique mirrors the isERC721 flag of the creation events.
func (e *Event) IsUnique() bool {
	return e.Kind == asset.KindUnique
}

type FindAllOptions struct {
	Type    *Type
	SaleId  *uint64
	Account *domain.Address
	Offset  *int32
	Limit   *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithType(t Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func WithSaleId(id uint64) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SaleId = &id
		return nil
	}
}

func WithAccount(a domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		l := a.ToLower()
		options.Account = &l
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Repo stores events newest last; FindAll returns newest first.
type Repo interface {
	Insert(c ctx.Ctx, e *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
}

// Notifier pushes a committed event to an outside channel.
type Notifier interface {
	Notify(c ctx.Ctx, e *Event) error
}

type UseCase interface {
	// Emit records e as part of the current call. Notifiers see it only after the call
	// commits.
	Emit(c ctx.Ctx, e *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
}

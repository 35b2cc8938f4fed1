package listing

import (
	"math/big"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

type Status string

const (
	StatusActive Status = "active"
	StatusSold   Status = "sold"
)

// Listing is a fixed-price sale of one escrowed quantity.
type Listing struct {
	Market        string         `json:"market"`
	Id            uint64         `json:"id"`
	Seller        domain.Address `json:"seller"`
	AssetContract domain.Address `json:"assetContract"`
	AssetId       *big.Int       `json:"assetId"`
	Quantity      *big.Int       `json:"quantity"`
	Kind          asset.Kind     `json:"kind"`
	Price         *big.Int       `json:"price"`
	ActiveFrom    time.Time      `json:"activeFrom"`
	Status        Status         `json:"status"`
	Buyer         domain.Address `json:"buyer,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	SoldAt        *time.Time     `json:"soldAt,omitempty"`
}

func (l *Listing) AssetRef() asset.Ref {
	return asset.Ref{
		Kind:     l.Kind,
		Contract: l.AssetContract,
		Id:       domain.Copy(l.AssetId),
		Quantity: domain.Copy(l.Quantity),
	}
}

func (l *Listing) IsUnique() bool {
	return l.Kind == asset.KindUnique
}

func (l *Listing) Clone() *Listing {
	cp := *l
	cp.AssetId = domain.Copy(l.AssetId)
	cp.Quantity = domain.Copy(l.Quantity)
	cp.Price = domain.Copy(l.Price)
	if l.SoldAt != nil {
		t := *l.SoldAt
		cp.SoldAt = &t
	}
	return &cp
}

// PatchableListing carries the fields that change after creation.
type PatchableListing struct {
	Status *Status
	Buyer  *domain.Address
	SoldAt *time.Time
}

type CreateParams struct {
	AssetContract domain.Address
	AssetId       *big.Int
	Quantity      *big.Int
	Price         *big.Int
	ActiveFrom    time.Time
}

// BulkCreateParams holds parallel sequences; entry i of each forms one listing.
type BulkCreateParams struct {
	AssetContract domain.Address
	AssetIds      []*big.Int
	Quantities    []*big.Int
	Prices        []*big.Int
	ActiveFroms   []time.Time
}

// Split validates the lengths and returns one CreateParams per tuple.
func (p BulkCreateParams) Split() ([]CreateParams, error) {
	n := len(p.AssetIds)
	if n == 0 || len(p.Quantities) != n || len(p.Prices) != n || len(p.ActiveFroms) != n {
		return nil, domain.ErrLengthMismatch
	}
	res := make([]CreateParams, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, CreateParams{
			AssetContract: p.AssetContract,
			AssetId:       p.AssetIds[i],
			Quantity:      p.Quantities[i],
			Price:         p.Prices[i],
			ActiveFrom:    p.ActiveFroms[i],
		})
	}
	return res, nil
}

type FindAllOptions struct {
	Seller        *domain.Address
	Status        *Status
	AssetContract *domain.Address
	AssetId       *big.Int
	Offset        *int32
	Limit         *int32
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

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		s := seller.ToLower()
		options.Seller = &s
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithAsset(contract domain.Address, id *big.Int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		c := contract.ToLower()
		options.AssetContract = &c
		if id != nil {
			options.AssetId = domain.Copy(id)
		}
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

type Repo interface {
	// NextId reserves the next sequential id of the market.
	NextId(c ctx.Ctx) (uint64, error)
	Insert(c ctx.Ctx, l *Listing) error
	FindOne(c ctx.Ctx, id uint64) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Patch(c ctx.Ctx, id uint64, patchable *PatchableListing) error
}

type UseCase interface {
	Create(c ctx.Ctx, seller domain.Address, p CreateParams) (uint64, error)
	CreateBulk(c ctx.Ctx, seller domain.Address, p BulkCreateParams) ([]uint64, error)
	Get(c ctx.Ctx, id uint64) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}

package auction

import (
	"math/big"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Auction struct {
	Market        string         `json:"market"`
	Id            uint64         `json:"id"`
	Seller        domain.Address `json:"seller"`
	AssetContract domain.Address `json:"assetContract"`
	AssetId       *big.Int       `json:"assetId"`
	Quantity      *big.Int       `json:"quantity"`
	Kind          asset.Kind     `json:"kind"`
	ReservePrice  *big.Int       `json:"reservePrice"`
	StartTime     time.Time      `json:"startTime"`
	Duration      time.Duration  `json:"duration"`
	HighestBidder domain.Address `json:"highestBidder,omitempty"`
	HighestBid    *big.Int       `json:"highestBid"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	FinishedAt    *time.Time     `json:"finishedAt,omitempty"`
}

func (a *Auction) EndTime() time.Time {
	return a.StartTime.Add(a.Duration)
}

func (a *Auction) HasBid() bool {
	return !a.HighestBidder.IsEmpty()
}

// IsOpen reports whether now falls in [StartTime, StartTime+Duration).
func (a *Auction) IsOpen(now time.Time) bool {
	return !now.Before(a.StartTime) && now.Before(a.EndTime())
}

// MinimumBid is the smallest acceptable next bid: the reserve while no bid exists,
// one unit above the highest bid afterwards.
func (a *Auction) MinimumBid() *big.Int {
	if !a.HasBid() {
		return domain.Copy(a.ReservePrice)
	}
	floor := a.HighestBid
	if a.ReservePrice.Cmp(floor) > 0 {
		floor = a.ReservePrice
	}
	return new(big.Int).Add(floor, domain.Big1)
}

func (a *Auction) AssetRef() asset.Ref {
	return asset.Ref{
		Kind:     a.Kind,
		Contract: a.AssetContract,
		Id:       domain.Copy(a.AssetId),
		Quantity: domain.Copy(a.Quantity),
	}
}

func (a *Auction) Clone() *Auction {
	cp := *a
	cp.AssetId = domain.Copy(a.AssetId)
	cp.Quantity = domain.Copy(a.Quantity)
	cp.ReservePrice = domain.Copy(a.ReservePrice)
	cp.HighestBid = domain.Copy(a.HighestBid)
	if a.FinishedAt != nil {
		t := *a.FinishedAt
		cp.FinishedAt = &t
	}
	return &cp
}

type PatchableAuction struct {
	HighestBidder *domain.Address
	HighestBid    *big.Int
	Status        *Status
	FinishedAt    *time.Time
}

type CreateParams struct {
	AssetContract domain.Address
	AssetId       *big.Int
	Quantity      *big.Int
	ReservePrice  *big.Int
	StartTime     time.Time
	Duration      time.Duration
}

type BulkCreateParams struct {
	AssetContract domain.Address
	AssetIds      []*big.Int
	Quantities    []*big.Int
	ReservePrices []*big.Int
	StartTimes    []time.Time
	Durations     []time.Duration
}

func (p BulkCreateParams) Split() ([]CreateParams, error) {
	n := len(p.AssetIds)
	if n == 0 || len(p.Quantities) != n || len(p.ReservePrices) != n || len(p.StartTimes) != n || len(p.Durations) != n {
		return nil, domain.ErrLengthMismatch
	}
	res := make([]CreateParams, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, CreateParams{
			AssetContract: p.AssetContract,
			AssetId:       p.AssetIds[i],
			Quantity:      p.Quantities[i],
			ReservePrice:  p.ReservePrices[i],
			StartTime:     p.StartTimes[i],
			Duration:      p.Durations[i],
		})
	}
	return res, nil
}

type FindAllOptions struct {
	Seller        *domain.Address
	HighestBidder *domain.Address
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

func WithHighestBidder(bidder domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		b := bidder.ToLower()
		options.HighestBidder = &b
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
	NextId(c ctx.Ctx) (uint64, error)
	Insert(c ctx.Ctx, a *Auction) error
	FindOne(c ctx.Ctx, id uint64) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Patch(c ctx.Ctx, id uint64, patchable *PatchableAuction) error
}

type UseCase interface {
	Create(c ctx.Ctx, seller domain.Address, p CreateParams) (uint64, error)
	CreateBulk(c ctx.Ctx, seller domain.Address, p BulkCreateParams) ([]uint64, error)
	Get(c ctx.Ctx, id uint64) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
}

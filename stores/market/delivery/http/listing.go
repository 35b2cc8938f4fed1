package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/listing"
)

type createListingParams struct {
	AssetContract domain.Address `json:"assetContract" validate:"required,address" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
	AssetId       string         `json:"assetId" validate:"required,amount" example:"1"`
	Quantity      string         `json:"quantity" validate:"required,amount" example:"1"`
	Price         string         `json:"price" validate:"required,amount" example:"30000000000000000000"`
	// ActiveFrom is a unix timestamp; 0 means now.
	ActiveFrom int64 `json:"activeFrom" example:"0"`
}

type createListingsParams struct {
	AssetContract domain.Address `json:"assetContract" validate:"required,address"`
	AssetIds      []string       `json:"assetIds" validate:"required,dive,amount"`
	Quantities    []string       `json:"quantities" validate:"required,dive,amount"`
	Prices        []string       `json:"prices" validate:"required,dive,amount"`
	ActiveFroms   []int64        `json:"activeFroms" validate:"required"`
}

type listListingsParams struct {
	Seller        domain.Address `query:"seller" validate:"omitempty,address"`
	Status        string         `query:"status" validate:"omitempty,oneof=active sold"`
	AssetContract domain.Address `query:"assetContract" validate:"omitempty,address"`
	AssetId       string         `query:"assetId" validate:"omitempty,amount"`
	Offset        int32          `query:"offset"`
	Limit         int32          `query:"limit"`
}

type idParams struct {
	Id uint64 `param:"id"`
}

func unixOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// createListing
//
//	@Summary		Create listing
//	@Description	Escrow an asset and list it at a fixed price
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string						true	"market name"	example(official)
//	@Param			params	body		http.createListingParams	true	"params"
//	@Success		201		{object}	object{data=object{id=int}}
//	@Failure		400
//	@Failure		403
//	@Router			/markets/{market}/listings [post]
func (h *handler) createListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createListingParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ids, err := domain.ToBigInt([]string{p.AssetId, p.Quantity, p.Price})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := marketOf(c).Listings.Create(ctx, callerOf(c), listing.CreateParams{
		AssetContract: p.AssetContract,
		AssetId:       ids[0],
		Quantity:      ids[1],
		Price:         ids[2],
		ActiveFrom:    unixOrZero(p.ActiveFrom),
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "params": p}).Warn("listings.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, map[string]uint64{"id": id})
}

// createListings
//
//	@Summary		Create listings in bulk
//	@Description	All listings are created or none are
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string						true	"market name"
//	@Param			params	body		http.createListingsParams	true	"params"
//	@Success		201		{object}	object{data=object{ids=[]int}}
//	@Failure		400
//	@Router			/markets/{market}/listings/bulk [post]
func (h *handler) createListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createListingsParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	assetIds, err := domain.ToBigInt(p.AssetIds)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	quantities, err := domain.ToBigInt(p.Quantities)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	prices, err := domain.ToBigInt(p.Prices)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	activeFroms := make([]time.Time, 0, len(p.ActiveFroms))
	for _, sec := range p.ActiveFroms {
		activeFroms = append(activeFroms, unixOrZero(sec))
	}

	ids, err := marketOf(c).Listings.CreateBulk(ctx, callerOf(c), listing.BulkCreateParams{
		AssetContract: p.AssetContract,
		AssetIds:      assetIds,
		Quantities:    quantities,
		Prices:        prices,
		ActiveFroms:   activeFroms,
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Warn("listings.CreateBulk failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, map[string][]uint64{"ids": ids})
}

// listListings
//
//	@Summary	List listings
//	@Tags		listings
//	@Produce	json
//	@Param		market			path		string	true	"market name"
//	@Param		seller			query		string	false	"seller address"
//	@Param		status			query		string	false	"status"	enums(active, sold)
//	@Param		assetContract	query		string	false	"asset contract"
//	@Param		assetId			query		string	false	"asset id"
//	@Param		offset			query		int		false	"paging offset"	example(0)
//	@Param		limit			query		int		false	"paging size"	example(100)
//	@Success	200				{object}	object{data=[]listing.Listing}
//	@Router		/markets/{market}/listings [get]
func (h *handler) listListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listListingsParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offset, limit := pagination(p.Offset, p.Limit)
	opts := []listing.FindAllOptionsFunc{listing.WithPagination(offset, limit)}
	if p.Seller != "" {
		opts = append(opts, listing.WithSeller(p.Seller))
	}
	if p.Status != "" {
		opts = append(opts, listing.WithStatus(listing.Status(p.Status)))
	}
	if p.AssetContract != "" {
		assetId, err := optionalAmount(p.AssetId)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		opts = append(opts, listing.WithAsset(p.AssetContract, assetId))
	}

	if res, err := marketOf(c).Listings.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getListing
//
//	@Summary	Get listing
//	@Tags		listings
//	@Produce	json
//	@Param		market	path		string	true	"market name"
//	@Param		id		path		int		true	"listing id"
//	@Success	200		{object}	object{data=listing.Listing}
//	@Failure	404
//	@Router		/markets/{market}/listings/{id} [get]
func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &idParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if res, err := marketOf(c).Listings.Get(ctx, p.Id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// buy
//
//	@Summary		Buy listing
//	@Description	Pull the price from the caller, pay out fees and seller, release the asset
//	@Tags			listings
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string	true	"market name"
//	@Param			id		path		int		true	"listing id"
//	@Success		200		{object}	object{data=http.receiptResp}
//	@Failure		404
//	@Failure		409
//	@Router			/markets/{market}/listings/{id}/buy [post]
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &idParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	receipt, err := marketOf(c).Settlement.Buy(ctx, callerOf(c), p.Id)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": p.Id}).Warn("settlement.Buy failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, toReceiptResp(receipt))
}

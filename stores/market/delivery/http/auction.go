package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/auction"
)

type createAuctionParams struct {
	AssetContract domain.Address `json:"assetContract" validate:"required,address"`
	AssetId       string         `json:"assetId" validate:"required,amount"`
	Quantity      string         `json:"quantity" validate:"required,amount"`
	ReservePrice  string         `json:"reservePrice" validate:"required,amount" example:"10000000000000000000"`
	// StartTime is a unix timestamp; 0 means now.
	StartTime int64 `json:"startTime"`
	// Duration is in seconds.
	Duration int64 `json:"duration" validate:"required,gt=0" example:"86400"`
}

type createAuctionsParams struct {
	AssetContract domain.Address `json:"assetContract" validate:"required,address"`
	AssetIds      []string       `json:"assetIds" validate:"required,dive,amount"`
	Quantities    []string       `json:"quantities" validate:"required,dive,amount"`
	ReservePrices []string       `json:"reservePrices" validate:"required,dive,amount"`
	StartTimes    []int64        `json:"startTimes" validate:"required"`
	Durations     []int64        `json:"durations" validate:"required,dive,gt=0"`
}

type listAuctionsParams struct {
	Seller        domain.Address `query:"seller" validate:"omitempty,address"`
	HighestBidder domain.Address `query:"highestBidder" validate:"omitempty,address"`
	Status        string         `query:"status" validate:"omitempty,oneof=active finished"`
	AssetContract domain.Address `query:"assetContract" validate:"omitempty,address"`
	AssetId       string         `query:"assetId" validate:"omitempty,amount"`
	Offset        int32          `query:"offset"`
	Limit         int32          `query:"limit"`
}

type bidParams struct {
	Id     uint64 `param:"id"`
	Amount string `json:"amount" validate:"required,amount" example:"11000000000000000000"`
}

// createAuction
//
//	@Summary		Create auction
//	@Description	Escrow an asset and auction it from a reserve price
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string					true	"market name"
//	@Param			params	body		http.createAuctionParams	true	"params"
//	@Success		201		{object}	object{data=object{id=int}}
//	@Failure		400
//	@Failure		403
//	@Router			/markets/{market}/auctions [post]
func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createAuctionParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	nums, err := domain.ToBigInt([]string{p.AssetId, p.Quantity, p.ReservePrice})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := marketOf(c).Auctions.Create(ctx, callerOf(c), auction.CreateParams{
		AssetContract: p.AssetContract,
		AssetId:       nums[0],
		Quantity:      nums[1],
		ReservePrice:  nums[2],
		StartTime:     unixOrZero(p.StartTime),
		Duration:      time.Duration(p.Duration) * time.Second,
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "params": p}).Warn("auctions.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, map[string]uint64{"id": id})
}

// createAuctions
//
//	@Summary		Create auctions in bulk
//	@Description	All auctions are created or none are
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string						true	"market name"
//	@Param			params	body		http.createAuctionsParams	true	"params"
//	@Success		201		{object}	object{data=object{ids=[]int}}
//	@Failure		400
//	@Router			/markets/{market}/auctions/bulk [post]
func (h *handler) createAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createAuctionsParams{}
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
	reserves, err := domain.ToBigInt(p.ReservePrices)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	startTimes := make([]time.Time, 0, len(p.StartTimes))
	for _, sec := range p.StartTimes {
		startTimes = append(startTimes, unixOrZero(sec))
	}
	durations := make([]time.Duration, 0, len(p.Durations))
	for _, sec := range p.Durations {
		durations = append(durations, time.Duration(sec)*time.Second)
	}

	ids, err := marketOf(c).Auctions.CreateBulk(ctx, callerOf(c), auction.BulkCreateParams{
		AssetContract: p.AssetContract,
		AssetIds:      assetIds,
		Quantities:    quantities,
		ReservePrices: reserves,
		StartTimes:    startTimes,
		Durations:     durations,
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Warn("auctions.CreateBulk failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, map[string][]uint64{"ids": ids})
}

// listAuctions
//
//	@Summary	List auctions
//	@Tags		auctions
//	@Produce	json
//	@Param		market			path		string	true	"market name"
//	@Param		seller			query		string	false	"seller address"
//	@Param		highestBidder	query		string	false	"highest bidder address"
//	@Param		status			query		string	false	"status"	enums(active, finished)
//	@Param		assetContract	query		string	false	"asset contract"
//	@Param		assetId			query		string	false	"asset id"
//	@Param		offset			query		int		false	"paging offset"
//	@Param		limit			query		int		false	"paging size"
//	@Success	200				{object}	object{data=[]auction.Auction}
//	@Router		/markets/{market}/auctions [get]
func (h *handler) listAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listAuctionsParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offset, limit := pagination(p.Offset, p.Limit)
	opts := []auction.FindAllOptionsFunc{auction.WithPagination(offset, limit)}
	if p.Seller != "" {
		opts = append(opts, auction.WithSeller(p.Seller))
	}
	if p.HighestBidder != "" {
		opts = append(opts, auction.WithHighestBidder(p.HighestBidder))
	}
	if p.Status != "" {
		opts = append(opts, auction.WithStatus(auction.Status(p.Status)))
	}
	if p.AssetContract != "" {
		assetId, err := optionalAmount(p.AssetId)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		opts = append(opts, auction.WithAsset(p.AssetContract, assetId))
	}

	if res, err := marketOf(c).Auctions.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// getAuction
//
//	@Summary	Get auction
//	@Tags		auctions
//	@Produce	json
//	@Param		market	path		string	true	"market name"
//	@Param		id		path		int		true	"auction id"
//	@Success	200		{object}	object{data=auction.Auction}
//	@Failure	404
//	@Router		/markets/{market}/auctions/{id} [get]
func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &idParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if res, err := marketOf(c).Auctions.Get(ctx, p.Id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// bid
//
//	@Summary		Place bid
//	@Description	Pull the bid from the caller and refund the previous highest bidder
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string			true	"market name"
//	@Param			id		path		int				true	"auction id"
//	@Param			params	body		http.bidParams	true	"params"
//	@Success		200
//	@Failure		409
//	@Router			/markets/{market}/auctions/{id}/bids [post]
func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &bidParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := marketOf(c).Settlement.Bid(ctx, callerOf(c), p.Id, amount); err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": p.Id, "amount": p.Amount}).Warn("settlement.Bid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "")
}

// finish
//
//	@Summary		Finish auction
//	@Description	Settle an ended auction; seller or admin only
//	@Tags			auctions
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string	true	"market name"
//	@Param			id		path		int		true	"auction id"
//	@Success		200		{object}	object{data=http.receiptResp}
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Router			/markets/{market}/auctions/{id}/finish [post]
func (h *handler) finish(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &idParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	receipt, err := marketOf(c).Settlement.FinishAuction(ctx, callerOf(c), p.Id)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": p.Id}).Warn("settlement.FinishAuction failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, toReceiptResp(receipt))
}

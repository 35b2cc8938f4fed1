package http

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/audit"
	"github.com/x-xyz/market/domain/event"
	"github.com/x-xyz/market/domain/settlement"
	"github.com/x-xyz/market/domain/treasury"
)

type feesResp struct {
	Rewards     string `json:"rewards"`
	Server      string `json:"server"`
	Maintenance string `json:"maintenance"`
	Retained    string `json:"retained"`
}

type receiptResp struct {
	SaleId         uint64                    `json:"saleId"`
	Winner         domain.Address            `json:"winner,omitempty"`
	Price          string                    `json:"price"`
	SellerProceeds string                    `json:"sellerProceeds"`
	Fees           *feesResp                 `json:"fees,omitempty"`
	Liquidity      *treasury.LiquidityReport `json:"liquidity,omitempty"`
	LiquidityError string                    `json:"liquidityError,omitempty"`
}

func toReceiptResp(r *settlement.Receipt) *receiptResp {
	res := &receiptResp{
		SaleId:         r.SaleId,
		Winner:         r.Winner,
		Price:          domain.AmountString(r.Price),
		SellerProceeds: "0",
		Liquidity:      r.Liquidity,
	}
	if r.Split != nil {
		res.SellerProceeds = domain.AmountString(r.Split.Seller)
		res.Fees = &feesResp{
			Rewards:     domain.AmountString(r.Split.Rewards),
			Server:      domain.AmountString(r.Split.Server),
			Maintenance: domain.AmountString(r.Split.Maintenance),
			Retained:    domain.AmountString(r.Split.Retained),
		}
	}
	if r.Liquidity != nil && r.Liquidity.Err != nil {
		res.LiquidityError = r.Liquidity.Err.Error()
	}
	return res
}

func optionalAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	return domain.ParseAmount(s)
}

type listEventsParams struct {
	Type    string         `query:"type"`
	SaleId  string         `query:"saleId" validate:"omitempty,numeric"`
	Account domain.Address `query:"account" validate:"omitempty,address"`
	Offset  int32          `query:"offset"`
	Limit   int32          `query:"limit"`
}

// getTreasury
//
//	@Summary	Get treasury state
//	@Tags		treasury
//	@Produce	json
//	@Param		market	path		string	true	"market name"
//	@Success	200		{object}	object{data=treasury.State}
//	@Router		/markets/{market}/treasury [get]
func (h *handler) getTreasury(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := marketOf(c).Treasury.Get(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

// changeWallets
//
//	@Summary	Change fee wallets
//	@Tags		treasury
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		market	path	string					true	"market name"
//	@Param		params	body	treasury.WalletConfig	true	"wallets"
//	@Success	200
//	@Failure	400
//	@Failure	403
//	@Router		/markets/{market}/treasury/wallets [put]
func (h *handler) changeWallets(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &treasury.WalletConfig{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := marketOf(c).Treasury.ChangeWalletAddresses(ctx, callerOf(c), *p); err != nil {
		ctx.WithFields(log.Fields{"err": err, "wallets": p}).Warn("treasury.ChangeWalletAddresses failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "")
}

// audit
//
//	@Summary		Audit escrow
//	@Description	Compare custody holdings and held payments with active sales
//	@Tags			treasury
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			market	path		string	true	"market name"
//	@Success		200		{object}	object{data=object{healthy=bool,report=audit.Report}}
//	@Router			/markets/{market}/audit [get]
func (h *handler) audit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	report, err := marketOf(c).Audit.Run(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, struct {
		Healthy       bool               `json:"healthy"`
		Discrepancies []*audit.AssetLine `json:"discrepancies"`
		Report        *audit.Report      `json:"report"`
	}{report.Healthy(), report.Discrepancies(), report})
}

// listEvents
//
//	@Summary	List events
//	@Tags		events
//	@Produce	json
//	@Param		market	path		string	true	"market name"
//	@Param		type	query		string	false	"event type"
//	@Param		saleId	query		int		false	"listing or auction id"
//	@Param		account	query		string	false	"seller or counterparty"
//	@Param		offset	query		int		false	"paging offset"
//	@Param		limit	query		int		false	"paging size"
//	@Success	200		{object}	object{data=[]event.Event}
//	@Router		/markets/{market}/events [get]
func (h *handler) listEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listEventsParams{}
	if err := bindAndValidate(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offset, limit := pagination(p.Offset, p.Limit)
	opts := []event.FindAllOptionsFunc{event.WithPagination(offset, limit)}
	if p.Type != "" {
		opts = append(opts, event.WithType(event.Type(p.Type)))
	}
	if p.SaleId != "" {
		id, err := strconv.ParseUint(p.SaleId, 10, 64)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, event.WithSaleId(id))
	}
	if p.Account != "" {
		opts = append(opts, event.WithAccount(p.Account))
	}

	if res, err := marketOf(c).Events.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

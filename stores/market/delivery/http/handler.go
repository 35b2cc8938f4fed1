package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/market"
	"github.com/x-xyz/market/middleware"
	"github.com/x-xyz/market/service/cache/provider"
	authMiddleware "github.com/x-xyz/market/stores/auth/delivery/http/middleware"
)

const (
	defaultLimit = 100
	maxLimit     = 1000

	eventsCacheTTL = 2 * time.Second
)

type handler struct {
	markets market.Markets
}

// New mounts the per-market routes under /markets/:market. readCache, when set,
// briefly caches the event log.
func New(e *echo.Echo, markets market.Markets, authMiddleware *authMiddleware.AuthMiddleware, readCache provider.Provider) {
	h := &handler{markets}

	g := e.Group("/markets/:market", h.bindMarket)

	g.POST("/listings", h.createListing, authMiddleware.Auth())
	g.POST("/listings/bulk", h.createListings, authMiddleware.Auth())
	g.GET("/listings", h.listListings)
	g.GET("/listings/:id", h.getListing)
	g.POST("/listings/:id/buy", h.buy, authMiddleware.Auth())

	g.POST("/auctions", h.createAuction, authMiddleware.Auth())
	g.POST("/auctions/bulk", h.createAuctions, authMiddleware.Auth())
	g.GET("/auctions", h.listAuctions)
	g.GET("/auctions/:id", h.getAuction)
	g.POST("/auctions/:id/bids", h.bid, authMiddleware.Auth())
	g.POST("/auctions/:id/finish", h.finish, authMiddleware.Auth())

	g.GET("/treasury", h.getTreasury)
	g.PUT("/treasury/wallets", h.changeWallets, authMiddleware.Auth(), authMiddleware.IsAdmin())

	g.GET("/audit", h.audit, authMiddleware.Auth(), authMiddleware.IsAdmin())

	events := []echo.MiddlewareFunc{}
	if readCache != nil {
		events = append(events, middleware.CacheHttp(readCache, eventsCacheTTL))
	}
	g.GET("/events", h.listEvents, events...)
}

// bindMarket resolves :market and tags the request ctx with it.
func (h *handler) bindMarket(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		m, err := h.markets.Get(c.Param("market"))
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown market")
		}
		cont := c.Get("ctx").(ctx.Ctx)
		c.Set("ctx", ctx.WithValue(cont, "market", m.Name))
		c.Set("market", m)
		return next(c)
	}
}

func marketOf(c echo.Context) *market.Market {
	return c.Get("market").(*market.Market)
}

func callerOf(c echo.Context) domain.Address {
	address, _ := c.Get("address").(domain.Address)
	return address
}

func pagination(offset, limit int32) (int32, int32) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit
}

// bindAndValidate binds the request into p and runs the struct validator.
func bindAndValidate(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return domain.ErrBadParamInput
	}
	if err := c.Validate(p); err != nil {
		return domain.ErrBadParamInput
	}
	return nil
}

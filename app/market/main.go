package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/market/app/internal/bootstrap"
	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	bValidator "github.com/x-xyz/market/base/validator"
	"github.com/x-xyz/market/domain"
	mmiddleware "github.com/x-xyz/market/middleware"
	"github.com/x-xyz/market/service/cache/provider"
	"github.com/x-xyz/market/service/chain/contract"
	auth_delivery "github.com/x-xyz/market/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/market/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/market/stores/auth/usecase"
	hc_delivery "github.com/x-xyz/market/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/market/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/market/stores/healthcheck/usecase"
	market_delivery "github.com/x-xyz/market/stores/market/delivery/http"

	_ "github.com/x-xyz/market/app/market/docs"
)

//	@title			Market API
//	@version		1.0
//	@description	Escrowed fixed-price listings and auctions with fee distribution.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrive token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	opts := bootstrap.Options{}
	fs := pflag.NewFlagSet("market", pflag.ExitOnError)
	bootstrap.BindFlags(fs, &opts)
	_ = fs.Parse(os.Args[1:])

	cfg, err := bootstrap.Load(opts)
	if err != nil {
		log.Log().WithField("err", err).Panic("failed to load config")
	}

	context := ctx.Background()
	rt, err := bootstrap.Build(context, cfg)
	if err != nil {
		log.Log().WithField("err", err).Panic("failed to build markets")
	}
	defer rt.Close()

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(validator.New())

	authCfg := &auth_usecase.AuthUseCaseCfg{
		JwtSecret:    cfg.Auth.JwtSecret,
		SignatureMsg: cfg.Auth.SignatureMsg,
		TokenTTL:     cfg.Auth.TokenTTL,
		NonceWindow:  cfg.Auth.NonceWindow,
		Clock:        time.Now,
	}
	if rt.Chain != nil {
		authCfg.Erc1271 = contract.NewErc1271(rt.Chain)
	}
	auth := auth_usecase.New(authCfg)
	authMw := auth_middleware.New(auth, cfg.Admins)

	var healthToken domain.Address
	if len(cfg.Markets) > 0 {
		healthToken = cfg.Markets[0].PayToken.Address
	}
	hc := hc_usecase.New(hc_repo.New(rt.Mongo, rt.Redis, rt.Handles, healthToken), cfg.Server.HealthTimeout)

	var readCache provider.Provider
	if cfg.Server.CacheEvents {
		readCache = rt.Cache
	}

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	market_delivery.New(e, rt.Markets, authMw, readCache)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

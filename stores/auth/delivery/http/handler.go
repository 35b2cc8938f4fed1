package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
	g.GET("/signingMsg", handler.getSigningMsg)
}

type signParams struct {
	Address   domain.Address `json:"address" validate:"required,address" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
	Nonce     int64          `json:"nonce" validate:"required" example:"1660000000"`
	Signature string         `json:"signature" validate:"required"`
}

// sign
//
//	@Summary		Get access token
//	@Description	Exchange a personal_sign signature of the signing message for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.signParams	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/sign [post]
func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &signParams{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if tkn, err := h.auth.SignToken(ctx, domain.SignInParams{Address: p.Address, Nonce: p.Nonce, Signature: p.Signature}); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}

// getSigningMsg
//
//	@Summary		Get signing message
//	@Description	Message to personal_sign for the given nonce, a current unix timestamp
//	@Tags			auth
//	@Produce		json
//	@Param			nonce	query		int	true	"unix timestamp"
//	@Success		200		{object}	object{data=object{msg=string}}
//	@Router			/auth/signingMsg [get]
func (h *authHandler) getSigningMsg(c echo.Context) error {
	var nonce int64
	if err := echo.QueryParamsBinder(c).Int64("nonce", &nonce).BindError(); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	res := struct {
		Msg string `json:"msg"`
	}{
		Msg: h.auth.SigningMessage(nonce),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

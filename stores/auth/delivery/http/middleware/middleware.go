package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/domain"
)

type AuthMiddleware struct {
	auth           domain.AuthUsecase
	adminAddresses domain.Addresses
}

func New(auth domain.AuthUsecase, adminAddresses domain.Addresses) *AuthMiddleware {
	return &AuthMiddleware{
		auth:           auth,
		adminAddresses: adminAddresses,
	}
}

// Auth requires a bearer token and stores its address under "address".
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address, _ := c.Get("address").(domain.Address)

			if m.adminAddresses.Contains(address) {
				return next(c)
			}

			return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if ads, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	} else {
		c.Set("address", ads)
		return true, nil
	}
}

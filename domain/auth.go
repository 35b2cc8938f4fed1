package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/market/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

// SignInParams proves control of Address: Signature is a personal_sign over the signing
// message built from Nonce, a unix timestamp.
type SignInParams struct {
	Address   Address
	Nonce     int64
	Signature string
}

type AuthUsecase interface {
	SignToken(c ctx.Ctx, p SignInParams) (string, error)
	ParseToken(c ctx.Ctx, token string) (Address, error)
	SigningMessage(nonce int64) string
}

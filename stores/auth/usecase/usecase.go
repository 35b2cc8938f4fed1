package usecase

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/ethereum"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/chain/contract"
)

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultNonceWindow = 10 * time.Minute
)

type AuthUseCaseCfg struct {
	JwtSecret string
	// SignatureMsg is a fmt template taking the nonce, e.g. "Sign in to the market, nonce: %d".
	SignatureMsg string
	TokenTTL     time.Duration
	NonceWindow  time.Duration
	// Erc1271 checks signatures of contract wallets. Nil accepts EOA signatures only.
	Erc1271 contract.Erc1271Contract
	Clock   domain.Clock
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	tokenTTL     time.Duration
	nonceWindow  time.Duration
	erc1271      contract.Erc1271Contract
	clock        domain.Clock
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	im := &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		tokenTTL:     cfg.TokenTTL,
		nonceWindow:  cfg.NonceWindow,
		erc1271:      cfg.Erc1271,
		clock:        cfg.Clock,
	}
	if im.tokenTTL == 0 {
		im.tokenTTL = defaultTokenTTL
	}
	if im.nonceWindow == 0 {
		im.nonceWindow = defaultNonceWindow
	}
	if im.clock == nil {
		im.clock = time.Now
	}
	return im
}

func (im *impl) SigningMessage(nonce int64) string {
	return fmt.Sprintf(im.signatureMsg, nonce)
}

func (im *impl) SignToken(c ctx.Ctx, p domain.SignInParams) (string, error) {
	if p.Address.IsEmpty() {
		return "", domain.ErrInvalidAddress
	}
	now := im.clock()
	issued := time.Unix(p.Nonce, 0)
	if issued.Before(now.Add(-im.nonceWindow)) || issued.After(now.Add(im.nonceWindow)) {
		c.WithFields(log.Fields{"address": p.Address, "nonce": p.Nonce}).Warn("stale nonce")
		return "", domain.ErrInvalidSignature
	}

	if ok, err := im.verify(c, p); err != nil {
		return "", err
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: p.Address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(im.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) verify(c ctx.Ctx, p domain.SignInParams) (bool, error) {
	msg := []byte(im.SigningMessage(p.Nonce))
	ok, err := ethereum.ValidateMsgSignature(msg, p.Signature, string(p.Address))
	if err == nil && ok {
		return true, nil
	}
	if im.erc1271 == nil {
		if err != nil {
			c.WithFields(log.Fields{"err": err, "address": p.Address}).Warn("ValidateMsgSignature failed")
			return false, domain.ErrInvalidSignature
		}
		return false, nil
	}

	// contract wallets sign with arbitrary encodings
	sig, err := hexutil.Decode(p.Signature)
	if err != nil {
		return false, domain.ErrInvalidSignature
	}
	valid, err := im.erc1271.IsValidSignature(c, p.Address, common.BytesToHash(accounts.TextHash(msg)), sig)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": p.Address}).Warn("erc1271.IsValidSignature failed")
		return false, nil
	}
	return valid, nil
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return domain.Address(claims.Address), nil
		}
	}
	if err == nil {
		err = domain.ErrInvalidSignature
	}
	return "", err
}

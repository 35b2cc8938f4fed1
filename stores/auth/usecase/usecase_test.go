package usecase_test

import (
	"crypto/ecdsa"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/ethereum"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/chain/contract/mocks"
	"github.com/x-xyz/market/stores/auth/usecase"
)

const template = "Sign in to the market, nonce: %d"

type AuthTestSuite struct {
	suite.Suite

	now     time.Time
	key     *ecdsa.PrivateKey
	address domain.Address
	erc1271 *mocks.Erc1271Contract
	im      domain.AuthUsecase
}

func (s *AuthTestSuite) SetupTest() {
	s.now = time.Unix(1660000000, 0)
	key, _, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	s.key = key
	s.address = ethereum.AddressOf(key)
	s.erc1271 = &mocks.Erc1271Contract{}
	s.im = usecase.New(&usecase.AuthUseCaseCfg{
		JwtSecret:    "jwt-secret",
		SignatureMsg: template,
		Erc1271:      s.erc1271,
		Clock:        func() time.Time { return s.now },
	})
}

func (s *AuthTestSuite) TearDownTest() {
	s.erc1271.AssertExpectations(s.T())
}

func (s *AuthTestSuite) sign(nonce int64) string {
	sig, err := crypto.Sign(accounts.TextHash([]byte(s.im.SigningMessage(nonce))), s.key)
	s.Require().NoError(err)
	return hexutil.Encode(sig)
}

func (s *AuthTestSuite) TestSignAndParseToken() {
	c := ctx.Background()
	nonce := s.now.Unix()
	tkn, err := s.im.SignToken(c, domain.SignInParams{Address: s.address, Nonce: nonce, Signature: s.sign(nonce)})
	s.Require().NoError(err)
	s.NotEmpty(tkn)

	addr, err := s.im.ParseToken(c, tkn)
	s.Require().NoError(err)
	s.Equal(s.address.ToLower(), addr)

	_, err = s.im.ParseToken(c, tkn+"x")
	s.Error(err)
}

func (s *AuthTestSuite) TestStaleNonce() {
	nonce := s.now.Add(-time.Hour).Unix()
	_, err := s.im.SignToken(ctx.Background(), domain.SignInParams{Address: s.address, Nonce: nonce, Signature: s.sign(nonce)})
	s.ErrorIs(err, domain.ErrInvalidSignature)
}

func (s *AuthTestSuite) TestContractWallet() {
	wallet := domain.Address("0x00000000000000000000000000000000000000aa")
	nonce := s.now.Unix()
	sig := s.sign(nonce)

	s.erc1271.On("IsValidSignature", mock.Anything, wallet, mock.Anything, mock.Anything).Return(true, nil).Once()
	tkn, err := s.im.SignToken(ctx.Background(), domain.SignInParams{Address: wallet, Nonce: nonce, Signature: sig})
	s.Require().NoError(err)
	s.NotEmpty(tkn)

	s.erc1271.On("IsValidSignature", mock.Anything, wallet, mock.Anything, mock.Anything).Return(false, nil).Once()
	_, err = s.im.SignToken(ctx.Background(), domain.SignInParams{Address: wallet, Nonce: nonce, Signature: sig})
	s.ErrorIs(err, domain.ErrInvalidSignature)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

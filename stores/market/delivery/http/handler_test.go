package http

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/market/base/delivery"
	"github.com/x-xyz/market/base/validator"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/listing"
	listingMocks "github.com/x-xyz/market/domain/listing/mocks"
	"github.com/x-xyz/market/domain/market"
	domainMocks "github.com/x-xyz/market/domain/mocks"
	"github.com/x-xyz/market/domain/settlement"
	settlementMocks "github.com/x-xyz/market/domain/settlement/mocks"
	"github.com/x-xyz/market/domain/treasury"
	treasuryMocks "github.com/x-xyz/market/domain/treasury/mocks"
	"github.com/x-xyz/market/middleware"
	authMiddleware "github.com/x-xyz/market/stores/auth/delivery/http/middleware"
)

var (
	buyer = domain.Address("0x00000000000000000000000000000000000000b1")
	admin = domain.Address("0x00000000000000000000000000000000000000ad")
)

type handlerSuite struct {
	suite.Suite

	e          *echo.Echo
	auth       *domainMocks.AuthUsecase
	listings   *listingMocks.UseCase
	settlement *settlementMocks.UseCase
	treasury   *treasuryMocks.UseCase
}

func (s *handlerSuite) SetupTest() {
	s.auth = &domainMocks.AuthUsecase{}
	s.listings = &listingMocks.UseCase{}
	s.settlement = &settlementMocks.UseCase{}
	s.treasury = &treasuryMocks.UseCase{}

	s.auth.On("ParseToken", mock.Anything, "buyer-token").Return(buyer, nil).Maybe()
	s.auth.On("ParseToken", mock.Anything, "admin-token").Return(admin, nil).Maybe()

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(goValidator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())

	markets := market.Markets{
		"official": {
			Name:       "official",
			Listings:   s.listings,
			Settlement: s.settlement,
			Treasury:   s.treasury,
		},
	}
	New(s.e, markets, authMiddleware.New(s.auth, domain.Addresses{admin}), nil)
}

func (s *handlerSuite) TearDownTest() {
	s.listings.AssertExpectations(s.T())
	s.settlement.AssertExpectations(s.T())
	s.treasury.AssertExpectations(s.T())
}

func (s *handlerSuite) do(method, target, token, body string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	resp := delivery.JsonResponse{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func (s *handlerSuite) TestUnknownMarket() {
	rec, _ := s.do(http.MethodGet, "/markets/nope/listings/1", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestGetListing() {
	s.listings.On("Get", mock.Anything, uint64(7)).Return(&listing.Listing{Market: "official", Id: 7, Price: big.NewInt(30)}, nil).Once()
	s.listings.On("Get", mock.Anything, uint64(8)).Return(nil, domain.ErrNotFound).Once()

	rec, resp := s.do(http.MethodGet, "/markets/official/listings/7", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.Equal(float64(7), resp.Data.(map[string]interface{})["id"])

	rec, _ = s.do(http.MethodGet, "/markets/official/listings/8", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestBuy() {
	rec, _ := s.do(http.MethodPost, "/markets/official/listings/7/buy", "", "")
	s.GreaterOrEqual(rec.Code, 400)

	receipt := &settlement.Receipt{
		SaleId: 7,
		Winner: buyer,
		Price:  big.NewInt(12345),
		Split:  treasury.ComputeSplit(big.NewInt(12345), treasury.DefaultFeeSchedule, false),
	}
	s.settlement.On("Buy", mock.Anything, buyer, uint64(7)).Return(receipt, nil).Once()
	rec, resp := s.do(http.MethodPost, "/markets/official/listings/7/buy", "buyer-token", "")
	s.Equal(http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	s.Equal("12345", data["price"])
	s.Equal("12100", data["sellerProceeds"])

	s.settlement.On("Buy", mock.Anything, buyer, uint64(7)).Return(nil, domain.ErrAlreadySold).Once()
	rec, resp = s.do(http.MethodPost, "/markets/official/listings/7/buy", "buyer-token", "")
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(domain.ErrAlreadySold.Error(), resp.Data)
}

func (s *handlerSuite) TestCreateListingValidation() {
	rec, _ := s.do(http.MethodPost, "/markets/official/listings", "buyer-token", `{"assetContract":"nope","assetId":"1","quantity":"1","price":"10"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/markets/official/listings", "buyer-token", `{"assetContract":"0x00000000000000000000000000000000000000c1","assetId":"1","quantity":"1","price":"-10"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestCreateListing() {
	s.listings.On("Create", mock.Anything, buyer, mock.MatchedBy(func(p listing.CreateParams) bool {
		return p.Price.Cmp(big.NewInt(10)) == 0 && p.ActiveFrom.IsZero()
	})).Return(uint64(3), nil).Once()

	rec, resp := s.do(http.MethodPost, "/markets/official/listings", "buyer-token", `{"assetContract":"0x00000000000000000000000000000000000000c1","assetId":"1","quantity":"1","price":"10"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(float64(3), resp.Data.(map[string]interface{})["id"])
}

func (s *handlerSuite) TestChangeWalletsRequiresAdmin() {
	body := `{"rewards":"0x00000000000000000000000000000000000000e1","server":"0x00000000000000000000000000000000000000e2","maintenance":"0x00000000000000000000000000000000000000e3"}`

	rec, _ := s.do(http.MethodPut, "/markets/official/treasury/wallets", "buyer-token", body)
	s.Equal(http.StatusForbidden, rec.Code)

	s.treasury.On("ChangeWalletAddresses", mock.Anything, admin, treasury.WalletConfig{
		Rewards:     "0x00000000000000000000000000000000000000e1",
		Server:      "0x00000000000000000000000000000000000000e2",
		Maintenance: "0x00000000000000000000000000000000000000e3",
	}).Return(nil).Once()
	rec, _ = s.do(http.MethodPut, "/markets/official/treasury/wallets", "admin-token", body)
	s.Equal(http.StatusOK, rec.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

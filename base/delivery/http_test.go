package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/market/domain"
)

type DeliveryTestSuite struct {
	suite.Suite
}

func (s *DeliveryTestSuite) TestStatusOf() {
	tests := []struct {
		desc   string
		err    error
		status int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"invalid sale id", domain.ErrInvalidSaleId, http.StatusNotFound},
		{"wrapped", xerrors.Errorf("buy: %w", domain.ErrAlreadySold), http.StatusConflict},
		{"not open yet", domain.ErrNotOpenYet, http.StatusConflict},
		{"expired", domain.ErrAuctionExpired, http.StatusConflict},
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"funds", domain.ErrInsufficientFunds, http.StatusPaymentRequired},
		{"length", domain.ErrLengthMismatch, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, t := range tests {
		s.Equal(t.status, StatusOf(t.err, http.StatusInternalServerError), t.desc)
	}
}

func (s *DeliveryTestSuite) TestMakeJsonResp() {
	e := echo.New()

	rec := httptest.NewRecorder()
	s.Require().NoError(MakeJsonResp(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), http.StatusInternalServerError, domain.ErrBidTooLow))
	s.Equal(http.StatusConflict, rec.Code)
	resp := JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(JsonResponseStatusFail, resp.Status)
	s.Equal("Bid is too low", resp.Data)

	rec = httptest.NewRecorder()
	s.Require().NoError(MakeJsonResp(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), http.StatusOK, map[string]string{"id": "1"}))
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(JsonResponseStatusSuccess, resp.Status)
}

func TestDeliveryTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryTestSuite))
}

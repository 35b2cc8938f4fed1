package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	errs   []error
	status int
}{
	{[]error{domain.ErrNotFound, query.ErrNotFound, domain.ErrInvalidSaleId}, http.StatusNotFound},
	{[]error{domain.ErrUnauthorized, domain.ErrNotAssetOwner}, http.StatusForbidden},
	{[]error{domain.ErrInvalidSignature}, http.StatusUnauthorized},
	{[]error{
		domain.ErrAlreadySold,
		domain.ErrAlreadyFinished,
		domain.ErrAuctionStillRunning,
		domain.ErrNotYetActive,
		domain.ErrNotOnAuction,
		domain.ErrBidTooLow,
	}, http.StatusConflict},
	{[]error{domain.ErrInsufficientFunds, domain.ErrInsufficientApproval, domain.ErrCustodyNotAuthorized}, http.StatusPaymentRequired},
	{[]error{
		domain.ErrBadParamInput,
		domain.ErrInvalidNumberFormat,
		domain.ErrInvalidAddress,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidPrice,
		domain.ErrLengthMismatch,
		domain.ErrUnsupportedAsset,
	}, http.StatusBadRequest},
}

// StatusOf maps a use case error to the response status, defaulting to fallback.
func StatusOf(err error, fallback int) int {
	for _, es := range errStatus {
		for _, e := range es.errs {
			if errors.Is(err, e) {
				return es.status
			}
		}
	}
	return fallback
}

// MakeJsonResp wraps data in a JsonResponse. An error as data is rendered by its message
// with the status of its sentinel, if it has one.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

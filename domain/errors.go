package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidAddress      = errors.New("Invalid address")
	ErrInvalidSignature    = errors.New("Invalid signature")

	// sale lifecycle
	ErrNotYetActive        = errors.New("Sale is not active yet")
	ErrAlreadySold         = errors.New("Item is already sold")
	ErrAlreadyFinished     = errors.New("Auction is already finished")
	ErrAuctionStillRunning = errors.New("Auction is still running")
	ErrInvalidSaleId       = errors.New("Invalid sale id")
	ErrBidTooLow           = errors.New("Bid is too low")

	// ErrNotOnAuction is the shared parent of the two bid timing errors. Both render the
	// same message so callers cannot tell not-yet-open from expired; errors.Is still can.
	ErrNotOnAuction   = errors.New("Item is not on auction")
	ErrNotOpenYet     = &timingError{reason: "not open yet"}
	ErrAuctionExpired = &timingError{reason: "expired"}

	// payment
	ErrInsufficientFunds    = errors.New("Insufficient funds")
	ErrInsufficientApproval = errors.New("Insufficient approval")

	// roles
	ErrUnauthorized = errors.New("Caller is not authorized")

	// custody
	ErrNotAssetOwner        = errors.New("Caller does not own enough of the asset")
	ErrCustodyNotAuthorized = errors.New("Marketplace is not approved to operate the asset")
	ErrUnsupportedAsset     = errors.New("Asset contract is not supported")
	ErrInvalidQuantity      = errors.New("Invalid quantity")
	ErrInvalidPrice         = errors.New("Invalid price")
	ErrLengthMismatch       = errors.New("Input lengths do not match")

	// treasury
	ErrSwapFailed = errors.New("Liquidity conversion failed")
)

type timingError struct {
	reason string
}

func (e *timingError) Error() string {
	return ErrNotOnAuction.Error()
}

func (e *timingError) Unwrap() error {
	return ErrNotOnAuction
}

// Reason is the internal distinction hidden behind the shared message.
func (e *timingError) Reason() string {
	return e.reason
}

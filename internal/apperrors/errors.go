package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMissingAmortizationInput indicates an AMORTIZED financing record is missing
// principal, interest rate, or term. The caller must not silently default these.
var ErrMissingAmortizationInput = fmt.Errorf("%w: missing amortization input", ErrValidation)

// ErrNoEligibleProduction indicates a contract has no eligible farms with
// non-zero expected production, so proportional shares are undefined.
var ErrNoEligibleProduction = errors.New("no eligible production for contract")

// ErrMissingPriceData indicates no price snapshot exists for a commodity present
// in the projection's farm set. The affected commodity row is omitted, not the
// whole projection.
var ErrMissingPriceData = errors.New("missing price data for commodity")

// AppError wraps an underlying error with an HTTP-ish status code and a message
// suitable for surfacing to the caller.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

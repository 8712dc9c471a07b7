// Package errors provides custom error types for the Tharwa API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username/email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Investor errors.
var (
	ErrInvestorNotFound  = &AppError{Code: "INVESTOR_NOT_FOUND", Message: "Investor not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "An investor with this username already exists", StatusCode: http.StatusConflict}
)

// Asset errors.
var (
	ErrAssetNotFound        = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrAssetIndexOutOfRange = &AppError{Code: "ASSET_INDEX_OUT_OF_RANGE", Message: "Asset index is out of range", StatusCode: http.StatusBadRequest}
	ErrSellPercentageRange  = &AppError{Code: "SELL_PERCENTAGE_OUT_OF_RANGE", Message: "Sell percentage must be between 0 and 100", StatusCode: http.StatusBadRequest}
	ErrIllegalStateChange   = &AppError{Code: "ILLEGAL_STATE_CHANGE", Message: "Asset cannot move to the requested state", StatusCode: http.StatusConflict}
)

// Bank account errors.
var (
	ErrAccountNotFound   = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Bank account not found", StatusCode: http.StatusNotFound}
	ErrChallengeNotFound = &AppError{Code: "CHALLENGE_NOT_FOUND", Message: "No pending verification for this request", StatusCode: http.StatusNotFound}
	ErrOTPMismatch       = &AppError{Code: "OTP_MISMATCH", Message: "One-time password does not match", StatusCode: http.StatusBadRequest}
	ErrCardExpired       = &AppError{Code: "CARD_EXPIRED", Message: "Card expiry date must be in the future", StatusCode: http.StatusBadRequest}
)

// Persistence errors. ErrNoData means the store has never been written,
// which is distinct from a store that exists but cannot be read back.
var (
	ErrNoData       = &AppError{Code: "NO_DATA", Message: "No saved investors yet", StatusCode: http.StatusNotFound}
	ErrCorruptStore = &AppError{Code: "CORRUPT_STORE", Message: "Saved investor data could not be read", StatusCode: http.StatusInternalServerError}
)

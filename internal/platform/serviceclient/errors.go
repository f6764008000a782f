package serviceclient

import (
	"errors"
	"fmt"

	dErrors "accounts/pkg/domain-errors"
)

// Category is the normalized failure taxonomy for calls to downstream services.
type Category string

const (
	// CategoryUnavailable covers empty resolution, connection failures and 5xx responses.
	CategoryUnavailable      Category = "unavailable"
	CategoryTimeout          Category = "timeout"
	CategoryCanceled         Category = "canceled"
	CategoryBadRequest       Category = "bad_request"
	CategoryAuthentication   Category = "authentication"
	CategoryNotFound         Category = "not_found"
	CategoryRateLimited      Category = "rate_limited"
	CategoryUnexpectedStatus Category = "unexpected_status"
	// CategoryContractMismatch means a 2xx body did not decode into the expected payload.
	CategoryContractMismatch Category = "contract_mismatch"
	CategoryInternal         Category = "internal"
)

// ErrorResponse is the error body downstream services return on failure.
type ErrorResponse struct {
	APIPath      string `json:"apiPath"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	ErrorTime    string `json:"errorTime"`
}

// CallError describes a failed call to a downstream service.
type CallError struct {
	Category   Category
	Service    string
	Instance   string // empty when the call failed before an instance was picked
	StatusCode int    // zero when no response was received
	Message    string
	Remote     *ErrorResponse // decoded error body, when the service sent one
	Err        error
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("%s [%s]: %s", e.Service, e.Category, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// CategoryOf extracts the category of a CallError in err's chain, or CategoryInternal.
func CategoryOf(err error) Category {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return CategoryInternal
}

// IsNotFound reports whether the downstream service answered 404.
func IsNotFound(err error) bool {
	return CategoryOf(err) == CategoryNotFound
}

// DomainCode maps a call failure onto the domain error code handlers translate to HTTP.
func DomainCode(c Category) dErrors.Code {
	switch c {
	case CategoryNotFound:
		return dErrors.CodeNotFound
	case CategoryTimeout:
		return dErrors.CodeTimeout
	case CategoryUnavailable, CategoryRateLimited, CategoryCanceled:
		return dErrors.CodeUnavailable
	case CategoryBadRequest, CategoryAuthentication, CategoryUnexpectedStatus, CategoryContractMismatch:
		return dErrors.CodeUpstream
	default:
		return dErrors.CodeInternal
	}
}

// ToDomainError wraps err in a domain error carrying the code for its category.
// Errors that already carry a domain code are returned unchanged.
func ToDomainError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, DomainCode(CategoryOf(err)), msg)
}

func newCallError(category Category, service, message string, err error) *CallError {
	return &CallError{
		Category: category,
		Service:  service,
		Message:  message,
		Err:      err,
	}
}

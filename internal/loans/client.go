// Package loans is the accounts service's client for the loans service.
package loans

import (
	"context"

	"accounts/internal/loans/models"
	"accounts/internal/platform/serviceclient"
)

const (
	ServiceName       = "loans"
	FetchPath         = "/api/fetch"
	MobileNumberParam = "mobileNumber"
)

type Response = serviceclient.Response[models.LoanDetails]

// Client fetches loan details from the loans service.
type Client interface {
	FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*Response, error)
}

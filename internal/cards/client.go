// Package cards is the accounts service's client for the cards service.
package cards

import (
	"context"

	"accounts/internal/cards/models"
	"accounts/internal/platform/serviceclient"
)

const (
	// ServiceName is the logical name the cards service registers under.
	ServiceName = "cards"
	// FetchPath is the card lookup endpoint.
	FetchPath = "/api/fetch"
	// MobileNumberParam is the query parameter carrying the mobile number.
	MobileNumberParam = "mobileNumber"
)

// Response is the decoded result of a card lookup.
type Response = serviceclient.Response[models.CardDetails]

// Client fetches card details from the cards service.
type Client interface {
	FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*Response, error)
}

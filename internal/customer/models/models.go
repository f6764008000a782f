package models

import (
	cardmodels "accounts/internal/cards/models"
	loanmodels "accounts/internal/loans/models"
)

// CustomerDetails aggregates what the downstream services hold for one mobile
// number. A nil section means that service has no record for the customer.
type CustomerDetails struct {
	MobileNumber string                  `json:"mobileNumber"`
	Cards        *cardmodels.CardDetails `json:"cards,omitempty"`
	Loans        *loanmodels.LoanDetails `json:"loans,omitempty"`
}

// FetchDetailsRequest is the query of GET /api/fetchCustomerDetails.
type FetchDetailsRequest struct {
	MobileNumber string `validate:"required,mobile"`
}

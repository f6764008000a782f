package cards

import (
	"context"
	"net/http"
	"net/url"

	"accounts/internal/cards/models"
	"accounts/internal/platform/serviceclient"
	"accounts/pkg/correlation"
	"accounts/pkg/platform/privacy"
	"accounts/pkg/validation"
)

// HTTPClient implements Client over a discovery-backed serviceclient.
type HTTPClient struct {
	client *serviceclient.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client that always resolves ServiceName; any Service
// set on cfg is overridden.
func NewHTTPClient(cfg serviceclient.Config) (*HTTPClient, error) {
	cfg.Service = ServiceName
	client, err := serviceclient.New(cfg)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{client: client}, nil
}

// FetchCardDetails performs GET /api/fetch?mobileNumber=... on one live cards
// instance, forwarding correlationID in the eazybank-correlation-id header.
//
// Errors: a validation_failed domain error when either argument is blank, in
// which case nothing is resolved or sent; otherwise a *serviceclient.CallError.
func (c *HTTPClient) FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*Response, error) {
	if err := validation.Validate(models.FetchRequest{CorrelationID: correlationID, MobileNumber: mobileNumber}); err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set(correlation.Header, correlationID)

	return serviceclient.Get[models.CardDetails](ctx, c.client, serviceclient.Request{
		Path:     FetchPath,
		Header:   header,
		Query:    url.Values{MobileNumberParam: {mobileNumber}},
		LogAttrs: []any{"mobile_number", privacy.MaskMobileNumber(mobileNumber)},
	})
}

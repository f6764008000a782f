package loans

import (
	"context"
	"net/http"
	"net/url"

	"accounts/internal/loans/models"
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

// NewHTTPClient builds a client bound to ServiceName regardless of cfg.Service.
func NewHTTPClient(cfg serviceclient.Config) (*HTTPClient, error) {
	cfg.Service = ServiceName
	client, err := serviceclient.New(cfg)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{client: client}, nil
}

// FetchLoanDetails performs GET /api/fetch?mobileNumber=... on one live loans instance.
func (c *HTTPClient) FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*Response, error) {
	if err := validation.Validate(models.FetchRequest{CorrelationID: correlationID, MobileNumber: mobileNumber}); err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set(correlation.Header, correlationID)

	return serviceclient.Get[models.LoanDetails](ctx, c.client, serviceclient.Request{
		Path:     FetchPath,
		Header:   header,
		Query:    url.Values{MobileNumberParam: {mobileNumber}},
		LogAttrs: []any{"mobile_number", privacy.MaskMobileNumber(mobileNumber)},
	})
}

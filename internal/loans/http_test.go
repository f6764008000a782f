package loans_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts/internal/discovery/discoverytest"
	"accounts/internal/loans"
	"accounts/internal/loans/models"
	"accounts/internal/platform/serviceclient"
	"accounts/pkg/correlation"
	dErrors "accounts/pkg/domain-errors"
)

func newClient(t *testing.T, resolver *discoverytest.Resolver) *loans.HTTPClient {
	t.Helper()
	client, err := loans.NewHTTPClient(serviceclient.Config{
		Resolver: resolver,
		Timeout:  time.Second,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return client
}

func TestFetchLoanDetails(t *testing.T) {
	reqs := make(chan *http.Request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r
		_, _ = io.WriteString(w, `{
			"mobileNumber": "4354437687",
			"loanNumber": "548732457654",
			"loanType": "Home Loan",
			"totalLoan": 100000,
			"amountPaid": 1000,
			"outstandingAmount": 99000
		}`)
	}))
	defer server.Close()

	resolver := discoverytest.NewResolver(loans.ServiceName,
		discoverytest.InstanceFor(loans.ServiceName, "loans-1", server.URL))
	client := newClient(t, resolver)

	resp, err := client.FetchLoanDetails(context.Background(), "corr-9", "4354437687")
	require.NoError(t, err)

	assert.Equal(t, &models.LoanDetails{
		MobileNumber:      "4354437687",
		LoanNumber:        "548732457654",
		LoanType:          "Home Loan",
		TotalLoan:         100000,
		AmountPaid:        1000,
		OutstandingAmount: 99000,
	}, resp.Body)

	req := <-reqs
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, loans.FetchPath, req.URL.Path)
	assert.Equal(t, "4354437687", req.URL.Query().Get(loans.MobileNumberParam))
	assert.Equal(t, "corr-9", req.Header.Get(correlation.Header))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, []string{"loans"}, resolver.Calls())
}

func TestFetchLoanDetailsValidation(t *testing.T) {
	resolver := discoverytest.NewResolver(loans.ServiceName)
	client := newClient(t, resolver)

	_, err := client.FetchLoanDetails(context.Background(), "", "4354437687")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = client.FetchLoanDetails(context.Background(), "corr-9", " ")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	assert.Empty(t, resolver.Calls())
}

func TestFetchLoanDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"apiPath":"uri=/api/fetch","errorCode":"NOT_FOUND","errorMessage":"Loan not found","errorTime":"2026-03-01T12:00:00"}`)
	}))
	defer server.Close()

	client := newClient(t, discoverytest.NewResolver(loans.ServiceName,
		discoverytest.InstanceFor(loans.ServiceName, "loans-1", server.URL)))

	_, err := client.FetchLoanDetails(context.Background(), "corr-9", "4354437687")
	assert.True(t, serviceclient.IsNotFound(err))
}

func TestFetchLoanDetailsNoInstances(t *testing.T) {
	client := newClient(t, discoverytest.NewResolver(loans.ServiceName))

	_, err := client.FetchLoanDetails(context.Background(), "corr-9", "4354437687")
	assert.Equal(t, serviceclient.CategoryUnavailable, serviceclient.CategoryOf(err))
}

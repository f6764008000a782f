package e2e

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the accounts service is running$`, tc.accountsServiceIsRunning)
	ctx.Step(`^the correlation id "([^"]*)"$`, tc.setCorrelationID)

	ctx.Step(`^I fetch customer details for mobile number "([^"]*)"$`, tc.fetchCustomerDetails)
	ctx.Step(`^I fetch customer details without a mobile number$`, tc.fetchCustomerDetailsWithoutMobile)

	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, tc.responseFieldShouldEqual)
	ctx.Step(`^the response should include "([^"]*)"$`, tc.responseShouldInclude)
	ctx.Step(`^the response should not include "([^"]*)"$`, tc.responseShouldNotInclude)
	ctx.Step(`^the response correlation id should be "([^"]*)"$`, tc.responseCorrelationIDShouldBe)
	ctx.Step(`^the response should carry a generated correlation id$`, tc.responseShouldCarryCorrelationID)
}

func (tc *TestContext) accountsServiceIsRunning(context.Context) error {
	if err := tc.GET("/health/ready"); err != nil {
		return err
	}
	if tc.LastResponse.StatusCode != http.StatusOK {
		return fmt.Errorf("accounts service not ready: %s", tc.LastResponseBody)
	}
	return nil
}

func (tc *TestContext) setCorrelationID(_ context.Context, id string) error {
	tc.CorrelationID = id
	return nil
}

func (tc *TestContext) fetchCustomerDetails(_ context.Context, mobile string) error {
	return tc.GET("/api/fetchCustomerDetails?mobileNumber=" + mobile)
}

func (tc *TestContext) fetchCustomerDetailsWithoutMobile(context.Context) error {
	return tc.GET("/api/fetchCustomerDetails")
}

func (tc *TestContext) responseStatusShouldBe(_ context.Context, expected int) error {
	if tc.LastResponse == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.LastResponse.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.LastResponse.StatusCode, tc.LastResponseBody)
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqual(_ context.Context, field, expected string) error {
	value, err := tc.ResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, got)
	}
	return nil
}

func (tc *TestContext) responseShouldInclude(_ context.Context, field string) error {
	_, err := tc.ResponseField(field)
	return err
}

func (tc *TestContext) responseShouldNotInclude(_ context.Context, field string) error {
	if _, err := tc.ResponseField(field); err == nil {
		return fmt.Errorf("expected %q to be absent", field)
	} else if !strings.Contains(err.Error(), "not found") {
		return err
	}
	return nil
}

func (tc *TestContext) responseCorrelationIDShouldBe(_ context.Context, expected string) error {
	if got := tc.LastResponse.Header.Get(correlationHeader); got != expected {
		return fmt.Errorf("expected correlation id %q, got %q", expected, got)
	}
	return nil
}

func (tc *TestContext) responseShouldCarryCorrelationID(context.Context) error {
	if tc.LastResponse.Header.Get(correlationHeader) == "" {
		return fmt.Errorf("response has no %s header", correlationHeader)
	}
	return nil
}

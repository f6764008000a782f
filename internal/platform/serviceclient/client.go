// Package serviceclient performs HTTP calls to downstream services addressed by
// logical name. Each call resolves the name through discovery, picks one
// instance, executes the request and classifies the outcome into a CallError.
package serviceclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"accounts/internal/discovery"
	"accounts/internal/platform/metrics"
	"accounts/internal/platform/tracer"
	"accounts/pkg/correlation"
)

const (
	contentTypeJSON = "application/json"
	maxBodyBytes    = 1 << 20
	defaultTimeout  = 5 * time.Second
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client. Service and Resolver are required.
type Config struct {
	Service    string
	Resolver   discovery.Resolver
	Picker     discovery.Picker // defaults to round robin
	HTTPClient HTTPDoer         // defaults to an http.Client with Timeout
	Timeout    time.Duration    // per call, defaults to 5s
	Metrics    *metrics.Metrics // optional
	Tracer     tracer.Tracer    // defaults to no-op
	Logger     *slog.Logger     // defaults to slog.Default()
}

// Client calls one logical downstream service. Safe for concurrent use.
type Client struct {
	service  string
	resolver discovery.Resolver
	picker   discovery.Picker
	http     HTTPDoer
	timeout  time.Duration
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
	logger   *slog.Logger
}

// Request describes a call relative to the chosen instance's base URL.
type Request struct {
	Path   string
	Header http.Header
	Query  url.Values
	// LogAttrs are appended to the failure log line, e.g. a masked mobile number.
	LogAttrs []any
}

// Response is a decoded 2xx response.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Body       *T
}

func New(cfg Config) (*Client, error) {
	if cfg.Service == "" {
		return nil, errors.New("serviceclient: service name is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("serviceclient: resolver is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Picker == nil {
		cfg.Picker = discovery.NewRoundRobin()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracer.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		service:  cfg.Service,
		resolver: cfg.Resolver,
		picker:   cfg.Picker,
		http:     cfg.HTTPClient,
		timeout:  cfg.Timeout,
		metrics:  cfg.Metrics,
		tracer:   cfg.Tracer,
		logger:   cfg.Logger,
	}, nil
}

// Get performs a GET and decodes a 2xx JSON body into T.
//
// Errors: always a *CallError; see Category for the taxonomy.
func Get[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	var body T
	raw, err := c.do(ctx, http.MethodGet, req, func(b []byte) error {
		return json.Unmarshal(b, &body)
	})
	if err != nil {
		return nil, err
	}
	return &Response[T]{
		StatusCode: raw.statusCode,
		Header:     raw.header,
		Body:       &body,
	}, nil
}

type rawResponse struct {
	statusCode int
	header     http.Header
}

// do runs resolve -> pick -> execute -> classify -> decode and records the outcome.
func (c *Client) do(ctx context.Context, method string, req Request, decode func([]byte) error) (res *rawResponse, err error) {
	start := time.Now()
	correlationID := req.Header.Get(correlation.Header)

	ctx, span := c.tracer.Start(ctx, tracer.SpanOutboundCall,
		tracer.String(tracer.AttrService, c.service),
		tracer.String(tracer.AttrHTTPMethod, method),
		tracer.String(tracer.AttrHTTPPath, req.Path),
		tracer.String(tracer.AttrCorrelationID, correlationID),
	)
	defer func() {
		if err != nil {
			span.SetAttributes(tracer.String(tracer.AttrErrorCategory, string(CategoryOf(err))))
		}
		span.End(err)
	}()

	inst, err := c.pick(ctx)
	if err != nil {
		c.record(ctx, req, err, time.Since(start))
		return nil, err
	}
	span.AddEvent(tracer.EventInstanceSelected, tracer.String(tracer.AttrInstance, inst.ID))

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(callCtx, method, inst, req)
	if err != nil {
		ce := newCallError(CategoryInternal, c.service, "failed to create request", err)
		ce.Instance = inst.ID
		c.record(ctx, req, ce, time.Since(start))
		return nil, ce
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		ce := classifyTransportError(ctx, callCtx, c.service, err)
		ce.Instance = inst.ID
		c.record(ctx, req, ce, time.Since(start))
		return nil, ce
	}
	defer resp.Body.Close()

	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		ce := classifyTransportError(ctx, callCtx, c.service, err)
		ce.Instance = inst.ID
		ce.StatusCode = resp.StatusCode
		ce.Message = "failed to read response body"
		c.record(ctx, req, ce, time.Since(start))
		return nil, ce
	}

	if ce := classifyStatus(c.service, resp.StatusCode, body); ce != nil {
		ce.Instance = inst.ID
		c.record(ctx, req, ce, time.Since(start))
		return nil, ce
	}

	if err := decode(body); err != nil {
		ce := newCallError(CategoryContractMismatch, c.service, "failed to decode response body", err)
		ce.Instance = inst.ID
		ce.StatusCode = resp.StatusCode
		c.record(ctx, req, ce, time.Since(start))
		return nil, ce
	}

	c.record(ctx, req, nil, time.Since(start))
	return &rawResponse{
		statusCode: resp.StatusCode,
		header:     resp.Header,
	}, nil
}

// pick resolves the service name and chooses one instance.
func (c *Client) pick(ctx context.Context) (discovery.Instance, error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanResolve, tracer.String(tracer.AttrService, c.service))

	instances, err := c.resolver.Resolve(ctx, c.service)
	if err != nil {
		result := "error"
		if errors.Is(err, discovery.ErrNoInstances) {
			result = "empty"
		}
		c.observeResolution(result, 0)
		span.End(err)
		return discovery.Instance{}, newCallError(CategoryUnavailable, c.service, "service resolution failed", err)
	}
	c.observeResolution("resolved", len(instances))
	span.SetAttributes(tracer.Int(tracer.AttrInstanceCount, len(instances)))

	inst, err := c.picker.Pick(instances)
	span.End(err)
	if err != nil {
		return discovery.Instance{}, newCallError(CategoryUnavailable, c.service, "no instance selected", err)
	}
	return inst, nil
}

func (c *Client) newRequest(ctx context.Context, method string, inst discovery.Instance, req Request) (*http.Request, error) {
	u, err := url.Parse(inst.BaseURL())
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u.Path = req.Path
	u.RawQuery = req.Query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	return httpReq, nil
}

func (c *Client) observeResolution(result string, n int) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveResolution(c.service, result, n)
}

// record emits the outcome metric and, for failures, one log line.
func (c *Client) record(ctx context.Context, req Request, err error, elapsed time.Duration) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = string(CategoryOf(err))
	}
	if c.metrics != nil {
		c.metrics.ObserveOutbound(c.service, outcome, elapsed.Seconds())
	}

	attrs := []any{
		"service", c.service,
		"path", req.Path,
		"correlation_id", req.Header.Get(correlation.Header),
		"duration_ms", elapsed.Milliseconds(),
	}
	attrs = append(attrs, req.LogAttrs...)

	if err == nil {
		c.logger.DebugContext(ctx, "outbound_call_completed", attrs...)
		return
	}

	var ce *CallError
	if errors.As(err, &ce) {
		attrs = append(attrs, "category", string(ce.Category), "instance_id", ce.Instance, "status", ce.StatusCode)
	}
	attrs = append(attrs, "error", err)
	if outcome == string(CategoryNotFound) {
		c.logger.InfoContext(ctx, "outbound_call_not_found", attrs...)
		return
	}
	c.logger.WarnContext(ctx, "outbound_call_failed", attrs...)
}

// classifyTransportError distinguishes deadline expiry and caller cancellation
// from connection-level failures. The *url.Error wrapper is dropped since its
// URL carries the query string.
func classifyTransportError(parent, callCtx context.Context, service string, err error) *CallError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var netErr net.Error
	switch {
	case errors.Is(parent.Err(), context.Canceled):
		return newCallError(CategoryCanceled, service, "request canceled", err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(callCtx.Err(), context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return newCallError(CategoryTimeout, service, "request timeout", err)
	default:
		return newCallError(CategoryUnavailable, service, "failed to execute request", err)
	}
}

// classifyStatus returns nil for 2xx.
func classifyStatus(service string, status int, body []byte) *CallError {
	if status >= 200 && status < 300 {
		return nil
	}

	var category Category
	switch {
	case status == http.StatusBadRequest:
		category = CategoryBadRequest
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		category = CategoryAuthentication
	case status == http.StatusNotFound:
		category = CategoryNotFound
	case status == http.StatusTooManyRequests:
		category = CategoryRateLimited
	case status >= 500:
		category = CategoryUnavailable
	default:
		category = CategoryUnexpectedStatus
	}

	ce := newCallError(category, service, http.StatusText(status), nil)
	ce.StatusCode = status
	var remote ErrorResponse
	if json.Unmarshal(body, &remote) == nil && remote.ErrorMessage != "" {
		ce.Remote = &remote
		ce.Message = remote.ErrorMessage
	}
	if ce.Message == "" {
		ce.Message = fmt.Sprintf("unexpected status code: %d", status)
	}
	return ce
}

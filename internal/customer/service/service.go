package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"accounts/internal/cards"
	"accounts/internal/customer/models"
	"accounts/internal/loans"
	"accounts/internal/platform/serviceclient"
	"accounts/internal/platform/tracer"
	dErrors "accounts/pkg/domain-errors"
	"accounts/pkg/platform/privacy"
)

type Option func(*Service)

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// Service combines card and loan details for a customer.
type Service struct {
	cards  cards.Client
	loans  loans.Client
	tracer tracer.Tracer
	logger *slog.Logger
}

func NewService(cardsClient cards.Client, loansClient loans.Client, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		cards:  cardsClient,
		loans:  loansClient,
		tracer: tracer.NewNoop(),
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// FetchCustomerDetails fetches cards and loans concurrently.
//
// A 404 from one service leaves its section nil. When neither service knows
// the mobile number the result is a not_found domain error. Any other failure
// cancels the sibling call and is returned as a domain error.
func (s *Service) FetchCustomerDetails(ctx context.Context, correlationID, mobileNumber string) (details *models.CustomerDetails, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCustomerDetails,
		tracer.String(tracer.AttrCorrelationID, correlationID),
		tracer.String(tracer.AttrMobileHash, privacy.HashMobileNumber(mobileNumber)),
	)
	defer func() { span.End(err) }()

	details = &models.CustomerDetails{MobileNumber: mobileNumber}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.cards.FetchCardDetails(gctx, correlationID, mobileNumber)
		if serviceclient.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return serviceclient.ToDomainError(err, "failed to fetch card details")
		}
		details.Cards = resp.Body
		return nil
	})
	g.Go(func() error {
		resp, err := s.loans.FetchLoanDetails(gctx, correlationID, mobileNumber)
		if serviceclient.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return serviceclient.ToDomainError(err, "failed to fetch loan details")
		}
		details.Loans = resp.Body
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if details.Cards == nil && details.Loans == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no cards or loans found for the given mobile number")
	}

	span.SetAttributes(
		tracer.Bool("customer.has_cards", details.Cards != nil),
		tracer.Bool("customer.has_loans", details.Loans != nil),
	)
	s.logger.DebugContext(ctx, "customer_details_fetched",
		"correlation_id", correlationID,
		"mobile_number", privacy.MaskMobileNumber(mobileNumber),
		"has_cards", details.Cards != nil,
		"has_loans", details.Loans != nil,
	)
	return details, nil
}

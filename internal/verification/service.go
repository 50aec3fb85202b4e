// Package verification runs the document, sanctions, fraud and risk checks
// for a trade invoice and folds their findings into a scored, rated Result.
package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tradeverify/internal/reference"
	"tradeverify/internal/verification/checks/document"
	"tradeverify/internal/verification/checks/fraud"
	"tradeverify/internal/verification/checks/risk"
	"tradeverify/internal/verification/checks/sanctions"
	"tradeverify/internal/verification/metrics"
	"tradeverify/internal/verification/models"
	dErrors "tradeverify/pkg/domain-errors"
	"tradeverify/pkg/platform/parallel"
	"tradeverify/pkg/requestcontext"
)

const tracerName = "tradeverify/internal/verification"

// FindingChecker is a leaf that produces a single finding.
type FindingChecker interface {
	Check(ctx context.Context, req models.Request) (models.Finding, error)
}

// RiskChecker is the leaf that produces the commodity, geographic and amount findings.
type RiskChecker interface {
	Check(ctx context.Context, req models.Request) (risk.Assessment, error)
}

// Service orchestrates the leaf checks for one request at a time. It holds
// no per-request state and is safe for concurrent use.
type Service struct {
	document  FindingChecker
	sanctions FindingChecker
	fraud     FindingChecker
	risk      RiskChecker

	policy  Policy
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithLogger sets the logger; nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics sink; nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer replaces the global otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithIDGenerator replaces the verification id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// New constructs a Service over the given leaves.
func New(doc, sanction, fraudCheck FindingChecker, riskCheck RiskChecker, opts ...Option) *Service {
	s := &Service{
		document:  doc,
		sanctions: sanction,
		fraud:     fraudCheck,
		risk:      riskCheck,
		policy:    DefaultPolicy(),
		tracer:    otel.Tracer(tracerName),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromReference wires the production leaves over data.
func NewFromReference(data *reference.Data, opts ...Option) *Service {
	return New(
		document.New(),
		sanctions.New(data, sanctions.DefaultConfig()),
		fraud.New(data, fraud.DefaultConfig()),
		risk.New(data, risk.DefaultConfig()),
		opts...,
	)
}

// Verify evaluates every check and returns the aggregate result. It only
// fails on a malformed request; failed checks are scored conservatively.
func (s *Service) Verify(ctx context.Context, req models.Request) (*models.Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "verification.Verify",
		trace.WithAttributes(attribute.String("invoice_id", req.InvoiceID)))
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}
	req.Amount = models.CoerceAmount(req.Amount)

	if err := ctx.Err(); err != nil {
		return nil, s.abandon(ctx, span, req, err)
	}
	findings := s.collect(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, s.abandon(ctx, span, req, err)
	}
	result := s.policy.aggregate(findings)
	result.VerificationID = s.newID()
	result.InvoiceID = req.InvoiceID
	result.Timestamp = requestcontext.Now(ctx)

	span.SetAttributes(
		attribute.String("verification_id", result.VerificationID),
		attribute.Float64("risk_score", result.RiskScore),
		attribute.String("credit_rating", string(result.CreditRating)),
		attribute.Bool("is_valid", result.IsValid),
	)
	s.metrics.IncrementOutcome(string(result.CreditRating), result.IsValid)
	s.metrics.ObserveVerifyLatency(time.Since(start))
	s.logInfo(ctx, "verification completed",
		"verification_id", result.VerificationID,
		"invoice_id", result.InvoiceID,
		"risk_score", result.RiskScore,
		"credit_rating", result.CreditRating,
		"is_valid", result.IsValid,
	)
	return result, nil
}

// abandon reports a request whose context ended before every check ran. No
// result is produced: a partial evaluation must not be scored as ERROR findings.
func (s *Service) abandon(ctx context.Context, span trace.Span, req models.Request, cause error) error {
	span.RecordError(cause)
	span.SetStatus(codes.Error, "abandoned")
	s.logWarn(ctx, "verification abandoned",
		"invoice_id", req.InvoiceID,
		"error", cause,
	)
	return dErrors.Wrap(cause, dErrors.CodeTimeout, "verification abandoned before completion")
}

// leaf is one concurrently evaluated unit and the checks it owns.
type leaf struct {
	name   string
	checks []models.CheckName
	run    func(ctx context.Context, req models.Request) ([]models.Finding, error)
}

func single(c FindingChecker) func(context.Context, models.Request) ([]models.Finding, error) {
	return func(ctx context.Context, req models.Request) ([]models.Finding, error) {
		if c == nil {
			return nil, errLeafNotConfigured
		}
		f, err := c.Check(ctx, req)
		if err != nil {
			return nil, err
		}
		return []models.Finding{f}, nil
	}
}

var errLeafNotConfigured = errors.New("check not configured")

func (s *Service) leaves() []leaf {
	return []leaf{
		{name: "document", checks: []models.CheckName{models.CheckDocument}, run: single(s.document)},
		{name: "sanctions", checks: []models.CheckName{models.CheckSanctions}, run: single(s.sanctions)},
		{name: "fraud", checks: []models.CheckName{models.CheckFraud}, run: single(s.fraud)},
		{
			name:   "risk",
			checks: []models.CheckName{models.CheckCommodity, models.CheckGeographic, models.CheckAmount},
			run: func(ctx context.Context, req models.Request) ([]models.Finding, error) {
				if s.risk == nil {
					return nil, errLeafNotConfigured
				}
				a, err := s.risk.Check(ctx, req)
				if err != nil {
					return nil, err
				}
				return a.Findings(), nil
			},
		},
	}
}

// collect runs every leaf to completion and substitutes an ERROR finding for
// each check owned by a leaf that failed.
func (s *Service) collect(ctx context.Context, req models.Request) map[models.CheckName]models.Finding {
	leaves := s.leaves()
	tasks := make([]parallel.Task[[]models.Finding], len(leaves))
	for i, l := range leaves {
		tasks[i] = parallel.Task[[]models.Finding]{
			Name: l.name,
			Run: func(ctx context.Context) ([]models.Finding, error) {
				started := time.Now()
				defer func() { s.metrics.ObserveCheckLatency(l.name, time.Since(started)) }()
				return l.run(ctx, req)
			},
		}
	}

	findings := make(map[models.CheckName]models.Finding, len(models.CheckOrder))
	for i, outcome := range parallel.All(ctx, tasks...) {
		l := leaves[i]
		if outcome.OK() && len(outcome.Value) == len(l.checks) {
			for j, check := range l.checks {
				f := outcome.Value[j]
				f.Check = check
				findings[check] = f
			}
			continue
		}

		err := outcome.Err
		if err == nil {
			err = errors.New("check returned an unexpected number of findings")
		}
		s.metrics.IncrementLeafFailure(l.name)
		s.logWarn(ctx, "check degraded",
			"check", l.name,
			"invoice_id", req.InvoiceID,
			"error", err,
		)
		for _, check := range l.checks {
			findings[check] = models.ErrorFinding(check, s.policy.errorPenalty(check))
		}
	}
	return findings
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx))
	s.logger.InfoContext(ctx, msg, args...)
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx))
	s.logger.WarnContext(ctx, msg, args...)
}

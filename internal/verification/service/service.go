// Package service orchestrates HKID checks for the HTTP layer: it runs the
// engine, records metrics and traces, and emits privacy-preserving audit events.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hkidcheck/internal/verification/metrics"
	"hkidcheck/internal/verification/ports"
	dErrors "hkidcheck/pkg/domain-errors"
	"hkidcheck/pkg/hkid"
	audit "hkidcheck/pkg/platform/audit"
	"hkidcheck/pkg/platform/privacy"
	"hkidcheck/pkg/requestcontext"
)

const tracerName = "hkidcheck/internal/verification"

// Shape names used in metrics labels, audit events and responses.
const (
	ShapeCombined  = "combined"
	ShapePrefix    = "prefix_pair"
	ShapeMainCheck = "main_check_pair"
)

// Default batch limits; see config for the environment overrides.
const (
	DefaultBatchLimit   = 100
	DefaultBatchWorkers = 8
)

// Request is one value to validate, in whatever shape its widget submits.
type Request struct {
	Shape     hkid.Shape
	ShapeName string
}

// Result is the outcome of validating one Request.
type Result struct {
	Outcome   hkid.Outcome
	ShapeName string
	CheckedAt time.Time
}

// AuditPublisher is an alias to the port interface.
type AuditPublisher = ports.AuditPublisher

type Service struct {
	checker        hkid.Checker
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	batchLimit     int
	batchWorkers   int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithBatchLimits sets the maximum batch size and the number of concurrent
// validations per batch.
func WithBatchLimits(limit, workers int) Option {
	return func(s *Service) {
		s.batchLimit = limit
		s.batchWorkers = workers
	}
}

func New(checker hkid.Checker, opts ...Option) (*Service, error) {
	if checker == nil {
		return nil, errors.New("identifier checker is required")
	}

	svc := &Service{
		checker:      checker,
		logger:       slog.New(slog.DiscardHandler),
		tracer:       otel.Tracer(tracerName),
		batchLimit:   DefaultBatchLimit,
		batchWorkers: DefaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.batchLimit <= 0 || svc.batchWorkers <= 0 {
		return nil, errors.New("batch limit and workers must be positive")
	}
	return svc, nil
}

// Validate checks a single value. Invalid input is reported in the Result,
// never as an error.
func (s *Service) Validate(ctx context.Context, req Request) Result {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "verification.Validate")
	defer span.End()

	res := s.validate(ctx, req)
	span.SetAttributes(
		attribute.String("hkid.shape", req.ShapeName),
		attribute.String("hkid.outcome", outcomeLabel(res.Outcome)),
	)
	s.metrics.ObserveLatency("validate", time.Since(start))
	return res
}

// ValidateBatch checks every value concurrently and returns results in
// request order.
func (s *Service) ValidateBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	if len(reqs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one value is required")
	}
	if len(reqs) > s.batchLimit {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d values are allowed per batch", s.batchLimit))
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "verification.ValidateBatch",
		trace.WithAttributes(attribute.Int("hkid.batch_size", len(reqs))))
	defer span.End()

	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.validate(gctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch aborted")
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation aborted")
	}

	invalid := 0
	for _, r := range results {
		if !r.Outcome.Valid() {
			invalid++
		}
	}

	// A batch that is mostly wrong looks like guessing rather than typos.
	category := audit.CategoryOperations
	if invalid*2 > len(reqs) {
		category = audit.CategorySecurity
	}
	s.emit(ctx, audit.Event{
		Category: category,
		Action:   string(audit.EventHKIDBatchValidated),
		Subject:  "batch",
		Decision: batchDecision(invalid),
		Reason:   fmt.Sprintf("%d/%d invalid", invalid, len(reqs)),
	})

	s.metrics.ObserveBatchSize(len(reqs))
	s.metrics.ObserveLatency("batch", time.Since(start))
	s.logger.InfoContext(ctx, "batch validated",
		"request_id", requestcontext.RequestID(ctx),
		"size", len(reqs),
		"invalid", invalid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// Normalize parses raw into a body and optional unverified check character.
func (s *Service) Normalize(ctx context.Context, raw string) (hkid.Candidate, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("normalize", time.Since(start)) }()

	c, err := s.checker.Normalize(raw)
	if err != nil {
		s.logger.DebugContext(ctx, "identifier rejected",
			"request_id", requestcontext.RequestID(ctx),
			"input", privacy.MaskHKID(raw),
		)
		return hkid.Candidate{}, dErrors.Wrap(err, dErrors.CodeUnprocessable, "value does not match the HKID format")
	}

	s.emit(ctx, audit.Event{
		Category:      audit.CategoryOperations,
		Action:        string(audit.EventHKIDNormalized),
		Subject:       ShapeCombined,
		SubjectIDHash: privacy.HashSubject(c.Body.String()),
	})
	return c, nil
}

// CheckDigit computes the identifier for a body typed without its check
// character.
func (s *Service) CheckDigit(ctx context.Context, body string) (hkid.Identifier, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("check_digit", time.Since(start)) }()

	c, err := s.checker.Normalize(body)
	if err != nil {
		return hkid.Identifier{}, dErrors.Wrap(err, dErrors.CodeUnprocessable, "body does not match the HKID format")
	}
	if c.HasCheck() {
		return hkid.Identifier{}, dErrors.New(dErrors.CodeUnprocessable, "body must not include a check character")
	}
	return s.checker.Issue(c.Body), nil
}

// Format renders partial input for live display.
func (s *Service) Format(_ context.Context, raw string) string {
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("format", time.Since(start)) }()
	return s.checker.Format(raw)
}

func (s *Service) validate(ctx context.Context, req Request) Result {
	outcome := s.checker.ValidateShape(req.Shape)
	label := outcomeLabel(outcome)

	s.metrics.IncrementValidation(req.ShapeName, label)
	s.emit(ctx, audit.Event{
		Category:      audit.CategoryOperations,
		Action:        string(audit.EventHKIDValidated),
		Subject:       req.ShapeName,
		Decision:      decision(outcome),
		Reason:        outcome.Kind.String(),
		SubjectIDHash: privacy.HashSubject(outcome.Body.String()),
	})
	s.logger.DebugContext(ctx, "identifier validated",
		"request_id", requestcontext.RequestID(ctx),
		"shape", req.ShapeName,
		"outcome", label,
		"input", privacy.MaskHKID(outcome.Raw),
	)

	return Result{
		Outcome:   outcome,
		ShapeName: req.ShapeName,
		CheckedAt: requestcontext.Now(ctx),
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = privacy.AnonymizeIP(requestcontext.ClientIP(ctx))
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}

func outcomeLabel(o hkid.Outcome) string {
	if o.Valid() {
		return "valid"
	}
	return o.Kind.String()
}

func decision(o hkid.Outcome) string {
	if o.Valid() {
		return audit.DecisionValid
	}
	return audit.DecisionInvalid
}

func batchDecision(invalid int) string {
	if invalid == 0 {
		return audit.DecisionValid
	}
	return audit.DecisionInvalid
}

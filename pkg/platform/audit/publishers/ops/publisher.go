// Package ops publishes operational audit events to the structured log.
package ops

import (
	"context"
	"log/slog"

	audit "hkidcheck/pkg/platform/audit"
)

// Publisher writes sampled audit events as slog records with log_type=audit.
// Security events bypass sampling.
type Publisher struct {
	logger  *slog.Logger
	sampler *Sampler
	metrics *Metrics
}

type Option func(*Publisher)

func WithSampler(s *Sampler) Option {
	return func(p *Publisher) {
		p.sampler = s
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher that keeps every event unless a sampler
// is configured.
func NewPublisher(logger *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{logger: logger, sampler: NewSampler(1)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit records event. It never fails; the error return satisfies the
// publisher port so durable sinks can be swapped in.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Category != audit.CategorySecurity && !p.sampler.ShouldSample(event.Action) {
		p.metrics.incSampled()
		return nil
	}

	p.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"category", string(event.Category),
		"timestamp", event.Timestamp,
		"subject", event.Subject,
		"decision", event.Decision,
		"reason", event.Reason,
		"request_id", event.RequestID,
		"client_ip", event.ClientIP,
		"subject_id_hash", event.SubjectIDHash,
	)
	p.metrics.incTracked()
	return nil
}

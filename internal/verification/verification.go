// Package verification exposes the HKID engine over HTTP.
package verification

import (
	"log/slog"

	"hkidcheck/internal/verification/handler"
	"hkidcheck/internal/verification/service"
	"hkidcheck/pkg/hkid"
)

// Service orchestrates identifier checks.
type Service = service.Service

// Handler wires HTTP endpoints to the verification service.
type Handler = handler.Handler

// NewService constructs the verification service around an identifier checker.
func NewService(checker hkid.Checker, opts ...service.Option) (*Service, error) {
	return service.New(checker, opts...)
}

// NewHandler constructs an HTTP handler for the /hkid routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}

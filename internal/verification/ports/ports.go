// Package ports defines the outbound interfaces of the verification module.
package ports

import (
	"context"

	audit "hkidcheck/pkg/platform/audit"
)

// AuditPublisher emits audit events for identity checks.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

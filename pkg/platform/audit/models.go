package audit

import "time"

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategorySecurity covers events relevant to abuse monitoring, e.g. a
	// client hammering the validator with guessed identifiers.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine validation traffic. These can be
	// sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the verification service to capture each check.
// Keep it transport-agnostic so sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// Subject names the widget shape the value arrived in.
	Subject  string
	Decision string
	Reason   string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// ClientIP is anonymized before it reaches the event.
	ClientIP string
	// SubjectIDHash is a SHA-256 hash of the normalized identifier body.
	// Used for traceability without storing raw PII.
	SubjectIDHash string
}

type AuditEvent string

const (
	EventHKIDValidated      AuditEvent = "hkid_validated"
	EventHKIDBatchValidated AuditEvent = "hkid_batch_validated"
	EventHKIDNormalized     AuditEvent = "hkid_normalized"
)

// Decision values.
const (
	DecisionValid   = "valid"
	DecisionInvalid = "invalid"
)

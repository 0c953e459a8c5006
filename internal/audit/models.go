package audit

import "time"

// Event is an immutable, append-only record of webhook processing outcomes.
//
// Invariants:
// - Events are never updated or deleted.
// - Audit writes are best-effort; call logging never blocks on them.
type Event struct {
	ID string `json:"id" db:"id"`

	Type EventType `json:"type" db:"type"`

	// CallID is the external (vendor) event identifier.
	CallID string `json:"call_id,omitempty" db:"call_id"`

	// CustomerID is set once a customer was resolved.
	CustomerID string `json:"customer_id,omitempty" db:"customer_id"`

	// CustomerPhone is the normalized phone the lookup ran against.
	CustomerPhone string `json:"customer_phone,omitempty" db:"customer_phone"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeCallLogged       EventType = "call_logged"
	EventTypeCustomerNotFound EventType = "customer_not_found"
	EventTypeDuplicateEvent   EventType = "duplicate_event"
	EventTypeProcessingFailed EventType = "processing_failed"
)

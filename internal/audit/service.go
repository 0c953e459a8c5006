package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records webhook processing outcomes.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogCallLogged records a successfully persisted communication.
func (s *Service) LogCallLogged(ctx context.Context, callID, customerID string) error {
	return s.Append(ctx, Event{
		Type:       EventTypeCallLogged,
		CallID:     callID,
		CustomerID: customerID,
		Message:    "communication created",
	})
}

// LogCustomerNotFound records a webhook dropped because no customer matched.
func (s *Service) LogCustomerNotFound(ctx context.Context, callID, customerPhone string) error {
	return s.Append(ctx, Event{
		Type:          EventTypeCustomerNotFound,
		CallID:        callID,
		CustomerPhone: customerPhone,
		Message:       "no customer matched phone",
	})
}

// LogDuplicate records a replayed delivery that was skipped.
func (s *Service) LogDuplicate(ctx context.Context, callID string) error {
	return s.Append(ctx, Event{
		Type:    EventTypeDuplicateEvent,
		CallID:  callID,
		Message: "event already processed",
	})
}

// LogFailure records an unexpected processing error.
func (s *Service) LogFailure(ctx context.Context, callID, message string) error {
	return s.Append(ctx, Event{
		Type:    EventTypeProcessingFailed,
		CallID:  callID,
		Message: message,
	})
}

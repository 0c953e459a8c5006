package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"callbridge/internal/audit"
	"callbridge/internal/crm"
	"callbridge/internal/phone"
	"callbridge/internal/transcript"
	"callbridge/pkg/logger"

	"github.com/google/uuid"
)

// Service turns a call-completion event into a persisted communication
// record. One invocation is one unit of work; there is no retry or
// background processing.
type Service struct {
	org         phone.OrgNumberSet
	resolver    *crm.Resolver
	repo        crm.Repository
	transcripts transcript.Provider
	audit       *audit.Service

	clock func() time.Time
	newID func() string
}

func NewService(org phone.OrgNumberSet, resolver *crm.Resolver, repo crm.Repository, transcripts transcript.Provider, auditSvc *audit.Service) *Service {
	return &Service{
		org:         org,
		resolver:    resolver,
		repo:        repo,
		transcripts: transcripts,
		audit:       auditSvc,
		clock:       time.Now,
		newID:       uuid.NewString,
	}
}

var ErrCustomerNotFound = errors.New("webhook: customer not found")

// LogCall classifies the call, resolves the customer, fetches the
// transcript, and persists the communication record.
//
// A record is created only when a customer resolves; ErrCustomerNotFound is
// returned otherwise and nothing is written.
func (s *Service) LogCall(ctx context.Context, p Payload) (crm.Communication, error) {
	log := logger.From(ctx)

	from := p.Body.From.Number()
	to := p.Body.To.Number()

	direction, customerPhone := s.org.Classify(from, to)

	customer, ok, err := s.resolver.ResolveByPhone(ctx, customerPhone)
	if err != nil {
		return crm.Communication{}, fmt.Errorf("customer lookup: %w", err)
	}
	if !ok {
		log.Warn("customer not found", "phone", phone.Normalize(customerPhone), "event_id", p.UUID)
		s.auditBestEffort(ctx, func(ctx context.Context) error {
			return s.audit.LogCustomerNotFound(ctx, p.UUID, phone.Normalize(customerPhone))
		})
		return crm.Communication{}, ErrCustomerNotFound
	}

	text, err := s.transcripts.Fetch(ctx, p.UUID, p.Body.Duration)
	if err != nil {
		return crm.Communication{}, fmt.Errorf("transcript fetch: %w", err)
	}

	now := s.clock().UTC()
	comm := crm.Communication{
		ID:                s.newID(),
		Subject:           fmt.Sprintf("%s: %s (%s to %s)", direction, customer.Name, from, to),
		Type:              crm.CommunicationTypePhone,
		Status:            crm.CommunicationStatusClosed,
		Content:           text,
		CustomerID:        customer.ID,
		CallID:            p.UUID,
		DurationSeconds:   p.Body.Duration,
		CommunicationDate: now,
		CreatedAt:         now,
	}

	if err := s.repo.CreateCommunication(ctx, comm); err != nil {
		return crm.Communication{}, fmt.Errorf("create communication: %w", err)
	}

	log.Info("call logged",
		"direction", string(direction),
		"customer_id", customer.ID,
		"event_id", p.UUID,
		"duration_seconds", p.Body.Duration,
	)
	s.auditBestEffort(ctx, func(ctx context.Context) error {
		return s.audit.LogCallLogged(ctx, p.UUID, customer.ID)
	})

	return comm, nil
}

// AuditDuplicate records a replayed delivery. Best-effort.
func (s *Service) AuditDuplicate(ctx context.Context, eventID string) {
	s.auditBestEffort(ctx, func(ctx context.Context) error {
		return s.audit.LogDuplicate(ctx, eventID)
	})
}

// AuditFailure records a processing error. Best-effort.
func (s *Service) AuditFailure(ctx context.Context, eventID, message string) {
	s.auditBestEffort(ctx, func(ctx context.Context) error {
		return s.audit.LogFailure(ctx, eventID, message)
	})
}

func (s *Service) auditBestEffort(ctx context.Context, fn func(context.Context) error) {
	if s.audit == nil {
		return
	}
	if err := fn(ctx); err != nil {
		logger.From(ctx).Warn("audit write failed", "err", err)
	}
}

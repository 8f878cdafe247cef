package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
)

// Default open-time threshold for time-based escalation.
const DefaultEscalationThreshold = 4 * time.Hour

// EscalationService escalates faults up the role ladder and tracks each
// hand-off through acknowledged and resolved.
type EscalationService struct {
	escalationRepo *repository.EscalationRepository
	faultRepo      *repository.FaultRepository
	userRepo       *repository.UserRepository
	strategies     map[string]EscalationStrategy
	dispatcher     *events.Dispatcher
}

func NewEscalationService(
	escalationRepo *repository.EscalationRepository,
	faultRepo *repository.FaultRepository,
	userRepo *repository.UserRepository,
	dispatcher *events.Dispatcher,
) *EscalationService {
	severity := SeverityStrategy{}
	timeBased := NewTimeBasedStrategy(DefaultEscalationThreshold)
	return &EscalationService{
		escalationRepo: escalationRepo,
		faultRepo:      faultRepo,
		userRepo:       userRepo,
		strategies: map[string]EscalationStrategy{
			severity.Name():  severity,
			timeBased.Name(): timeBased,
		},
		dispatcher: dispatcher,
	}
}

// EscalateRequest hands a fault to the next role up.
type EscalateRequest struct {
	Strategy string `json:"strategy" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// Escalate runs the chosen strategy against the fault, picks the first
// active user of the target role, and records the escalation with the next
// level ordinal. The fault moves to escalated in the same transaction.
func (s *EscalationService) Escalate(ctx context.Context, faultID, escalatorID string, req *EscalateRequest) (*entity.Escalation, error) {
	strategy, ok := s.strategies[req.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrValidation, req.Strategy)
	}

	fault, err := s.faultRepo.FindByID(ctx, faultID)
	if err != nil {
		return nil, fmt.Errorf("find fault: %w", err)
	}
	if fault.Status == entity.FaultStatusResolved {
		return nil, fmt.Errorf("%w: resolved faults cannot escalate", ErrInvalidState)
	}

	escalator, err := s.userRepo.FindByID(ctx, escalatorID)
	if err != nil {
		return nil, fmt.Errorf("find escalating user: %w", err)
	}

	targetRole, err := strategy.TargetRole(fault, escalator.Role)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.FirstActiveByRole(ctx, targetRole)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: role %s", ErrNoTargetAvailable, targetRole)
		}
		return nil, fmt.Errorf("find target user: %w", err)
	}

	count, err := s.escalationRepo.CountByFault(ctx, faultID)
	if err != nil {
		return nil, fmt.Errorf("count escalations: %w", err)
	}

	esc := &entity.Escalation{
		ID:            uuid.New().String()[:32],
		FaultID:       faultID,
		EscalatedFrom: escalatorID,
		EscalatedTo:   target.ID,
		Reason:        req.Reason,
		Level:         int(count) + 1,
		Status:        entity.EscalationStatusPending,
		EscalatedAt:   time.Now(),
	}
	if err := s.escalationRepo.CreateWithFaultStatus(ctx, esc); err != nil {
		return nil, fmt.Errorf("create escalation: %w", err)
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Kind:         events.KindFaultEscalated,
		EntityType:   "escalation",
		EntityID:     esc.ID,
		TargetUserID: target.ID,
		Severity:     fault.Severity,
		Message:      fmt.Sprintf("Fault %s escalated to you (level %d): %s", faultID, esc.Level, req.Reason),
	})
	return esc, nil
}

// Acknowledge lets the assigned user take ownership of a pending
// escalation. Only the target may acknowledge.
func (s *EscalationService) Acknowledge(ctx context.Context, id, userID string) (*entity.Escalation, error) {
	esc, err := s.escalationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find escalation: %w", err)
	}
	if esc.EscalatedTo != userID {
		return nil, fmt.Errorf("%w: escalation is assigned to another user", ErrPermission)
	}

	applied, err := s.escalationRepo.TransitionStatus(ctx, id, entity.EscalationStatusPending, entity.EscalationStatusAcknowledged)
	if err != nil {
		return nil, fmt.Errorf("acknowledge escalation: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: escalation is not pending", ErrInvalidState)
	}
	return s.escalationRepo.FindByID(ctx, id)
}

// Resolve closes an acknowledged escalation. Only the target may resolve.
func (s *EscalationService) Resolve(ctx context.Context, id, userID string) (*entity.Escalation, error) {
	esc, err := s.escalationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find escalation: %w", err)
	}
	if esc.EscalatedTo != userID {
		return nil, fmt.Errorf("%w: escalation is assigned to another user", ErrPermission)
	}

	applied, err := s.escalationRepo.TransitionStatus(ctx, id, entity.EscalationStatusAcknowledged, entity.EscalationStatusResolved)
	if err != nil {
		return nil, fmt.Errorf("resolve escalation: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: escalation is not acknowledged", ErrInvalidState)
	}
	return s.escalationRepo.FindByID(ctx, id)
}

func (s *EscalationService) Get(ctx context.Context, id string) (*entity.Escalation, error) {
	esc, err := s.escalationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find escalation: %w", err)
	}
	return esc, nil
}

func (s *EscalationService) ListByFault(ctx context.Context, faultID string) ([]entity.Escalation, error) {
	escs, err := s.escalationRepo.ListByFault(ctx, faultID)
	if err != nil {
		return nil, fmt.Errorf("list escalations: %w", err)
	}
	return escs, nil
}

func (s *EscalationService) ListPendingForUser(ctx context.Context, userID string) ([]entity.Escalation, error) {
	escs, err := s.escalationRepo.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending escalations: %w", err)
	}
	return escs, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service/ports"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
)

// writeTimeout bounds every roster mutation so a stalled connection surfaces
// as a failure the volunteer can re-trigger instead of an indefinite
// "processing" state.
const writeTimeout = 5 * time.Second

// CheckinService owns every roster mutation: self RSVPs, walk-ins, status
// transitions, and administrative removal. Writes fan back out to all
// connected devices through the roster hub's live subscription.
type CheckinService struct {
	regs   ports.RegistrationRepo
	events ports.EventRepo
	logger logger.Logger
}

func NewCheckinService(regs ports.RegistrationRepo, events ports.EventRepo, logger logger.Logger) *CheckinService {
	return &CheckinService{
		regs:   regs,
		events: events,
		logger: logger,
	}
}

// Register creates a self-service RSVP: status pending, origin self. The
// identity is the scan key, so it is required and must be unique within the
// event's roster.
func (s *CheckinService) Register(ctx context.Context, eventID string, input domain.RegisterInput) (*domain.Registration, error) {
	identity := strings.TrimSpace(input.Identity)
	if identity == "" {
		return nil, fmt.Errorf("%w: identity is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, fmt.Errorf("%w: display_name is required", domain.ErrValidation)
	}
	if domain.IsPlaceholderIdentity(identity) {
		return nil, fmt.Errorf("%w: identity is reserved", domain.ErrValidation)
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}

	reg := s.newRegistration(eventID, identity, input.DisplayName, input.ContactPhone, input.PartySize, input.Notes)
	reg.Status = domain.StatusPending
	reg.Origin = domain.OriginSelf

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.logger.Info("registration created",
		logger.String("registration_id", reg.ID),
		logger.String("event_id", eventID),
	)

	return reg, nil
}

// RegisterWalkIn creates a record that is checked in at birth. When no email
// is supplied the registration gets a placeholder identity, which can never be
// matched by scan.
func (s *CheckinService) RegisterWalkIn(ctx context.Context, eventID string, input domain.WalkInInput) (*domain.Registration, error) {
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, fmt.Errorf("%w: display_name is required", domain.ErrValidation)
	}

	identity := strings.TrimSpace(input.Identity)
	if identity == "" {
		identity = domain.NewPlaceholderIdentity()
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}

	reg := s.newRegistration(eventID, identity, input.DisplayName, input.ContactPhone, input.PartySize, input.Notes)
	reg.Status = domain.StatusCheckedIn
	reg.Origin = domain.OriginWalkIn
	now := reg.CreatedAt
	reg.CheckedInAt = &now

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create walk-in: %w", err)
	}

	s.logger.Info("walk-in registered",
		logger.String("registration_id", reg.ID),
		logger.String("event_id", eventID),
	)

	return reg, nil
}

// SetStatus applies the target status absolutely. Setting checked-in on an
// already-checked-in record is a no-op at the data layer, which is what makes
// concurrent scans of the same badge benign.
func (s *CheckinService) SetStatus(ctx context.Context, eventID, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	reg, err := s.regs.SetStatus(ctx, eventID, registrationID, status)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	s.logger.Info("registration status set",
		logger.String("registration_id", registrationID),
		logger.String("event_id", eventID),
		logger.String("status", string(status)),
	)

	return reg, nil
}

// Delete removes a registration. Irreversible; confirmation is the caller's
// responsibility.
func (s *CheckinService) Delete(ctx context.Context, eventID, registrationID string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := s.regs.Delete(ctx, eventID, registrationID); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	s.logger.Info("registration deleted",
		logger.String("registration_id", registrationID),
		logger.String("event_id", eventID),
	)

	return nil
}

func (s *CheckinService) Roster(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return s.regs.ListByEvent(ctx, eventID)
}

func (s *CheckinService) Summary(ctx context.Context, eventID string) (*domain.AttendanceSummary, error) {
	return s.regs.Summary(ctx, eventID)
}

func (s *CheckinService) newRegistration(eventID, identity, displayName, phone string, partySize int, notes string) *domain.Registration {
	if partySize < 1 {
		partySize = 1
	}
	now := time.Now().UTC()
	return &domain.Registration{
		ID:           uuid.New().String(),
		EventID:      eventID,
		Identity:     identity,
		DisplayName:  strings.TrimSpace(displayName),
		ContactPhone: strings.TrimSpace(phone),
		PartySize:    partySize,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

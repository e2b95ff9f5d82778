package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service/ports"
	"github.com/google/uuid"
)

type EventService struct {
	repo ports.EventRepo
	regs ports.RegistrationRepo
}

func NewEventService(repo ports.EventRepo, regs ports.RegistrationRepo) *EventService {
	return &EventService{
		repo: repo,
		regs: regs,
	}
}

// CreateEvent is an administrator action; events are read-only for the
// check-in workflow itself.
func (s *EventService) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: starts_at is required", domain.ErrValidation)
	}

	event := &domain.Event{
		ID:       uuid.New().String(),
		Title:    strings.TrimSpace(input.Title),
		Location: strings.TrimSpace(input.Location),
		StartsAt: input.StartsAt,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetails returns the event with its live attendance numbers.
func (s *EventService) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.regs.Summary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}

	return &domain.EventDetails{
		Event:   *event,
		Summary: *summary,
	}, nil
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.List(ctx)
}

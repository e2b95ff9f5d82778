package ports

import (
	"context"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

type RegistrationRepo interface {
	Create(ctx context.Context, r *domain.Registration) error
	GetByID(ctx context.Context, eventID, id string) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	SetStatus(ctx context.Context, eventID, id string, status domain.RegistrationStatus) (*domain.Registration, error)
	Delete(ctx context.Context, eventID, id string) error
	Summary(ctx context.Context, eventID string) (*domain.AttendanceSummary, error)
}

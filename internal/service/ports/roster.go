package ports

import (
	"context"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

// RosterSource serves the matcher's in-memory roster snapshot for one event.
type RosterSource interface {
	Snapshot(ctx context.Context, eventID string) ([]*domain.Registration, error)
}

// CheckinMutator is the write side the scanner invokes on a pending match.
type CheckinMutator interface {
	SetStatus(ctx context.Context, eventID, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error)
}

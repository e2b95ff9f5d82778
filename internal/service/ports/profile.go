package ports

import (
	"context"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

type ProfileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	SetVolunteer(ctx context.Context, id string, volunteer bool) error
}

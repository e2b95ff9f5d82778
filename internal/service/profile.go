package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service/ports"
	"github.com/google/uuid"
)

// ProfileService is the identity-provider surrogate: profiles carry the
// VolunteerGrant the gate flips.
type ProfileService struct {
	repo ports.ProfileRepo
}

func NewProfileService(repo ports.ProfileRepo) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Create(ctx context.Context, input domain.CreateProfileInput) (*domain.Profile, error) {
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, fmt.Errorf("%w: display_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	profile := &domain.Profile{
		ID:          uuid.New().String(),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Email:       strings.TrimSpace(input.Email),
		IsVolunteer: false,
		Role:        domain.RoleMember,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

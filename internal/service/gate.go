package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// GateService is the volunteer access gate: a shared PIN that flips the
// caller's VolunteerGrant. It is a convenience gate, not a security boundary;
// there is deliberately no lockout or backoff.
type GateService struct {
	profiles ports.ProfileRepo
	pin      string
	logger   logger.Logger
}

func NewGateService(profiles ports.ProfileRepo, pin string, logger logger.Logger) *GateService {
	return &GateService{
		profiles: profiles,
		pin:      pin,
		logger:   logger,
	}
}

// SubmitPin grants volunteer access when the candidate matches. Persisting the
// grant is best-effort: a failed profile write is logged but does not revoke
// the grant for the current session.
func (s *GateService) SubmitPin(ctx context.Context, profileID, candidate string) (bool, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false, fmt.Errorf("%w: pin is required", domain.ErrValidation)
	}

	if subtle.ConstantTimeCompare([]byte(candidate), []byte(s.pin)) != 1 {
		s.logger.Warn("volunteer gate denied",
			logger.String("profile_id", profileID),
		)
		return false, nil
	}

	if err := s.profiles.SetVolunteer(ctx, profileID, true); err != nil {
		s.logger.Error("failed to persist volunteer grant",
			logger.String("profile_id", profileID),
			logger.String("error", err.Error()),
		)
	} else {
		s.logger.Info("volunteer grant set",
			logger.String("profile_id", profileID),
		)
	}

	return true, nil
}

// EndShift clears the VolunteerGrant. Idempotent: ending an already-ended
// shift is a no-op.
func (s *GateService) EndShift(ctx context.Context, profileID string) error {
	if err := s.profiles.SetVolunteer(ctx, profileID, false); err != nil {
		return fmt.Errorf("clear volunteer grant: %w", err)
	}

	s.logger.Info("shift ended",
		logger.String("profile_id", profileID),
	)

	return nil
}

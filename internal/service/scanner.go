package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type scanKey struct {
	eventID  string
	deviceID string
}

type lastScan struct {
	payload string
	at      time.Time
}

// ScannerService resolves decoded badge payloads against the live roster
// snapshot. A badge held in front of a camera decodes many times per second,
// so identical payloads from the same device are suppressed for the dedupe
// window.
type ScannerService struct {
	roster  ports.RosterSource
	checkin ports.CheckinMutator
	window  time.Duration
	logger  logger.Logger

	now func() time.Time

	mu   sync.Mutex
	seen map[scanKey]lastScan
}

func NewScannerService(
	roster ports.RosterSource,
	checkin ports.CheckinMutator,
	window time.Duration,
	logger logger.Logger,
) *ScannerService {
	return &ScannerService{
		roster:  roster,
		checkin: checkin,
		window:  window,
		logger:  logger,
		now:     time.Now,
		seen:    make(map[scanKey]lastScan),
	}
}

// Scan processes one decoded payload from one scanning device.
//
// Empty and repeat payloads are ignored. A payload that matches no roster
// identity is a no-match, not a failure. Matching an already-checked-in record
// is informational. Matching a pending record invokes the check-in write; a
// failed write is reported and never retried automatically.
func (s *ScannerService) Scan(ctx context.Context, eventID, deviceID, raw string) (*domain.ScanResult, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return &domain.ScanResult{Outcome: domain.ScanIgnored}, nil
	}

	if s.duplicate(eventID, deviceID, payload) {
		return &domain.ScanResult{Outcome: domain.ScanIgnored}, nil
	}

	snapshot, err := s.roster.Snapshot(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("roster snapshot: %w", err)
	}

	match := domain.MatchByIdentity(snapshot, payload)
	if match == nil {
		s.logger.Debug("scan matched nothing",
			logger.String("event_id", eventID),
			logger.String("device_id", deviceID),
		)
		return &domain.ScanResult{Outcome: domain.ScanNoMatch}, nil
	}

	if match.Status == domain.StatusCheckedIn {
		return &domain.ScanResult{
			Outcome:      domain.ScanAlreadyCheckedIn,
			Registration: match,
		}, nil
	}

	updated, err := s.checkin.SetStatus(ctx, eventID, match.ID, domain.StatusCheckedIn)
	if err != nil {
		s.logger.Error("scan check-in failed",
			logger.String("event_id", eventID),
			logger.String("registration_id", match.ID),
			logger.String("error", err.Error()),
		)
		return &domain.ScanResult{
			Outcome:      domain.ScanWriteFailed,
			Registration: match,
		}, nil
	}

	s.logger.Info("scan checked in",
		logger.String("event_id", eventID),
		logger.String("registration_id", updated.ID),
		logger.String("device_id", deviceID),
	)

	return &domain.ScanResult{
		Outcome:      domain.ScanCheckedIn,
		Registration: updated,
	}, nil
}

// duplicate records the payload and reports whether it repeats the device's
// previous payload inside the dedupe window. A different payload always resets
// the window, so alternating badges are never suppressed.
func (s *ScannerService) duplicate(eventID, deviceID, payload string) bool {
	key := scanKey{eventID: eventID, deviceID: deviceID}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.seen[key]
	s.seen[key] = lastScan{payload: payload, at: now}

	return ok && prev.payload == payload && now.Sub(prev.at) < s.window
}

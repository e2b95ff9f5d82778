package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusCheckedIn RegistrationStatus = "checked-in"
)

func (s RegistrationStatus) Valid() bool {
	return s == StatusPending || s == StatusCheckedIn
}

type RegistrationOrigin string

const (
	OriginSelf   RegistrationOrigin = "self"
	OriginWalkIn RegistrationOrigin = "walk-in"
)

// placeholderPrefix marks identities assigned to walk-ins registered without an
// email. Such records are never matchable by scan and must be checked in manually.
const placeholderPrefix = "walkin:"

func NewPlaceholderIdentity() string {
	return placeholderPrefix + uuid.New().String()
}

func IsPlaceholderIdentity(identity string) bool {
	return strings.HasPrefix(identity, placeholderPrefix)
}

type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	Identity     string             `json:"identity"`
	DisplayName  string             `json:"display_name"`
	ContactPhone string             `json:"contact_phone,omitempty"`
	PartySize    int                `json:"party_size"`
	Notes        string             `json:"notes,omitempty"`
	Status       RegistrationStatus `json:"status"`
	Origin       RegistrationOrigin `json:"origin"`
	CheckedInAt  *time.Time         `json:"checked_in_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type RegisterInput struct {
	Identity     string
	DisplayName  string
	ContactPhone string
	PartySize    int
	Notes        string
}

type WalkInInput struct {
	DisplayName  string
	Identity     string
	ContactPhone string
	PartySize    int
	Notes        string
}

// MatchByIdentity resolves a scanned payload against a roster snapshot:
// case-insensitive exact match on the trimmed payload. Placeholder identities
// never match. If bad data left two records with the same identity, the oldest
// record wins.
func MatchByIdentity(roster []*Registration, payload string) *Registration {
	needle := strings.ToLower(strings.TrimSpace(payload))
	if needle == "" {
		return nil
	}

	var found *Registration
	for _, r := range roster {
		if IsPlaceholderIdentity(r.Identity) {
			continue
		}
		if strings.ToLower(r.Identity) != needle {
			continue
		}
		if found == nil || r.CreatedAt.Before(found.CreatedAt) {
			found = r
		}
	}

	return found
}

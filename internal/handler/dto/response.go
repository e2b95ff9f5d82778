package dto

import (
	"fmt"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

type EventResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	StartsAt  string `json:"starts_at"`
	CreatedAt string `json:"created_at"`
}

type EventDetailsResponse struct {
	Event   EventResponse   `json:"event"`
	Summary SummaryResponse `json:"summary"`
}

type SummaryResponse struct {
	Registered    int `json:"registered"`
	CheckedIn     int `json:"checked_in"`
	ExpectedHeads int `json:"expected_heads"`
	ArrivedHeads  int `json:"arrived_heads"`
}

type RegistrationResponse struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Identity     string `json:"identity"`
	DisplayName  string `json:"display_name"`
	ContactPhone string `json:"contact_phone,omitempty"`
	PartySize    int    `json:"party_size"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
	Origin       string `json:"origin"`
	CheckedInAt  string `json:"checked_in_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	IsVolunteer bool   `json:"is_volunteer"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

type GateResponse struct {
	Granted bool   `json:"granted"`
	Message string `json:"message"`
}

// ScanResponse mirrors the toast the scanner page shows: severity-coded,
// ephemeral, never blocking.
type ScanResponse struct {
	Outcome      string                `json:"outcome"`
	Severity     string                `json:"severity"`
	Message      string                `json:"message,omitempty"`
	Registration *RegistrationResponse `json:"registration,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Location:  e.Location,
		StartsAt:  e.StartsAt.Format(time.RFC3339),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func ToEventDetailsResponse(d *domain.EventDetails) EventDetailsResponse {
	return EventDetailsResponse{
		Event: ToEventResponse(&d.Event),
		Summary: SummaryResponse{
			Registered:    d.Summary.Registered,
			CheckedIn:     d.Summary.CheckedIn,
			ExpectedHeads: d.Summary.ExpectedHeads,
			ArrivedHeads:  d.Summary.ArrivedHeads,
		},
	}
}

func ToRegistrationResponse(r *domain.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:           r.ID,
		EventID:      r.EventID,
		Identity:     r.Identity,
		DisplayName:  r.DisplayName,
		ContactPhone: r.ContactPhone,
		PartySize:    r.PartySize,
		Notes:        r.Notes,
		Status:       string(r.Status),
		Origin:       string(r.Origin),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.CheckedInAt != nil {
		resp.CheckedInAt = r.CheckedInAt.Format(time.RFC3339)
	}
	return resp
}

func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		IsVolunteer: p.IsVolunteer,
		Role:        string(p.Role),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func ToScanResponse(r *domain.ScanResult) ScanResponse {
	resp := ScanResponse{Outcome: string(r.Outcome)}
	if r.Registration != nil {
		reg := ToRegistrationResponse(r.Registration)
		resp.Registration = &reg
	}

	switch r.Outcome {
	case domain.ScanCheckedIn:
		resp.Severity = "success"
		resp.Message = fmt.Sprintf("Welcome, %s!", r.Registration.DisplayName)
	case domain.ScanAlreadyCheckedIn:
		resp.Severity = "info"
		resp.Message = fmt.Sprintf("%s is already checked in", r.Registration.DisplayName)
	case domain.ScanNoMatch:
		resp.Severity = "error"
		resp.Message = "Invalid Ticket or Not RSVP'd"
	case domain.ScanWriteFailed:
		resp.Severity = "error"
		resp.Message = "Check-in failed, please scan again"
	case domain.ScanIgnored:
		resp.Severity = "info"
	}

	return resp
}

package domain

import "time"

type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventDetails struct {
	Event   Event             `json:"event"`
	Summary AttendanceSummary `json:"summary"`
}

type AttendanceSummary struct {
	Registered    int `json:"registered"`
	CheckedIn     int `json:"checked_in"`
	ExpectedHeads int `json:"expected_heads"`
	ArrivedHeads  int `json:"arrived_heads"`
}

type CreateEventInput struct {
	Title    string
	Location string
	StartsAt time.Time
}

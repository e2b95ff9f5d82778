package dto

type CreateEventRequest struct {
	Title    string `json:"title" binding:"required"`
	Location string `json:"location"`
	StartsAt string `json:"starts_at" binding:"required"`
}

type RegisterRequest struct {
	Identity     string `json:"identity" binding:"required,email"`
	DisplayName  string `json:"display_name" binding:"required"`
	ContactPhone string `json:"contact_phone"`
	PartySize    int    `json:"party_size" binding:"omitempty,gte=1"`
	Notes        string `json:"notes"`
}

type WalkInRequest struct {
	DisplayName  string `json:"display_name" binding:"required"`
	Identity     string `json:"identity" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	PartySize    int    `json:"party_size" binding:"omitempty,gte=1"`
	Notes        string `json:"notes"`
}

// ScanRequest carries one decoded payload from the camera decoder. An empty
// payload is not a client error; the scanner ignores it.
type ScanRequest struct {
	Payload string `json:"payload"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending checked-in"`
}

type PinRequest struct {
	Pin string `json:"pin"`
}

type CreateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

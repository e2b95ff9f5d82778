package domain

import "time"

type Role string

const (
	RoleMember    Role = "member"
	RoleVolunteer Role = "volunteer"
)

type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	IsVolunteer bool      `json:"is_volunteer"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProfileInput struct {
	DisplayName string
	Email       string
}

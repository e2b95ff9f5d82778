package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrProfileNotFound      = errors.New("profile not found")
)

var (
	ErrDuplicateIdentity = errors.New("identity already registered for this event")
	ErrNotVolunteer      = errors.New("volunteer access required")
)

var (
	ErrValidation = errors.New("validation error")
)

package services

import "errors"

// Error taxonomy shared by every service. Controllers map these onto HTTP
// statuses; ErrConflict is retried inside the service before it surfaces.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConflict      = errors.New("conflict")
)

package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidPassword    = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authorized")
	ErrInvalidState       = errors.New("invalid state transition")
	ErrInvalidFrequency   = errors.New("invalid billing frequency")
	ErrNoActiveTenancy    = errors.New("no active tenancy for tenant in this building")
	ErrAlreadyPaid        = errors.New("period already paid")
	ErrPreferenceNotSaved = errors.New("payment recorded but frequency preference not saved")
)

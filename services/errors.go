package services

import "errors"

// Recoverable, user-facing conditions. Callers match these with errors.Is and
// translate them into API responses; anything else is an infrastructure
// failure that propagates after logging.
var (
	ErrAlreadySignedIn    = errors.New("already signed in today")
	ErrPetUnfit           = errors.New("pet is not fit for interaction")
	ErrPetInactive        = errors.New("pet is inactive")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrUnknownInteraction = errors.New("unknown interaction type")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidColor       = errors.New("invalid color value")
)

package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrDynastyNotFound = errors.New("dynasty not found")
	ErrSeedingNotFound = errors.New("playoff seeding has not been calculated")

	ErrSeedingAlreadyFinal = errors.New("seeding cannot change once playoff games have been played")
	ErrTiedResult          = errors.New("playoff games cannot end in a tie")
	ErrGameNotFound        = errors.New("playoff game not found")
	ErrPlayoffsComplete    = errors.New("playoffs are already complete")
	ErrNoGamesScheduled    = errors.New("no playoff games scheduled for the current round")
)

package services

import "errors"

// Shared errors used across services and HTTP mapping.
var (
	// Generic not-found
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters long")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrUsernameRequired      = errors.New("username is required")
	ErrPlayerNameRequired    = errors.New("player name is required")
	ErrInvalidPlayerRole     = errors.New("invalid player role")
	ErrInvalidMatchFormat    = errors.New("invalid match format")
	ErrInvalidPitchType      = errors.New("invalid pitch type")
	ErrInvalidWeather        = errors.New("invalid weather condition")
	ErrVenueRequired         = errors.New("venue is required")
	ErrSquadNameRequired     = errors.New("squad name is required")
	ErrNegativeStatistic     = errors.New("statistics values must not be negative")
	ErrCaptainNotInSquad     = errors.New("captain must be a player in the squad")
	ErrKeeperNotInSquad      = errors.New("wicket keeper must be a player in the squad")
	ErrKeeperWrongRole       = errors.New("selected player is not a wicket keeper")
	ErrResetTokenInvalid     = errors.New("invalid or expired reset token")
	ErrCannotDeleteOwnUser   = errors.New("cannot delete your own account")
	ErrInvalidUserRole       = errors.New("invalid user role")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrSquadNameConflict    = errors.New("squad name already exists")
	ErrPlayerAlreadyInSquad = errors.New("player is already in squad")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found (more context than ErrNotFound)
	ErrUserNotFound            = errors.New("user not found")
	ErrPlayerNotFound          = errors.New("player not found")
	ErrStatisticsNotFound      = errors.New("player statistics not found")
	ErrSquadNotFound           = errors.New("squad not found")
	ErrPlayerNotInSquad        = errors.New("player is not in squad")
	ErrMatchConditionsNotFound = errors.New("match conditions not found")
	ErrSuggestionNotFound      = errors.New("smart suggestion not found")
)

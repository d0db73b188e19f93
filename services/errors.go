package services

import "errors"

// Shared errors surfaced by the service layer and mapped to HTTP status
// codes in the handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidDivision        = errors.New("unknown division")
	ErrInvalidRole            = errors.New("unknown user role")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrSameTeamFixture        = errors.New("a match requires two distinct teams")
	ErrInvalidDateRange       = errors.New("end date must be after start date")
	ErrInvalidScore           = errors.New("score payload is invalid")
	ErrMatchNotEditable       = errors.New("completed matches cannot be rescheduled")
	ErrMatchInvalidTransition = errors.New("invalid match status transition")
	ErrPhaseNotRoundRobin     = errors.New("tournament is not in the round-robin phase")
	ErrPhaseNotKnockout       = errors.New("tournament is not in the knockout phase")
	ErrKnockoutAlreadySeeded  = errors.New("knockout bracket already exists for this tournament")
	ErrNotEnoughTeams         = errors.New("not enough ranked teams to seed a knockout bracket")
	ErrTransferSameTeam       = errors.New("transfer target team equals the current team")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrClubNameConflict       = errors.New("club name is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists for this season")
	ErrRegistrationConflict   = errors.New("team is already registered for this tournament")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found variants, kept separate for context
	ErrUserNotFound       = errors.New("user not found")
	ErrClubNotFound       = errors.New("club not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrSponsorNotFound    = errors.New("sponsor not found")
	ErrNoticeNotFound     = errors.New("notice not found")
	ErrAwardNotFound      = errors.New("award not found")
	ErrTransferNotFound   = errors.New("transfer not found")
)

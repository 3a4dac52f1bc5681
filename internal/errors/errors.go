package errors

import (
	"errors"
	"fmt"
	"time"
)

// Exit codes for arenactl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitLaunchFailure   = 2
	ExitIncompleteStart = 3
	ExitLingeringUnit   = 4
	ExitRealtimeOuted   = 5
	ExitUnitError       = 6
	ExitRuntimeQuery    = 7
	ExitConfigError     = 8
)

// Kind identifies a class of match failure. Kinds are comparable with
// errors.Is so callers can branch without inspecting messages.
type Kind int

const (
	KindGeneral Kind = iota
	KindLaunchFailure
	KindIncompleteLaunch
	KindLingeringUnit
	KindRealtimeOuted
	KindUnitError
	KindRuntimeQuery
	KindConfig
	KindValidation
)

func (k Kind) Error() string {
	switch k {
	case KindLaunchFailure:
		return "launch failure"
	case KindIncompleteLaunch:
		return "incomplete launch"
	case KindLingeringUnit:
		return "lingering unit timeout"
	case KindRealtimeOuted:
		return "realtime timed out"
	case KindUnitError:
		return "unit error"
	case KindRuntimeQuery:
		return "runtime query failure"
	case KindConfig:
		return "config error"
	case KindValidation:
		return "validation error"
	default:
		return "general error"
	}
}

// MatchError is the base error type for arenactl
type MatchError struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *MatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *MatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's kind.
func (e *MatchError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// ExitCode returns the process exit code for this error
func (e *MatchError) ExitCode() int {
	return e.Code
}

// New creates a new MatchError
func New(kind Kind, code int, message string) *MatchError {
	return &MatchError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a MatchError
func Wrap(kind Kind, code int, message string, cause error) *MatchError {
	return &MatchError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors.
// Fatal match errors always carry the game name and the unit or player
// context so an operator can correlate runtime logs.

// LaunchFailure returns an error for a unit that failed to start or
// could not be located after start.
func LaunchFailure(player, unit string, cause error) *MatchError {
	return Wrap(KindLaunchFailure, ExitLaunchFailure,
		fmt.Sprintf("could not launch %s in unit %s", player, unit), cause)
}

// IncompleteLaunch returns an error for a match where fewer units were
// running right after launch than players were requested.
func IncompleteLaunch(game string, want, got int) *MatchError {
	return New(KindIncompleteLaunch, ExitIncompleteStart,
		fmt.Sprintf("game %s: %d of %d units running after launch, some units exited prematurely", game, got, want))
}

// LingeringUnit returns an error for a single unit that outlived its
// peers beyond the tolerance window.
func LingeringUnit(game string, units []string, limit time.Duration) *MatchError {
	return New(KindLingeringUnit, ExitLingeringUnit,
		fmt.Sprintf("game %s: lingering unit %v found after single unit timeout (%s), the game probably crashed", game, units, limit))
}

// RealtimeOuted returns an error for a match where a unit reported the
// realtime-timeout sentinel exit code.
func RealtimeOuted(game string) *MatchError {
	return New(KindRealtimeOuted, ExitRealtimeOuted,
		fmt.Sprintf("game %s: some of the game units realtime outed", game))
}

// UnitExitError returns an error for a match where a unit finished with
// a generic error exit code.
func UnitExitError(game string) *MatchError {
	return New(KindUnitError, ExitUnitError,
		fmt.Sprintf("game %s: some of the game units finished with an error exit code", game))
}

// RuntimeQueryFailure returns an error for a failed runtime control-plane call
func RuntimeQueryFailure(op string, cause error) *MatchError {
	return Wrap(KindRuntimeQuery, ExitRuntimeQuery, fmt.Sprintf("runtime %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *MatchError {
	return Wrap(KindConfig, ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *MatchError {
	return New(KindValidation, ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		return matchErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

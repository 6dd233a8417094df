package leagues

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of these so callers can branch with
// errors.Is on the kind alone.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("not a match participant")
	ErrConflict           = errors.New("conflict")
	ErrScoreIntegrity     = errors.New("score integrity violation")
	ErrNotFound           = errors.New("not found")
)

var (
	ErrScheduleExists    = fmt.Errorf("schedule already exists for league: %w", ErrPreconditionFailed)
	ErrAlreadyConfirmed  = fmt.Errorf("score already confirmed by this side: %w", ErrPreconditionFailed)
	ErrMatchClosed       = fmt.Errorf("match is closed to score changes: %w", ErrPreconditionFailed)
	ErrNoReport          = fmt.Errorf("no score has been reported: %w", ErrPreconditionFailed)
	ErrNotConfirmingSide = fmt.Errorf("player does not confirm scores for this match: %w", ErrPreconditionFailed)
	ErrReportConflict    = fmt.Errorf("score already reported by another player: %w", ErrConflict)
	ErrConcurrentUpdate  = fmt.Errorf("match was modified concurrently: %w", ErrConflict)
)

// ScoreIntegrityError reports a game where more than one player reached the
// winning score. Game is 1-indexed.
type ScoreIntegrityError struct {
	Game        int
	PointsToWin int
}

func (e *ScoreIntegrityError) Error() string {
	return fmt.Sprintf("game %d: more than one player reached %d points", e.Game, e.PointsToWin)
}

func (e *ScoreIntegrityError) Unwrap() error {
	return ErrScoreIntegrity
}

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err is a missing league, division or match.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package blackjack

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a command was rejected. Rejections leave the
// game state unchanged; the caller re-presents valid choices.
type ErrorCode string

const (
	// Configuration errors, fatal to construction
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Illegal-action errors, local to one command
	ErrInvalidPhase        ErrorCode = "INVALID_PHASE"
	ErrBetTooSmall         ErrorCode = "BET_TOO_SMALL"
	ErrInsufficientFunds   ErrorCode = "INSUFFICIENT_FUNDS"
	ErrHandNotActionable   ErrorCode = "HAND_NOT_ACTIONABLE"
	ErrDoubleNotAllowed    ErrorCode = "DOUBLE_NOT_ALLOWED"
	ErrSplitNotAllowed     ErrorCode = "SPLIT_NOT_ALLOWED"
	ErrSurrenderNotAllowed ErrorCode = "SURRENDER_NOT_ALLOWED"
	ErrInsuranceTooLarge   ErrorCode = "INSURANCE_TOO_LARGE"

	// Invariant violations, fail loudly
	ErrShoeExhausted ErrorCode = "SHOE_EXHAUSTED"
)

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError with a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if !errors.As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}

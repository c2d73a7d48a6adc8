package domain

import (
	"fmt"

	"github.com/fd1az/reg-voting-power/internal/apperror"
)

// ConfigValidationError reports a boost configuration that is incomplete or
// inconsistent with its mode and decay formula.
type ConfigValidationError struct {
	Parameter string
	Mode      Mode
	Formula   DecayFormula
	Reason    string
}

// NewConfigValidationError creates a ConfigValidationError.
func NewConfigValidationError(parameter string, mode Mode, formula DecayFormula, reason string) *ConfigValidationError {
	return &ConfigValidationError{Parameter: parameter, Mode: mode, Formula: formula, Reason: reason}
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("invalid boost config (mode=%s, formula=%s): %s: %s", e.Mode, e.Formula, e.Parameter, e.Reason)
}

// Unwrap exposes the error as an AppError with CodeConfigValidation.
func (e *ConfigValidationError) Unwrap() error {
	return apperror.New(apperror.CodeConfigValidation,
		apperror.WithMessage(e.Reason),
		apperror.WithContext(e.Parameter))
}

// PositionInvariantError reports position data that contradicts itself,
// such as inverted bounds or an activity flag inconsistent with the price.
type PositionInvariantError struct {
	PositionID string
	Reason     string
}

// NewPositionInvariantError creates a PositionInvariantError.
func NewPositionInvariantError(positionID, reason string) *PositionInvariantError {
	return &PositionInvariantError{PositionID: positionID, Reason: reason}
}

func (e *PositionInvariantError) Error() string {
	if e.PositionID == "" {
		return "position invariant violated: " + e.Reason
	}
	return fmt.Sprintf("position %s invariant violated: %s", e.PositionID, e.Reason)
}

// Unwrap exposes the error as an AppError with CodePositionInvariant.
func (e *PositionInvariantError) Unwrap() error {
	return apperror.New(apperror.CodePositionInvariant,
		apperror.WithMessage(e.Reason),
		apperror.WithContext(e.PositionID))
}

package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Valuation-specific error codes
const (
	// Boost configuration errors
	CodeConfigValidation    Code = "CONFIG_VALIDATION_ERROR"
	CodeInvalidBoostMode    Code = "INVALID_BOOST_MODE"
	CodeInvalidDecayFormula Code = "INVALID_DECAY_FORMULA"
	CodeInvalidSourceValue  Code = "INVALID_SOURCE_VALUE"
	CodeUnknownDex          Code = "UNKNOWN_DEX"

	// Position data errors
	CodePositionInvariant Code = "POSITION_INVARIANT_ERROR"
	CodeTickOutOfRange    Code = "TICK_OUT_OF_RANGE"
	CodeInvalidPrice      Code = "INVALID_PRICE"

	// Valuation errors
	CodeMissingTokenRate   Code = "MISSING_TOKEN_RATE"
	CodeInvalidSnapshot    Code = "INVALID_SNAPSHOT"
	CodeEvaluationCanceled Code = "EVALUATION_CANCELED"
)

package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Boost configuration errors
	CodeConfigValidation:    "Boost configuration is invalid",
	CodeInvalidBoostMode:    "Unknown boost mode",
	CodeInvalidDecayFormula: "Unknown decay formula",
	CodeInvalidSourceValue:  "Unknown source value unit",
	CodeUnknownDex:          "No boost configuration for DEX",

	// Position data errors
	CodePositionInvariant: "Position data violates its invariants",
	CodeTickOutOfRange:    "Tick outside the supported range",
	CodeInvalidPrice:      "Price must be strictly positive",

	// Valuation errors
	CodeMissingTokenRate:   "No REG conversion rate for token",
	CodeInvalidSnapshot:    "Invalid pool snapshot",
	CodeEvaluationCanceled: "Evaluation canceled",
}

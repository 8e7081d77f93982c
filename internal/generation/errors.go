package generation

import "errors"

// Common errors returned by content provider implementations
var (
	// ErrGenerationFailed is returned when a provider call fails for any
	// general reason.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrInvalidResponse is returned when the provider response cannot
	// be parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from content provider")

	// ErrContentBlocked is returned when the provider blocks the content
	// through its safety filters.
	ErrContentBlocked = errors.New("content blocked by provider safety filters")

	// ErrTransientFailure is returned for temporary errors that might
	// resolve on retry.
	ErrTransientFailure = errors.New("transient content provider error")

	// ErrInvalidConfig is returned when the provider configuration is
	// invalid.
	ErrInvalidConfig = errors.New("invalid content provider configuration")
)

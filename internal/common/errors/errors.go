// Package errors provides standardized error handling for the schema engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeBuildFailed          ErrorCode = "BUILD_FAILED"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"

	ErrCodeEnhancementUnavailable ErrorCode = "ENHANCEMENT_UNAVAILABLE"
	ErrCodeEnhancementTimeout     ErrorCode = "ENHANCEMENT_TIMEOUT"

	ErrCodeReviewFetchFailed ErrorCode = "REVIEW_FETCH_FAILED"

	ErrCodeRulesetInvalid     ErrorCode = "RULESET_INVALID"
	ErrCodeHistoryWriteFailed ErrorCode = "HISTORY_WRITE_FAILED"
	ErrCodePublishFailed      ErrorCode = "PUBLISH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewConfigInvalidError creates a fatal pre-run configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid or contradictory configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBuildFailedError creates a per-product build error. The run recovers by
// dropping that product's documents.
func NewBuildFailedError(productID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBuildFailed,
		Message:   "Schema build failed for product",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"productId": productID},
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldError creates a build error for a field no fallback
// could fill.
func NewMissingRequiredFieldError(productID, field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   "Source data missing a mandatory field",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"productId": productID, "field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewEnhancementUnavailableError creates a recoverable enhancement error.
// The original text is retained and a note lands in run metadata.
func NewEnhancementUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnhancementUnavailable,
		Message:   "Enhancement adapter unavailable",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnhancementTimeoutError creates a recoverable enhancement timeout error.
func NewEnhancementTimeoutError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnhancementTimeout,
		Message:   "Enhancement adapter exceeded its call budget",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReviewFetchFailedError creates a recoverable review sourcing error.
// The generator treats it as "no review data" for the run.
func NewReviewFetchFailedError(productID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReviewFetchFailed,
		Message:   "Review data fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"productId": productID},
		Timestamp: time.Now().UTC(),
	}
}

// NewRulesetInvalidError creates a fatal rule registry error.
func NewRulesetInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesetInvalid,
		Message:   "Validation rule registry is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryWriteFailedError creates a retryable history store error.
func NewHistoryWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryWriteFailed,
		Message:   "Failed to record generation history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPublishFailedError creates a retryable publish error.
func NewPublishFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePublishFailed,
		Message:   "Failed to publish schema documents",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"index": index},
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the error code from any error, or empty when it is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsConfigError reports whether err is a fatal pre-run configuration error.
func IsConfigError(err error) bool {
	return CodeOf(err) == ErrCodeConfigInvalid
}

// IsBuildError reports whether err is a per-product build error.
func IsBuildError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeBuildFailed || code == ErrCodeMissingRequiredField
}

// IsEnhancementUnavailable reports whether err is a recoverable enhancement
// outcome.
func IsEnhancementUnavailable(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeEnhancementUnavailable || code == ErrCodeEnhancementTimeout
}

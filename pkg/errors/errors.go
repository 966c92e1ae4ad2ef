package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrIllegalTransition      = errors.New("action is not a legal transition from the current status")
	ErrMissingComment         = errors.New("a non-empty comment is required for this action")
	ErrIncompleteVerification = errors.New("all checklist sections must be verified before approval")
	ErrDivisionMismatch       = errors.New("division percentages must sum to 100")
	ErrInvalidRange           = errors.New("value is outside the allowed range")
	ErrEmptyTransferType      = errors.New("interest transfer type must name at least one bucket")
	ErrNotFound               = errors.New("entity not found")
	ErrVersionConflict        = errors.New("entity was modified by a concurrent decision")
	ErrCorruptState           = errors.New("entity status is inconsistent with its review history")
)

// BusinessError represents a caller-facing business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeIllegalTransition      = "ILLEGAL_TRANSITION"
	ErrCodeMissingComment         = "MISSING_COMMENT"
	ErrCodeIncompleteVerification = "INCOMPLETE_VERIFICATION"
	ErrCodeDivisionMismatch       = "DIVISION_MISMATCH"
	ErrCodeInvalidRange           = "INVALID_RANGE"
	ErrCodeEmptyTransferType      = "EMPTY_TRANSFER_TYPE"
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeVersionConflict        = "VERSION_CONFLICT"
	ErrCodeCorruptState           = "CORRUPT_STATE"
	ErrCodeSchemeNotOpen          = "SCHEME_NOT_OPEN"
	ErrCodeDatabaseError          = "DATABASE_ERROR"
	ErrCodeCacheError             = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapIllegalTransition(kind, status, action string) *BusinessError {
	return NewBusinessError(
		ErrCodeIllegalTransition,
		fmt.Sprintf("%s entity in status %s has no %q transition", kind, status, action),
		ErrIllegalTransition,
	)
}

func WrapMissingComment(action string) *BusinessError {
	return NewBusinessError(
		ErrCodeMissingComment,
		fmt.Sprintf("action %q requires a non-empty comment", action),
		ErrMissingComment,
	)
}

func WrapIncompleteVerification(missing []string) *BusinessError {
	return NewBusinessError(
		ErrCodeIncompleteVerification,
		fmt.Sprintf("unverified checklist sections: %s", strings.Join(missing, ", ")),
		ErrIncompleteVerification,
	)
}

func WrapDivisionMismatch(field, sum string) *BusinessError {
	return NewBusinessError(
		ErrCodeDivisionMismatch,
		fmt.Sprintf("%s percentages sum to %s, expected 100 (tolerance 0.1)", field, sum),
		ErrDivisionMismatch,
	)
}

func WrapInvalidRange(field, reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRange,
		fmt.Sprintf("%s: %s", field, reason),
		ErrInvalidRange,
	)
}

func WrapEmptyTransferType() *BusinessError {
	return NewBusinessError(
		ErrCodeEmptyTransferType,
		"interest_transfer_type must contain at least one of SCHEME, MAIN, INCOME",
		ErrEmptyTransferType,
	)
}

func WrapNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("entity with ID %s not found", id),
		ErrNotFound,
	)
}

func WrapVersionConflict(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeVersionConflict,
		fmt.Sprintf("entity %s was updated by a concurrent decision, reload and retry", id),
		ErrVersionConflict,
	)
}

func WrapCorruptState(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeCorruptState,
		fmt.Sprintf("entity %s has a status that does not match its last review record", id),
		ErrCorruptState,
	)
}

func WrapSchemeNotOpen(schemeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSchemeNotOpen,
		fmt.Sprintf("scheme %s is not approved and open for deposits", schemeID),
		ErrIllegalTransition,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

package engine

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine failures.
type ErrorCode string

const (
	// ErrCodeValidation indicates malformed registration or request input.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeDuplicateSolution indicates a new puzzle's fingerprint
	// collides with an existing active puzzle that is not an authorized
	// update of the same author+name.
	ErrCodeDuplicateSolution ErrorCode = "DUPLICATE_SOLUTION"

	// ErrCodeUnknownItems indicates item-list canonicalization at
	// registration time could not resolve one or more item names.
	ErrCodeUnknownItems ErrorCode = "UNKNOWN_ITEMS"

	// ErrCodeNotFound indicates a delete or update target does not exist
	// for the requesting author.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeTypeInvariant indicates puzzles of incompatible shapes were
	// compared. Defensive only; unreachable for puzzles built through the
	// entity constructor or the snapshot decoder.
	ErrCodeTypeInvariant ErrorCode = "TYPE_INVARIANT"

	// ErrCodePersistence indicates the snapshot write failed. The
	// requested change was rolled back and is NOT durably saved.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
)

// Error is the typed failure returned to the chat-command handler.
type Error struct {
	Code    ErrorCode
	Message string

	// DuplicateOf names the colliding puzzle for DUPLICATE_SOLUTION.
	DuplicateOf string

	// Unknown lists the unresolved item names for UNKNOWN_ITEMS. Only
	// ever echoed back to the submitter themselves.
	Unknown []string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the engine error code, or "" for non-engine errors.
func CodeOf(err error) ErrorCode {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsValidation reports whether err is a malformed-input failure.
func IsValidation(err error) bool { return CodeOf(err) == ErrCodeValidation }

// IsDuplicateSolution reports whether err is a duplicate-answer rejection.
func IsDuplicateSolution(err error) bool { return CodeOf(err) == ErrCodeDuplicateSolution }

// IsUnknownItems reports whether err is an unresolved-items rejection.
func IsUnknownItems(err error) bool { return CodeOf(err) == ErrCodeUnknownItems }

// IsNotFound reports whether err is a missing-target failure.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsPersistence reports whether err means the change was not durably saved.
func IsPersistence(err error) bool { return CodeOf(err) == ErrCodePersistence }

func validationError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

func duplicateSolutionError(duplicateOf string) *Error {
	return &Error{
		Code:        ErrCodeDuplicateSolution,
		Message:     "a registered puzzle already uses this answer",
		DuplicateOf: duplicateOf,
	}
}

func unknownItemsError(unknown []string) *Error {
	message := "no item names resolved"
	if len(unknown) > 0 {
		message = fmt.Sprintf("%d item name(s) could not be resolved", len(unknown))
	}
	return &Error{
		Code:    ErrCodeUnknownItems,
		Message: message,
		Unknown: unknown,
	}
}

func notFoundError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func persistenceError(message string, err error) *Error {
	return &Error{Code: ErrCodePersistence, Message: message, Err: err}
}

func typeInvariantError(err error) *Error {
	return &Error{Code: ErrCodeTypeInvariant, Message: "puzzle shape invariant violated", Err: err}
}

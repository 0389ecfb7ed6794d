package apperr

import "fmt"

// Kind classifies every failure a guarded action can produce. Callers
// branch on the kind, never on concrete error types.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Error is the uniform failure value returned by guards, services, and
// repositories. Message is always present and safe to show verbatim.
type Error struct {
	Kind    Kind              `json:"kind"`
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// Is matches errors by kind and code so sentinel comparisons work
// without depending on pointer identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Code == "" || e.Code == t.Code)
}

// ────────────────────────────────────────────────────────────────────────────
// Constructors
// ────────────────────────────────────────────────────────────────────────────

// Validation builds a field-level validation failure. Fields map input
// field names to human-readable messages.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    ErrValidation,
		Message: GetMessage(ErrValidation),
		Fields:  fields,
	}
}

// Unauthorized is returned when no usable session exists or the
// principal's role does not meet the requirement. Both collapse into
// the same generic message so endpoints do not reveal which roles they
// expect.
func Unauthorized() *Error {
	return &Error{
		Kind:    KindUnauthorized,
		Code:    ErrUnauthorized,
		Message: GetMessage(ErrUnauthorized),
	}
}

// Forbidden is returned when an authenticated principal lacks the
// permission or ownership for an action. The message is generic and
// never confirms whether the target resource exists.
func Forbidden() *Error {
	return &Error{
		Kind:    KindForbidden,
		Code:    ErrForbidden,
		Message: GetMessage(ErrForbidden),
	}
}

// NotFound is returned when a record legitimately does not exist.
func NotFound(code ErrCode) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: GetMessage(code)}
}

// Conflict is returned when a domain constraint blocks the operation,
// e.g. deleting a course that still has enrolled students.
func Conflict(code ErrCode) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: GetMessage(code)}
}

// Internal wraps an unexpected failure from a collaborator. The cause
// is preserved for logging but never shown to callers.
func Internal(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    ErrInternal,
		Message: GetMessage(ErrInternal),
		cause:   cause,
	}
}

// From normalizes any error into an *Error. Known values pass through
// unchanged; anything else becomes Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return Internal(err)
}

// KindOf reports the kind of any error, treating non-taxonomy errors
// as Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return From(err).Kind
}

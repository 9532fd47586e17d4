package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and logging.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	}
	return "infrastructure"
}

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Validation refinements. Each one also matches ErrValidation.
var (
	ErrUserNotFound          = notFound("user not found")
	ErrJobNotFound           = notFound("job not found")
	ErrApplicationNotFound   = notFound("application not found")
	ErrThreadNotFound        = notFound("thread not found")
	ErrPortfolioItemNotFound = notFound("portfolio item not found")
	ErrProfileNotFound       = notFound("profile not found")

	ErrUserExists           = conflict("user already exists")
	ErrDuplicateApplication = conflict("already applied to this job")
	ErrDuplicateRequest     = conflict("request already processed")

	ErrInvalidTransition = &kindError{msg: "invalid status transition", refinement: refineTransition}
	ErrInvalidToken      = &kindError{msg: "invalid or expired token"}
)

type refinement int

const (
	refineNone refinement = iota
	refineNotFound
	refineConflict
	refineTransition
)

// kindError is a validation-kind sentinel with an optional refinement used by
// the HTTP layer to pick 404/409/422 over a plain 400.
type kindError struct {
	msg        string
	refinement refinement
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == ErrValidation }

func notFound(msg string) error { return &kindError{msg: msg, refinement: refineNotFound} }

func conflict(msg string) error { return &kindError{msg: msg, refinement: refineConflict} }

// IsNotFound reports whether err is one of the not-found refinements.
func IsNotFound(err error) bool { return refinementOf(err) == refineNotFound }

// IsConflict reports whether err is one of the conflict refinements.
func IsConflict(err error) bool { return refinementOf(err) == refineConflict }

// IsInvalidTransition reports whether err carries ErrInvalidTransition.
func IsInvalidTransition(err error) bool { return refinementOf(err) == refineTransition }

func refinementOf(err error) refinement {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.refinement
	}
	return refineNone
}

// ValidationError carries a human-readable reason for rejected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalidf returns a ValidationError with a formatted reason.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err. Anything unrecognised is infrastructure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInfrastructure
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindUnauthorized
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindInfrastructure
}

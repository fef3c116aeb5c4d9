// Package server provides the HTTP REST API for SkillSage.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/skillsage/internal/fetch"
	"github.com/jonathan/skillsage/internal/ingestion"
	"github.com/jonathan/skillsage/internal/session"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrIncompleteProfile indicates the profile lacks fields needed to generate questions
type ErrIncompleteProfile struct {
	Missing []string
}

func (e *ErrIncompleteProfile) Error() string {
	return fmt.Sprintf("profile incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// ErrAssessmentIncomplete indicates recommendations were requested before every
// question was answered
type ErrAssessmentIncomplete struct {
	Unanswered []int
}

func (e *ErrAssessmentIncomplete) Error() string {
	if len(e.Unanswered) == 0 {
		return "assessment incomplete: no questions have been generated"
	}
	return fmt.Sprintf("assessment incomplete: %d questions unanswered", len(e.Unanswered))
}

// ErrNoDashboard indicates no recommendations have been generated yet
type ErrNoDashboard struct{}

func (e *ErrNoDashboard) Error() string {
	return "no dashboard available: complete the assessment first"
}

// ErrUnknownQuestion indicates an answer that does not fit the current question batch
type ErrUnknownQuestion struct {
	Cause error
}

func (e *ErrUnknownQuestion) Error() string {
	return fmt.Sprintf("invalid answer: %v", e.Cause)
}

func (e *ErrUnknownQuestion) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error. Wrapped
// errors are unwrapped until one with a known status is found.
func HTTPStatus(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if status, ok := typedStatus(e); ok {
			return status
		}
	}

	var fetchErr *fetch.Error
	switch {
	case errors.Is(err, fetch.ErrBlockedAddress):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrStaleResult):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownQuestion), errors.Is(err, session.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrLegacyWord):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrEmptyDocument), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func typedStatus(err error) (int, bool) {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict, true
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized, true
	case *ErrUserNotFound, *ErrNoDashboard:
		return http.StatusNotFound, true
	case *ErrValidation, *ErrUnknownQuestion:
		return http.StatusBadRequest, true
	case *ErrIncompleteProfile, *ErrAssessmentIncomplete:
		return http.StatusUnprocessableEntity, true
	case *ingestion.UnsupportedFormatError:
		return http.StatusUnsupportedMediaType, true
	case *ingestion.TooLargeError:
		return http.StatusRequestEntityTooLarge, true
	case *ingestion.ExtractionError:
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a caller-facing failure of a known kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// SeatConflictError lists requested seats already held by another booking.
type SeatConflictError struct {
	FlightID int64
	Seats    []string
}

func (e *SeatConflictError) Error() string {
	return "The following seats are already booked: " + strings.Join(e.Seats, ", ")
}

func (e *SeatConflictError) Unwrap() error { return ErrConflict }

// PassengerError reports the first invalid entry of a passenger batch.
// Position is 1-based.
type PassengerError struct {
	Position int
	Reason   string
}

func (e *PassengerError) Error() string {
	return fmt.Sprintf("Passenger %d: %s", e.Position, e.Reason)
}

func (e *PassengerError) Unwrap() error { return ErrValidation }

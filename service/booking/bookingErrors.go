package bookingsvc

import (
	"errors"

	"github.com/nilaw2017/rental-server/model"
)

type ErrCode string

const (
	ErrBadInput          ErrCode = "BAD_INPUT"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrUnavailable       ErrCode = "UNAVAILABLE"
	ErrConflict          ErrCode = "CONFLICT"
	ErrTooLateToCancel   ErrCode = "TOO_LATE_TO_CANCEL"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error          { return codedError{code: c} }
func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// ConflictError reports the active bookings that overlap a requested range.
type ConflictError struct {
	Ranges []model.DateRange
}

func (e *ConflictError) Error() string { return "requested dates overlap existing bookings" }
func (e *ConflictError) Code() ErrCode { return ErrConflict }

// Code extracts the service error code, or "" for unexpected errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Conflicts returns the overlapping ranges carried by a conflict error.
func Conflicts(err error) []model.DateRange {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Ranges
	}
	return nil
}

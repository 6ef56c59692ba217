package authsvc

import "errors"

type ErrCode string

const (
	ErrBadInput      ErrCode = "BAD_INPUT"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrInvalidCreds  ErrCode = "INVALID_CREDENTIALS"
	ErrInvalidToken  ErrCode = "INVALID_TOKEN"
	ErrNotFound      ErrCode = "NOT_FOUND"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return string(e.code) + ": " + e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error          { return codedError{code: c} }
func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the service error code, or "" for unexpected errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

package propertysvc

import "errors"

type ErrCode string

const (
	ErrBadInput    ErrCode = "BAD_INPUT"
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrForbidden   ErrCode = "FORBIDDEN"
	ErrUnsupported ErrCode = "UNSUPPORTED_MEDIA_TYPE"
	ErrTooLarge    ErrCode = "TOO_LARGE"
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

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

package postfx

import (
	"errors"
	"fmt"
)

var (
	ErrInput      = errors.New("input error")
	ErrConfig     = errors.New("configuration error")
	ErrProcessing = errors.New("processing error")
	ErrIO         = errors.New("io error")
)

// Error reports which stage and parameter caused a pipeline failure.
// Kind is one of the sentinel errors above, so callers can use errors.Is.
type Error struct {
	Kind  error
	Stage string
	Param string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Stage != "" {
		msg = fmt.Sprintf("%s: stage %s", msg, e.Stage)
	}
	if e.Param != "" {
		msg = fmt.Sprintf("%s: parameter %s", msg, e.Param)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ConfigError(stage, param, format string, args ...any) error {
	return &Error{Kind: ErrConfig, Stage: stage, Param: param, Err: fmt.Errorf(format, args...)}
}

func ProcessingError(stage, param, format string, args ...any) error {
	return &Error{Kind: ErrProcessing, Stage: stage, Param: param, Err: fmt.Errorf(format, args...)}
}

func InputError(err error) error {
	return &Error{Kind: ErrInput, Err: err}
}

func IOError(err error) error {
	return &Error{Kind: ErrIO, Err: err}
}

package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrConfig         = errors.New("configuration error")
	ErrConnFailed     = errors.New("connection failed")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrTransferFailed = errors.New("transfer failed")
	ErrProcessFailed  = errors.New("external process failed")
)

// Error tags a failure with its kind while keeping the original cause
type Error struct {
	Kind     error  // one of the Err* sentinels
	Op       string // step that failed (connect, auth, open remote, ...)
	Err      error  // underlying cause, may be nil
	ExitCode int    // child exit code, only meaningful for ErrProcessFailed
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Is reports whether target is the kind of this error
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError tags err with a kind and the failing operation
func WrapError(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind sentinel carried by err, or nil if err is untagged
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

// ExitCode returns the exit code of a failed external process
func ExitCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && errors.Is(e.Kind, ErrProcessFailed) && e.ExitCode != 0 {
		return e.ExitCode, true
	}
	return 0, false
}

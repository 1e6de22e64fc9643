package pipelog

import (
	"errors"
	"strconv"
)

// Error codes carried by *Error.
const (
	CodeGeneric       uint32 = 0
	CodeConfiguration uint32 = 1
)

// ErrConfiguration matches (with errors.Is) every error returned by a failed
// sink registration.
var ErrConfiguration = errors.New(_ERROR_MESSAGE_CONFIGURATION)

// Error is a coded error value. Registration failures are reported as
// *Error with CodeConfiguration; Handle.Fail builds them for callers.
type Error struct {
	Code    uint32
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Code != CodeGeneric {
		msg = "[" + strconv.FormatUint(uint64(e.Code), 10) + "] " + msg
	}
	return joinErrText(msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a configuration error as ErrConfiguration.
func (e *Error) Is(target error) bool {
	return target == ErrConfiguration && e.Code == CodeConfiguration
}

func configError(msg string, cause error) *Error {
	return &Error{Code: CodeConfiguration, Message: msg, Err: cause}
}

package pipelog

import "fmt"

/*
A Handle is the per-subsystem logger: it stamps its source name on every
message and forwards it to its Router unchanged. Filtering and formatting
live in the Router; the helpers below only build the message text.
*/

// NewHandle returns a Handle for source bound to this router.
func (r *Router) NewHandle(source string) *Handle {
	return &Handle{router: r, source: source, curLevel: LevelInfo}
}

// NewHandle returns a Handle for source bound to the process-wide router.
func NewHandle(source string) *Handle {
	return Default().NewHandle(source)
}

// Source returns the source name stamped on the handle messages.
func (h *Handle) Source() string {
	return h.source
}

// Router returns the router the handle forwards to.
func (h *Handle) Router() *Router {
	return h.router
}

// Print forwards message with the given level and the handle source to the
// router.
func (h *Handle) Print(level, message string) {
	h.router.Print(message, h.source, level)
}

// Printf formats a message with fmt.Sprintf and prints it at level.
func (h *Handle) Printf(level, format string, args ...any) {
	h.Print(level, fmt.Sprintf(format, args...))
}

func (h *Handle) Debugf(format string, args ...any) {
	h.Printf(LevelDebug, format, args...)
}

func (h *Handle) Infof(format string, args ...any) {
	h.Printf(LevelInfo, format, args...)
}

func (h *Handle) Warningf(format string, args ...any) {
	h.Printf(LevelWarning, format, args...)
}

func (h *Handle) Errorf(format string, args ...any) {
	h.Printf(LevelError, format, args...)
}

// LogErr logs err.Error() at ERROR level. Nil errors are ignored.
func (h *Handle) LogErr(err error) {
	if err != nil {
		h.Print(LevelError, err.Error())
	}
}

// Fail logs the formatted message at ERROR level and returns it as an
// *Error with the given code, so a failure is reported and returned in one
// step:
//
//	if n < 0 {
//	    return log.Fail(pipelog.CodeGeneric, "negative size %d", n)
//	}
func (h *Handle) Fail(code uint32, format string, args ...any) *Error {
	e := &Error{Code: code, Message: fmt.Sprintf(format, args...)}
	h.Print(LevelError, e.Message)
	return e
}

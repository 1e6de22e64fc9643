package pipelog

/*
Dispatch of one message to the registered sinks:
  - filter test per sink, in registration order
  - the colored line is built once, on the first matching sink
  - the escape-free line is built once, on the first matching sink that is
    not colorized, and shared by all such sinks of the same call
  - write errors and panics go to the fallback writer, Print never fails
*/

import (
	"bytes"
	"strconv"
	"time"

	"github.com/abyssdigger/pipelog/colors"
)

// flusher is implemented by buffered outputs (bufio.Writer and the like).
type flusher interface {
	Flush() error
}

// Print routes one message to every sink whose filter accepts the source and
// level. Terminal sinks receive the colored line, other sinks the same line
// without escape sequences. Each line is written with a single Write call
// followed by a flush when the output supports it.
//
// Print never fails: write errors are reported to the fallback writer and an
// output that panics is disabled.
func (r *Router) Print(message, source, level string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	rendered, stripped := false, false
	for _, s := range r.sinks {
		if !s.enabled || !s.filter.matches(source, level) {
			continue
		}
		if !rendered {
			buildTextLine(&r.colored, r.now(), r.styles[level], level, source, message)
			r.colored.WriteByte(LINE_TERMINATOR)
			rendered = true
		}
		line := r.colored.Bytes()
		if !s.colorize {
			if !stripped {
				// strip without the terminator, an unterminated escape in
				// the message must not swallow it
				body := r.colored.Bytes()[:r.colored.Len()-1]
				r.stripped.Reset()
				r.stripped.WriteString(colors.StripEscapes(string(body)))
				r.stripped.WriteByte(LINE_TERMINATOR)
				stripped = true
			}
			line = r.stripped.Bytes()
		}
		if panicked, err := r.writeLine(s, line); err != nil {
			msg := err.Error()
			if panicked {
				// got panic writing, disable output for further writes
				s.enabled = false
				msg += " (" + _ERROR_MESSAGE_OUTPUT_DISABLED + ")"
			}
			r.handleLogWriteError(msg)
		}
	}
}

// writeLine writes one rendered line to a sink and flushes it. It returns
// panicked (true if the output panicked) and err for write or flush errors.
// The deferred recover converts a panic into an error.
func (r *Router) writeLine(s *sink, line []byte) (panicked bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			panicked = true
			err = &Error{Message: _ERROR_MESSAGE_WRITE_PANICKED + " `" + s.name + "`" + panicDesc(p)}
		}
	}()
	n, e := s.output.Write(line)
	if e != nil {
		return false, &Error{
			Message: _ERROR_MESSAGE_WRITE_FAILED + " `" + s.name + "` (" + strconv.Itoa(n) + " bytes written)",
			Err:     e,
		}
	}
	if f, ok := s.output.(flusher); ok {
		if e := f.Flush(); e != nil {
			return false, &Error{Message: _ERROR_MESSAGE_FLUSH_FAILED + " `" + s.name + "`", Err: e}
		}
	}
	return false, nil
}

// handleLogWriteError writes a single-line message to the fallback writer.
// Must be called with the router lock held. A misbehaving fallback is
// ignored.
func (r *Router) handleLogWriteError(errormsg string) {
	defer func() { _ = recover() }()
	if r.fallbck != nil {
		r.fallbck.Write([]byte(errormsg + "\n"))
	}
}

// buildTextLine renders
//
//	<time>\t[<style><level>\033[0m]\t<source>\t<message>
//
// into buf, without the line terminator. The reset code follows the level
// even when style is empty.
func buildTextLine(buf *bytes.Buffer, t time.Time, style, level, source, message string) *bytes.Buffer {
	buf.Reset()
	buf.WriteString(t.Format(TIME_FORMAT))
	buf.WriteByte(FIELD_DELIMITER)
	buf.WriteByte('[')
	buf.WriteString(style)
	buf.WriteString(level)
	buf.WriteString(LEVEL_RESET)
	buf.WriteByte(']')
	buf.WriteByte(FIELD_DELIMITER)
	buf.WriteString(source)
	buf.WriteByte(FIELD_DELIMITER)
	buf.WriteString(message)
	return buf
}

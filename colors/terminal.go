package colors

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// isTerminal is replaced in tests to simulate interactive terminals.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StdStream is a writer bound to the process standard output or standard
// error. On legacy Windows consoles it translates ANSI sequences into
// console API calls; elsewhere it writes straight to the file.
type StdStream struct {
	io.Writer
	file *os.File
}

// File returns the underlying standard stream.
func (s *StdStream) File() *os.File {
	return s.file
}

// Stdout returns an ANSI capable writer for the process standard output.
func Stdout() *StdStream {
	return &StdStream{Writer: colorable.NewColorable(os.Stdout), file: os.Stdout}
}

// Stderr returns an ANSI capable writer for the process standard error.
func Stderr() *StdStream {
	return &StdStream{Writer: colorable.NewColorable(os.Stderr), file: os.Stderr}
}

// IsColorCapable reports whether w is the process standard output or
// standard error and is attached to an interactive terminal. Any other
// destination (files, buffers, pipes wrapped in other writers) is never
// color capable. The check only queries the platform and is safe for
// concurrent use.
func IsColorCapable(w io.Writer) bool {
	var f *os.File
	switch v := w.(type) {
	case *os.File:
		f = v
	case *StdStream:
		if v == nil {
			return false
		}
		f = v.file
	default:
		return false
	}
	if f == nil || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	return isTerminal(f.Fd())
}

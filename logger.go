// Package pipelog routes leveled, source-tagged log messages to any number of
// registered sinks (files, standard output, standard error). Every sink has
// its own source/level filter; terminal sinks get ANSI colored level tags and
// all other sinks get the same line with escape sequences stripped.
package pipelog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abyssdigger/pipelog/colors"
)

var (
	defaultRouter     *Router
	defaultRouterOnce sync.Once
)

// absPath names file sinks in messages; replaced in tests.
var absPath = filepath.Abs

// Default returns the process-wide router, creating it on first use. It
// lives until the process exits; call Close on it during shutdown to release
// file sinks.
func Default() *Router {
	defaultRouterOnce.Do(func() {
		defaultRouter = New()
	})
	return defaultRouter
}

// New creates a router with no sinks, an empty level style table, local
// time timestamps and os.Stderr as fallback for internal write errors.
//
// Preferred usage example:
//
//	func main() {
//	    r := pipelog.New().ApplyDefaultStyles()
//	    defer r.Close()
//	    r.AddStdoutSink(pipelog.FilterSpec{})
//	    log := r.NewHandle("main")
//	    log.Infof("started")
//	    ...
//	}
func New() *Router {
	r := &Router{
		styles:  map[string]string{},
		fallbck: os.Stderr,
		now:     time.Now,
	}
	r.colored.Grow(DEFAULT_OUT_BUFF)
	r.stripped.Grow(DEFAULT_OUT_BUFF)
	r.self = r.NewHandle(ROUTER_SOURCE)
	return r
}

// AddFileSink registers a sink appending to the file at path. Missing parent
// directories are created. If the directory does not exist afterwards or the
// file can't be opened for appending, a configuration error is returned, no
// sink is added and the failure is logged at ERROR to the sinks registered
// so far.
//
// Existing file content is preserved.
func (r *Router) AddFileSink(path string, filters ...FilterSpec) error {
	err := r.addFileSink(path, filters)
	if err != nil {
		r.self.Print(LevelError, err.Error())
	}
	return err
}

func (r *Router) addFileSink(path string, filters []FilterSpec) error {
	if path == "" {
		return configError(_ERROR_MESSAGE_EMPTY_PATH, nil)
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.closed {
		return configError(_ERROR_MESSAGE_ROUTER_CLOSED, nil)
	}
	abs, err := absPath(path)
	if err != nil {
		abs = path
	}
	dir := filepath.Dir(path)
	mkErr := os.MkdirAll(dir, 0o755)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if mkErr == nil {
			mkErr = err
		}
		return configError(_ERROR_MESSAGE_DIR_NOT_CREATED+" (Path: "+abs+")", mkErr)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return configError(_ERROR_MESSAGE_FILE_NOT_OPENED+" (Path: "+abs+")", err)
	}
	r.appendSink(&sink{
		output: f,
		closer: f,
		name:   abs,
		kind:   _SINK_FILE,
	}, filters)
	return nil
}

// AddStdoutSink registers a sink writing to the process standard output.
// Every call adds a new independent sink, it never merges into an earlier
// standard output sink.
//
// Whether the sink gets colored lines is decided here, once: redirecting
// the stream later does not change it.
func (r *Router) AddStdoutSink(filters ...FilterSpec) *Router {
	return r.addStdSink(colors.Stdout(), "stdout", _SINK_STDOUT, filters)
}

// AddStderrSink registers a sink writing to the process standard error.
// Every call adds a new independent sink. Like AddStdoutSink, the color
// decision is taken at registration.
func (r *Router) AddStderrSink(filters ...FilterSpec) *Router {
	return r.addStdSink(colors.Stderr(), "stderr", _SINK_STDERR, filters)
}

func (r *Router) addStdSink(out *colors.StdStream, name string, kind sinkKind, filters []FilterSpec) *Router {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.appendSink(&sink{
		output:   out,
		name:     name,
		kind:     kind,
		colorize: colors.IsColorCapable(out),
	}, filters)
	return r
}

// AddWriterSink registers a sink on an arbitrary writer. The color flag is
// given explicitly: colored lines are written as is, otherwise escape
// sequences are stripped. Writers with a Flush() error method are flushed
// after every line. The router never closes such writers. Nil writers are
// ignored.
func (r *Router) AddWriterSink(w io.Writer, colorize bool, filters ...FilterSpec) *Router {
	if w == nil {
		return r
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.appendSink(&sink{
		output:   w,
		name:     "writer",
		kind:     _SINK_WRITER,
		colorize: colorize,
	}, filters)
	return r
}

// appendSink must be called with the router lock held. A closed router
// accepts no sinks.
func (r *Router) appendSink(s *sink, filters []FilterSpec) {
	if r.closed {
		return
	}
	s.filter = newFilterSet(filters)
	s.enabled = true
	r.sinks = append(r.sinks, s)
}

// SetLevelStyle sets the style (an ANSI code sequence) written before the
// level name of the given level. The change applies to every following
// Print on every sink. Levels without a style are written unstyled.
func (r *Router) SetLevelStyle(level, style string) *Router {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.styles[level] = style
	return r
}

// ApplyDefaultStyles sets the styles of DefaultLevelStyles.
func (r *Router) ApplyDefaultStyles() *Router {
	for level, style := range DefaultLevelStyles() {
		r.SetLevelStyle(level, style)
	}
	return r
}

// LevelStyle returns the style registered for level ("" if none).
func (r *Router) LevelStyle(level string) string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.styles[level]
}

// Sets the fallback output used to report internal errors, io.Discard is used
// instead of nil to silently drop fallback messages.
func (r *Router) SetFallback(f io.Writer) *Router {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if f != nil {
		r.fallbck = f
	} else {
		r.fallbck = io.Discard
	}
	return r
}

// SetClock replaces the time source of line timestamps (nil restores
// time.Now).
func (r *Router) SetClock(now func() time.Time) *Router {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if now != nil {
		r.now = now
	} else {
		r.now = time.Now
	}
	return r
}

// SinkCount returns the number of registered sinks.
func (r *Router) SinkCount() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.sinks)
}

// Close closes every file sink and drops all sinks. Following Print calls
// write nothing, following registrations are ignored and AddFileSink fails.
// Standard streams and writers given to AddWriterSink are not closed.
// Errors of individual files are joined.
func (r *Router) Close() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	var errs []error
	for _, s := range r.sinks {
		s.enabled = false
		if s.closer != nil {
			if err := s.closer.Close(); err != nil {
				errs = append(errs, &Error{Message: _ERROR_MESSAGE_CLOSE_FAILED + " `" + s.name + "`", Err: err})
			}
			s.closer = nil
		}
	}
	r.sinks = nil
	r.closed = true
	return errors.Join(errs...)
}

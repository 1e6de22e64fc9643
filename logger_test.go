package pipelog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abyssdigger/pipelog/colors"
)

const testlogstr = "Test log АБВ こんにちは, 世界`'é\"\\\x5A\254\a\b\f\r\vи други глупости!"
const panicStr = "panic generated in writer"
const errorStr = "error generated in writer"

var testTime = time.Date(2025, 11, 5, 17, 3, 9, 0, time.Local)

type PanicWriter struct{}

func (p *PanicWriter) Write(b []byte) (int, error) { panic(panicStr) }

type NilPanicWriter struct{}

func (p *NilPanicWriter) Write(b []byte) (int, error) { panic(&runtime.PanicNilError{}) }

// &runtime.PanicNilError{} instead of nil to prevent VSC problem "panic with nil value"

type ZeroPanicWriter struct{}

func (p *ZeroPanicWriter) Write(b []byte) (int, error) { panic(0) }

type ErrorWriter struct{}

func (e *ErrorWriter) Write(b []byte) (int, error) { return 0, errors.New(errorStr) }

type FakeWriter struct {
	buffer []byte
	writes int
}

func (f *FakeWriter) Write(b []byte) (int, error) {
	f.buffer = append(f.buffer, b...)
	f.writes++
	return len(b), nil
}
func (f *FakeWriter) String() string { return string(f.buffer) }
func (f *FakeWriter) Clear()         { f.buffer = f.buffer[:0]; f.writes = 0 }

// FlushWriter counts Flush calls, failing them when err is set.
type FlushWriter struct {
	FakeWriter
	flushes int
	err     error
}

func (f *FlushWriter) Flush() error {
	f.flushes++
	return f.err
}

// newTestRouter returns a router with a fixed clock and ferr as fallback.
func newTestRouter(ferr io.Writer) *Router {
	return New().SetClock(func() time.Time { return testTime }).SetFallback(ferr)
}

func Test_Router_New(t *testing.T) {
	r := New()
	assert.Zero(t, r.SinkCount())
	assert.Empty(t, r.styles)
	assert.Equal(t, os.Stderr, r.fallbck)
	assert.NotNil(t, r.now)
	require.NotNil(t, r.self)
	assert.Equal(t, ROUTER_SOURCE, r.self.Source())
	assert.Same(t, r, r.self.Router())
	assert.NotSame(t, r, New(), "New returned a shared router")
}

func Test_Router_Default(t *testing.T) {
	r := Default()
	require.NotNil(t, r)
	assert.Same(t, r, Default(), "Default is not a singleton")
	assert.Same(t, r, NewHandle("pkg").Router(), "package handle bound to another router")
}

func Test_Router_AddFileSink(t *testing.T) {
	t.Run("creates_directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app", "out.log")
		r := newTestRouter(io.Discard)
		defer r.Close()
		require.NoError(t, r.AddFileSink(path, FilterSpec{}))
		assert.Equal(t, 1, r.SinkCount())
		assert.DirExists(t, filepath.Dir(path))
		assert.FileExists(t, path)
	})
	t.Run("appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")
		require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0o644))
		r := newTestRouter(io.Discard)
		require.NoError(t, r.AddFileSink(path, FilterSpec{}))
		r.Print("appended", "db", LevelInfo)
		require.NoError(t, r.Close())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "existing line\n2025-11-05 17:03:09\t[INFO]\tdb\tappended\n", string(data))
	})
	t.Run("parent_is_file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		r := newTestRouter(io.Discard)
		defer r.Close()
		err := r.AddFileSink(filepath.Join(blocker, "out.log"), FilterSpec{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorContains(t, err, _ERROR_MESSAGE_DIR_NOT_CREATED)
		assert.ErrorContains(t, err, blocker)
		assert.Zero(t, r.SinkCount(), "sink added after failure")
	})
	t.Run("path_is_directory", func(t *testing.T) {
		dir := t.TempDir()
		r := newTestRouter(io.Discard)
		defer r.Close()
		err := r.AddFileSink(dir, FilterSpec{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorContains(t, err, _ERROR_MESSAGE_FILE_NOT_OPENED)
		assert.Zero(t, r.SinkCount())
	})
	t.Run("unresolved_path", func(t *testing.T) {
		orig := absPath
		absPath = func(string) (string, error) { return "", errors.New("no working directory") }
		t.Cleanup(func() { absPath = orig })

		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		path := filepath.Join(blocker, "out.log")
		r := newTestRouter(io.Discard)
		defer r.Close()
		err := r.AddFileSink(path, FilterSpec{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "(Path: "+path+")")
	})
	t.Run("empty_path", func(t *testing.T) {
		r := newTestRouter(io.Discard)
		err := r.AddFileSink("")
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorContains(t, err, _ERROR_MESSAGE_EMPTY_PATH)
	})
	t.Run("failure_is_logged", func(t *testing.T) {
		out := &FakeWriter{}
		r := newTestRouter(io.Discard).AddWriterSink(out, false, FilterSpec{})
		err := r.AddFileSink("")
		require.Error(t, err)
		assert.Equal(t,
			"2025-11-05 17:03:09\t[ERROR]\t"+ROUTER_SOURCE+"\t"+err.Error()+"\n",
			out.String())
	})
	t.Run("closed_router", func(t *testing.T) {
		r := newTestRouter(io.Discard)
		require.NoError(t, r.Close())
		err := r.AddFileSink(filepath.Join(t.TempDir(), "out.log"))
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorContains(t, err, _ERROR_MESSAGE_ROUTER_CLOSED)
	})
}

func Test_Router_AddStdSinks(t *testing.T) {
	r := newTestRouter(io.Discard)
	// levels nobody prints in tests, so nothing reaches the real streams
	quiet := FilterSpec{Levels: []string{"NEVER"}}
	assert.Same(t, r, r.AddStdoutSink(quiet))
	assert.Same(t, r, r.AddStdoutSink(quiet))
	assert.Same(t, r, r.AddStderrSink(quiet))
	require.Equal(t, 3, r.SinkCount(), "repeated standard sinks have to stay independent")
	assert.NotSame(t, r.sinks[0], r.sinks[1])
	assert.Equal(t, _SINK_STDOUT, r.sinks[0].kind)
	assert.Equal(t, _SINK_STDERR, r.sinks[2].kind)
	for _, s := range r.sinks {
		assert.Nil(t, s.closer, "standard stream owned by a sink")
		assert.True(t, s.enabled)
	}
	// the color decision is stored on the sink when it is registered
	assert.Equal(t, colors.IsColorCapable(os.Stdout), r.sinks[0].colorize)
	assert.Equal(t, colors.IsColorCapable(os.Stderr), r.sinks[2].colorize)
	require.NoError(t, r.Close())
}

func Test_Router_AddWriterSink(t *testing.T) {
	r := newTestRouter(io.Discard)
	assert.Same(t, r, r.AddWriterSink(nil, true, FilterSpec{}))
	assert.Zero(t, r.SinkCount(), "nil writer registered")

	out := &FakeWriter{}
	r.AddWriterSink(out, true, FilterSpec{Levels: []string{LevelError}})
	require.Equal(t, 1, r.SinkCount())
	s := r.sinks[0]
	assert.Equal(t, _SINK_WRITER, s.kind)
	assert.True(t, s.colorize)
	assert.Nil(t, s.closer)
	assert.True(t, s.filter.matches("any", LevelError))
	assert.False(t, s.filter.matches("any", LevelInfo))
}

func Test_Router_SetLevelStyle(t *testing.T) {
	r := newTestRouter(io.Discard)
	assert.Empty(t, r.LevelStyle(LevelError))
	assert.Same(t, r, r.SetLevelStyle(LevelError, "\033[31m"))
	assert.Equal(t, "\033[31m", r.LevelStyle(LevelError))
	r.SetLevelStyle(LevelError, "\033[1m")
	assert.Equal(t, "\033[1m", r.LevelStyle(LevelError), "style not replaced")
	r.SetLevelStyle("CUSTOM", "\033[35m")
	assert.Equal(t, "\033[35m", r.LevelStyle("CUSTOM"))
}

func Test_Router_ApplyDefaultStyles(t *testing.T) {
	r := newTestRouter(io.Discard).SetLevelStyle("CUSTOM", "x")
	assert.Same(t, r, r.ApplyDefaultStyles())
	assert.Equal(t, "\033[32m", r.LevelStyle(LevelDebug))
	assert.Equal(t, "\033[36m", r.LevelStyle(LevelInfo))
	assert.Equal(t, "\033[33m\033[1m", r.LevelStyle(LevelWarning))
	assert.Equal(t, "\033[31m\033[1m", r.LevelStyle(LevelError))
	assert.Equal(t, "x", r.LevelStyle("CUSTOM"), "unrelated style dropped")
}

func Test_Router_SetFallback(t *testing.T) {
	tests := []struct {
		name     string // description of this test case
		fallback io.Writer
		wants    io.Writer
	}{
		{"Stdout", os.Stdout, os.Stdout},
		{"Discard", io.Discard, io.Discard},
		{"Nil->Discard", nil, io.Discard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			rres := r.SetFallback(tt.fallback)
			assert.Equal(t, tt.wants, r.fallbck)
			assert.Equal(t, r, rres, "result is another router")
		})
	}
}

func Test_Router_SetClock(t *testing.T) {
	r := New()
	r.SetClock(func() time.Time { return testTime })
	assert.Equal(t, testTime, r.now())
	r.SetClock(nil)
	assert.WithinDuration(t, time.Now(), r.now(), time.Minute)
}

func Test_Router_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	out := &FakeWriter{}
	r := newTestRouter(io.Discard).AddWriterSink(out, false, FilterSpec{})
	require.NoError(t, r.AddFileSink(path, FilterSpec{}))
	file := r.sinks[1].closer.(*os.File)

	require.NoError(t, r.Close())
	assert.Zero(t, r.SinkCount())
	assert.ErrorIs(t, file.Close(), os.ErrClosed, "file sink left open")

	r.Print("after close", "db", LevelError)
	assert.Empty(t, out.buffer, "closed router wrote a line")

	r.AddWriterSink(out, false, FilterSpec{})
	r.AddStdoutSink(FilterSpec{})
	assert.Zero(t, r.SinkCount(), "closed router accepted a sink")

	assert.NoError(t, r.Close(), "second close failed")
}

func Test_Router_Close_ReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	r := newTestRouter(io.Discard)
	require.NoError(t, r.AddFileSink(path, FilterSpec{}))
	// close the file behind the router back
	require.NoError(t, r.sinks[0].closer.(*os.File).Close())

	err := r.Close()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), _ERROR_MESSAGE_CLOSE_FAILED), err.Error())
	assert.Contains(t, err.Error(), path)
	assert.ErrorIs(t, err, os.ErrClosed)
}

package pipelog

/*
Defines the core data types of the router:
  - Router: the owner of all sinks, the level style table and the lock that
    serializes registration and dispatch
  - sink: one output destination with its color flag and filter set
  - filterSet / levelFilter: the per-sink source -> levels mapping
  - FilterSpec: a filter registration request
  - Handle: a per-source logger bound to a Router
*/

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// FilterSpec is one filter registration entry. Empty Sources applies the
// entry to every source; empty Levels accepts every level of those sources.
type FilterSpec struct {
	Sources []string
	Levels  []string
}

// levelFilter is the accepted level set of one source. all and levels are
// kept apart on purpose: "accept all" is not the same thing as "no levels
// registered yet".
type levelFilter struct {
	all    bool
	levels map[string]struct{}
}

// filterSet maps a source name ("" for every source) to its level filter.
// A missing key means the source is not accepted through that key at all.
type filterSet map[string]*levelFilter

// sinkKind tells how a sink was registered (used in messages and Close).
type sinkKind byte

const (
	_SINK_WRITER sinkKind = iota
	_SINK_FILE
	_SINK_STDOUT
	_SINK_STDERR
)

// sink is a registered output with its own filter set. Sinks are created
// once and live until the Router is closed.
type sink struct {
	output   io.Writer // destination of rendered lines
	closer   io.Closer // owned file handle (file sinks only)
	filter   filterSet // source -> levels accepted by this sink
	name     string    // destination description for error reports
	kind     sinkKind
	colorize bool // write colored lines (otherwise escape sequences are stripped)
	enabled  bool // false after the output panicked or the router was closed
}

// Router routes messages to registered sinks. All registration calls and
// Print are serialized by one lock, so lines of different messages never
// interleave within a sink.
//
// Use New for an independent router or Default for the process-wide one.
type Router struct {
	mtx      sync.Mutex
	sinks    []*sink           // in registration order
	styles   map[string]string // level -> style prefix of the level tag
	fallbck  io.Writer         // receives internal write errors
	now      func() time.Time  // clock used for line timestamps
	colored  bytes.Buffer      // reused for the colored line
	stripped bytes.Buffer      // reused for the escape-free line
	self     *Handle           // router own diagnostics (source "Logger")
	closed   bool
}

// Handle binds a source name to a Router. It holds no state besides the
// source and the level used by Write.
type Handle struct {
	router   *Router
	source   string
	curLevel string // level used by Write / fmt.Fprint* helpers
}

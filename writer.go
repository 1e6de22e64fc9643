package pipelog

import "bytes"

/*********************************************************************************
io.Writer interface implementation

The Handle implements io.Writer so it can be used with fmt.Fprintf, log.New
and other formatting helpers:
 - Lvl(level) returns a copy of the handle writing at that level.
 - Write(p) prints p (one trailing newline removed) at the handle level.

This allows patterns like:
  fmt.Fprintf(handle.Lvl(pipelog.LevelWarning), "disk low: %d%%", percent)
*/

// Lvl returns a copy of the handle whose Write uses level. The receiver is
// not changed, so a shared handle can be used from several goroutines.
func (h *Handle) Lvl(level string) *Handle {
	c := *h
	c.curLevel = level
	return &c
}

// Write implements io.Writer. It prints p as one message at the handle
// level (INFO unless set with Lvl) and always reports len(p) bytes written.
// A single trailing newline is dropped because the router terminates every
// line itself. Empty payloads are ignored.
func (h *Handle) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	msg := bytes.TrimSuffix(p, []byte{LINE_TERMINATOR})
	h.Print(h.curLevel, string(msg))
	return len(p), nil
}

// Package colors builds ANSI terminal styling fragments, detects whether an
// output can show them and strips them from text that goes elsewhere.
package colors

import "strings"

const (
	// ANSI colored text fragments: ANSI_PRFX + codes + ANSI_SUFX.
	ANSI_PRFX  = "\033["
	ANSI_SUFX  = "m"
	ANSI_RESET = ANSI_PRFX + "0" + ANSI_SUFX

	// Introducer and terminator bytes of an escape sequence.
	ESCAPE_INTRODUCER = '\033'
	ESCAPE_TERMINATOR = 'm'
)

// Mode is an immutable fragment of terminal styling. An empty Mode renders
// nothing, which is what every Palette function returns when colors are off.
type Mode string

// Add returns a new Mode made of m followed by the given modes.
func (m Mode) Add(others ...Mode) Mode {
	if len(others) == 0 {
		return m
	}
	var b strings.Builder
	b.WriteString(string(m))
	for _, o := range others {
		b.WriteString(string(o))
	}
	return Mode(b.String())
}

func (m Mode) String() string {
	return string(m)
}

// IsEmpty reports whether m renders nothing.
func (m Mode) IsEmpty() bool {
	return len(m) == 0
}

// Wrap surrounds text with m and a reset code. Text is returned untouched
// for an empty Mode.
func (m Mode) Wrap(text string) string {
	if m.IsEmpty() {
		return text
	}
	return string(m) + text + ANSI_RESET
}

package pipelog

/*
Package-wide constants and small helpers:
  - well known level names and their default styles
  - line layout constants
  - error message texts (also used by tests)
*/

import "github.com/abyssdigger/pipelog/colors"

const (
	// Level names used by the Handle helpers. The router itself accepts any
	// level string.
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

const (
	// Layout of a rendered line:
	// <time>\t[<style><LEVEL>\033[0m]\t<source>\t<message>\n
	TIME_FORMAT     = "2006-01-02 15:04:05"
	FIELD_DELIMITER = '\t'
	LINE_TERMINATOR = '\n'
	LEVEL_RESET     = colors.ANSI_RESET

	// Source used by the router for its own messages.
	ROUTER_SOURCE = "Logger"

	DEFAULT_OUT_BUFF = 256 // initial capacity of the line buffers
)

const (
	_ERROR_MESSAGE_DIR_NOT_CREATED = "failed to create log directory"
	_ERROR_MESSAGE_FILE_NOT_OPENED = "failed to open log file"
	_ERROR_MESSAGE_EMPTY_PATH      = "empty log file path"
	_ERROR_MESSAGE_ROUTER_CLOSED   = "router is closed"
	_ERROR_MESSAGE_WRITE_FAILED    = "error writing log to output"
	_ERROR_MESSAGE_WRITE_PANICKED  = "panic writing log to output"
	_ERROR_MESSAGE_FLUSH_FAILED    = "error flushing log output"
	_ERROR_MESSAGE_CLOSE_FAILED    = "error closing log output"
	_ERROR_MESSAGE_OUTPUT_DISABLED = "output disabled"
	_ERROR_UNKNOWN_PANIC_TEXT      = "[no panic description]"
	_ERROR_MESSAGE_CONFIGURATION   = "configuration error"
)

// DefaultLevelStyles returns the style table used by ApplyDefaultStyles:
// DEBUG green, INFO cyan, WARNING bold yellow, ERROR bold red.
func DefaultLevelStyles() map[string]string {
	p := colors.NewPalette(true)
	return map[string]string{
		LevelDebug:   p.Green().String(),
		LevelInfo:    p.Cyan().String(),
		LevelWarning: p.Yellow().Add(p.Bold()).String(),
		LevelError:   p.Red().Add(p.Bold()).String(),
	}
}

// Converts a panic value into a compact readable string (used when
// translating panics into fallback messages).
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}

// joinErrText joins a message and an optional cause the way fallback lines
// are written.
func joinErrText(msg string, err error) string {
	if err == nil {
		return msg
	}
	return msg + ": " + err.Error()
}

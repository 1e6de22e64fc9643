package colors

import (
	"errors"
	"strconv"
	"strings"
)

const (
	_ERROR_MESSAGE_EMPTY_STYLE   = "empty style part"
	_ERROR_MESSAGE_UNKNOWN_STYLE = "unknown style"
	_ERROR_MESSAGE_BAD_COLOR     = "bad color value"
)

// STYLE_SEPARATOR joins several style parts in one spec ("bold+red").
const STYLE_SEPARATOR = "+"

var namedStyles = map[string]func(Palette) Mode{
	"reset":         Palette.Reset,
	"bold":          Palette.Bold,
	"dark":          Palette.Dark,
	"faint":         Palette.Dark,
	"italic":        Palette.Italic,
	"underline":     Palette.Underline,
	"blink":         Palette.Blink,
	"reverse":       Palette.Reverse,
	"concealed":     Palette.Concealed,
	"crossed":       Palette.Crossed,
	"strikethrough": Palette.Crossed,

	"grey":    Palette.Grey,
	"gray":    Palette.Grey,
	"red":     Palette.Red,
	"green":   Palette.Green,
	"yellow":  Palette.Yellow,
	"blue":    Palette.Blue,
	"magenta": Palette.Magenta,
	"cyan":    Palette.Cyan,
	"white":   Palette.White,

	"bright_grey":    Palette.BrightGrey,
	"bright_gray":    Palette.BrightGrey,
	"bright_red":     Palette.BrightRed,
	"bright_green":   Palette.BrightGreen,
	"bright_yellow":  Palette.BrightYellow,
	"bright_blue":    Palette.BrightBlue,
	"bright_magenta": Palette.BrightMagenta,
	"bright_cyan":    Palette.BrightCyan,
	"bright_white":   Palette.BrightWhite,

	"on_grey":    Palette.OnGrey,
	"on_gray":    Palette.OnGrey,
	"on_red":     Palette.OnRed,
	"on_green":   Palette.OnGreen,
	"on_yellow":  Palette.OnYellow,
	"on_blue":    Palette.OnBlue,
	"on_magenta": Palette.OnMagenta,
	"on_cyan":    Palette.OnCyan,
	"on_white":   Palette.OnWhite,

	"on_bright_grey":    Palette.OnBrightGrey,
	"on_bright_gray":    Palette.OnBrightGrey,
	"on_bright_red":     Palette.OnBrightRed,
	"on_bright_green":   Palette.OnBrightGreen,
	"on_bright_yellow":  Palette.OnBrightYellow,
	"on_bright_blue":    Palette.OnBrightBlue,
	"on_bright_magenta": Palette.OnBrightMagenta,
	"on_bright_cyan":    Palette.OnBrightCyan,
	"on_bright_white":   Palette.OnBrightWhite,
}

// Style resolves a textual style spec into a Mode. A spec is one or more
// parts joined with "+"; each part is a style or color name ("bold", "red",
// "bright_blue", "on_yellow"), an indexed color ("color:208", "on_color:17")
// or a 24-bit color ("rgb:255,128,0", "on_rgb:0,0,64"). Names are case
// insensitive.
//
// The spec is validated even when the Palette is disabled, so a bad style is
// reported regardless of where it will be rendered.
func (p Palette) Style(spec string) (Mode, error) {
	var mode Mode
	for _, part := range strings.Split(spec, STYLE_SEPARATOR) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			return "", errors.New(_ERROR_MESSAGE_EMPTY_STYLE + " in `" + spec + "`")
		}
		m, err := p.stylePart(part)
		if err != nil {
			return "", err
		}
		mode = mode.Add(m)
	}
	return mode, nil
}

// MustStyle is like Style but panics on a bad spec. Intended for
// package-level style tables.
func (p Palette) MustStyle(spec string) Mode {
	m, err := p.Style(spec)
	if err != nil {
		panic(err)
	}
	return m
}

func (p Palette) stylePart(part string) (Mode, error) {
	if f, ok := namedStyles[part]; ok {
		return f(p), nil
	}
	name, value, found := strings.Cut(part, ":")
	if !found {
		return "", errors.New(_ERROR_MESSAGE_UNKNOWN_STYLE + " `" + part + "`")
	}
	switch name {
	case "color", "on_color":
		n, err := parseColorByte(value)
		if err != nil {
			return "", errors.New(_ERROR_MESSAGE_BAD_COLOR + " `" + part + "`: " + err.Error())
		}
		if name == "color" {
			return p.Color(n), nil
		}
		return p.OnColor(n), nil
	case "rgb", "on_rgb":
		rgb := strings.Split(value, ",")
		if len(rgb) != 3 {
			return "", errors.New(_ERROR_MESSAGE_BAD_COLOR + " `" + part + "`: want r,g,b")
		}
		var c [3]uint8
		for i := range rgb {
			n, err := parseColorByte(rgb[i])
			if err != nil {
				return "", errors.New(_ERROR_MESSAGE_BAD_COLOR + " `" + part + "`: " + err.Error())
			}
			c[i] = n
		}
		if name == "rgb" {
			return p.RGB(c[0], c[1], c[2]), nil
		}
		return p.OnRGB(c[0], c[1], c[2]), nil
	}
	return "", errors.New(_ERROR_MESSAGE_UNKNOWN_STYLE + " `" + part + "`")
}

func parseColorByte(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(n), nil
}

package colors

import (
	"io"
	"strconv"
)

// Palette hands out styling Modes for one destination. The colorization flag
// is fixed at construction; a disabled Palette returns empty Modes from every
// function, so call sites never have to check it.
type Palette struct {
	enabled bool
}

// NewPalette returns a Palette with colorization forced on or off.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// PaletteFor returns a Palette enabled only if w is color capable
// (see IsColorCapable).
func PaletteFor(w io.Writer) Palette {
	return Palette{enabled: IsColorCapable(w)}
}

// Enabled reports whether the Palette produces non-empty Modes.
func (p Palette) Enabled() bool {
	return p.enabled
}

func (p Palette) code(codes string) Mode {
	if !p.enabled {
		return ""
	}
	return Mode(ANSI_PRFX + codes + ANSI_SUFX)
}

func (p Palette) Reset() Mode     { return p.code("00") }
func (p Palette) Bold() Mode      { return p.code("1") }
func (p Palette) Dark() Mode      { return p.code("2") }
func (p Palette) Italic() Mode    { return p.code("3") }
func (p Palette) Underline() Mode { return p.code("4") }
func (p Palette) Blink() Mode     { return p.code("5") }
func (p Palette) Reverse() Mode   { return p.code("7") }
func (p Palette) Concealed() Mode { return p.code("8") }
func (p Palette) Crossed() Mode   { return p.code("9") }

// Color selects a foreground color from the 256-color table.
func (p Palette) Color(code uint8) Mode {
	return p.code("38;5;" + strconv.Itoa(int(code)))
}

// OnColor selects a background color from the 256-color table.
func (p Palette) OnColor(code uint8) Mode {
	return p.code("48;5;" + strconv.Itoa(int(code)))
}

// RGB selects a 24-bit foreground color.
func (p Palette) RGB(r, g, b uint8) Mode {
	return p.code("38;2;" + rgbCodes(r, g, b))
}

// OnRGB selects a 24-bit background color.
func (p Palette) OnRGB(r, g, b uint8) Mode {
	return p.code("48;2;" + rgbCodes(r, g, b))
}

func rgbCodes(r, g, b uint8) string {
	return strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
}

func (p Palette) Grey() Mode    { return p.code("30") }
func (p Palette) Red() Mode     { return p.code("31") }
func (p Palette) Green() Mode   { return p.code("32") }
func (p Palette) Yellow() Mode  { return p.code("33") }
func (p Palette) Blue() Mode    { return p.code("34") }
func (p Palette) Magenta() Mode { return p.code("35") }
func (p Palette) Cyan() Mode    { return p.code("36") }
func (p Palette) White() Mode   { return p.code("37") }

func (p Palette) BrightGrey() Mode    { return p.code("90") }
func (p Palette) BrightRed() Mode     { return p.code("91") }
func (p Palette) BrightGreen() Mode   { return p.code("92") }
func (p Palette) BrightYellow() Mode  { return p.code("93") }
func (p Palette) BrightBlue() Mode    { return p.code("94") }
func (p Palette) BrightMagenta() Mode { return p.code("95") }
func (p Palette) BrightCyan() Mode    { return p.code("96") }
func (p Palette) BrightWhite() Mode   { return p.code("97") }

func (p Palette) OnGrey() Mode    { return p.code("40") }
func (p Palette) OnRed() Mode     { return p.code("41") }
func (p Palette) OnGreen() Mode   { return p.code("42") }
func (p Palette) OnYellow() Mode  { return p.code("43") }
func (p Palette) OnBlue() Mode    { return p.code("44") }
func (p Palette) OnMagenta() Mode { return p.code("45") }
func (p Palette) OnCyan() Mode    { return p.code("46") }
func (p Palette) OnWhite() Mode   { return p.code("47") }

func (p Palette) OnBrightGrey() Mode    { return p.code("100") }
func (p Palette) OnBrightRed() Mode     { return p.code("101") }
func (p Palette) OnBrightGreen() Mode   { return p.code("102") }
func (p Palette) OnBrightYellow() Mode  { return p.code("103") }
func (p Palette) OnBrightBlue() Mode    { return p.code("104") }
func (p Palette) OnBrightMagenta() Mode { return p.code("105") }
func (p Palette) OnBrightCyan() Mode    { return p.code("106") }
func (p Palette) OnBrightWhite() Mode   { return p.code("107") }

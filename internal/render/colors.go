package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Colors are hex strings ("#rrggbb") everywhere above the draw layer so that
// frames stay comparable in tests; conversion to tcell.Color happens only
// when a frame is painted onto a screen.

// Lerp interpolates between two hex colors. t is clamped to [0, 1];
// unparseable colors degrade to the first endpoint rather than failing,
// since a wrong hue is preferable to a crash mid-frame.
func Lerp(from, to string, t float64) string {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	c1, err1 := colorful.Hex(from)
	c2, err2 := colorful.Hex(to)
	if err1 != nil || err2 != nil {
		return from
	}
	return c1.BlendRgb(c2, t).Hex()
}

// Shade scales a hex color's brightness. brightness 0 is black, 1 is the
// color unchanged; values outside [0, 1] are clamped.
func Shade(hex string, brightness float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	b := math.Max(0, math.Min(1, brightness))
	return colorful.Color{R: c.R * b, G: c.G * b, B: c.B * b}.Hex()
}

// Palette is an ordered color cycle indexed by the animation clock.
type Palette []string

// At returns the palette entry for the given clock value, wrapping modulo
// the palette length. An empty palette yields black so callers never have
// to guard against missing presets.
func (p Palette) At(clock int) string {
	if len(p) == 0 {
		return "#000000"
	}
	if clock < 0 {
		clock = -clock
	}
	return p[clock%len(p)]
}

// ToTcell converts a hex color string to a tcell color for drawing.
func ToTcell(hex string) tcell.Color {
	return tcell.GetColor(hex)
}

package platen

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode is the ambient light/dark preference of the host document. It
// is queried from the Environment at every style resolution, never
// cached, so a host theme switch takes effect on the next repaint.
type Mode struct {
	Dark bool
}

// Style is a cell's fully resolved presentation: a concrete foreground
// color, an optional background (nil means transparent), and the text
// attribute modifiers the surface may honor.
type Style struct {
	Foreground RGB
	Background *RGB
	Modifiers  Modifier
}

// ResolveStyle maps a cell's paint state to a concrete Style under the
// given document mode. An unset foreground becomes white in dark mode
// and black in light mode; an unset background stays transparent.
// Palette and true colors resolve the same as unset ones.
func ResolveStyle(cell Cell, mode Mode) Style {
	style := Style{Modifiers: cell.Modifiers}

	if fg, ok := cell.Foreground.ToRGB(); ok {
		style.Foreground = fg
	} else if mode.Dark {
		style.Foreground = RGB{R: 255, G: 255, B: 255}
	} else {
		style.Foreground = RGB{R: 0, G: 0, B: 0}
	}

	if bg, ok := cell.Background.ToRGB(); ok {
		style.Background = &bg
	}

	return style
}

// CSS renders the style as a CSS declaration list, the form consumed
// by markup-based surfaces.
func (s Style) CSS() string {
	fg := fmt.Sprintf("color: rgb(%d, %d, %d);", s.Foreground.R, s.Foreground.G, s.Foreground.B)
	bg := "background-color: transparent;"
	if s.Background != nil {
		bg = fmt.Sprintf("background-color: rgb(%d, %d, %d);", s.Background.R, s.Background.G, s.Background.B)
	}
	return fg + " " + bg
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

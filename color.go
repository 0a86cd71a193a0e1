// Package platen renders a character-grid terminal UI onto a persistent
// surface of hierarchical nodes, driven by a host rendering-loop callback.
//
// This package contains:
//   - Color and cell types
//   - Grid frame buffer
//   - Differential cell-to-node render engine and backend contract
//   - Terminal front end (frames, double buffering)
//   - Frame pump driven by a host tick scheduler
//
// Host-specific packages (platen/gtk, platen/qt, platen/cli,
// platen/tcell) provide the surface, environment, and scheduler
// implementations for each toolkit.
package platen

// ColorType indicates how a color was specified.
type ColorType uint8

const (
	ColorTypeDefault   ColorType = iota // Use the surface default fg/bg
	ColorTypeStandard                   // Standard 16 ANSI colors (0-15)
	ColorTypePalette                    // 256-color palette (0-255)
	ColorTypeTrueColor                  // 24-bit RGB
)

// Color represents a terminal color with its original specification
// preserved. Only the sixteen standard colors resolve to concrete RGB
// during style mapping; palette and true colors pass through the
// mapper as "no color" so surfaces fall back to their defaults.
type Color struct {
	Type    ColorType // How the color was specified
	Index   uint8     // For Standard (0-15) or Palette (0-255)
	R, G, B uint8     // For TrueColor
}

// RGB holds just the red, green, blue components.
type RGB struct {
	R, G, B uint8
}

// Standard ANSI 16-color palette RGB values, in ANSI order.
var ANSIColorsRGB = []RGB{
	{R: 0, G: 0, B: 0},       // ANSI 0: Black
	{R: 128, G: 0, B: 0},     // ANSI 1: Red
	{R: 0, G: 128, B: 0},     // ANSI 2: Green
	{R: 128, G: 128, B: 0},   // ANSI 3: Yellow
	{R: 0, G: 0, B: 128},     // ANSI 4: Blue
	{R: 128, G: 0, B: 128},   // ANSI 5: Magenta
	{R: 0, G: 128, B: 128},   // ANSI 6: Cyan
	{R: 192, G: 192, B: 192}, // ANSI 7: Gray
	// Bright variants (8-15)
	{R: 128, G: 128, B: 128}, // ANSI 8: Dark Gray
	{R: 255, G: 0, B: 0},     // ANSI 9: Bright Red
	{R: 0, G: 255, B: 0},     // ANSI 10: Bright Green
	{R: 255, G: 255, B: 0},   // ANSI 11: Bright Yellow
	{R: 0, G: 0, B: 255},     // ANSI 12: Bright Blue
	{R: 255, G: 0, B: 255},   // ANSI 13: Bright Magenta
	{R: 0, G: 255, B: 255},   // ANSI 14: Bright Cyan
	{R: 255, G: 255, B: 255}, // ANSI 15: White
}

// Named standard colors.
var (
	ColorDefault = Color{Type: ColorTypeDefault}
	ColorBlack   = StandardColor(0)
	ColorRed     = StandardColor(1)
	ColorGreen   = StandardColor(2)
	ColorYellow  = StandardColor(3)
	ColorBlue    = StandardColor(4)
	ColorMagenta = StandardColor(5)
	ColorCyan    = StandardColor(6)
	ColorGray    = StandardColor(7)

	ColorDarkGray      = StandardColor(8)
	ColorBrightRed     = StandardColor(9)
	ColorBrightGreen   = StandardColor(10)
	ColorBrightYellow  = StandardColor(11)
	ColorBrightBlue    = StandardColor(12)
	ColorBrightMagenta = StandardColor(13)
	ColorBrightCyan    = StandardColor(14)
	ColorWhite         = StandardColor(15)
)

// StandardColor creates a standard 16-color ANSI color (index 0-15).
func StandardColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7
	}
	return Color{Type: ColorTypeStandard, Index: uint8(index)}
}

// PaletteColor creates a 256-color palette color (index 0-255).
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		index = 7
	}
	return Color{Type: ColorTypePalette, Index: uint8(index)}
}

// TrueColor creates a 24-bit true color.
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeTrueColor, R: r, G: g, B: b}
}

// IsDefault returns true if this is the default fg/bg color.
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// ToRGB resolves the color to a concrete RGB value. Only the sixteen
// standard colors resolve; everything else reports false, which the
// style mapper treats the same as an unset color.
func (c Color) ToRGB() (RGB, bool) {
	if c.Type != ColorTypeStandard || int(c.Index) >= len(ANSIColorsRGB) {
		return RGB{}, false
	}
	return ANSIColorsRGB[c.Index], true
}

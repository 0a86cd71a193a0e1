package platen

// Modifier is a bitmask of cell rendering attributes.
type Modifier uint16

const (
	ModBold Modifier = 1 << iota
	ModDim
	ModItalic
	ModUnderline
	ModSlowBlink
	ModRapidBlink
	ModReversed
	ModHidden
	ModCrossedOut
	// ModHyperlink marks a cell as part of a hyperlink span. The cell's
	// glyphs form the link target; consecutive flagged cells in a row are
	// grouped into a single anchor at surface build time.
	ModHyperlink
)

// Has returns true if the mask contains the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Cell represents a single character cell in one rendered frame.
// Cells compare structurally: two cells are unchanged iff every field
// is equal.
type Cell struct {
	Glyph      string // Zero or more visible characters
	Foreground Color
	Background Color
	Modifiers  Modifier
}

// DefaultCell returns the blank cell used to pad rows and fill fresh
// grids: a single space with default colors and no modifiers.
func DefaultCell() Cell {
	return Cell{Glyph: " "}
}

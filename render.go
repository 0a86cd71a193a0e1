package platen

import (
	"strings"

	"github.com/pkg/errors"
)

// buildSurface constructs the initial node tree from the current
// frame. Runs exactly once, on the first flush. Each grid row becomes
// a row container; plain cells become leaves, and runs of consecutive
// hyperlink-flagged cells collapse into one anchor whose target is the
// concatenation of the spanned glyphs and whose style comes from the
// last cell of the span. Every leaf, anchored or not, lands in the
// flat node index so the differ can address it by grid position.
func (b *Backend) buildSurface() error {
	if len(b.current.cells) > 0 {
		b.stride = len(b.current.cells[0])
	}

	for y, line := range b.current.cells {
		row, err := b.surface.CreateRow()
		if err != nil {
			return errors.Wrapf(err, "platen: create row %d", y)
		}

		var anchor Anchor
		var span []string
		for x, cell := range line {
			if cell.Modifiers.Has(ModHyperlink) {
				if anchor == nil {
					anchor, err = b.surface.CreateAnchor()
					if err != nil {
						return errors.Wrapf(err, "platen: create anchor at (%d,%d)", x, y)
					}
				}
				span = append(span, cell.Glyph)

				leaf, err := b.surface.CreateLeaf(cell.Glyph, b.styleFor(cell))
				if err != nil {
					return errors.Wrapf(err, "platen: create leaf at (%d,%d)", x, y)
				}
				b.nodes = append(b.nodes, leaf)
				if err := anchor.Append(leaf); err != nil {
					return errors.Wrapf(err, "platen: append anchor leaf at (%d,%d)", x, y)
				}

				// Close the span once the run ends.
				if x+1 >= len(line) || !line[x+1].Modifiers.Has(ModHyperlink) {
					if err := anchor.SetTarget(strings.Join(span, "")); err != nil {
						return errors.Wrapf(err, "platen: set anchor target in row %d", y)
					}
					if err := anchor.SetStyle(b.styleFor(cell)); err != nil {
						return errors.Wrapf(err, "platen: set anchor style in row %d", y)
					}
					if err := row.Append(anchor); err != nil {
						return errors.Wrapf(err, "platen: append anchor in row %d", y)
					}
					anchor = nil
					span = nil
				}
				continue
			}

			leaf, err := b.surface.CreateLeaf(cell.Glyph, b.styleFor(cell))
			if err != nil {
				return errors.Wrapf(err, "platen: create leaf at (%d,%d)", x, y)
			}
			b.nodes = append(b.nodes, leaf)
			if err := row.Append(leaf); err != nil {
				return errors.Wrapf(err, "platen: append leaf at (%d,%d)", x, y)
			}
		}

		if err := b.surface.AppendRow(row); err != nil {
			return errors.Wrapf(err, "platen: append row %d", y)
		}
	}
	return nil
}

// updateSurface walks the current frame against the previous one and
// rewrites the content and style of every leaf whose cell changed.
// Hyperlink cells are skipped: anchors are static after the initial
// build. Any mutation failure aborts the tick.
func (b *Backend) updateSurface() error {
	for y, line := range b.current.cells {
		for x, cell := range line {
			if cell.Modifiers.Has(ModHyperlink) {
				continue
			}
			if cell == b.previous.CellAt(x, y) {
				continue
			}

			idx := y*b.stride + x
			if idx < 0 || idx >= len(b.nodes) {
				return errors.Errorf("platen: cell (%d,%d) outside the node index", x, y)
			}
			leaf := b.nodes[idx]
			if err := leaf.SetGlyph(cell.Glyph); err != nil {
				return errors.Wrapf(err, "platen: set glyph at (%d,%d)", x, y)
			}
			if err := leaf.SetStyle(b.styleFor(cell)); err != nil {
				return errors.Wrapf(err, "platen: set style at (%d,%d)", x, y)
			}
		}
	}
	return nil
}

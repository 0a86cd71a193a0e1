// Package cli renders platen grids into a host ANSI terminal. Cells
// become cursor-addressed writes with SGR attributes, and hyperlink
// spans become OSC 8 links. Output is batched per frame and flushed in
// a single write to avoid flicker.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Surface is a platen.Surface writing ANSI sequences to an output
// stream. Leaves are assigned their screen position when appended to a
// row, rows when appended to the surface.
type Surface struct {
	out       io.Writer
	output    strings.Builder
	rows      int
	truecolor bool
	onKey     func(key string)
}

// NewSurface creates a surface writing to out. When out is nil the
// surface writes to stdout. Truecolor output follows the COLORTERM
// convention; other terminals get the nearest of the 16 ANSI colors.
func NewSurface(out io.Writer) *Surface {
	if out == nil {
		out = os.Stdout
	}
	return &Surface{
		out:       out,
		truecolor: supportsTruecolor(),
	}
}

func supportsTruecolor() bool {
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		return true
	}
	return false
}

var (
	_ platen.Surface   = (*Surface)(nil)
	_ platen.KeyInput  = (*Surface)(nil)
	_ platen.Committer = (*Surface)(nil)
)

func (s *Surface) CreateRow() (platen.Row, error) {
	return &rowNode{surface: s}, nil
}

func (s *Surface) CreateLeaf(glyph string, style platen.Style) (platen.Leaf, error) {
	return &leafNode{surface: s, glyph: glyph, style: style, col: -1, row: -1}, nil
}

func (s *Surface) CreateAnchor() (platen.Anchor, error) {
	return &anchorNode{surface: s, col: -1, row: -1}, nil
}

func (s *Surface) AppendRow(row platen.Row) error {
	r, ok := row.(*rowNode)
	if !ok {
		return errors.New("cli: foreign row node")
	}
	r.y = s.rows
	s.rows++
	for _, child := range r.pending {
		child.place(r.y)
	}
	r.pending = nil
	return nil
}

// OnKey registers a keyboard handler. Keys are delivered by the input
// loop started from Terminal.Start.
func (s *Surface) OnKey(fn func(key string)) {
	s.onKey = fn
}

// Commit flushes the batched frame to the output stream.
func (s *Surface) Commit() error {
	if s.output.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(s.out, s.output.String())
	s.output.Reset()
	return errors.Wrap(err, "cli: flush")
}

// writeCell emits a cursor-addressed styled glyph. Wide glyphs are
// written as-is and overdraw their neighbor, matching what the host
// terminal would do anyway.
func (s *Surface) writeCell(col, row int, glyph string, style platen.Style) {
	if glyph == "" || runewidth.StringWidth(glyph) == 0 {
		glyph = " "
	}
	fmt.Fprintf(&s.output, "\033[%d;%dH", row+1, col+1)
	s.output.WriteString("\033[")
	s.output.WriteString(s.sgr(style))
	s.output.WriteString("m")
	s.output.WriteString(glyph)
}

// sgr builds the attribute sequence for a style, always starting from
// a reset so cells never inherit attributes from their neighbors.
func (s *Surface) sgr(style platen.Style) string {
	codes := []string{"0"}
	if style.Modifiers.Has(platen.ModBold) {
		codes = append(codes, "1")
	}
	if style.Modifiers.Has(platen.ModDim) {
		codes = append(codes, "2")
	}
	if style.Modifiers.Has(platen.ModItalic) {
		codes = append(codes, "3")
	}
	if style.Modifiers.Has(platen.ModUnderline) {
		codes = append(codes, "4")
	}
	if style.Modifiers.Has(platen.ModSlowBlink) || style.Modifiers.Has(platen.ModRapidBlink) {
		codes = append(codes, "5")
	}
	if style.Modifiers.Has(platen.ModReversed) {
		codes = append(codes, "7")
	}
	if style.Modifiers.Has(platen.ModHidden) {
		codes = append(codes, "8")
	}
	if style.Modifiers.Has(platen.ModCrossedOut) {
		codes = append(codes, "9")
	}

	if s.truecolor {
		fg := style.Foreground
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", fg.R, fg.G, fg.B))
		if bg := style.Background; bg != nil {
			codes = append(codes, fmt.Sprintf("48;2;%d;%d;%d", bg.R, bg.G, bg.B))
		} else {
			codes = append(codes, "49")
		}
	} else {
		codes = append(codes, foregroundCode(nearestANSI(style.Foreground)))
		if bg := style.Background; bg != nil {
			codes = append(codes, backgroundCode(nearestANSI(*bg)))
		} else {
			codes = append(codes, "49")
		}
	}
	return strings.Join(codes, ";")
}

// nearestANSI quantizes an RGB value to the index of the closest of
// the 16 standard colors using perceptual distance.
func nearestANSI(rgb platen.RGB) int {
	target := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
	best := 0
	bestDist := -1.0
	for i, ref := range platen.ANSIColorsRGB {
		cand := colorful.Color{
			R: float64(ref.R) / 255,
			G: float64(ref.G) / 255,
			B: float64(ref.B) / 255,
		}
		d := target.DistanceLab(cand)
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func foregroundCode(index int) string {
	if index >= 8 {
		return fmt.Sprintf("%d", 90+index-8)
	}
	return fmt.Sprintf("%d", 30+index)
}

func backgroundCode(index int) string {
	if index >= 8 {
		return fmt.Sprintf("%d", 100+index-8)
	}
	return fmt.Sprintf("%d", 40+index)
}

type placeable interface {
	place(y int)
}

type rowNode struct {
	surface *Surface
	y       int
	next    int
	pending []placeable
}

func (r *rowNode) Append(node platen.Node) error {
	switch n := node.(type) {
	case *leafNode:
		n.col = r.next
		r.next++
		r.pending = append(r.pending, n)
	case *anchorNode:
		n.col = r.next
		r.next += n.width()
		r.pending = append(r.pending, n)
	default:
		return errors.New("cli: foreign node")
	}
	return nil
}

type leafNode struct {
	surface  *Surface
	glyph    string
	style    platen.Style
	col, row int
}

func (l *leafNode) place(y int) {
	l.row = y
	l.surface.writeCell(l.col, l.row, l.glyph, l.style)
}

func (l *leafNode) SetGlyph(glyph string) error {
	l.glyph = glyph
	if l.row >= 0 {
		l.surface.writeCell(l.col, l.row, l.glyph, l.style)
	}
	return nil
}

func (l *leafNode) SetStyle(style platen.Style) error {
	l.style = style
	if l.row >= 0 {
		l.surface.writeCell(l.col, l.row, l.glyph, l.style)
	}
	return nil
}

// anchorNode renders a hyperlink span as an OSC 8 link. The span is
// emitted once, when its row is appended; its leaves are recorded for
// their glyphs only.
type anchorNode struct {
	surface  *Surface
	glyphs   []string
	target   string
	style    platen.Style
	col, row int
}

func (a *anchorNode) width() int { return len(a.glyphs) }

func (a *anchorNode) SetStyle(style platen.Style) error {
	a.style = style
	return nil
}

func (a *anchorNode) SetTarget(target string) error {
	a.target = target
	return nil
}

func (a *anchorNode) Append(leaf platen.Leaf) error {
	l, ok := leaf.(*leafNode)
	if !ok {
		return errors.New("cli: foreign leaf node")
	}
	a.glyphs = append(a.glyphs, l.glyph)
	return nil
}

func (a *anchorNode) place(y int) {
	a.row = y
	out := &a.surface.output
	fmt.Fprintf(out, "\033]8;;%s\033\\", a.target)
	for i, glyph := range a.glyphs {
		a.surface.writeCell(a.col+i, a.row, glyph, a.style)
	}
	out.WriteString("\033]8;;\033\\")
}

// Package platentcell renders platen grids onto a tcell screen. Cells
// map to SetContent calls and hyperlink spans carry their target via
// tcell's style URL support.
package platentcell

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Surface is a platen.Surface backed by a tcell.Screen. Leaves are
// assigned their screen position when appended to a row, rows when
// appended to the surface.
type Surface struct {
	screen tcell.Screen
	rows   int
	onKey  func(key string)
}

// NewSurface creates a surface drawing onto an initialized screen.
func NewSurface(screen tcell.Screen) (*Surface, error) {
	if screen == nil {
		return nil, errors.New("platentcell: nil screen")
	}
	return &Surface{screen: screen}, nil
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
		return errors.New("platentcell: foreign row node")
	}
	r.y = s.rows
	s.rows++
	for _, child := range r.pending {
		child.place(r.y)
	}
	r.pending = nil
	return nil
}

// OnKey registers a keyboard handler. Keys are delivered by the event
// loop started from Terminal.Start.
func (s *Surface) OnKey(fn func(key string)) {
	s.onKey = fn
}

// Commit makes the frame's changes visible.
func (s *Surface) Commit() error {
	s.screen.Show()
	return nil
}

func (s *Surface) setCell(col, row int, glyph string, style tcell.Style) {
	main := ' '
	var comb []rune
	if runes := []rune(glyph); len(runes) > 0 {
		main = runes[0]
		comb = runes[1:]
	}
	s.screen.SetContent(col, row, main, comb, style)
}

// cellStyle converts a resolved style to a tcell style.
func cellStyle(style platen.Style) tcell.Style {
	fg := style.Foreground
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
	if bg := style.Background; bg != nil {
		st = st.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
	}
	if style.Modifiers.Has(platen.ModBold) {
		st = st.Bold(true)
	}
	if style.Modifiers.Has(platen.ModDim) {
		st = st.Dim(true)
	}
	if style.Modifiers.Has(platen.ModItalic) {
		st = st.Italic(true)
	}
	if style.Modifiers.Has(platen.ModUnderline) {
		st = st.Underline(true)
	}
	if style.Modifiers.Has(platen.ModSlowBlink) || style.Modifiers.Has(platen.ModRapidBlink) {
		st = st.Blink(true)
	}
	if style.Modifiers.Has(platen.ModReversed) {
		st = st.Reverse(true)
	}
	if style.Modifiers.Has(platen.ModCrossedOut) {
		st = st.StrikeThrough(true)
	}
	return st
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
		r.next += len(n.glyphs)
		r.pending = append(r.pending, n)
	default:
		return errors.New("platentcell: foreign node")
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
	l.surface.setCell(l.col, l.row, l.glyph, cellStyle(l.style))
}

func (l *leafNode) SetGlyph(glyph string) error {
	l.glyph = glyph
	if l.row >= 0 {
		l.surface.setCell(l.col, l.row, l.glyph, cellStyle(l.style))
	}
	return nil
}

func (l *leafNode) SetStyle(style platen.Style) error {
	l.style = style
	if l.row >= 0 {
		l.surface.setCell(l.col, l.row, l.glyph, cellStyle(l.style))
	}
	return nil
}

// anchorNode renders a hyperlink span cell by cell with the target set
// as the style URL. The span is drawn once, when its row is appended.
type anchorNode struct {
	surface  *Surface
	glyphs   []string
	target   string
	style    platen.Style
	col, row int
}

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
		return errors.New("platentcell: foreign leaf node")
	}
	a.glyphs = append(a.glyphs, l.glyph)
	return nil
}

func (a *anchorNode) place(y int) {
	a.row = y
	style := cellStyle(a.style).Url(a.target)
	for i, glyph := range a.glyphs {
		a.surface.setCell(a.col+i, a.row, glyph, style)
	}
}

package platen

// NullSurface is an in-memory Surface for testing and headless use.
// It records the node tree as plain structs and counts every mutation
// made after node creation, so tests can assert exactly how much the
// differential renderer touched.
type NullSurface struct {
	// Rows holds the appended row containers in order.
	Rows []*NullRow

	mutations int
	handlers  []func(string)
}

// NewNullSurface creates an empty null surface.
func NewNullSurface() *NullSurface {
	return &NullSurface{}
}

// Mutations returns the number of node mutations (SetGlyph, SetStyle,
// SetTarget) recorded since creation.
func (s *NullSurface) Mutations() int {
	return s.mutations
}

// PressKey synthesizes a key-down event for registered handlers.
func (s *NullSurface) PressKey(key string) {
	for _, fn := range s.handlers {
		fn(key)
	}
}

func (s *NullSurface) CreateRow() (Row, error) {
	return &NullRow{}, nil
}

func (s *NullSurface) CreateLeaf(glyph string, style Style) (Leaf, error) {
	return &NullLeaf{surface: s, Glyph: glyph, Style: style}, nil
}

func (s *NullSurface) CreateAnchor() (Anchor, error) {
	return &NullAnchor{surface: s}, nil
}

func (s *NullSurface) AppendRow(row Row) error {
	s.Rows = append(s.Rows, row.(*NullRow))
	return nil
}

func (s *NullSurface) OnKey(handler func(key string)) {
	s.handlers = append(s.handlers, handler)
}

// NullRow records its children in append order.
type NullRow struct {
	Children []Node
}

func (r *NullRow) Append(child Node) error {
	r.Children = append(r.Children, child)
	return nil
}

// NullLeaf records a leaf's content and style.
type NullLeaf struct {
	Glyph string
	Style Style

	surface *NullSurface
}

func (l *NullLeaf) SetGlyph(glyph string) error {
	l.Glyph = glyph
	l.surface.mutations++
	return nil
}

func (l *NullLeaf) SetStyle(style Style) error {
	l.Style = style
	l.surface.mutations++
	return nil
}

// NullAnchor records a hyperlink span container.
type NullAnchor struct {
	Target string
	Style  Style
	Leaves []*NullLeaf

	surface *NullSurface
}

func (a *NullAnchor) SetTarget(target string) error {
	a.Target = target
	a.surface.mutations++
	return nil
}

func (a *NullAnchor) SetStyle(style Style) error {
	a.Style = style
	a.surface.mutations++
	return nil
}

func (a *NullAnchor) Append(leaf Leaf) error {
	a.Leaves = append(a.Leaves, leaf.(*NullLeaf))
	return nil
}

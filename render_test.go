package platen

import "testing"

// testBackend returns a backend over a NullSurface with an 8x4 grid
// (desktop branch: 80x80 window at 10x20 pixels per cell).
func testBackend(t *testing.T) (*Backend, *NullSurface, *FixedEnvironment) {
	t.Helper()
	surface := NewNullSurface()
	env := &FixedEnvironment{
		Dark:         true,
		ScreenWidth:  1000,
		ScreenHeight: 800,
		WindowWidth:  80,
		WindowHeight: 80,
	}
	b, err := NewBackend(surface, env)
	if err != nil {
		t.Fatalf("backend construction failed: %v", err)
	}
	return b, surface, env
}

func linkCell(glyph string) Cell {
	return Cell{Glyph: glyph, Foreground: ColorBlue, Modifiers: ModHyperlink}
}

func TestBuildSurfaceGeometry(t *testing.T) {
	b, surface, _ := testBackend(t)

	if err := b.Flush(); err != nil {
		t.Fatalf("first flush failed: %v", err)
	}

	if len(surface.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(surface.Rows))
	}
	for y, row := range surface.Rows {
		if len(row.Children) != 8 {
			t.Errorf("row %d: expected 8 children, got %d", y, len(row.Children))
		}
	}
}

func TestBuildSurfaceGroupsHyperlinkSpan(t *testing.T) {
	b, surface, _ := testBackend(t)

	for _, u := range []CellUpdate{
		{Col: 0, Row: 0, Cell: linkCell("d")},
		{Col: 1, Row: 0, Cell: linkCell("o")},
		{Col: 2, Row: 0, Cell: linkCell("c")},
		{Col: 3, Row: 0, Cell: Cell{Glyph: "D"}},
	} {
		if err := b.Draw([]CellUpdate{u}); err != nil {
			t.Fatalf("draw failed: %v", err)
		}
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	row := surface.Rows[0]
	// One anchor wrapping the three link cells, then the plain cells.
	anchor, ok := row.Children[0].(*NullAnchor)
	if !ok {
		t.Fatalf("expected an anchor first, got %T", row.Children[0])
	}
	if anchor.Target != "doc" {
		t.Errorf("expected target %q, got %q", "doc", anchor.Target)
	}
	if len(anchor.Leaves) != 3 {
		t.Errorf("expected 3 anchored leaves, got %d", len(anchor.Leaves))
	}

	anchors := 0
	for _, child := range row.Children {
		if _, ok := child.(*NullAnchor); ok {
			anchors++
		}
	}
	if anchors != 1 {
		t.Errorf("expected exactly one anchor in the row, got %d", anchors)
	}

	leaf, ok := row.Children[1].(*NullLeaf)
	if !ok {
		t.Fatalf("expected a plain leaf after the anchor, got %T", row.Children[1])
	}
	if leaf.Glyph != "D" {
		t.Errorf("expected plain leaf %q, got %q", "D", leaf.Glyph)
	}
}

func TestBuildSurfaceAnchorAtRowEnd(t *testing.T) {
	b, surface, _ := testBackend(t)

	// Span running to the last column still closes.
	for col := 6; col < 8; col++ {
		if err := b.Draw([]CellUpdate{{Col: col, Row: 1, Cell: linkCell("x")}}); err != nil {
			t.Fatalf("draw failed: %v", err)
		}
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	row := surface.Rows[1]
	anchor, ok := row.Children[len(row.Children)-1].(*NullAnchor)
	if !ok {
		t.Fatalf("expected trailing anchor, got %T", row.Children[len(row.Children)-1])
	}
	if anchor.Target != "xx" {
		t.Errorf("expected target %q, got %q", "xx", anchor.Target)
	}
}

func TestFlushIdenticalFramesMutatesNothing(t *testing.T) {
	b, surface, _ := testBackend(t)

	if err := b.Draw([]CellUpdate{{Col: 1, Row: 1, Cell: Cell{Glyph: "a"}}}); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("first flush failed: %v", err)
	}

	before := surface.Mutations()
	if err := b.Flush(); err != nil {
		t.Fatalf("second flush failed: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("third flush failed: %v", err)
	}
	if got := surface.Mutations(); got != before {
		t.Errorf("flushing identical frames mutated %d nodes", got-before)
	}
}

func TestFlushSingleCellChange(t *testing.T) {
	b, surface, _ := testBackend(t)

	if err := b.Flush(); err != nil {
		t.Fatalf("initial flush failed: %v", err)
	}

	before := surface.Mutations()
	changed := Cell{Glyph: "#", Foreground: ColorBrightRed}
	if err := b.Draw([]CellUpdate{{Col: 5, Row: 3, Cell: changed}}); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	// One node: one content write plus one style write.
	if got := surface.Mutations() - before; got != 2 {
		t.Errorf("expected exactly 2 mutations for one changed cell, got %d", got)
	}

	leaf := surface.Rows[3].Children[5].(*NullLeaf)
	if leaf.Glyph != "#" {
		t.Errorf("expected updated glyph, got %q", leaf.Glyph)
	}
	if leaf.Style.Foreground != (RGB{255, 0, 0}) {
		t.Errorf("expected updated style, got %+v", leaf.Style.Foreground)
	}

	// Neighbors untouched.
	if surface.Rows[3].Children[4].(*NullLeaf).Glyph != " " {
		t.Error("neighbor cell changed content")
	}
}

func TestFlushSkipsHyperlinkCells(t *testing.T) {
	b, surface, _ := testBackend(t)

	if err := b.Draw([]CellUpdate{{Col: 0, Row: 2, Cell: linkCell("l")}}); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("initial flush failed: %v", err)
	}

	before := surface.Mutations()
	if err := b.Draw([]CellUpdate{{Col: 0, Row: 2, Cell: linkCell("L")}}); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	if got := surface.Mutations(); got != before {
		t.Errorf("hyperlink cell change mutated %d nodes, want 0", got-before)
	}
	anchor := surface.Rows[2].Children[0].(*NullAnchor)
	if anchor.Target != "l" || anchor.Leaves[0].Glyph != "l" {
		t.Error("anchor content changed after initial build")
	}
}

func TestStyleTracksModeAcrossFlushes(t *testing.T) {
	b, surface, env := testBackend(t)
	env.Dark = false

	if err := b.Flush(); err != nil {
		t.Fatalf("initial flush failed: %v", err)
	}
	if fg := surface.Rows[0].Children[0].(*NullLeaf).Style.Foreground; fg != (RGB{0, 0, 0}) {
		t.Errorf("light mode default fg should be black, got %+v", fg)
	}

	// Theme switch applies to cells repainted afterwards.
	env.Dark = true
	if err := b.Draw([]CellUpdate{{Col: 0, Row: 0, Cell: Cell{Glyph: "m"}}}); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if fg := surface.Rows[0].Children[0].(*NullLeaf).Style.Foreground; fg != (RGB{255, 255, 255}) {
		t.Errorf("dark mode default fg should be white, got %+v", fg)
	}
}

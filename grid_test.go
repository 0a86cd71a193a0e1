package platen

import "testing"

func TestGridPaintReadback(t *testing.T) {
	g := NewGrid(10, 5)

	cell := Cell{Glyph: "A", Foreground: ColorCyan, Modifiers: ModBold}
	if err := g.Paint(3, 2, cell); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	if got := g.CellAt(3, 2); got != cell {
		t.Errorf("expected %+v, got %+v", cell, got)
	}
}

func TestGridPaintRowOutOfRange(t *testing.T) {
	g := NewGrid(10, 5)
	if err := g.Paint(0, 5, DefaultCell()); err == nil {
		t.Error("painting past the fixed height should fail")
	}
	if err := g.Paint(0, -1, DefaultCell()); err == nil {
		t.Error("painting a negative row should fail")
	}
}

func TestGridPaintGrowsRow(t *testing.T) {
	g := NewGrid(10, 5)

	cell := Cell{Glyph: "Z"}
	if err := g.Paint(14, 1, cell); err != nil {
		t.Fatalf("paint past width should grow the row, got %v", err)
	}
	if got := g.CellAt(14, 1); got != cell {
		t.Errorf("expected grown cell, got %+v", got)
	}
	// Padding between the old width and the write is default cells.
	if got := g.CellAt(12, 1); got != DefaultCell() {
		t.Errorf("expected default padding, got %+v", got)
	}
	// Other rows keep their configured width.
	if _, rows := g.Size(); rows != 4 {
		t.Errorf("height should stay fixed, got %d", rows)
	}
}

func TestGridSizeQuirk(t *testing.T) {
	g := NewGrid(80, 24)
	cols, rows := g.Size()
	if cols != 79 || rows != 23 {
		t.Errorf("expected (79, 23), got (%d, %d)", cols, rows)
	}
}

func TestGridClear(t *testing.T) {
	g := NewGrid(10, 5)
	if err := g.Paint(14, 1, Cell{Glyph: "Z"}); err != nil {
		t.Fatalf("paint failed: %v", err)
	}

	g.Clear()
	if got := g.CellAt(2, 1); got != DefaultCell() {
		t.Errorf("clear should blank cells, got %+v", got)
	}
	// Grown columns are discarded.
	cols, _ := g.Size()
	if cols != 9 {
		t.Errorf("clear should restore configured width, got %d", cols)
	}
}

func TestGridEqualAndClone(t *testing.T) {
	g := NewGrid(4, 3)
	if err := g.Paint(1, 1, Cell{Glyph: "q", Foreground: ColorGreen}); err != nil {
		t.Fatalf("paint failed: %v", err)
	}

	c := g.Clone()
	if !g.Equal(c) {
		t.Error("clone should equal its source")
	}

	if err := c.Paint(1, 1, Cell{Glyph: "r"}); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	if g.Equal(c) {
		t.Error("mutating the clone should not affect the source")
	}
	if g.CellAt(1, 1).Glyph != "q" {
		t.Error("source cell changed through the clone")
	}
}

func TestDiffString(t *testing.T) {
	a := NewGrid(3, 2)
	b := a.Clone()
	if DiffString(a, b) != "" {
		t.Error("identical grids should produce an empty diff")
	}

	if err := b.Paint(2, 0, Cell{Glyph: "!"}); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	if DiffString(a, b) == "" {
		t.Error("differing grids should produce a non-empty diff")
	}
}

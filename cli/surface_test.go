package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mvickers/platen"
)

func testSurface(truecolor bool) (*Surface, *bytes.Buffer) {
	var buf bytes.Buffer
	s := NewSurface(&buf)
	s.truecolor = truecolor
	return s, &buf
}

func TestSurfaceWritesPlacedCells(t *testing.T) {
	s, buf := testSurface(true)

	row, err := s.CreateRow()
	if err != nil {
		t.Fatalf("CreateRow: %v", err)
	}
	for _, glyph := range []string{"h", "i"} {
		leaf, err := s.CreateLeaf(glyph, platen.Style{Foreground: platen.RGB{R: 255, G: 255, B: 255}})
		if err != nil {
			t.Fatalf("CreateLeaf: %v", err)
		}
		if err := row.Append(leaf); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := s.AppendRow(row); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\033[1;1H") {
		t.Errorf("expected move to row 1 col 1, got %q", out)
	}
	if !strings.Contains(out, "\033[1;2H") {
		t.Errorf("expected move to row 1 col 2, got %q", out)
	}
	if !strings.Contains(out, "h") || !strings.Contains(out, "i") {
		t.Errorf("expected glyphs in output, got %q", out)
	}
	if !strings.Contains(out, "38;2;255;255;255") {
		t.Errorf("expected truecolor foreground, got %q", out)
	}
}

func TestSurfaceLeafUpdateAfterPlacement(t *testing.T) {
	s, buf := testSurface(true)

	row, _ := s.CreateRow()
	leaf, _ := s.CreateLeaf("a", platen.Style{})
	row.Append(leaf)
	s.AppendRow(row)
	s.Commit()
	buf.Reset()

	if err := leaf.SetGlyph("b"); err != nil {
		t.Fatalf("SetGlyph: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\033[1;1H") || !strings.Contains(out, "b") {
		t.Errorf("expected repaint of cell at origin with new glyph, got %q", out)
	}
}

func TestSurfaceCommitEmptyWritesNothing(t *testing.T) {
	s, buf := testSurface(true)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestAnchorEmitsHyperlink(t *testing.T) {
	s, buf := testSurface(true)

	row, _ := s.CreateRow()
	anchor, err := s.CreateAnchor()
	if err != nil {
		t.Fatalf("CreateAnchor: %v", err)
	}
	for _, glyph := range []string{"g", "o"} {
		leaf, _ := s.CreateLeaf(glyph, platen.Style{})
		if err := anchor.Append(leaf); err != nil {
			t.Fatalf("anchor Append: %v", err)
		}
	}
	if err := anchor.SetTarget("https://example.com"); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	row.Append(anchor)
	s.AppendRow(row)
	s.Commit()

	out := buf.String()
	if !strings.Contains(out, "\033]8;;https://example.com\033\\") {
		t.Errorf("expected hyperlink open sequence, got %q", out)
	}
	if !strings.Contains(out, "\033]8;;\033\\") {
		t.Errorf("expected hyperlink close sequence, got %q", out)
	}
	if !strings.Contains(out, "g") || !strings.Contains(out, "o") {
		t.Errorf("expected span glyphs in output, got %q", out)
	}
}

func TestAnchorOccupiesSpanWidth(t *testing.T) {
	s, buf := testSurface(true)

	row, _ := s.CreateRow()
	anchor, _ := s.CreateAnchor()
	for _, glyph := range []string{"x", "y"} {
		leaf, _ := s.CreateLeaf(glyph, platen.Style{})
		anchor.Append(leaf)
	}
	row.Append(anchor)
	after, _ := s.CreateLeaf("z", platen.Style{})
	row.Append(after)
	s.AppendRow(row)
	s.Commit()

	// The anchor spans columns 1-2, so the next leaf lands in column 3.
	if out := buf.String(); !strings.Contains(out, "\033[1;3H") {
		t.Errorf("expected trailing leaf at column 3, got %q", out)
	}
}

func TestSGRModifiers(t *testing.T) {
	s, _ := testSurface(true)

	style := platen.Style{
		Foreground: platen.RGB{R: 1, G: 2, B: 3},
		Modifiers:  platen.ModBold | platen.ModUnderline | platen.ModCrossedOut,
	}
	sgr := s.sgr(style)
	for _, code := range []string{"0", "1", "4", "9", "38;2;1;2;3", "49"} {
		if !containsCode(sgr, code) {
			t.Errorf("expected code %s in %q", code, sgr)
		}
	}
}

func TestSGRQuantizedColors(t *testing.T) {
	s, _ := testSurface(false)

	bg := platen.RGB{R: 0, G: 0, B: 0}
	style := platen.Style{
		Foreground: platen.RGB{R: 255, G: 0, B: 0},
		Background: &bg,
	}
	sgr := s.sgr(style)
	if !containsCode(sgr, "91") {
		t.Errorf("expected bright red foreground 91 in %q", sgr)
	}
	if !containsCode(sgr, "40") {
		t.Errorf("expected black background 40 in %q", sgr)
	}
}

func containsCode(sgr, code string) bool {
	for _, part := range strings.Split(sgr, ";") {
		if part == code {
			return true
		}
	}
	// Truecolor codes span multiple parts.
	return strings.Contains(sgr, code)
}

func TestNearestANSI(t *testing.T) {
	tests := []struct {
		rgb  platen.RGB
		want int
	}{
		{platen.RGB{R: 0, G: 0, B: 0}, 0},
		{platen.RGB{R: 255, G: 0, B: 0}, 9},
		{platen.RGB{R: 128, G: 0, B: 0}, 1},
		{platen.RGB{R: 255, G: 255, B: 255}, 15},
		{platen.RGB{R: 200, G: 200, B: 200}, 7},
	}
	for _, tt := range tests {
		if got := nearestANSI(tt.rgb); got != tt.want {
			t.Errorf("nearestANSI(%v): expected %d, got %d", tt.rgb, tt.want, got)
		}
	}
}

func TestColorCodes(t *testing.T) {
	if got := foregroundCode(1); got != "31" {
		t.Errorf("expected 31, got %s", got)
	}
	if got := foregroundCode(9); got != "91" {
		t.Errorf("expected 91, got %s", got)
	}
	if got := backgroundCode(7); got != "47" {
		t.Errorf("expected 47, got %s", got)
	}
	if got := backgroundCode(15); got != "107" {
		t.Errorf("expected 107, got %s", got)
	}
}

package platen

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNewBackendValidation(t *testing.T) {
	if _, err := NewBackend(nil, &FixedEnvironment{}); err == nil {
		t.Error("nil surface should fail construction")
	}
	if _, err := NewBackend(NewNullSurface(), nil); err == nil {
		t.Error("nil environment should fail construction")
	}
}

func TestBackendSizeQuirk(t *testing.T) {
	b, _, _ := testBackend(t)
	cols, rows := b.Size()
	if cols != 7 || rows != 3 {
		t.Errorf("expected (7, 3) for an 8x4 grid, got (%d, %d)", cols, rows)
	}
}

func TestBackendFallbackDims(t *testing.T) {
	b, err := NewBackend(NewNullSurface(), &FixedEnvironment{})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	cols, rows := b.Size()
	if cols != 119 || rows != 119 {
		t.Errorf("expected quirky fallback (119, 119), got (%d, %d)", cols, rows)
	}
}

func TestBackendClear(t *testing.T) {
	b, _, _ := testBackend(t)

	if err := b.Draw([]CellUpdate{{Col: 2, Row: 2, Cell: Cell{Glyph: "x"}}}); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if err := b.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := b.current.CellAt(2, 2); got != DefaultCell() {
		t.Errorf("clear should blank the current frame, got %+v", got)
	}
}

func TestBackendDrawOutsideHeightFails(t *testing.T) {
	b, _, _ := testBackend(t)
	if err := b.Draw([]CellUpdate{{Col: 0, Row: 99, Cell: DefaultCell()}}); err == nil {
		t.Error("drawing past the fixed height should fail")
	}
}

func TestBackendUnsupportedOperations(t *testing.T) {
	b, _, _ := testBackend(t)

	if err := b.ShowCursor(); err != nil {
		t.Errorf("show cursor should be a no-op, got %v", err)
	}
	if err := b.HideCursor(); err != nil {
		t.Errorf("hide cursor should be a no-op, got %v", err)
	}
	if _, _, err := b.CursorPosition(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("cursor position should be unsupported, got %v", err)
	}
	if err := b.SetCursorPosition(0, 0); !errors.Is(err, ErrUnsupported) {
		t.Errorf("set cursor position should be unsupported, got %v", err)
	}
	if _, err := b.WindowSize(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("window size should be unsupported, got %v", err)
	}
}

func TestBackendOnKey(t *testing.T) {
	b, surface, _ := testBackend(t)

	var keys []string
	if err := b.OnKey(func(key string) { keys = append(keys, key) }); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	surface.PressKey("ArrowUp")
	surface.PressKey("q")
	if len(keys) != 2 || keys[0] != "ArrowUp" || keys[1] != "q" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestBackendOnKeyUnsupported(t *testing.T) {
	// A surface without the KeyInput capability.
	surface := struct{ Surface }{NewNullSurface()}
	env := &FixedEnvironment{WindowWidth: 80, WindowHeight: 80, ScreenWidth: 1000, ScreenHeight: 800}
	b, err := NewBackend(surface, env)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if err := b.OnKey(func(string) {}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

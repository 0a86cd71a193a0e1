package platen

import "github.com/pkg/errors"

// RenderBackend is the rendering-backend contract the terminal front
// end drives. Backend satisfies it; tests substitute recorders.
type RenderBackend interface {
	// Draw layers a stream of cell updates onto the backend's current frame.
	Draw(updates []CellUpdate) error

	// Clear resets the backend's current frame to blank.
	Clear() error

	// Size returns the drawable dimensions.
	Size() (cols, rows int)

	// Flush renders the current frame to the surface.
	Flush() error

	// Cursor operations. This engine renders no cursor; show/hide are
	// no-ops and the position queries fail with ErrUnsupported.
	ShowCursor() error
	HideCursor() error
	CursorPosition() (col, row int, err error)
	SetCursorPosition(col, row int) error

	// WindowSize fails with ErrUnsupported.
	WindowSize() (WindowSize, error)
}

var _ RenderBackend = (*Backend)(nil)

// Frame is the per-tick draw handle passed to the render callback. It
// writes into the terminal's back buffer; nothing reaches the backend
// until the tick's flush.
type Frame struct {
	buf *ScreenBuffer
}

// Size returns the frame dimensions.
func (f *Frame) Size() (cols, rows int) {
	return f.buf.Size()
}

// SetCell paints one cell.
func (f *Frame) SetCell(x, y int, cell Cell) {
	f.buf.SetCell(x, y, cell)
}

// SetString paints a string one rune per cell starting at (x, y).
func (f *Frame) SetString(x, y int, s string, fg, bg Color, mods Modifier) {
	f.buf.SetString(x, y, s, fg, bg, mods)
}

// Fill paints every cell of the frame.
func (f *Frame) Fill(cell Cell) {
	f.buf.Fill(cell)
}

// Terminal is the front end tying frames to a rendering backend: it
// owns the double buffer, emits changed-cell streams to the backend,
// and exposes the tick operations the frame pump sequences.
type Terminal struct {
	backend RenderBackend
	buf     *ScreenBuffer
}

// NewTerminal creates a terminal sized to the backend's drawable area.
func NewTerminal(backend RenderBackend) (*Terminal, error) {
	if backend == nil {
		return nil, errors.New("platen: nil backend")
	}
	cols, rows := backend.Size()
	if cols <= 0 || rows <= 0 {
		return nil, errors.Errorf("platen: unusable backend size %dx%d", cols, rows)
	}
	return &Terminal{backend: backend, buf: NewScreenBuffer(cols, rows)}, nil
}

// Backend returns the terminal's rendering backend.
func (t *Terminal) Backend() RenderBackend {
	return t.backend
}

// GetFrame returns the draw handle for the current tick.
func (t *Terminal) GetFrame() *Frame {
	return &Frame{buf: t.buf}
}

// Autoresize re-reads the backend size and resizes the double buffer
// on mismatch. Backend dimensions are fixed for the session, so in
// practice this settles on the first call and stays a no-op.
func (t *Terminal) Autoresize() error {
	cols, rows := t.backend.Size()
	if cols <= 0 || rows <= 0 {
		return errors.Errorf("platen: unusable backend size %dx%d", cols, rows)
	}
	t.buf.Resize(cols, rows)
	return nil
}

// Flush sends the back buffer's pending changes to the backend as a
// cell-update stream.
func (t *Terminal) Flush() error {
	updates := t.buf.Diff()
	if len(updates) == 0 {
		return nil
	}
	return errors.Wrap(t.backend.Draw(updates), "platen: draw")
}

// SwapBuffers promotes the back buffer. Call once the tick's flush has
// reached the backend.
func (t *Terminal) SwapBuffers() {
	t.buf.Swap()
}

// Draw runs one full tick: autoresize, hand the frame to the render
// callback, flush pending writes to the backend, swap, then flush the
// backend itself so the surface is mutated. Any error aborts the tick
// and propagates.
func (t *Terminal) Draw(render func(*Frame)) error {
	if err := t.Autoresize(); err != nil {
		return err
	}
	render(t.GetFrame())
	if err := t.Flush(); err != nil {
		return err
	}
	t.SwapBuffers()
	return errors.Wrap(t.backend.Flush(), "platen: flush backend")
}

package platen

import "github.com/pkg/errors"

// CellUpdate is one paint instruction: place a cell at a grid
// position. The terminal front end emits a stream of these per draw
// call, covering only the cells that changed since its last flush.
type CellUpdate struct {
	Col, Row int
	Cell     Cell
}

// WindowSize describes the host window in cells and pixels. The
// backend cannot answer it (character-grid layout needs no pixel
// geometry), so WindowSize queries fail with ErrUnsupported.
type WindowSize struct {
	Cols, Rows              int
	PixelWidth, PixelHeight int
}

// Backend renders draw streams onto a persistent node surface. It
// keeps the current and previous frame grids, builds the surface tree
// exactly once on the first flush, and afterwards mutates only the
// nodes whose cells changed.
//
// A Backend is owned by a single rendering session on the host's UI
// thread; none of its methods are safe for concurrent use.
type Backend struct {
	surface Surface
	env     Environment

	current  *Grid
	previous *Grid

	// Flat node index parallel to the grid at first build:
	// nodes[row*stride+col]. Built once, never rebuilt; a resized grid
	// would go stale, which is why dimensions are fixed for the session.
	// A row lazily grown past the stride makes the index alias into the
	// following row's nodes; draw streams stay inside the drawable area
	// reported by Size, which never reaches the stride.
	nodes  []Leaf
	stride int

	cols, rows  int
	initialized bool
}

// NewBackend creates a backend rendering to the given surface. The
// grid dimensions are computed from the environment once, here, and
// stay fixed for the session.
func NewBackend(surface Surface, env Environment) (*Backend, error) {
	if surface == nil {
		return nil, errors.New("platen: nil surface")
	}
	if env == nil {
		return nil, errors.New("platen: nil environment")
	}
	cols, rows := gridDims(env)
	return &Backend{
		surface:  surface,
		env:      env,
		current:  NewGrid(cols, rows),
		previous: NewGrid(cols, rows),
		cols:     cols,
		rows:     rows,
	}, nil
}

// Draw layers a stream of cell updates onto the current frame.
func (b *Backend) Draw(updates []CellUpdate) error {
	for _, u := range updates {
		if err := b.current.Paint(u.Col, u.Row, u.Cell); err != nil {
			return err
		}
	}
	return nil
}

// Clear discards the current frame and reinitializes a blank grid at
// the session dimensions.
func (b *Backend) Clear() error {
	b.current = NewGrid(b.cols, b.rows)
	return nil
}

// Size returns the drawable dimensions the front end may address.
// See Grid.Size for the reported values.
func (b *Backend) Size() (cols, rows int) {
	return b.current.Size()
}

// Flush renders the current frame to the surface: the first call
// builds the node tree, every later call diffs against the previous
// frame and mutates only changed nodes. Identical frames mutate
// nothing. Errors are fatal to the tick and leave the previous frame
// untouched so the failed tick is not silently absorbed.
func (b *Backend) Flush() error {
	if !b.initialized {
		if err := b.buildSurface(); err != nil {
			return err
		}
		b.previous = b.current.Clone()
		b.initialized = true
	}

	if !b.current.Equal(b.previous) {
		if err := b.updateSurface(); err != nil {
			return err
		}
	}
	b.previous = b.current.Clone()

	if c, ok := b.surface.(Committer); ok {
		if err := c.Commit(); err != nil {
			return errors.Wrap(err, "platen: commit surface")
		}
	}
	return nil
}

// OnKey registers a key-down handler with the surface's input
// capability. The handler receives the textual key identifier and is
// invoked on the host UI thread for the life of the session; there is
// no unregistration. Returns ErrUnsupported when the surface has no
// input subsystem.
func (b *Backend) OnKey(handler func(key string)) error {
	ki, ok := b.surface.(KeyInput)
	if !ok {
		return errors.Wrap(ErrUnsupported, "key input")
	}
	ki.OnKey(handler)
	return nil
}

// ShowCursor is a no-op: this backend has no visible cursor.
func (b *Backend) ShowCursor() error { return nil }

// HideCursor is a no-op: this backend has no visible cursor.
func (b *Backend) HideCursor() error { return nil }

// CursorPosition fails with ErrUnsupported; no caller is expected to
// need a cursor on a cursorless surface.
func (b *Backend) CursorPosition() (col, row int, err error) {
	return 0, 0, errors.Wrap(ErrUnsupported, "cursor position")
}

// SetCursorPosition fails with ErrUnsupported.
func (b *Backend) SetCursorPosition(col, row int) error {
	return errors.Wrap(ErrUnsupported, "set cursor position")
}

// WindowSize fails with ErrUnsupported; character-grid layout never
// consults pixel geometry after construction.
func (b *Backend) WindowSize() (WindowSize, error) {
	return WindowSize{}, errors.Wrap(ErrUnsupported, "window size")
}

// styleFor resolves a cell's style under the environment's current
// mode. The mode is re-queried on every call.
func (b *Backend) styleFor(cell Cell) Style {
	return ResolveStyle(cell, b.env.Mode())
}

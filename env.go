package platen

import "github.com/pkg/errors"

// Environment is the injected read-only capability for ambient host
// queries: document color mode, window and screen metrics, and the
// title primitive. Injecting it keeps the sizing and color logic
// deterministic under test; host packages provide real
// implementations.
type Environment interface {
	// Mode returns the current light/dark preference. Called once per
	// style resolution, never cached.
	Mode() Mode

	// WindowSize returns the window/viewport inner dimensions in pixels.
	WindowSize() (width, height int, err error)

	// ScreenSize returns the physical screen dimensions in pixels.
	ScreenSize() (width, height int, err error)

	// SetTitle sets the host document or window title.
	SetTitle(title string)
}

// Pixel-to-cell ratios for the viewport sizing heuristic.
const (
	handheldMaxScreenWidth = 550

	cellWidthPx          = 10
	cellHeightPx         = 20
	handheldCellHeightPx = 19

	fallbackCols = 120
	fallbackRows = 120
)

// isHandheld reports whether the device should use the handheld sizing
// branch: a physical screen narrower than 550 device pixels. A metric
// read failure selects the desktop branch.
func isHandheld(env Environment) bool {
	w, _, err := env.ScreenSize()
	return err == nil && w < handheldMaxScreenWidth
}

// gridDims translates the host's physical metrics into a character
// grid size. Handheld devices size against the physical screen with a
// tighter row ratio; everything else sizes against the window
// viewport. Any failure to read metrics falls back to a fixed
// 120x120 grid. Runs exactly once, at backend construction: the grid's
// dimensions are fixed for the session and rotation or resize is not
// reflected.
func gridDims(env Environment) (cols, rows int) {
	var w, h int
	var err error

	if isHandheld(env) {
		w, h, err = env.ScreenSize()
		if err != nil {
			return fallbackCols, fallbackRows
		}
		return w / cellWidthPx, h / handheldCellHeightPx
	}

	w, h, err = env.WindowSize()
	if err != nil {
		return fallbackCols, fallbackRows
	}
	return w / cellWidthPx, h / cellHeightPx
}

// FixedEnvironment is an Environment with constant metrics. It backs
// headless use and tests; host packages supply live implementations.
type FixedEnvironment struct {
	Dark         bool
	WindowWidth  int
	WindowHeight int
	ScreenWidth  int
	ScreenHeight int

	// Title records the last SetTitle call.
	Title string
}

func (e *FixedEnvironment) Mode() Mode {
	return Mode{Dark: e.Dark}
}

func (e *FixedEnvironment) WindowSize() (int, int, error) {
	if e.WindowWidth <= 0 || e.WindowHeight <= 0 {
		return 0, 0, errors.New("platen: window metrics unavailable")
	}
	return e.WindowWidth, e.WindowHeight, nil
}

func (e *FixedEnvironment) ScreenSize() (int, int, error) {
	if e.ScreenWidth <= 0 || e.ScreenHeight <= 0 {
		return 0, 0, errors.New("platen: screen metrics unavailable")
	}
	return e.ScreenWidth, e.ScreenHeight, nil
}

func (e *FixedEnvironment) SetTitle(title string) {
	e.Title = title
}

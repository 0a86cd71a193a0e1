package platentcell

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Assumed cell footprint of the screen. The backend divides window
// pixels back down by the same ratios, so the grid always matches the
// screen's column and row count exactly.
const (
	screenCellWidthPx  = 10
	screenCellHeightPx = 20
)

// Environment reports metrics from a tcell screen. The physical
// screen size is unknown, so ScreenSize always errors and sizing falls
// through to the window branch.
type Environment struct {
	screen tcell.Screen
	dark   bool
}

// NewEnvironment creates an environment bound to the screen. dark
// selects the rendering mode.
func NewEnvironment(screen tcell.Screen, dark bool) *Environment {
	return &Environment{screen: screen, dark: dark}
}

func (e *Environment) Mode() platen.Mode {
	return platen.Mode{Dark: e.dark}
}

func (e *Environment) WindowSize() (int, int, error) {
	cols, rows := e.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0, errors.New("platentcell: screen not initialized")
	}
	return cols * screenCellWidthPx, rows * screenCellHeightPx, nil
}

func (e *Environment) ScreenSize() (int, int, error) {
	return 0, 0, errors.New("platentcell: physical screen size unknown")
}

func (e *Environment) SetTitle(title string) {
	e.screen.SetTitle(title)
}

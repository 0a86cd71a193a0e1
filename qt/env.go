package platenqt

import (
	"github.com/mappu/miqt/qt"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Environment reads ambient metrics from Qt: window size, primary
// screen size, and a dark-mode guess from the application palette.
type Environment struct {
	win  *qt.QWidget
	dark *bool
}

// NewEnvironment creates an environment bound to the given window
// widget. The window must be sized before metrics are read. A non-nil
// dark overrides palette detection.
func NewEnvironment(win *qt.QWidget, dark *bool) *Environment {
	return &Environment{win: win, dark: dark}
}

func (e *Environment) Mode() platen.Mode {
	if e.dark != nil {
		return platen.Mode{Dark: *e.dark}
	}
	pal := qt.QGuiApplication_Palette()
	window := pal.Color2(qt.QPalette__Window)
	// Perceived luminance of the window background decides the mode.
	lum := 299*window.Red() + 587*window.Green() + 114*window.Blue()
	return platen.Mode{Dark: lum < 128000}
}

func (e *Environment) WindowSize() (int, int, error) {
	win := e.win.Window()
	w, h := win.Width(), win.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("platenqt: window not sized")
	}
	return w, h, nil
}

func (e *Environment) ScreenSize() (int, int, error) {
	screen := qt.QGuiApplication_PrimaryScreen()
	if screen == nil {
		return 0, 0, errors.New("platenqt: no primary screen")
	}
	geo := screen.Geometry()
	return geo.Width(), geo.Height(), nil
}

func (e *Environment) SetTitle(title string) {
	e.win.Window().SetWindowTitle(title)
}

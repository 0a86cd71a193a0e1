package platengtk

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/pkg/errors"

	"github.com/mvickers/platen"
)

// Environment reads ambient metrics from GTK: window inner size,
// physical screen size, and the application dark-theme preference.
type Environment struct {
	win  *gtk.Window
	dark *bool
}

// NewEnvironment creates an environment bound to the given window.
// A non-nil dark overrides theme detection.
func NewEnvironment(win *gtk.Window, dark *bool) *Environment {
	return &Environment{win: win, dark: dark}
}

func (e *Environment) Mode() platen.Mode {
	if e.dark != nil {
		return platen.Mode{Dark: *e.dark}
	}
	settings, err := gtk.SettingsGetDefault()
	if err != nil {
		return platen.Mode{}
	}
	v, err := settings.GetProperty("gtk-application-prefer-dark-theme")
	if err != nil {
		return platen.Mode{}
	}
	dark, _ := v.(bool)
	return platen.Mode{Dark: dark}
}

func (e *Environment) WindowSize() (int, int, error) {
	w, h := e.win.GetSize()
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("platengtk: window not realized")
	}
	return w, h, nil
}

func (e *Environment) ScreenSize() (int, int, error) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil {
		return 0, 0, errors.Wrap(err, "platengtk: default screen")
	}
	return screen.GetWidth(), screen.GetHeight(), nil
}

func (e *Environment) SetTitle(title string) {
	e.win.SetTitle(title)
}

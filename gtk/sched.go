package platengtk

import "github.com/gotk3/gotk3/glib"

// Scheduler queues a single callback on the GLib main loop after
// Interval milliseconds. An Interval of zero defaults to 16ms.
type Scheduler struct {
	Interval uint
}

func (s Scheduler) Schedule(fn func()) {
	interval := s.Interval
	if interval == 0 {
		interval = 16
	}
	glib.TimeoutAdd(interval, func() bool {
		fn()
		return false
	})
}

package platenqt

import "github.com/mappu/miqt/qt"

// Scheduler queues a single callback on the Qt main loop using a
// restartable single-shot QTimer.
type Scheduler struct {
	timer    *qt.QTimer
	interval int
	fn       func()
}

// NewScheduler creates a scheduler parented to the given widget. An
// interval of zero defaults to 16ms.
func NewScheduler(parent *qt.QWidget, interval int) *Scheduler {
	if interval <= 0 {
		interval = 16
	}
	s := &Scheduler{
		timer:    qt.NewQTimer2(parent.QObject),
		interval: interval,
	}
	s.timer.SetSingleShot(true)
	s.timer.OnTimeout(func() {
		if fn := s.fn; fn != nil {
			s.fn = nil
			fn()
		}
	})
	return s
}

func (s *Scheduler) Schedule(fn func()) {
	s.fn = fn
	s.timer.Start(s.interval)
}

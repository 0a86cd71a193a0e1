package cli

import "time"

// Scheduler queues a single callback on a timer goroutine. Ticks are
// chained one at a time by the frame pump, so callbacks never overlap.
type Scheduler struct {
	Interval time.Duration
}

func (s Scheduler) Schedule(fn func()) {
	interval := s.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	time.AfterFunc(interval, fn)
}

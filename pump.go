package platen

import "sync"

// Scheduler is the host's "schedule next tick" primitive: it arranges
// for fn to run once on the host UI thread at the next tick (display
// refresh, timer expiry, idle slot). The pump reschedules itself
// through it indefinitely.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

func (s SchedulerFunc) Schedule(fn func()) { s(fn) }

type pumpState int

const (
	pumpIdle pumpState = iota
	pumpRunning
	pumpStopped
)

// Pump drives the render loop: once started, each tick runs the full
// draw sequence against the terminal and reschedules the next tick.
// The first error from any tick halts rescheduling and is retained.
//
// Drawing happens inside the scheduled callbacks, which the chaining
// guarantees never overlap. The control methods (Start, Stop, Running,
// Err) are safe to call from any goroutine: timer-backed schedulers
// deliver ticks off the caller's goroutine, so state transitions are
// mutex-guarded.
type Pump struct {
	term   *Terminal
	sched  Scheduler
	render func(*Frame)

	mu    sync.Mutex
	state pumpState
	err   error
}

// NewPump creates a pump in the idle state.
func NewPump(term *Terminal, sched Scheduler, render func(*Frame)) *Pump {
	if term == nil || sched == nil || render == nil {
		panic("platen: pump requires a terminal, scheduler and render callback")
	}
	return &Pump{term: term, sched: sched, render: render}
}

// Start schedules the first tick. Starting an already running or
// stopped pump does nothing.
func (p *Pump) Start() {
	p.mu.Lock()
	if p.state != pumpIdle {
		p.mu.Unlock()
		return
	}
	p.state = pumpRunning
	p.mu.Unlock()
	p.sched.Schedule(p.tick)
}

// Stop prevents any further ticks from running. A tick already
// scheduled becomes a no-op when it fires. The host discarding its
// scheduling handle has the same effect; Stop just makes it explicit.
func (p *Pump) Stop() {
	p.mu.Lock()
	if p.state == pumpRunning {
		p.state = pumpStopped
	}
	p.mu.Unlock()
}

// Running reports whether the pump will keep rescheduling.
func (p *Pump) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == pumpRunning
}

// Err returns the error that halted the pump, if any.
func (p *Pump) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Pump) tick() {
	p.mu.Lock()
	if p.state != pumpRunning {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	err := p.term.Draw(p.render)

	p.mu.Lock()
	if p.state != pumpRunning {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.err = err
		p.state = pumpStopped
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.sched.Schedule(p.tick)
}

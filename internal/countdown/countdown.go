// Package countdown produces a live, 1-second-resolution stream of
// remaining-duration values toward a fixed target instant.
//
// Each tick is recomputed from the wall clock rather than decremented, so
// the countdown stays correct across clock adjustments or process
// suspension. A presenter runs at most one countdown at a time.
package countdown

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidTarget reports a target that is not a valid instant.
var ErrInvalidTarget = errors.New("invalid countdown target")

// Tick is one emission of the countdown stream.
type Tick struct {
	Hours   int
	Minutes int
	Seconds int
	Total   int // whole seconds remaining
}

// ShowHours reports whether the hours field should be rendered.
func (t Tick) ShowHours() bool { return t.Hours > 0 }

// ShowMinutes reports whether the minutes field should be rendered.
func (t Tick) ShowMinutes() bool { return t.Hours > 0 || t.Minutes > 0 }

// Split breaks a whole-second remainder into hour/minute/second parts.
// Negative input is clamped to zero.
func Split(total int) Tick {
	if total < 0 {
		total = 0
	}
	return Tick{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
		Total:   total,
	}
}

// Remaining computes the whole seconds from now until target, floored.
func Remaining(target, now time.Time) int {
	d := target.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Presenter runs countdowns. The zero value is ready to use.
type Presenter struct {
	mu   sync.Mutex
	stop chan struct{}
}

// New creates a countdown presenter.
func New() *Presenter {
	return &Presenter{}
}

// Start begins a countdown toward target, cancelling any countdown already
// running on this presenter. It returns the tick stream and a done signal:
//
//   - ticks emits immediately, then once per second; values never go
//     negative, and the final value before the stream closes is exactly 0.
//   - done closes only when the countdown reaches zero on its own. A
//     countdown ended by Stop (or by a later Start) closes ticks without
//     closing done.
func (p *Presenter) Start(target time.Time) (<-chan Tick, <-chan struct{}, error) {
	if target.IsZero() {
		return nil, nil, ErrInvalidTarget
	}

	p.Stop()

	p.mu.Lock()
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	ticks := make(chan Tick)
	done := make(chan struct{})
	go p.run(target, stop, ticks, done)

	return ticks, done, nil
}

// Stop cancels the active countdown, if any. It is idempotent and safe to
// call when nothing is running.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

func (p *Presenter) run(target time.Time, stop chan struct{}, ticks chan Tick, done chan struct{}) {
	defer close(ticks)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		remaining := Remaining(target, time.Now())
		if remaining <= 0 {
			select {
			case ticks <- Split(0):
			case <-stop:
				return
			}
			close(done)
			return
		}

		select {
		case ticks <- Split(remaining):
		case <-stop:
			return
		}

		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

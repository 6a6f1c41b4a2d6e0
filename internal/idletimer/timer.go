package idletimer

import (
	"sync"
	"time"

	"totem/pkg/logger"
)

// Timer is the kiosk idle countdown. It stays disarmed until the visitor has
// seen the last generated ticket, then counts down once per tick interval.
// Any interaction resets the remaining count without disarming; reaching
// zero fires the expire callback exactly once and the owning screen's
// navigation tears the timer down.
type Timer struct {
	mu       sync.Mutex
	start    int
	interval time.Duration
	onExpire func()
	log      *logger.Logger

	armed     bool
	remaining int
	done      chan struct{}
}

// New creates a disarmed timer. onExpire runs outside the timer's lock on
// the countdown goroutine.
func New(start int, interval time.Duration, onExpire func(), log *logger.Logger) *Timer {
	return &Timer{
		start:    start,
		interval: interval,
		onExpire: onExpire,
		log:      log,
	}
}

// Arm starts the countdown. Arming an already armed timer is a no-op, so
// re-visiting the last ticket changes nothing.
func (t *Timer) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.armed {
		return
	}

	t.armed = true
	t.remaining = t.start
	t.done = make(chan struct{})
	go t.run(t.done)

	if t.log != nil {
		t.log.Info("idle timer armed")
	}
}

// Touch resets the remaining count to the full countdown. Only meaningful
// while armed; it never disarms.
func (t *Timer) Touch() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.armed {
		t.remaining = t.start
	}
}

// Stop tears the countdown down deterministically. Safe when disarmed.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return
	}

	t.armed = false
	close(t.done)
	t.done = nil
}

// Armed reports whether the countdown is running.
func (t *Timer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Remaining returns the current countdown value.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) run(done chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if t.tick() {
				t.onExpire()
			}
		case <-done:
			return
		}
	}
}

// tick decrements by exactly one and reports whether the countdown expired.
// The counter reinitializes on expiry; the subsequent navigation away from
// the screen is what actually stops the timer.
func (t *Timer) tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return false
	}

	t.remaining--
	if t.remaining <= 0 {
		t.remaining = t.start
		return true
	}
	return false
}

package game

import "time"

// Ticker is a periodic timer driven by the frame clock. It only accumulates
// time while started, so a stopped ticker can never fire.
type Ticker struct {
	period  time.Duration
	acc     time.Duration
	running bool
}

// NewTicker creates a stopped ticker.
func NewTicker(period time.Duration) Ticker {
	return Ticker{period: period}
}

// Start (re)starts the ticker with an empty period.
func (t *Ticker) Start() {
	t.acc = 0
	t.running = true
}

// Stop halts the ticker and drops any partial period.
func (t *Ticker) Stop() {
	t.acc = 0
	t.running = false
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	return t.running
}

// Advance adds dt and returns how many full periods elapsed.
func (t *Ticker) Advance(dt time.Duration) int {
	if !t.running || t.period <= 0 {
		return 0
	}
	t.acc += dt
	n := int(t.acc / t.period)
	t.acc -= time.Duration(n) * t.period
	return n
}

package game

import "time"

// Step is one timed phase of a scripted sequence.
type Step struct {
	Label    string
	Phrase   string
	Duration time.Duration
}

// Sequence advances strictly in order through its steps. The first step is
// entered on creation.
type Sequence struct {
	steps   []Step
	idx     int
	elapsed time.Duration
}

// NewSequence creates a sequence positioned at its first step.
func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Current returns the active step; ok is false once the sequence is done.
func (q *Sequence) Current() (step Step, ok bool) {
	if q.Done() {
		return Step{}, false
	}
	return q.steps[q.idx], true
}

// Elapsed returns the time spent in the active step.
func (q *Sequence) Elapsed() time.Duration {
	return q.elapsed
}

// Done reports whether every step has elapsed.
func (q *Sequence) Done() bool {
	return q.idx >= len(q.steps)
}

// Advance moves time forward and returns the steps entered along the way, in order.
func (q *Sequence) Advance(dt time.Duration) []Step {
	if q.Done() {
		return nil
	}
	var entered []Step
	q.elapsed += dt
	for !q.Done() && q.elapsed >= q.steps[q.idx].Duration {
		q.elapsed -= q.steps[q.idx].Duration
		q.idx++
		if !q.Done() {
			entered = append(entered, q.steps[q.idx])
		}
	}
	if q.Done() {
		q.elapsed = 0
	}
	return entered
}

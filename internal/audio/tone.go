package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is one note of a cue: a sine sweep from one frequency to another.
type tone struct {
	from, to float64 // Hz
	dur      time.Duration
	volume   float64
}

// Cue recipes, keyed by sound asset name.
var recipes = map[string][]tone{
	"hit":     {{from: 660, to: 880, dur: 60 * time.Millisecond, volume: 0.25}},
	"gasp":    {{from: 520, to: 180, dur: 220 * time.Millisecond, volume: 0.3}},
	"cleared": {{from: 523, to: 523, dur: 90 * time.Millisecond, volume: 0.25}, {from: 659, to: 659, dur: 90 * time.Millisecond, volume: 0.25}, {from: 784, to: 784, dur: 160 * time.Millisecond, volume: 0.25}},
	"warning": {{from: 880, to: 880, dur: 120 * time.Millisecond, volume: 0.2}, {from: 0, to: 0, dur: 80 * time.Millisecond}, {from: 880, to: 880, dur: 120 * time.Millisecond, volume: 0.2}},
	"win":     {{from: 523, to: 523, dur: 150 * time.Millisecond, volume: 0.25}, {from: 784, to: 784, dur: 150 * time.Millisecond, volume: 0.25}, {from: 1047, to: 1047, dur: 400 * time.Millisecond, volume: 0.25}},
	"over":    {{from: 392, to: 196, dur: 700 * time.Millisecond, volume: 0.3}},
}

// Countdown narration is rendered as pitched blips.
var phrases = map[string]tone{
	"3":   {from: 440, to: 440, dur: 150 * time.Millisecond, volume: 0.2},
	"2":   {from: 440, to: 440, dur: 150 * time.Millisecond, volume: 0.2},
	"1":   {from: 440, to: 440, dur: 150 * time.Millisecond, volume: 0.2},
	"Go!": {from: 880, to: 880, dur: 300 * time.Millisecond, volume: 0.25},
}

// ToneGenerator streams a single enveloped sine sweep and then ends.
type ToneGenerator struct {
	sr    beep.SampleRate
	t     tone
	pos   int
	total int
	phase float64
}

func newToneGenerator(sr beep.SampleRate, t tone) *ToneGenerator {
	return &ToneGenerator{sr: sr, t: t, total: sr.N(t.dur)}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.t.from + (g.t.to-g.t.from)*progress

		// Short attack and release to avoid clicks
		env := math.Min(math.Min(progress/0.05, (1-progress)/0.1), 1)

		g.phase += 2 * math.Pi * freq / float64(g.sr)
		sample := g.t.volume * env * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// streamerFor builds the sequenced streamer for a list of tones.
func streamerFor(sr beep.SampleRate, tones []tone) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, newToneGenerator(sr, t))
	}
	return beep.Seq(parts...)
}

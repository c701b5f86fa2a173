package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/speedpong/internal/game"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager synthesizes cue sounds and plays them through the system speaker.
// Every method is safe to call before Initialize; cues are then dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every playing cue.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues the sound for ev on the mixer.
func (sm *SoundManager) Play(ev game.Event) {
	tones := tonesFor(ev)
	if len(tones) == 0 {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamerFor(sampleRate, tones))
	speaker.Unlock()
}

func tonesFor(ev game.Event) []tone {
	if ev.Asset != "" {
		return recipes[ev.Asset]
	}
	if t, ok := phrases[ev.Phrase]; ok {
		return []tone{t}
	}
	return nil
}

package game

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/input"
	"github.com/tomz197/speedpong/internal/physics"
)

func newTestGame(seed uint64) *GameState {
	return New(Options{Rand: rand.New(rand.NewPCG(seed, 1))})
}

// running returns a game in the running phase with the ball parked at pos.
func running(t *testing.T, pos, vel physics.Vec) *GameState {
	t.Helper()
	s := newTestGame(1)
	s.beginPlay()
	s.skipTick = false
	s.events = nil
	s.Ball.Pos = pos
	s.Ball.Vel = vel
	return s
}

func cues(events []Event) []Cue {
	out := make([]Cue, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Cue)
	}
	return out
}

func hasCue(events []Event, c Cue) bool {
	for _, ev := range events {
		if ev.Cue == c {
			return true
		}
	}
	return false
}

func TestNewRoundDefaults(t *testing.T) {
	s := newTestGame(7)
	if s.Phase != PhaseCountdown || s.Running || s.Ball != nil {
		t.Fatalf("new game: phase %v running %v ball %v", s.Phase, s.Running, s.Ball)
	}
	if s.Score != 0 || s.Seconds != config.InitialSeconds || s.LoopCount != 0 {
		t.Fatalf("round counters: score %d seconds %d loop %d", s.Score, s.Seconds, s.LoopCount)
	}
	if s.Paddle.Y != 525 || s.Mirror.Y != 495 {
		t.Fatalf("paddle %v mirror %v, want 525 and 495", s.Paddle.Y, s.Mirror.Y)
	}
}

func TestCountdownSequence(t *testing.T) {
	s := newTestGame(3)

	var phrases []string
	collect := func(events []Event) {
		for _, ev := range events {
			if ev.Cue == CueCountdown {
				phrases = append(phrases, ev.Phrase)
			}
		}
	}

	events, err := s.Tick(0, input.IntentNone)
	if err != nil {
		t.Fatal(err)
	}
	collect(events)
	for i := 0; i < 4; i++ {
		if s.Phase != PhaseCountdown {
			t.Fatalf("phase %v after %d s, want countdown", s.Phase, i)
		}
		events, err = s.Tick(time.Second, input.IntentNone)
		if err != nil {
			t.Fatal(err)
		}
		collect(events)
	}

	want := []string{"3", "2", "1", "Go!"}
	if len(phrases) != len(want) {
		t.Fatalf("phrases %v, want %v", phrases, want)
	}
	for i := range want {
		if phrases[i] != want[i] {
			t.Fatalf("phrases %v, want %v", phrases, want)
		}
	}

	if s.Phase != PhaseRunning || !s.Running || s.Ball == nil {
		t.Fatalf("after countdown: phase %v running %v ball %v", s.Phase, s.Running, s.Ball)
	}
	if s.Ball.Pos != (physics.Vec{X: 60, Y: s.EntryY}) {
		t.Fatalf("ball spawned at %v, want (60, %v)", s.Ball.Pos, s.EntryY)
	}
	if s.Ball.Vel != (physics.Vec{X: 550, Y: 550}) {
		t.Fatalf("launch velocity %v", s.Ball.Vel)
	}

	// The first running tick only establishes dt.
	pos := s.Ball.Pos
	if _, err := s.Tick(100*time.Millisecond, input.IntentUp); err != nil {
		t.Fatal(err)
	}
	if s.Ball.Pos != pos || s.Paddle.Y != 525 {
		t.Fatalf("first running tick moved things: ball %v paddle %v", s.Ball.Pos, s.Paddle.Y)
	}
}

func TestCountdownBannerFades(t *testing.T) {
	s := newTestGame(3)
	if _, err := s.Tick(250*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Banner.Text != "3" || s.Banner.Alpha != 0.5 {
		t.Fatalf("banner %+v, want 3 at half alpha", s.Banner)
	}
	if _, err := s.Tick(500*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Banner.Alpha != 0.5 {
		t.Fatalf("fading banner alpha %v, want 0.5", s.Banner.Alpha)
	}
}

func TestTimerDecrementsSeconds(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})
	for i := 0; i < 3; i++ {
		if _, err := s.Tick(time.Second, input.IntentNone); err != nil {
			t.Fatal(err)
		}
	}
	if s.Seconds != 22 {
		t.Fatalf("seconds = %d, want 22", s.Seconds)
	}
	if _, err := s.Tick(400*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Seconds != 22 {
		t.Fatalf("partial period fired: seconds = %d", s.Seconds)
	}
}

func TestMilestoneBonus(t *testing.T) {
	tests := []struct {
		name      string
		seconds   int
		wantScore int
	}{
		{"plenty of time", 12, 13},
		{"some time", 7, 12},
		{"little time", 3, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})
			s.Score = 10
			s.Seconds = tt.seconds

			events, err := s.Tick(10*time.Millisecond, input.IntentNone)
			if err != nil {
				t.Fatal(err)
			}
			if s.Score != tt.wantScore {
				t.Fatalf("score = %d, want %d", s.Score, tt.wantScore)
			}
			if s.LoopCount != 1 || s.Seconds != 23 {
				t.Fatalf("loop %d seconds %d, want 1 and 23", s.LoopCount, s.Seconds)
			}
			if !hasCue(events, CueLevelCleared) {
				t.Fatalf("cues %v, want levelCleared", cues(events))
			}
		})
	}
}

func TestMilestoneFiresOnce(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})
	s.Score = 10
	s.milestone = 10
	events, err := s.Tick(10*time.Millisecond, input.IntentNone)
	if err != nil {
		t.Fatal(err)
	}
	if s.Score != 10 || s.LoopCount != 0 || hasCue(events, CueLevelCleared) {
		t.Fatalf("milestone refired: score %d loop %d", s.Score, s.LoopCount)
	}
}

func TestRoundEnd(t *testing.T) {
	tests := []struct {
		name      string
		ballX     float64
		score     int
		seconds   int
		high      int
		wantPhase Phase
		wantHigh  int
		wantCue   Cue
		wantText  string
	}{
		{"ball passes paddle with record", 771, 40, 12, 35, PhaseWon, 40, CueWin, "Congrats, Top Scorer!"},
		{"ball passes paddle without record", 771, 20, 12, 35, PhaseLost, 35, CueGameOver, "Game Over"},
		{"negative score", 400, -1, 12, 0, PhaseLost, 0, CueGameOver, "Game Over"},
		{"time up", 400, 0, -1, 0, PhaseLost, 0, CueGameOver, "Game Over"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := running(t, physics.Vec{X: tt.ballX, Y: 300}, physics.Vec{X: 550, Y: 0})
			s.Score = tt.score
			s.Seconds = tt.seconds
			s.HighScore = tt.high

			events, err := s.Tick(10*time.Millisecond, input.IntentNone)
			if err != nil {
				t.Fatal(err)
			}
			if s.Phase != tt.wantPhase || s.HighScore != tt.wantHigh {
				t.Fatalf("phase %v high %d, want %v %d", s.Phase, s.HighScore, tt.wantPhase, tt.wantHigh)
			}
			if s.Running || s.Ball != nil || s.timer.Running() {
				t.Fatalf("round still live: running %v ball %v timer %v", s.Running, s.Ball, s.timer.Running())
			}
			if !hasCue(events, tt.wantCue) {
				t.Fatalf("cues %v, want %v", cues(events), tt.wantCue)
			}
			if s.Banner.Text != tt.wantText {
				t.Fatalf("banner %q, want %q", s.Banner.Text, tt.wantText)
			}
		})
	}
}

func TestOutroRestartsRound(t *testing.T) {
	s := running(t, physics.Vec{X: 771, Y: 300}, physics.Vec{X: 550})
	s.Score = 12
	s.LoopCount = 1
	if _, err := s.Tick(10*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseWon {
		t.Fatalf("phase %v, want won", s.Phase)
	}

	if _, err := s.Tick(time.Second, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Seconds != 25 {
		t.Fatalf("clock ran after round end: seconds = %d", s.Seconds)
	}
	if s.Banner.Scale <= 1 || s.Banner.Alpha >= 1 {
		t.Fatalf("win banner not animating: %+v", s.Banner)
	}

	events, err := s.Tick(config.WinOutro, input.IntentNone)
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseCountdown {
		t.Fatalf("phase %v, want countdown", s.Phase)
	}
	if s.Score != 0 || s.Seconds != 25 || s.LoopCount != 0 || s.HighScore != 12 {
		t.Fatalf("new round: score %d seconds %d loop %d high %d", s.Score, s.Seconds, s.LoopCount, s.HighScore)
	}
	if len(events) == 0 || events[len(events)-1].Phrase != "3" {
		t.Fatalf("countdown did not restart: %v", events)
	}
}

func TestLostBannerSpinsAndShrinks(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})
	s.Seconds = -1
	if _, err := s.Tick(10*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(800*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Banner.Rotation < 3.14 || s.Banner.Scale >= 1 {
		t.Fatalf("banner %+v, want half a turn and shrinking", s.Banner)
	}
	if _, err := s.Tick(2*time.Second, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	if s.Banner.Rotation > 6.3 {
		t.Fatalf("banner spun past two turns: %v", s.Banner.Rotation)
	}
}

func TestTimeWarningIsOneShot(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})
	s.Seconds = 5

	var warnings int
	for i := 0; i < 3; i++ {
		events, err := s.Tick(10*time.Millisecond, input.IntentNone)
		if err != nil {
			t.Fatal(err)
		}
		for _, ev := range events {
			if ev.Cue == CueTimeWarning {
				warnings++
				if ev.Asset != "warning" {
					t.Fatalf("asset %q", ev.Asset)
				}
			}
		}
	}
	if warnings != 1 {
		t.Fatalf("warnings = %d, want 1", warnings)
	}
}

func TestPaddleHit(t *testing.T) {
	s := running(t, physics.Vec{X: 735, Y: 600}, physics.Vec{X: 550, Y: 100})
	before := s.Ball.Vel.Len()

	events, err := s.Tick(20*time.Millisecond, input.IntentNone)
	if err != nil {
		t.Fatal(err)
	}
	if s.Score != 1 || !hasCue(events, CuePaddleHit) {
		t.Fatalf("score %d cues %v", s.Score, cues(events))
	}
	if s.Ball.Vel.X != -574 {
		t.Fatalf("vx = %v, want -574", s.Ball.Vel.X)
	}
	if s.Ball.Vel.Len() < before {
		t.Fatalf("speed dropped from %v to %v", before, s.Ball.Vel.Len())
	}
}

func TestMirrorHit(t *testing.T) {
	s := running(t, physics.Vec{X: 65, Y: 600}, physics.Vec{X: -550, Y: 50})

	events, err := s.Tick(20*time.Millisecond, input.IntentNone)
	if err != nil {
		t.Fatal(err)
	}
	if s.Seconds != 22 {
		t.Fatalf("seconds = %d, want 22", s.Seconds)
	}
	if got := cues(events); len(got) != 1 || got[0] != CueMirrorHit {
		t.Fatalf("cues %v, want a single mirrorHit", got)
	}
	if events[0].Asset != "gasp" {
		t.Fatalf("asset %q", events[0].Asset)
	}
	if s.Ball.Vel.X != 574 {
		t.Fatalf("vx = %v, want 574", s.Ball.Vel.X)
	}
}

func TestWallImpulse(t *testing.T) {
	tests := []struct {
		name string
		pos  physics.Vec
		vel  physics.Vec
		want physics.Vec
	}{
		{"top moving right", physics.Vec{X: 400, Y: 1135}, physics.Vec{X: 550, Y: 550}, physics.Vec{X: 598, Y: -582}},
		{"top moving left", physics.Vec{X: 400, Y: 1135}, physics.Vec{X: -550, Y: 550}, physics.Vec{X: -598, Y: -582}},
		{"bottom moving right", physics.Vec{X: 400, Y: 65}, physics.Vec{X: 550, Y: -550}, physics.Vec{X: 598, Y: 582}},
		{"bottom moving left", physics.Vec{X: 400, Y: 65}, physics.Vec{X: -550, Y: -550}, physics.Vec{X: -598, Y: 582}},
		{"left wall", physics.Vec{X: 65, Y: 300}, physics.Vec{X: -550, Y: 550}, physics.Vec{X: 598, Y: 582}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := running(t, tt.pos, tt.vel)
			before := s.Ball.Vel.Len()
			events, err := s.Tick(20*time.Millisecond, input.IntentNone)
			if err != nil {
				t.Fatal(err)
			}
			if s.Ball.Vel != tt.want {
				t.Fatalf("velocity %v, want %v", s.Ball.Vel, tt.want)
			}
			if s.Ball.Vel.Len() < before {
				t.Fatalf("speed dropped")
			}
			if len(events) != 0 {
				t.Fatalf("wall contact produced cues %v", cues(events))
			}
		})
	}
}

func TestWallImpulseScalesWithLevel(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 1135}, physics.Vec{X: 550, Y: 550})
	s.LoopCount = 2
	if _, err := s.Tick(20*time.Millisecond, input.IntentNone); err != nil {
		t.Fatal(err)
	}
	want := physics.Vec{X: 550 + 10*8, Y: -550 - 8*8}
	if s.Ball.Vel != want {
		t.Fatalf("velocity %v, want %v", s.Ball.Vel, want)
	}
}

func TestPaddleCornerKeepsSpeed(t *testing.T) {
	// Paddle spans y 525..675 at its default position.
	tests := []struct {
		name     string
		pos, vel physics.Vec
	}{
		{"top corner", physics.Vec{X: 767.2, Y: 697.8}, physics.Vec{X: 550, Y: -550}},
		{"bottom corner", physics.Vec{X: 767.2, Y: 502.2}, physics.Vec{X: 550, Y: 550}},
		{"top corner steep", physics.Vec{X: 760, Y: 700}, physics.Vec{X: 200, Y: -700}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := running(t, tt.pos, tt.vel)
			before := s.Ball.Vel.Len()
			kind, ok := s.resolveContacts(s.bodies())
			if !ok || kind != BodyPaddle {
				t.Fatalf("fired %v %v, want paddle", kind, ok)
			}
			if after := s.Ball.Vel.Len(); after < before {
				t.Fatalf("speed dropped from %v to %v (vel %v)", before, after, s.Ball.Vel)
			}
		})
	}
}

func TestContactFiresOnlyOnBegin(t *testing.T) {
	s := running(t, physics.Vec{X: 741, Y: 600}, physics.Vec{})
	bodies := s.bodies()

	if kind, ok := s.resolveContacts(bodies); !ok || kind != BodyPaddle {
		t.Fatalf("first overlap: %v %v, want paddle contact", kind, ok)
	}
	// Still touching: no new event.
	s.Ball.Pos.X = 741
	if _, ok := s.resolveContacts(bodies); ok {
		t.Fatal("sustained contact fired again")
	}
	// Separate, then touch again.
	s.Ball.Pos.X = 700
	if _, ok := s.resolveContacts(bodies); ok {
		t.Fatal("contact without overlap")
	}
	s.Ball.Pos.X = 741
	if _, ok := s.resolveContacts(bodies); !ok {
		t.Fatal("new contact after separation did not fire")
	}
}

func TestSimultaneousContactsFireHighestPriority(t *testing.T) {
	// Overlapping the mirror and the left wall at once.
	s := running(t, physics.Vec{X: 55, Y: 600}, physics.Vec{X: -550})
	kind, ok := s.resolveContacts(s.bodies())
	if !ok || kind != BodyMirror {
		t.Fatalf("fired %v %v, want mirror", kind, ok)
	}
	if s.Ball.Vel.X <= 0 {
		t.Fatalf("ball still heading into the wall: %v", s.Ball.Vel)
	}
}

func TestMirrorFollowsPaddle(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})

	steps := []input.Intent{
		input.IntentUp, input.IntentUp, input.IntentNone, input.IntentDown,
	}
	for i := 0; i < 40; i++ {
		intent := steps[i%len(steps)]
		if i > 20 {
			intent = input.IntentUp
		}
		paddleBefore, mirrorBefore := s.Paddle.Y, s.Mirror.Y
		if _, err := s.Tick(100*time.Millisecond, intent); err != nil {
			t.Fatal(err)
		}
		s.Seconds = 20
		if d, m := s.Paddle.Y-paddleBefore, s.Mirror.Y-mirrorBefore; d != m {
			t.Fatalf("tick %d: paddle moved %v, mirror %v", i, d, m)
		}
		if s.Paddle.Y < 0 || s.Paddle.Y > config.ArenaHeight-config.PaddleHeight {
			t.Fatalf("paddle out of range: %v", s.Paddle.Y)
		}
	}
	if s.Paddle.Y != config.ArenaHeight-config.PaddleHeight {
		t.Fatalf("paddle = %v, want clamped at top", s.Paddle.Y)
	}
}

func TestTickWithoutBallFails(t *testing.T) {
	s := running(t, physics.Vec{X: 400, Y: 300}, physics.Vec{})
	s.Ball = nil
	_, err := s.Tick(10*time.Millisecond, input.IntentNone)
	if !errors.Is(err, ErrRoundNotInitialized) {
		t.Fatalf("err = %v, want ErrRoundNotInitialized", err)
	}
}

func TestEntryYAvoidsSeparatorAndWalls(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for i := 0; i < 5000; i++ {
		y := DrawEntryY(rng)
		if y >= config.EntryBandMin && y <= config.EntryBandMax {
			t.Fatalf("entry y %v inside separator band", y)
		}
		if y < 60 || y > 1140 {
			t.Fatalf("entry y %v overlaps a wall", y)
		}
		if int(y)%config.EntryStep != 0 {
			t.Fatalf("entry y %v not on the grid", y)
		}
	}
}

func TestLongPlayInvariants(t *testing.T) {
	s := newTestGame(99)
	rng := rand.New(rand.NewPCG(5, 5))
	intents := []input.Intent{input.IntentNone, input.IntentUp, input.IntentDown}

	high := s.HighScore
	loop := s.LoopCount
	phase := s.Phase
	for i := 0; i < 30000; i++ {
		paddleBefore, mirrorBefore := s.Paddle.Y, s.Mirror.Y
		if _, err := s.Tick(16*time.Millisecond, intents[rng.IntN(len(intents))]); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if s.HighScore < high {
			t.Fatalf("tick %d: high score dropped from %d to %d", i, high, s.HighScore)
		}
		high = s.HighScore
		if s.Running != (s.Ball != nil) {
			t.Fatalf("tick %d: running %v with ball %v", i, s.Running, s.Ball)
		}
		if s.Paddle.Y < 0 || s.Paddle.Y > config.ArenaHeight-config.PaddleHeight {
			t.Fatalf("tick %d: paddle out of range: %v", i, s.Paddle.Y)
		}
		if phase == PhaseRunning && s.Phase == PhaseRunning {
			if math.Abs((s.Paddle.Y-paddleBefore)-(s.Mirror.Y-mirrorBefore)) > 1e-9 {
				t.Fatalf("tick %d: mirror did not follow paddle", i)
			}
			if s.LoopCount < loop {
				t.Fatalf("tick %d: loop count dropped within a round", i)
			}
		}
		loop = s.LoopCount
		phase = s.Phase
	}
}

package game

// Cue names a discrete presentation event produced by a tick.
type Cue int

const (
	CuePaddleHit Cue = iota
	CueMirrorHit
	CueLevelCleared
	CueTimeWarning
	CueWin
	CueGameOver
	CueCountdown
)

func (c Cue) String() string {
	switch c {
	case CuePaddleHit:
		return "paddleHit"
	case CueMirrorHit:
		return "mirrorHit"
	case CueLevelCleared:
		return "levelCleared"
	case CueTimeWarning:
		return "timeWarning"
	case CueWin:
		return "win"
	case CueGameOver:
		return "gameOver"
	case CueCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// Sound asset names per cue.
var cueAssets = map[Cue]string{
	CuePaddleHit:    "hit",
	CueMirrorHit:    "gasp",
	CueLevelCleared: "cleared",
	CueTimeWarning:  "warning",
	CueWin:          "win",
	CueGameOver:     "over",
}

// Event is a cue with the optional audio asset and spoken phrase it carries.
type Event struct {
	Cue    Cue
	Asset  string
	Phrase string
}

func newEvent(c Cue) Event {
	return Event{Cue: c, Asset: cueAssets[c]}
}

func (s *GameState) emit(ev Event) {
	s.events = append(s.events, ev)
}

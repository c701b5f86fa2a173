package input

// Intent is the paddle movement requested by the player.
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
)

func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	default:
		return "none"
	}
}

// Controller tracks a single active pointer in arena coordinates (y up) plus
// held movement keys, and reports the resulting intent.
type Controller struct {
	midY    float64
	active  bool
	y       float64
	keyUp   bool
	keyDown bool
}

// NewController creates a controller splitting the arena at midY.
func NewController(midY float64) *Controller {
	return &Controller{midY: midY}
}

// PointerDown starts tracking a pointer at arena position (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.active = true
	c.y = y
}

// PointerMove updates the tracked pointer. Moves without an active pointer are ignored.
func (c *Controller) PointerMove(x, y float64) {
	if c.active {
		c.y = y
	}
}

// PointerUp ends pointer tracking; the pointer intent returns to none.
func (c *Controller) PointerUp() {
	c.active = false
}

// SetKeys records which movement keys are currently held.
func (c *Controller) SetKeys(up, down bool) {
	c.keyUp = up
	c.keyDown = down
}

// Intent returns the current movement intent. A single held key wins over the pointer.
func (c *Controller) Intent() Intent {
	switch {
	case c.keyUp && !c.keyDown:
		return IntentUp
	case c.keyDown && !c.keyUp:
		return IntentDown
	}
	return IntentFor(c.active, c.y, c.midY)
}

// IntentFor maps a pointer to an intent: up above the midpoint, down below it,
// none on the midpoint or when no pointer is active.
func IntentFor(active bool, y, midY float64) Intent {
	if !active {
		return IntentNone
	}
	switch {
	case y > midY:
		return IntentUp
	case y < midY:
		return IntentDown
	default:
		return IntentNone
	}
}

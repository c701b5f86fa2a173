package config

import "time"

// Arena geometry in logical units. The y axis points up, origin at the bottom-left corner.
const (
	ArenaWidth    = 800.0
	ArenaHeight   = 1200.0
	BallRadius    = 30.0
	WallThickness = BallRadius
	PaddleWidth   = BallRadius
	PaddleHeight  = 150.0
	MirrorScale   = 1.4
	MirrorHeight  = PaddleHeight * MirrorScale
	SeparatorSize = BallRadius / 3
)

// Movement
const (
	PaddleSpeed     = 800.0 // Units per second
	BallLaunchSpeed = 550.0 // Per axis
)

// Collision impulses. Magnitudes grow by ImpulseStep per level.
const (
	ImpulseBaseX = 6
	ImpulseBaseY = 4
	ImpulseStep  = 2
	ImpulseUnit  = 8.0 // Velocity units per impulse unit
)

// Rounds and scoring
const (
	InitialSeconds       = 25
	LevelSecondsStep     = 2
	MirrorPenaltySeconds = 3
	MilestoneEvery       = 10
	WarningSeconds       = 5
)

// Entry position of the ball: EntryStep * U{0..EntrySlots}, outside the separator band.
const (
	EntryStep    = 6
	EntrySlots   = 200
	EntryBandMin = 465 // Separator zone minus ball radius
	EntryBandMax = 735 // Separator zone plus ball radius
)

// Timing
const (
	TimerPeriod       = time.Second
	CountdownStep     = time.Second // Fade in + fade out
	WinOutro          = 5500 * time.Millisecond
	WinScaleDuration  = 2500 * time.Millisecond
	WinScaleBy        = 1.8
	LoseOutro         = 3500 * time.Millisecond
	LoseSpinDuration  = 800 * time.Millisecond
	LoseSpins         = 2
	MaxPhysicsStep    = time.Second / 240
	MaxPhysicsSubstep = 120
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 120 // Columns; wider terminals get a centred render area
	MaxTermHeight         = 60  // Rows
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

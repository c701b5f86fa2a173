package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/speedpong/internal/audio"
	"github.com/tomz197/speedpong/internal/config"
	"github.com/tomz197/speedpong/internal/draw"
	"github.com/tomz197/speedpong/internal/game"
	"github.com/tomz197/speedpong/internal/input"
	"github.com/tomz197/speedpong/internal/object"
	"github.com/tomz197/speedpong/internal/physics"
)

// The window shows the arena at half size.
const (
	viewScale    = 0.5
	screenWidth  = int(config.ArenaWidth * viewScale)
	screenHeight = int(config.ArenaHeight * viewScale)

	// ebitenutil's debug font cell
	glyphWidth  = 6
	glyphHeight = 16
	bannerZoom  = 2
)

// palette maps the terminal colour indices to RGB.
var palette = map[draw.Color]color.RGBA{
	draw.ColorBall:      {R: 255, G: 255, B: 255, A: 255},
	draw.ColorPaddle:    {R: 0, G: 135, B: 255, A: 255},
	draw.ColorMirror:    {R: 255, G: 95, B: 95, A: 255},
	draw.ColorWall:      {R: 0, G: 175, B: 135, A: 255},
	draw.ColorSeparator: {R: 68, G: 68, B: 68, A: 255},
	draw.ColorSpark:     {R: 255, G: 255, B: 175, A: 255},
}

var background = color.RGBA{R: 12, G: 14, B: 20, A: 255}

// Game adapts a game.GameState to ebiten.
type Game struct {
	state      *game.GameState
	controller *input.Controller
	player     audio.Player
	logger     *log.Logger
	sparks     []*object.Particle
	pending    []*object.Particle

	touchID  ebiten.TouchID
	touching bool

	bannerText string
	bannerImg  *ebiten.Image
}

func newGame(player audio.Player, logger *log.Logger) *Game {
	return &Game{
		state:      game.New(game.Options{}),
		controller: input.NewController(config.ArenaHeight / 2),
		player:     player,
		logger:     logger,
	}
}

// Spawn implements object.Spawner.
func (g *Game) Spawn(p *object.Particle) {
	g.pending = append(g.pending, p)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.updatePointer()
	g.controller.SetKeys(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyI) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyK) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	)

	dt := time.Second / time.Duration(ebiten.TPS())
	events, err := g.state.Tick(dt, g.controller.Intent())
	if err != nil {
		return fmt.Errorf("desktop tick: %w", err)
	}
	for _, ev := range events {
		g.handleEvent(ev)
	}

	kept := g.sparks[:0]
	for _, p := range g.sparks {
		if p.Update(dt.Seconds()) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	g.sparks = append(kept, g.pending...)
	g.pending = g.pending[:0]
	return nil
}

// updatePointer feeds the left mouse button and the first touch to the controller.
func (g *Game) updatePointer() {
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		p := toArena(ebiten.CursorPosition())
		g.controller.PointerDown(p.X, p.Y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.controller.PointerUp()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		p := toArena(ebiten.CursorPosition())
		g.controller.PointerMove(p.X, p.Y)
	}

	if !g.touching {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			g.touchID, g.touching = ids[0], true
			p := toArena(ebiten.TouchPosition(g.touchID))
			g.controller.PointerDown(p.X, p.Y)
		}
		return
	}
	if inpututil.IsTouchJustReleased(g.touchID) {
		g.touching = false
		g.controller.PointerUp()
		return
	}
	p := toArena(ebiten.TouchPosition(g.touchID))
	g.controller.PointerMove(p.X, p.Y)
}

func (g *Game) handleEvent(ev game.Event) {
	g.player.Play(ev)
	switch ev.Cue {
	case game.CuePaddleHit:
		if g.state.Ball != nil {
			object.SpawnSparks(g.state.Ball.Pos, -1, 14, draw.ColorSpark, g)
		}
	case game.CueMirrorHit:
		if g.state.Ball != nil {
			object.SpawnSparks(g.state.Ball.Pos, 1, 14, draw.ColorMirror, g)
		}
	case game.CueWin, game.CueGameOver:
		g.logger.Debug("round over", "result", ev.Cue, "score", g.state.Score, "highScore", g.state.HighScore)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	s := g.state
	for _, w := range s.Walls {
		fillRect(screen, w.Rect, palette[draw.ColorWall])
	}
	fillRect(screen, s.Separator.Rect, palette[draw.ColorSeparator])
	fillRect(screen, s.Mirror.Rect(), palette[s.Mirror.Color])
	fillRect(screen, s.Paddle.Rect(), palette[s.Paddle.Color])

	for _, p := range g.sparks {
		x, y := toScreen(p.Pos)
		vector.DrawFilledRect(screen, x-1, y-1, 3, 3, palette[p.Color], false)
	}
	if s.Ball != nil {
		x, y := toScreen(s.Ball.Pos)
		vector.DrawFilledCircle(screen, x, y, float32(s.Ball.Radius*viewScale), palette[draw.ColorBall], true)
	}

	g.drawHUD(screen)
	g.drawBanner(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.state
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%ds left", max(s.Seconds, 0)), 6, 0)
	score := fmt.Sprintf("%d", s.Score)
	ebitenutil.DebugPrintAt(screen, score, screenWidth/2-len(score)*glyphWidth/2, 0)
	high := fmt.Sprintf("Highest: %d", s.HighScore)
	ebitenutil.DebugPrintAt(screen, high, screenWidth-len(high)*glyphWidth-6, 0)
	if s.LoopCount > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d", s.LoopCount+1), 6, screenHeight-glyphHeight)
	}
}

// drawBanner renders the banner text once to an image, then places it with
// the banner's scale, rotation and alpha.
func (g *Game) drawBanner(screen *ebiten.Image) {
	b := g.state.Banner
	if !b.Visible() {
		return
	}
	if g.bannerImg == nil || g.bannerText != b.Text {
		if g.bannerImg != nil {
			g.bannerImg.Deallocate()
		}
		g.bannerImg = ebiten.NewImage(len(b.Text)*glyphWidth, glyphHeight)
		ebitenutil.DebugPrint(g.bannerImg, b.Text)
		g.bannerText = b.Text
	}

	w, h := g.bannerImg.Bounds().Dx(), g.bannerImg.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(b.Scale*bannerZoom, b.Scale*bannerZoom)
	op.GeoM.Rotate(b.Rotation)
	op.GeoM.Translate(float64(screenWidth)/2, float64(screenHeight)/2)
	op.ColorScale.ScaleAlpha(float32(b.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.bannerImg, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// toScreen converts an arena position (y up) to window pixels (y down).
func toScreen(p physics.Vec) (float32, float32) {
	return float32(p.X * viewScale), float32((config.ArenaHeight - p.Y) * viewScale)
}

// toArena converts window pixels to an arena position.
func toArena(x, y int) physics.Vec {
	return physics.Vec{X: float64(x) / viewScale, Y: config.ArenaHeight - float64(y)/viewScale}
}

func fillRect(screen *ebiten.Image, r physics.Rect, c color.RGBA) {
	x, y := toScreen(physics.Vec{X: r.X, Y: r.MaxY()})
	vector.DrawFilledRect(screen, x, y, float32(r.W*viewScale), float32(r.H*viewScale), c, false)
}

// Package draw renders logical-space shapes to a terminal using coloured half-block cells.
package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Point represents a 2D coordinate in canvas space (y grows downwards).
type Point struct {
	X, Y float64
}

// Color is an index into the xterm 256-colour palette. ColorNone marks an empty pixel.
type Color uint8

// Palette used by the game.
const (
	ColorNone      Color = 0
	ColorBall      Color = 15
	ColorPaddle    Color = 33
	ColorMirror    Color = 203
	ColorWall      Color = 36
	ColorSeparator Color = 238
	ColorSpark     Color = 229
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// cell is one rendered terminal cell.
type cell struct {
	ch rune
	fg Color
	bg Color
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Last frame written to the terminal, used to emit only changed cells.
	prev      []cell
	prevValid bool

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the terminal dimensions of the render area.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.prevValid = false
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render write every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// MarkTextDirty makes the next Render repaint n cells starting at the 1-based
// render-area position (col, row), so overlay text drawn there does not linger.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.prev[r*c.termWidth+x] = cell{}
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// At returns the pixel colour at sub-pixel coordinates.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, color Color) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, color)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, color Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, color)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], color)
	}
}

// FillRect fills the logical rectangle spanning (x0,y0)-(x1,y1).
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, color Color) {
	pts := c.BorrowPoints(4)
	pts[0] = Point{X: x0, Y: y0}
	pts[1] = Point{X: x1, Y: y0}
	pts[2] = Point{X: x1, Y: y1}
	pts[3] = Point{X: x0, Y: y1}
	c.DrawPolygon(pts, color, true)
}

// FillCircle fills a circle approximated by a polygon.
func (c *Canvas) FillCircle(cx, cy, r float64, color Color) {
	const segments = 24
	pts := c.BorrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	c.DrawPolygon(pts, color, true)
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, color Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, color)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// glyph picks the half-block character and colours for a top/bottom pixel pair.
func glyph(top, bottom Color) cell {
	switch {
	case top == ColorNone && bottom == ColorNone:
		return cell{ch: BlockEmpty}
	case top == bottom:
		return cell{ch: BlockFull, fg: top}
	case bottom == ColorNone:
		return cell{ch: BlockUpperHalf, fg: top}
	case top == ColorNone:
		return cell{ch: BlockLowerHalf, fg: bottom}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// Render outputs the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	var fg, bg Color
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := glyph(c.pixels[topOffset+col], c.pixels[bottomOffset+col])
			idx := row*c.termWidth + col
			if c.prevValid && c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if cur.fg != fg {
				if cur.fg == ColorNone {
					c.renderBuf.WriteString("\033[39m")
				} else {
					fmt.Fprintf(&c.renderBuf, "\033[38;5;%dm", cur.fg)
				}
				fg = cur.fg
			}
			if cur.bg != bg {
				if cur.bg == ColorNone {
					c.renderBuf.WriteString("\033[49m")
				} else {
					fmt.Fprintf(&c.renderBuf, "\033[48;5;%dm", cur.bg)
				}
				bg = cur.bg
			}
			c.renderBuf.WriteRune(cur.ch)
		}
	}
	c.prevValid = true

	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString("\033[0m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// TerminalToLogical maps an absolute 1-based terminal cell to the logical coordinates of
// its centre. ok is false for cells outside the render area.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	px := col - 1 - c.offsetCol
	pr := row - 1 - c.offsetRow
	if px < 0 || px >= c.termWidth || pr < 0 || pr >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(px) + 0.5) / c.scaleX
	y = (float64(pr)*2 + 1) / c.scaleY
	return x, y, true
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

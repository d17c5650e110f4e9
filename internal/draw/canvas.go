// Package draw renders the playfield to a terminal using truecolor half-block cells.
package draw

import (
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
)

// Block characters for drawing.
const (
	BlockUpperHalf = '▀'
)

// cell is what one terminal character shows: the top and bottom sub-pixel.
type cell struct {
	top, bottom color.RGBA
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Only cells that changed since the previous Render are written out.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x]

	// Last rendered frame, for diffing
	prev  []cell
	valid bool

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Playfield width
	logicalHeight float64 // Playfield height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A resize forces the next Render to repaint every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]color.RGBA, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.valid = false
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.valid = false
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

// Invalidate forces the next Render to repaint every cell, e.g. after the
// terminal was cleared by someone else.
func (c *Canvas) Invalidate() {
	c.valid = false
}

// Size returns the logical playfield size.
func (c *Canvas) Size() (width, height int) {
	return int(c.logicalWidth), int(c.logicalHeight)
}

// Clear resets all pixels in the canvas to black.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Save is a no-op: the canvas keeps no drawing state between calls.
func (c *Canvas) Save() {}

// Restore is a no-op, see Save.
func (c *Canvas) Restore() {}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, clr color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = clr
	}
}

// blendPixel mixes src over the existing pixel with the given opacity.
func (c *Canvas) blendPixel(x, y int, src color.NRGBA, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	a := float64(src.A) / 255 * alpha
	if a <= 0 {
		return
	}
	dst := &c.pixels[y*c.termWidth+x]
	dst.R = mix(dst.R, src.R, a)
	dst.G = mix(dst.G, src.G, a)
	dst.B = mix(dst.B, src.B, a)
	dst.A = 255
}

func mix(dst, src uint8, a float64) uint8 {
	if a >= 1 {
		return src
	}
	return uint8(math.Round(float64(dst)*(1-a) + float64(src)*a))
}

// Pixel returns the color at terminal pixel coordinates. Used by tests and overlays.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}
	}
	return c.pixels[y*c.termWidth+x]
}

// DrawImage draws img with its top-left corner at logical (x, y), sampled
// nearest-neighbour into terminal pixels. alpha scales the sprite opacity.
func (c *Canvas) DrawImage(img image.Image, x, y, alpha float64) {
	if img == nil || alpha <= 0 {
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	px0 := max(int(math.Floor(x*c.scaleX)), 0)
	py0 := max(int(math.Floor(y*c.scaleY)), 0)
	px1 := min(int(math.Ceil((x+w)*c.scaleX)), c.termWidth)
	py1 := min(int(math.Ceil((y+h)*c.scaleY)), c.subPixelHeight)

	for py := py0; py < py1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - y
		if ly < 0 || ly >= h {
			continue
		}
		sy := b.Min.Y + int(ly)
		for px := px0; px < px1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - x
			if lx < 0 || lx >= w {
				continue
			}
			sx := b.Min.X + int(lx)
			src := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			c.blendPixel(px, py, src, alpha)
		}
	}
}

// StrokeCircle outlines a circle of logical radius r centred on logical (x, y).
// Non-square scaling turns it into an ellipse in terminal pixels.
func (c *Canvas) StrokeCircle(x, y, r float64, clr color.Color) {
	if r <= 0 {
		return
	}
	rgba := color.RGBAModel.Convert(clr).(color.RGBA)
	rgba.A = 255

	cx, cy := x*c.scaleX, y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	steps := int(2*math.Pi*math.Max(rx, ry)*2) + 8

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		px := int(math.Round(cx + math.Cos(theta)*rx))
		py := int(math.Round(cy + math.Sin(theta)*ry))
		c.setPixel(px, py, rgba)
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs changed cells to the writer using half-block characters,
// top pixel as foreground and bottom pixel as background color.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	lastRow, lastCol := -1, -1
	var fg, bg color.RGBA
	colorsSet := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if c.valid && c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !colorsSet || cur.top != fg {
				c.writeColor(38, cur.top)
				fg = cur.top
			}
			if !colorsSet || cur.bottom != bg {
				c.writeColor(48, cur.bottom)
				bg = cur.bottom
			}
			colorsSet = true
			c.renderBuf.WriteRune(BlockUpperHalf)
			lastRow, lastCol = row, col
		}
	}
	c.valid = true

	if colorsSet {
		c.renderBuf.WriteString("\033[0m")
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor emits an SGR truecolor sequence; layer is 38 (foreground) or 48 (background).
func (c *Canvas) writeColor(layer int, clr color.RGBA) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(clr.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(clr.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(clr.B), 10))
	c.renderBuf.WriteByte('m')
}

// LogicalWidth returns the logical width (playfield width).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (playfield height).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 1-based terminal cell (as reported by mouse
// events) to the logical coordinates of the cell's centre.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}

// Package client runs one game in a terminal: the local console or an SSH session.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/draw"
	"github.com/tomz197/wrangler/internal/input"
	"github.com/tomz197/wrangler/internal/loop"
	"github.com/tomz197/wrangler/internal/loop/config"
)

// Client handles rendering and input for a single connection.
// Each client owns its engine.
type Client struct {
	engine       *loop.Engine
	hud          *hud
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	latch        *input.Latch
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	logger       *log.Logger
	running      bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc  draw.TermSizeFunc
	Assets        loop.Assets
	Player        audio.Player // nil rings the terminal bell
	Logger        *log.Logger
	Config        loop.Config   // zero value uses loop.DefaultConfig
	FrameTime     time.Duration // zero uses config.ClientTargetFrameTime
	EngineOptions []loop.Option
}

// NewClient creates a client reading input from r and drawing to w.
// The engine is initialized against the terminal canvas but not started.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if cfg == (loop.Config{}) {
		cfg = loop.DefaultConfig()
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = config.ClientTargetFrameTime
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.PlayfieldWidth, config.PlayfieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	player := opts.Player
	if player == nil {
		player = audio.BellPlayer{W: chunkWriter}
	}

	c := &Client{
		hud:          &hud{player: player},
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		latch:        &input.Latch{},
		termSizeFunc: termSizeFunc,
		frameTime:    frameTime,
		logger:       logger,
		running:      true,
	}

	engineOpts := append([]loop.Option{loop.WithLogger(logger)}, opts.EngineOptions...)
	c.engine = loop.NewEngine(cfg, engineOpts...)
	err := c.engine.Init(loop.Host{
		Surface:   canvas,
		Input:     c.latch,
		Presenter: c.hud,
		Assets:    opts.Assets,
	})
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}

	if r != nil {
		c.inputStream = input.StartStream(r)
	}
	return c, nil
}

// Engine returns the client's game engine.
func (c *Client) Engine() *loop.Engine {
	return c.engine
}

// Run starts the client loop. Blocks until the player quits, the input
// closes or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	input.EnableMouse(c.writer)
	defer input.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	if err := c.engine.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	for c.running {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			c.running = false
			continue
		default:
		}

		// Process input
		c.processInput()

		// Handle screen resize
		c.updateScreen()

		// Simulate and draw onto the canvas
		c.engine.Frame()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	c.logger.Debug("client stopped", "score", c.engine.Score().Net())
	return nil
}

// processInput drains pending input bytes into the latch.
func (c *Client) processInput() {
	if c.inputStream == nil {
		return
	}
	c.applyInput(input.ReadInput(c.inputStream))
}

// applyInput maps mouse reports onto playfield coordinates and handles quit.
func (c *Client) applyInput(in input.Input) {
	if in.Quit || in.Closed {
		c.running = false
	}

	for _, ev := range in.Mouse {
		x, y := c.canvas.TerminalToLogical(ev.Col, ev.Row)
		p := c.clampPoint(x, y)
		c.latch.SetPointer(p)
		if ev.Press && ev.Button == input.ButtonLeft {
			c.latch.SetClick(p)
		}
	}
}

// clampPoint keeps pointer positions inside the playfield, so clicks in the
// margin around a centred canvas never lead the avatar off the field.
func (c *Client) clampPoint(x, y float64) input.Point {
	w, h := c.canvas.Size()
	return input.Point{
		X: min(max(x, 0), float64(w)),
		Y: min(max(y, 0), float64(h)),
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[0m\033[H\033[2J")
		c.canvas.Invalidate()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

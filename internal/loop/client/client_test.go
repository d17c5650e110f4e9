package client

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/input"
	"github.com/tomz197/wrangler/internal/loop"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) {
		return w, h, nil
	}
}

func newTestClient(t *testing.T, termWidth, termHeight int) (*Client, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c, err := NewClient(nil, &out, ClientOptions{
		TermSizeFunc:  fixedSize(termWidth, termHeight),
		Player:        audio.NopPlayer{},
		EngineOptions: []loop.Option{loop.WithRand(rand.New(rand.NewSource(1)))},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, &out
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		termWidth, termHeight  int
		wantWidth, wantHeight  int
		wantOffCol, wantOffRow int
	}{
		{"small", 80, 30, 80, 30, 0, 0},
		{"exact", 160, 60, 160, 60, 0, 0},
		{"wide", 200, 60, 160, 60, 20, 0},
		{"tall", 100, 81, 100, 60, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, col, row := clampTermSize(tt.termWidth, tt.termHeight)
			if w != tt.wantWidth || h != tt.wantHeight || col != tt.wantOffCol || row != tt.wantOffRow {
				t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d", tt.termWidth, tt.termHeight, w, h, col, row)
			}
		})
	}
}

func TestNewClientInitializesEngine(t *testing.T) {
	c, _ := newTestClient(t, 80, 30)

	if c.Engine().State() != loop.StateReady {
		t.Errorf("engine state = %v, want ready", c.Engine().State())
	}
	if s := c.Engine().Screen(); s.Width != 800 || s.Height != 600 {
		t.Errorf("playfield = %dx%d, want 800x600", s.Width, s.Height)
	}
}

func TestApplyInputClick(t *testing.T) {
	c, _ := newTestClient(t, 80, 30)

	c.applyInput(input.Input{Mouse: []input.MouseEvent{
		{Col: 41, Row: 16, Button: input.ButtonLeft, Press: true},
	}})

	want := input.Point{X: 405, Y: 310}
	if p, ok := c.latch.Pointer(); !ok || p != want {
		t.Errorf("pointer = %v, %v; want %v", p, ok, want)
	}
	if p, ok := c.latch.Click(); !ok || p != want {
		t.Errorf("click = %v, %v; want %v", p, ok, want)
	}
}

func TestApplyInputMotionMovesPointerOnly(t *testing.T) {
	c, _ := newTestClient(t, 80, 30)

	c.applyInput(input.Input{Mouse: []input.MouseEvent{
		{Col: 1, Row: 1, Button: input.ButtonNone, Motion: true},
		{Col: 11, Row: 6, Button: input.ButtonNone, Motion: true},
	}})

	if p, ok := c.latch.Pointer(); !ok || p != (input.Point{X: 105, Y: 110}) {
		t.Errorf("pointer = %v, %v; want the last motion", p, ok)
	}
	if _, ok := c.latch.Click(); ok {
		t.Error("motion set a click")
	}
}

func TestApplyInputClampsMargin(t *testing.T) {
	// 200x80 renders 160x60 centred at column 21, row 11.
	c, _ := newTestClient(t, 200, 80)

	c.applyInput(input.Input{Mouse: []input.MouseEvent{
		{Col: 1, Row: 1, Button: input.ButtonLeft, Press: true},
	}})

	if p, _ := c.latch.Pointer(); p != (input.Point{X: 0, Y: 0}) {
		t.Errorf("pointer = %v, want clamped to the origin", p)
	}
}

func TestApplyInputQuit(t *testing.T) {
	c, _ := newTestClient(t, 80, 30)
	c.applyInput(input.Input{Quit: true})
	if c.running {
		t.Error("still running after quit")
	}

	c, _ = newTestClient(t, 80, 30)
	c.applyInput(input.Input{Closed: true})
	if c.running {
		t.Error("still running after input closed")
	}
}

func TestDrawFrameWritesScore(t *testing.T) {
	c, out := newTestClient(t, 80, 30)

	c.Engine().Render()
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}

	if !strings.Contains(out.String(), "Score: 0") {
		t.Errorf("output has no score line: %q", out.String())
	}
	if !strings.Contains(out.String(), "▀") {
		t.Error("output has no canvas cells")
	}
}

func TestDrawFrameScoreFollowsOffset(t *testing.T) {
	// 200x80 centres a 160x60 render area at column 20, row 10.
	c, out := newTestClient(t, 200, 80)

	c.Engine().Render()
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}

	if !strings.Contains(out.String(), "\033[11;22H\033[0mScore: 0") {
		t.Errorf("score not at offset cell: %q", out.String())
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	c, out := newTestClient(t, 80, 30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Engine().State() != loop.StateRunning {
		t.Errorf("engine state = %v, want running", c.Engine().State())
	}

	s := out.String()
	if !strings.Contains(s, "\033[?1003h") || !strings.Contains(s, "\033[?1003l") {
		t.Error("mouse tracking not enabled and disabled")
	}
	if !strings.HasSuffix(s, "\033[?25h") {
		t.Error("cursor not restored last")
	}
}

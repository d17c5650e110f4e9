package client

import (
	"fmt"

	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/draw"
	"github.com/tomz197/wrangler/internal/loop"
	"github.com/tomz197/wrangler/internal/object"
)

// scoreWidth pads the score line so a shorter score overwrites a longer one.
const scoreWidth = 16

// hud is the terminal presenter: it keeps the score line for the next
// frame and forwards sounds to the player.
type hud struct {
	text   string
	player audio.Player
}

func (h *hud) SetScoreText(text string) {
	h.text = text
}

func (h *hud) PlaySound(s *audio.Sound) {
	h.player.Play(s)
}

// drawFrame writes the changed canvas cells and the score line, then flushes.
func (c *Client) drawFrame() error {
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Top-left of the render area, in the terminal's default colours.
	c.chunkWriter.WriteAt(2, 1, fmt.Sprintf("\033[0m%-*s", scoreWidth, c.hud.text))

	return c.chunkWriter.Flush()
}

// Ensure the terminal types satisfy the engine's collaborators.
var (
	_ object.Surface = (*draw.Canvas)(nil)
	_ loop.Presenter = (*hud)(nil)
)

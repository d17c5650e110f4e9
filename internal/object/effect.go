package object

import (
	"image"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Effect is the splat left where the avatar caught a wanderer.
//
// With a zero lifetime it stays until something removes it. With a positive
// lifetime it fades out and marks itself destroyed when fully transparent.
// Effects have no collision radius.
type Effect struct {
	Body
	alpha float64
	fade  *gween.Tween
}

// NewEffect creates an effect centred on (x, y).
func NewEffect(x, y float64, sprite image.Image, lifetime time.Duration) *Effect {
	e := &Effect{alpha: 1}
	e.X = x
	e.Y = y
	e.Sprite = sprite
	if lifetime > 0 {
		e.fade = gween.New(1, 0, float32(lifetime.Seconds()), ease.OutQuad)
	}
	return e
}

// Alpha returns the current opacity in [0, 1].
func (e *Effect) Alpha() float64 {
	return e.alpha
}

// Update advances the fade, if any.
func (e *Effect) Update(ctx UpdateContext) {
	if e.fade == nil {
		return
	}
	current, finished := e.fade.Update(float32(ctx.Delta.Seconds()))
	e.alpha = float64(current)
	if finished {
		e.alpha = 0
		e.MarkDestroyed()
	}
}

// Draw renders the sprite at the current opacity.
func (e *Effect) Draw(ctx DrawContext) {
	e.DrawSpriteCentered(ctx, e.alpha)
	e.DrawOutline(ctx)
}

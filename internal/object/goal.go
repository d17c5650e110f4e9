package object

import "image"

// GoalFallbackRadius is used when the pen sprite is missing.
const GoalFallbackRadius = 40.0

// Goal is the pen. Wanderers that reach it are saved.
type Goal struct {
	Body
}

// NewGoal creates the goal at (x, y). The radius is half the sprite width.
func NewGoal(x, y float64, sprite image.Image) *Goal {
	g := &Goal{}
	g.X = x
	g.Y = y
	g.Sprite = sprite
	g.ShowOutline = true
	g.SetRadius(spriteRadius(sprite, false, GoalFallbackRadius))
	return g
}

// Background is the static pasture image drawn behind everything.
type Background struct {
	Body
}

// NewBackground creates a background anchored at the playfield origin.
func NewBackground(sprite image.Image) *Background {
	b := &Background{}
	b.Sprite = sprite
	return b
}

// Draw paints the sprite with its top-left corner at the position. No outline.
func (b *Background) Draw(ctx DrawContext) {
	if b.Sprite == nil {
		return
	}
	ctx.Surface.DrawImage(b.Sprite, b.X, b.Y, 1)
}

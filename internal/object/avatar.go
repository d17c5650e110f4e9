package object

import (
	"image"
	"math"

	"github.com/tomz197/wrangler/internal/physics"
)

// Avatar tuning.
const (
	AvatarSpeed          = 300.0 // Units per second
	AvatarStopDistance   = 5.0   // Closer than this to the pointer, the avatar holds still
	AvatarFallbackRadius = 20.0
)

// Avatar is the player-controlled cowboy. It walks toward the pointer.
type Avatar struct {
	Body
	Speed float64
	Angle float64 // Heading in radians, [0, 2π)
}

// NewAvatar creates the avatar at (x, y). The radius is half the sprite height.
func NewAvatar(x, y float64, sprite image.Image) *Avatar {
	a := &Avatar{Speed: AvatarSpeed}
	a.X = x
	a.Y = y
	a.Sprite = sprite
	a.ShowOutline = true
	a.SetRadius(spriteRadius(sprite, true, AvatarFallbackRadius))
	return a
}

// Update turns toward the pointer and steps toward it unless already there.
func (a *Avatar) Update(ctx UpdateContext) {
	if ctx.Pointer == nil {
		return
	}
	target := *ctx.Pointer

	a.Angle = physics.NormalizeAngle(math.Atan2(target.Y-a.Y, target.X-a.X))

	if physics.Distance(target.X, target.Y, a.X, a.Y) > AvatarStopDistance {
		dt := ctx.Delta.Seconds()
		a.X += math.Cos(a.Angle) * a.Speed * dt
		a.Y += math.Sin(a.Angle) * a.Speed * dt
	}
}

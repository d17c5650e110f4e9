package object

import (
	"image"
	"math"
	"math/rand"

	"github.com/tomz197/wrangler/internal/physics"
)

// Wanderer tuning.
const (
	WandererSpeed          = 150.0       // Units per second
	WandererEngageRadius   = 150.0       // Within this distance of the avatar the wanderer runs
	WandererMaxTurn        = math.Pi / 4 // Random walk turn per update, either direction
	WandererFallbackRadius = 16.0
)

// Wanderer is a cat: it roams at random and bolts away from the avatar
// when the avatar comes close.
type Wanderer struct {
	Body
	Speed float64
	Angle float64 // Heading in radians
}

// NewWanderer creates a wanderer at (x, y) with a random heading.
// rng may be nil to use the global source.
func NewWanderer(x, y float64, sprite image.Image, rng *rand.Rand) *Wanderer {
	var heading float64
	if rng != nil {
		heading = rng.Float64() * 2 * math.Pi
	} else {
		heading = rand.Float64() * 2 * math.Pi
	}

	w := &Wanderer{Speed: WandererSpeed, Angle: heading}
	w.X = x
	w.Y = y
	w.Sprite = sprite
	w.ShowOutline = true
	w.collides = true
	w.SetRadius(spriteRadius(sprite, true, WandererFallbackRadius))
	return w
}

// Update picks a heading and moves along it.
func (w *Wanderer) Update(ctx UpdateContext) {
	if physics.Distance(ctx.Avatar.X, ctx.Avatar.Y, w.X, w.Y) < WandererEngageRadius {
		// Along the line from the avatar through the wanderer.
		w.Angle = math.Atan2(w.Y-ctx.Avatar.Y, w.X-ctx.Avatar.X)
	} else {
		w.Angle += -WandererMaxTurn + ctx.Float64()*2*WandererMaxTurn
	}

	dt := ctx.Delta.Seconds()
	w.X += math.Cos(w.Angle) * w.Speed * dt
	w.Y += math.Sin(w.Angle) * w.Speed * dt
}

package object

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/tomz197/wrangler/internal/input"
	"github.com/tomz197/wrangler/internal/physics"
)

// Point is an alias for the input package's playfield position.
type Point = input.Point

// OutlineColor is the stroke used for collision outlines.
var OutlineColor = color.RGBA{G: 128, A: 255}

// Surface is the 2D drawing target entities render onto.
// Coordinates are logical playfield units.
type Surface interface {
	// Size returns the playfield dimensions the surface represents.
	Size() (width, height int)
	Clear()
	// DrawImage draws img with its top-left corner at (x, y); alpha scales opacity.
	DrawImage(img image.Image, x, y, alpha float64)
	StrokeCircle(x, y, r float64, clr color.Color)
	// Save and Restore bracket a frame's draws.
	Save()
	Restore()
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Screen  Screen
	Avatar  Point      // Avatar position when the entity is updated
	Pointer *Point     // Latest pointer position, nil if none reported yet
	Click   *Point     // Click reported since the last frame, nil if none
	Rand    *rand.Rand // Randomness source; nil uses the global source
}

// Float64 returns a random number in [0, 1) from the context's source.
func (ctx UpdateContext) Float64() float64 {
	if ctx.Rand != nil {
		return ctx.Rand.Float64()
	}
	return rand.Float64()
}

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Surface Surface
}

// Screen represents the playfield dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a screen and caches its half values.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// ClampPosition pulls x and y back inside the playfield.
// Leaving past the far edge lands one unit inside it; leaving below zero lands on 1.
func (s Screen) ClampPosition(x, y *float64) {
	*x = physics.ClampAxis(*x, float64(s.Width))
	*y = physics.ClampAxis(*y, float64(s.Height))
}

// Entity is a drawable and updatable game entity.
type Entity interface {
	// Update advances the entity by ctx.Delta.
	Update(ctx UpdateContext)

	// Draw renders the entity onto ctx.Surface.
	Draw(ctx DrawContext)

	Position() (x, y float64)
	SetPosition(x, y float64)

	// Radius returns the collision radius; ok is false for entities that never collide.
	Radius() (r float64, ok bool)

	// Collides reports whether the Avatar can capture the entity.
	Collides() bool

	Destructible
}

// Destructible is implemented by entities that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the entity for removal on next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for destruction.
	IsDestroyed() bool
}

// Body carries the state shared by every entity and the default behaviour:
// no-op update, centred sprite plus optional outline on draw.
type Body struct {
	X, Y        float64
	Sprite      image.Image // nil when the asset failed to load
	ShowOutline bool

	radius    float64
	hasRadius bool
	collides  bool
	destroyed bool
}

// Position returns the entity's centre.
func (b *Body) Position() (float64, float64) {
	return b.X, b.Y
}

// SetPosition moves the entity.
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// Radius returns the collision radius, if any.
func (b *Body) Radius() (float64, bool) {
	return b.radius, b.hasRadius
}

// SetRadius gives the entity a collision radius.
func (b *Body) SetRadius(r float64) {
	b.radius = r
	b.hasRadius = true
}

// Collides reports whether the Avatar can capture the entity.
func (b *Body) Collides() bool {
	return b.collides
}

// MarkDestroyed marks the entity for removal (implements Destructible).
func (b *Body) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the entity is marked for destruction (implements Destructible).
func (b *Body) IsDestroyed() bool {
	return b.destroyed
}

// Update is a no-op.
func (b *Body) Update(UpdateContext) {}

// Draw renders the sprite centred on the position, then the outline.
func (b *Body) Draw(ctx DrawContext) {
	b.DrawSpriteCentered(ctx, 1)
	b.DrawOutline(ctx)
}

// DrawSpriteCentered draws the sprite centred on the entity position.
func (b *Body) DrawSpriteCentered(ctx DrawContext, alpha float64) {
	if b.Sprite == nil {
		return
	}
	bounds := b.Sprite.Bounds()
	x := b.X - float64(bounds.Dx())/2
	y := b.Y - float64(bounds.Dy())/2
	ctx.Surface.DrawImage(b.Sprite, x, y, alpha)
}

// DrawOutline strokes the collision circle when outlines are enabled.
func (b *Body) DrawOutline(ctx DrawContext) {
	if b.ShowOutline && b.hasRadius {
		ctx.Surface.StrokeCircle(b.X, b.Y, b.radius, OutlineColor)
	}
}

// spriteRadius derives a collision radius from half the sprite width or height.
// Entities without a sprite use fallback.
func spriteRadius(sprite image.Image, byHeight bool, fallback float64) float64 {
	if sprite == nil {
		return fallback
	}
	if byHeight {
		return float64(sprite.Bounds().Dy()) / 2
	}
	return float64(sprite.Bounds().Dx()) / 2
}

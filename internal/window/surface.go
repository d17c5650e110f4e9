// Package window runs the game in a desktop window using ebiten.
package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/wrangler/internal/object"
)

// outlineWidth is the stroke width of collision outlines in pixels.
const outlineWidth = 1

// Surface draws onto the ebiten screen image of the current frame.
// Decoded sprites are uploaded to the GPU once and reused.
type Surface struct {
	width, height int
	target        *ebiten.Image
	cache         map[image.Image]*ebiten.Image
}

// NewSurface creates a surface for a playfield of the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		cache:  make(map[image.Image]*ebiten.Image),
	}
}

// SetTarget points the surface at the image ebiten hands to Draw.
func (s *Surface) SetTarget(target *ebiten.Image) {
	s.target = target
}

// Size returns the playfield size.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Clear fills the target with transparent black.
func (s *Surface) Clear() {
	if s.target != nil {
		s.target.Clear()
	}
}

// Save is a no-op: every draw call carries its own options.
func (s *Surface) Save() {}

// Restore is a no-op, see Save.
func (s *Surface) Restore() {}

// DrawImage draws img with its top-left corner at (x, y).
func (s *Surface) DrawImage(img image.Image, x, y, alpha float64) {
	if s.target == nil || img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.target.DrawImage(s.ebitenImage(img), op)
}

// StrokeCircle outlines a circle centred on (x, y).
func (s *Surface) StrokeCircle(x, y, r float64, clr color.Color) {
	if s.target == nil {
		return
	}
	vector.StrokeCircle(s.target, float32(x), float32(y), float32(r), outlineWidth, clr, true)
}

func (s *Surface) ebitenImage(img image.Image) *ebiten.Image {
	if eimg, ok := img.(*ebiten.Image); ok {
		return eimg
	}
	if cached, ok := s.cache[img]; ok {
		return cached
	}
	eimg := ebiten.NewImageFromImage(img)
	s.cache[img] = eimg
	return eimg
}

var _ object.Surface = (*Surface)(nil)

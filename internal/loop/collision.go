package loop

import (
	"github.com/tomz197/wrangler/internal/object"
	"github.com/tomz197/wrangler/internal/physics"
)

// captureFunc is called when the avatar catches the entity at (x, y).
type captureFunc func(x, y float64)

// resolveCollisions tests every non-reserved entity against the avatar and the
// goal, then pulls it back inside the playfield.
//
// Both tests may fire for the same entity; removal is a flag, so it is only
// removed once, at the next compaction. Entities appended by onCapture are
// scanned too. Destroyed entities are still clamped.
func resolveCollisions(reg *Registry, avatar, goal object.Entity, screen object.Screen, score *Score, onCapture captureFunc) {
	ax, ay := avatar.Position()
	ar, _ := avatar.Radius()
	gx, gy := goal.Position()
	gr, _ := goal.Radius()

	for i := ReservedEntities; i < reg.Len(); i++ {
		e := reg.At(i)
		x, y := e.Position()
		r, hasRadius := e.Radius()

		if hasRadius && e.Collides() && physics.CirclesOverlap(x, y, r, ax, ay, ar) {
			e.MarkDestroyed()
			score.Captures++
			if onCapture != nil {
				onCapture(x, y)
			}
		}

		if hasRadius && physics.CirclesOverlap(x, y, r, gx, gy, gr) {
			e.MarkDestroyed()
			score.Saves++
		}

		screen.ClampPosition(&x, &y)
		e.SetPosition(x, y)
	}
}

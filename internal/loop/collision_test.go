package loop

import (
	"testing"

	"github.com/tomz197/wrangler/internal/object"
)

// collisionWorld places the three reserved entities and returns the registry.
func collisionWorld(avatarX, avatarY float64) (*Registry, *object.Avatar, *object.Goal) {
	reg := NewRegistry()
	avatar := object.NewAvatar(avatarX, avatarY, nil) // radius 20
	goal := object.NewGoal(400, 300, nil)             // radius 40
	reg.Spawn(object.NewBackground(nil))
	reg.Spawn(goal)
	reg.Spawn(avatar)
	return reg, avatar, goal
}

func TestScoreNet(t *testing.T) {
	s := Score{Captures: 3, Saves: 1}
	if s.Net() != -2 {
		t.Errorf("Net = %d, want -2", s.Net())
	}
	if s.Text() != "Score: -2" {
		t.Errorf("Text = %q", s.Text())
	}
}

func TestAvatarCapture(t *testing.T) {
	reg, avatar, goal := collisionWorld(100, 100)
	w := object.NewWanderer(110, 100, nil, nil) // radius 16
	reg.Spawn(w)

	var score Score
	var captured []object.Point
	resolveCollisions(reg, avatar, goal, object.NewScreen(800, 600), &score, func(x, y float64) {
		captured = append(captured, object.Point{X: x, Y: y})
	})

	if !w.IsDestroyed() {
		t.Error("wanderer not destroyed")
	}
	if score.Captures != 1 || score.Saves != 0 || score.Net() != -1 {
		t.Errorf("score = %+v, want one capture", score)
	}
	if len(captured) != 1 || captured[0] != (object.Point{X: 110, Y: 100}) {
		t.Errorf("captures at %v, want [(110, 100)]", captured)
	}
}

func TestGoalCapture(t *testing.T) {
	reg, avatar, goal := collisionWorld(100, 100)
	w := object.NewWanderer(420, 300, nil, nil)
	reg.Spawn(w)

	var score Score
	calls := 0
	resolveCollisions(reg, avatar, goal, object.NewScreen(800, 600), &score, func(x, y float64) { calls++ })

	if !w.IsDestroyed() {
		t.Error("wanderer not destroyed")
	}
	if score.Saves != 1 || score.Captures != 0 || score.Net() != 1 {
		t.Errorf("score = %+v, want one save", score)
	}
	if calls != 0 {
		t.Errorf("capture callback ran %d times for a save", calls)
	}
}

func TestNoCollision(t *testing.T) {
	reg, avatar, goal := collisionWorld(100, 100)
	w := object.NewWanderer(700, 500, nil, nil)
	reg.Spawn(w)

	var score Score
	resolveCollisions(reg, avatar, goal, object.NewScreen(800, 600), &score, nil)

	if w.IsDestroyed() {
		t.Error("distant wanderer destroyed")
	}
	if score != (Score{}) {
		t.Errorf("score = %+v, want zero", score)
	}
}

func TestEffectsNeverCaptured(t *testing.T) {
	reg, avatar, goal := collisionWorld(400, 300)
	fx := object.NewEffect(400, 300, nil, 0)
	reg.Spawn(fx)

	var score Score
	resolveCollisions(reg, avatar, goal, object.NewScreen(800, 600), &score, nil)

	if fx.IsDestroyed() {
		t.Error("effect destroyed by collision pass")
	}
	if score != (Score{}) {
		t.Errorf("score = %+v, want zero", score)
	}
}

func TestCollisionClamp(t *testing.T) {
	reg, avatar, goal := collisionWorld(100, 100)
	w := object.NewWanderer(850, -20, nil, nil)
	fx := object.NewEffect(900, 700, nil, 0)
	reg.Spawn(w)
	reg.Spawn(fx)

	var score Score
	screen := object.NewScreen(800, 600)
	resolveCollisions(reg, avatar, goal, screen, &score, nil)

	if x, y := w.Position(); x != 799 || y != 1 {
		t.Errorf("wanderer clamped to (%v, %v), want (799, 1)", x, y)
	}
	if x, y := fx.Position(); x != 799 || y != 599 {
		t.Errorf("effect clamped to (%v, %v), want (799, 599)", x, y)
	}

	resolveCollisions(reg, avatar, goal, screen, &score, nil)
	if x, y := w.Position(); x != 799 || y != 1 {
		t.Errorf("second pass moved wanderer to (%v, %v)", x, y)
	}
}

func TestClampAppliesToCapturedEntity(t *testing.T) {
	reg, avatar, goal := collisionWorld(795, 300)
	w := object.NewWanderer(810, 300, nil, nil)
	reg.Spawn(w)

	var score Score
	var captured []object.Point
	resolveCollisions(reg, avatar, goal, object.NewScreen(800, 600), &score, func(x, y float64) {
		captured = append(captured, object.Point{X: x, Y: y})
	})

	if !w.IsDestroyed() {
		t.Error("wanderer not destroyed")
	}
	if score.Captures != 1 || score.Saves != 0 {
		t.Errorf("score = %+v, want one capture", score)
	}
	if x, y := w.Position(); x != 799 || y != 300 {
		t.Errorf("captured wanderer at (%v, %v), want clamped to (799, 300)", x, y)
	}
	if len(captured) != 1 || captured[0] != (object.Point{X: 810, Y: 300}) {
		t.Errorf("captures at %v, want [(810, 300)]", captured)
	}
}

func TestReservedEntitiesNotScanned(t *testing.T) {
	reg, avatar, goal := collisionWorld(400, 300)
	avatar.SetPosition(900, 300)

	var score Score
	resolveCollisions(reg, avatar, goal, object.NewScreen(800, 600), &score, nil)

	if avatar.IsDestroyed() || goal.IsDestroyed() {
		t.Error("reserved entity destroyed")
	}
	if x, _ := avatar.Position(); x != 900 {
		t.Errorf("avatar clamped to x=%v by the collision pass", x)
	}
}

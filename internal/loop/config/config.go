// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield dimensions in logical units. Every host scales these to its output.
const (
	PlayfieldWidth  = 800
	PlayfieldHeight = 600
)

// Simulation
const (
	SpawnInterval = 2 * time.Second       // One wanderer per interval of simulated time
	MaxStep       = 50 * time.Millisecond // Upper bound on a single frame's delta
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution in terminal cells. Larger terminals get the
// playfield centred; the 160x60 cell area keeps the playfield's 4:3 shape.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Asset paths, relative to the asset root.
const (
	SpriteWanderer   = "cat.png"
	SpriteEffect     = "blood.png"
	SpriteAvatar     = "cowboy.png"
	SpriteGoal       = "pen.png"
	SpriteBackground = "background.png"
	SoundCapture     = "kill.wav"
)

// AssetPaths lists every asset the game loads at startup.
func AssetPaths() []string {
	return []string{
		SpriteWanderer,
		SpriteEffect,
		SpriteAvatar,
		SpriteGoal,
		SpriteBackground,
		SoundCapture,
	}
}

// ScoreFormat renders the net score for display.
const ScoreFormat = "Score: %d"

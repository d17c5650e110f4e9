package loop

import (
	"fmt"

	"github.com/tomz197/wrangler/internal/loop/config"
)

// Score counts captures and saves. Captures are wanderers the avatar caught,
// saves are wanderers that reached the goal.
type Score struct {
	Captures int
	Saves    int
}

// Net returns saves minus captures.
func (s Score) Net() int {
	return s.Saves - s.Captures
}

// Text returns the score line shown to the player.
func (s Score) Text() string {
	return fmt.Sprintf(config.ScoreFormat, s.Net())
}

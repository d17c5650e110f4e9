package loop

import (
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("EFFECT_LIFETIME", "1.5s")
	t.Setenv("SHOW_OUTLINES", "false")

	cfg := ConfigFromEnv()
	if cfg.EffectLifetime != 1500*time.Millisecond {
		t.Errorf("EffectLifetime = %v, want 1.5s", cfg.EffectLifetime)
	}
	if cfg.ShowOutlines {
		t.Error("ShowOutlines = true, want false")
	}
	if cfg.SpawnInterval != DefaultConfig().SpawnInterval {
		t.Errorf("SpawnInterval = %v, want default", cfg.SpawnInterval)
	}
}

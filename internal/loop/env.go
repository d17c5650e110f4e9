package loop

import (
	envconfig "github.com/tomz197/wrangler/internal/config"
)

// ConfigFromEnv returns DefaultConfig with EFFECT_LIFETIME and SHOW_OUTLINES applied.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.EffectLifetime = envconfig.GetEnvDuration("EFFECT_LIFETIME", cfg.EffectLifetime)
	cfg.ShowOutlines = envconfig.GetEnvBool("SHOW_OUTLINES", cfg.ShowOutlines)
	return cfg
}

package main

import (
	"context"
	"os"

	"github.com/tomz197/wrangler/assets"
	"github.com/tomz197/wrangler/internal/asset"
	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/config"
	"github.com/tomz197/wrangler/internal/loop"
	gameconfig "github.com/tomz197/wrangler/internal/loop/config"
	"github.com/tomz197/wrangler/internal/window"
)

func main() {
	logger := config.NewLogger(os.Stderr, "wrangler")

	fsys, err := assets.Open(config.GetEnv("ASSET_DIR", ""))
	if err != nil {
		logger.Fatal("failed to open assets", "err", err)
	}
	manager := asset.Load(context.Background(), fsys, gameconfig.AssetPaths(), logger)

	var player audio.Player = audio.NopPlayer{}
	if config.GetEnv("GAME_AUDIO", "speaker") != "off" {
		player = audio.NewSpeakerPlayer(logger)
	}

	g, err := window.NewGame(window.Options{
		Assets: manager,
		Player: player,
		Logger: logger,
		Config: loop.ConfigFromEnv(),
	})
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}
	if err := window.Run(g); err != nil {
		logger.Fatal("window error", "err", err)
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/wrangler/assets"
	"github.com/tomz197/wrangler/internal/asset"
	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/config"
	"github.com/tomz197/wrangler/internal/loop"
	"github.com/tomz197/wrangler/internal/loop/client"
	gameconfig "github.com/tomz197/wrangler/internal/loop/config"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The game owns the screen, so logs only go to a file when asked for.
	logOut := io.Discard
	if path := config.GetEnv("GAME_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "wrangler")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	fsys, err := assets.Open(config.GetEnv("ASSET_DIR", ""))
	if err != nil {
		return fmt.Errorf("open assets: %w", err)
	}
	manager := asset.Load(ctx, fsys, gameconfig.AssetPaths(), logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	fps := config.GetEnvInt("GAME_FPS", gameconfig.ClientTargetFPS)
	if fps <= 0 {
		fps = gameconfig.ClientTargetFPS
	}

	c, err := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Assets:    manager,
		Player:    newPlayer(config.GetEnv("GAME_AUDIO", "speaker"), logger),
		Logger:    logger,
		Config:    loop.ConfigFromEnv(),
		FrameTime: time.Second / time.Duration(fps),
	})
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

// newPlayer picks the capture sound output. "bell" returns nil so the client
// rings the bell in its own output stream.
func newPlayer(mode string, logger *log.Logger) audio.Player {
	switch mode {
	case "bell":
		return nil
	case "off":
		return audio.NopPlayer{}
	default:
		return audio.NewSpeakerPlayer(logger)
	}
}

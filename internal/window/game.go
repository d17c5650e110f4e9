package window

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/input"
	"github.com/tomz197/wrangler/internal/loop"
	"github.com/tomz197/wrangler/internal/loop/config"
)

// Options configures the window game.
type Options struct {
	Assets        loop.Assets
	Player        audio.Player // nil plays nothing
	Logger        *log.Logger
	Config        loop.Config // zero value uses loop.DefaultConfig
	EngineOptions []loop.Option
}

// Game adapts the engine to ebiten.Game. ebiten's Update advances the
// simulation; Draw renders it.
type Game struct {
	engine    *loop.Engine
	surface   *Surface
	latch     *input.Latch
	presenter *presenter

	cursorX, cursorY int
	cursorSeen       bool
}

// presenter shows the score with the debug font and forwards sounds.
type presenter struct {
	text   string
	player audio.Player
}

func (p *presenter) SetScoreText(text string) { p.text = text }
func (p *presenter) PlaySound(s *audio.Sound) { p.player.Play(s) }

// NewGame creates and starts an engine drawing onto a window-sized surface.
func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == nil {
		player = audio.NopPlayer{}
	}
	cfg := opts.Config
	if cfg == (loop.Config{}) {
		cfg = loop.DefaultConfig()
	}

	g := &Game{
		surface:   NewSurface(config.PlayfieldWidth, config.PlayfieldHeight),
		latch:     &input.Latch{},
		presenter: &presenter{player: player},
	}

	engineOpts := append([]loop.Option{loop.WithLogger(logger)}, opts.EngineOptions...)
	g.engine = loop.NewEngine(cfg, engineOpts...)
	err := g.engine.Init(loop.Host{
		Surface:   g.surface,
		Input:     g.latch,
		Presenter: g.presenter,
		Assets:    opts.Assets,
	})
	if err != nil {
		return nil, fmt.Errorf("init engine: %w", err)
	}
	if err := g.engine.Start(); err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	return g, nil
}

// Engine returns the game's engine.
func (g *Game) Engine() *loop.Engine {
	return g.engine
}

// Update reads the mouse, then steps the simulation. Q or Escape quits.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	g.trackCursor(x, y, inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))

	g.engine.Step()
	g.engine.EndFrame()
	return nil
}

// trackCursor feeds the latch. The position ebiten reports before the cursor
// first moves is not a real pointer, so the pointer only exists after a move
// or a click.
func (g *Game) trackCursor(x, y int, clicked bool) {
	moved := g.cursorSeen && (x != g.cursorX || y != g.cursorY)
	g.cursorX, g.cursorY = x, y
	g.cursorSeen = true

	p := input.Point{X: float64(x), Y: float64(y)}
	if moved || clicked {
		g.latch.SetPointer(p)
	}
	if clicked {
		g.latch.SetClick(p)
	}
}

// Draw renders the playfield and the score line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.engine.Render()
	ebitenutil.DebugPrint(screen, g.presenter.text)
}

// Layout fixes the logical screen to the playfield; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.surface.Size()
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	w, h := g.surface.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Wrangler")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

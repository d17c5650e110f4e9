// Package loop drives the game: it owns the clock, the entity registry and
// the score, and runs the per-frame update, collision and render passes.
package loop

import (
	"errors"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/wrangler/internal/audio"
	"github.com/tomz197/wrangler/internal/input"
	"github.com/tomz197/wrangler/internal/loop/config"
	"github.com/tomz197/wrangler/internal/object"
)

// Engine state-machine errors.
var (
	ErrAlreadyInitialized = errors.New("engine already initialized")
	ErrNotReady           = errors.New("engine not ready")
	ErrNoSurface          = errors.New("host has no surface")
)

// State is the engine lifecycle phase.
type State int

const (
	StateUninitialized State = iota // Created, no host bound
	StateReady                      // Host bound, entities placed
	StateRunning                    // Frames advance the simulation
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Presenter shows what the engine cannot draw on the surface itself.
type Presenter interface {
	SetScoreText(text string)
	PlaySound(s *audio.Sound)
}

// Assets resolves loaded assets by path. Missing assets return nil.
type Assets interface {
	Image(path string) image.Image
	Sound(path string) *audio.Sound
}

// Host is the environment an engine runs in.
type Host struct {
	Surface   object.Surface
	Input     *input.Latch // nil gets a private latch nothing writes to
	Presenter Presenter    // nil discards score text and sounds
	Assets    Assets       // nil leaves every sprite and sound missing
}

// Config holds engine tunables.
type Config struct {
	SpawnInterval  time.Duration
	MaxStep        time.Duration
	EffectLifetime time.Duration // Zero keeps capture effects forever
	ShowOutlines   bool
}

// DefaultConfig returns the standard game settings.
func DefaultConfig() Config {
	return Config{
		SpawnInterval: config.SpawnInterval,
		MaxStep:       config.MaxStep,
		ShowOutlines:  true,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeSource replaces the wall clock.
func WithTimeSource(src TimeSource) Option {
	return func(e *Engine) {
		e.timeSource = src
	}
}

// WithRand sets the randomness source for spawn positions and wandering.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine runs one game. It is driven by a single goroutine: the host calls
// Frame (or Step, Render and EndFrame separately) once per display frame.
type Engine struct {
	cfg        Config
	state      State
	timeSource TimeSource
	rng        *rand.Rand
	logger     *log.Logger

	clock    *Clock
	registry *Registry
	score    Score
	spawner  *object.IntervalSpawner
	screen   object.Screen

	surface   object.Surface
	latch     *input.Latch
	presenter Presenter
	assets    Assets

	background *object.Background
	goal       *object.Goal
	avatar     *object.Avatar
}

// NewEngine creates an uninitialized engine.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		timeSource: SystemTimeSource{},
		registry:   NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.cfg.MaxStep <= 0 {
		e.cfg.MaxStep = config.MaxStep
	}
	if e.cfg.SpawnInterval <= 0 {
		e.cfg.SpawnInterval = config.SpawnInterval
	}
	e.clock = NewClock(e.timeSource, e.cfg.MaxStep)
	e.spawner = object.NewIntervalSpawner(e.cfg.SpawnInterval, e.newWanderer)
	return e
}

// Init binds the host, sizes the playfield from the surface and places the
// Background, Goal and Avatar, in that order.
func (e *Engine) Init(host Host) error {
	if e.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	if host.Surface == nil {
		return ErrNoSurface
	}

	e.surface = host.Surface
	e.latch = host.Input
	if e.latch == nil {
		e.latch = &input.Latch{}
	}
	e.presenter = host.Presenter
	if e.presenter == nil {
		e.presenter = nopPresenter{}
	}
	e.assets = host.Assets

	width, height := e.surface.Size()
	e.screen = object.NewScreen(width, height)
	cx, cy := float64(e.screen.CenterX), float64(e.screen.CenterY)

	e.background = object.NewBackground(e.image(config.SpriteBackground))
	e.goal = object.NewGoal(cx, cy, e.image(config.SpriteGoal))
	e.goal.ShowOutline = e.cfg.ShowOutlines
	e.avatar = object.NewAvatar(cx, cy, e.image(config.SpriteAvatar))
	e.avatar.ShowOutline = e.cfg.ShowOutlines

	e.registry.Spawn(e.background)
	e.registry.Spawn(e.goal)
	e.registry.Spawn(e.avatar)

	e.state = StateReady
	e.logger.Info("game initialized", "width", width, "height", height)
	return nil
}

// Start begins advancing the simulation.
func (e *Engine) Start() error {
	if e.state != StateReady {
		return ErrNotReady
	}
	e.clock.Reset()
	e.state = StateRunning
	e.logger.Info("starting game")
	return nil
}

// Step advances the simulation by one clock tick: spawn, update, compact,
// collide. It does nothing unless the engine is running.
func (e *Engine) Step() {
	if e.state != StateRunning {
		return
	}

	delta := e.clock.Tick()
	e.spawner.Update(e.clock.SimulationTime(), e.screen, e.rng, e.registry)

	ctx := object.UpdateContext{
		Delta:  delta,
		Screen: e.screen,
		Rand:   e.rng,
	}
	if p, ok := e.latch.Pointer(); ok {
		ctx.Pointer = &p
	}
	if c, ok := e.latch.Click(); ok {
		ctx.Click = &c
	}

	// Entities spawned during the pass wait for the next frame.
	n := e.registry.Len()
	for i := 0; i < n; i++ {
		ent := e.registry.At(i)
		if ent.IsDestroyed() {
			continue
		}
		ctx.Avatar.X, ctx.Avatar.Y = e.avatar.Position()
		ent.Update(ctx)
	}

	e.registry.Compact()
	resolveCollisions(e.registry, e.avatar, e.goal, e.screen, &e.score, e.capture)
}

// capture leaves an effect where a wanderer was caught and plays the sound.
func (e *Engine) capture(x, y float64) {
	fx := object.NewEffect(x, y, e.image(config.SpriteEffect), e.cfg.EffectLifetime)
	e.registry.Spawn(fx)
	e.presenter.PlaySound(e.sound(config.SoundCapture))
	e.logger.Debug("wanderer captured", "x", x, "y", y, "net", e.score.Net())
}

// Render draws every entity in registry order, the avatar again on top,
// then publishes the score text.
func (e *Engine) Render() {
	if e.state == StateUninitialized {
		return
	}

	e.surface.Clear()
	e.surface.Save()

	ctx := object.DrawContext{Surface: e.surface}
	for _, ent := range e.registry.Entities() {
		ent.Draw(ctx)
	}
	e.avatar.Draw(ctx)

	e.surface.Restore()
	e.presenter.SetScoreText(e.score.Text())
}

// EndFrame clears the one-shot click latch.
func (e *Engine) EndFrame() {
	if e.latch != nil {
		e.latch.ClearClick()
	}
}

// Frame runs one full frame: Step, Render, EndFrame.
func (e *Engine) Frame() {
	e.Step()
	e.Render()
	e.EndFrame()
}

func (e *Engine) newWanderer(x, y float64) object.Entity {
	w := object.NewWanderer(x, y, e.image(config.SpriteWanderer), e.rng)
	w.ShowOutline = e.cfg.ShowOutlines
	return w
}

func (e *Engine) image(path string) image.Image {
	if e.assets == nil {
		return nil
	}
	return e.assets.Image(path)
}

func (e *Engine) sound(path string) *audio.Sound {
	if e.assets == nil {
		return nil
	}
	return e.assets.Sound(path)
}

// State returns the lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// Score returns the current score.
func (e *Engine) Score() Score {
	return e.score
}

// Avatar returns the player entity, nil before Init.
func (e *Engine) Avatar() *object.Avatar {
	return e.avatar
}

// Goal returns the pen, nil before Init.
func (e *Engine) Goal() *object.Goal {
	return e.goal
}

// Entities returns the registry contents. Callers must not modify the slice.
func (e *Engine) Entities() []object.Entity {
	return e.registry.Entities()
}

// Clock returns the engine clock.
func (e *Engine) Clock() *Clock {
	return e.clock
}

// Screen returns the playfield dimensions.
func (e *Engine) Screen() object.Screen {
	return e.screen
}

type nopPresenter struct{}

func (nopPresenter) SetScoreText(string)    {}
func (nopPresenter) PlaySound(*audio.Sound) {}

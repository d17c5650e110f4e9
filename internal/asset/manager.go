// Package asset loads sprites and sounds ahead of the game start.
//
// The Manager is a plain completion barrier: paths are queued, LoadAll loads
// them concurrently and closes the returned channel once every request has
// either succeeded or failed. Failed paths are counted, never retried, and
// resolve to nil on lookup.
package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // sprite decoder
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"  // sprite decoder
	_ "golang.org/x/image/webp" // sprite decoder

	"github.com/tomz197/wrangler/internal/audio"
)

// ErrUnsupported is returned for paths whose extension has no decoder.
var ErrUnsupported = errors.New("unsupported asset type")

// Manager resolves queued asset paths to decoded resources.
type Manager struct {
	fsys   fs.FS
	logger *log.Logger

	queue []string

	mu    sync.RWMutex
	cache map[string]any

	successCount atomic.Int32
	errorCount   atomic.Int32

	once sync.Once
	done chan struct{}
}

// NewManager creates a manager reading from fsys.
func NewManager(fsys fs.FS, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		fsys:   fsys,
		logger: logger,
		cache:  make(map[string]any),
	}
}

// Queue registers a path for the next LoadAll. Must not be called after LoadAll.
func (m *Manager) Queue(p string) {
	m.queue = append(m.queue, p)
}

// IsDone reports whether every queued path has settled.
func (m *Manager) IsDone() bool {
	return int(m.successCount.Load()+m.errorCount.Load()) == len(m.queue)
}

// SuccessCount returns the number of assets that loaded.
func (m *Manager) SuccessCount() int {
	return int(m.successCount.Load())
}

// ErrorCount returns the number of assets that failed to load.
func (m *Manager) ErrorCount() int {
	return int(m.errorCount.Load())
}

// LoadAll starts loading every queued path. The returned channel is closed
// exactly once, after all loads have settled. A cancelled context makes the
// remaining loads fail fast; the channel still closes.
// Later calls return the same channel without loading again.
func (m *Manager) LoadAll(ctx context.Context) <-chan struct{} {
	m.once.Do(func() {
		m.done = make(chan struct{})

		var wg sync.WaitGroup
		for _, p := range m.queue {
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				m.loadOne(ctx, p)
			}(p)
		}

		go func() {
			wg.Wait()
			m.logger.Info("assets loaded", "ok", m.SuccessCount(), "failed", m.ErrorCount())
			close(m.done)
		}()
	})
	return m.done
}

func (m *Manager) loadOne(ctx context.Context, p string) {
	res, err := m.decode(ctx, p)
	if err != nil {
		m.errorCount.Add(1)
		m.logger.Debug("asset failed", "path", p, "err", err)
		return
	}

	m.mu.Lock()
	m.cache[p] = res
	m.mu.Unlock()
	m.successCount.Add(1)
}

func (m *Manager) decode(ctx context.Context, p string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := m.fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(path.Ext(p)) {
	case ".png", ".bmp", ".webp":
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode image %s: %w", p, err)
		}
		return img, nil
	case ".wav":
		return audio.DecodeWAV(f)
	default:
		return nil, fmt.Errorf("%s: %w", p, ErrUnsupported)
	}
}

// Get returns the decoded resource for a path, or nil if it failed or was never queued.
func (m *Manager) Get(p string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache[p]
}

// Image returns the sprite for a path, or nil.
func (m *Manager) Image(p string) image.Image {
	img, _ := m.Get(p).(image.Image)
	return img
}

// Sound returns the clip for a path, or nil.
func (m *Manager) Sound(p string) *audio.Sound {
	s, _ := m.Get(p).(*audio.Sound)
	return s
}

// Load queues paths on a new manager over fsys and blocks until they settle.
func Load(ctx context.Context, fsys fs.FS, paths []string, logger *log.Logger) *Manager {
	m := NewManager(fsys, logger)
	for _, p := range paths {
		m.Queue(p)
	}
	<-m.LoadAll(ctx)
	return m
}

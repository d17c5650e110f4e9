// Package audio decodes and plays short sound effects.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	speakerRate   = beep.SampleRate(44100)
	resampleLevel = 4
)

// Sound is a fully decoded clip kept in memory so it can be replayed
// any number of times, including concurrently.
type Sound struct {
	buffer *beep.Buffer
}

// DecodeWAV reads a WAV stream into memory.
func DecodeWAV(r io.Reader) (*Sound, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav samples: %w", err)
	}
	return &Sound{buffer: buffer}, nil
}

// Format returns the sample format of the clip.
func (s *Sound) Format() beep.Format {
	return s.buffer.Format()
}

// Len returns the clip length in samples.
func (s *Sound) Len() int {
	return s.buffer.Len()
}

// Duration returns the clip length in time.
func (s *Sound) Duration() time.Duration {
	return s.buffer.Format().SampleRate.D(s.buffer.Len())
}

// Streamer returns a fresh streamer over the whole clip.
func (s *Sound) Streamer() beep.StreamSeeker {
	return s.buffer.Streamer(0, s.buffer.Len())
}

// Player triggers sounds. Play never blocks the caller and a nil sound is ignored.
type Player interface {
	Play(s *Sound)
}

// NopPlayer drops every sound.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play(*Sound) {}

// BellPlayer rings the terminal bell instead of playing samples.
// Used when the listener is on the other side of an SSH connection.
type BellPlayer struct {
	W io.Writer
}

// Play writes BEL to the terminal.
func (b BellPlayer) Play(s *Sound) {
	if s == nil || b.W == nil {
		return
	}
	_, _ = io.WriteString(b.W, "\a")
}

// SpeakerPlayer plays sounds on the local audio device.
// The speaker is initialized lazily on first use; when no device is available
// the player stays silent.
type SpeakerPlayer struct {
	logger *log.Logger

	once   sync.Once
	silent bool
}

// NewSpeakerPlayer creates a player for the local audio device.
func NewSpeakerPlayer(logger *log.Logger) *SpeakerPlayer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SpeakerPlayer{logger: logger}
}

// Init opens the audio device. Calling it is optional; Play does it on demand.
func (p *SpeakerPlayer) Init() {
	p.once.Do(func() {
		if err := speaker.Init(speakerRate, speakerRate.N(100*time.Millisecond)); err != nil {
			p.logger.Warn("audio device unavailable, sound disabled", "err", err)
			p.silent = true
			return
		}
		p.logger.Debug("audio device ready", "rate", int(speakerRate))
	})
}

// Play mixes the sound into the speaker output.
func (p *SpeakerPlayer) Play(s *Sound) {
	if s == nil {
		return
	}
	p.Init()
	if p.silent {
		return
	}

	var streamer beep.Streamer = s.Streamer()
	if rate := s.Format().SampleRate; rate != speakerRate {
		streamer = beep.Resample(resampleLevel, rate, speakerRate, streamer)
	}
	speaker.Play(streamer)
}

// Ensure implementations satisfy Player.
var (
	_ Player = NopPlayer{}
	_ Player = BellPlayer{}
	_ Player = (*SpeakerPlayer)(nil)
)

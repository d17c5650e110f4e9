package audio

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"time"
)

// pcmWAV builds a mono 16-bit PCM WAV with n samples of a square wave.
func pcmWAV(rate, n int) []byte {
	var data bytes.Buffer
	for i := 0; i < n; i++ {
		v := int16(8000)
		if (i/20)%2 == 0 {
			v = -8000
		}
		binary.Write(&data, binary.LittleEndian, v)
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*2))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	s, err := DecodeWAV(bytes.NewReader(pcmWAV(22050, 2205)))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if s.Len() != 2205 {
		t.Errorf("Len = %d, want 2205", s.Len())
	}
	if got := s.Format().SampleRate; got != 22050 {
		t.Errorf("SampleRate = %d, want 22050", got)
	}
	if d := s.Duration(); d < 99*time.Millisecond || d > 101*time.Millisecond {
		t.Errorf("Duration = %v, want ~100ms", d)
	}

	// Each streamer replays the clip from the start.
	for i := 0; i < 2; i++ {
		samples := make([][2]float64, 4096)
		total := 0
		st := s.Streamer()
		for {
			n, ok := st.Stream(samples)
			total += n
			if !ok {
				break
			}
		}
		if total != 2205 {
			t.Errorf("replay %d streamed %d samples, want 2205", i, total)
		}
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV(strings.NewReader("not a wav file at all")); err == nil {
		t.Fatal("expected error for invalid data")
	}
}

func TestBellPlayer(t *testing.T) {
	s, err := DecodeWAV(bytes.NewReader(pcmWAV(8000, 80)))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}

	var out bytes.Buffer
	p := BellPlayer{W: &out}
	p.Play(s)
	p.Play(nil)

	if out.String() != "\a" {
		t.Errorf("bell output = %q, want single BEL", out.String())
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = NopPlayer{}
	p.Play(nil)
}

package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// monoWAV builds a 16-bit PCM mono WAV file.
func monoWAV(rate uint32, samples []int16) []byte {
	var buf bytes.Buffer
	dataLen := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // channels
	binary.Write(&buf, binary.LittleEndian, rate)
	binary.Write(&buf, binary.LittleEndian, rate*2) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func TestGainExponent(t *testing.T) {
	tests := []struct {
		vol      float64
		min, max float64
	}{
		{1.0, -0.01, 0.01},
		{0.5, -1.01, -0.99},
		{0.25, -2.01, -1.99},
		{0.0, -200, -90},
	}

	for _, tt := range tests {
		got := gainExponent(tt.vol)
		if got < tt.min || got > tt.max {
			t.Errorf("gainExponent(%f) = %f, want between %f and %f", tt.vol, got, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if g := m.Gain(); g != 1.0 {
		t.Errorf("default gain = %f, want 1.0", g)
	}
	if m.initialized {
		t.Error("new manager should not be initialized")
	}
}

func TestGainCombinesMasterAndSFX(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	m.SetSFXVolume(0.5)
	if g := m.Gain(); g != 0.25 {
		t.Errorf("gain = %f, want 0.25", g)
	}

	m.SetMasterVolume(2.0)
	if g := m.Gain(); g != 0.5 {
		t.Errorf("gain = %f, want 0.5 (master clamped to 1)", g)
	}

	m.SetSFXVolume(-1.0)
	if g := m.Gain(); g != 0 {
		t.Errorf("gain = %f, want 0 (sfx clamped to 0)", g)
	}
}

func TestLoad(t *testing.T) {
	m := New()
	data := monoWAV(22050, []int16{0, 1000, -1000, 0, 500, -500})

	if err := m.Load(SoundJump, data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.buffers[SoundJump] == nil {
		t.Error("expected jump to be loaded")
	}
	if _, ok := m.buffers[SoundStomp]; ok {
		t.Error("stomp was never loaded")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	m := New()
	if err := m.Load(SoundStomp, []byte("not a wav file")); err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := m.buffers[SoundStomp]; ok {
		t.Error("failed load should not register the sound")
	}
}

func TestPlayRequiresInit(t *testing.T) {
	m := New()
	if err := m.Play(SoundJump); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init: got %v, want ErrNotInitialized", err)
	}
}

func TestSoundFiles(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Sounds() {
		f := s.File()
		if f == "" {
			t.Errorf("sound %d has no file", s)
		}
		if seen[f] {
			t.Errorf("duplicate file %s", f)
		}
		seen[f] = true
	}
}

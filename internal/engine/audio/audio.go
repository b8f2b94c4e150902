// Package audio plays short sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Sound identifies a gameplay sound effect.
type Sound uint8

const (
	SoundJump Sound = iota
	SoundStomp
	SoundRespawn
)

var soundFiles = map[Sound]string{
	SoundJump:    "jump.wav",
	SoundStomp:   "stomp.wav",
	SoundRespawn: "respawn.wav",
}

// File returns the asset file name of s.
func (s Sound) File() string {
	return soundFiles[s]
}

// Sounds returns every sound effect.
func Sounds() []Sound {
	return []Sound{SoundJump, SoundStomp, SoundRespawn}
}

var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrNotLoaded      = errors.New("sound not loaded")
)

// Manager mixes sound effects on the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// Decoded effects, replayed without decoding again
	buffers map[Sound]*beep.Buffer

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		buffers:      make(map[Sound]*beep.Buffer),
		sfxMixer:     &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// Gain returns the effective effect volume, master × SFX.
func (m *Manager) Gain() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume * m.sfxVolLevel
}

// Load decodes WAV data for s.
func (m *Manager) Load(s Sound, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", s.File(), err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read %s: %w", s.File(), err)
	}

	m.mu.Lock()
	m.buffers[s] = buf
	m.mu.Unlock()
	return nil
}

// Play mixes s into the output.
func (m *Manager) Play(s Sound) error {
	m.mu.RLock()
	initialized := m.initialized
	sfxVol := m.masterVolume * m.sfxVolLevel
	buf := m.buffers[s]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return fmt.Errorf("%s: %w", s.File(), ErrNotLoaded)
	}

	var streamer beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != m.sampleRate {
		streamer = beep.Resample(4, buf.Format().SampleRate, m.sampleRate, streamer)
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   gainExponent(sfxVol),
		Silent:   sfxVol <= 0,
	})
	speaker.Unlock()

	return nil
}

// gainExponent converts a 0-1 volume into the base-2 exponent used by
// effects.Volume: 1 -> 0, 0.5 -> -1 (about -6dB).
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

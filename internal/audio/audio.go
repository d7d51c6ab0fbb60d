// Package audio loads short sound effects into memory and mixes them into a
// single output stream.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedChannels is returned for sources that are neither mono nor stereo.
var ErrUnsupportedChannels = errors.New("audio: unsupported channel count")

// Sound is decoded sample data held in memory at the mixer's sample rate.
type Sound struct {
	name string
	buf  *beep.Buffer
}

// Name returns the file the sound was loaded from, or the tone description.
func (s *Sound) Name() string { return s.name }

// Len returns the number of samples.
func (s *Sound) Len() int { return s.buf.Len() }

// Duration returns the play time of the sound.
func (s *Sound) Duration() time.Duration {
	return s.buf.Format().SampleRate.D(s.buf.Len())
}

// Output is where the mixer is drained. Lock and Unlock guard mixer changes
// against the output goroutine.
type Output interface {
	Start(sr beep.SampleRate, s beep.Streamer) error
	Lock()
	Unlock()
}

// Speaker plays through the system audio device.
type Speaker struct{}

func (Speaker) Start(sr beep.SampleRate, s beep.Streamer) error {
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (Speaker) Lock()   { speaker.Lock() }
func (Speaker) Unlock() { speaker.Unlock() }

// Manager caches sounds and mixes them into one stream.
type Manager struct {
	mu     sync.Mutex
	format beep.Format
	volume float64
	mixer  *beep.Mixer
	out    Output
	cache  map[string]*Sound
	logger *log.Logger
}

// New creates a manager producing stereo output at the given sample rate.
// Volume is in halvings: 0 is unchanged, -1 half as loud.
func New(rate int, volume float64, logger *log.Logger) *Manager {
	if rate <= 0 {
		rate = 44100
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		format: beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2},
		volume: volume,
		mixer:  &beep.Mixer{},
		cache:  make(map[string]*Sound),
		logger: logger,
	}
}

// Start connects the mixer to out. Until Start succeeds Play does nothing,
// which is how sessions without an audio device stay silent.
func (m *Manager) Start(out Output) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.out != nil {
		return nil
	}
	if err := out.Start(m.format.SampleRate, m.mixer); err != nil {
		return fmt.Errorf("audio: cannot start output: %w", err)
	}
	m.out = out
	return nil
}

// Active reports whether sounds are being mixed to an output.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out != nil
}

// SampleRate returns the output sample rate.
func (m *Manager) SampleRate() beep.SampleRate {
	return m.format.SampleRate
}

// Load decodes a WAV file once and caches it. Mono sources play on both
// channels; anything else besides stereo is rejected.
func (m *Manager) Load(path string) (*Sound, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.cache[path]; ok {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer streamer.Close()

	if err := checkChannels(format.NumChannels); err != nil {
		return nil, fmt.Errorf("%w: %s has %d", err, path, format.NumChannels)
	}

	buf := beep.NewBuffer(m.format)
	if format.SampleRate == m.format.SampleRate {
		buf.Append(streamer)
	} else {
		buf.Append(beep.Resample(4, format.SampleRate, m.format.SampleRate, streamer))
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: cannot read %s: %w", path, err)
	}

	s := &Sound{name: path, buf: buf}
	m.cache[path] = s
	m.logger.Debug("loaded sound", "path", path, "samples", s.Len(), "rate", format.SampleRate)
	return s, nil
}

func checkChannels(n int) error {
	if n == 1 || n == 2 {
		return nil
	}
	return ErrUnsupportedChannels
}

// Tone synthesizes a short decaying sine blip, used as the hit sound when no
// file is configured.
func (m *Manager) Tone(freq float64, d time.Duration) *Sound {
	sr := m.format.SampleRate
	n := sr.N(d)
	pos := 0
	gen := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			t := float64(pos) / float64(sr)
			env := math.Exp(-t * 30)
			v := 0.3 * env * math.Sin(2*math.Pi*freq*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return i, true
	})

	buf := beep.NewBuffer(m.format)
	buf.Append(gen)
	return &Sound{name: fmt.Sprintf("tone %.0fHz", freq), buf: buf}
}

// Play mixes a fresh playback of s into the output.
func (m *Manager) Play(s *Sound) {
	if s == nil {
		return
	}
	m.mu.Lock()
	out := m.out
	m.mu.Unlock()
	if out == nil {
		return
	}

	var st beep.Streamer = s.buf.Streamer(0, s.buf.Len())
	if m.volume != 0 {
		st = &effects.Volume{Streamer: st, Base: 2, Volume: m.volume}
	}

	out.Lock()
	m.mixer.Add(st)
	out.Unlock()
}

// Playing returns the number of sounds currently in the mixer.
func (m *Manager) Playing() int {
	m.mu.Lock()
	out := m.out
	m.mu.Unlock()
	if out == nil {
		return 0
	}
	out.Lock()
	defer out.Unlock()
	return m.mixer.Len()
}

package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// fakeOutput keeps the mixer so tests can drain it by hand.
type fakeOutput struct {
	sync.Mutex
	stream beep.Streamer
	err    error
}

func (f *fakeOutput) Start(_ beep.SampleRate, s beep.Streamer) error {
	if f.err != nil {
		return f.err
	}
	f.stream = s
	return nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
}

// writeWAV encodes a sine wave with the given layout into a temp file.
func writeWAV(t *testing.T, rate beep.SampleRate, channels int, d time.Duration) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	n := rate.N(d)
	pos := 0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			v := 0.5 * math.Sin(2*math.Pi*440*float64(pos)/float64(rate))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return i, true
	})

	format := beep.Format{SampleRate: rate, NumChannels: channels, Precision: 2}
	if err := wav.Encode(f, src, format); err != nil {
		t.Fatalf("wav.Encode() failed: %v", err)
	}
	return path
}

func TestLoadResamplesAndCaches(t *testing.T) {
	tests := []struct {
		name     string
		rate     beep.SampleRate
		channels int
	}{
		{"mono same rate", 44100, 1},
		{"stereo same rate", 44100, 2},
		{"mono half rate", 22050, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New(44100, 0, quietLogger())
			path := writeWAV(t, tc.rate, tc.channels, 200*time.Millisecond)

			s, err := m.Load(path)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			// 200ms at the output rate, give or take the resampler's edges.
			want := m.SampleRate().N(200 * time.Millisecond)
			if diff := s.Len() - want; diff < -64 || diff > 64 {
				t.Errorf("Len() = %d, expected about %d", s.Len(), want)
			}

			again, err := m.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if again != s {
				t.Error("second Load() should return the cached sound")
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	m := New(44100, 0, quietLogger())

	if _, err := m.Load(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}

	junk := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wave file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load(junk); err == nil {
		t.Error("expected error for invalid wav data")
	}
}

func TestCheckChannels(t *testing.T) {
	tests := []struct {
		n    int
		want error
	}{
		{1, nil},
		{2, nil},
		{0, ErrUnsupportedChannels},
		{4, ErrUnsupportedChannels},
		{6, ErrUnsupportedChannels},
	}
	for _, tc := range tests {
		if err := checkChannels(tc.n); !errors.Is(err, tc.want) {
			t.Errorf("checkChannels(%d) = %v, expected %v", tc.n, err, tc.want)
		}
	}
}

func TestPlayWithoutOutputIsSilent(t *testing.T) {
	m := New(44100, 0, quietLogger())
	m.Play(m.Tone(880, 50*time.Millisecond))
	m.Play(nil)

	if m.Active() {
		t.Error("manager should not be active before Start")
	}
	if got := m.Playing(); got != 0 {
		t.Errorf("Playing() = %d, expected 0", got)
	}
}

func TestPlayMixesUntilDrained(t *testing.T) {
	m := New(44100, -1, quietLogger())
	out := &fakeOutput{}
	if err := m.Start(out); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	tone := m.Tone(880, 10*time.Millisecond)
	m.Play(tone)
	m.Play(tone)
	if got := m.Playing(); got != 2 {
		t.Fatalf("Playing() = %d, expected 2", got)
	}

	samples := make([][2]float64, tone.Len()*2)
	out.stream.Stream(samples)
	out.stream.Stream(samples)

	if got := m.Playing(); got != 0 {
		t.Errorf("Playing() after drain = %d, expected 0", got)
	}
}

func TestStartError(t *testing.T) {
	m := New(44100, 0, quietLogger())
	if err := m.Start(&fakeOutput{err: errors.New("no device")}); err == nil {
		t.Fatal("expected Start() error")
	}
	if m.Active() {
		t.Error("failed Start() must leave the manager silent")
	}
}

func TestTone(t *testing.T) {
	m := New(48000, 0, quietLogger())
	s := m.Tone(660, 100*time.Millisecond)

	if s.Len() != 4800 {
		t.Errorf("Len() = %d, expected 4800", s.Len())
	}
	if s.Duration() != 100*time.Millisecond {
		t.Errorf("Duration() = %v", s.Duration())
	}
}

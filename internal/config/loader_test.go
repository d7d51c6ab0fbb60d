package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

// isolate points the user and working directories at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ball.Speed != 10 || cfg.HighScores.Max != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "breakout.yaml"), []byte("ball:\n  speed: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ball.Speed != 7 {
		t.Errorf("local config not used, speed = %v", cfg.Ball.Speed)
	}
	if cfg.Ball.Radius != 10 {
		t.Errorf("partial file should keep other defaults, radius = %v", cfg.Ball.Radius)
	}

	userDir := filepath.Join(home, ".breakout")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("ball:\n  speed: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ball.Speed != 12 {
		t.Errorf("user config should win over local config, speed = %v", cfg.Ball.Speed)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("display:\n  fps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load(custom) error: %v", err)
	}
	if cfg.Display.FPS != 30 || cfg.Ball.Speed != 10 {
		t.Errorf("custom config should win and merge over defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("ball: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("unparsable custom file should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("theme:\n  score_color: mauve\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown colour should be ErrInvalid, got %v", err)
	}
}

func TestThemeLayout(t *testing.T) {
	th := Default().Theme

	if s := th.ClientSize(); s.W != 1050 || s.H != 750 {
		t.Errorf("ClientSize() = %+v, expected 1050x750", s)
	}
	if s := th.BrickSize(); s.W != 100 || s.H != 25 {
		t.Errorf("BrickSize() = %+v, expected 100x25", s)
	}
	if p := th.BrickOrigin(2, 3); p.X != 225 || p.Y != 100 {
		t.Errorf("BrickOrigin(2, 3) = %v, expected (225, 100)", p)
	}

	firmness := []int{4, 4, 3, 3, 2, 2, 1, 1}
	for row, want := range firmness {
		if got := th.RowFirmness(row); got != want {
			t.Errorf("RowFirmness(%d) = %d, expected %d", row, got, want)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDifficulty(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := Default()

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Ball.Speed >= base.Ball.Speed || easy.Paddle.Width <= base.Paddle.Width {
		t.Errorf("easy should slow the ball and widen the paddle: %+v", easy)
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Ball.Speed <= base.Ball.Speed || hard.Paddle.Width >= base.Paddle.Width {
		t.Errorf("hard should speed up the ball and narrow the paddle: %+v", hard)
	}

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal should not change the config")
	}
}

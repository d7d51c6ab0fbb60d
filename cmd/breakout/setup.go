package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/fonts"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/screens"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// hitTone is played when no hit sound file is configured.
const (
	hitToneFreq     = 880
	hitToneDuration = 60 * time.Millisecond
)

// loadConfig loads the config and applies the global flags to it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.Display.FPS = flagFPS
	}
	if flagScores != "" {
		cfg.HighScores.Path = flagScores
	}
	if cfg.HighScores.Path == "" {
		cfg.HighScores.Path = config.UserPath("highscores.dat")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.breakout/breakout.log for appending. The terminal
// belongs to the game while it runs.
func openLogFile() (io.WriteCloser, error) {
	path := config.UserPath("breakout.log")
	if path == "" {
		return nil, errors.New("cannot get home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// openFonts opens the font directory and checks the banner family exists.
func openFonts(cfg *config.Config, logger *log.Logger) (*fonts.Manager, error) {
	fm, err := fonts.Open(cfg.Fonts.Dir, cfg.Fonts.DPI, logger)
	if err != nil {
		return nil, err
	}
	if !fm.Has(cfg.Fonts.Family) {
		return nil, fmt.Errorf("%w: %q (run 'breakout fonts' to list families)", fonts.ErrUnknownFamily, cfg.Fonts.Family)
	}
	return fm, nil
}

// openHistory opens the history database. Failures leave History unset.
func openHistory(svc *screens.Services) *storage.Store {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		warn("could not open history database: %v", err)
		return nil
	}
	svc.History = db
	return db
}

// openAudio loads the hit sound and starts the speaker. A bad sound file
// is a config error; a missing audio device only silences the game.
func openAudio(cfg *config.Config, svc *screens.Services, logger *log.Logger) error {
	if !cfg.Sound.Enabled {
		return nil
	}

	mgr := audio.New(cfg.Sound.SampleRate, cfg.Sound.Volume, logger)
	if cfg.Sound.Hit != "" {
		s, err := mgr.Load(cfg.Sound.Hit)
		if err != nil {
			return err
		}
		svc.HitSound = s
	} else {
		svc.HitSound = mgr.Tone(hitToneFreq, hitToneDuration)
	}

	if err := mgr.Start(audio.Speaker{}); err != nil {
		warn("%v; playing without sound", err)
		return nil
	}
	svc.Sound = mgr
	return nil
}

// openScores opens the high-score file.
func openScores(cfg *config.Config, logger *log.Logger) *highscore.Store {
	return highscore.Open(cfg.HighScores.Path, cfg.HighScores.Max, logger)
}

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/screens"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal",
	Long: `Start the game on this terminal.

Controls:
  Mouse, Left/Right  - Move the paddle
  Up/Down, Enter     - Pick a menu entry
  P                  - Pause
  Q                  - Leave the game (while paused)
  Ctrl+D             - Toggle debug mode
  Ctrl+S             - Save a screenshot to ~/.breakout/screenshots
  F1                 - Toggle help
  Ctrl+C             - Quit

Difficulty options:
  easy   - Slower ball, wider paddle
  normal - The configured values
  hard   - Faster ball, narrower paddle

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err != nil {
		warn("could not open log file: %v", err)
	} else {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "")
	if err != nil {
		fatal("%v", err)
	}

	fm, err := openFonts(cfg, logger)
	if err != nil {
		fatal("%v", err)
	}

	svc := screens.Services{
		Fonts:  fm,
		Scores: openScores(cfg, logger),
		Logger: logger,
	}
	if err := openAudio(cfg, &svc, logger); err != nil {
		fatal("%v", err)
	}
	if db := openHistory(&svc); db != nil {
		defer db.Close()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Info("starting", "fps", cfg.Display.FPS, "difficulty", flagDifficulty, "scores", cfg.HighScores.Path)
	runErr := tui.Run(cfg, svc, tui.Options{
		Width:         width,
		Height:        height,
		FPS:           cfg.Display.FPS,
		ScreenshotDir: config.UserPath("screenshots"),
	})
	if runErr != nil {
		logger.Error("game stopped", "err", runErr)
		fatal("running game: %v", runErr)
	}
}

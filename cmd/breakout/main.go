// breakout is a brick-breaking game for the terminal.
//
// Usage:
//
//	breakout                  - Play (same as "breakout play")
//	breakout play             - Play on this terminal
//	breakout serve            - Start SSH server for remote play
//	breakout scores           - Show high scores and game history
//	breakout fonts            - List the available font families
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--config <path>       - Use a custom YAML config
//	--difficulty <name>   - easy, normal or hard
//	--scores <path>       - High-score file (default: ~/.breakout/highscores.dat)
//	--db <path>           - History database (default: ~/.breakout/history.db)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDifficulty string
	flagScores     string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - Break bricks in your terminal",
	Long: `Breakout is a terminal brick breaker. Steer the paddle with the mouse
or the arrow keys and clear the wall without dropping the ball.

Available commands:
  play     - Play on this terminal (default)
  serve    - Start SSH server for remote play
  scores   - View high scores and game history
  fonts    - List font families for the title banner

Examples:
  breakout
  breakout play --difficulty hard
  breakout serve --ssh :2222
  breakout scores --browse`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagScores, "scores", "", "Path to high-score file (default ~/.breakout/highscores.dat)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/history.db", "Path to game history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(fontsCmd)
}

// fatal prints an error the way every command reports it and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// warn reports a problem with an optional service.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

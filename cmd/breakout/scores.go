package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// historyRows is how many sessions the scores command loads.
const historyRows = 100

var (
	flagClear        bool
	flagClearHistory bool
	flagBrowse       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and game history",
	Long: `Display the high-score table and statistics over every recorded game.

Examples:
  breakout scores
  breakout scores --browse          # Interactive tables
  breakout scores --clear           # Empty the high-score table
  breakout scores --clear-history   # Delete the recorded games`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Clear the high-score table")
	scoresCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "Delete the game history")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse scores and history interactively")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	logger, err := newLogger(os.Stderr, "")
	if err != nil {
		fatal("%v", err)
	}

	scores := openScores(cfg, logger)
	if flagClear {
		scores.Clear()
		fmt.Println("High scores cleared.")
	}

	data := tui.ScoreboardData{HighScores: scores.Entries()}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		warn("could not open history database: %v", err)
	} else {
		defer db.Close()
		if flagClearHistory {
			if err := db.ClearSessions(); err != nil {
				fatal("clearing history: %v", err)
			}
			fmt.Println("Game history cleared.")
		}
		loadHistory(db, &data)
	}

	if flagBrowse {
		width, height := 80, 24
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fatal("--browse needs a terminal")
		}
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(data, width, height); err != nil {
			fatal("running scoreboard: %v", err)
		}
		return
	}

	printScores(data)
}

// loadHistory fills the history part of the scoreboard. Query failures
// are reported and leave that part empty.
func loadHistory(db *storage.Store, data *tui.ScoreboardData) {
	var err error
	if data.Recent, err = db.RecentSessions(historyRows); err != nil {
		warn("reading recent games: %v", err)
	}
	if data.Best, err = db.BestSessions(historyRows); err != nil {
		warn("reading best games: %v", err)
	}
	if data.Stats, err = db.Stats(); err != nil {
		warn("reading statistics: %v", err)
	}
}

func printScores(data tui.ScoreboardData) {
	fmt.Println("High Scores - Breakout")
	fmt.Println()

	if len(data.HighScores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-15s  %-7s  %s\n", "Rank", "Name", "Score", "Date")
		fmt.Printf("  %-4s  %-15s  %-7s  %s\n", "----", "----", "-----", "----")
		for i, e := range data.HighScores {
			fmt.Printf("  %-4d  %-15s  %-7d  %s\n", i+1, e.Name, e.Score, e.Time.Local().Format("2006-01-02 15:04"))
		}
	}

	if data.Stats == nil {
		return
	}
	fmt.Println()
	fmt.Println(tui.FormatStats(data.Stats))
	if !data.Stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", data.Stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/fonts"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "List the available font families",
	Long: `Shows the built-in font families and every family found in the
configured font directory (fonts.dir). The family set in fonts.family draws
the title banner.`,
	Args: cobra.NoArgs,
	Run:  runFonts,
}

func runFonts(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	fm, err := fonts.Open(cfg.Fonts.Dir, cfg.Fonts.DPI, nil)
	if err != nil {
		fatal("%v", err)
	}

	families := fm.Families()
	width := 6 // "Family" header
	for _, f := range families {
		width = max(width, len(f))
	}

	fmt.Printf("  %-*s  %s\n", width, "Family", "Source")
	fmt.Printf("  %-*s  %s\n", width, "------", "------")
	for _, f := range families {
		src := fm.Path(f)
		if src == "" {
			src = "built-in"
		}
		mark := ""
		if strings.EqualFold(f, cfg.Fonts.Family) {
			mark = "  (banner)"
		}
		fmt.Printf("  %-*s  %s%s\n", width, f, src, mark)
	}
}

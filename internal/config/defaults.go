package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/breakout.yaml.
func Default() Config {
	return Config{
		Theme: Theme{
			GridUnit:       5,
			BrickUnit:      25,
			BrickWidth:     4,
			Cols:           10,
			Rows:           8,
			StageDepth:     22,
			FallMargin:     100,
			FirmnessColors: []string{"white", "cyan", "lime", "yellow", "red"},
			TitleColor:     "yellow",
			ShadowColor:    "magenta",
			TextColor:      "white",
			ScoreColor:     "yellow",
			HoverColor:     "yellow",
		},
		Ball: Ball{
			Speed:      10,
			Radius:     10,
			DebugSpeed: 8,
		},
		Paddle: Paddle{
			Width:         120, // 5 brick units minus a grid unit
			Height:        20,
			Lerp:          1.0 / 3,
			ReflectOffset: 40,
			KeyStep:       50,
		},
		Fonts: Fonts{
			Family:     "Go",
			DPI:        72,
			BannerSize: 12,
		},
		Sound: Sound{
			Enabled:    true,
			SampleRate: 44100,
		},
		HighScores: HighScores{
			Max: 5,
		},
		Display: Display{
			FPS: 60,
		},
		Debug: Debug{
			Allow: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}

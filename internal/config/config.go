// Package config provides YAML-based configuration loading and difficulty
// presets for the breakout game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Config contains all configuration for the game.
type Config struct {
	Theme      Theme      `yaml:"theme"`
	Ball       Ball       `yaml:"ball"`
	Paddle     Paddle     `yaml:"paddle"`
	Fonts      Fonts      `yaml:"fonts"`
	Sound      Sound      `yaml:"sound"`
	HighScores HighScores `yaml:"high_scores"`
	Display    Display    `yaml:"display"`
	Debug      Debug      `yaml:"debug"`
}

// Theme defines the stage layout and the colour palette.
// Sizes are in world units; the stage is measured in brick units.
type Theme struct {
	GridUnit       float64  `yaml:"grid_unit"`
	BrickUnit      float64  `yaml:"brick_unit"`
	BrickWidth     int      `yaml:"brick_width"` // in brick units
	Cols           int      `yaml:"cols"`
	Rows           int      `yaml:"rows"`
	StageDepth     int      `yaml:"stage_depth"` // empty brick rows below the grid
	FallMargin     float64  `yaml:"fall_margin"`
	FirmnessColors []string `yaml:"firmness_colors"` // index 0 is the ball's starting colour
	TitleColor     string   `yaml:"title_color"`
	ShadowColor    string   `yaml:"shadow_color"`
	TextColor      string   `yaml:"text_color"`
	ScoreColor     string   `yaml:"score_color"`
	HoverColor     string   `yaml:"hover_color"`
}

// Ball defines ball parameters.
type Ball struct {
	Speed      float64 `yaml:"speed"`
	Radius     float64 `yaml:"radius"`
	DebugSpeed float64 `yaml:"debug_speed"`
}

// Paddle defines paddle parameters.
type Paddle struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Lerp          float64 `yaml:"lerp"`
	ReflectOffset float64 `yaml:"reflect_offset"` // distance of the bounce origin below the paddle centre
	KeyStep       float64 `yaml:"key_step"`       // target shift per arrow key press
}

// Fonts defines where fonts come from and the banner size.
type Fonts struct {
	Dir        string  `yaml:"dir"`
	Family     string  `yaml:"family"`
	DPI        float64 `yaml:"dpi"`
	BannerSize float64 `yaml:"banner_size"` // in canvas pixels
}

// Sound defines the hit sound.
type Sound struct {
	Enabled    bool    `yaml:"enabled"`
	Hit        string  `yaml:"hit"` // WAV file; a synthesized tone is used when empty
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // beep volume exponent, 0 is unchanged
}

// HighScores defines the high-score file.
type HighScores struct {
	Path string `yaml:"path"`
	Max  int    `yaml:"max"`
}

// Display defines the frame rate.
type Display struct {
	FPS int `yaml:"fps"`
}

// Debug controls the debug tooling on the gameplay screen.
type Debug struct {
	Allow bool `yaml:"allow"`
}

// ClientSize returns the world size of the stage: the brick grid plus a
// one brick margin on each side, and the empty area below it.
func (t *Theme) ClientSize() core.SizeF {
	return core.SizeF{
		W: float64(t.Cols*t.BrickWidth+2) * t.BrickUnit,
		H: float64(t.Rows+t.StageDepth) * t.BrickUnit,
	}
}

// BrickSize returns the world size of one brick.
func (t *Theme) BrickSize() core.SizeF {
	return core.SizeF{W: float64(t.BrickWidth) * t.BrickUnit, H: t.BrickUnit}
}

// BrickOrigin returns the top-left corner of the brick at (col, row).
func (t *Theme) BrickOrigin(col, row int) core.Vec2 {
	s := t.BrickSize()
	return core.Vec2{
		X: t.BrickUnit + float64(col)*s.W,
		Y: t.BrickUnit + float64(row)*s.H,
	}
}

// MaxFirmness is the firmness of the top rows.
func (t *Theme) MaxFirmness() int {
	return len(t.FirmnessColors) - 1
}

// RowFirmness returns the firmness of bricks in a grid row. Every two rows
// lose one point, never dropping below 1.
func (t *Theme) RowFirmness(row int) int {
	return max(t.MaxFirmness()-row/2, 1)
}

// FirmnessColor returns the palette colour for a firmness value, clamped
// to the palette.
func (t *Theme) FirmnessColor(firmness int) core.Color {
	i := core.Clamp(firmness, 0, len(t.FirmnessColors)-1)
	return mustColor(t.FirmnessColors[i])
}

func (t *Theme) Title() core.Color  { return mustColor(t.TitleColor) }
func (t *Theme) Shadow() core.Color { return mustColor(t.ShadowColor) }
func (t *Theme) Text() core.Color   { return mustColor(t.TextColor) }
func (t *Theme) Score() core.Color  { return mustColor(t.ScoreColor) }
func (t *Theme) Hover() core.Color  { return mustColor(t.HoverColor) }

// mustColor resolves a colour name already checked by Validate.
func mustColor(name string) core.Color {
	c, _ := core.ParseColor(name)
	return c
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the configuration for values the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	t := &c.Theme
	check(t.GridUnit > 0, "theme.grid_unit must be positive")
	check(t.BrickUnit > 0, "theme.brick_unit must be positive")
	check(t.BrickWidth > 0, "theme.brick_width must be positive")
	check(t.Cols > 0 && t.Rows > 0, "theme.cols and theme.rows must be positive")
	check(t.StageDepth > 0, "theme.stage_depth must be positive")
	check(len(t.FirmnessColors) >= 2, "theme.firmness_colors needs at least 2 entries")
	names := append([]string{t.TitleColor, t.ShadowColor, t.TextColor, t.ScoreColor, t.HoverColor}, t.FirmnessColors...)
	for _, n := range names {
		_, ok := core.ParseColor(n)
		check(ok, "unknown colour %q", n)
	}

	check(c.Ball.Speed > 0, "ball.speed must be positive")
	check(c.Ball.Radius > 0, "ball.radius must be positive")
	check(c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle size must be positive")
	check(c.Paddle.Lerp > 0 && c.Paddle.Lerp <= 1, "paddle.lerp must be in (0, 1]")
	check(c.Fonts.DPI > 0, "fonts.dpi must be positive")
	check(c.Fonts.BannerSize > 0, "fonts.banner_size must be positive")
	check(c.Sound.SampleRate > 0, "sound.sample_rate must be positive")
	check(c.HighScores.Max > 0 && c.HighScores.Max <= 255, "high_scores.max must be in 1..255")
	check(c.Display.FPS > 0, "display.fps must be positive")

	return errors.Join(errs...)
}

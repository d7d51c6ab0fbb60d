package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
)

// NewGrid builds the brick grid for a new session, row by row.
// Firmness drops by one every two rows.
func NewGrid(theme *config.Theme) []*Brick {
	size := theme.BrickSize()
	bricks := make([]*Brick, 0, theme.Rows*theme.Cols)
	for row := range theme.Rows {
		for col := range theme.Cols {
			bricks = append(bricks, &Brick{
				Pos:      theme.BrickOrigin(col, row),
				Size:     size,
				Firmness: theme.RowFirmness(row),
			})
		}
	}
	return bricks
}

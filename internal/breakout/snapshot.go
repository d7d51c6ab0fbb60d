package breakout

import "math"

// Snapshot contains the complete simulation state, for determinism tests
// and session summaries. Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick      uint64
	Score     int
	Combo     int
	State     int
	Destroyed int

	BallX, BallY   float64
	BallVX, BallVY float64
	BallColor      int
	PaddleX        float64

	// Firmness of each remaining brick in grid order.
	Bricks []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]int, len(g.Bricks))
	for i, b := range g.Bricks {
		bricks[i] = b.Firmness
	}
	return Snapshot{
		Tick:      g.ticks,
		Score:     g.score,
		Combo:     g.combo,
		State:     int(g.state),
		Destroyed: g.destroyed,
		BallX:     g.Ball.Pos.X,
		BallY:     g.Ball.Pos.Y,
		BallVX:    g.Ball.Vel.X,
		BallVY:    g.Ball.Vel.Y,
		BallColor: int(g.Ball.Color),
		PaddleX:   g.Paddle.Pos().X,
		Bricks:    bricks,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Destroyed) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallVX)
	h = h*31 + math.Float64bits(snap.BallVY)
	h = h*31 + uint64(snap.BallColor) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)
	for _, f := range snap.Bricks {
		h = h*31 + uint64(f) //#nosec G115 -- hash computation
	}
	return h
}

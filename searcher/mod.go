package searcher

import (
	"morris/experiments/metrics"
	"morris/game"
	"time"
)

// Searcher picks a move for the side to move before the deadline.
type Searcher interface {
	Search(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric)
}

// NoMove is returned when the side to move has no legal moves.
var NoMove = game.Move{From: game.NoPosition, To: game.NoPosition, Capture: game.NoPosition}

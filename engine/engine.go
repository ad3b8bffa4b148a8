package engine

import (
	"morris/experiments/metrics"
	"morris/game"
)

// MaxTurns bounds a game whose rules would otherwise let it run on.
const MaxTurns = 1000

type Engine interface {
	// Run plays a game till it is over or the turn limit is reached. Winner is
	// game.NoPlayer for a draw or an unfinished game.
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

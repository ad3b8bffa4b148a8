package agent

import (
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
	"time"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// FindMove returns a move for the side to move and the metrics of the search
	// that produced it. It returns searcher.NoMove only when no legal move exists.
	FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric)
}

type searchAgent struct {
	searcher searcher.Searcher
}

func NewSearchAgent(s searcher.Searcher) Agent {
	return &searchAgent{searcher: s}
}

func (a *searchAgent) FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	return a.searcher.Search(state, deadline)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent plays uniformly random legal moves. Equal seeds give equal
// games against the same opponent.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return searcher.NoMove, metrics.SearchMetric{StopReason: metrics.StopNoMoves}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Evaluate: "random"}
}

type firstMoveAgent struct{}

// NewFirstMoveAgent always plays the first generated move.
func NewFirstMoveAgent() Agent {
	return firstMoveAgent{}
}

func (firstMoveAgent) FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return searcher.NoMove, metrics.SearchMetric{StopReason: metrics.StopNoMoves}
	}
	return moves[0], metrics.SearchMetric{Evaluate: "first"}
}

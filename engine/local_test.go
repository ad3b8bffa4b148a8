package engine

import (
	"morris/agent"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type illegalAgent struct{}

func (illegalAgent) FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	return searcher.NoMove, metrics.SearchMetric{}
}

// budgetAgent plays the first legal move and records the time it was given.
type budgetAgent struct {
	given []time.Duration
}

func (a *budgetAgent) FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	a.given = append(a.given, time.Until(deadline))
	return state.LegalMoves()[0], metrics.SearchMetric{}
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("random agents play to the end", func(t *testing.T) {
		agents := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}
		observed := 0
		e := NewLocalEngine(agents, game.NewStandardRules(), time.Second, WithObserver(func(step int, move game.Move, state *game.GameState) {
			observed++
			require.Equal(t, observed, step)
		}))

		winner, gameMetric, moveMetrics := e.Run()

		require.True(t, e.State.IsTerminal() || len(moveMetrics) == MaxTurns)
		require.Equal(t, e.State.Winner(), winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, observed, gameMetric.TotalMoves)
		require.Equal(t, "blue", gameMetric.StartingPlayer)
		require.Equal(t, "blue", moveMetrics[0].Player)
		require.Equal(t, "orange", moveMetrics[1].Player)
	})

	t.Run("turn limit", func(t *testing.T) {
		agents := [2]agent.Agent{agent.NewFirstMoveAgent(), agent.NewFirstMoveAgent()}
		e := NewLocalEngine(agents, game.NewStandardRules(), time.Second, WithMaxTurns(5))

		winner, gameMetric, _ := e.Run()

		require.Equal(t, game.NoPlayer, winner)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Empty(t, gameMetric.Winner)
	})

	t.Run("illegal agent falls back to the first legal move", func(t *testing.T) {
		agents := [2]agent.Agent{illegalAgent{}, agent.NewFirstMoveAgent()}
		e := NewLocalEngine(agents, game.NewStandardRules(), time.Second, WithMaxTurns(1))
		first := e.State.LegalMoves()[0]

		_, _, moveMetrics := e.Run()

		require.Len(t, moveMetrics, 1)
		require.Equal(t, first.Token(), moveMetrics[0].Move)
	})

	t.Run("search agent finishes a won position", func(t *testing.T) {
		cells, err := game.CellsFromLabels([]string{"a1", "a4", "d7", "g1"}, []string{"c4", "e4", "f6"})
		require.NoError(t, err)
		state, err := game.NewGameStateFrom(game.NewStandardRules(), game.Blue, cells, [2]int{6, 7}, 0)
		require.NoError(t, err)

		ab := searcher.NewAlphaBeta(searcher.WithMaxDepth(2), searcher.WithMargin(0))
		agents := [2]agent.Agent{agent.NewSearchAgent(ab), agent.NewRandomAgent(3)}
		e := NewLocalEngine(agents, game.NewStandardRules(), 5*time.Second, WithState(state))

		winner, gameMetric, _ := e.Run()

		require.Equal(t, game.Blue, winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.Equal(t, 1, gameMetric.Captures)
	})
	t.Run("each side gets its own budget", func(t *testing.T) {
		blue, orange := &budgetAgent{}, &budgetAgent{}
		e := NewLocalEngine([2]agent.Agent{blue, orange}, game.NewStandardRules(), time.Minute,
			WithBudgets(time.Hour, time.Second), WithMaxTurns(4))

		e.Run()

		require.Len(t, blue.given, 2)
		require.Len(t, orange.given, 2)
		for i := range blue.given {
			require.Greater(t, blue.given[i], 30*time.Minute)
			require.LessOrEqual(t, orange.given[i], time.Second)
		}
	})

	t.Run("zero budget keeps the default", func(t *testing.T) {
		blue, orange := &budgetAgent{}, &budgetAgent{}
		e := NewLocalEngine([2]agent.Agent{blue, orange}, game.NewStandardRules(), time.Minute,
			WithBudgets(0, time.Second), WithMaxTurns(2))

		e.Run()

		require.Greater(t, blue.given[0], 30*time.Second)
		require.LessOrEqual(t, orange.given[0], time.Second)
	})
}

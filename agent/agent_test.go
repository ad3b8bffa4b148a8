package agent

import (
	"morris/game"
	"morris/searcher"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAgents(t *testing.T) {
	state := game.NewGameState(game.NewStandardRules())
	deadline := time.Now().Add(time.Second)

	t.Run("first move", func(t *testing.T) {
		move, _ := NewFirstMoveAgent().FindMove(state, deadline)
		require.Equal(t, state.LegalMoves()[0], move)
	})

	t.Run("random is legal and reproducible", func(t *testing.T) {
		a, b := NewRandomAgent(7), NewRandomAgent(7)
		for i := 0; i < 10; i++ {
			ma, _ := a.FindMove(state, deadline)
			mb, _ := b.FindMove(state, deadline)
			require.Equal(t, ma, mb)
			require.Contains(t, state.LegalMoves(), ma)
		}
	})

	t.Run("search", func(t *testing.T) {
		ab := searcher.NewAlphaBeta(searcher.WithMaxDepth(1), searcher.WithMargin(0))
		move, _ := NewSearchAgent(ab).FindMove(state, deadline)
		require.Contains(t, state.LegalMoves(), move)
	})

	t.Run("no legal moves", func(t *testing.T) {
		cells, err := game.CellsFromLabels([]string{"a1", "g7"}, []string{"c4", "e4", "f6"})
		require.NoError(t, err)
		stuck, err := game.NewGameStateFrom(game.NewStandardRules(), game.Blue, cells, [2]int{8, 7}, 0)
		require.NoError(t, err)

		for _, a := range []Agent{NewFirstMoveAgent(), NewRandomAgent(1)} {
			move, _ := a.FindMove(stuck, deadline)
			require.Equal(t, searcher.NoMove, move)
		}
	})
}

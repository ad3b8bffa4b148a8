package searcher

import (
	"bytes"
	"morris/experiments/metrics"
	"morris/game"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func position(t *testing.T, toMove game.Player, blue, orange []string, removed [2]int) *game.GameState {
	t.Helper()
	cells, err := game.CellsFromLabels(blue, orange)
	require.NoError(t, err)
	state, err := game.NewGameStateFrom(game.NewStandardRules(), toMove, cells, removed, 0)
	require.NoError(t, err)
	return state
}

func label(t *testing.T, s string) game.Position {
	t.Helper()
	p, err := game.ParsePosition(s)
	require.NoError(t, err)
	return p
}

func TestSearch(t *testing.T) {
	t.Run("expired deadline falls back to the first legal move", func(t *testing.T) {
		state := game.NewGameState(game.NewStandardRules())
		ab := NewAlphaBeta(WithMetrics())

		move, metric := ab.Search(state, time.Now().Add(-time.Second))

		require.Equal(t, state.LegalMoves()[0], move)
		require.Equal(t, metrics.StopMovetime, metric.StopReason)
		require.Equal(t, 0, metric.Depth, "No pass should complete")
	})

	t.Run("margin eats into the deadline", func(t *testing.T) {
		state := game.NewGameState(game.NewStandardRules())
		ab := NewAlphaBeta(WithMetrics(), WithMargin(time.Hour))

		move, metric := ab.Search(state, time.Now().Add(time.Minute))

		require.Equal(t, state.LegalMoves()[0], move)
		require.Equal(t, metrics.StopMovetime, metric.StopReason)
	})

	t.Run("no legal moves", func(t *testing.T) {
		state := position(t, game.Blue, []string{"a1", "g7"}, []string{"c4", "e4", "f6"}, [2]int{8, 7})
		require.Empty(t, state.LegalMoves())

		move, metric := NewAlphaBeta(WithMetrics()).Search(state, time.Now().Add(time.Second))

		require.Equal(t, NoMove, move)
		require.Equal(t, metrics.StopNoMoves, metric.StopReason)
	})

	t.Run("takes the winning capture", func(t *testing.T) {
		// Sliding d7 to a7 closes a1-a4-a7 and leaves orange with two pieces
		state := position(t, game.Blue,
			[]string{"a1", "a4", "d7", "g1"},
			[]string{"c4", "e4", "f6"},
			[2]int{6, 7})
		ab := NewAlphaBeta(WithMetrics(), WithMaxDepth(4), WithMargin(0))

		move, metric := ab.Search(state, time.Now().Add(10*time.Second))

		require.Equal(t, label(t, "d7"), move.From)
		require.Equal(t, label(t, "a7"), move.To)
		require.True(t, move.IsCapture())
		require.Equal(t, metrics.StopProven, metric.StopReason)
		require.Equal(t, game.WinScore, metric.Score)
		require.Equal(t, 1, metric.Depth)

		next, err := state.Play(move)
		require.NoError(t, err)
		require.True(t, next.IsTerminal())
		require.Equal(t, game.Blue, next.Winner())
	})

	t.Run("stops at the depth limit", func(t *testing.T) {
		state := game.NewGameState(game.NewStandardRules())
		ab := NewAlphaBeta(WithMetrics(), WithMaxDepth(2), WithMargin(0))

		move, metric := ab.Search(state, time.Now().Add(time.Minute))

		require.Contains(t, state.LegalMoves(), move)
		require.Equal(t, metrics.StopDepth, metric.StopReason)
		require.Equal(t, 2, metric.Depth)
		require.Equal(t, 2, metric.MaxDepth)
		require.Greater(t, metric.Nodes, len(state.LegalMoves()))
	})

	t.Run("searches are independent", func(t *testing.T) {
		state := game.NewGameState(game.NewStandardRules())
		ab := NewAlphaBeta(WithMetrics(), WithMaxDepth(2), WithMargin(0))

		first, m1 := ab.Search(state, time.Now().Add(time.Minute))
		second, m2 := ab.Search(state, time.Now().Add(time.Minute))

		require.Equal(t, first, second)
		require.Equal(t, m1.Nodes, m2.Nodes, "Each search must start from an empty memo")
		require.Equal(t, m1.MemoHits, m2.MemoHits)
	})

	t.Run("deadline hit mid-search still returns a legal move", func(t *testing.T) {
		state := game.NewGameState(game.NewStandardRules())
		start := time.Now()
		calls := 0
		clock := func() time.Time {
			calls++
			return start.Add(time.Duration(calls) * time.Millisecond)
		}
		ab := NewAlphaBeta(WithMetrics(), WithMargin(0), withClock(clock))

		move, metric := ab.Search(state, start.Add(500*time.Millisecond))

		require.Contains(t, state.LegalMoves(), move)
		require.Equal(t, metrics.StopMovetime, metric.StopReason)
	})

	t.Run("custom evaluator is used", func(t *testing.T) {
		state := game.NewGameState(game.NewStandardRules())
		evaluated := 0
		evaluate := func(gs *game.GameState, viewpoint game.Player) float64 {
			evaluated++
			require.Equal(t, game.Blue, viewpoint, "Leaves are scored from the root player's side")
			return 0
		}
		ab := NewAlphaBeta(WithMetrics(), WithMaxDepth(1), WithMargin(0), WithEvaluationFn(evaluate))

		move, metric := ab.Search(state, time.Now().Add(time.Minute))

		require.Equal(t, state.LegalMoves()[0], move, "Ties keep the first move")
		require.Equal(t, len(state.LegalMoves()), evaluated)
		require.Equal(t, "custom", metric.Evaluate)
	})
}

// expiringClock reads as start until the given call, then an hour later. At
// the opening a depth 1 pass reads the clock once and a depth 2 pass reads it
// once more and again for every root move it enters, in search order.
func expiringClock(start time.Time, expireAt int, expired *bool) func() time.Time {
	calls := 0
	return func() time.Time {
		calls++
		if calls >= expireAt {
			*expired = true
			return start.Add(time.Hour)
		}
		return start
	}
}

func blueAt(gs *game.GameState, p game.Position) bool {
	return gs.Cell(p) == game.Blue
}

func TestSearchPartialPass(t *testing.T) {
	state := game.NewGameState(game.NewStandardRules())
	moves := state.LegalMoves()
	require.Greater(t, len(moves), 6)

	t.Run("best move of an interrupted pass replaces the previous depth", func(t *testing.T) {
		shallow, deep := moves[5], moves[1]
		evaluate := func(gs *game.GameState, viewpoint game.Player) float64 {
			switch {
			case blueAt(gs, shallow.To) && gs.OnBoard(game.Orange) > 0:
				return -1 // Any reply refutes it
			case blueAt(gs, shallow.To):
				return 1
			case blueAt(gs, deep.To):
				return 0.5
			}
			return 0
		}
		// Depth 2 searches shallow, moves[0], deep, then is cut off in moves[2]
		expired := false
		start := time.Now()
		ab := NewAlphaBeta(WithMetrics(), WithMargin(0), WithEvaluationFn(evaluate),
			withClock(expiringClock(start, 6, &expired)))

		move, metric := ab.Search(state, start.Add(time.Minute))

		require.True(t, expired)
		require.Equal(t, deep, move)
		require.Equal(t, 1, metric.Depth, "The interrupted pass is not a completed depth")
		require.Equal(t, 1.0, metric.Score)
		require.Equal(t, metrics.StopMovetime, metric.StopReason)
	})

	t.Run("interrupted root move is not scored", func(t *testing.T) {
		interrupted := moves[1]
		expired := false
		evaluate := func(gs *game.GameState, viewpoint game.Player) float64 {
			if expired && blueAt(gs, interrupted.To) {
				return 50
			}
			return 0
		}
		// Depth 1 keeps moves[0] on ties; depth 2 finishes it and is cut off in moves[1]
		start := time.Now()
		ab := NewAlphaBeta(WithMetrics(), WithMargin(0), WithEvaluationFn(evaluate),
			withClock(expiringClock(start, 4, &expired)))

		move, metric := ab.Search(state, start.Add(time.Minute))

		require.True(t, expired)
		require.NotEqual(t, interrupted, move)
		require.Equal(t, moves[0], move)
		require.Equal(t, 1, metric.Depth)
	})
}

func TestRejectedMovesAreLogged(t *testing.T) {
	state := game.NewGameState(game.NewStandardRules())
	legal := state.LegalMoves()[0]
	occupied := game.Move{From: game.NoPosition, To: legal.To, Capture: game.NoPosition, Hand: game.Orange}
	next, err := state.Play(legal)
	require.NoError(t, err)

	var buf bytes.Buffer
	s := &search{
		root:     next.Player(),
		deadline: time.Now().Add(time.Minute),
		evaluate: game.EvaluateMaterial,
		memo:     newMemo(0),
		metrics:  metrics.NewDummyCollector(),
		logger:   zerolog.New(&buf),
		now:      time.Now,
	}

	reply := next.LegalMoves()[0]
	best, _, scored := s.rootPass(next, []game.Move{occupied, reply}, 1)

	require.True(t, scored)
	require.Equal(t, reply, best)
	require.Contains(t, buf.String(), "was rejected")
}

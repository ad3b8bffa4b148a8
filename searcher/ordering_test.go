package searcher

import (
	"morris/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderMoves(t *testing.T) {
	quiet1 := game.Move{From: 0, To: 1, Capture: game.NoPosition}
	quiet2 := game.Move{From: 2, To: 3, Capture: game.NoPosition}
	capture1 := game.Move{From: 4, To: 5, Capture: 9}
	capture2 := game.Move{From: 4, To: 5, Capture: 10}
	moves := []game.Move{quiet1, capture1, quiet2, capture2}

	t.Run("captures lead", func(t *testing.T) {
		got := orderMoves(moves, NoMove)
		require.Equal(t, []game.Move{capture1, capture2, quiet1, quiet2}, got)
		require.Equal(t, []game.Move{quiet1, capture1, quiet2, capture2}, moves, "Input must not be reordered")
	})

	t.Run("hint leads its group", func(t *testing.T) {
		require.Equal(t, []game.Move{capture1, capture2, quiet2, quiet1}, orderMoves(moves, quiet2))
		require.Equal(t, []game.Move{capture2, capture1, quiet1, quiet2}, orderMoves(moves, capture2))
	})
}

func TestMemo(t *testing.T) {
	key := game.NewGameState(game.NewStandardRules()).Key()

	t.Run("shallower entries are ignored", func(t *testing.T) {
		m := newMemo(0)
		m.store(key, memoEntry{value: 3, depth: 2, bound: boundExact})
		_, ok := m.lookup(key, 3, -100, 100)
		require.False(t, ok)
		e, ok := m.lookup(key, 2, -100, 100)
		require.True(t, ok)
		require.Equal(t, 3.0, e.value)
	})

	t.Run("bounds must settle the window", func(t *testing.T) {
		m := newMemo(0)
		m.store(key, memoEntry{value: 50, depth: 4, bound: boundLower})
		_, ok := m.lookup(key, 4, 0, 60)
		require.False(t, ok)
		_, ok = m.lookup(key, 4, 0, 40)
		require.True(t, ok)

		m.store(key, memoEntry{value: -50, depth: 5, bound: boundUpper})
		_, ok = m.lookup(key, 4, -60, 0)
		require.False(t, ok)
		_, ok = m.lookup(key, 4, -40, 0)
		require.True(t, ok)
	})

	t.Run("deeper entry is kept", func(t *testing.T) {
		m := newMemo(0)
		m.store(key, memoEntry{value: 1, depth: 5})
		m.store(key, memoEntry{value: 2, depth: 3})
		e, ok := m.lookup(key, 3, -100, 100)
		require.True(t, ok)
		require.Equal(t, 1.0, e.value)
	})

	t.Run("limit", func(t *testing.T) {
		m := newMemo(1)
		m.store(key, memoEntry{value: 1, depth: 1})
		other := key
		other.ToMove = game.Orange
		m.store(other, memoEntry{value: 2, depth: 1})
		require.Equal(t, 1, m.size())
	})

	t.Run("bound of a value", func(t *testing.T) {
		require.Equal(t, boundUpper, boundOf(-5, -5, 5))
		require.Equal(t, boundLower, boundOf(5, -5, 5))
		require.Equal(t, boundExact, boundOf(0, -5, 5))
	})
}

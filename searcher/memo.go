package searcher

import "morris/game"

type bound int8

const (
	boundExact bound = iota
	boundLower       // Failed high: true value >= stored value
	boundUpper       // Failed low: true value <= stored value
)

type memoEntry struct {
	value      float64
	depth      int // Depth remaining when the value was computed
	bound      bound
	exhaustive bool // No depth cutoff below this node
}

// memo is the transposition table of a single Search call. It is never shared
// between calls.
type memo struct {
	entries map[game.StateKey]memoEntry
	limit   int
}

func newMemo(limit int) *memo {
	return &memo{
		entries: make(map[game.StateKey]memoEntry, 1<<12),
		limit:   limit,
	}
}

// lookup returns a stored entry computed at least as deep as requested whose
// bound settles the current window.
func (m *memo) lookup(key game.StateKey, depth int, alpha, beta float64) (memoEntry, bool) {
	e, ok := m.entries[key]
	if !ok || e.depth < depth {
		return memoEntry{}, false
	}
	switch e.bound {
	case boundExact:
		return e, true
	case boundLower:
		return e, e.value >= beta
	case boundUpper:
		return e, e.value <= alpha
	}
	return memoEntry{}, false
}

// store keeps the deeper of the old and new entry. Once full, only existing
// keys are updated.
func (m *memo) store(key game.StateKey, e memoEntry) {
	old, ok := m.entries[key]
	if !ok && m.limit > 0 && len(m.entries) >= m.limit {
		return
	}
	if ok && old.depth > e.depth {
		return
	}
	m.entries[key] = e
}

func (m *memo) size() int {
	return len(m.entries)
}

func boundOf(value, alpha, beta float64) bound {
	switch {
	case value <= alpha:
		return boundUpper
	case value >= beta:
		return boundLower
	}
	return boundExact
}

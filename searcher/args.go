package searcher

import "time"

// Search defaults

// DefaultMargin is kept free before the deadline for returning the move.
const DefaultMargin = 20 * time.Millisecond

// DefaultMemoLimit caps the entries of a single search's memo.
const DefaultMemoLimit = 4_000_000

// MaxDepth is a practical ceiling when no depth limit is configured; the
// non-capture streak bounds real games far below it.
const MaxDepth = 64

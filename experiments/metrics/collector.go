package metrics

import (
	"time"
)

// StopReason tells why a search returned.
type StopReason int

const (
	StopNone      StopReason = iota
	StopMovetime             // Deadline reached
	StopDepth                // Depth limit reached
	StopProven               // A forced win or loss was found
	StopExhausted            // The whole tree fit inside the depth limit
	StopNoMoves              // Nothing to search
)

func (sr StopReason) String() string {
	switch sr {
	case StopMovetime:
		return "movetime"
	case StopDepth:
		return "depth"
	case StopProven:
		return "proven"
	case StopExhausted:
		return "exhausted"
	case StopNoMoves:
		return "no-moves"
	}
	return "none"
}

type SearchMetric struct {
	MaxDepth   int
	Evaluate   string
	Duration   time.Duration
	Depth      int // Deepest fully completed pass
	Nodes      int
	MemoHits   int
	Score      float64
	StopReason StopReason
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // Empty for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Captures       int
}

// Collector gathers the figures of one search at a time. Searches run on a
// single goroutine so no synchronization is needed.
type Collector interface {
	Start(maxDepth int, evaluate string)
	AddNode()
	AddMemoHit()
	CompleteDepth(depth int, score float64)
	Complete(reason StopReason) SearchMetric
}

type collector struct {
	maxDepth  int
	evaluate  string
	startTime time.Time
	depth     int
	score     float64
	nodes     int
	memoHits  int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, evaluate string) {
	*m = collector{
		maxDepth:  maxDepth,
		evaluate:  evaluate,
		startTime: time.Now(),
	}
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddMemoHit() {
	m.memoHits++
}

func (m *collector) CompleteDepth(depth int, score float64) {
	m.depth = depth
	m.score = score
}

func (m *collector) Complete(reason StopReason) SearchMetric {
	return SearchMetric{
		MaxDepth:   m.maxDepth,
		Evaluate:   m.evaluate,
		Duration:   time.Since(m.startTime),
		Depth:      m.depth,
		Nodes:      m.nodes,
		MemoHits:   m.memoHits,
		Score:      m.score,
		StopReason: reason,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, evaluate string)    {}
func (m *dummyCollector) AddNode()                               {}
func (m *dummyCollector) AddMemoHit()                            {}
func (m *dummyCollector) CompleteDepth(depth int, score float64) {}
func (m *dummyCollector) Complete(reason StopReason) SearchMetric {
	return SearchMetric{StopReason: reason}
}

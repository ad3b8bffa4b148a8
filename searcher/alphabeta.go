package searcher

import (
	"math"
	"morris/experiments/metrics"
	"morris/game"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(ab *AlphaBeta)

// AlphaBeta runs iterative-deepening minimax with alpha-beta pruning. It holds
// configuration only; every Search call starts from a fresh memo.
type AlphaBeta struct {
	maxDepth  int
	margin    time.Duration
	memoLimit int
	evalName  string
	evaluate  game.Evaluate
	metrics   metrics.Collector
	logger    zerolog.Logger
	now       func() time.Time
}

func WithMaxDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.maxDepth = depth
		}
	}
}

func WithMargin(margin time.Duration) Option {
	return func(ab *AlphaBeta) {
		if margin >= 0 {
			ab.margin = margin
		}
	}
}

func WithMemoLimit(entries int) Option {
	return func(ab *AlphaBeta) {
		if entries > 0 {
			ab.memoLimit = entries
		}
	}
}

// WithEvaluation selects a named evaluator, ignoring unknown names.
func WithEvaluation(name string) Option {
	return func(ab *AlphaBeta) {
		if evaluate, ok := game.EvaluatorByName(name); ok {
			ab.evalName = name
			ab.evaluate = evaluate
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evalName = "custom"
			ab.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(ab *AlphaBeta) {
		ab.logger = logger
	}
}

func withClock(now func() time.Time) Option {
	return func(ab *AlphaBeta) {
		ab.now = now
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		maxDepth:  MaxDepth,
		margin:    DefaultMargin,
		memoLimit: DefaultMemoLimit,
		evalName:  "heuristic",
		evaluate:  game.EvaluateHeuristic,
		metrics:   metrics.NewDummyCollector(),
		logger:    log.Logger,
		now:       time.Now,
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

// Search returns the best move found for the side to move before the deadline
// less the safety margin. It falls back to the first legal move when not even
// one root move could be scored in time, and returns NoMove only when there are
// no legal moves at all.
func (ab *AlphaBeta) Search(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	ab.metrics.Start(ab.maxDepth, ab.evalName)

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return NoMove, ab.metrics.Complete(metrics.StopNoMoves)
	}

	s := &search{
		root:     state.Player(),
		deadline: deadline.Add(-ab.margin),
		evaluate: ab.evaluate,
		memo:     newMemo(ab.memoLimit),
		metrics:  ab.metrics,
		logger:   ab.logger,
		now:      ab.now,
	}

	best := moves[0]
	reason := metrics.StopDepth
	for depth := 1; depth <= ab.maxDepth; depth++ {
		if s.timeUp() {
			reason = metrics.StopMovetime
			break
		}

		s.cutoff = false
		move, score, scored := s.rootPass(state, orderMoves(moves, best), depth)
		if scored {
			best = move
		}
		if s.expired {
			ab.logger.Debug().
				Int("depth", depth).
				Bool("scored", scored).
				Str("best", best.Token()).
				Msg("deadline reached mid-pass")
			reason = metrics.StopMovetime
			break
		}

		ab.metrics.CompleteDepth(depth, score)
		ab.logger.Debug().
			Int("depth", depth).
			Float64("score", score).
			Str("best", best.Token()).
			Int("memo", s.memo.size()).
			Msg("depth complete")

		if math.Abs(score) >= game.WinScore {
			reason = metrics.StopProven
			break
		}
		if !s.cutoff {
			reason = metrics.StopExhausted
			break
		}
	}

	return best, ab.metrics.Complete(reason)
}

// search carries the state of one Search call.
type search struct {
	root     game.Player
	deadline time.Time
	evaluate game.Evaluate
	memo     *memo
	metrics  metrics.Collector
	logger   zerolog.Logger
	now      func() time.Time
	expired  bool // The deadline passed somewhere in the tree
	cutoff   bool // A non-terminal leaf was scored by the evaluator
}

func (s *search) timeUp() bool {
	if s.expired {
		return true
	}
	if !s.now().Before(s.deadline) {
		s.expired = true
	}
	return s.expired
}

// rootPass scores the root moves at the given depth. A move whose subtree was
// interrupted by the deadline is not scored.
func (s *search) rootPass(state *game.GameState, moves []game.Move, depth int) (game.Move, float64, bool) {
	alpha, beta := math.Inf(-1), math.Inf(1)
	best, bestScore, scored := game.Move{}, math.Inf(-1), false

	for _, m := range moves {
		child, err := state.Play(m)
		if err != nil {
			s.logger.Warn().Err(err).Msgf("generated move %s was rejected", m)
			continue
		}
		v := s.alphaBeta(child, depth-1, alpha, beta)
		if s.expired {
			break
		}
		if !scored || v > bestScore {
			best, bestScore, scored = m, v, true
		}
		alpha = math.Max(alpha, v)
	}
	return best, bestScore, scored
}

// alphaBeta returns the value of state from the root player's perspective. The
// root player maximizes and the opponent minimizes.
func (s *search) alphaBeta(state *game.GameState, depth int, alpha, beta float64) float64 {
	s.metrics.AddNode()

	if state.IsTerminal() {
		return s.evaluate(state, s.root)
	}
	if depth <= 0 || s.timeUp() {
		s.cutoff = true
		return s.evaluate(state, s.root)
	}

	key := state.Key()
	if e, ok := s.memo.lookup(key, depth, alpha, beta); ok {
		s.metrics.AddMemoHit()
		if !e.exhaustive {
			s.cutoff = true
		}
		return e.value
	}

	maximizing := state.Player() == s.root
	alphaOrig, betaOrig := alpha, beta
	cutAbove := s.cutoff
	s.cutoff = false

	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	scored := false
	for _, m := range orderMoves(state.LegalMoves(), NoMove) {
		child, err := state.Play(m)
		if err != nil {
			s.logger.Warn().Err(err).Msgf("generated move %s was rejected", m)
			continue
		}
		v := s.alphaBeta(child, depth-1, alpha, beta)
		scored = true
		if maximizing {
			value = math.Max(value, v)
			if value >= beta {
				break
			}
			alpha = math.Max(alpha, value)
		} else {
			value = math.Min(value, v)
			if value <= alpha {
				break
			}
			beta = math.Min(beta, value)
		}
		if s.expired {
			break
		}
	}
	if !scored {
		value = s.evaluate(state, s.root)
	}

	cutBelow := s.cutoff
	s.cutoff = cutAbove || cutBelow
	if !s.expired {
		s.memo.store(key, memoEntry{
			value:      value,
			depth:      depth,
			bound:      boundOf(value, alphaOrig, betaOrig),
			exhaustive: !cutBelow,
		})
	}
	return value
}

package engine

import (
	"morris/agent"
	"morris/experiments/metrics"
	"morris/game"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// Observer is called after every applied move.
type Observer func(step int, move game.Move, state *game.GameState)

func WithObserver(observer Observer) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithBudgets gives each side its own time budget per move.
func WithBudgets(blue, orange time.Duration) Option {
	return func(e *LocalEngine) {
		if blue > 0 {
			e.budgets[0] = blue
		}
		if orange > 0 {
			e.budgets[1] = orange
		}
	}
}

func WithState(state *game.GameState) Option {
	return func(e *LocalEngine) {
		if state != nil {
			e.State = state
		}
	}
}

// LocalEngine plays two agents against each other in process. Agents[0] plays
// blue.
type LocalEngine struct {
	State    *game.GameState
	Agents   [2]Adapter
	budgets  [2]time.Duration // Indexed like Agents
	maxTurns int
	observer Observer
}

func NewLocalEngine(agents [2]agent.Agent, rules game.Rules, budget time.Duration, options ...Option) *LocalEngine {
	e := &LocalEngine{
		State:    game.NewGameState(rules),
		Agents:   [2]Adapter{{Agent: agents[0]}, {Agent: agents[1]}},
		budgets:  [2]time.Duration{budget, budget},
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is over.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player().String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%v is starting", e.State.Player())

	turn := 1
	for !e.State.IsTerminal() && turn <= e.maxTurns {
		mover := e.State.Player()
		i := agentIndex(mover)

		move, searchMetric := e.Agents[i].FindMove(e.State, time.Now().Add(e.budgets[i]))
		next, err := e.State.Play(move)
		if err != nil {
			// The adapter only returns generated moves
			log.Error().Err(err).Msgf("turn %d: %v played %s", turn, mover, move)
			break
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       mover.String(),
			Move:         move.Token(),
			SearchMetric: searchMetric,
		})
		if move.IsCapture() {
			gameMetric.Captures++
		}
		log.Debug().Msgf("turn %d: %v played %s, state %x", turn, mover, move, next.Hash())

		e.State = next
		if e.observer != nil {
			e.observer(turn, move, next)
		}
		turn++
	}

	winner := e.State.Winner()
	if !e.State.IsTerminal() {
		log.Info().Msgf("stopped after %d turns without a result", e.maxTurns)
	} else if winner == game.NoPlayer {
		log.Info().Msg("game ended in a draw")
	} else {
		log.Info().Msgf("game won by %v after %d turns", winner, turn-1)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	if winner != game.NoPlayer {
		gameMetric.Winner = winner.String()
	}
	return winner, gameMetric, moveMetrics
}

func agentIndex(p game.Player) int {
	if p == game.Orange {
		return 1
	}
	return 0
}

// Adapter guards the engine against agents returning moves outside the legal
// set.
type Adapter struct {
	Agent agent.Agent
}

func (a *Adapter) FindMove(state *game.GameState, deadline time.Time) (game.Move, metrics.SearchMetric) {
	candidate, searchMetric := a.Agent.FindMove(state, deadline)

	moves := state.LegalMoves()
	for _, m := range moves {
		if m == candidate {
			return candidate, searchMetric
		}
	}

	if len(moves) == 0 {
		panic("no legal moves at all")
	}
	log.Warn().Msgf("agent returned %s which is not legal, playing %s instead", candidate, moves[0])
	return moves[0], searchMetric
}

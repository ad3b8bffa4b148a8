package experiments

import (
	"fmt"
	"morris/agent"
	"morris/engine"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

// Experiment pairs agent configs into match-ups. Each match-up is played
// several times with colours alternating between games.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
}

// Depth pits depth-limited searchers against a depth 2 baseline.
func Depth(budget time.Duration) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "search", Budget: budget, MaxDepth: 2, Evaluate: "heuristic"}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Budget: budget, MaxDepth: 1, Evaluate: "heuristic"},
		{ID: 2, Kind: "search", Budget: budget, MaxDepth: 3, Evaluate: "heuristic"},
		{ID: 3, Kind: "search", Budget: budget, MaxDepth: 4, Evaluate: "heuristic"},
		{ID: 4, Kind: "search", Budget: budget, MaxDepth: searcher.MaxDepth, Evaluate: "heuristic"}, // Deadline bound
	}
	return against("depth", baseline, configs)
}

// Evaluator compares the heuristic evaluation with the material count.
func Evaluator(budget time.Duration) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "search", Budget: budget, MaxDepth: searcher.MaxDepth, Evaluate: "material"}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Budget: budget, MaxDepth: searcher.MaxDepth, Evaluate: "heuristic"},
	}
	return against("evaluator", baseline, configs)
}

// Baseline checks the searchers against random play.
func Baseline(budget time.Duration, seed uint64) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: "random", Seed: seed}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "first"},
		{ID: 2, Kind: "search", Budget: budget, MaxDepth: 2, Evaluate: "material"},
		{ID: 3, Kind: "search", Budget: budget, MaxDepth: searcher.MaxDepth, Evaluate: "heuristic"},
	}
	return against("baseline", baseline, configs)
}

// Throughput plays each config against itself so that move records show
// nodes searched per budget at a similar strength and game length.
func Throughput(budget time.Duration) Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Budget: budget, MaxDepth: searcher.MaxDepth, Evaluate: "material"},
		{ID: 2, Kind: "search", Budget: budget, MaxDepth: searcher.MaxDepth, Evaluate: "heuristic"},
	}
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{Name: "throughput", Configs: configs, MatchUps: matchUps}
}

// ByName resolves an experiment by its name.
func ByName(name string, budget time.Duration, seed uint64) (Experiment, error) {
	switch name {
	case "depth":
		return Depth(budget), nil
	case "evaluator":
		return Evaluator(budget), nil
	case "baseline":
		return Baseline(budget, seed), nil
	case "throughput":
		return Throughput(budget), nil
	}
	return Experiment{}, fmt.Errorf("unknown experiment %q", name)
}

func against(name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig) Experiment {
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: name, Configs: append(configs, baseline), MatchUps: matchUps}
}

type Runner struct {
	Games     int // Per match up
	Rules     game.Rules
	MaxTurns  int
	OutputDir string
}

// Result holds the records of every game of an experiment.
type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Run plays every match-up and writes the records as CSV files under
// OutputDir/<name>/<timestamp>. It returns the records and the directory used.
func (r Runner) Run(exp Experiment) (Result, string, error) {
	result := r.play(exp)

	writer, err := metrics.NewWriter(r.OutputDir, exp.Name)
	if err != nil {
		return result, "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return result, "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return result, "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return result, "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return result, writer.Dir(), nil
}

func (r Runner) play(exp Experiment) Result {
	var result Result

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchUp := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent%d=%+v and agent%d=%+v...",
			mi+1, len(exp.MatchUps), matchUp[0].ID, matchUp[0], matchUp[1].ID, matchUp[1])

		wins := map[int]int{}
		for i := 0; i < r.Games; i++ {
			blue, orange := matchUp[0], matchUp[1]
			if i%2 == 1 {
				blue, orange = orange, blue
			}

			winner, gameMetric, moveMetrics := r.runGame(blue, orange, uint64(i))
			record := metrics.NewGameRecord(blue.ID, orange.ID, gameMetric)
			result.Games = append(result.Games, record)
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: record.ID, MoveMetric: mm})
			}

			switch winner {
			case game.Blue:
				wins[blue.ID]++
			case game.Orange:
				wins[orange.ID]++
			}
			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %v", mi+1, len(exp.MatchUps), i+1, r.Games, winner)
		}
		log.Info().Msgf("completed matchup %d of %d: agent%d won %d, agent%d won %d, %d drawn",
			mi+1, len(exp.MatchUps), matchUp[0].ID, wins[matchUp[0].ID], matchUp[1].ID, wins[matchUp[1].ID],
			r.Games-wins[matchUp[0].ID]-wins[matchUp[1].ID])
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return result
}

// runGame executes a single game between two agents and returns the winner
func (r Runner) runGame(blue, orange metrics.AgentConfig, round uint64) (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	agents := [2]agent.Agent{NewAgent(blue, round), NewAgent(orange, round)}
	e := engine.NewLocalEngine(agents, r.Rules, time.Second,
		engine.WithBudgets(blue.Budget, orange.Budget),
		engine.WithMaxTurns(r.MaxTurns))
	return e.Run()
}

// NewAgent builds the agent a config describes. Random agents are reseeded
// per round so that repeated games differ.
func NewAgent(config metrics.AgentConfig, round uint64) agent.Agent {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(config.Seed + round)
	case "first":
		return agent.NewFirstMoveAgent()
	}
	options := []searcher.Option{searcher.WithMetrics()}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	if config.Evaluate != "" {
		options = append(options, searcher.WithEvaluation(config.Evaluate))
	}
	return agent.NewSearchAgent(searcher.NewAlphaBeta(options...))
}

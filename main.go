package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"morris/agent"
	"morris/config"
	"morris/engine"
	"morris/experiments"
	"morris/game"
	"morris/referee"
	"morris/render"
	"morris/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: morris [flags] [play|selfplay|experiment]

  play        talk to a referee over stdin/stdout (default)
  selfplay    play the search agent against an opponent and draw the board
  experiment  run a match-up experiment and write CSV records
`

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	budget := flag.Duration("budget", 0, "Time budget per move (0 to use config default)")
	maxDepth := flag.Int("depth", 0, "Maximum search depth (0 to use config default)")
	evaluate := flag.String("evaluate", "", "Evaluator: heuristic or material (empty to use config default)")
	variant := flag.String("rules", "", "Rules variant: standard or lasker (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logFormat := flag.String("log-format", "", "Log format: console or json (empty to use config default)")
	opponent := flag.String("opponent", "search", "Selfplay opponent: search, random or first")
	experiment := flag.String("experiment", "", "Experiment: depth, evaluator, baseline or throughput (empty to use config default)")
	games := flag.Int("games", 0, "Games per experiment match-up (0 to use config default)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config
	overrides := map[string]any{}
	if *budget > 0 {
		overrides["search.budget"] = *budget
	}
	if *maxDepth > 0 {
		overrides["search.max_depth"] = *maxDepth
	}
	if *evaluate != "" {
		overrides["search.evaluate"] = *evaluate
	}
	if *variant != "" {
		overrides["rules.variant"] = *variant
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}
	if *logFormat != "" {
		overrides["log.format"] = *logFormat
	}
	if *experiment != "" {
		overrides["experiment.name"] = *experiment
	}
	if *games > 0 {
		overrides["experiment.games"] = *games
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "invalid %s: %v\n", key, err)
			os.Exit(2)
		}
	}
	cfg := config.Get()

	setupLogging(cfg.Log.Level, cfg.Log.Format)

	rules, err := game.RulesByName(cfg.Rules.Variant)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to select rules")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mode := "play"
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}

	switch mode {
	case "play":
		runPlay(ctx, cfg, rules)
	case "selfplay":
		runSelfplay(cfg, rules, *opponent)
	case "experiment":
		runExperiment(cfg, rules)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func newSearchAgent(cfg *config.Config) agent.Agent {
	ab := searcher.NewAlphaBeta(
		searcher.WithMaxDepth(cfg.Search.MaxDepth),
		searcher.WithMargin(cfg.Search.Margin),
		searcher.WithMemoLimit(cfg.Search.MemoLimit),
		searcher.WithEvaluation(cfg.Search.Evaluate),
		searcher.WithMetrics(),
	)
	return agent.NewSearchAgent(ab)
}

func runPlay(ctx context.Context, cfg *config.Config, rules game.Rules) {
	log.Info().
		Dur("budget", cfg.Search.Budget).
		Int("max_depth", cfg.Search.MaxDepth).
		Str("evaluate", cfg.Search.Evaluate).
		Str("rules", cfg.Rules.Variant).
		Msg("Waiting for the referee")

	player := referee.NewPlayer(newSearchAgent(cfg), rules, cfg.Search.Budget)
	state, err := player.Run(ctx, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Game aborted")
	}
	if state != nil {
		log.Info().Msgf("Final position: %s", state)
	}
}

func runSelfplay(cfg *config.Config, rules game.Rules, opponent string) {
	var other agent.Agent
	switch opponent {
	case "search":
		other = newSearchAgent(cfg)
	case "random":
		other = agent.NewRandomAgent(cfg.Experiment.Seed)
	case "first":
		other = agent.NewFirstMoveAgent()
	default:
		log.Fatal().Str("opponent", opponent).Msg("Unknown opponent")
	}

	r := render.NewRenderer(os.Stdout)
	observer := func(step int, move game.Move, state *game.GameState) {
		if err := r.Move(step, state.Player().Opponent(), move); err != nil {
			log.Error().Err(err).Msg("Failed to render move")
		}
		if err := r.Board(state); err != nil {
			log.Error().Err(err).Msg("Failed to render board")
		}
	}

	agents := [2]agent.Agent{newSearchAgent(cfg), other}
	e := engine.NewLocalEngine(agents, rules, cfg.Search.Budget,
		engine.WithMaxTurns(cfg.Rules.MaxTurns),
		engine.WithObserver(observer))

	if err := r.Board(e.State); err != nil {
		log.Error().Err(err).Msg("Failed to render board")
	}
	winner, gameMetric, _ := e.Run()
	if err := r.Result(winner); err != nil {
		log.Error().Err(err).Msg("Failed to render result")
	}
	log.Info().
		Int("moves", gameMetric.TotalMoves).
		Int("captures", gameMetric.Captures).
		Dur("duration", gameMetric.Duration).
		Msg("Selfplay complete")
}

func runExperiment(cfg *config.Config, rules game.Rules) {
	exp, err := experiments.ByName(cfg.Experiment.Name, cfg.Experiment.Budget, cfg.Experiment.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to select experiment")
	}
	runner := experiments.Runner{
		Games:     cfg.Experiment.Games,
		Rules:     rules,
		MaxTurns:  cfg.Rules.MaxTurns,
		OutputDir: cfg.Experiment.OutputDir,
	}
	_, dir, err := runner.Run(exp)
	if err != nil {
		log.Fatal().Err(err).Msg("Experiment failed")
	}
	log.Info().Str("dir", dir).Msg("Experiment records written")
}

// setupLogging writes to stderr so that stdout stays free for the referee
// protocol.
func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}

package referee

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"morris/agent"
	"morris/game"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Player talks to an external referee over a line protocol: the first line
// names our colour, then move tokens are exchanged one per line.
type Player struct {
	agent  agent.Agent
	rules  game.Rules
	budget time.Duration
}

func NewPlayer(a agent.Agent, rules game.Rules, budget time.Duration) *Player {
	return &Player{agent: a, rules: rules, budget: budget}
}

type line struct {
	text string
	err  error
}

// Run plays one game and returns its final state. Reaching the end of the input
// stops the game without an error.
func (p *Player) Run(ctx context.Context, in io.Reader, out io.Writer) (*game.GameState, error) {
	// Stops the reader once the game is decided with input still arriving
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, in)

	first, err := next(ctx, lines)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	me, ok := game.ParsePlayer(first)
	if !ok {
		return nil, errors.Errorf("expected blue or orange, got %q", first)
	}
	log.Info().Msgf("playing %v", me)

	state := game.NewGameState(p.rules)
	for !state.IsTerminal() {
		mover := state.Player()

		if mover == me {
			move, metric := p.agent.FindMove(state, time.Now().Add(p.budget))
			log.Debug().
				Int("depth", metric.Depth).
				Int("nodes", metric.Nodes).
				Str("stop", metric.StopReason.String()).
				Msgf("chose %s", move)

			nextState, err := state.Play(move)
			if err != nil {
				return state, errors.WithMessagef(err, "apply own move %s", move)
			}
			if _, err := fmt.Fprintln(out, move.Token()); err != nil {
				return state, errors.Wrap(err, "write move")
			}
			state = nextState
			continue
		}

		token, err := next(ctx, lines)
		if err == io.EOF {
			log.Info().Msg("referee closed the input")
			return state, nil
		}
		if err != nil {
			return state, err
		}
		nextState, err := state.PlayToken(token)
		if err != nil {
			log.Warn().Err(err).Msgf("opponent move %q rejected", token)
			_, err = fmt.Fprintf(out, "%v player has played an invalid move; %v player wins!\n", mover, me)
			return state, errors.Wrap(err, "write verdict")
		}
		state = nextState
	}

	if err := announce(out, state); err != nil {
		return state, err
	}
	return state, nil
}

func announce(out io.Writer, state *game.GameState) error {
	text := "GAME OVER: it's a draw!"
	if winner := state.Winner(); winner != game.NoPlayer {
		text = fmt.Sprintf("GAME OVER: %v player wins!", winner)
	}
	_, err := fmt.Fprintln(out, text)
	return errors.Wrap(err, "write result")
}

// next returns the next non-blank line, io.EOF at the end of input.
func next(ctx context.Context, lines <-chan line) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return "", io.EOF
			}
			if l.err != nil {
				return "", errors.Wrap(l.err, "read referee line")
			}
			if text := strings.TrimSpace(l.text); text != "" {
				return text, nil
			}
		}
	}
}

func readLines(ctx context.Context, in io.Reader) <-chan line {
	lines := make(chan line)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- line{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- line{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return lines
}

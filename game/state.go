package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

type Phase int

const (
	PlacementPhase Phase = iota
	SlidingPhase
	FlyingPhase
	EliminatedPhase
)

func (p Phase) String() string {
	switch p {
	case PlacementPhase:
		return "placement"
	case SlidingPhase:
		return "sliding"
	case FlyingPhase:
		return "flying"
	}
	return "eliminated"
}

// Cells holds the occupant of every position.
type Cells [NumPositions]Player

// StateKey identifies a position for memoization: side to move, board and
// removed counts. The stalemate streak is not part of the key.
type StateKey struct {
	ToMove  Player
	Cells   Cells
	Removed [2]int
}

// GameState is an immutable snapshot. Play returns a new state and never
// touches the receiver.
type GameState struct {
	rules   Rules
	toMove  Player
	cells   Cells
	removed [2]int // Indexed by Player.index()
	streak  int    // Consecutive moves without a capture, shared by both sides
	moves   []Move // Legal moves for toMove
	utility float64
}

// NewGameState returns the opening position: empty board, full hands, Blue to
// move.
func NewGameState(rules Rules) *GameState {
	return newGameState(rules, Blue, Cells{}, [2]int{}, 0)
}

// NewGameStateFrom builds an arbitrary position, checking that no player has
// more pieces on board and removed than the rules allot.
func NewGameStateFrom(rules Rules, toMove Player, cells Cells, removed [2]int, streak int) (*GameState, error) {
	if toMove != Blue && toMove != Orange {
		return nil, fmt.Errorf("side to move must be blue or orange, got %v", toMove)
	}
	for _, p := range Players {
		onBoard := 0
		for _, c := range cells {
			if c == p {
				onBoard++
			}
		}
		if removed[p.index()] < 0 || onBoard+removed[p.index()] > rules.Pieces() {
			return nil, fmt.Errorf("%v has %d on board and %d removed, allotment is %d", p, onBoard, removed[p.index()], rules.Pieces())
		}
	}
	if streak < 0 {
		return nil, fmt.Errorf("negative streak %d", streak)
	}
	return newGameState(rules, toMove, cells, removed, streak), nil
}

// CellsFromLabels places pieces by position label.
func CellsFromLabels(blue, orange []string) (Cells, error) {
	var cells Cells
	for _, group := range []struct {
		player Player
		labels []string
	}{{Blue, blue}, {Orange, orange}} {
		for _, label := range group.labels {
			p, err := ParsePosition(label)
			if err != nil {
				return Cells{}, err
			}
			if cells[p] != NoPlayer {
				return Cells{}, fmt.Errorf("position %s listed twice", label)
			}
			cells[p] = group.player
		}
	}
	return cells, nil
}

func newGameState(rules Rules, toMove Player, cells Cells, removed [2]int, streak int) *GameState {
	gs := &GameState{
		rules:   rules,
		toMove:  toMove,
		cells:   cells,
		removed: removed,
		streak:  streak,
	}
	gs.moves = gs.movesFor(toMove)
	gs.utility = EvaluateHeuristic(gs, toMove)
	return gs
}

func (gs *GameState) Rules() Rules {
	return gs.rules
}

// Player returns the side to move.
func (gs *GameState) Player() Player {
	return gs.toMove
}

func (gs *GameState) Cell(p Position) Player {
	return gs.cells[p]
}

func (gs *GameState) Cells() Cells {
	return gs.cells
}

func (gs *GameState) Removed(p Player) int {
	return gs.removed[p.index()]
}

func (gs *GameState) Streak() int {
	return gs.streak
}

// LegalMoves returns the cached moves of the side to move. Callers must not
// modify the slice.
func (gs *GameState) LegalMoves() []Move {
	return gs.moves
}

// Utility is the heuristic value of the state for the side to move.
func (gs *GameState) Utility() float64 {
	return gs.utility
}

func (gs *GameState) Key() StateKey {
	return StateKey{ToMove: gs.toMove, Cells: gs.cells, Removed: gs.removed}
}

func (gs *GameState) OnBoard(p Player) int {
	count := 0
	for _, c := range gs.cells {
		if c == p {
			count++
		}
	}
	return count
}

func (gs *GameState) InHand(p Player) int {
	return gs.rules.Pieces() - gs.OnBoard(p) - gs.removed[p.index()]
}

func (gs *GameState) PhaseOf(p Player) Phase {
	hand := gs.InHand(p)
	board := gs.OnBoard(p)
	switch {
	case hand > 0:
		return PlacementPhase
	case board > gs.rules.FlyingAt():
		return SlidingPhase
	case board == gs.rules.FlyingAt():
		return FlyingPhase
	}
	return EliminatedPhase
}

func (gs *GameState) eliminated(p Player) bool {
	return gs.PhaseOf(p) == EliminatedPhase
}

// IsTerminal reports whether the game is over: the side to move is stuck,
// either side is down to two pieces with an empty hand, or the non-capture
// streak reached the stalemate limit.
func (gs *GameState) IsTerminal() bool {
	return len(gs.moves) == 0 ||
		gs.eliminated(Blue) || gs.eliminated(Orange) ||
		gs.streak >= gs.rules.StalemateLimit()
}

// HasWon reports whether p's opponent is eliminated or, put on move, would have
// no legal move.
func (gs *GameState) HasWon(p Player) bool {
	opponent := p.Opponent()
	if gs.eliminated(opponent) {
		return true
	}
	return len(gs.legalMovesOf(opponent)) == 0
}

// Winner returns the winning player of a terminal state, NoPlayer for a draw or
// an unfinished game.
func (gs *GameState) Winner() Player {
	if !gs.IsTerminal() {
		return NoPlayer
	}
	if gs.HasWon(gs.toMove.Opponent()) {
		return gs.toMove.Opponent()
	}
	if gs.HasWon(gs.toMove) {
		return gs.toMove
	}
	return NoPlayer
}

func (gs *GameState) legalMovesOf(p Player) []Move {
	if p == gs.toMove {
		return gs.moves
	}
	return gs.movesFor(p)
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.toMove))

	for _, c := range gs.cells {
		binary.Write(hasher, binary.LittleEndian, int8(c))
	}

	for _, r := range gs.removed {
		binary.Write(hasher, binary.LittleEndian, int64(r))
	}

	binary.Write(hasher, binary.LittleEndian, int64(gs.streak))

	return StateHash(hasher.Sum64())
}

func (gs *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "to move: %v, streak: %d", gs.toMove, gs.streak)
	for _, p := range Players {
		fmt.Fprintf(&b, ", %v: board=%d hand=%d removed=%d", p, gs.OnBoard(p), gs.InHand(p), gs.Removed(p))
	}
	return b.String()
}

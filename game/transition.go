package game

import "fmt"

// Play validates m against the state and returns the successor. A rejected move
// yields an error wrapping ErrInvalidMove and a nil state; the receiver is never
// modified.
func (gs *GameState) Play(m Move) (*GameState, error) {
	mover := gs.toMove
	opponent := mover.Opponent()

	if !m.To.Valid() {
		return nil, invalid("destination %v is not a board position", m.To)
	}
	if m.From != NoPosition && !m.From.Valid() {
		return nil, invalid("source %v is not a board position", m.From)
	}
	if m.Capture != NoPosition && !m.Capture.Valid() {
		return nil, invalid("capture %v is not a board position", m.Capture)
	}
	if m.IsPlacement() && m.Hand != mover {
		return nil, invalid("hand token %s does not belong to %v", HandToken(m.Hand), mover)
	}
	if m.From == m.To {
		return nil, invalid("source and destination are both %v", m.To)
	}

	// Capture eligibility is judged on the board after the piece has moved
	post := gs.cells
	if !m.IsPlacement() {
		post[m.From] = NoPlayer
	}
	post[m.To] = mover

	if m.IsCapture() {
		if post[m.Capture] != opponent {
			return nil, invalid("capture %v does not hold a %v piece", m.Capture, opponent)
		}
		if !capturable(&post, opponent, m.Capture) {
			return nil, invalid("capture %v is protected by a mill", m.Capture)
		}
	}
	if gs.cells[m.To] != NoPlayer {
		return nil, invalid("destination %v is occupied", m.To)
	}
	if !m.IsPlacement() && gs.cells[m.From] != mover {
		return nil, invalid("source %v does not hold a %v piece", m.From, mover)
	}

	if err := gs.checkPhase(m); err != nil {
		return nil, err
	}

	mill := formsMill(&post, mover, m.To)
	if mill && !m.IsCapture() && gs.OnBoard(opponent) > 0 {
		return nil, invalid("move to %v closes a mill and must capture", m.To)
	}
	if !mill && m.IsCapture() {
		return nil, invalid("move to %v closes no mill and cannot capture", m.To)
	}

	removed := gs.removed
	streak := gs.streak + 1
	if m.IsCapture() {
		post[m.Capture] = NoPlayer
		removed[opponent.index()]++
		streak = 0
	}

	return newGameState(gs.rules, opponent, post, removed, streak), nil
}

// PlayToken parses a "SOURCE DEST CAPTURE" token and plays it.
func (gs *GameState) PlayToken(token string) (*GameState, error) {
	m, err := ParseMove(token)
	if err != nil {
		return nil, err
	}
	return gs.Play(m)
}

func (gs *GameState) checkPhase(m Move) error {
	hand := gs.InHand(gs.toMove)
	board := gs.OnBoard(gs.toMove)

	if m.IsPlacement() {
		if hand == 0 {
			return invalid("%v has no pieces left in hand", gs.toMove)
		}
		return nil
	}

	if hand > 0 && !gs.rules.SlideWithHand() {
		return invalid("%v must place while pieces remain in hand", gs.toMove)
	}
	if hand == 0 && board < gs.rules.FlyingAt() {
		return invalid("%v has too few pieces to move", gs.toMove)
	}
	flying := hand == 0 && board == gs.rules.FlyingAt()
	if !flying && !Layout.AreAdjacent(m.From, m.To) {
		return invalid("%v is not adjacent to %v", m.From, m.To)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, fmt.Sprintf(format, args...))
}

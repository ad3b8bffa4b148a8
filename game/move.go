package game

import (
	"fmt"
	"strings"
)

const NullToken = "r0"

// Move places a piece from hand (From == NoPosition) or shifts one from From to
// To, and optionally removes the opponent piece at Capture.
type Move struct {
	From    Position
	To      Position
	Capture Position
	Hand    Player // Owner of the hand token when From == NoPosition
}

func (m Move) IsPlacement() bool {
	return m.From == NoPosition
}

func (m Move) IsCapture() bool {
	return m.Capture != NoPosition
}

// Token renders the move as "SOURCE DEST CAPTURE".
func (m Move) Token() string {
	source := m.From.String()
	if m.IsPlacement() {
		source = HandToken(m.Hand)
	}
	return fmt.Sprintf("%s %s %s", source, m.To, m.Capture)
}

func (m Move) String() string {
	return m.Token()
}

// HandToken returns the player-specific hand marker.
func HandToken(p Player) string {
	switch p {
	case Blue:
		return "h1"
	case Orange:
		return "h2"
	}
	return "h?"
}

func handOwner(token string) (Player, bool) {
	switch token {
	case "h1":
		return Blue, true
	case "h2":
		return Orange, true
	}
	return NoPlayer, false
}

// ParseMove reads a move token. It checks the grammar only; legality against a
// state is checked by Play.
func ParseMove(token string) (Move, error) {
	fields := strings.Fields(token)
	if len(fields) != 3 {
		return Move{}, fmt.Errorf("%w: want 3 fields, got %d in %q", ErrMalformedMove, len(fields), token)
	}

	m := Move{From: NoPosition, To: NoPosition, Capture: NoPosition}
	if owner, ok := handOwner(fields[0]); ok {
		m.Hand = owner
	} else {
		from, err := ParsePosition(fields[0])
		if err != nil {
			return Move{}, fmt.Errorf("%w: source: %w", ErrMalformedMove, err)
		}
		m.From = from
	}

	to, err := ParsePosition(fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: destination: %w", ErrMalformedMove, err)
	}
	m.To = to

	if fields[2] != NullToken {
		capture, err := ParsePosition(fields[2])
		if err != nil {
			return Move{}, fmt.Errorf("%w: capture: %w", ErrMalformedMove, err)
		}
		m.Capture = capture
	}
	return m, nil
}

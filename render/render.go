package render

import (
	"fmt"
	"io"
	"morris/game"
	"strings"

	"github.com/muesli/termenv"
)

// Rank 7 at the top; every 'o' is a board position.
var boardTemplate = []string{
	"o-----------o-----------o",
	"|           |           |",
	"|   o-------o-------o   |",
	"|   |       |       |   |",
	"|   |   o---o---o   |   |",
	"|   |   |       |   |   |",
	"o---o---o       o---o---o",
	"|   |   |       |   |   |",
	"|   |   o---o---o   |   |",
	"|   |       |       |   |",
	"|   o-------o-------o   |",
	"|           |           |",
	"o-----------o-----------o",
}

const (
	blueColor   = "#1E90FF"
	orangeColor = "#FF8C00"
	lineColor   = "#5F5F5F"
)

// Renderer draws game states as text boards.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(w io.Writer, options ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, options...)}
}

// Board writes the board, the files legend and one status line per player.
func (r *Renderer) Board(gs *game.GameState) error {
	var b strings.Builder
	for i, line := range boardTemplate {
		if i%2 == 0 {
			fmt.Fprintf(&b, "%d  ", 7-i/2)
		} else {
			b.WriteString("   ")
		}
		for col, ch := range line {
			if ch != 'o' {
				b.WriteString(r.out.String(string(ch)).Foreground(r.out.Color(lineColor)).String())
				continue
			}
			label := fmt.Sprintf("%c%d", 'a'+col/4, 7-i/2)
			p, err := game.ParsePosition(label)
			if err != nil {
				return fmt.Errorf("board template: %w", err)
			}
			b.WriteString(r.piece(gs.Cell(p)))
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a   b   c   d   e   f   g\n")

	for _, p := range game.Players {
		marker := "  "
		if p == gs.Player() {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s %-6s %-9s hand=%d board=%d removed=%d\n",
			marker, r.piece(p), p, gs.PhaseOf(p), gs.InHand(p), gs.OnBoard(p), gs.Removed(p))
	}
	fmt.Fprintf(&b, "streak=%d/%d\n", gs.Streak(), gs.Rules().StalemateLimit())

	_, err := io.WriteString(r.out, b.String())
	return err
}

// Move writes one line announcing a played move.
func (r *Renderer) Move(step int, mover game.Player, m game.Move) error {
	text := fmt.Sprintf("%3d. %-6s %s", step, mover, m.Token())
	style := r.out.String(text)
	if m.IsCapture() {
		style = style.Bold()
	}
	_, err := fmt.Fprintln(r.out, style.String())
	return err
}

// Result writes the outcome of a finished game.
func (r *Renderer) Result(winner game.Player) error {
	text := "draw"
	if winner != game.NoPlayer {
		text = winner.String() + " wins"
	}
	_, err := fmt.Fprintln(r.out, r.out.String(text).Bold().String())
	return err
}

func (r *Renderer) piece(c game.Player) string {
	switch c {
	case game.Blue:
		return r.out.String("B").Foreground(r.out.Color(blueColor)).Bold().String()
	case game.Orange:
		return r.out.String("O").Foreground(r.out.Color(orangeColor)).Bold().String()
	}
	return r.out.String("+").Foreground(r.out.Color(lineColor)).String()
}

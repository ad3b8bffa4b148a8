package searcher

import "morris/game"

// orderMoves puts capturing moves before quiet ones, keeping generator order
// within each group. A hint move, if present, leads its group.
func orderMoves(moves []game.Move, hint game.Move) []game.Move {
	ordered := make([]game.Move, 0, len(moves))
	for _, captures := range []bool{true, false} {
		start := len(ordered)
		for _, m := range moves {
			if m.IsCapture() == captures {
				ordered = append(ordered, m)
			}
		}
		for i := start; i < len(ordered); i++ {
			if ordered[i] == hint {
				copy(ordered[start+1:i+1], ordered[start:i])
				ordered[start] = hint
				break
			}
		}
	}
	return ordered
}

package game

// movesFor generates every legal move for p as if p were on move. Candidates
// that close a mill are expanded into one move per eligible capture target.
func (gs *GameState) movesFor(p Player) []Move {
	hand := gs.InHand(p)
	board := gs.OnBoard(p)
	if hand == 0 && board < gs.rules.FlyingAt() {
		return nil
	}

	var moves []Move
	if hand > 0 {
		for to := Position(0); to < NumPositions; to++ {
			if gs.cells[to] == NoPlayer {
				moves = gs.expand(moves, p, NoPosition, to)
			}
		}
		if !gs.rules.SlideWithHand() {
			return moves
		}
	}

	flying := hand == 0 && board == gs.rules.FlyingAt()
	for from := Position(0); from < NumPositions; from++ {
		if gs.cells[from] != p {
			continue
		}
		if flying {
			for to := Position(0); to < NumPositions; to++ {
				if gs.cells[to] == NoPlayer {
					moves = gs.expand(moves, p, from, to)
				}
			}
			continue
		}
		for _, to := range Layout.Adjacent[from] {
			if gs.cells[to] == NoPlayer {
				moves = gs.expand(moves, p, from, to)
			}
		}
	}
	return moves
}

// expand appends the candidate from -> to, once with r0 if it closes no mill,
// otherwise once per capture target on the post-move board.
func (gs *GameState) expand(moves []Move, p Player, from, to Position) []Move {
	post := gs.cells
	if from != NoPosition {
		post[from] = NoPlayer
	}
	post[to] = p

	move := Move{From: from, To: to, Capture: NoPosition}
	if from == NoPosition {
		move.Hand = p
	}

	if !formsMill(&post, p, to) {
		return append(moves, move)
	}

	targets := captureTargets(&post, p.Opponent())
	if len(targets) == 0 { // Nothing on board to take
		return append(moves, move)
	}
	for _, target := range targets {
		move.Capture = target
		moves = append(moves, move)
	}
	return moves
}

// formsMill reports whether p owns a complete line through at. Only lines
// through the changed cell are checked.
func formsMill(cells *Cells, p Player, at Position) bool {
	for _, id := range Layout.MillsAt[at] {
		if lineOwnedBy(cells, Layout.Mills[id], p) {
			return true
		}
	}
	return false
}

// inMill reports whether the piece at pos belongs to a complete mill.
func inMill(cells *Cells, pos Position) bool {
	owner := cells[pos]
	if owner == NoPlayer {
		return false
	}
	return formsMill(cells, owner, pos)
}

func lineOwnedBy(cells *Cells, line [3]Position, p Player) bool {
	return cells[line[0]] == p && cells[line[1]] == p && cells[line[2]] == p
}

// captureTargets lists the opponent pieces that may be removed: those outside
// complete mills, or all of them when every piece is milled.
func captureTargets(cells *Cells, opponent Player) []Position {
	var all, free []Position
	for pos := Position(0); pos < NumPositions; pos++ {
		if cells[pos] != opponent {
			continue
		}
		all = append(all, pos)
		if !inMill(cells, pos) {
			free = append(free, pos)
		}
	}
	if len(free) == 0 {
		return all
	}
	return free
}

func capturable(cells *Cells, opponent Player, pos Position) bool {
	for _, target := range captureTargets(cells, opponent) {
		if target == pos {
			return true
		}
	}
	return false
}

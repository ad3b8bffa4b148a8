package game

// weights of one phase for the heuristic evaluation
type weights struct {
	mills     float64
	potential float64
	pieces    float64
	mobility  float64
	position  float64 // Only non-zero while placing
}

// Mobility and position count most early, completed mills most once pieces
// dwindle.
var phaseWeights = map[Phase]weights{
	PlacementPhase: {mills: 20, potential: 14, pieces: 5, mobility: 0.5, position: 4},
	SlidingPhase:   {mills: 15, potential: 6, pieces: 2, mobility: 1},
	FlyingPhase:    {mills: 10, potential: 4, pieces: 2.5, mobility: 1.5},
}

// EvaluateHeuristic weighs mills, near-mills, material, mobility and, while
// placing, cell connectivity, all as differentials from viewpoint's side.
func EvaluateHeuristic(gs *GameState, viewpoint Player) float64 {
	if score, ok := gs.terminalScore(viewpoint); ok {
		return score
	}

	opponent := viewpoint.Opponent()
	phase := gs.PhaseOf(viewpoint)
	w, ok := phaseWeights[phase]
	if !ok {
		w = phaseWeights[SlidingPhase]
	}

	own, other := gs.lineCounts(viewpoint)
	mobility := float64(len(gs.legalMovesOf(viewpoint)) - len(gs.legalMovesOf(opponent)))
	pieces := float64(gs.OnBoard(viewpoint) - gs.OnBoard(opponent))

	score := w.mills*float64(own.mills-other.mills) +
		w.potential*float64(own.potential-other.potential) +
		w.pieces*pieces +
		w.mobility*mobility

	if phase == PlacementPhase {
		score += w.position * (gs.positional(viewpoint) - gs.positional(opponent))
	}
	return score
}

// EvaluateMaterial is a cheaper evaluation using completed mills and piece
// counts only.
func EvaluateMaterial(gs *GameState, viewpoint Player) float64 {
	if score, ok := gs.terminalScore(viewpoint); ok {
		return score
	}
	opponent := viewpoint.Opponent()
	own, other := gs.lineCounts(viewpoint)
	material := (gs.OnBoard(viewpoint) + gs.InHand(viewpoint)) - (gs.OnBoard(opponent) + gs.InHand(opponent))
	return 10*float64(own.mills-other.mills) + 5*float64(material)
}

// EvaluatorByName resolves a configured evaluator name.
func EvaluatorByName(name string) (Evaluate, bool) {
	switch name {
	case "", "heuristic":
		return EvaluateHeuristic, true
	case "material":
		return EvaluateMaterial, true
	}
	return nil, false
}

func (gs *GameState) terminalScore(viewpoint Player) (float64, bool) {
	if !gs.IsTerminal() {
		return 0, false
	}
	switch gs.Winner() {
	case viewpoint:
		return WinScore, true
	case viewpoint.Opponent():
		return LossScore, true
	}
	return DrawScore, true
}

type lineTally struct {
	mills     int // Lines fully owned
	potential int // Lines with two own pieces and one empty cell
}

func (gs *GameState) lineCounts(p Player) (own, other lineTally) {
	opponent := p.Opponent()
	for _, line := range Layout.Mills {
		var mine, theirs, empty int
		for _, pos := range line {
			switch gs.cells[pos] {
			case p:
				mine++
			case opponent:
				theirs++
			default:
				empty++
			}
		}
		switch {
		case mine == 3:
			own.mills++
		case theirs == 3:
			other.mills++
		case mine == 2 && empty == 1:
			own.potential++
		case theirs == 2 && empty == 1:
			other.potential++
		}
	}
	return own, other
}

func (gs *GameState) positional(p Player) float64 {
	total := 0.0
	for pos, c := range gs.cells {
		if c == p {
			total += positionWeights[pos]
		}
	}
	return total
}

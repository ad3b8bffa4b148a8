package game

// Player identifies a side. NoPlayer marks an empty cell.
type Player int8

const (
	NoPlayer Player = iota
	Blue
	Orange
)

// Players lists both sides in turn order.
var Players = [2]Player{Blue, Orange}

func (p Player) Opponent() Player {
	switch p {
	case Blue:
		return Orange
	case Orange:
		return Blue
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	}
	return "none"
}

// ParsePlayer reads a colour as sent by the referee.
func ParsePlayer(s string) (Player, bool) {
	switch s {
	case "blue":
		return Blue, true
	case "orange":
		return Orange, true
	}
	return NoPlayer, false
}

// index maps a player onto per-player arrays.
func (p Player) index() int {
	return int(p) - 1
}

const (
	WinScore  = 1000.0
	LossScore = -WinScore
	DrawScore = 0.0
)

type StateHash uint64

// Evaluate scores a state from the viewpoint player's perspective. Terminal
// states score WinScore, LossScore or DrawScore.
type Evaluate func(gs *GameState, viewpoint Player) float64

package game

import "fmt"

type StandardRules struct {
	NumPieces      int
	StalemateAfter int
	FlyingCount    int
	Lasker         bool
}

// NewStandardRules splits the game strictly into placement, sliding and flying
// phases.
func NewStandardRules() *StandardRules {
	return &StandardRules{
		NumPieces:      10,
		StalemateAfter: 20,
		FlyingCount:    3,
	}
}

// NewLaskerRules lets a player slide a board piece instead of placing one while
// pieces remain in hand.
func NewLaskerRules() *StandardRules {
	r := NewStandardRules()
	r.Lasker = true
	return r
}

// RulesByName resolves a configured variant name.
func RulesByName(name string) (Rules, error) {
	switch name {
	case "", "standard":
		return NewStandardRules(), nil
	case "lasker":
		return NewLaskerRules(), nil
	}
	return nil, fmt.Errorf("unknown rules variant %q", name)
}

func (sr *StandardRules) Pieces() int {
	return sr.NumPieces
}

func (sr *StandardRules) StalemateLimit() int {
	return sr.StalemateAfter
}

func (sr *StandardRules) FlyingAt() int {
	return sr.FlyingCount
}

func (sr *StandardRules) SlideWithHand() bool {
	return sr.Lasker
}

package game

import "fmt"

// Position is one of the 24 board intersections, indexed in label order.
type Position int8

// NoPosition stands for "from hand" as a move source and for the r0 marker as
// a capture target.
const NoPosition Position = -1

const NumPositions = 24

// Topology is the static board graph: adjacency lists, the mill lines and the
// index from each position to the mills running through it.
type Topology struct {
	Adjacent [NumPositions][]Position
	Mills    [][3]Position
	MillsAt  [NumPositions][]int // Indices into Mills
}

// Layout is the one shared topology, built once at package init.
var Layout = CreateTopology()

// AddBorder adds a bidirectional edge between two positions.
func (t *Topology) AddBorder(p1, p2 Position) {
	if !contains(t.Adjacent[p1], p2) {
		t.Adjacent[p1] = append(t.Adjacent[p1], p2)
	}
	if !contains(t.Adjacent[p2], p1) {
		t.Adjacent[p2] = append(t.Adjacent[p2], p1)
	}
}

// AddMill registers a line of three positions and indexes it by each member.
func (t *Topology) AddMill(line [3]Position) {
	id := len(t.Mills)
	t.Mills = append(t.Mills, line)
	for _, p := range line {
		t.MillsAt[p] = append(t.MillsAt[p], id)
	}
}

// AreAdjacent checks if two positions share an edge.
func (t *Topology) AreAdjacent(p1, p2 Position) bool {
	return contains(t.Adjacent[p1], p2)
}

func contains(slice []Position, item Position) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// CreateTopology initializes the board with its edges and mill lines
func CreateTopology() *Topology {
	t := &Topology{}

	// Walk labels in index order so neighbor lists come out the same every run
	for i, label := range positionLabels {
		for _, neighbor := range adjacencyData[label] {
			t.AddBorder(Position(i), positionIDMap[neighbor])
		}
	}

	for _, line := range millData {
		t.AddMill([3]Position{positionIDMap[line[0]], positionIDMap[line[1]], positionIDMap[line[2]]})
	}

	return t
}

// ParsePosition converts a label such as "d5" into a Position.
func ParsePosition(label string) (Position, error) {
	p, ok := positionIDMap[label]
	if !ok {
		return NoPosition, fmt.Errorf("%w: %q", ErrUnknownPosition, label)
	}
	return p, nil
}

func (p Position) Valid() bool {
	return p >= 0 && p < NumPositions
}

func (p Position) String() string {
	if !p.Valid() {
		return NullToken
	}
	return positionLabels[p]
}

// Labels in index order: column letter a-g, then row 1-7.
var positionLabels = [NumPositions]string{
	"a1", "a4", "a7", "b2", "b4", "b6",
	"c3", "c4", "c5", "d1", "d2", "d3",
	"d5", "d6", "d7", "e3", "e4", "e5",
	"f2", "f4", "f6", "g1", "g4", "g7",
}

var positionIDMap = func() map[string]Position {
	m := make(map[string]Position, NumPositions)
	for i, label := range positionLabels {
		m[label] = Position(i)
	}
	return m
}()

var adjacencyData = map[string][]string{
	"a1": {"a4", "d1"},
	"a4": {"a1", "a7", "b4"},
	"a7": {"a4", "d7"},
	"b2": {"b4", "d2"},
	"b4": {"a4", "b2", "b6", "c4"},
	"b6": {"b4", "d6"},
	"c3": {"c4", "d3"},
	"c4": {"b4", "c3", "c5"},
	"c5": {"c4", "d5"},
	"d1": {"a1", "d2", "g1"},
	"d2": {"b2", "d1", "d3", "f2"},
	"d3": {"c3", "d2", "e3"},
	"d5": {"c5", "d6", "e5"},
	"d6": {"b6", "d5", "d7", "f6"},
	"d7": {"a7", "d6", "g7"},
	"e3": {"d3", "e4"},
	"e4": {"e3", "e5", "f4"},
	"e5": {"d5", "e4"},
	"f2": {"d2", "f4"},
	"f4": {"e4", "f2", "f6", "g4"},
	"f6": {"d6", "f4"},
	"g1": {"d1", "g4"},
	"g4": {"f4", "g1", "g7"},
	"g7": {"d7", "g4"},
}

var millData = [][3]string{
	{"a1", "a4", "a7"},
	{"a7", "d7", "g7"},
	{"g7", "g4", "g1"},
	{"a1", "d1", "g1"},
	{"b2", "d2", "f2"},
	{"b2", "b4", "b6"},
	{"b6", "d6", "f6"},
	{"f6", "f4", "f2"},
	{"a4", "b4", "c4"},
	{"e4", "f4", "g4"},
	{"d1", "d2", "d3"},
	{"d5", "d6", "d7"},
	{"c3", "d3", "e3"},
	{"c3", "c4", "c5"},
	{"c5", "d5", "e5"},
	{"e5", "e4", "e3"},
}

// positionWeights rate each cell by connectivity for the placement phase.
var positionWeights = [NumPositions]float64{
	0.8, 1.0, 0.8, // a1 a4 a7
	1.0, 1.4, 1.0, // b2 b4 b6
	1.2, 2.5, 1.2, // c3 c4 c5
	1.0, 1.4, 2.5, // d1 d2 d3
	2.5, 1.4, 1.0, // d5 d6 d7
	1.2, 2.5, 1.2, // e3 e4 e5
	1.0, 1.4, 1.0, // f2 f4 f6
	0.8, 1.0, 0.8, // g1 g4 g7
}

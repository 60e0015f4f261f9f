package maze

import "strings"

// WallState is a set of wall flags for a single cell.
// The four structural walls are LEFT, RIGHT, UP and DOWN. NONE and VISITED are markers
// used by the generator and the router and never describe a physical wall.
type WallState uint8

const (
	Left    WallState = 1 << 0
	Right   WallState = 1 << 1
	Up      WallState = 1 << 2
	Down    WallState = 1 << 3
	None    WallState = 1 << 4
	Visited WallState = 1 << 7

	// AllWalls is the initial state of every cell.
	AllWalls = Left | Right | Up | Down
)

// Has reports whether every flag in w is set.
func (s WallState) Has(w WallState) bool {
	return s&w == w
}

// Opposite returns the wall facing w from the neighbouring cell.
// Any value that is not a single structural wall maps to Up so the mapping stays total;
// the generator and router never pass such a value.
func Opposite(w WallState) WallState {
	switch w {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return Up
	}
}

// String returns the flag names joined by "|".
func (s WallState) String() string {
	if s == 0 {
		return "OPEN"
	}

	names := []struct {
		flag WallState
		name string
	}{
		{Left, "LEFT"}, {Right, "RIGHT"}, {Up, "UP"}, {Down, "DOWN"}, {None, "NONE"}, {Visited, "VISITED"},
	}

	var parts []string
	for _, n := range names {
		if s.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

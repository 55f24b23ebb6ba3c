// Package world provides the colony grid: deposits, occupancy and the
// spatial queries units rely on to find and reach resources.
package world

import "fmt"

// Position is a tile coordinate. X grows to the east, Y to the south.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// neighborDirections lists the eight adjacent offsets, clockwise from north.
var neighborDirections = [8]Position{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

// Neighbors returns the eight adjacent coordinates. Some may be out of bounds.
func (p Position) Neighbors() [8]Position {
	var result [8]Position
	for i, dir := range neighborDirections {
		result[i] = Position{X: p.X + dir.X, Y: p.Y + dir.Y}
	}
	return result
}

// Distance returns the Chebyshev distance: the number of king moves
// between two tiles.
func Distance(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

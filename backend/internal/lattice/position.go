// Package lattice owns the HP-lattice chain data model: residues, their
// integer lattice positions, and the occupancy index that keeps
// neighbor/collision queries O(1) instead of O(L^2).
//
// BIOCHEMIST: a Chain is a self-avoiding walk on Z^2, one lattice site per residue.
// ENGINEER: Chain exclusively owns residues and the occupancy index; the Monte
// Carlo driver holds an exclusive mutable handle during a step, and rendering
// sinks only ever see copies taken by Snapshot.
package lattice

import "fmt"

// Position is a point on the integer square lattice.
type Position struct {
	X, Y int
}

// Add returns the component-wise sum of p and q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// ManhattanDistance returns |p-q|_1.
func ManhattanDistance(p, q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// latticeNeighbors is the canonical E/W/N/S neighbor offset order used
// by end moves, energy contact counting, and random initialization.
var latticeNeighbors = [4]Position{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Neighbors returns the four lattice-adjacent positions of p, in a fixed
// deterministic order (callers needing randomized order shuffle a copy).
func Neighbors(p Position) [4]Position {
	var out [4]Position
	for i, d := range latticeNeighbors {
		out[i] = p.Add(d)
	}
	return out
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

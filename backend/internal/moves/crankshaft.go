package moves

import "github.com/latticefold/hpfold/backend/internal/lattice"

// CrankshaftMove is admissible for 2 <= i <= L-2. The four points
// p_{i-1}, p_i, p_{i+1}, p_{i+2} must trace all four edges of a unit
// square (the three chain-implied unit steps plus the closing condition
// |p_{i-1} - p_{i+2}|_1 == 1). The move reflects the p_i, p_{i+1} pair
// across the line through p_{i-1} and p_{i+2}, the square's open edge,
// landing them in the square on the opposite side while keeping both
// new positions at Manhattan distance 1 from their chain neighbors.
func CrankshaftMove(c *lattice.Chain, i int) (lattice.Delta, bool) {
	l := c.Length()
	if i < 2 || i > l-2 {
		return nil, false
	}

	pPrev := c.PositionAt(i - 1)
	pI := c.PositionAt(i)
	pNext := c.PositionAt(i + 1)
	pAfter := c.PositionAt(i + 2)

	if lattice.ManhattanDistance(pPrev, pAfter) != 1 {
		return nil, false
	}

	newI := reflectAcrossAxis(pPrev, pAfter, pI)
	newNext := reflectAcrossAxis(pPrev, pAfter, pNext)

	for _, target := range [2]lattice.Position{newI, newNext} {
		if occupant, occupied := c.OccupantAt(target); occupied && occupant != i && occupant != i+1 {
			return nil, false
		}
	}
	if newI == newNext {
		return nil, false
	}

	return lattice.Delta{i: newI, i + 1: newNext}, true
}

// reflectAcrossAxis reflects p across the axis-aligned line through a and
// b. Since |a-b|_1 == 1, a and b share exactly one coordinate; that
// shared coordinate names the line (vertical if a.X == b.X, horizontal
// otherwise), and only that same coordinate of p flips.
func reflectAcrossAxis(a, b, p lattice.Position) lattice.Position {
	if a.X == b.X {
		return lattice.Position{X: 2*a.X - p.X, Y: p.Y}
	}
	return lattice.Position{X: p.X, Y: 2*a.Y - p.Y}
}

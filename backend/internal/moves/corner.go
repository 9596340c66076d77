package moves

import "github.com/latticefold/hpfold/backend/internal/lattice"

// CornerMove is admissible only for interior residues (2 <= i <= L-1).
// Let a, b, c be the positions of i-1, i, i+1. The triple must form an
// L-shape: a and c two apart in Manhattan distance and differing in both
// coordinates (a collinear triple cannot be corner-moved).
// The reflected fourth corner b' = a + c - b is the sole candidate,
// admissible only if unoccupied or equal to b itself.
func CornerMove(c *lattice.Chain, i int) (lattice.Delta, bool) {
	l := c.Length()
	if i <= 1 || i >= l {
		return nil, false
	}

	a := c.PositionAt(i - 1)
	b := c.PositionAt(i)
	cc := c.PositionAt(i + 1)

	if lattice.ManhattanDistance(a, cc) != 2 || a.X == cc.X || a.Y == cc.Y {
		return nil, false
	}

	bPrime := lattice.Position{X: a.X + cc.X - b.X, Y: a.Y + cc.Y - b.Y}

	// Admissible if bPrime is unoccupied or equals b itself (occupant is then
	// i, the residue being moved, which the equality check below allows).
	occupant, occupied := c.OccupantAt(bPrime)
	if occupied && occupant != i {
		return nil, false
	}

	return lattice.Delta{i: bPrime}, true
}

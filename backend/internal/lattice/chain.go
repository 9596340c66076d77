package lattice

import (
	"fmt"
	"strings"

	"github.com/latticefold/hpfold/backend/internal/apperr"
)

// Delta is a finite mapping from 1-based residue index to a proposed new
// position. The move library only ever produces Deltas; only
// Chain.Apply mutates state.
type Delta map[int]Position

// Chain is an ordered sequence of residues embedded on the integer square
// lattice. It satisfies two invariants at every observable point:
//
//   - Connectivity: |positions[i] - positions[i+1]|_1 == 1 for all i.
//   - Self-avoidance: positions[i] != positions[j] for all i != j.
//
// Chain is constructed once (length and classes fixed for its lifetime);
// only Apply mutates positions, and only with deltas that preserve both
// invariants.
type Chain struct {
	residues  []Residue
	positions []Position        // positions[i] is residue i+1's position
	occupancy map[Position]int // position -> 1-based residue index
}

// NewChainAt builds a Chain from an HP string and an explicit, already
// self-avoiding placement. It is the common constructor behind the Linear
// and Random initializers and is also handy directly in tests that start
// from hand-picked coordinates.
func NewChainAt(hp string, positions []Position) (*Chain, error) {
	if len(hp) != len(positions) {
		return nil, fmt.Errorf("hpfold/lattice: %d residues but %d positions", len(hp), len(positions))
	}

	c := &Chain{
		residues:  make([]Residue, len(hp)),
		positions: append([]Position(nil), positions...),
		occupancy: make(map[Position]int, len(hp)),
	}

	for i, ch := range []byte(hp) {
		class := P
		if ch == byte(H) {
			class = H
		}
		c.residues[i] = Residue{Ordinal: i + 1, Class: class}
	}

	for i, pos := range c.positions {
		if other, taken := c.occupancy[pos]; taken {
			return nil, fmt.Errorf("hpfold/lattice: residues %d and %d both placed at %s", other, i+1, pos)
		}
		c.occupancy[pos] = i + 1
	}

	for i := 0; i+1 < len(c.positions); i++ {
		if ManhattanDistance(c.positions[i], c.positions[i+1]) != 1 {
			return nil, fmt.Errorf("hpfold/lattice: residues %d and %d are not lattice-adjacent", i+1, i+2)
		}
	}

	return c, nil
}

// Length returns L, the number of residues.
func (c *Chain) Length() int {
	return len(c.residues)
}

// PositionAt returns the position of the 1-based residue i.
func (c *Chain) PositionAt(i int) Position {
	return c.positions[i-1]
}

// ClassAt returns the HP class of the 1-based residue i.
func (c *Chain) ClassAt(i int) Class {
	return c.residues[i-1].Class
}

// OccupantAt returns the 1-based residue index occupying pos, and whether
// any residue does.
func (c *Chain) OccupantAt(pos Position) (int, bool) {
	idx, ok := c.occupancy[pos]
	return idx, ok
}

// SnapshotPositions returns a Delta mapping each given 1-based index to its
// current position, suitable as a revert delta for Apply.
func (c *Chain) SnapshotPositions(indices []int) Delta {
	d := make(Delta, len(indices))
	for _, i := range indices {
		d[i] = c.positions[i-1]
	}
	return d
}

// Apply commits delta atomically: every index's position is updated and the
// occupancy index kept in sync, or nothing changes at all. delta keys are
// 1-based residue indices (matching the move library's output); a residue
// being moved counts as vacating its old position for purposes of checking
// the rest of the delta against it.
//
// Returns apperr.ErrIllegalMove if, after applying delta, connectivity or
// self-avoidance would be violated. The move library is responsible for
// only producing admissible deltas, so this indicates a bug upstream:
// Apply is the last line of defense, not the primary admissibility check.
func (c *Chain) Apply(delta Delta) error {
	if len(delta) == 0 {
		return nil
	}

	moving := make(map[int]bool, len(delta))
	for i := range delta {
		moving[i] = true
	}

	// Build the hypothetical new position set and check self-avoidance
	// against it and the untouched residues before mutating anything.
	newOccupancy := make(map[Position]int, len(delta))
	for i, pos := range delta {
		if other, clash := newOccupancy[pos]; clash {
			return apperr.IllegalMove(i, "apply", fmt.Sprintf("residues %d and %d collide at %s", other, i, pos))
		}
		newOccupancy[pos] = i
	}
	for pos, idx := range newOccupancy {
		if occupant, taken := c.occupancy[pos]; taken && occupant != idx && !moving[occupant] {
			return apperr.IllegalMove(idx, "apply", fmt.Sprintf("position %s already occupied by residue %d", pos, occupant))
		}
	}

	// Connectivity: every moved residue must remain lattice-adjacent to
	// its (possibly also moved) chain neighbors.
	for i, newPos := range delta {
		if i > 1 {
			prev := c.neighborPosAfter(i-1, delta)
			if ManhattanDistance(prev, newPos) != 1 {
				return apperr.IllegalMove(i, "apply", fmt.Sprintf("breaks connectivity with residue %d", i-1))
			}
		}
		if i < len(c.residues) {
			next := c.neighborPosAfter(i+1, delta)
			if ManhattanDistance(newPos, next) != 1 {
				return apperr.IllegalMove(i, "apply", fmt.Sprintf("breaks connectivity with residue %d", i+1))
			}
		}
	}

	// All checks passed: commit. Clear vacated cells first, then write
	// new ones, so a residue moving into a cell its own delta vacates is
	// handled correctly.
	for i := range delta {
		delete(c.occupancy, c.positions[i-1])
	}
	for i, pos := range delta {
		c.positions[i-1] = pos
		c.occupancy[pos] = i
	}

	return nil
}

// neighborPosAfter returns what the position of residue index i (1-based)
// would be after delta is applied, falling back to its current position if
// delta does not touch it.
func (c *Chain) neighborPosAfter(i int, delta Delta) Position {
	if pos, ok := delta[i]; ok {
		return pos
	}
	return c.positions[i-1]
}

// Snapshot is an immutable copy of the chain's residues and positions,
// suitable for publication to rendering sinks between steps.
type Snapshot struct {
	HP        string
	Positions []Position
}

// TakeSnapshot copies the chain's current state.
func (c *Chain) TakeSnapshot() Snapshot {
	hp := make([]byte, len(c.residues))
	for i, r := range c.residues {
		hp[i] = byte(r.Class)
	}
	return Snapshot{
		HP:        string(hp),
		Positions: append([]Position(nil), c.positions...),
	}
}

// String renders a compact one-line description of the chain, used in
// fatal ErrIllegalMove diagnostics.
func (c *Chain) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range c.residues {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%c@%s", i+1, c.residues[i].Class, c.positions[i])
	}
	b.WriteByte(']')
	return b.String()
}

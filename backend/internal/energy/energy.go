// Package energy implements the HP contact-energy function over a
// lattice.Chain.
//
// BIOCHEMIST: only non-sequential H-H lattice contacts lower the energy;
// everything else (H-P, P-P, sequential neighbors) contributes nothing.
// MATHEMATICIAN: E = -|{ {i,j} : class(i)=class(j)=H, |i-j|>1, |p_i-p_j|_1=1 }|.
package energy

import "github.com/latticefold/hpfold/backend/internal/lattice"

// Energy returns the HP contact energy of c: the negated count of
// non-sequential H-H lattice contacts. It is pure, deterministic, and
// O(L) given the chain's occupancy index. The result is always <= 0.
func Energy(c *lattice.Chain) int {
	return contactCount(c, allIndices(c.Length())) * -1
}

func allIndices(l int) []int {
	idx := make([]int, l)
	for i := range idx {
		idx[i] = i + 1
	}
	return idx
}

// Local recomputes the contact count restricted to touched (1-based
// residue indices) and their lattice neighborhoods, negated the same way
// as Energy. It exists so callers can verify the incremental/full-recompute
// equivalence: a full Energy(c) after any step must equal Local(c,
// allIndices) on all residues, and an incremental caller may restrict
// touched to the moved residues to get the same delta contribution
// without a full O(L) pass.
func Local(c *lattice.Chain, touched []int) int {
	return contactCount(c, touched) * -1
}

// contactCount counts non-sequential H-H contacts that involve at least
// one residue in indices, without double counting a contact that involves
// two indices both in the set.
func contactCount(c *lattice.Chain, indices []int) int {
	seen := make(map[[2]int]bool)
	count := 0

	for _, i := range indices {
		if c.ClassAt(i) != lattice.H {
			continue
		}
		for _, nb := range lattice.Neighbors(c.PositionAt(i)) {
			j, occupied := c.OccupantAt(nb)
			if !occupied || j == i {
				continue
			}
			if c.ClassAt(j) != lattice.H {
				continue
			}
			if abs(i-j) <= 1 {
				continue // sequential neighbor, not a contact
			}
			pair := [2]int{i, j}
			if i > j {
				pair = [2]int{j, i}
			}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			count++
		}
	}

	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package moves

import (
	"math/rand"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// EndMove is admissible only at the chain's two ends (i == 1 or i == L).
// Candidates are the lattice neighbors of the chain neighbor j that are
// currently unoccupied, counting p_i itself as unoccupied since it is the
// position being vacated. When there is more than one candidate, EndMove
// samples one uniformly at random using rng — this is the second-level
// sample the move-selection fairness contract requires.
func EndMove(c *lattice.Chain, i int, rng *rand.Rand) (lattice.Delta, bool) {
	l := c.Length()
	var j int
	switch i {
	case 1:
		j = 2
	case l:
		j = l - 1
	default:
		return nil, false
	}
	if l < 2 {
		return nil, false
	}

	pi := c.PositionAt(i)
	var free []lattice.Position
	for _, cand := range lattice.Neighbors(c.PositionAt(j)) {
		if cand == pi {
			free = append(free, cand)
			continue
		}
		if _, occupied := c.OccupantAt(cand); !occupied {
			free = append(free, cand)
		}
	}
	if len(free) == 0 {
		return nil, false
	}

	chosen := free[rng.Intn(len(free))]
	return lattice.Delta{i: chosen}, true
}

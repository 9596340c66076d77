// Package moves implements the HP-lattice move library: end, corner, and
// crankshaft moves. Each move function only proposes a candidate delta; it
// never mutates the chain.
//
// The pull move is intentionally not implemented here: it has known
// connectivity-preservation bugs that would need a separate proof before
// shipping.
package moves

import (
	"math/rand"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// Kind names a move kind, used for move-selection fairness (sample
// uniformly among admissible kinds, then uniformly among targets when a
// kind has more than one) and for ErrIllegalMove diagnostics.
type Kind string

const (
	End        Kind = "end"
	Corner     Kind = "corner"
	Crankshaft Kind = "crankshaft"
)

// Candidate pairs a move kind with the delta it proposes.
type Candidate struct {
	Kind  Kind
	Delta lattice.Delta
}

// Propose probes all three move kinds on residue i (1-based) and returns
// every admissible candidate. The caller (the Monte Carlo driver) is
// responsible for the two-level uniform sampling: pick a kind uniformly
// among Propose's results, then (End only) a target uniformly among that
// kind's candidate positions — End already performs its own internal
// target sampling here since it is the only kind with more than one
// possible delta per call: if multiple candidates exist, a uniform
// random one is chosen.
func Propose(c *lattice.Chain, i int, rng *rand.Rand) []Candidate {
	var candidates []Candidate

	if delta, ok := EndMove(c, i, rng); ok {
		candidates = append(candidates, Candidate{Kind: End, Delta: delta})
	}
	if delta, ok := CornerMove(c, i); ok {
		candidates = append(candidates, Candidate{Kind: Corner, Delta: delta})
	}
	if delta, ok := CrankshaftMove(c, i); ok {
		candidates = append(candidates, Candidate{Kind: Crankshaft, Delta: delta})
	}

	return candidates
}

package lattice

import (
	"log"
	"math/rand"

	"github.com/latticefold/hpfold/backend/internal/apperr"
)

// RandomWalkMaxAttempts bounds how many times NewChain restarts a random
// self-avoiding walk before giving up.
const RandomWalkMaxAttempts = 10000

// NewChain builds a Chain for hp using the named initialization mode.
//
//   - "linear" (default): residue i placed at (i-1, 0).
//   - "random": a random self-avoiding walk from the origin, restarted on
//     dead ends, up to RandomWalkMaxAttempts times.
//   - anything else: treated as linear, with a logged warning.
//
// rng is the driver's single seedable source of randomness; NewChain
// never reaches for the global math/rand functions.
func NewChain(hp string, mode string, rng *rand.Rand) (*Chain, error) {
	switch mode {
	case "random":
		return newRandomChain(hp, rng)
	case "linear":
		return newLinearChain(hp)
	default:
		log.Printf("hpfold: unknown init method %q, falling back to linear", mode)
		return newLinearChain(hp)
	}
}

func newLinearChain(hp string) (*Chain, error) {
	positions := make([]Position, len(hp))
	for i := range positions {
		positions[i] = Position{X: i, Y: 0}
	}
	return NewChainAt(hp, positions)
}

func newRandomChain(hp string, rng *rand.Rand) (*Chain, error) {
	l := len(hp)

	for attempt := 0; attempt < RandomWalkMaxAttempts; attempt++ {
		positions := make([]Position, l)
		occupied := make(map[Position]bool, l)

		positions[0] = Position{X: 0, Y: 0}
		occupied[positions[0]] = true

		ok := true
		for i := 1; i < l; i++ {
			candidates := Neighbors(positions[i-1])
			var free []Position
			for _, cand := range candidates {
				if !occupied[cand] {
					free = append(free, cand)
				}
			}
			if len(free) == 0 {
				ok = false
				break
			}
			chosen := free[rng.Intn(len(free))]
			positions[i] = chosen
			occupied[chosen] = true
		}

		if ok {
			return NewChainAt(hp, positions)
		}
	}

	return nil, apperr.InitFailed(RandomWalkMaxAttempts)
}

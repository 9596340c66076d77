package mc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/hpfold/backend/internal/apperr"
	"github.com/latticefold/hpfold/backend/internal/lattice"
)

func chainAt(t *testing.T, hp string, positions ...lattice.Position) *lattice.Chain {
	t.Helper()
	c, err := lattice.NewChainAt(hp, positions)
	require.NoError(t, err)
	return c
}

func TestRunEnsemble_LowestBestEnergyWins(t *testing.T) {
	origBuild, origRun := buildChain, runChain
	defer func() { buildChain, runChain = origBuild, origRun }()

	buildChain = func(hp, mode string, rng *rand.Rand) (*lattice.Chain, error) {
		return chainAt(t, "HPPH",
			lattice.Position{X: 0, Y: 0},
			lattice.Position{X: 0, Y: 1},
			lattice.Position{X: 1, Y: 1},
			lattice.Position{X: 1, Y: 0},
		), nil
	}
	runChain = func(chain *lattice.Chain, cfg Config) (*Result, error) {
		// Seed offsets 0,1,2 map to BestEnergy -1,-3,-2: run 1 should win.
		energies := map[int64]int{0: -1, 1: -3, 2: -2}
		return &Result{BestEnergy: energies[cfg.Seed]}, nil
	}

	cfg := DefaultConfig()
	cfg.Seed = 0
	results, best, err := RunEnsemble("HPPH", "linear", cfg, 3)

	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, -3, best.BestEnergy)
}

func TestRunEnsemble_SkipsFailedRunsAndFailsOnlyIfAllFail(t *testing.T) {
	origBuild, origRun := buildChain, runChain
	defer func() { buildChain, runChain = origBuild, origRun }()

	buildChain = func(hp, mode string, rng *rand.Rand) (*lattice.Chain, error) {
		return chainAt(t, "HPPH",
			lattice.Position{X: 0, Y: 0},
			lattice.Position{X: 0, Y: 1},
			lattice.Position{X: 1, Y: 1},
			lattice.Position{X: 1, Y: 0},
		), nil
	}
	runChain = func(chain *lattice.Chain, cfg Config) (*Result, error) {
		if cfg.Seed == 1 {
			return nil, apperr.IllegalMove(2, "crankshaft", chain.String())
		}
		return &Result{BestEnergy: -1}, nil
	}

	cfg := DefaultConfig()
	cfg.Seed = 0
	results, best, err := RunEnsemble("HPPH", "linear", cfg, 3)

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Len(t, results, 2, "the seed-1 run should be skipped, not fatal")
}

func TestRunEnsemble_FailsWhenEveryRunFails(t *testing.T) {
	origBuild, origRun := buildChain, runChain
	defer func() { buildChain, runChain = origBuild, origRun }()

	buildChain = func(hp, mode string, rng *rand.Rand) (*lattice.Chain, error) {
		return nil, apperr.InitFailed(lattice.RandomWalkMaxAttempts)
	}

	cfg := DefaultConfig()
	_, _, err := RunEnsemble("HPPH", "random", cfg, 4)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

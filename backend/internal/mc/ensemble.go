package mc

import (
	"math/rand"

	"github.com/latticefold/hpfold/backend/internal/apperr"
	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// buildChain and runChain are indirected through package-level vars so
// tests can substitute deterministic fakes: a run's success or failure
// and its resulting energies otherwise depend on an RNG trajectory that
// isn't practical to predict by hand.
var (
	buildChain = lattice.NewChain
	runChain   = Run
)

// RunEnsemble builds runs independent chains from hp (same initMethod,
// Seed+i per run) and runs each to completion. A run that fails to
// initialize or to complete is skipped; RunEnsemble itself fails only
// if every run fails. Returns every surviving result plus the one with
// the lowest BestEnergy.
func RunEnsemble(hp string, initMethod string, cfg Config, runs int) ([]*Result, *Result, error) {
	baseSeed := cfg.Seed
	results := make([]*Result, 0, runs)

	for run := 0; run < runs; run++ {
		runCfg := cfg
		runCfg.Seed = baseSeed + int64(run)

		chain, err := buildChain(hp, initMethod, rand.New(rand.NewSource(runCfg.Seed)))
		if err != nil {
			continue
		}

		result, err := runChain(chain, runCfg)
		if err != nil {
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, nil, apperr.Invalid("all %d ensemble runs failed", runs)
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.BestEnergy < best.BestEnergy {
			best = r
		}
	}

	return results, best, nil
}

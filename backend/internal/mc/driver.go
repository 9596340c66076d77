// Package mc implements the Metropolis Monte Carlo driver: the
// sequential step loop that selects a residue, probes the move
// library, and accepts or reverts by a greedy or temperature-based
// criterion.
//
// PHYSICIST: explores the Boltzmann distribution P(state) ∝ exp(-E/kT);
// MATHEMATICIAN: each step is an independent Metropolis-Hastings trial
// with proposal distribution given by the move library's two-level
// kind-then-target sampling.
package mc

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/latticefold/hpfold/backend/internal/apperr"
	"github.com/latticefold/hpfold/backend/internal/energy"
	"github.com/latticefold/hpfold/backend/internal/lattice"
	"github.com/latticefold/hpfold/backend/internal/moves"
	"github.com/latticefold/hpfold/backend/internal/sink"
)

// KBoltzmann is the fixed Boltzmann constant the Metropolis criterion
// uses, in kcal/(mol*K).
const KBoltzmann = 0.0019872041

// Config holds the driver's run parameters: a plain struct with a
// default constructor rather than functional options.
type Config struct {
	// Iterations is the fixed step count N.
	Iterations int

	// Temperature is nil for greedy descent, or a pointer to T (Kelvin)
	// to enable the Metropolis uphill-acceptance branch.
	Temperature *float64

	// Seed drives the single RNG the driver and move library share.
	Seed int64

	// CancelFunc is polled once per step; when it returns true the loop
	// halts cleanly and Result.Cancelled is set.
	CancelFunc func() bool

	// Sinks receive every step outcome, accepted or rejected.
	Sinks []sink.Sink
}

// DefaultConfig returns the recommended defaults: greedy descent, no
// cancellation, no sinks.
func DefaultConfig() Config {
	return Config{
		Iterations:  1000,
		Temperature: nil,
		Seed:        1,
		CancelFunc:  nil,
		Sinks:       nil,
	}
}

// Result carries the outcome of a Run.
type Result struct {
	InitialEnergy  int
	FinalEnergy    int
	BestEnergy     int
	BestStep       int
	AcceptedSteps  int
	RejectedSteps  int
	AcceptanceRate float64
	EnergyTrace    []int // one entry per accepted step
	Cancelled      bool
}

// Run drives chain through cfg.Iterations Metropolis steps, mutating it
// in place, and returns the run's statistics. Run never replaces chain;
// callers that need the pre-run state should snapshot it first.
func Run(chain *lattice.Chain, cfg Config) (*Result, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	result := &Result{
		InitialEnergy: energy.Energy(chain),
	}
	result.FinalEnergy = result.InitialEnergy
	result.BestEnergy = result.InitialEnergy

	l := chain.Length()

	for step := 0; step < cfg.Iterations; step++ {
		if cfg.CancelFunc != nil && cfg.CancelFunc() {
			result.Cancelled = true
			break
		}

		i := rng.Intn(l) + 1
		candidates := moves.Propose(chain, i, rng)

		if len(candidates) == 0 {
			result.RejectedSteps++
			publish(cfg.Sinks, sink.StepOutcome{
				Step:         step,
				ResidueIndex: i,
				Accepted:     false,
				EnergyBefore: result.FinalEnergy,
				EnergyAfter:  result.FinalEnergy,
				BestSoFar:    result.BestEnergy,
			}, chain)
			continue
		}

		chosen := candidates[rng.Intn(len(candidates))]

		touched := touchedIndices(chosen.Delta)
		revert := chain.SnapshotPositions(touched)
		before := energy.Energy(chain)

		if err := chain.Apply(chosen.Delta); err != nil {
			return result, fmt.Errorf("%w (%v)", apperr.IllegalMove(i, string(chosen.Kind), chain.String()), err)
		}
		after := energy.Energy(chain)

		accepted := accept(before, after, cfg.Temperature, rng)
		if !accepted {
			if err := chain.Apply(revert); err != nil {
				return result, fmt.Errorf("%w (%v)", apperr.IllegalMove(i, string(chosen.Kind), chain.String()), err)
			}
			after = before
			result.RejectedSteps++
		} else {
			result.AcceptedSteps++
			result.EnergyTrace = append(result.EnergyTrace, after)
			if after < result.BestEnergy {
				result.BestEnergy = after
				result.BestStep = step
			}
		}
		result.FinalEnergy = after

		publish(cfg.Sinks, sink.StepOutcome{
			Step:         step,
			ResidueIndex: i,
			Kind:         chosen.Kind,
			Accepted:     accepted,
			EnergyBefore: before,
			EnergyAfter:  after,
			BestSoFar:    result.BestEnergy,
		}, chain)
	}

	total := result.AcceptedSteps + result.RejectedSteps
	if total > 0 {
		result.AcceptanceRate = float64(result.AcceptedSteps) / float64(total)
	}

	return result, nil
}

// accept applies greedy acceptance when temperature is nil, Metropolis
// with the standard (non-inverted) acceptance form otherwise.
func accept(before, after int, temperature *float64, rng *rand.Rand) bool {
	if after <= before {
		return true
	}
	if temperature == nil {
		return false
	}
	probability := math.Exp(-float64(after-before) / (*temperature * KBoltzmann))
	return rng.Float64() < probability
}

func touchedIndices(delta lattice.Delta) []int {
	indices := make([]int, 0, len(delta))
	for i := range delta {
		indices = append(indices, i)
	}
	return indices
}

func publish(sinks []sink.Sink, outcome sink.StepOutcome, chain *lattice.Chain) {
	if len(sinks) == 0 {
		return
	}
	snapshot := chain.TakeSnapshot()
	for _, s := range sinks {
		s.OnStep(outcome, snapshot)
	}
}

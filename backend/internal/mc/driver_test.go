package mc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// fixedFloats is a rand.Source whose Float64 draws are pinned to a fixed
// sequence, used to pin the Metropolis coin-flip in TestAccept_Metropolis.
type fixedFloats struct {
	values []float64
	next   int
}

func (f *fixedFloats) Int63() int64 {
	v := f.values[f.next]
	f.next++
	return int64(v * (1 << 63))
}

func (f *fixedFloats) Seed(int64) {}

// S6: with T chosen so exp(-1/(T*Kb)) == 0.5, an uphill move of
// delta-E == +1 is accepted when the draw is 0.25 and rejected when it
// is 0.75.
func TestAccept_MetropolisUphillDependsOnDraw(t *testing.T) {
	temperature := 1.0 / (KBoltzmann * math.Log(2))

	rng := rand.New(&fixedFloats{values: []float64{0.25, 0.75}})
	assert.True(t, accept(0, 1, &temperature, rng))
	assert.False(t, accept(0, 1, &temperature, rng))
}

func TestAccept_GreedyRejectsUphill(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.False(t, accept(0, 1, nil, rng))
}

func TestAccept_AlwaysAcceptsDownhillOrEqual(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.True(t, accept(5, 5, nil, rng))
	assert.True(t, accept(5, 4, nil, rng))
}

// In greedy mode the accepted-step energy trace is non-increasing, and
// the final energy never exceeds the initial one.
func TestRun_GreedyEnergyIsMonotonicallyNonIncreasing(t *testing.T) {
	chain, err := lattice.NewChain("HPHPHPHPHPHPHPHP", "random", rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Iterations = 500
	cfg.Seed = 9

	result, err := Run(chain, cfg)
	require.NoError(t, err)

	for i := 1; i < len(result.EnergyTrace); i++ {
		assert.LessOrEqual(t, result.EnergyTrace[i], result.EnergyTrace[i-1])
	}
	assert.LessOrEqual(t, result.FinalEnergy, result.InitialEnergy)
	assert.LessOrEqual(t, result.BestEnergy, result.InitialEnergy)
}

func TestRun_ReportsAcceptanceRate(t *testing.T) {
	chain, err := lattice.NewChain("HPHPHPHP", "linear", nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Iterations = 200
	cfg.Seed = 5

	result, err := Run(chain, cfg)
	require.NoError(t, err)

	assert.Equal(t, result.AcceptedSteps+result.RejectedSteps <= cfg.Iterations, true)
	if result.AcceptedSteps+result.RejectedSteps > 0 {
		expected := float64(result.AcceptedSteps) / float64(result.AcceptedSteps+result.RejectedSteps)
		assert.InDelta(t, expected, result.AcceptanceRate, 1e-9)
	}
}

func TestRun_RespectsCancellation(t *testing.T) {
	chain, err := lattice.NewChain("HPHPHPHP", "linear", nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Iterations = 1000
	cfg.Seed = 2
	calls := 0
	cfg.CancelFunc = func() bool {
		calls++
		return calls > 10
	}

	result, err := Run(chain, cfg)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.LessOrEqual(t, result.AcceptedSteps+result.RejectedSteps, 11)
}

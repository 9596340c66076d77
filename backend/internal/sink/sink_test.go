package sink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

func TestConsoleSink_PrintsOnStride(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, 2)

	s.OnStep(StepOutcome{Step: 0, Accepted: true, EnergyAfter: -1}, lattice.Snapshot{})
	s.OnStep(StepOutcome{Step: 1, Accepted: false, EnergyAfter: -1}, lattice.Snapshot{})
	s.OnStep(StepOutcome{Step: 2, Accepted: true, EnergyAfter: -2}, lattice.Snapshot{})

	out := buf.String()
	assert.Contains(t, out, "step      0")
	assert.NotContains(t, out, "step      1")
	assert.Contains(t, out, "step      2")
	require.NoError(t, s.Close())
}

func TestEnergySeriesSink_MeanAndMinOverAcceptedStepsOnly(t *testing.T) {
	s := NewEnergySeriesSink("")
	s.OnStep(StepOutcome{Accepted: true, EnergyAfter: -1}, lattice.Snapshot{})
	s.OnStep(StepOutcome{Accepted: false, EnergyAfter: -100}, lattice.Snapshot{})
	s.OnStep(StepOutcome{Accepted: true, EnergyAfter: -3}, lattice.Snapshot{})

	assert.Equal(t, -2.0, s.Mean())
	assert.Equal(t, -3.0, s.Min())
}

func TestEnergySeriesSink_CloseIsNoOpWithoutAcceptedSteps(t *testing.T) {
	s := NewEnergySeriesSink("")
	assert.NoError(t, s.Close())
}

func TestFrameSink_StopsCapturingAfterMax(t *testing.T) {
	dir := t.TempDir()
	s := NewFrameSink(dir, 2)

	snap := lattice.Snapshot{HP: "HP", Positions: []lattice.Position{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	for i := 0; i < 5; i++ {
		s.OnStep(StepOutcome{Step: i, Accepted: true}, snap)
	}

	assert.Equal(t, 2, s.frames)
}

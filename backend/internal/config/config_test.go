package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAppliedWithoutConfigOrFlags(t *testing.T) {
	flags, err := ParseFlags([]string{"-fasta", "seq.fasta"})
	require.NoError(t, err)

	params, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "seq.fasta", params.FastaPath)
	assert.Equal(t, 1000, params.Iterations)
	assert.Equal(t, "linear", params.InitMethod)
	assert.Nil(t, params.Temperature)
	assert.Equal(t, 1, params.EnsembleRuns)
	assert.Equal(t, "Results", params.ResultsDir)
}

func TestLoad_FlagsOverrideDefaults(t *testing.T) {
	flags, err := ParseFlags([]string{
		"-fasta", "seq.fasta",
		"-iterations", "50",
		"-init", "random",
		"-temp", "310.5",
		"-ensemble", "3",
	})
	require.NoError(t, err)

	params, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, 50, params.Iterations)
	assert.Equal(t, "random", params.InitMethod)
	require.NotNil(t, params.Temperature)
	assert.InDelta(t, 310.5, *params.Temperature, 1e-9)
	assert.Equal(t, 3, params.EnsembleRuns)
}

func TestLoad_RejectsNonPositiveIterations(t *testing.T) {
	flags, err := ParseFlags([]string{"-iterations", "-5"})
	require.NoError(t, err)

	_, err = Load(flags)
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveTemperature(t *testing.T) {
	flags, err := ParseFlags([]string{"-temp", "0"})
	require.NoError(t, err)

	_, err = Load(flags)
	assert.Error(t, err)
}

func TestLoad_RejectsEnsembleRunsBelowOne(t *testing.T) {
	flags, err := ParseFlags([]string{"-ensemble", "0"})
	require.NoError(t, err)

	_, err = Load(flags)
	assert.Error(t, err)
}

func TestLoad_UnknownInitMethodIsNotAnError(t *testing.T) {
	flags, err := ParseFlags([]string{"-init", "spiral"})
	require.NoError(t, err)

	params, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "spiral", params.InitMethod)
}

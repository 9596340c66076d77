package hp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

func TestReadFasta_SkipsHeadersAndWhitespace(t *testing.T) {
	input := ">sp|P12345|example\nVIF\nLMC W\n\n>second header ignored within same read\n"
	hp, err := ReadFasta(strings.NewReader(input), Classify)
	require.NoError(t, err)
	assert.Equal(t, "HHHHHHH", hp)
}

func TestReadFasta_RejectsEmptySequence(t *testing.T) {
	_, err := ReadFasta(strings.NewReader(">only a header\n"), Classify)
	assert.Error(t, err)
}

func TestClassify_AuthoritativeAlphabet(t *testing.T) {
	assert.Equal(t, lattice.H, Classify('A'))
	assert.Equal(t, lattice.H, Classify('G'))
	assert.Equal(t, lattice.P, Classify('D'))
	assert.Equal(t, lattice.P, Classify('K'))
}

func TestClassifyNarrow_ExcludesGlyProAlaFromHydrophobic(t *testing.T) {
	assert.Equal(t, lattice.H, ClassifyNarrow('V'))
	assert.Equal(t, lattice.P, ClassifyNarrow('G'))
	assert.Equal(t, lattice.P, ClassifyNarrow('A'))
	assert.Equal(t, lattice.P, ClassifyNarrow('P'))
}

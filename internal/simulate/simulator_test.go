package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasn/seqlens/internal/seq"
)

func mustSeq(t *testing.T, raw string) *seq.Sequence {
	t.Helper()
	s, err := seq.Normalize(raw, true)
	require.NoError(t, err)
	return s
}

func TestSimulator_MissenseMutation(t *testing.T) {
	// GGT (Gly) -> TGT (Cys) at the first base of the second codon.
	sim := New(mustSeq(t, "ATGGGTAAA"))

	require.NoError(t, sim.Apply(4, 'T'))

	cmp, err := sim.Compare()
	require.NoError(t, err)
	assert.Equal(t, "MGK", cmp.ProteinOriginal)
	assert.Equal(t, "MCK", cmp.ProteinMutated)
	assert.False(t, cmp.IsSilent)
	assert.False(t, cmp.StopCodonIntroduced)
}

func TestSimulator_SilentMutation(t *testing.T) {
	// GGT -> GGC is still Gly.
	sim := New(mustSeq(t, "ATGGGTAAA"))

	require.NoError(t, sim.Apply(6, 'C'))

	cmp, err := sim.Compare()
	require.NoError(t, err)
	assert.True(t, cmp.IsSilent)
	assert.Equal(t, cmp.ProteinOriginal, cmp.ProteinMutated)
}

func TestSimulator_NonsenseMutation(t *testing.T) {
	// AAA (Lys) -> TAA (stop).
	sim := New(mustSeq(t, "ATGGGTAAA"))

	require.NoError(t, sim.Apply(7, 'T'))

	cmp, err := sim.Compare()
	require.NoError(t, err)
	assert.Equal(t, "MG*", cmp.ProteinMutated)
	assert.True(t, cmp.StopCodonIntroduced)
	assert.False(t, cmp.IsSilent)
}

func TestSimulator_Reset(t *testing.T) {
	sim := New(mustSeq(t, "ATGGGTAAA"))

	require.NoError(t, sim.Apply(4, 'T'))
	sim.Reset()

	cmp, err := sim.Compare()
	require.NoError(t, err)
	assert.True(t, cmp.IsSilent)
}

func TestSimulator_MultipleMutationsAccumulate(t *testing.T) {
	sim := New(mustSeq(t, "ATGGGTAAA"))

	require.NoError(t, sim.Apply(4, 'T'))
	require.NoError(t, sim.Apply(7, 'T'))

	cmp, err := sim.Compare()
	require.NoError(t, err)
	assert.Equal(t, "MC*", cmp.ProteinMutated)
}

func TestSimulator_InvalidInput(t *testing.T) {
	sim := New(mustSeq(t, "ATG"))

	assert.Error(t, sim.Apply(0, 'A'), "position is 1-based")
	assert.Error(t, sim.Apply(4, 'A'), "position beyond sequence")
	assert.Error(t, sim.Apply(1, 'Z'), "base outside alphabet")

	// Lowercase bases are accepted and uppercased.
	require.NoError(t, sim.Apply(1, 'g'))
	assert.Equal(t, "GTG", sim.Mutated().Norm)
}

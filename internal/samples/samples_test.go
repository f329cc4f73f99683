package samples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList_Inline(t *testing.T) {
	names, err := ParseList("S1,S2,S3")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3"}, names)

	names, err = ParseList("S1\tS2")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, names)

	names, err = ParseList("S1, S2 ,S3")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3"}, names)
}

func TestParseList_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("S1\nS2\n\nS3\n"), 0o644))

	names, err := ParseList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3"}, names)
}

func TestFilter_Include(t *testing.T) {
	names := []string{"S1", "S2", "S3", "S4"}

	mask, indices, err := Filter(names, []string{"S2", "S4"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, mask)
	assert.Equal(t, []int{1, 3}, indices)
	assert.Len(t, mask, len(names))
}

func TestFilter_Exclude(t *testing.T) {
	names := []string{"S1", "S2", "S3", "S4"}

	mask, indices, err := Filter(names, nil, []string{"S2"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, true}, mask)
	assert.Equal(t, []int{0, 2, 3}, indices)
}

func TestFilter_UnknownName(t *testing.T) {
	names := []string{"S1", "S2"}

	_, _, err := Filter(names, []string{"S1", "nope"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sample name")

	_, _, err = Filter(names, nil, []string{"nope"})
	assert.Error(t, err)
}

func TestSynthesizeNames(t *testing.T) {
	assert.Equal(t, []string{"Sample_1", "Sample_2", "Sample_3"}, SynthesizeNames("Sample_", 3))
	assert.Equal(t, []string{"1", "2"}, SynthesizeNames("", 2))
	assert.Empty(t, SynthesizeNames("x", 0))
}

func TestRenameRetained(t *testing.T) {
	// Retained indices keep their original 1-based numbering.
	assert.Equal(t, []string{"S2", "S4"}, RenameRetained("S", []int{1, 3}))
}

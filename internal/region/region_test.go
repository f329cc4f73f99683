package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Region
	}{
		{"whole chromosome", "chr1", Region{Chrom: "chr1"}},
		{"single position", "chr1:100", Region{Chrom: "chr1", Start: 100, End: 100}},
		{"dash range", "chr1:100-200", Region{Chrom: "chr1", Start: 100, End: 200}},
		{"dot range", "chr1:100..200", Region{Chrom: "chr1", Start: 100, End: 200}},
		{"chromosome with colon", "HLA:1:50-60", Region{Chrom: "HLA:1", Start: 50, End: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	specs := []string{
		"",
		"chr1:",
		":100",
		"chr1:abc",
		"chr1:100-abc",
		"chr1:200-100",
		"chr1:0-100",
		"chr1:100..",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			assert.Error(t, err)
		})
	}
}

func TestCovers(t *testing.T) {
	whole := Region{Chrom: "chr1"}
	assert.True(t, whole.Covers("chr1", 1))
	assert.True(t, whole.Covers("chr1", 1000000))
	assert.False(t, whole.Covers("chr2", 1))

	single := Region{Chrom: "chr1", Start: 100, End: 100}
	assert.True(t, single.Covers("chr1", 100))
	assert.False(t, single.Covers("chr1", 99))
	assert.False(t, single.Covers("chr1", 101))

	ranged := Region{Chrom: "chr1", Start: 100, End: 200}
	assert.True(t, ranged.Covers("chr1", 100))
	assert.True(t, ranged.Covers("chr1", 150))
	assert.True(t, ranged.Covers("chr1", 200))
	assert.False(t, ranged.Covers("chr1", 201))
	assert.False(t, ranged.Covers("chr2", 150))
}

func TestParse_DashAndDotsEquivalent(t *testing.T) {
	dash, err := Parse("2L:1000-2000")
	require.NoError(t, err)
	dots, err := Parse("2L:1000..2000")
	require.NoError(t, err)
	assert.Equal(t, dash, dots)
}

func TestString(t *testing.T) {
	assert.Equal(t, "chr1", Region{Chrom: "chr1"}.String())
	assert.Equal(t, "chr1:100", Region{Chrom: "chr1", Start: 100, End: 100}.String())
	assert.Equal(t, "chr1:100-200", Region{Chrom: "chr1", Start: 100, End: 200}.String())
}

package syncfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolseq/freqkit/internal/variant"
)

func writeSync(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sync")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_Basic(t *testing.T) {
	path := writeSync(t,
		"2L\t100\tA\t10:0:0:2:0:0\t5:1:0:0:0:0\n"+
			"2L\t101\tC\t0:0:8:0:0:1\t.:.:.:.:.:.\n")

	r, err := NewReader(path, nil)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Read()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2L", rec.Chrom)
	assert.Equal(t, int64(100), rec.Pos)
	assert.Equal(t, byte('A'), rec.Ref)
	require.Len(t, rec.Samples, 2)
	// Column order is A:T:C:G:N:del.
	assert.Equal(t, variant.BaseCounts{A: 10, T: 0, C: 0, G: 2}, rec.Samples[0])
	assert.Equal(t, variant.BaseCounts{A: 5, T: 1}, rec.Samples[1])

	rec, err = r.Read()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, variant.BaseCounts{C: 8, Del: 1}, rec.Samples[0])
	// Dot columns mark samples without data.
	assert.Equal(t, variant.BaseCounts{}, rec.Samples[1])

	rec, err = r.Read()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReader_Mask(t *testing.T) {
	path := writeSync(t, "2L\t100\tA\t1:0:0:0:0:0\t2:0:0:0:0:0\t3:0:0:0:0:0\n")

	r, err := NewReader(path, []bool{false, true, true})
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Read()
	require.NoError(t, err)
	require.Len(t, rec.Samples, 2)
	assert.Equal(t, uint32(2), rec.Samples[0].A)
	assert.Equal(t, uint32(3), rec.Samples[1].A)
}

func TestReader_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few columns", "2L\t100\tA\n"},
		{"bad position", "2L\tx\tA\t1:0:0:0:0:0\n"},
		{"bad count", "2L\t100\tA\t1:0:z:0:0:0\n"},
		{"wrong count arity", "2L\t100\tA\t1:0:0:0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(writeSync(t, tt.line), nil)
			require.NoError(t, err)
			defer r.Close()
			_, err = r.Read()
			assert.Error(t, err)
		})
	}
}

func TestWriter(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	require.NoError(t, w.Write(&variant.Variant{
		Chrom: "2L",
		Pos:   100,
		Ref:   'A',
		Samples: []variant.BaseCounts{
			{A: 10, G: 2},
			{A: 5, T: 1, Del: 3},
		},
	}))
	// Unknown reference base renders as N.
	require.NoError(t, w.Write(&variant.Variant{
		Chrom:   "2L",
		Pos:     101,
		Samples: []variant.BaseCounts{{C: 4}},
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"2L\t100\tA\t10:0:0:2:0:0\t5:1:0:0:0:3\n"+
			"2L\t101\tN\t0:0:4:0:0:0\n",
		sb.String())
}

func TestReadWriteRoundTrip(t *testing.T) {
	content := "3R\t55\tG\t0:1:2:3:4:5\t6:7:8:9:10:11\n"
	r, err := NewReader(writeSync(t, content), nil)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Read()
	require.NoError(t, err)

	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.Write(rec.Variant()))
	require.NoError(t, w.Flush())
	assert.Equal(t, content, sb.String())
}

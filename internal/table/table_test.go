package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf, ",", "nan")

	require.NoError(t, w.Header("CHROM", "POS", "S1.FREQ"))
	require.NoError(t, w.Row("2L", Int(17), Float(0.5)))
	require.NoError(t, w.Row("2L", Int(42), w.NA()))
	require.NoError(t, w.Flush())

	assert.Equal(t, "CHROM,POS,S1.FREQ\n2L,17,0.5\n2L,42,nan\n", buf.String())
}

func TestWriterTabSeparator(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf, "\t", "nan")

	require.NoError(t, w.Row("3R", Uint(12), Float(0.3333333333333333)))
	require.NoError(t, w.Flush())

	assert.Equal(t, "3R\t12\t0.3333333333333333\n", buf.String())
}

func TestSampleColumns(t *testing.T) {
	cols := SampleColumns([]string{"S1", "S2"}, []string{"COV", "FREQ"})
	assert.Equal(t, []string{"S1.COV", "S1.FREQ", "S2.COV", "S2.FREQ"}, cols)

	assert.Empty(t, SampleColumns(nil, []string{"COV"}))
}

package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseCounts_AddAndCount(t *testing.T) {
	var b BaseCounts
	for _, base := range []byte("AaCcGgTt*Nx") {
		b.Add(base)
	}

	assert.Equal(t, uint32(2), b.Count('A'))
	assert.Equal(t, uint32(2), b.Count('c'))
	assert.Equal(t, uint32(2), b.Count('G'))
	assert.Equal(t, uint32(2), b.Count('T'))
	assert.Equal(t, uint32(1), b.Count('*'))
	assert.Equal(t, uint32(2), b.Count('N'))
	assert.Equal(t, uint32(0), b.Count(0))

	assert.Equal(t, uint32(8), b.Coverage())
	assert.Equal(t, uint32(11), b.Total())
}

func TestMerge(t *testing.T) {
	merged := Merge([]BaseCounts{
		{A: 1, C: 2, Del: 1},
		{A: 3, T: 4, N: 2},
	})
	assert.Equal(t, BaseCounts{A: 4, C: 2, T: 4, N: 2, Del: 1}, merged)
}

func TestVariant_AlternativeBase(t *testing.T) {
	t.Run("declared alt wins", func(t *testing.T) {
		v := &Variant{Ref: 'A', Alt: 'T', Samples: []BaseCounts{{G: 100}}}
		assert.Equal(t, byte('T'), v.AlternativeBase())
	})

	t.Run("most frequent non-ref base", func(t *testing.T) {
		v := &Variant{Ref: 'A', Samples: []BaseCounts{
			{A: 50, G: 3, T: 7},
			{A: 10, T: 5},
		}}
		assert.Equal(t, byte('T'), v.AlternativeBase())
	})

	t.Run("no non-ref observations", func(t *testing.T) {
		v := &Variant{Ref: 'A', Samples: []BaseCounts{{A: 10}}}
		assert.Equal(t, byte('N'), v.AlternativeBase())
	})
}

func TestVariant_ReferenceBase(t *testing.T) {
	assert.Equal(t, byte('A'), (&Variant{Ref: 'a'}).ReferenceBase())
	assert.Equal(t, byte('N'), (&Variant{}).ReferenceBase())
}

func TestSliceStream(t *testing.T) {
	variants := []*Variant{
		{Chrom: "2L", Pos: 1},
		{Chrom: "2L", Pos: 2},
	}
	s := NewSliceStream(variants)

	got, err := Collect(s)
	require.NoError(t, err)
	assert.Equal(t, variants, got)

	// Exhausted streams stay exhausted.
	v, err := s.Next()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEach(t *testing.T) {
	s := NewSliceStream([]*Variant{{Pos: 1}, {Pos: 2}, {Pos: 3}})

	var seen []int64
	err := Each(s, func(v *Variant) error {
		seen = append(seen, v.Pos)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, seen)
}

func TestStreamFunc(t *testing.T) {
	n := int64(0)
	closed := false
	s := &StreamFunc{
		NextFunc: func() (*Variant, error) {
			if n >= 2 {
				return nil, nil
			}
			n++
			return &Variant{Pos: n}, nil
		},
		CloseFunc: func() error {
			closed = true
			return nil
		},
	}

	got, err := Collect(s)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NoError(t, s.Close())
	assert.True(t, closed)
}

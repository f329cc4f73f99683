// Package variant defines the canonical per-position record that all
// input formats are converted to, and the stream abstraction used by
// every downstream consumer.
package variant

// BaseCounts tallies the allele observations of one sample at one
// genomic position.
type BaseCounts struct {
	A   uint32
	C   uint32
	G   uint32
	T   uint32
	N   uint32
	Del uint32
}

// Add tallies a single observed base. Lowercase bases are folded to
// uppercase; '*' counts as a deletion, anything unrecognized as N.
func (b *BaseCounts) Add(base byte) {
	switch base {
	case 'A', 'a':
		b.A++
	case 'C', 'c':
		b.C++
	case 'G', 'g':
		b.G++
	case 'T', 't':
		b.T++
	case '*':
		b.Del++
	default:
		b.N++
	}
}

// Count returns the tally for the given base, or 0 for a base that is
// not tracked (including the zero byte used for an unknown allele).
func (b BaseCounts) Count(base byte) uint32 {
	switch base {
	case 'A', 'a':
		return b.A
	case 'C', 'c':
		return b.C
	case 'G', 'g':
		return b.G
	case 'T', 't':
		return b.T
	case 'N', 'n':
		return b.N
	case '*':
		return b.Del
	}
	return 0
}

// Coverage returns the number of reads carrying one of the four
// nucleotides, that is, the usable coverage at this position.
func (b BaseCounts) Coverage() uint32 {
	return b.A + b.C + b.G + b.T
}

// Total returns all observations including N and deletions.
func (b BaseCounts) Total() uint32 {
	return b.Coverage() + b.N + b.Del
}

// Merge sums a set of per-sample counts into one combined tally.
func Merge(counts []BaseCounts) BaseCounts {
	var total BaseCounts
	for _, c := range counts {
		total.A += c.A
		total.C += c.C
		total.G += c.G
		total.T += c.T
		total.N += c.N
		total.Del += c.Del
	}
	return total
}

// Variant is a single genomic position with per-sample allele counts.
// Pos is 1-based. Ref and Alt are 0 when the source format does not
// provide them.
type Variant struct {
	Chrom   string
	Pos     int64
	Ref     byte
	Alt     byte
	Samples []BaseCounts
}

// AlternativeBase returns the alternative allele of the variant. If the
// source declared one (VCF), that is returned verbatim. Otherwise the
// most frequent nucleotide across all samples that differs from the
// reference base is used, with ties broken in A,C,G,T order. Returns
// 'N' when no non-reference base was observed.
func (v *Variant) AlternativeBase() byte {
	if v.Alt != 0 {
		return v.Alt
	}
	total := Merge(v.Samples)
	best := byte('N')
	var bestCount uint32
	for _, base := range []byte{'A', 'C', 'G', 'T'} {
		if base == upper(v.Ref) {
			continue
		}
		if c := total.Count(base); c > bestCount {
			best = base
			bestCount = c
		}
	}
	return best
}

// ReferenceBase returns the reference base, or 'N' if unknown.
func (v *Variant) ReferenceBase() byte {
	if v.Ref == 0 {
		return 'N'
	}
	return upper(v.Ref)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

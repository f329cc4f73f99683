// Package region implements genomic region specifications of the form
// "chr", "chr:position", "chr:start-end", or "chr:start..end".
package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a chromosome with an optional inclusive position range.
// Start and End are both 0 when the whole chromosome is meant.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

// Parse parses a textual region specification. Accepted forms:
//
//	chr            whole chromosome
//	chr:pos        single position
//	chr:start-end  inclusive range
//	chr:start..end inclusive range
func Parse(spec string) (Region, error) {
	if spec == "" {
		return Region{}, fmt.Errorf("empty region specification")
	}

	idx := strings.LastIndex(spec, ":")
	if idx < 0 {
		return Region{Chrom: spec}, nil
	}

	chrom := spec[:idx]
	rng := spec[idx+1:]
	if chrom == "" || rng == "" {
		return Region{}, fmt.Errorf("invalid region %q", spec)
	}

	var startStr, endStr string
	switch {
	case strings.Contains(rng, ".."):
		parts := strings.SplitN(rng, "..", 2)
		startStr, endStr = parts[0], parts[1]
	case strings.Contains(rng, "-"):
		parts := strings.SplitN(rng, "-", 2)
		startStr, endStr = parts[0], parts[1]
	default:
		startStr, endStr = rng, rng
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return Region{}, fmt.Errorf("invalid region %q: bad start position %q", spec, startStr)
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return Region{}, fmt.Errorf("invalid region %q: bad end position %q", spec, endStr)
	}
	if start < 1 || end < start {
		return Region{}, fmt.Errorf("invalid region %q: positions must satisfy 1 <= start <= end", spec)
	}

	return Region{Chrom: chrom, Start: start, End: end}, nil
}

// Covers reports whether the given position falls inside the region.
// A region without a range covers every position on its chromosome.
func (r Region) Covers(chrom string, pos int64) bool {
	if chrom != r.Chrom {
		return false
	}
	if r.Start == 0 && r.End == 0 {
		return true
	}
	return pos >= r.Start && pos <= r.End
}

// WholeChromosome reports whether the region has no position range.
func (r Region) WholeChromosome() bool {
	return r.Start == 0 && r.End == 0
}

func (r Region) String() string {
	if r.WholeChromosome() {
		return r.Chrom
	}
	if r.Start == r.End {
		return fmt.Sprintf("%s:%d", r.Chrom, r.Start)
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

package vcf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poolseq/freqkit/internal/variant"
)

// Record represents a single data line from a VCF file. Samples holds
// the raw per-sample columns for the selected samples; their contents
// are only parsed on demand.
type Record struct {
	Chrom   string
	Pos     int64
	ID      string
	Ref     string
	Alts    []string
	Filter  string
	Format  []string
	Samples []string

	line int
}

// IsSNP reports whether the reference and all alternative alleles are
// single nucleotides.
func (rec *Record) IsSNP() bool {
	if len(rec.Ref) != 1 {
		return false
	}
	for _, alt := range rec.Alts {
		if len(alt) != 1 || alt == "." || alt == "*" {
			return false
		}
	}
	return len(rec.Alts) > 0
}

// IsBiallelic reports whether the record has exactly one alternative
// allele.
func (rec *Record) IsBiallelic() bool {
	return len(rec.Alts) == 1
}

// HasAD reports whether the record's FORMAT column contains the
// allele-depth field.
func (rec *Record) HasAD() bool {
	return rec.formatIndex("AD") >= 0
}

func (rec *Record) formatIndex(id string) int {
	for i, f := range rec.Format {
		if f == id {
			return i
		}
	}
	return -1
}

// AlleleDepths parses the AD entry of every sample column. Each result
// holds one depth per allele (reference first). A missing or "." entry
// yields all-zero depths for that sample.
func (rec *Record) AlleleDepths() ([][]uint32, error) {
	adIdx := rec.formatIndex("AD")
	if adIdx < 0 {
		return nil, fmt.Errorf("record %s:%d has no AD format field", rec.Chrom, rec.Pos)
	}

	nAlleles := 1 + len(rec.Alts)
	depths := make([][]uint32, len(rec.Samples))
	for i, col := range rec.Samples {
		depths[i] = make([]uint32, nAlleles)
		parts := strings.Split(col, ":")
		if adIdx >= len(parts) || parts[adIdx] == "." || parts[adIdx] == "" {
			continue
		}
		values := strings.Split(parts[adIdx], ",")
		for j, val := range values {
			if j >= nAlleles {
				break
			}
			if val == "." {
				continue
			}
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, &ParseError{
					Line:    rec.line,
					Message: fmt.Sprintf("invalid AD value %q for sample %d", parts[adIdx], i+1),
				}
			}
			depths[i][j] = uint32(n)
		}
	}
	return depths, nil
}

// Variant converts a biallelic SNP record to the canonical
// representation, mapping each sample's AD depths onto the reference
// and alternative base counts.
func (rec *Record) Variant() (*variant.Variant, error) {
	if !rec.IsSNP() || !rec.IsBiallelic() {
		return nil, fmt.Errorf("record %s:%d is not a biallelic SNP", rec.Chrom, rec.Pos)
	}
	depths, err := rec.AlleleDepths()
	if err != nil {
		return nil, err
	}

	ref := rec.Ref[0]
	alt := rec.Alts[0][0]
	v := &variant.Variant{
		Chrom:   rec.Chrom,
		Pos:     rec.Pos,
		Ref:     ref,
		Alt:     alt,
		Samples: make([]variant.BaseCounts, len(depths)),
	}
	for i, d := range depths {
		setCount(&v.Samples[i], ref, d[0])
		setCount(&v.Samples[i], alt, d[1])
	}
	return v, nil
}

func setCount(counts *variant.BaseCounts, base byte, n uint32) {
	switch base {
	case 'A', 'a':
		counts.A = n
	case 'C', 'c':
		counts.C = n
	case 'G', 'g':
		counts.G = n
	case 'T', 't':
		counts.T = n
	default:
		counts.N = n
	}
}

func parsePos(field string) (int64, error) {
	pos, err := strconv.ParseInt(field, 10, 64)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position %q", field)
	}
	return pos, nil
}

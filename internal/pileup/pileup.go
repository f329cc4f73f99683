// Package pileup provides samtools (m)pileup file parsing.
//
// Each line holds chromosome, 1-based position, reference base, and
// then three columns per sample: read depth, read bases, and base
// qualities. The number of samples is learned from the first record.
package pileup

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poolseq/freqkit/internal/fileio"
	"github.com/poolseq/freqkit/internal/variant"
)

// Sample holds the raw per-sample columns of one pileup line.
type Sample struct {
	Depth int
	Bases string
	Quals string
}

// Record is one parsed pileup line. Samples contains only the retained
// samples when the reader was opened with a mask.
type Record struct {
	Chrom   string
	Pos     int64
	Ref     byte
	Samples []Sample
}

// Reader reads pileup records line by line.
type Reader struct {
	rc         io.ReadCloser
	scanner    *bufio.Scanner
	mask       []bool
	lineNumber int
}

// NewReader opens a pileup file. If mask is non-nil it must have one
// entry per sample in the file; samples with a false entry are dropped
// at parse time, before their base strings are inspected.
func NewReader(path string, mask []bool) (*Reader, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pileup file: %w", err)
	}
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{rc: rc, scanner: scanner, mask: mask}, nil
}

// Read returns the next record, or nil, nil at end of input.
func (r *Reader) Read() (*Record, error) {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		return r.parseLine(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pileup line: %w", err)
	}
	return nil, nil
}

func (r *Reader) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 6 || (len(fields)-3)%3 != 0 {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("expected 3 + 3*samples columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || pos < 1 {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}
	if len(fields[2]) != 1 {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("invalid reference base: %s", fields[2]),
		}
	}

	sampleCount := (len(fields) - 3) / 3
	if r.mask != nil && len(r.mask) != sampleCount {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("sample filter has %d entries but record has %d samples", len(r.mask), sampleCount),
		}
	}

	rec := &Record{
		Chrom: fields[0],
		Pos:   pos,
		Ref:   fields[2][0],
	}
	for i := 0; i < sampleCount; i++ {
		if r.mask != nil && !r.mask[i] {
			continue
		}
		depth, err := strconv.Atoi(fields[3+3*i])
		if err != nil {
			return nil, &ParseError{
				Line:    r.lineNumber,
				Message: fmt.Sprintf("invalid depth for sample %d: %s", i+1, fields[3+3*i]),
			}
		}
		rec.Samples = append(rec.Samples, Sample{
			Depth: depth,
			Bases: fields[3+3*i+1],
			Quals: fields[3+3*i+2],
		})
	}

	return rec, nil
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.rc.Close()
}

// Counts tallies a pileup read-bases string against the reference base.
// It handles match characters ('.' and ','), explicit bases, deletion
// placeholders ('*'), read start markers ('^' plus mapping quality),
// read end markers ('$'), and skips indel descriptions ('+N...'/'-N...').
func Counts(ref byte, bases string) variant.BaseCounts {
	var counts variant.BaseCounts
	for i := 0; i < len(bases); i++ {
		switch c := bases[i]; c {
		case '.', ',':
			counts.Add(ref)
		case '^':
			// Read start, next byte is the mapping quality.
			i++
		case '$':
			// Read end marker, no base.
		case '+', '-':
			// Indel: a length followed by that many bases.
			j := i + 1
			for j < len(bases) && bases[j] >= '0' && bases[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(bases[i+1 : j])
			i = j + n - 1
		case '>', '<':
			// Reference skip from spliced alignments.
			counts.N++
		default:
			counts.Add(c)
		}
	}
	return counts
}

// Variant converts the record to the canonical representation by
// tallying each retained sample's read bases.
func (rec *Record) Variant() *variant.Variant {
	v := &variant.Variant{
		Chrom:   rec.Chrom,
		Pos:     rec.Pos,
		Ref:     rec.Ref,
		Samples: make([]variant.BaseCounts, len(rec.Samples)),
	}
	for i, s := range rec.Samples {
		v.Samples[i] = Counts(rec.Ref, s.Bases)
	}
	return v
}

// ParseError represents an error during pileup parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pileup parse error at line %d: %s", e.Line, e.Message)
}

// Package syncfile provides reading and writing of the PoPoolation2
// "sync" format: chromosome, 1-based position, reference base, and one
// colon-separated count column "A:T:C:G:N:del" per sample.
package syncfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poolseq/freqkit/internal/fileio"
	"github.com/poolseq/freqkit/internal/variant"
)

// Record is one parsed sync line. Samples contains only the retained
// samples when the reader was opened with a mask.
type Record struct {
	Chrom   string
	Pos     int64
	Ref     byte
	Samples []variant.BaseCounts
}

// Variant converts the record to the canonical representation.
func (rec *Record) Variant() *variant.Variant {
	return &variant.Variant{
		Chrom:   rec.Chrom,
		Pos:     rec.Pos,
		Ref:     rec.Ref,
		Samples: rec.Samples,
	}
}

// Reader reads sync records line by line.
type Reader struct {
	rc         io.ReadCloser
	scanner    *bufio.Scanner
	mask       []bool
	lineNumber int
}

// NewReader opens a sync file. If mask is non-nil it must have one
// entry per sample column; samples with a false entry are dropped at
// parse time.
func NewReader(path string, mask []bool) (*Reader, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sync file: %w", err)
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
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return r.parseLine(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sync line: %w", err)
	}
	return nil, nil
}

func (r *Reader) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 4 {
		return nil, &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("expected at least 4 columns, found %d", len(fields)),
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

	sampleCount := len(fields) - 3
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
		counts, err := parseCounts(fields[3+i])
		if err != nil {
			return nil, &ParseError{
				Line:    r.lineNumber,
				Message: fmt.Sprintf("sample %d: %v", i+1, err),
			}
		}
		rec.Samples = append(rec.Samples, counts)
	}

	return rec, nil
}

// parseCounts parses an "A:T:C:G:N:del" column. A column of dots
// (".:.:.:.:.:.") marks a sample without data and yields zero counts.
func parseCounts(field string) (variant.BaseCounts, error) {
	var counts variant.BaseCounts
	parts := strings.Split(field, ":")
	if len(parts) != 6 {
		return counts, fmt.Errorf("expected 6 colon-separated counts, found %d", len(parts))
	}
	values := make([]uint32, 6)
	for i, p := range parts {
		if p == "." {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return counts, fmt.Errorf("invalid count %q", p)
		}
		values[i] = uint32(n)
	}
	counts.A, counts.T, counts.C, counts.G, counts.N, counts.Del =
		values[0], values[1], values[2], values[3], values[4], values[5]
	return counts, nil
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.rc.Close()
}

// ParseError represents an error during sync parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sync parse error at line %d: %s", e.Line, e.Message)
}

// Writer renders variants as sync lines.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a sync writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes one variant as a sync line. An unknown reference base is
// rendered as N.
func (sw *Writer) Write(v *variant.Variant) error {
	if _, err := fmt.Fprintf(sw.w, "%s\t%d\t%c", v.Chrom, v.Pos, v.ReferenceBase()); err != nil {
		return err
	}
	for _, s := range v.Samples {
		if _, err := fmt.Fprintf(sw.w, "\t%d:%d:%d:%d:%d:%d", s.A, s.T, s.C, s.G, s.N, s.Del); err != nil {
			return err
		}
	}
	_, err := sw.w.WriteString("\n")
	return err
}

// Flush flushes buffered output.
func (sw *Writer) Flush() error {
	return sw.w.Flush()
}

// Package vcf provides VCF file parsing functionality.
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/poolseq/freqkit/internal/fileio"
)

// SampleSelection restricts parsing to a subset of the samples declared
// in the header. With Exclude false, Names lists the samples to keep;
// with Exclude true, the samples to drop. The selection is resolved
// against the header at open time, so per-record parsing only ever
// touches the selected sample columns.
type SampleSelection struct {
	Names   []string
	Exclude bool
}

// Parser reads variant records from a VCF file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
type Parser struct {
	rc          io.ReadCloser
	reader      *bufio.Reader
	lineNumber  int
	header      []string
	formats     map[string]bool
	sampleNames []string
	sampleCols  []int // column indices (within the sample columns) to parse
}

// NewParser creates a new VCF parser for the given file. A nil
// selection keeps all samples.
func NewParser(path string, selection *SampleSelection) (*Parser, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{
		rc:      rc,
		reader:  bufio.NewReader(rc),
		formats: make(map[string]bool),
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.applySelection(selection); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// parseHeader reads the header lines, collecting declared FORMAT field
// IDs and the sample names from the #CHROM line.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			if id, ok := formatID(line); ok {
				p.formats[id] = true
			}
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.sampleNames = fields[9:]
			}
			return nil
		}

		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// formatID extracts the ID from a "##FORMAT=<ID=...,...>" header line.
func formatID(line string) (string, bool) {
	const prefix = "##FORMAT=<"
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	body := strings.TrimSuffix(line[len(prefix):], ">")
	for _, part := range strings.Split(body, ",") {
		if strings.HasPrefix(part, "ID=") {
			return part[len("ID="):], true
		}
	}
	return "", false
}

// applySelection resolves the sample selection against the header and
// rewrites the parser's sample name list and column mapping.
func (p *Parser) applySelection(selection *SampleSelection) error {
	if selection == nil {
		p.sampleCols = make([]int, len(p.sampleNames))
		for i := range p.sampleCols {
			p.sampleCols[i] = i
		}
		return nil
	}

	listed := make(map[string]bool, len(selection.Names))
	for _, name := range selection.Names {
		idx := -1
		for i, n := range p.sampleNames {
			if n == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("invalid sample name used for filtering: %q", name)
		}
		listed[name] = true
	}

	var names []string
	var cols []int
	for i, n := range p.sampleNames {
		if listed[n] != selection.Exclude {
			names = append(names, n)
			cols = append(cols, i)
		}
	}
	p.sampleNames = names
	p.sampleCols = cols
	return nil
}

// Next reads the next record from the VCF file.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		atEOF := err == io.EOF

		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			p.lineNumber++
			return p.parseLine(line)
		}
		if atEOF {
			return nil, nil
		}
		p.lineNumber++
	}
}

// parseLine parses a single VCF data line into a Record.
func (p *Parser) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := parsePos(fields[1])
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	rec := &Record{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alts:   strings.Split(fields[4], ","),
		Filter: fields[6],
		line:   p.lineNumber,
	}

	if len(fields) > 9 {
		rec.Format = strings.Split(fields[8], ":")
		sampleFields := fields[9:]
		rec.Samples = make([]string, 0, len(p.sampleCols))
		for _, col := range p.sampleCols {
			if col >= len(sampleFields) {
				return nil, &ParseError{
					Line:    p.lineNumber,
					Message: fmt.Sprintf("record has %d sample columns, header declares more", len(sampleFields)),
				}
			}
			rec.Samples = append(rec.Samples, sampleFields[col])
		}
	}

	return rec, nil
}

// Header returns the VCF header lines.
func (p *Parser) Header() []string {
	return p.header
}

// HasFormat reports whether the header declares the given FORMAT field.
func (p *Parser) HasFormat(id string) bool {
	return p.formats[id]
}

// SampleNames returns the sample names from the #CHROM header line,
// after applying the sample selection. Returns nil if no sample columns
// are present.
func (p *Parser) SampleNames() []string {
	return p.sampleNames
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	return p.rc.Close()
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

// Package table provides the delimited table output used by the
// commands, with a configurable separator and missing-value entry.
package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer writes delimited table rows.
type Writer struct {
	w   *bufio.Writer
	sep string
	na  string
}

// NewWriter creates a table writer with the given column separator and
// missing-value entry.
func NewWriter(w io.Writer, sep, na string) *Writer {
	return &Writer{w: bufio.NewWriter(w), sep: sep, na: na}
}

// Header writes the header line from the given column names.
func (t *Writer) Header(columns ...string) error {
	_, err := t.w.WriteString(strings.Join(columns, t.sep) + "\n")
	return err
}

// Row writes one data row.
func (t *Writer) Row(cells ...string) error {
	_, err := t.w.WriteString(strings.Join(cells, t.sep) + "\n")
	return err
}

// NA returns the configured missing-value entry.
func (t *Writer) NA() string {
	return t.na
}

// Flush flushes buffered output.
func (t *Writer) Flush() error {
	return t.w.Flush()
}

// Int formats an integer cell.
func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Uint formats an unsigned integer cell.
func Uint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// Float formats a floating point cell in compact notation.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SampleColumns builds per-sample column names as "<sample>.<field>"
// for every sample and field, in sample-major order.
func SampleColumns(sampleNames, fields []string) []string {
	columns := make([]string, 0, len(sampleNames)*len(fields))
	for _, sample := range sampleNames {
		for _, field := range fields {
			columns = append(columns, fmt.Sprintf("%s.%s", sample, field))
		}
	}
	return columns
}

// Package samples resolves sample names and computes sample filter
// masks over the original sample index space.
package samples

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poolseq/freqkit/internal/fileio"
)

// ParseList resolves a sample-name filter value. If the value names an
// existing file, it is read as one sample name per line; otherwise it
// is split as an inline comma- or tab-separated list.
func ParseList(value string) ([]string, error) {
	if fileio.IsFile(value) {
		return fileio.ReadLines(value)
	}
	var names []string
	for _, name := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\t'
	}) {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Filter builds a retention mask over names from a list of names to
// include or to exclude. Exactly one of include and exclude must be
// non-empty; enforcing that is the caller's job. An unknown name is an
// error. The mask has one entry per original sample index; the returned
// indices are the ascending positions where the mask is true.
func Filter(names []string, include, exclude []string) ([]bool, []int, error) {
	isInclude := len(include) > 0
	list := include
	if !isInclude {
		list = exclude
	}

	// Include mode starts all-false, exclude mode all-true; the listed
	// names flip their entries.
	mask := make([]bool, len(names))
	if !isInclude {
		for i := range mask {
			mask[i] = true
		}
	}

	for _, name := range list {
		idx := indexOf(names, name)
		if idx < 0 {
			return nil, nil, fmt.Errorf("invalid sample name used for filtering: %q", name)
		}
		mask[idx] = isInclude
	}

	return mask, RetainedIndices(mask), nil
}

// RetainedIndices returns the ascending indices where mask is true.
func RetainedIndices(mask []bool) []int {
	var indices []int
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return indices
}

// SynthesizeNames generates n sample names as prefix plus 1-based index,
// for formats that do not carry sample names of their own.
func SynthesizeNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i+1)
	}
	return names
}

// RenameRetained rebuilds the synthesized name list after filtering,
// keeping the original 1-based indices of the retained samples.
func RenameRetained(prefix string, indices []int) []string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = prefix + strconv.Itoa(idx+1)
	}
	return names
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

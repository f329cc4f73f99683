// Package window regroups a variant stream into fixed-width, fixed-
// stride sliding windows along each chromosome.
package window

import (
	"fmt"

	"github.com/poolseq/freqkit/internal/variant"
)

// Window is one emitted window: a chromosome with inclusive start and
// end coordinates and the variants that fell into it, in input order.
type Window struct {
	Chrom   string
	Start   int64
	End     int64
	Entries []*variant.Variant
}

// Count returns the number of variants in the window.
func (w *Window) Count() int {
	return len(w.Entries)
}

// BaseCounts returns the per-entry sample count slices, a lighter view
// for consumers that only need the tallies and the window's binning.
func (w *Window) BaseCounts() [][]variant.BaseCounts {
	counts := make([][]variant.BaseCounts, len(w.Entries))
	for i, v := range w.Entries {
		counts[i] = v.Samples
	}
	return counts
}

// MeanCoverage returns the mean usable coverage per sample over the
// window's entries. nSamples is needed because an empty window carries
// no sample information of its own.
func (w *Window) MeanCoverage(nSamples int) []float64 {
	means := make([]float64, nSamples)
	if len(w.Entries) == 0 {
		return means
	}
	for _, v := range w.Entries {
		for i, s := range v.Samples {
			if i < nSamples {
				means[i] += float64(s.Coverage())
			}
		}
	}
	for i := range means {
		means[i] /= float64(len(w.Entries))
	}
	return means
}

// Aggregator consumes a variant stream and emits sliding windows.
//
// The input stream must be sorted ascending by (chromosome, position);
// this is a caller obligation and is not verified here. Unsorted input
// yields windows with incorrect membership.
type Aggregator struct {
	stream variant.Stream
	width  int64
	stride int64

	current *Window
	queue   []*Window
	done    bool
}

// NewAggregator creates an aggregator with the given window width and
// stride. A stride of 0 means "use the width". The aggregator takes
// ownership of the stream; closing the aggregator closes the stream.
func NewAggregator(stream variant.Stream, width, stride int64) (*Aggregator, error) {
	if width <= 0 {
		return nil, fmt.Errorf("window width must be positive, got %d", width)
	}
	if stride < 0 {
		return nil, fmt.Errorf("window stride must not be negative, got %d", stride)
	}
	if stride == 0 {
		stride = width
	}
	return &Aggregator{stream: stream, width: width, stride: stride}, nil
}

// Next returns the next window, or nil, nil when the stream is
// exhausted and all windows have been flushed.
//
// Windows on a chromosome start at position 1 and advance by the
// stride. A window passed over on the way to the next variant is
// emitted even when it is empty; the trailing window of a chromosome
// and of the whole stream is only emitted when it holds at least one
// variant.
func (a *Aggregator) Next() (*Window, error) {
	for {
		if len(a.queue) > 0 {
			w := a.queue[0]
			a.queue = a.queue[1:]
			return w, nil
		}
		if a.done {
			return nil, nil
		}

		v, err := a.stream.Next()
		if err != nil {
			return nil, err
		}
		if v == nil {
			a.done = true
			if a.current != nil && len(a.current.Entries) > 0 {
				a.queue = append(a.queue, a.current)
			}
			a.current = nil
			continue
		}

		if a.current == nil || a.current.Chrom != v.Chrom {
			// Chromosome boundary: flush the partial window and start
			// over at the new chromosome's first position.
			if a.current != nil && len(a.current.Entries) > 0 {
				a.queue = append(a.queue, a.current)
			}
			a.current = &Window{Chrom: v.Chrom, Start: 1, End: a.width}
		}

		for v.Pos > a.current.End {
			a.queue = append(a.queue, a.current)
			a.current = &Window{
				Chrom: a.current.Chrom,
				Start: a.current.Start + a.stride,
				End:   a.current.Start + a.stride + a.width - 1,
			}
		}
		a.current.Entries = append(a.current.Entries, v)
	}
}

// Close closes the underlying stream.
func (a *Aggregator) Close() error {
	return a.stream.Close()
}

// Package input implements the unified variant-stream input pipeline:
// one of three mutually exclusive file formats (pileup, sync, VCF) is
// opened, sample-resolved, optionally region- and sample-filtered, and
// exposed as one format-agnostic stream of canonical variants.
package input

import (
	"os"

	"go.uber.org/zap"

	"github.com/poolseq/freqkit/internal/region"
	"github.com/poolseq/freqkit/internal/samples"
	"github.com/poolseq/freqkit/internal/variant"
	"github.com/poolseq/freqkit/internal/window"
)

// Options is the full configuration of one pipeline run. Exactly one of
// the three file paths must be set.
type Options struct {
	PileupFile string
	SyncFile   string
	VCFFile    string

	// SamplePrefix names samples of formats without native sample
	// names as <prefix><1-based index>. Only legal with pileup/sync.
	SamplePrefix string

	// FilterRegion restricts the stream to a genomic region, in the
	// format "chr", "chr:pos", "chr:start-end", or "chr:start..end".
	FilterRegion string

	// FilterSamplesInclude / FilterSamplesExclude are mutually
	// exclusive; each is either a path to a file with one sample name
	// per line, or an inline comma/tab-separated list.
	FilterSamplesInclude string
	FilterSamplesExclude string

	WindowWidth  int64
	WindowStride int64
}

// Selector validates the configuration, opens the matching format
// adapter, and hands out the resulting stream. Preparation is lazy and
// runs exactly once: the first call computes and caches the stream and
// sample names, later calls return the cached result.
type Selector struct {
	opts   Options
	logger *zap.Logger

	prepared    bool
	stream      variant.Stream
	sampleNames []string
}

// NewSelector creates a selector for the given options.
func NewSelector(opts Options) *Selector {
	return &Selector{
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and debug messages.
func (s *Selector) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Prepare validates the configuration and opens the input source. It is
// idempotent: repeat calls are no-ops returning nil once preparation
// has succeeded.
func (s *Selector) Prepare() error {
	if s.prepared {
		return nil
	}

	isPileup := s.opts.PileupFile != ""
	isSync := s.opts.SyncFile != ""
	isVCF := s.opts.VCFFile != ""

	count := 0
	for _, set := range []bool{isPileup, isSync, isVCF} {
		if set {
			count++
		}
	}
	if count != 1 {
		return &ConfigError{
			Message: "exactly one input file of one type has to be provided",
		}
	}

	if s.opts.SamplePrefix != "" && isVCF {
		return &ConfigError{
			Message: "--sample-name-prefix can only be used with input file formats that do " +
				"not already have sample names, such as (m)pileup or sync files",
		}
	}
	if s.opts.FilterSamplesInclude != "" && s.opts.FilterSamplesExclude != "" {
		return &ConfigError{
			Message: "--filter-samples-include and --filter-samples-exclude are mutually exclusive",
		}
	}

	var reg *region.Region
	if s.opts.FilterRegion != "" {
		parsed, err := region.Parse(s.opts.FilterRegion)
		if err != nil {
			return &ValidationError{Option: "--filter-region", Message: err.Error()}
		}
		reg = &parsed
	}

	var err error
	switch {
	case isPileup:
		err = s.preparePileup(reg)
	case isSync:
		err = s.prepareSync(reg)
	case isVCF:
		err = s.prepareVCF(reg)
	}
	if err != nil {
		return err
	}

	s.prepared = true
	s.logger.Debug("input source prepared",
		zap.String("file", s.sourcePath()),
		zap.Int("samples", len(s.sampleNames)),
	)
	return nil
}

// SampleNames returns the resolved, ordered sample names, after any
// sample filtering.
func (s *Selector) SampleNames() ([]string, error) {
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	return s.sampleNames, nil
}

// Stream returns the format-agnostic variant stream. The stream is
// created once; the same instance is returned on every call.
func (s *Selector) Stream() (variant.Stream, error) {
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	return s.stream, nil
}

// Windows wraps the stream in a sliding-window aggregator using the
// configured width and stride.
func (s *Selector) Windows() (*window.Aggregator, error) {
	if s.opts.WindowWidth <= 0 {
		return nil, &ConfigError{Message: "--window-width must be a positive number"}
	}
	stream, err := s.Stream()
	if err != nil {
		return nil, err
	}
	return window.NewAggregator(stream, s.opts.WindowWidth, s.opts.WindowStride)
}

// Close closes the underlying stream, if one was prepared.
func (s *Selector) Close() error {
	if s.stream == nil {
		return nil
	}
	return s.stream.Close()
}

func (s *Selector) sourcePath() string {
	switch {
	case s.opts.PileupFile != "":
		return s.opts.PileupFile
	case s.opts.SyncFile != "":
		return s.opts.SyncFile
	}
	return s.opts.VCFFile
}

// checkSourceFile verifies that the flag value names an existing,
// readable file before the decoder is opened.
func checkSourceFile(option, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ValidationError{Option: option, Message: "cannot read input file: " + err.Error()}
	}
	f.Close()
	return nil
}

// sampleFilterLists resolves the include/exclude options to name lists.
// At most one of the returned lists is non-empty.
func (s *Selector) sampleFilterLists() (include, exclude []string, err error) {
	if s.opts.FilterSamplesInclude != "" {
		include, err = samples.ParseList(s.opts.FilterSamplesInclude)
		if err != nil {
			return nil, nil, &ValidationError{Option: "--filter-samples-include", Message: err.Error()}
		}
	}
	if s.opts.FilterSamplesExclude != "" {
		exclude, err = samples.ParseList(s.opts.FilterSamplesExclude)
		if err != nil {
			return nil, nil, &ValidationError{Option: "--filter-samples-exclude", Message: err.Error()}
		}
	}
	return include, exclude, nil
}

// sampleFilterOption names the sample filter flag that is in use.
func (s *Selector) sampleFilterOption() string {
	if s.opts.FilterSamplesInclude != "" {
		return "--filter-samples-include"
	}
	return "--filter-samples-exclude"
}

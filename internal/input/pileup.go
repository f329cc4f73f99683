package input

import (
	"go.uber.org/zap"

	"github.com/poolseq/freqkit/internal/pileup"
	"github.com/poolseq/freqkit/internal/region"
	"github.com/poolseq/freqkit/internal/samples"
	"github.com/poolseq/freqkit/internal/variant"
)

// preparePileup opens the pileup source using the two-pass protocol:
// pass 1 reads one record to learn the sample cardinality, pass 2 (only
// when sample filtering is requested) reopens the file with the mask
// applied at decode time.
func (s *Selector) preparePileup(reg *region.Region) error {
	const option = "--pileup-file"
	path := s.opts.PileupFile
	if err := checkSourceFile(option, path); err != nil {
		return err
	}

	reader, err := pileup.NewReader(path, nil)
	if err != nil {
		return &ValidationError{Option: option, Message: err.Error()}
	}

	probe, err := reader.Read()
	if err != nil {
		reader.Close()
		return err
	}
	if probe == nil {
		reader.Close()
		return &ValidationError{Option: option, Message: "invalid empty input (m)pileup file"}
	}
	s.sampleNames = samples.SynthesizeNames(s.opts.SamplePrefix, len(probe.Samples))

	include, exclude, err := s.sampleFilterLists()
	if err != nil {
		reader.Close()
		return err
	}
	if len(include) > 0 || len(exclude) > 0 {
		mask, indices, ferr := samples.Filter(s.sampleNames, include, exclude)
		if ferr != nil {
			reader.Close()
			return &ValidationError{Option: s.sampleFilterOption(), Message: ferr.Error()}
		}

		// Restart the iteration, this time applying the mask during
		// decode, and rebuild the names from the retained indices.
		reader.Close()
		reader, err = pileup.NewReader(path, mask)
		if err != nil {
			return &ValidationError{Option: option, Message: err.Error()}
		}
		probe, err = reader.Read()
		if err != nil {
			reader.Close()
			return err
		}
		s.sampleNames = samples.RenameRetained(s.opts.SamplePrefix, indices)
		s.logger.Debug("sample filter applied", zap.Int("retained", len(indices)))
	}

	// The probe record is handed to the stream so nothing is lost; the
	// stream owns the reader from here on.
	pending := probe
	s.stream = &variant.StreamFunc{
		NextFunc: func() (*variant.Variant, error) {
			for {
				rec := pending
				pending = nil
				if rec == nil {
					var err error
					rec, err = reader.Read()
					if err != nil {
						return nil, err
					}
					if rec == nil {
						return nil, nil
					}
				}
				if reg != nil && !reg.Covers(rec.Chrom, rec.Pos) {
					continue
				}
				return rec.Variant(), nil
			}
		},
		CloseFunc: reader.Close,
	}
	return nil
}

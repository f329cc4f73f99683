package input

import (
	"go.uber.org/zap"

	"github.com/poolseq/freqkit/internal/region"
	"github.com/poolseq/freqkit/internal/samples"
	"github.com/poolseq/freqkit/internal/syncfile"
	"github.com/poolseq/freqkit/internal/variant"
)

// prepareSync opens the sync source. Same two-pass protocol as the
// pileup adapter: probe one record for the sample cardinality, then
// reopen with the mask when sample filtering is requested.
func (s *Selector) prepareSync(reg *region.Region) error {
	const option = "--sync-file"
	path := s.opts.SyncFile
	if err := checkSourceFile(option, path); err != nil {
		return err
	}

	reader, err := syncfile.NewReader(path, nil)
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
		return &ValidationError{Option: option, Message: "invalid empty input sync file"}
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

		reader.Close()
		reader, err = syncfile.NewReader(path, mask)
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

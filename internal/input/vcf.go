package input

import (
	"go.uber.org/zap"

	"github.com/poolseq/freqkit/internal/region"
	"github.com/poolseq/freqkit/internal/variant"
	"github.com/poolseq/freqkit/internal/vcf"
)

// prepareVCF opens the VCF source. Sample names come from the header,
// so no probe record is needed for cardinality; an include or exclude
// list is translated to a decoder-level sample selection at open time.
// On top of the parser sits the universal filter that only accepts
// biallelic SNP records carrying an AD entry.
func (s *Selector) prepareVCF(reg *region.Region) error {
	const option = "--vcf-file"
	path := s.opts.VCFFile
	if err := checkSourceFile(option, path); err != nil {
		return err
	}

	include, exclude, err := s.sampleFilterLists()
	if err != nil {
		return err
	}
	var selection *vcf.SampleSelection
	if len(include) > 0 {
		selection = &vcf.SampleSelection{Names: include}
	} else if len(exclude) > 0 {
		selection = &vcf.SampleSelection{Names: exclude, Exclude: true}
	}

	parser, err := vcf.NewParser(path, selection)
	if err != nil {
		return &ValidationError{Option: option, Message: err.Error()}
	}

	// Without the AD field there is nothing to count; fail before any
	// record is read.
	if !parser.HasFormat("AD") {
		parser.Close()
		return &ValidationError{
			Option:  option,
			Message: "cannot use VCF input file that does not have the `AD` format field",
		}
	}
	s.sampleNames = parser.SampleNames()

	// Probe for the empty-file check. The record is handed back to the
	// stream below.
	probe, err := parser.Next()
	if err != nil {
		parser.Close()
		return err
	}
	if probe == nil {
		parser.Close()
		return &ValidationError{Option: option, Message: "invalid empty input VCF file"}
	}
	s.logger.Debug("vcf header read",
		zap.Int("samples", len(s.sampleNames)),
		zap.Bool("sample_selection", selection != nil),
	)

	pending := probe
	s.stream = &variant.StreamFunc{
		NextFunc: func() (*variant.Variant, error) {
			for {
				rec := pending
				pending = nil
				if rec == nil {
					var err error
					rec, err = parser.Next()
					if err != nil {
						return nil, err
					}
					if rec == nil {
						return nil, nil
					}
				}
				// Only biallelic SNPs with allele depths can be
				// converted to counts; anything else is skipped.
				if !rec.IsSNP() || !rec.IsBiallelic() || !rec.HasAD() {
					continue
				}
				if reg != nil && !reg.Covers(rec.Chrom, rec.Pos) {
					continue
				}
				return rec.Variant()
			}
		},
		CloseFunc: parser.Close,
	}
	return nil
}

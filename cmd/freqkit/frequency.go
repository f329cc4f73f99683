package main

import (
	"github.com/spf13/cobra"

	"github.com/poolseq/freqkit/internal/input"
	"github.com/poolseq/freqkit/internal/table"
	"github.com/poolseq/freqkit/internal/variant"
)

func newFrequencyCmd(verbose *bool) *cobra.Command {
	var opts input.Options
	var writeCoverage, writeFrequency, writeCounts, writeAll bool
	var sep, na, outPath string

	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Create a table with per-sample base counts and frequencies at each position",
		Long: `Create a table with per-sample base counts and frequencies at each
position in the input. The fixed columns CHROM, POS, REF, and ALT are
always written; the --write-... flags select the per-sample columns.`,
		Example: `  freqkit frequency --sync-file input.sync --write-frequency
  freqkit frequency --vcf-file input.vcf --write-all -o freqs.csv
  freqkit frequency --pileup-file input.pileup --filter-region 2L:1-100000 --write-counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, &opts, &sep, &na)
			return runFrequency(frequencyOptions{
				input:          opts,
				writeCoverage:  writeCoverage,
				writeFrequency: writeFrequency,
				writeCounts:    writeCounts,
				writeAll:       writeAll,
				separator:      sep,
				naEntry:        na,
				outPath:        outPath,
				verbose:        *verbose,
			})
		},
	}

	addInputFlags(cmd, &opts)
	addTableFlags(cmd, &sep, &na)

	f := cmd.Flags()
	f.BoolVar(&writeCoverage, "write-coverage", false,
		"Write a column 'COV' per sample containing the coverage (sum of REF and ALT) counts")
	f.BoolVar(&writeFrequency, "write-frequency", false,
		"Write a column 'FREQ' per sample containing the frequency, computed as REF/(REF+ALT) counts")
	f.BoolVar(&writeCounts, "write-counts", false,
		"Write columns 'REF_CNT' and 'ALT_CNT' per sample containing the REF and ALT counts")
	f.BoolVar(&writeAll, "write-all", false,
		"Write all the above columns (COV, FREQ, REF_CNT, ALT_CNT)")
	f.StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	cmd.MarkFlagsMutuallyExclusive("write-all", "write-coverage")
	cmd.MarkFlagsMutuallyExclusive("write-all", "write-frequency")
	cmd.MarkFlagsMutuallyExclusive("write-all", "write-counts")

	return cmd
}

type frequencyOptions struct {
	input          input.Options
	writeCoverage  bool
	writeFrequency bool
	writeCounts    bool
	writeAll       bool
	separator      string
	naEntry        string
	outPath        string
	verbose        bool
}

// fields returns the selected per-sample column names in output order.
func (opts frequencyOptions) fields() []string {
	var fields []string
	if opts.writeCoverage || opts.writeAll {
		fields = append(fields, "COV")
	}
	if opts.writeFrequency || opts.writeAll {
		fields = append(fields, "FREQ")
	}
	if opts.writeCounts || opts.writeAll {
		fields = append(fields, "REF_CNT", "ALT_CNT")
	}
	return fields
}

func runFrequency(opts frequencyOptions) error {
	logger := newLogger(opts.verbose)
	defer logger.Sync()

	sep, err := separatorChar(opts.separator)
	if err != nil {
		return err
	}

	fields := opts.fields()
	if len(fields) == 0 {
		logger.Warn("no output columns are selected; the output will only contain " +
			"the columns CHROM, POS, REF, ALT; use the --write-... options to select " +
			"which additional columns to write")
	}

	sel := input.NewSelector(opts.input)
	sel.SetLogger(logger)
	defer sel.Close()

	names, err := sel.SampleNames()
	if err != nil {
		return err
	}
	stream, err := sel.Stream()
	if err != nil {
		return err
	}

	out, cleanup, err := openOutput(opts.outPath)
	if err != nil {
		return err
	}
	defer cleanup()
	w := table.NewWriter(out, sep, opts.naEntry)

	header := append([]string{"CHROM", "POS", "REF", "ALT"}, table.SampleColumns(names, fields)...)
	if err := w.Header(header...); err != nil {
		return err
	}

	err = variant.Each(stream, func(v *variant.Variant) error {
		ref := v.ReferenceBase()
		alt := v.AlternativeBase()

		cells := make([]string, 0, len(header))
		cells = append(cells, v.Chrom, table.Int(v.Pos), string(ref), string(alt))

		for _, s := range v.Samples {
			refCnt := s.Count(ref)
			altCnt := s.Count(alt)
			sum := refCnt + altCnt

			if opts.writeCoverage || opts.writeAll {
				cells = append(cells, table.Uint(sum))
			}
			if opts.writeFrequency || opts.writeAll {
				if sum > 0 {
					cells = append(cells, table.Float(float64(refCnt)/float64(sum)))
				} else {
					cells = append(cells, w.NA())
				}
			}
			if opts.writeCounts || opts.writeAll {
				cells = append(cells, table.Uint(refCnt), table.Uint(altCnt))
			}
		}

		return w.Row(cells...)
	})
	if err != nil {
		return err
	}

	return w.Flush()
}

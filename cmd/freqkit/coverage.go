package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poolseq/freqkit/internal/input"
	"github.com/poolseq/freqkit/internal/table"
)

func newCoverageCmd(verbose *bool) *cobra.Command {
	var opts input.Options
	var sep, na, outPath string

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Summarize per-sample coverage in sliding windows along the genome",
		Long: `Summarize the input in sliding windows along each chromosome: for every
window, write its coordinates, the number of positions it contains, and
the mean usable coverage per sample. The input must be sorted by
chromosome and position.`,
		Example: `  freqkit coverage --sync-file input.sync --window-width 1000
  freqkit coverage --pileup-file input.pileup --window-width 10000 --window-stride 2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, &opts, &sep, &na)
			return runCoverage(opts, sep, na, outPath, *verbose)
		},
	}

	addInputFlags(cmd, &opts)
	addWindowFlags(cmd, &opts)
	addTableFlags(cmd, &sep, &na)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	return cmd
}

func runCoverage(opts input.Options, sepName, na, outPath string, verbose bool) error {
	logger := newLogger(verbose)
	defer logger.Sync()

	sep, err := separatorChar(sepName)
	if err != nil {
		return err
	}

	sel := input.NewSelector(opts)
	sel.SetLogger(logger)
	defer sel.Close()

	names, err := sel.SampleNames()
	if err != nil {
		return err
	}
	agg, err := sel.Windows()
	if err != nil {
		return err
	}

	out, cleanup, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer cleanup()
	w := table.NewWriter(out, sep, na)

	header := append([]string{"CHROM", "START", "END", "SNPS"},
		table.SampleColumns(names, []string{"MEAN_COV"})...)
	if err := w.Header(header...); err != nil {
		return err
	}

	var chrom string
	for {
		win, err := agg.Next()
		if err != nil {
			return err
		}
		if win == nil {
			break
		}
		if win.Chrom != chrom {
			chrom = win.Chrom
			logger.Info("at chromosome", zap.String("chromosome", chrom))
		}

		cells := make([]string, 0, len(header))
		cells = append(cells, win.Chrom, table.Int(win.Start), table.Int(win.End),
			table.Int(int64(win.Count())))
		for _, mean := range win.MeanCoverage(len(names)) {
			if win.Count() == 0 {
				cells = append(cells, w.NA())
			} else {
				cells = append(cells, table.Float(mean))
			}
		}
		if err := w.Row(cells...); err != nil {
			return err
		}
	}

	return w.Flush()
}

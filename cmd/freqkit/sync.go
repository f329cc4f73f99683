package main

import (
	"github.com/spf13/cobra"

	"github.com/poolseq/freqkit/internal/input"
	"github.com/poolseq/freqkit/internal/syncfile"
	"github.com/poolseq/freqkit/internal/variant"
)

func newSyncCmd(verbose *bool) *cobra.Command {
	var opts input.Options
	var outPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Convert any input file to the PoPoolation2 sync format",
		Long: `Convert an (m)pileup, sync, or VCF input to the sync format, with all
pipeline filters (region, samples) applied. Converting a sync file to
itself is a way of subsetting it.`,
		Example: `  freqkit sync --pileup-file input.pileup -o output.sync
  freqkit sync --vcf-file input.vcf --filter-region chr1 -o chr1.sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, &opts, nil, nil)
			return runSync(opts, outPath, *verbose)
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSync(opts input.Options, outPath string, verbose bool) error {
	logger := newLogger(verbose)
	defer logger.Sync()

	sel := input.NewSelector(opts)
	sel.SetLogger(logger)
	defer sel.Close()

	stream, err := sel.Stream()
	if err != nil {
		return err
	}

	out, cleanup, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer cleanup()

	w := syncfile.NewWriter(out)
	if err := variant.Each(stream, w.Write); err != nil {
		return err
	}
	return w.Flush()
}

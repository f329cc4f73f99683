package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/poolseq/freqkit/internal/input"
)

// addInputFlags registers the shared input flag group on a command.
// Validation of the flag combinations happens in the input selector, so
// all commands report the same errors.
func addInputFlags(cmd *cobra.Command, opts *input.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.PileupFile, "pileup-file", "", "Path to an (m)pileup file")
	f.StringVar(&opts.SyncFile, "sync-file", "", "Path to a sync file, as specified by PoPoolation2")
	f.StringVar(&opts.VCFFile, "vcf-file", "", "Path to a VCF file")
	f.StringVar(&opts.SamplePrefix, "sample-name-prefix", "",
		"Prefix for synthesized sample names of file types without native sample names "+
			"(pileup, sync); the prefix is followed by indices 1..n")
	f.StringVar(&opts.FilterRegion, "filter-region", "",
		"Genomic region to filter for, in the format \"chr\", \"chr:position\", "+
			"\"chr:start-end\", or \"chr:start..end\"")
	f.StringVar(&opts.FilterSamplesInclude, "filter-samples-include", "",
		"Sample names to include; either a comma- or tab-separated list, or a file "+
			"with one sample name per line")
	f.StringVar(&opts.FilterSamplesExclude, "filter-samples-exclude", "",
		"Sample names to exclude; either a comma- or tab-separated list, or a file "+
			"with one sample name per line")
}

// addWindowFlags registers the sliding-window flag group.
func addWindowFlags(cmd *cobra.Command, opts *input.Options) {
	f := cmd.Flags()
	f.Int64Var(&opts.WindowWidth, "window-width", 1000,
		"Width of each window along the chromosome")
	f.Int64Var(&opts.WindowStride, "window-stride", 0,
		"Stride between windows along the chromosome; 0 means the same value as the width")
}

// addTableFlags registers the table output flag group, with defaults
// from the config file.
func addTableFlags(cmd *cobra.Command, sep, na *string) {
	f := cmd.Flags()
	f.StringVar(sep, "separator-char", "",
		"Separator for table columns: comma, tab, space, or semicolon (default from config, comma)")
	f.StringVar(na, "na-entry", "",
		"Entry to write for missing values such as frequencies without coverage (default from config, nan)")
}

// applyConfigDefaults fills flag values the user did not set from the
// config file. The sample prefix fallback is skipped for VCF input,
// which has native sample names.
func applyConfigDefaults(cmd *cobra.Command, opts *input.Options, sep, na *string) {
	if !cmd.Flags().Changed("sample-name-prefix") && opts.VCFFile == "" {
		opts.SamplePrefix = viper.GetString("input.sample-prefix")
	}
	if sep != nil && *sep == "" {
		*sep = viper.GetString("table.separator")
	}
	if na != nil && *na == "" {
		*na = viper.GetString("table.na")
	}
}

// separatorChar resolves a separator name to the character itself.
// Literal single-character values are passed through.
func separatorChar(name string) (string, error) {
	switch name {
	case "comma":
		return ",", nil
	case "tab":
		return "\t", nil
	case "space":
		return " ", nil
	case "semicolon":
		return ";", nil
	}
	if len(name) == 1 {
		return name, nil
	}
	return "", fmt.Errorf("invalid separator char %q", name)
}

// openOutput opens the output target; an empty path means stdout. The
// returned cleanup function closes the file when one was created.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// Package main provides the freqkit command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "freqkit",
		Short:   "Toolkit for pooled-sequencing allele frequency data",
		Long: `freqkit reads pooled-sequencing variant data from (m)pileup, sync, or VCF
files and streams it through a unified pipeline with optional region and
sample filtering, for per-position tables, format conversion, and
windowed summaries.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newFrequencyCmd(&verbose))
	cmd.AddCommand(newSyncCmd(&verbose))
	cmd.AddCommand(newCoverageCmd(&verbose))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads the optional ~/.freqkit.yaml configuration file and
// sets the built-in defaults.
func initConfig() {
	viper.SetDefault("table.separator", "comma")
	viper.SetDefault("table.na", "nan")
	viper.SetDefault("input.sample-prefix", "")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".freqkit")
		viper.SetConfigType("yaml")
		// Missing config file is fine, everything has a default.
		_ = viper.ReadInConfig()
	}
}

// newLogger builds the CLI logger writing to stderr.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Package cli implements the cubex command line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the cubex CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cubex",
		Short: "Inspect and extract labeled cubes from CUBE container files",
		Long: `cubex works with CUBE container files: self-describing binary files
holding one or more labeled N-dimensional arrays with named, unit-bearing
coordinates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewExtractCommand(opts))
	cmd.AddCommand(NewStandardiseCommand(opts))

	return cmd
}

// Logger builds the process logger from the global flags.
func (o *RootOptions) Logger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if o.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

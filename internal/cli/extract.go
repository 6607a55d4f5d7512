package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scigolib/cube"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Constraints []string
	Units       []string
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <input> <output>",
		Short: "Extract the single cube matching a set of constraints",
		Long: `Extract the one cube in the input file matching every constraint and
write it to the output file.

Constraints are "key=value" equality expressions. The reserved key "name"
selects a cube by its name; any other key names a coordinate. When a units
list is given it must carry one entry per constraint, with "None" marking
constraints without a unit override.

Example:
  cubex extract in.cube out.cube -c name=probability_of_precipitation
  cubex extract in.cube out.cube -c threshold=0.1 -u "mm h-1"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], args[1])
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Constraints, "constraint", "c", nil, `constraint expression "key=value" (repeatable)`)
	cmd.Flags().StringArrayVarP(&opts.Units, "units", "u", nil, `unit override per constraint, "None" for no override (repeatable)`)
	_ = cmd.MarkFlagRequired("constraint")

	return cmd
}

func runExtract(opts *ExtractOptions, input, output string) error {
	logger := opts.Logger()
	defer func() { _ = logger.Sync() }()

	var unitStrs []string
	if len(opts.Units) > 0 {
		unitStrs = opts.Units
	}

	cs, err := cube.ParseConstraints(opts.Constraints, unitStrs)
	if err != nil {
		return err
	}
	logger.Debug("constraints parsed",
		zap.Strings("constraints", opts.Constraints),
		zap.Strings("units", opts.Units))

	c, err := cube.Extract(input, cs)
	if err != nil {
		return err
	}
	logger.Info("cube extracted",
		zap.String("name", c.Name),
		zap.Ints("shape", c.Shape))

	cube.SetHistory(c, "cubex extract "+strings.Join(opts.Constraints, " "), true)

	return cube.Save(output, c)
}

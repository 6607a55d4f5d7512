package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/scigolib/cube"
)

// StandardiseOptions holds flags for the standardise command.
type StandardiseOptions struct {
	*RootOptions
	Rename         string
	ConvertUnits   string
	RemoveCoords   []string
	AttributesFile string
}

// NewStandardiseCommand creates the standardise command.
func NewStandardiseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StandardiseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "standardise <input> <output>",
		Short: "Standardise cube metadata",
		Long: `Collapse length-1 dimensions and apply optional metadata adjustments to
every cube in the input file, writing the results to the output file.

The attributes file is a YAML mapping of attribute names to values; the
value "remove" deletes an attribute.

Example:
  cubex standardise in.cube out.cube --rename precipitation_rate --convert-units "mm h-1"
  cubex standardise in.cube out.cube --attributes amendments.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandardise(opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Rename, "rename", "", "new cube name")
	cmd.Flags().StringVar(&opts.ConvertUnits, "convert-units", "", "convert cube data to these units")
	cmd.Flags().StringArrayVar(&opts.RemoveCoords, "remove-coord", nil, "coordinate to remove (repeatable, missing names ignored)")
	cmd.Flags().StringVar(&opts.AttributesFile, "attributes", "", "YAML file of attribute amendments")

	return cmd
}

func runStandardise(opts *StandardiseOptions, input, output string) error {
	logger := opts.Logger()
	defer func() { _ = logger.Sync() }()

	var attrs map[string]string
	if opts.AttributesFile != "" {
		raw, err := os.ReadFile(opts.AttributesFile)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, &attrs); err != nil {
			return err
		}
	}

	cubes, err := cube.Load(input)
	if err != nil {
		return err
	}

	stdOpts := cube.StandardiseOptions{
		NewName:        opts.Rename,
		NewUnits:       opts.ConvertUnits,
		CoordsToRemove: opts.RemoveCoords,
		Attributes:     attrs,
	}

	out := make([]*cube.Cube, len(cubes))
	for i, c := range cubes {
		s, err := cube.Standardise(c, stdOpts)
		if err != nil {
			return err
		}
		logger.Debug("cube standardised",
			zap.String("name", s.Name),
			zap.Ints("shape", s.Shape))
		out[i] = s
	}

	return cube.Save(output, out...)
}

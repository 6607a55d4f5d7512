package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scigolib/cube"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarise the cubes stored in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cubes, err := cube.Load(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, c := range cubes {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprint(w, c.Summary())
			}
			return nil
		},
	}
}

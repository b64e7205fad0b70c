package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idef0/pkg/render/nodelink"
)

// dotCommand creates the dot command, which prints a model as Graphviz
// source for inspection with other tools.
func (c *CLI) dotCommand() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:     "dot [file|-]",
		Short:   "Print a model as a Graphviz digraph",
		Example: `  idef0 dot restaurant.txt | dot -Tpng > restaurant.png`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDiagram(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), nodelink.ToDOT(d, nodelink.Options{Detailed: detailed}))
			return err
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node numbers and line kinds")

	return cmd
}

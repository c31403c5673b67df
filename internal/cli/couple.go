package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	hio "github.com/matzehuels/hypercouple/pkg/io"
	"github.com/matzehuels/hypercouple/pkg/pipeline"
)

type coupleOpts struct {
	algorithm string
	json      bool
}

// coupleCommand prints the coupling groups of a document.
func (c *CLI) coupleCommand() *cobra.Command {
	var opts coupleOpts

	cmd := &cobra.Command{
		Use:   "couple [file]",
		Short: "Compute the coupled edge groups of a hypergraph document",
		Long: `Couple reads a JSON or YAML hypergraph document and prints the groups of
edges the selected algorithm couples.

Without --algorithm the document's first couplingAlgorithms entry is used,
then the configured default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCouple(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "coupling algorithm (see 'hypercouple algorithms')")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print groups as JSON")

	return cmd
}

func (c *CLI) runCouple(cmd *cobra.Command, path string, opts coupleOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	runner := c.newRunner()

	doc, err := runner.Load(ctx, path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	alg, groups, err := runner.Couple(ctx, doc, pipeline.Options{Algorithm: opts.algorithm})
	if err != nil {
		return err
	}
	prog.done("coupled edges", "algorithm", alg.ID(), "groups", len(groups))

	out := cmd.OutOrStdout()
	if opts.json {
		return hio.WriteGroups(groups, out)
	}

	fmt.Fprintln(out, StyleTitle.Render(alg.Name()))
	fmt.Fprintln(out, groupsTable(groups, -1))
	printStats(out, len(doc.Nodes), len(doc.Edges), len(groups))
	return nil
}

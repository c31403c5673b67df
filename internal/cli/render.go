package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercouple/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	algorithm    string   // coupling algorithm id, empty resolves from the document
	output       string   // output file, base path for several formats, "-" for stdout
	formats      []string // output formats: "svg", "dot", "json"
	detailed     bool     // label nodes with their ids instead of metadata labels
	showOriginal bool     // draw the original edges underneath coupled groups
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a hypergraph with its coupled groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("only one format can be written to stdout")
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "coupling algorithm (see 'hypercouple algorithms')")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their ids")
	cmd.Flags().BoolVar(&opts.showOriginal, "original", false, "also draw the original edges")

	return cmd
}

// parseFormats splits the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input paths,
// stripping a known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where the artifact for format is written.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	runner := c.newRunner()

	doc, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	var spin *spinner
	if slices.Contains(opts.formats, pipeline.FormatSVG) {
		spin = newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+input)
		spin.start()
	}
	result, err := runner.Execute(ctx, doc, pipeline.Options{
		Algorithm:    opts.algorithm,
		Formats:      opts.formats,
		Detailed:     opts.detailed,
		ShowOriginal: opts.showOriginal,
		Logger:       logger,
	})
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == "-" {
		_, err := out.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	single := len(opts.formats) == 1
	var paths []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, single)
		if filepath.Clean(path) == filepath.Clean(input) {
			return fmt.Errorf("refusing to overwrite input %s, use --output", input)
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess(out, "Rendered %s with %s", input, result.Algorithm.Name())
	printStats(out, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.GroupCount)
	for _, p := range paths {
		printFile(out, p)
	}
	return nil
}

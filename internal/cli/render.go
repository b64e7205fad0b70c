package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idef0/pkg/errors"
	"github.com/matzehuels/idef0/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file, base path for several formats, or "-"
	formats  []string // output formats: svg, png, pdf, json, dot, nodelink
	scale    float64  // PNG pixels per point
	detailed bool     // node numbers and line kinds in DOT and nodelink output
	noCache  bool     // skip the artifact cache entirely
	refresh  bool     // re-render even when cached
}

// renderCommand creates the render command.
//
// Without --output a lone SVG goes to standard output. Other formats are
// written next to the input file unless --output names a path.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a model as an IDEF0 diagram",
		Example: `  idef0 render restaurant.txt > restaurant.svg
  idef0 render restaurant.txt -f svg,png -o out/restaurant
  idef0 render restaurant.txt -f nodelink
  cat restaurant.txt | idef0 render -f pdf -o restaurant.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output != "" {
				if err := errors.ValidateOutputPath(opts.output); err != nil {
					return err
				}
			}
			return c.runRender(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixels per point (default 2)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node numbers and line kinds in DOT and nodelink output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"]. Repeated formats are dropped.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	input, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	style, err := c.loadStyle()
	if err != nil {
		return err
	}

	targets, err := outputTargets(opts.output, source, opts.formats)
	if err != nil {
		return err
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	result, err := runner.Execute(ctx, input, pipeline.Options{
		Source:   source,
		Formats:  opts.formats,
		Style:    style,
		Scale:    opts.scale,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	var written []string
	for _, format := range opts.formats {
		path := targets[format]
		data := result.Artifacts[format]
		if path == stdinName {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			continue
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		written = append(written, path)
	}

	if len(written) > 0 {
		printSuccess(errOut, "Rendered %s", result.Diagram.Name())
		for _, p := range written {
			printFile(errOut, p)
		}
		printStats(errOut, result.Stats.Boxes, result.Stats.Lines, result.CacheHit)
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	return nil
}

// outputTargets decides where each format goes. "-" means standard output.
func outputTargets(output, source string, formats []string) (map[string]string, error) {
	targets := make(map[string]string, len(formats))

	switch {
	case output == stdinName || (output == "" && len(formats) == 1 && formats[0] == pipeline.FormatSVG):
		if len(formats) > 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "only one format can be written to standard output")
		}
		targets[formats[0]] = stdinName
		return targets, nil
	case output != "" && len(formats) == 1:
		targets[formats[0]] = output
		return targets, nil
	}

	base := basePath(output, source)
	if base == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--output is required to write %s from standard input", strings.Join(formats, ", "))
	}
	for _, f := range formats {
		targets[f] = base + "." + pipeline.Extension(f)
	}
	return targets, nil
}

// basePath derives the base output path. Without an output it strips the
// extension from the input; a known format extension on output is dropped.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return ""
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

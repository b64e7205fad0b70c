package cli

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/idef0/pkg/errors"
	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/pipeline"
)

// stdinName is how models read from standard input are named.
const stdinName = "-"

// readInput reads the whole model named by args, or standard input when
// args is empty or "-". It returns the text and the name to report.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read standard input")
		}
		return data, stdinName, nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "model %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, path, nil
}

// loadDiagram reads, parses and lays out a model without rendering it.
func (c *CLI) loadDiagram(cmd *cobra.Command, args []string) (*idef0.Diagram, error) {
	input, _, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	style, err := c.loadStyle()
	if err != nil {
		return nil, err
	}
	parsed, err := pipeline.Parse(cmd.Context(), input)
	if err != nil {
		return nil, err
	}
	return pipeline.Build(cmd.Context(), parsed.Statements, style)
}

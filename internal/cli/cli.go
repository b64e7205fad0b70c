// Package cli implements the idef0 command-line interface.
//
// # Commands
//
//   - render: lay out a model and write SVG, PNG, PDF, JSON, DOT or a
//     Graphviz node-link SVG
//   - lines: print the classified arrows of a model as a table
//   - dot: print the model as a Graphviz graph
//   - cache: inspect or clear the artifact cache
//   - completion: generate shell completion scripts
//
// Models are read from a file argument, or from standard input when the
// argument is missing or "-". Diagnostics go to standard error so that
// standard output can carry the rendered document.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every pipeline stage. Loggers are passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/idef0/pkg/buildinfo"
	"github.com/matzehuels/idef0/pkg/cache"
	"github.com/matzehuels/idef0/pkg/config"
	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/observability"
	"github.com/matzehuels/idef0/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "idef0"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "idef0 draws IDEF0 function models",
		Long: `idef0 turns a plain-text list of statements ("Cook Food receives Order")
into an IDEF0 activity diagram: one box per process, arrows for inputs,
controls, outputs and mechanisms, laid out without overlap.`,
		Version:       buildinfo.Resolved(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.SetLogLevel(levelFor(c.verbose))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "style file (default $XDG_CONFIG_HOME/idef0/style.toml when present)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.linesCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. Keys are scoped by
// release so artifacts drawn by another version are never served.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), cache.NewScopedKeyer(nil, buildinfo.CacheScope()), c.Logger)
}

// newCache opens the file cache. A cache that cannot be opened only costs
// speed, so failures fall back to no caching.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the artifact cache directory.
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// loadStyle resolves the style from --config or the default style file.
func (c *CLI) loadStyle() (idef0.Style, error) {
	style, path, err := config.Resolve(c.configPath)
	if err != nil {
		return idef0.Style{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded style", "path", path)
	}
	return style, nil
}

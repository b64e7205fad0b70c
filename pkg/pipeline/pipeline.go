// Package pipeline provides the parse → build → render pipeline for IDEF0
// models.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read model text into statements
//  2. Build: resolve the root, classify lines and lay out the diagram
//  3. Render: produce output in one or more formats (SVG, PNG, PDF, JSON, DOT
//     or a Graphviz node-link drawing)
//
// Each stage can be run on its own through the package-level functions, or
// as a whole through a [Runner], which adds artifact caching and fires the
// [observability] hooks around every stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	result, err := runner.Execute(ctx, model, pipeline.Options{
//	    Source:  "restaurant.txt",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/idef0/pkg/cache"
	"github.com/matzehuels/idef0/pkg/errors"
	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/render/sink"
	"github.com/matzehuels/idef0/pkg/statement"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatNodelink is the model drawn by Graphviz as a node-link SVG.
	FormatNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,

	FormatNodelink: true,
}

// FormatNames returns the supported formats in alphabetical order.
func FormatNames() []string { return slices.Sorted(maps.Keys(ValidFormats)) }

// Options contains the configuration for one pipeline run.
type Options struct {
	// Source names the model in logs and hooks, usually its file path.
	Source string `json:"source,omitempty"`

	// Formats lists the artifacts to render. Defaults to SVG only.
	Formats []string `json:"formats,omitempty"`

	// Style is the layout and rendering style. Zero fields take defaults.
	Style idef0.Style `json:"style"`

	// Scale is the PNG pixels per point.
	Scale float64 `json:"scale,omitempty"`

	// Detailed adds node numbers and line kinds to DOT exports.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh ignores cached artifacts. Fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives this run's log output. When nil the runner's own
	// logger is used.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Parsed holds the recognised statements and the ignored line numbers.
	Parsed statement.Result

	// Diagram is the laid-out diagram.
	Diagram *idef0.Diagram

	// InputHash is the SHA-256 of the model text.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Statements int
	Ignored    int
	Boxes      int
	Lines      int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid. Formats are case-sensitive.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, FormatNames())
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Source == "" {
		o.Source = "-"
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Options that
// cannot change a format's bytes are left out so they do not split the
// cache.
func (o *Options) ArtifactKeyOpts(format, styleHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Style: styleHash}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatDOT, FormatNodelink:
		k.Detailed = o.Detailed
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

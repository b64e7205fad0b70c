package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/idef0/pkg/cache"
	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/observability"
	"github.com/matzehuels/idef0/pkg/statement"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. It does not
// store pipeline results, so one Runner may serve several runs in turn.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs parse → build → render over the model text in input.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()
	logger := r.logger(opts)
	result := &Result{InputHash: cache.Hash(input)}

	// Stage 1: Parse
	start := time.Now()
	hooks.OnParseStart(ctx, opts.Source)
	parsed, err := Parse(ctx, input)
	result.Stats.ParseTime = time.Since(start)
	hooks.OnParseComplete(ctx, opts.Source, len(parsed.Statements), len(parsed.Ignored), result.Stats.ParseTime, err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Parsed = parsed
	result.Stats.Statements = len(parsed.Statements)
	result.Stats.Ignored = len(parsed.Ignored)
	for _, n := range parsed.Ignored {
		logger.Debug("ignored line", "source", opts.Source, "line", n)
	}

	// Stage 2: Build
	start = time.Now()
	root, _ := statement.Root(parsed.Statements)
	hooks.OnLayoutStart(ctx, root, len(parsed.Statements))
	d, err := Build(ctx, parsed.Statements, opts.Style)
	result.Stats.LayoutTime = time.Since(start)
	lines := 0
	if d != nil {
		lines = len(d.Lines())
	}
	hooks.OnLayoutComplete(ctx, root, lines, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.Boxes = len(d.Boxes())
	result.Stats.Lines = lines

	logger.Info("laid out diagram",
		"root", d.Name(),
		"boxes", result.Stats.Boxes,
		"lines", result.Stats.Lines,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, d, result.InputHash, opts)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format, serving formats from
// the cache where possible. The second result reports whether all of them
// were cached. Cache failures are logged and otherwise ignored.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *idef0.Diagram, inputHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	logger := r.logger(opts)
	styleHash := r.styleHash(d.Style())

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format, styleHash))

		if !opts.Refresh {
			data, err := cache.Load(ctx, r.Cache, key)
			if err == nil {
				hooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				continue
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				logger.Warn("cache read failed", "format", format, "err", err)
			}
			hooks.OnCacheMiss(ctx, format)
		}

		allCached = false
		data, err := RenderFormat(ctx, d, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the run's logger, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

func (r *Runner) styleHash(s idef0.Style) string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

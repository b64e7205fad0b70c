package pipeline

import (
	"context"

	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/render/nodelink"
	"github.com/matzehuels/idef0/pkg/render/sink"
)

// RenderFormat produces a single format. Only the nodelink format runs
// Graphviz and honors ctx.
func RenderFormat(ctx context.Context, d *idef0.Diagram, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return d.SVG(), nil
	case FormatPNG:
		return sink.RenderPNG(d, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(d)
	case FormatJSON:
		return sink.RenderJSON(d, sink.WithJSONStyle())
	case FormatDOT:
		return []byte(nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed}))
	}
	return nil, ValidateFormat(format)
}

// Extension returns the file extension for format, without the dot.
// Graphviz drawings are SVG documents and get a compound extension so they
// do not collide with the IDEF0 SVG.
func Extension(format string) string {
	if format == FormatNodelink {
		return "nodelink.svg"
	}
	return format
}

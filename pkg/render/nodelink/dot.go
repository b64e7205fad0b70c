package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/idef0/pkg/idef0"
)

// Options configures node-link export.
type Options struct {
	// Detailed adds node numbers to boxes and line kinds to edges.
	Detailed bool
}

// ToDOT converts a diagram's boxes and lines to Graphviz DOT source.
// Boxes keep their sequence order and lines their creation order, so the
// output is deterministic for a given model.
func ToDOT(d *idef0.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", d.Name())
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=box, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, b := range d.Boxes() {
		label := b.Name()
		if opts.Detailed {
			label += "\n" + b.NodeNumber()
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", b.Name(), label)
	}

	seen := make(map[string]bool)
	for _, l := range d.Lines() {
		id, ok := boundaryNode(l)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(&buf, "  %q [shape=plaintext, label=%q];\n", id, l.Label())
	}

	buf.WriteString("\n")
	for _, l := range d.Lines() {
		from, to := l.Source().Name(), l.Target().Name()
		if id, ok := boundaryNode(l); ok {
			if l.Kind() == idef0.ExternalOutput {
				to = id
			} else {
				from = id
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", from, to, strings.Join(edgeAttrs(l, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// boundaryNode names the node standing in for the diagram boundary at the
// outer end of an external line.
func boundaryNode(l *idef0.Line) (string, bool) {
	switch l.Kind() {
	case idef0.ExternalInput:
		return "input:" + l.Label(), true
	case idef0.ExternalGuidance:
		return "control:" + l.Label(), true
	case idef0.ExternalMechanism:
		return "mechanism:" + l.Label(), true
	case idef0.ExternalOutput:
		return "output:" + l.Label(), true
	}
	return "", false
}

func edgeAttrs(l *idef0.Line, detailed bool) []string {
	label := l.Label()
	if detailed {
		label += "\n(" + l.Kind().String() + ")"
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch l.Kind() {
	case idef0.ExternalGuidance, idef0.ForwardGuidance, idef0.BackwardGuidance:
		attrs = append(attrs, "style=dashed")
	case idef0.ExternalMechanism, idef0.ForwardMechanism, idef0.BackwardMechanism:
		attrs = append(attrs, "style=dotted")
	}
	if l.Kind() == idef0.BackwardGuidance || l.Kind() == idef0.BackwardMechanism {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose viewBox
// starts at the origin and whose size matches it, so the SVG scales cleanly
// when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

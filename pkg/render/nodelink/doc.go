// Package nodelink exports IDEF0 models as node-link graphs.
//
// # Overview
//
// The IDEF0 diagram places boxes on a staircase and routes every arrow
// orthogonally. This package offers a second view of the same model: boxes
// become Graphviz nodes and lines become labelled edges, laid out by
// Graphviz. It is useful for checking how a model is wired before reading
// the full diagram.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The pipeline serves the rendered graph as the "nodelink" format.
//
// Boundary arrows have no box at their outer end. Each distinct boundary
// label becomes a plain-text node on the matching side of the graph.
//
// # Options
//
//   - Detailed: node labels carry node numbers and edge labels carry the
//     line kind
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process, so no Graphviz installation is needed.
package nodelink

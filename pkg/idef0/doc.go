// Package idef0 assembles and lays out IDEF0 process diagrams.
//
// # Overview
//
// A [Diagram] is the boundary of one process. Inside it sit [ProcessBox]es,
// one per sub-process. Both implement [Boundary]: four sides, each expecting a
// set of labelled flows.
//
//   - left: inputs ("receives")
//   - top: controls or guidance ("respects")
//   - bottom: mechanisms ("requires")
//   - right: outputs ("produces")
//
// Flows are declared through a [Builder]:
//
//	d := idef0.Build("Operate Restaurant", func(d *idef0.Diagram) {
//	    d.Receives("Hungry Customer")
//	    d.Box("Take Order", func(b *idef0.Builder) {
//	        b.Receives("Hungry Customer").Produces("Order")
//	    })
//	    d.Box("Cook Food", func(b *idef0.Builder) {
//	        b.Receives("Order").Requires("Chef")
//	    })
//	})
//	os.Stdout.Write(d.SVG())
//
// # Build Pipeline
//
// [Build] and [FromStatements] run four steps:
//
//  1. [Diagram.SortBoxes] orders boxes by precedence and numbers them.
//  2. [Diagram.CreateLines] matches every output against the boundary and
//     the other boxes and classifies each match as one of nine [LineKind]s.
//  3. [Diagram.SortAnchors] orders the attachment points on each box side.
//  4. [Diagram.Layout] places boxes in a diagonal cascade, routes lines
//     around each other and sizes the diagram.
//
// An output consumed by nothing produces no line. A later box cannot feed an
// earlier box's inputs; only controls and mechanisms flow backward.
//
// # Geometry
//
// Coordinates are in points with y growing downward. Line routes are not
// stored: they are recomputed from the anchors of the boxes they connect,
// so translating a box carries its lines along.
package idef0

// Package sink provides output formats for laid-out IDEF0 diagrams beyond
// the SVG document the diagram renders itself.
//
// # Overview
//
// A "sink" turns a laid-out [idef0.Diagram] into bytes:
//
//   - PNG: raster image drawn with fogleman/gg
//   - PDF: single-page vector document drawn with gofpdf
//   - JSON: box and line geometry for external tools
//
// All sinks read the diagram through its exported geometry (box bounds,
// line points, arrowheads and label positions), so every format shows the
// same picture as [idef0.Diagram.SVG]. None of them need external programs.
//
//	png, err := sink.RenderPNG(d, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(d)
//	doc, err := sink.RenderJSON(d)
//
// Sinks do not modify the diagram and may be called concurrently on a
// diagram that is no longer being built.
package sink

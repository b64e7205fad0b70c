// Package pkg holds the libraries behind the idef0 command.
//
// # Overview
//
// idef0 turns plain-text statements such as
//
//	Operate Restaurant is composed of Take Order
//	Take Order receives Hungry Customer
//	Take Order produces Order
//
// into an IDEF0 activity diagram. The libraries are layered:
//
//  1. [statement] - line grammar and root resolution
//  2. [idef0] - boxes, sides, line classification, layout and SVG
//  3. [render/sink] and [render/nodelink] - PNG, PDF, JSON and Graphviz output
//  4. [pipeline] - parse → build → render with caching and hooks
//
// Supporting packages: [orderedset] (insertion-ordered unique sets),
// [cache], [config] (TOML styles), [errors] (coded errors),
// [observability] (pipeline hooks), [fonts] and [buildinfo].
//
// # Quick Start
//
//	res, _ := statement.Parse(os.Stdin)
//	d, err := idef0.FromStatements(res.Statements)
//	if err != nil {
//	    log.Fatal(err) // more than one "is composed of" subject
//	}
//	d.WriteSVG(os.Stdout)
package pkg

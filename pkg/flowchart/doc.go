// Package flowchart renders line-flow diagrams using Graphviz.
//
// A flow diagram shows how bundles move through the sewing line: each
// section is a cluster, each operation a node labeled with its machine
// type and allocated machine count, and edges follow the operation
// sequence from the bulletin.
//
// # Architecture
//
// The DOT string is the intermediate representation, enabling
// re-rendering without re-balancing:
//
//	Balance → ToDOT() → DOT → RenderSVG()/RenderPNG()
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering, so no graphviz binary is needed on the host.
package flowchart

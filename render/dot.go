// Package render formats a callgraph.CallGraph for output, either as
// Graphviz DOT or as JSON.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/trackast/trackast/callgraph"
)

// ToDOT generates Graphviz DOT source for graph: internal nodes filled
// light blue, external nodes light gray, node labels with "::"
// replaced by newlines for readability, and edges labeled with their
// source line when known.
func ToDOT(graph *callgraph.CallGraph) string {
	var b strings.Builder
	b.WriteString("digraph CallGraph {\n")
	b.WriteString("    rankdir=LR;\n")
	b.WriteString("    node [shape=box];\n\n")

	for id, node := range graph.Nodes {
		style := ", style=filled, fillcolor=lightblue"
		if node.IsExternal {
			style = ", style=filled, fillcolor=lightgray"
		}
		label := strings.ReplaceAll(id.String(), "::", "\n")
		fmt.Fprintf(&b, "    \"%s\" [label=\"%s\"%s];\n", id.String(), label, style)
	}

	b.WriteString("\n")

	for _, edge := range graph.Edges {
		label := ""
		if edge.Line > 0 {
			label = fmt.Sprintf(", label=\"L%d\"", edge.Line)
		}
		fmt.Fprintf(&b, "    \"%s\" -> \"%s\"%s;\n", edge.From.String(), edge.To.String(), label)
	}

	b.WriteString("}\n")
	return b.String()
}

// ToDOTFile writes graph's DOT representation to path.
func ToDOTFile(graph *callgraph.CallGraph, path string) error {
	return os.WriteFile(path, []byte(ToDOT(graph)), 0o644)
}

// ReachableSubgraph builds the induced subgraph over reachable: every
// node in reachable that exists in graph, and every edge whose
// endpoints are both in reachable. Used to render a DOT graph scoped
// to a traversal result instead of the whole call graph.
func ReachableSubgraph(graph *callgraph.CallGraph, reachable map[callgraph.FunctionID]struct{}) *callgraph.CallGraph {
	sub := callgraph.NewCallGraph()
	for id := range reachable {
		if node, ok := graph.GetNode(id); ok {
			_ = sub.InsertNode(node)
		}
	}
	for _, edge := range graph.Edges {
		_, fromOK := reachable[edge.From]
		_, toOK := reachable[edge.To]
		if fromOK && toOK {
			_ = sub.InsertEdge(edge)
		}
	}
	return sub
}

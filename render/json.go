package render

import (
	"encoding/json"

	"github.com/trackast/trackast/callgraph"
)

// SummaryOutput is the JSON shape produced when no entry points were
// supplied: a plain size report over the whole call graph.
type SummaryOutput struct {
	Language string `json:"language"`
	Nodes    int    `json:"nodes"`
	Edges    int    `json:"edges"`
	Message  string `json:"message"`
}

// ReachabilityOutput is the JSON shape produced when entry points were
// supplied: the whole graph's size alongside the traversal result
// computed from those entry points.
type ReachabilityOutput struct {
	Language           string   `json:"language"`
	TotalNodes         int      `json:"total_nodes"`
	TotalEdges         int      `json:"total_edges"`
	EntryPoints        []string `json:"entry_points"`
	ReachableFunctions int      `json:"reachable_functions"`
	ReachableIDs       []string `json:"reachable_ids"`
}

// ToSummaryJSON renders a SummaryOutput for graph.
func ToSummaryJSON(language string, graph *callgraph.CallGraph) (string, error) {
	out := SummaryOutput{
		Language: language,
		Nodes:    graph.NodeCount(),
		Edges:    graph.EdgeCount(),
		Message:  "Call graph built successfully",
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToReachabilityJSON renders a ReachabilityOutput for graph, given the
// entry point specs as supplied on the command line and the traversal
// result computed from their resolved ids.
func ToReachabilityJSON(language string, graph *callgraph.CallGraph, entryPointSpecs []string, traversal *callgraph.TraversalResult) (string, error) {
	ids := make([]string, 0, len(traversal.Reachable))
	for id := range traversal.Reachable {
		ids = append(ids, id.String())
	}

	out := ReachabilityOutput{
		Language:           language,
		TotalNodes:         graph.NodeCount(),
		TotalEdges:         graph.EdgeCount(),
		EntryPoints:        entryPointSpecs,
		ReachableFunctions: len(traversal.Reachable),
		ReachableIDs:       ids,
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

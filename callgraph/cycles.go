package callgraph

import (
	"sort"
	"strings"
)

// MaxCycleSearchNodes bounds how large a graph FindCycles will fully
// search. The cycle finder is exponential in the worst case (§9's
// design notes); above this many nodes it returns early with whatever
// cycles it has found so far rather than refusing outright —
// over-approximation is preferred to silence.
const MaxCycleSearchNodes = 2000

// Cycle is a sequence of ids forming a directed cycle. FindCycles
// returns each cycle in its canonical (lexicographically smallest)
// rotation.
type Cycle struct {
	Nodes []FunctionID
}

// NewCycle builds a Cycle.
func NewCycle(nodes []FunctionID) Cycle {
	return Cycle{Nodes: nodes}
}

// Len returns the cycle's length.
func (c Cycle) Len() int {
	return len(c.Nodes)
}

// canonicalRotation returns the lexicographically smallest rotation of
// c.Nodes, the canonical form two cycles that are rotations of the same
// sequence both reduce to.
func (c Cycle) canonicalRotation() []FunctionID {
	n := len(c.Nodes)
	if n == 0 {
		return nil
	}
	best := c.Nodes
	bestKey := rotationKey(c.Nodes, 0)
	for start := 1; start < n; start++ {
		key := rotationKey(c.Nodes, start)
		if key < bestKey {
			bestKey = key
			best = rotate(c.Nodes, start)
		}
	}
	return best
}

func rotate(nodes []FunctionID, start int) []FunctionID {
	n := len(nodes)
	out := make([]FunctionID, n)
	for i := 0; i < n; i++ {
		out[i] = nodes[(start+i)%n]
	}
	return out
}

func rotationKey(nodes []FunctionID, start int) string {
	n := len(nodes)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = nodes[(start+i)%n].String()
	}
	return strings.Join(parts, "\x00")
}

// FindCycles enumerates all cycles in graph: self-loops (length 1) and
// longer simple cycles found by BFS-expansion of paths from each start
// node, terminating a path when it returns to its start. Duplicate
// cycles — including ones that differ only by rotation — are
// deduplicated by canonicalizing each cycle to its lexicographically
// smallest rotation before comparing.
//
// If graph has more than MaxCycleSearchNodes nodes, the search still
// runs but returns whatever cycles have been found once the node
// budget is exhausted, rather than refusing outright.
func FindCycles(graph *CallGraph) []Cycle {
	var cycles []Cycle
	visitedGlobal := make(map[FunctionID]struct{})

	searchBudget := len(graph.Nodes)
	if searchBudget > MaxCycleSearchNodes {
		searchBudget = MaxCycleSearchNodes
	}

	examined := 0
	for startNode := range graph.Nodes {
		if examined >= searchBudget {
			break
		}
		examined++

		if _, seen := visitedGlobal[startNode]; seen {
			continue
		}

		for _, edge := range graph.GetEdgesFrom(startNode) {
			if edge.To == startNode {
				cycles = append(cycles, NewCycle([]FunctionID{startNode}))
			}
		}

		type pathState struct {
			current FunctionID
			path    []FunctionID
		}
		queue := []pathState{{current: startNode, path: []FunctionID{startNode}}}
		visited := map[FunctionID]struct{}{startNode: {}}

		for len(queue) > 0 {
			state := queue[0]
			queue = queue[1:]

			for _, edge := range graph.GetEdgesFrom(state.current) {
				if edge.To == startNode && len(state.path) > 1 {
					cycles = append(cycles, NewCycle(append([]FunctionID{}, state.path...)))
					continue
				}
				if _, seen := visited[edge.To]; !seen && len(state.path) < len(graph.Nodes) {
					visited[edge.To] = struct{}{}
					newPath := append(append([]FunctionID{}, state.path...), edge.To)
					queue = append(queue, pathState{current: edge.To, path: newPath})
				}
			}
		}

		visitedGlobal[startNode] = struct{}{}
	}

	return dedupeCycles(cycles)
}

func dedupeCycles(cycles []Cycle) []Cycle {
	type keyed struct {
		key   string
		cycle Cycle
	}
	seen := make(map[string]bool)
	kept := make([]keyed, 0, len(cycles))

	for _, c := range cycles {
		canon := c.canonicalRotation()
		key := rotationKey(canon, 0)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, keyed{key: key, cycle: NewCycle(canon)})
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].key < kept[j].key })

	out := make([]Cycle, len(kept))
	for i, k := range kept {
		out[i] = k.cycle
	}
	return out
}

// HasCycles reports whether graph contains any cycle.
func HasCycles(graph *CallGraph) bool {
	return len(FindCycles(graph)) > 0
}

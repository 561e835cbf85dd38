package callgraph

// CallGraphBuilder accumulates AbstractASTs with duplicate detection,
// then materializes a single CallGraph from everything it has seen. Its
// lifecycle has two effective states: Populated (after AddAST has been
// called at least once) and Finalized (after Build has been called).
// Calling AddAST again after Build is not forbidden, but any
// previously returned graph is untouched by it — the builder's
// internal index and a returned CallGraph never alias.
type CallGraphBuilder struct {
	asts         []*AbstractAST
	functionsMap map[FunctionID]FunctionDef
}

// NewCallGraphBuilder creates an empty builder.
func NewCallGraphBuilder() *CallGraphBuilder {
	return &CallGraphBuilder{functionsMap: make(map[FunctionID]FunctionDef)}
}

// AddAST indexes every function in ast by its FunctionID.
//
// Algorithm:
//  1. Compute the FunctionID of every function in ast.
//  2. If any of those ids already exists in the builder's index,
//     reject the whole call with DuplicateFunctionId — none of the
//     ast's functions are indexed, not even the ones that came before
//     the colliding one. This two-phase check-then-insert makes AddAST
//     atomic per ast, matching the contract "leave the builder
//     unchanged" literally rather than partially mutating on a
//     mid-batch collision.
//  3. Otherwise index every function and retain the ast.
//
// Parameters:
//   - ast: the per-file AbstractAST to merge in.
//
// Returns:
//   - an error of kind DuplicateFunctionId naming the first colliding
//     id encountered, or nil on success.
func (b *CallGraphBuilder) AddAST(ast *AbstractAST) error {
	for _, fn := range ast.Functions {
		id := fn.ID()
		if _, exists := b.functionsMap[id]; exists {
			return newDuplicateFunctionIdError(id)
		}
	}

	for _, fn := range ast.Functions {
		b.functionsMap[fn.ID()] = fn
	}
	b.asts = append(b.asts, ast)
	return nil
}

// allFunctions flattens every indexed function across every retained
// ast, for use by the Resolver (which needs the full declaration list,
// not just the id index).
func (b *CallGraphBuilder) allFunctions() []FunctionDef {
	out := make([]FunctionDef, 0, len(b.functionsMap))
	for _, ast := range b.asts {
		out = append(out, ast.Functions...)
	}
	return out
}

// Build materializes the accumulated ASTs into a single CallGraph.
//
// Algorithm:
//  1. Insert one internal GraphNode per indexed function.
//  2. For each function and each of its outgoing calls:
//     a. If the call carries a target module, form the target id as
//        GenerateID(target_module, target_name, EmptySignature()) —
//        signatures are never propagated onto an unresolved-by-type
//        call, because call-site types are not available.
//     b. Otherwise (no target module), first try the Resolver against
//        every indexed function, using the caller's own module as
//        current_module. If the Resolver finds a match, use its
//        (module, name) to form the target id the same way as (a). If
//        not, form the reserved external id "<external>::name::()".
//     c. If the resulting id is not already a node in the graph,
//        synthesize a GraphNode for it: external, unless it is the
//        exact id of one of the functions just inserted in step 1 (in
//        which case it would already exist and this branch does not
//        fire). A synthesized node's Metadata carries only the call's
//        target name and module — the synthesized function has no
//        real declaration.
//     d. Insert a GraphEdge for the call, carrying its line number.
//
// Returns:
//   - the assembled CallGraph; Build itself does not fail — the
//     invariants it maintains (every node inserted before any edge
//     that could reference it, synthesizing unmatched targets instead
//     of erroring) make it total over anything AddAST accepted.
//
// Example:
//
//	b := NewCallGraphBuilder()
//	b.AddAST(ast) // ast has "app::main_entry" calling "process_data"
//	graph := b.Build()
//	// graph now has a node for app::main_entry, a node for the
//	// resolved or externally-synthesized process_data target, and an
//	// edge between them.
func (b *CallGraphBuilder) Build() *CallGraph {
	graph := NewCallGraph()
	functions := b.allFunctions()

	for _, fn := range functions {
		_ = graph.InsertNode(NewInternalNode(fn.ID(), fn))
	}

	for _, fn := range functions {
		fromID := fn.ID()
		for _, call := range fn.Calls {
			toID := b.resolveTargetID(call, fn.Module, functions)
			if _, exists := graph.Nodes[toID]; !exists {
				graph.Nodes[toID] = NewExternalNode(toID, NewFunctionDef(call.TargetName, EmptySignature(), externalModuleOf(call)))
			}
			_ = graph.InsertEdge(NewGraphEdge(fromID, toID, call.Line))
		}
	}

	return graph
}

// resolveTargetID computes the FunctionID a single call resolves to.
//
// A call that already carries a target module is trusted outright and
// formed via GenerateID. A call with no target module is first offered
// to the Resolver against the full function list known to the builder;
// if the Resolver finds nothing, the reserved external convention
// ("<external>::name::()") is used instead, never GenerateID.
func (b *CallGraphBuilder) resolveTargetID(call FunctionCall, currentModule string, functions []FunctionDef) FunctionID {
	if call.TargetModule != nil {
		return GenerateID(*call.TargetModule, call.TargetName, EmptySignature())
	}

	if module, name, ok := ResolveCall(call.TargetName, currentModule, functions); ok {
		return GenerateID(module, name, EmptySignature())
	}

	return externalID(call.TargetName)
}

// externalModuleOf reports the module to attribute to a synthesized
// node's Metadata: the call's own full target module for a
// qualified-but-unresolved call (which keeps its own identity rather
// than being collapsed into the external-by-name convention; see
// DESIGN.md's Open Question on this fallback), or the reserved
// "<external>" module for a call with no target module.
func externalModuleOf(call FunctionCall) string {
	if call.TargetModule != nil {
		return *call.TargetModule
	}
	return ExternalModule
}

// BuildFromEntries builds the graph, then validates that every one of
// entryIDs is present in it before running a DFS traversal from each
// and merging the results.
//
// Returns:
//   - the built graph and the merged TraversalResult, or an
//     UnknownEntryPoint error naming the first entry id absent from the
//     graph — in which case the graph is still returned so a caller
//     can inspect what was built, matching the original's behavior of
//     failing entry resolution without discarding the graph itself.
func (b *CallGraphBuilder) BuildFromEntries(entryIDs []FunctionID) (*CallGraph, *TraversalResult, error) {
	graph := b.Build()

	for _, id := range entryIDs {
		if _, ok := graph.Nodes[id]; !ok {
			return graph, nil, newUnknownEntryPointError(id.String())
		}
	}

	result := TraversalFromEntries(graph, entryIDs)
	return graph, result, nil
}

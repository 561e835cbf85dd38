package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddASTAtomicOnCollision(t *testing.T) {
	b := NewCallGraphBuilder()

	first := NewAbstractAST("app")
	first.AddFunction(NewFunctionDef("main", EmptySignature(), "app"))
	assert.NoError(t, b.AddAST(first))

	colliding := NewAbstractAST("app")
	colliding.AddFunction(NewFunctionDef("other", EmptySignature(), "app"))
	colliding.AddFunction(NewFunctionDef("main", EmptySignature(), "app"))

	err := b.AddAST(colliding)
	assert.Error(t, err)

	// "other" must not have been indexed even though it came before the
	// colliding function in the same AddAST call.
	graph := b.Build()
	_, ok := graph.GetNode(GenerateID("app", "other", EmptySignature()))
	assert.False(t, ok)
}

func TestBuildResolvesUnqualifiedCallWithinModule(t *testing.T) {
	b := NewCallGraphBuilder()
	ast := NewAbstractAST("app")

	main := NewFunctionDef("main", EmptySignature(), "app")
	main.AddCall(NewFunctionCall("helper", 10))
	ast.AddFunction(main)
	ast.AddFunction(NewFunctionDef("helper", EmptySignature(), "app"))

	assert.NoError(t, b.AddAST(ast))
	graph := b.Build()

	helperID := GenerateID("app", "helper", EmptySignature())
	node, ok := graph.GetNode(helperID)
	assert.True(t, ok)
	assert.False(t, node.IsExternal)

	edges := graph.GetEdgesFrom(main.ID())
	assert.Len(t, edges, 1)
	assert.Equal(t, helperID, edges[0].To)
	assert.Equal(t, 10, edges[0].Line)
}

func TestBuildSynthesizesExternalNodeForUnresolvedCall(t *testing.T) {
	b := NewCallGraphBuilder()
	ast := NewAbstractAST("app")

	main := NewFunctionDef("main", EmptySignature(), "app")
	main.AddCall(NewFunctionCall("println", 1))
	ast.AddFunction(main)

	assert.NoError(t, b.AddAST(ast))
	graph := b.Build()

	externalID := FunctionID("<external>::println::()")
	node, ok := graph.GetNode(externalID)
	assert.True(t, ok)
	assert.True(t, node.IsExternal)
	assert.Equal(t, ExternalModule, node.Metadata.Module)
}

func TestBuildKeepsQualifiedUnresolvedCallAsOwnExternalLeaf(t *testing.T) {
	b := NewCallGraphBuilder()
	ast := NewAbstractAST("app")

	main := NewFunctionDef("main", EmptySignature(), "app")
	main.AddCall(NewResolvedFunctionCall("helper", "lib::utils", 1))
	ast.AddFunction(main)

	assert.NoError(t, b.AddAST(ast))
	graph := b.Build()

	targetID := GenerateID("lib::utils", "helper", EmptySignature())
	node, ok := graph.GetNode(targetID)
	assert.True(t, ok)
	assert.True(t, node.IsExternal)
	// A qualified-but-unresolved call keeps its own module identity,
	// not the reserved "<external>" convention.
	assert.Equal(t, "lib::utils", node.Metadata.Module)

	_, collapsed := graph.GetNode(FunctionID("<external>::helper::()"))
	assert.False(t, collapsed)
}

func TestBuildFromEntriesUnknownEntryPoint(t *testing.T) {
	b := NewCallGraphBuilder()
	ast := NewAbstractAST("app")
	ast.AddFunction(NewFunctionDef("main", EmptySignature(), "app"))
	assert.NoError(t, b.AddAST(ast))

	graph, result, err := b.BuildFromEntries([]FunctionID{"app::missing::() -> ()"})
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.NotNil(t, graph) // the graph is still returned on entry-point failure
}

func TestBuildFromEntriesTraversesReachableSet(t *testing.T) {
	b := NewCallGraphBuilder()
	ast := NewAbstractAST("app")

	main := NewFunctionDef("main", EmptySignature(), "app")
	main.AddCall(NewFunctionCall("helper", 1))
	ast.AddFunction(main)
	ast.AddFunction(NewFunctionDef("helper", EmptySignature(), "app"))
	ast.AddFunction(NewFunctionDef("unreachable", EmptySignature(), "app"))

	assert.NoError(t, b.AddAST(ast))
	_, result, err := b.BuildFromEntries([]FunctionID{main.ID()})
	assert.NoError(t, err)
	assert.True(t, result.Contains(main.ID()))
	assert.True(t, result.Contains(GenerateID("app", "helper", EmptySignature())))
	assert.False(t, result.Contains(GenerateID("app", "unreachable", EmptySignature())))
}

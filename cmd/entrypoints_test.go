package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trackast/trackast/callgraph"
)

func graphWithFunctions(t *testing.T, defs ...callgraph.FunctionDef) *callgraph.CallGraph {
	t.Helper()
	b := callgraph.NewCallGraphBuilder()
	ast := callgraph.NewAbstractAST("app")
	for _, fn := range defs {
		ast.AddFunction(fn)
	}
	assert.NoError(t, b.AddAST(ast))
	return b.Build()
}

func TestResolveEntryPointsExactMatch(t *testing.T) {
	fn := callgraph.NewFunctionDef("main", callgraph.EmptySignature(), "app")
	graph := graphWithFunctions(t, fn)

	ids, err := ResolveEntryPoints([]string{"app::main::() -> ()"}, graph)
	assert.NoError(t, err)
	assert.Equal(t, []callgraph.FunctionID{fn.ID()}, ids)
}

func TestResolveEntryPointsFuzzySingleMatch(t *testing.T) {
	fn := callgraph.NewFunctionDef("main", callgraph.EmptySignature(), "app")
	graph := graphWithFunctions(t, fn)

	ids, err := ResolveEntryPoints([]string{"app::main"}, graph)
	assert.NoError(t, err)
	assert.Equal(t, []callgraph.FunctionID{fn.ID()}, ids)
}

func TestResolveEntryPointsFuzzyMultipleMatchesExpandsToAll(t *testing.T) {
	sig1 := callgraph.Signature{ReturnType: "int"}
	sig2 := callgraph.Signature{ReturnType: "string"}
	fn1 := callgraph.NewFunctionDef("handle", sig1, "app")
	fn2 := callgraph.NewFunctionDef("handle", sig2, "app")
	graph := graphWithFunctions(t, fn1, fn2)

	ids, err := ResolveEntryPoints([]string{"app::handle"}, graph)
	assert.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestResolveEntryPointsNoMatch(t *testing.T) {
	graph := graphWithFunctions(t)
	_, err := ResolveEntryPoints([]string{"app::missing"}, graph)
	assert.Error(t, err)
}

func TestResolveEntryPointsInvalidFormat(t *testing.T) {
	graph := graphWithFunctions(t)
	_, err := ResolveEntryPoints([]string{"justonepart"}, graph)
	assert.Error(t, err)
}

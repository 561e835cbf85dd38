package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertNodeDuplicate(t *testing.T) {
	g := NewCallGraph()
	fn := NewFunctionDef("main", EmptySignature(), "app")
	node := NewInternalNode(fn.ID(), fn)

	assert.NoError(t, g.InsertNode(node))
	err := g.InsertNode(node)
	assert.Error(t, err)

	var ge *Error
	assert.ErrorAs(t, err, &ge)
	assert.Equal(t, DuplicateFunctionId, ge.Kind)
}

func TestInsertEdgeDanglingEndpoint(t *testing.T) {
	g := NewCallGraph()
	fn := NewFunctionDef("main", EmptySignature(), "app")
	node := NewInternalNode(fn.ID(), fn)
	assert.NoError(t, g.InsertNode(node))

	missing := FunctionID("app::missing::() -> ()")
	err := g.InsertEdge(NewGraphEdge(fn.ID(), missing, 1))
	assert.Error(t, err)

	var ge *Error
	assert.ErrorAs(t, err, &ge)
	assert.Equal(t, DanglingEdge, ge.Kind)
}

func TestGetEdgesFromAndTo(t *testing.T) {
	g := NewCallGraph()
	a := NewFunctionDef("a", EmptySignature(), "app")
	b := NewFunctionDef("b", EmptySignature(), "app")
	assert.NoError(t, g.InsertNode(NewInternalNode(a.ID(), a)))
	assert.NoError(t, g.InsertNode(NewInternalNode(b.ID(), b)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(a.ID(), b.ID(), 5)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(a.ID(), b.ID(), 7)))

	from := g.GetEdgesFrom(a.ID())
	assert.Len(t, from, 2)
	assert.Equal(t, 5, from[0].Line)
	assert.Equal(t, 7, from[1].Line)

	to := g.GetEdgesTo(b.ID())
	assert.Len(t, to, 2)
}

func TestNodeAndEdgeCount(t *testing.T) {
	g := NewCallGraph()
	a := NewFunctionDef("a", EmptySignature(), "app")
	b := NewFunctionDef("b", EmptySignature(), "app")
	assert.NoError(t, g.InsertNode(NewInternalNode(a.ID(), a)))
	assert.NoError(t, g.InsertNode(NewInternalNode(b.ID(), b)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(a.ID(), b.ID(), 1)))

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCyclesSelfLoop(t *testing.T) {
	g := NewCallGraph()
	a := NewFunctionDef("a", EmptySignature(), "app")
	assert.NoError(t, g.InsertNode(NewInternalNode(a.ID(), a)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(a.ID(), a.ID(), 1)))

	cycles := FindCycles(g)
	assert.Len(t, cycles, 1)
	assert.Equal(t, 1, cycles[0].Len())
}

func TestFindCyclesLongerCycle(t *testing.T) {
	g := NewCallGraph()
	a := NewFunctionDef("a", EmptySignature(), "app")
	b := NewFunctionDef("b", EmptySignature(), "app")
	c := NewFunctionDef("c", EmptySignature(), "app")
	assert.NoError(t, g.InsertNode(NewInternalNode(a.ID(), a)))
	assert.NoError(t, g.InsertNode(NewInternalNode(b.ID(), b)))
	assert.NoError(t, g.InsertNode(NewInternalNode(c.ID(), c)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(a.ID(), b.ID(), 1)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(b.ID(), c.ID(), 2)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(c.ID(), a.ID(), 3)))

	cycles := FindCycles(g)
	assert.Len(t, cycles, 1)
	assert.Equal(t, 3, cycles[0].Len())
	assert.True(t, HasCycles(g))
}

func TestFindCyclesDeduplicatesRotations(t *testing.T) {
	rotationA := NewCycle([]FunctionID{"a", "b", "c"})
	rotationB := NewCycle([]FunctionID{"b", "c", "a"})

	assert.Equal(t, rotationA.canonicalRotation(), rotationB.canonicalRotation())
}

func TestHasCyclesFalseOnAcyclicGraph(t *testing.T) {
	g := NewCallGraph()
	a := NewFunctionDef("a", EmptySignature(), "app")
	b := NewFunctionDef("b", EmptySignature(), "app")
	assert.NoError(t, g.InsertNode(NewInternalNode(a.ID(), a)))
	assert.NoError(t, g.InsertNode(NewInternalNode(b.ID(), b)))
	assert.NoError(t, g.InsertEdge(NewGraphEdge(a.ID(), b.ID(), 1)))

	assert.False(t, HasCycles(g))
}

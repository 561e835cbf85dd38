package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionDefID(t *testing.T) {
	fn := NewFunctionDef("main", EmptySignature(), "app")
	assert.Equal(t, FunctionID("app::main::() -> ()"), fn.ID())
}

func TestFunctionDefAddCall(t *testing.T) {
	fn := NewFunctionDef("main", EmptySignature(), "app")
	fn.AddCall(NewFunctionCall("helper", 3))
	fn.AddCall(NewResolvedFunctionCall("app::other", "app", 4))

	assert.Len(t, fn.Calls, 2)
	assert.Equal(t, "helper", fn.Calls[0].TargetName)
	assert.Nil(t, fn.Calls[0].TargetModule)
	assert.NotNil(t, fn.Calls[1].TargetModule)
	assert.Equal(t, "app", *fn.Calls[1].TargetModule)
}

func TestAbstractASTGetFunction(t *testing.T) {
	ast := NewAbstractAST("app")
	ast.AddFunction(NewFunctionDef("main", EmptySignature(), "app"))

	fn, ok := ast.GetFunction("main")
	assert.True(t, ok)
	assert.Equal(t, "main", fn.Name)

	_, ok = ast.GetFunction("missing")
	assert.False(t, ok)
}

func TestAbstractASTFindModuleContainer(t *testing.T) {
	ast := NewAbstractAST("app")
	assert.Nil(t, ast.FindModuleContainer())

	ast.AddFunction(NewFunctionDef(ModuleContainer, EmptySignature(), "app"))
	container := ast.FindModuleContainer()
	assert.NotNil(t, container)
	assert.Equal(t, ModuleContainer, container.Name)
}

func TestAbstractASTFindModuleContainerIsMutable(t *testing.T) {
	ast := NewAbstractAST("app")
	ast.AddFunction(NewFunctionDef(ModuleContainer, EmptySignature(), "app"))

	container := ast.FindModuleContainer()
	container.AddCall(NewFunctionCall("setup", 1))

	again := ast.FindModuleContainer()
	assert.Len(t, again.Calls, 1)
}

package rust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorName(t *testing.T) {
	tr := New()
	assert.Equal(t, "rust", tr.Name())
	assert.Contains(t, tr.FileExtensions(), "rs")
}

func TestTranslateFreeFunction(t *testing.T) {
	source := []byte(`
fn helper() {}

fn main() {
    helper();
}
`)
	ast, err := New().Translate(source, "app")
	assert.NoError(t, err)

	main, ok := ast.GetFunction("main")
	assert.True(t, ok)
	assert.Len(t, main.Calls, 1)
	assert.Equal(t, "helper", main.Calls[0].TargetName)
}

func TestTranslateImplMethodScopedWithSelfCall(t *testing.T) {
	source := []byte(`
struct Calculator;

impl Calculator {
    fn add(&self, a: i32, b: i32) -> i32 {
        a + b
    }

    fn compute(&self) -> i32 {
        self.add(1, 2)
    }
}
`)
	ast, err := New().Translate(source, "app")
	assert.NoError(t, err)

	compute, ok := ast.GetFunction("Calculator::compute")
	assert.True(t, ok)
	assert.Len(t, compute.Calls, 1)

	call := compute.Calls[0]
	assert.Equal(t, "Calculator::add", call.TargetName)
	assert.NotNil(t, call.TargetModule)
}

func TestTranslateScopedIdentifierCall(t *testing.T) {
	source := []byte(`
fn main() {
    Calculator::new();
}
`)
	ast, err := New().Translate(source, "app")
	assert.NoError(t, err)

	main, ok := ast.GetFunction("main")
	assert.True(t, ok)
	assert.Len(t, main.Calls, 1)
	assert.Equal(t, "new", main.Calls[0].TargetName)
}

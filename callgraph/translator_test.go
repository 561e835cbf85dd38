package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTranslator struct {
	name string
	exts []string
}

func (s *stubTranslator) Name() string            { return s.name }
func (s *stubTranslator) FileExtensions() []string { return s.exts }
func (s *stubTranslator) Translate(source []byte, modulePath string) (*AbstractAST, error) {
	return NewAbstractAST(modulePath), nil
}

func TestRegistryGetByExtensionAndName(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubTranslator{name: "stub", exts: []string{"stub", ".stubby"}})

	byExt, ok := r.GetByExtension("stub")
	assert.True(t, ok)
	assert.Equal(t, "stub", byExt.Name())

	byExt2, ok := r.GetByExtension(".stubby")
	assert.True(t, ok)
	assert.Equal(t, "stub", byExt2.Name())

	byName, ok := r.GetByName("stub")
	assert.True(t, ok)
	assert.Equal(t, "stub", byName.Name())

	_, ok = r.GetByExtension("missing")
	assert.False(t, ok)
}

func TestDeriveModulePath(t *testing.T) {
	assert.Equal(t, "helpers", DeriveModulePath("helpers.py"))
	assert.Equal(t, "utils::helpers", DeriveModulePath("utils/helpers.py"))
	assert.Equal(t, "app::utils::helpers", DeriveModulePath("app/utils/helpers.py"))
}

func TestTranslateFileNoTranslatorRegistered(t *testing.T) {
	r := NewRegistry()
	_, err := TranslateFile(r, "nonexistent.xyz", "")
	assert.Error(t, err)
}

package callgraph

import (
	"os"
	"path/filepath"
	"strings"
)

// Translator lifts one source file's concrete syntax tree to an
// AbstractAST. Each supported language implements this interface; the
// three concrete implementations live under callgraph/adapters and
// share one extraction algorithm — only their syntax-node recognizers
// differ.
//
// Errors are raised only for parser-initialization or parse failures
// (TranslateFile reports them as ParseError); malformed source
// otherwise produces a best-effort partial AST rather than an error.
type Translator interface {
	// Name is the language's display name, e.g. "python".
	Name() string
	// FileExtensions lists the file extensions this translator claims,
	// without the leading dot, e.g. []string{"py"}.
	FileExtensions() []string
	// Translate parses source and returns the AbstractAST declared
	// under modulePath.
	Translate(source []byte, modulePath string) (*AbstractAST, error)
}

// Registry maps a language name or file extension to the Translator
// responsible for it, mirroring the teacher's LanguageRegistry: a
// single dispatch point, no deep hierarchy.
type Registry struct {
	byExtension map[string]Translator
	byName      map[string]Translator
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]Translator),
		byName:      make(map[string]Translator),
	}
}

// Register adds t under its own name and every extension it claims.
func (r *Registry) Register(t Translator) {
	r.byName[t.Name()] = t
	for _, ext := range t.FileExtensions() {
		r.byExtension[strings.TrimPrefix(ext, ".")] = t
	}
}

// GetByExtension returns the translator registered for ext, if any.
func (r *Registry) GetByExtension(ext string) (Translator, bool) {
	t, ok := r.byExtension[strings.TrimPrefix(ext, ".")]
	return t, ok
}

// GetByName returns the translator registered under name, if any.
func (r *Registry) GetByName(name string) (Translator, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// DefaultRegistry is the package-level registry every adapter package
// registers itself into from an init() function, mirroring the
// teacher's GetGlobalLanguageRegistry() pattern.
var DefaultRegistry = NewRegistry()

// DeriveModulePath derives a module path from a file path when the
// caller supplies none: the file stem, prefixed with its parent
// directory's components joined by "::". For example,
// "utils/helpers.py" becomes "utils::helpers".
func DeriveModulePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	dir := filepath.Dir(path)
	if dir == "." || dir == "" || dir == string(filepath.Separator) {
		return stem
	}

	dirParts := strings.Split(filepath.ToSlash(dir), "/")
	return strings.Join(dirParts, "::") + "::" + stem
}

// TranslateFile reads path, derives a module path via DeriveModulePath
// when modulePath is empty, and dispatches to the registry's translator
// for the file's extension.
//
// Returns an IOError if the file cannot be read, a ParseError if no
// translator is registered for the file's extension or if translation
// itself fails.
func TranslateFile(registry *Registry, path string, modulePath string) (*AbstractAST, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOError("failed to read file %s: %v", path, err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	translator, ok := registry.GetByExtension(ext)
	if !ok {
		return nil, newParseError("no translator registered for extension %q", ext)
	}

	module := modulePath
	if module == "" {
		module = DeriveModulePath(path)
	}

	ast, err := translator.Translate(source, module)
	if err != nil {
		return nil, newParseError("failed to translate %s: %v", path, err)
	}
	return ast, nil
}

// HandlerRegistrationMethods is the set of member-access method names
// (matched against the last segment of a call's callee) that the
// translator treats as framework route/handler registrations —
// identifier arguments passed to such a call are recorded as
// FunctionCalls from the enclosing scope, making handler registrations
// visible as edges without data-flow analysis.
var HandlerRegistrationMethods = map[string]bool{
	"get":                     true,
	"post":                    true,
	"put":                     true,
	"delete":                  true,
	"patch":                   true,
	"use":                     true,
	"all":                     true,
	"route":                   true,
	"service":                 true,
	"to":                      true,
	"middleware":              true,
	"guard":                   true,
	"add_url_rule":            true,
	"register_error_handler":  true,
	"register_blueprint":      true,
	"before_request":          true,
	"after_request":           true,
}

// FilteredParameterNames lists identifier names that never count as
// handler-registration arguments, even when passed to a method in
// HandlerRegistrationMethods.
var FilteredParameterNames = map[string]bool{
	"req":  true,
	"res":  true,
	"next": true,
	"err":  true,
}

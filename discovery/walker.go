// Package discovery finds source files on disk and follows their
// import statements to build the AbstractAST set a callgraph.Builder
// consumes.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trackast/trackast/callgraph"
)

// Walker discovers source files under a root directory and, for a
// given entry file, recursively follows its import statements to load
// every module it transitively depends on. Bulk discovery is a
// sequential filepath.Walk scan; dependency following mirrors the
// original loader's line-based import extraction plus layered path
// resolution.
type Walker struct {
	registry *callgraph.Registry

	// loadedModules is the visited set guarding load_all's recursion
	// against import cycles and repeated imports; nothing is ever
	// evicted from it, so a plain map suffices.
	loadedModules map[string]struct{}
}

// NewWalker builds a Walker that dispatches file extensions through
// registry.
func NewWalker(registry *callgraph.Registry) *Walker {
	return &Walker{
		registry:      registry,
		loadedModules: make(map[string]struct{}),
	}
}

// DiscoverFiles walks root and returns every file whose extension the
// registry claims, in filepath.Walk order.
func DiscoverFiles(root string, registry *callgraph.Registry) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if _, ok := registry.GetByExtension(ext); ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// LoadAll resolves entryPoint against root (or takes it as an absolute
// path directly), then recursively loads it and every module its
// import statements reach, merging every loaded AbstractAST's
// functions into a single combined AST keyed at the entry module's
// path.
//
// An import that cannot be resolved to an existing file — an external
// package, a typo, a language built-in — is skipped silently, the same
// as the original loader: it becomes a name without a module when the
// builder later processes the resulting calls, exactly like any other
// unresolved call.
func (w *Walker) LoadAll(root, entryPoint string) (*callgraph.AbstractAST, error) {
	entryPath := entryPoint
	if !filepath.IsAbs(entryPath) {
		candidate := filepath.Join(root, entryPoint)
		if _, err := os.Stat(candidate); err == nil {
			entryPath = candidate
		}
	}

	if _, err := os.Stat(entryPath); err != nil {
		return nil, fmt.Errorf("discovery: entry point does not exist: %s", entryPath)
	}

	return w.loadRecursively(root, entryPath)
}

func (w *Walker) loadRecursively(root, path string) (*callgraph.AbstractAST, error) {
	if _, seen := w.loadedModules[path]; seen {
		return callgraph.NewAbstractAST("already_loaded"), nil
	}
	w.loadedModules[path] = struct{}{}

	ast, err := callgraph.TranslateFile(w.registry, path, "")
	if err != nil {
		return nil, err
	}

	imports, err := w.extractImports(path)
	if err != nil {
		return nil, err
	}

	combined := &callgraph.AbstractAST{ModulePath: ast.ModulePath, Functions: append([]callgraph.FunctionDef{}, ast.Functions...)}

	for _, importPath := range imports {
		resolved, ok := w.resolvePath(root, path, importPath)
		if !ok {
			continue
		}
		if _, seen := w.loadedModules[resolved]; seen {
			continue
		}
		importedAST, err := w.loadRecursively(root, resolved)
		if err != nil {
			continue
		}
		combined.Functions = append(combined.Functions, importedAST.Functions...)
	}

	return combined, nil
}

// extractImports dispatches to the per-language line-based import
// scanner matching the file's extension.
func (w *Walker) extractImports(path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("discovery: failed to read %s: %w", path, err)
	}
	text := string(source)

	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "rs":
		return extractRustImports(text), nil
	case "py", "pyw", "pyi":
		return extractPythonImports(text), nil
	case "js", "jsx", "ts", "tsx", "mjs", "cjs":
		return extractJSImports(text), nil
	default:
		return nil, nil
	}
}

func extractRustImports(source string) []string {
	var imports []string
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "use ") {
			continue
		}
		afterUse := strings.TrimPrefix(trimmed, "use ")
		path := strings.TrimSpace(strings.SplitN(afterUse, "{", 2)[0])
		path = strings.SplitN(path, "::", 2)[0]
		if path != "" && path != "std" && path != "crate" {
			imports = append(imports, path)
		}
	}
	return imports
}

func extractPythonImports(source string) []string {
	var imports []string
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import "):
			after := strings.TrimPrefix(trimmed, "import ")
			module := strings.TrimSpace(strings.SplitN(after, ",", 2)[0])
			if module != "" && !strings.HasPrefix(module, ".") {
				imports = append(imports, module)
			}
		case strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import "):
			after := strings.TrimPrefix(trimmed, "from ")
			module := strings.TrimSpace(strings.SplitN(after, " import ", 2)[0])
			if module != "" && !strings.HasPrefix(module, ".") {
				imports = append(imports, module)
			}
		}
	}
	return imports
}

func extractJSImports(source string) []string {
	var imports []string
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "import ") {
			if fromIdx := strings.Index(trimmed, " from "); fromIdx >= 0 {
				rest := trimmed[fromIdx+len(" from "):]
				if path, ok := quotedPath(rest); ok {
					if !strings.HasPrefix(path, ".") {
						imports = append(imports, path)
					} else if strings.HasPrefix(path, "./") {
						imports = append(imports, strings.TrimPrefix(path, "./"))
					}
				}
			}
		}

		if idx := strings.Index(trimmed, "require("); idx >= 0 {
			rest := trimmed[idx+len("require("):]
			if path, ok := quotedPath(rest); ok && !strings.HasPrefix(path, ".") {
				imports = append(imports, path)
			}
		}
	}
	return imports
}

func quotedPath(rest string) (string, bool) {
	for _, quote := range []byte{'\'', '"'} {
		start := strings.IndexByte(rest, quote)
		if start < 0 {
			continue
		}
		end := strings.IndexByte(rest[start+1:], quote)
		if end < 0 {
			continue
		}
		return rest[start+1 : start+1+end], true
	}
	return "", false
}

// resolvePath implements the layered resolution strategy: a direct
// file under root with the language's extension, then a package-init
// file inside an import-named directory under root (mod.rs /
// __init__.py / index.js), then a sibling file named after the import,
// with the extension appended, in the importing file's own directory.
func (w *Walker) resolvePath(root, fromPath, importPath string) (string, bool) {
	extensions, initFile := languageConventions(fromPath)

	for _, ext := range extensions {
		direct := filepath.Join(root, importPath+"."+ext)
		if _, err := os.Stat(direct); err == nil {
			return direct, true
		}

		if initFile != "" {
			packageInit := filepath.Join(root, importPath, initFile)
			if _, err := os.Stat(packageInit); err == nil {
				return packageInit, true
			}
		}

		sibling := filepath.Join(filepath.Dir(fromPath), importPath+"."+ext)
		if _, err := os.Stat(sibling); err == nil {
			return sibling, true
		}
	}

	return "", false
}

func languageConventions(path string) (extensions []string, initFile string) {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case "rs":
		return []string{"rs"}, "mod.rs"
	case "py", "pyw", "pyi":
		return []string{"py"}, "__init__.py"
	case "js", "jsx", "ts", "tsx", "mjs", "cjs":
		return []string{"js", "ts", "jsx", "tsx"}, "index.js"
	default:
		return nil, ""
	}
}

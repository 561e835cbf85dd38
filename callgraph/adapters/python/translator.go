// Package python translates Python source into callgraph.AbstractAST.
package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/trackast/trackast/callgraph"
)

func init() {
	callgraph.DefaultRegistry.Register(New())
}

// Translator implements callgraph.Translator for Python.
type Translator struct{}

// New creates a Python translator.
func New() *Translator {
	return &Translator{}
}

// Name returns the language's display name.
func (t *Translator) Name() string { return "python" }

// FileExtensions returns the extensions this translator claims.
func (t *Translator) FileExtensions() []string { return []string{"py", "pyw", "pyi"} }

func setupParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return parser
}

// Translate parses source and extracts every function definition and
// class method, following the shared extraction algorithm: a
// single-element containing-scope (class name) qualifies method names
// with ".", self.method() calls within a non-empty scope resolve to
// "Scope.method" with the target module set to the ast's own module,
// and calls in top-level expression statements attach to the synthetic
// "<module>" container. Function bodies are not walked for further
// definitions, so nested functions are not emitted separately.
func (t *Translator) Translate(source []byte, modulePath string) (*callgraph.AbstractAST, error) {
	parser := setupParser()
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("python: failed to parse source: %w", err)
	}

	ast := callgraph.NewAbstractAST(modulePath)
	walkBody(tree.RootNode(), source, modulePath, ast, "")
	return ast, nil
}

func walkBody(node *sitter.Node, source []byte, module string, ast *callgraph.AbstractAST, classContext string) {
	switch node.Type() {
	case "class_definition":
		className := firstChildOfType(node, "identifier", source)
		for i := 0; i < int(node.ChildCount()); i++ {
			walkBody(node.Child(i), source, module, ast, className)
		}
		return

	case "function_definition":
		funcName := firstChildOfType(node, "identifier", source)
		if funcName == "" {
			break
		}
		scopedName := funcName
		if classContext != "" {
			scopedName = classContext + "." + funcName
		}
		fn := callgraph.NewFunctionDef(scopedName, callgraph.EmptySignature(), module)
		extractCallsFromFunction(node, source, &fn, module, classContext)
		ast.AddFunction(fn)
		return

	case "expression_statement":
		if classContext == "" {
			attachTopLevelCalls(node, source, module, ast)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkBody(node.Child(i), source, module, ast, classContext)
	}
}

func attachTopLevelCalls(node *sitter.Node, source []byte, module string, ast *callgraph.AbstractAST) {
	var calls []callgraph.FunctionCall
	collectCalls(node, source, module, "", &calls)
	if len(calls) == 0 {
		return
	}

	if existing := ast.FindModuleContainer(); existing != nil {
		for _, c := range calls {
			existing.AddCall(c)
		}
		return
	}

	fn := callgraph.NewFunctionDef(callgraph.ModuleContainer, callgraph.EmptySignature(), module)
	for _, c := range calls {
		fn.AddCall(c)
	}
	ast.AddFunction(fn)
}

func extractCallsFromFunction(funcNode *sitter.Node, source []byte, fn *callgraph.FunctionDef, module, classContext string) {
	var calls []callgraph.FunctionCall
	for i := 0; i < int(funcNode.ChildCount()); i++ {
		collectCalls(funcNode.Child(i), source, module, classContext, &calls)
	}
	for _, c := range calls {
		fn.AddCall(c)
	}
}

// collectCalls recursively finds "call" nodes and turns each into a
// FunctionCall, handling bare identifiers, attribute access
// (obj.method / self.method), and identifier arguments passed to
// recognized framework handler-registration methods.
func collectCalls(node *sitter.Node, source []byte, module, classContext string, calls *[]callgraph.FunctionCall) {
	if node.Type() == "call" {
		line := int(node.StartPoint().Row) + 1

		if callee := node.Child(0); callee != nil {
			switch callee.Type() {
			case "identifier":
				name := callee.Content(source)
				*calls = append(*calls, callgraph.NewFunctionCall(name, line))

			case "attribute":
				object, method := splitAttribute(callee, source)
				if method == "" {
					break
				}
				if object == "self" && classContext != "" {
					*calls = append(*calls, callgraph.NewResolvedFunctionCall(classContext+"."+method, module, line))
				} else {
					*calls = append(*calls, callgraph.NewFunctionCall(method, line))
				}
			}

			if callee.Type() == "attribute" {
				_, method := splitAttribute(callee, source)
				if callgraph.HandlerRegistrationMethods[method] {
					collectHandlerArgs(node, source, line, calls)
				}
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectCalls(node.Child(i), source, module, classContext, calls)
	}
}

func collectHandlerArgs(callNode *sitter.Node, source []byte, line int, calls *[]callgraph.FunctionCall) {
	for i := 0; i < int(callNode.ChildCount()); i++ {
		arg := callNode.Child(i)
		if arg.Type() != "argument_list" {
			continue
		}
		for j := 0; j < int(arg.ChildCount()); j++ {
			identNode := arg.Child(j)
			if identNode.Type() != "identifier" {
				continue
			}
			name := identNode.Content(source)
			if callgraph.FilteredParameterNames[name] {
				continue
			}
			*calls = append(*calls, callgraph.NewFunctionCall(name, line))
		}
	}
}

// splitAttribute returns the object and method name of an "object.method"
// attribute node: its first identifier child is the object, its second
// the method.
func splitAttribute(node *sitter.Node, source []byte) (object, method string) {
	count := 0
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "identifier" {
			continue
		}
		count++
		if count == 1 {
			object = child.Content(source)
		} else if count == 2 {
			method = child.Content(source)
		}
	}
	return object, method
}

func firstChildOfType(node *sitter.Node, kind string, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == kind {
			return child.Content(source)
		}
	}
	return ""
}

// Package rust translates Rust source into callgraph.AbstractAST.
package rust

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/trackast/trackast/callgraph"
)

func init() {
	callgraph.DefaultRegistry.Register(New())
}

// Translator implements callgraph.Translator for Rust.
type Translator struct{}

// New creates a Rust translator.
func New() *Translator {
	return &Translator{}
}

// Name returns the language's display name.
func (t *Translator) Name() string { return "rust" }

// FileExtensions returns the extensions this translator claims.
func (t *Translator) FileExtensions() []string { return []string{"rs"} }

func setupParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return parser
}

// Translate parses source following the shared extraction algorithm,
// adapted to Rust's "::" scope separator: a single-element containing
// scope (the impl block's type name) qualifies method names with
// "::", self.method() calls within a non-empty scope resolve to
// "Scope::method" with the target module set to the ast's own module,
// and top-level statements attach to the synthetic "<module>"
// container.
func (t *Translator) Translate(source []byte, modulePath string) (*callgraph.AbstractAST, error) {
	parser := setupParser()
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("rust: failed to parse source: %w", err)
	}

	ast := callgraph.NewAbstractAST(modulePath)
	walkBody(tree.RootNode(), source, modulePath, ast, "")
	return ast, nil
}

func walkBody(node *sitter.Node, source []byte, module string, ast *callgraph.AbstractAST, implContext string) {
	switch node.Type() {
	case "impl_item":
		typeName := implTypeName(node, source)
		for i := 0; i < int(node.ChildCount()); i++ {
			walkBody(node.Child(i), source, module, ast, typeName)
		}
		return

	case "function_item":
		funcName := firstChildOfType(node, "identifier", source)
		if funcName == "" {
			break
		}
		scopedName := funcName
		if implContext != "" {
			scopedName = implContext + "::" + funcName
		}
		fn := callgraph.NewFunctionDef(scopedName, callgraph.EmptySignature(), module)
		extractCallsFromFunction(node, source, &fn, module, implContext)
		ast.AddFunction(fn)
		return

	case "expression_statement", "let_declaration":
		if implContext == "" {
			attachTopLevelCalls(node, source, module, ast)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkBody(node.Child(i), source, module, ast, implContext)
	}
}

// implTypeName returns the name of the type an impl block targets:
// the last "type_identifier" child, which for both "impl Foo" and
// "impl Trait for Foo" is the implementing type, not the trait.
func implTypeName(node *sitter.Node, source []byte) string {
	var name string
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == "type_identifier" {
			name = child.Content(source)
		}
	}
	return name
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

func extractCallsFromFunction(funcNode *sitter.Node, source []byte, fn *callgraph.FunctionDef, module, implContext string) {
	var calls []callgraph.FunctionCall
	for i := 0; i < int(funcNode.ChildCount()); i++ {
		collectCalls(funcNode.Child(i), source, module, implContext, &calls)
	}
	for _, c := range calls {
		fn.AddCall(c)
	}
}

// collectCalls recursively finds "call_expression" nodes, handling
// bare identifiers, field access (obj.method / self.method), scope
// resolution (Type::function), and identifier arguments passed to
// recognized handler-registration methods.
func collectCalls(node *sitter.Node, source []byte, module, implContext string, calls *[]callgraph.FunctionCall) {
	if node.Type() == "call_expression" {
		line := int(node.StartPoint().Row) + 1

		if callee := node.Child(0); callee != nil {
			switch callee.Type() {
			case "identifier":
				*calls = append(*calls, callgraph.NewFunctionCall(callee.Content(source), line))

			case "scoped_identifier":
				if name := lastIdentifier(callee, source); name != "" {
					*calls = append(*calls, callgraph.NewFunctionCall(name, line))
				}

			case "field_expression":
				object, method := splitField(callee, source)
				if method == "" {
					break
				}
				if object == "self" && implContext != "" {
					*calls = append(*calls, callgraph.NewResolvedFunctionCall(implContext+"::"+method, module, line))
				} else {
					*calls = append(*calls, callgraph.NewFunctionCall(method, line))
				}
			}

			if callee.Type() == "field_expression" {
				_, method := splitField(callee, source)
				if callgraph.HandlerRegistrationMethods[method] {
					collectHandlerArgs(node, source, line, calls)
				}
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectCalls(node.Child(i), source, module, implContext, calls)
	}
}

func collectHandlerArgs(callNode *sitter.Node, source []byte, line int, calls *[]callgraph.FunctionCall) {
	for i := 0; i < int(callNode.ChildCount()); i++ {
		arg := callNode.Child(i)
		if arg.Type() != "arguments" {
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

// splitField returns the object and method name of an "object.method"
// field_expression: its first child is the object, its last (when an
// identifier/field_identifier) the method.
func splitField(node *sitter.Node, source []byte) (object, method string) {
	if first := node.Child(0); first != nil {
		object = first.Content(source)
	}
	if count := int(node.ChildCount()); count > 0 {
		if last := node.Child(count - 1); last != nil {
			switch last.Type() {
			case "field_identifier", "identifier":
				method = last.Content(source)
			}
		}
	}
	return object, method
}

// lastIdentifier returns the final segment of a "Type::function"
// scoped_identifier.
func lastIdentifier(node *sitter.Node, source []byte) string {
	var name string
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == "identifier" {
			name = child.Content(source)
		}
	}
	return name
}

func firstChildOfType(node *sitter.Node, kind string, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == kind {
			return child.Content(source)
		}
	}
	return ""
}

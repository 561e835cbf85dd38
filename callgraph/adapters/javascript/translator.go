// Package javascript translates JavaScript/TypeScript source into
// callgraph.AbstractAST.
package javascript

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/trackast/trackast/callgraph"
)

func init() {
	callgraph.DefaultRegistry.Register(New())
}

// Translator implements callgraph.Translator for JavaScript/TypeScript.
type Translator struct{}

// New creates a JavaScript translator.
func New() *Translator {
	return &Translator{}
}

// Name returns the language's display name.
func (t *Translator) Name() string { return "javascript" }

// FileExtensions returns the extensions this translator claims.
func (t *Translator) FileExtensions() []string { return []string{"js", "jsx", "ts", "tsx", "mjs", "cjs"} }

func setupParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	return parser
}

// Translate parses source following the shared extraction algorithm: a
// single-element containing-scope (class name) qualifies method names
// with ".", this.method() calls within a non-empty scope resolve to
// "Scope.method" with the target module set to the ast's own module,
// top-level calls and module.exports assignments attach to the
// synthetic "<module>" container, and identifier arguments passed to
// recognized Express-style registration methods become call edges.
// Function bodies are not walked for further definitions, so nested
// functions are not emitted separately.
func (t *Translator) Translate(source []byte, modulePath string) (*callgraph.AbstractAST, error) {
	parser := setupParser()
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("javascript: failed to parse source: %w", err)
	}

	ast := callgraph.NewAbstractAST(modulePath)
	walkBody(tree.RootNode(), source, modulePath, ast, "")
	return ast, nil
}

func walkBody(node *sitter.Node, source []byte, module string, ast *callgraph.AbstractAST, classContext string) {
	switch node.Type() {
	case "class_declaration", "class":
		className := firstChildOfType(node, "identifier", source)
		for i := 0; i < int(node.ChildCount()); i++ {
			walkBody(node.Child(i), source, module, ast, className)
		}
		return

	case "function_declaration", "function":
		if funcName := firstChildOfType(node, "identifier", source); funcName != "" {
			addFunction(ast, node, source, module, classContext, funcName)
		}
		return

	case "method_definition":
		if funcName := firstChildOfType(node, "property_identifier", source); funcName != "" && classContext != "" {
			addFunction(ast, node, source, module, classContext, funcName)
		}
		return

	case "arrow_function":
		return

	case "variable_declaration", "lexical_declaration":
		if classContext == "" {
			extractArrowBindings(node, source, module, ast)
		}

	case "expression_statement":
		if classContext == "" {
			attachTopLevelCalls(node, source, module, ast)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkBody(node.Child(i), source, module, ast, classContext)
	}
}

func addFunction(ast *callgraph.AbstractAST, node *sitter.Node, source []byte, module, classContext, funcName string) {
	scopedName := funcName
	if classContext != "" {
		scopedName = classContext + "." + funcName
	}
	fn := callgraph.NewFunctionDef(scopedName, callgraph.EmptySignature(), module)
	extractCallsFromFunction(node, source, &fn, module, classContext)
	ast.AddFunction(fn)
}

// extractArrowBindings finds "const handler = () => {...}" and
// "const handler = function() {...}" module-scope bindings and emits
// each as a function named after the binding identifier.
func extractArrowBindings(node *sitter.Node, source []byte, module string, ast *callgraph.AbstractAST) {
	for i := 0; i < int(node.ChildCount()); i++ {
		declarator := node.Child(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}

		var varName string
		var body *sitter.Node
		for j := 0; j < int(declarator.ChildCount()); j++ {
			child := declarator.Child(j)
			switch child.Type() {
			case "identifier":
				if varName == "" {
					varName = child.Content(source)
				}
			case "arrow_function", "function":
				body = child
			}
		}

		if varName == "" || body == nil {
			continue
		}

		fn := callgraph.NewFunctionDef(varName, callgraph.EmptySignature(), module)
		extractCallsFromFunction(body, source, &fn, module, "")
		ast.AddFunction(fn)
	}
}

func attachTopLevelCalls(node *sitter.Node, source []byte, module string, ast *callgraph.AbstractAST) {
	var calls []callgraph.FunctionCall
	collectCalls(node, source, module, "", &calls)
	collectModuleExports(node, source, &calls)
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

// collectModuleExports implements export tracking: an assignment of
// the literal form "module.exports = identifier" contributes the
// identifier as a call on the synthetic container, keeping exported
// symbols reachable.
func collectModuleExports(node *sitter.Node, source []byte, calls *[]callgraph.FunctionCall) {
	if node.Type() != "assignment_expression" {
		for i := 0; i < int(node.ChildCount()); i++ {
			collectModuleExports(node.Child(i), source, calls)
		}
		return
	}

	isModuleExports := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "member_expression" && child.Content(source) == "module.exports" {
			isModuleExports = true
		}
	}
	if !isModuleExports {
		return
	}

	line := int(node.StartPoint().Row) + 1
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "identifier" {
			*calls = append(*calls, callgraph.NewFunctionCall(child.Content(source), line))
		}
	}
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

// collectCalls recursively finds "call_expression" nodes, handling bare
// identifiers, member access (obj.method / this.method), and
// identifier arguments passed to recognized Express-style
// registration methods.
func collectCalls(node *sitter.Node, source []byte, module, classContext string, calls *[]callgraph.FunctionCall) {
	if node.Type() == "call_expression" {
		line := int(node.StartPoint().Row) + 1

		if callee := node.Child(0); callee != nil {
			switch callee.Type() {
			case "identifier":
				*calls = append(*calls, callgraph.NewFunctionCall(callee.Content(source), line))

			case "member_expression":
				object, method := splitMember(callee, source)
				if method == "" {
					break
				}
				if object == "this" && classContext != "" {
					*calls = append(*calls, callgraph.NewResolvedFunctionCall(classContext+"."+method, module, line))
				} else {
					*calls = append(*calls, callgraph.NewFunctionCall(method, line))
				}
			}

			if callee.Type() == "member_expression" {
				_, method := splitMember(callee, source)
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

// splitMember returns the object and property name of an
// "object.property" member_expression: its first child is the object,
// its last (when a property_identifier) the property.
func splitMember(node *sitter.Node, source []byte) (object, property string) {
	if first := node.Child(0); first != nil {
		object = first.Content(source)
	}
	if count := int(node.ChildCount()); count > 0 {
		if last := node.Child(count - 1); last != nil && last.Type() == "property_identifier" {
			property = last.Content(source)
		}
	}
	return object, property
}

func firstChildOfType(node *sitter.Node, kind string, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == kind {
			return child.Content(source)
		}
	}
	return ""
}

package callgraph

import "strings"

// ResolveCall searches functions for a definition that could be the
// target of an unqualified call named callName, made from
// currentModule. It is a pure function over the function list and is
// consulted by the Builder only for calls whose target module is
// absent — calls that already carry a target module are trusted as-is.
//
// Search order:
//  1. exact match within currentModule;
//  2. each proper prefix of currentModule (split on "::"), walked from
//     the longest down to the shortest;
//  3. any function declared with an empty module path (the root
//     module).
//
// Returns the (module, name) pair of the first match, or false if
// nothing matches.
func ResolveCall(callName, currentModule string, functions []FunctionDef) (module, name string, ok bool) {
	for _, fn := range functions {
		if fn.Name == callName && fn.Module == currentModule {
			return fn.Module, fn.Name, true
		}
	}

	parts := strings.Split(currentModule, "::")
	for i := len(parts) - 1; i >= 1; i-- {
		parent := strings.Join(parts[:i], "::")
		for _, fn := range functions {
			if fn.Name == callName && fn.Module == parent {
				return fn.Module, fn.Name, true
			}
		}
	}

	for _, fn := range functions {
		if fn.Name == callName && fn.Module == "" {
			return fn.Module, fn.Name, true
		}
	}

	return "", "", false
}

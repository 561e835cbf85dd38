package cmd

import (
	"fmt"
	"strings"

	"github.com/trackast/trackast/callgraph"
)

// ResolveEntryPoints turns each command-line entry point spec into one
// or more FunctionIDs present in graph.
//
// A spec with two "::"-separated parts ("module::function") is a
// fuzzy match: every node whose id's first two "::"-segments equal
// module and function qualifies. Zero matches is an error; one match
// resolves to it; more than one match is NOT an error — all of them
// are used, since distinguishing overloads from the command line would
// require the caller to spell out the signature anyway.
//
// A spec with three parts ("module::function::signature") is an exact
// match against the literal id; it errors if that id is absent.
func ResolveEntryPoints(specs []string, graph *callgraph.CallGraph) ([]callgraph.FunctionID, error) {
	var resolved []callgraph.FunctionID

	for _, spec := range specs {
		parts := strings.SplitN(spec, "::", 3)

		switch len(parts) {
		case 3:
			exactID := callgraph.FunctionID(fmt.Sprintf("%s::%s::%s", parts[0], parts[1], parts[2]))
			if _, ok := graph.GetNode(exactID); !ok {
				return nil, fmt.Errorf("entry point not found: %s", spec)
			}
			resolved = append(resolved, exactID)

		case 2:
			module, function := parts[0], parts[1]
			var matching []callgraph.FunctionID
			for id := range graph.Nodes {
				idParts := strings.SplitN(id.String(), "::", 3)
				if len(idParts) >= 2 && idParts[0] == module && idParts[1] == function {
					matching = append(matching, id)
				}
			}

			switch len(matching) {
			case 0:
				return nil, fmt.Errorf("no matching entry point found for '%s::%s'", module, function)
			case 1:
				resolved = append(resolved, matching[0])
			default:
				resolved = append(resolved, matching...)
			}

		default:
			return nil, fmt.Errorf("invalid entry point format %q: use 'module::function' or 'module::function::signature'", spec)
		}
	}

	return resolved, nil
}

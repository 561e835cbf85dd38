package callgraph

import "fmt"

// Kind identifies one of the handful of ways the core can fail. The core
// never panics and never swallows a failure; every operation that can
// fail returns one of these, wrapped in an *Error.
type Kind int

const (
	// ParseError means a translator could not initialize its parser or
	// could not parse the given source at all.
	ParseError Kind = iota
	// IOError means reading a source file from disk failed.
	IOError
	// DuplicateFunctionId means a function's FunctionID is already
	// indexed by an earlier AddAST call, or a node with that id is
	// already in the graph.
	DuplicateFunctionId
	// DanglingEdge means an edge was inserted whose endpoint does not
	// exist in the graph. A correctly implemented Builder never causes
	// this to escape; it exists to guard CallGraph's own invariant.
	DanglingEdge
	// UnknownEntryPoint means an entry specification did not match any
	// function id in the graph.
	UnknownEntryPoint
	// UnknownFunction means a query targeted a function id absent from
	// the graph.
	UnknownFunction
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case IOError:
		return "IOError"
	case DuplicateFunctionId:
		return "DuplicateFunctionId"
	case DanglingEdge:
		return "DanglingEdge"
	case UnknownEntryPoint:
		return "UnknownEntryPoint"
	case UnknownFunction:
		return "UnknownFunction"
	default:
		return "UnknownErrorKind"
	}
}

// Error is the single error type the core returns. It always carries a
// Kind and a human-readable message; there is no deeper hierarchy.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func newParseError(format string, args ...any) *Error {
	return newError(ParseError, format, args...)
}

func newIOError(format string, args ...any) *Error {
	return newError(IOError, format, args...)
}

func newDuplicateFunctionIdError(id FunctionID) *Error {
	return newError(DuplicateFunctionId, "duplicate function id: %s", id)
}

func newDanglingEdgeError(format string, args ...any) *Error {
	return newError(DanglingEdge, format, args...)
}

func newUnknownEntryPointError(spec string) *Error {
	return newError(UnknownEntryPoint, "entry point not found: %s", spec)
}

func newUnknownFunctionError(id FunctionID) *Error {
	return newError(UnknownFunction, "function not found: %s", id)
}

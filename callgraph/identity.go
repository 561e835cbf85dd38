package callgraph

import (
	"fmt"
	"strings"
)

// ExternalModule is the reserved module prefix used for synthesized
// external nodes — any callee not declared in analyzed source.
const ExternalModule = "<external>"

// ModuleContainer is the reserved function name for the per-file
// synthetic pseudo-function that owns top-level calls (framework
// registrations, export assignments) not attached to a declared
// function.
const ModuleContainer = "<module>"

// FunctionID is the canonical identity string of a function:
// "<module>::<name>::<signature-string>". It is comparable and
// orderable as a plain string; two FunctionDefs share an id iff their
// module, name, and signature are all structurally equal.
type FunctionID string

// String satisfies fmt.Stringer.
func (id FunctionID) String() string {
	return string(id)
}

// Param is one (name, type) pair of a Signature.
type Param struct {
	Name string
	Type string
}

// Signature is an ordered list of parameters plus a return type.
// Signatures are value-typed, order-sensitive, and compared by
// structural equality; their only purpose is disambiguating overloads.
// For languages without declared types, EmptySignature is used.
type Signature struct {
	Params     []Param
	ReturnType string
}

// EmptySignature returns the sentinel "no declared types" signature:
// zero parameters, return type "()".
func EmptySignature() Signature {
	return Signature{Params: nil, ReturnType: "()"}
}

// Equal reports whether two signatures are structurally equal.
func (s Signature) Equal(other Signature) bool {
	if s.ReturnType != other.ReturnType || len(s.Params) != len(other.Params) {
		return false
	}
	for i, p := range s.Params {
		if p != other.Params[i] {
			return false
		}
	}
	return true
}

// String renders the signature as "(name1: type1, name2: type2, …) -> return".
func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), s.ReturnType)
}

// GenerateID formats the canonical FunctionID for (module, name,
// signature). With an EmptySignature this renders
// "module::name::() -> ()".
func GenerateID(module, name string, sig Signature) FunctionID {
	return FunctionID(fmt.Sprintf("%s::%s::%s", module, name, sig.String()))
}

// externalID builds the reserved external-node id for a callee with no
// resolvable target module. It never goes through GenerateID: the
// convention is literal, "<external>::name::()".
func externalID(name string) FunctionID {
	return FunctionID(fmt.Sprintf("%s::%s::()", ExternalModule, name))
}

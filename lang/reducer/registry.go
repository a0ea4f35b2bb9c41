// Package reducer implements C4 (matching commands against registered
// productions) and the JGC text emission of C5.
package reducer

import "github.com/justinmgarrigus/jgpl/lang/ast"

// statementKey indexes the productions with no return type: JG statements,
// as opposed to expressions.
const statementKey = ""

// Registry holds every production and type cast registered while walking a
// compile unit's declarations, keyed the way production_list needs: by
// return type, with casts recorded separately and consulted one step.
type Registry struct {
	productions map[string][]*ast.Production
	casts       map[string][]string
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		productions: map[string][]*ast.Production{},
		casts:       map[string][]string{},
	}
}

// AddProduction registers prod under its return type (or the statement key
// if it has none).
func (r *Registry) AddProduction(prod *ast.Production) {
	key := statementKey
	if prod.HasReturn {
		key = prod.ReturnType
	}
	r.productions[key] = append(r.productions[key], prod)
}

// AddCast records that values of type from can be cast to type to. Casts
// are keyed by their target type.
func (r *Registry) AddCast(from, to string) {
	r.casts[to] = append(r.casts[to], from)
}

// Statements returns every registered statement production, in
// declaration order.
func (r *Registry) Statements() []*ast.Production {
	return r.productions[statementKey]
}

// ProductionList returns every production that can supply a value for a
// slot of type t: productions returning t itself, plus productions
// returning any type that casts to t (one step, no transitive closure).
func (r *Registry) ProductionList(t string) []*ast.Production {
	var out []*ast.Production
	for _, from := range r.casts[t] {
		out = append(out, r.productions[from]...)
	}
	out = append(out, r.productions[t]...)
	return out
}

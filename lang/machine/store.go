package machine

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/justinmgarrigus/jgpl/lang/jgc"
)

// Variable is a single named cell in the process-wide store: a type tag
// plus a value, which is an int64, a string, an *object (an object's
// attribute table), or nil.
type Variable struct {
	Type  string
	Value any
}

// Store is the single, process-wide, name-keyed variable store (spec's
// "Variable (runtime)" data model), backed by a swiss.Map for O(1) name
// lookup. Strict mode rejects reads of names that were never declared or
// written; the permissive default auto-vivifies them as type "EMPTY",
// value nil, mirroring the original interpreter's defaultdict behaviour.
type Store struct {
	vars       *swiss.Map[string, *Variable]
	Strict     bool
	objCounter map[string]int
}

// NewStore returns an empty, ready-to-use Store.
func NewStore() *Store {
	return &Store{
		vars:       swiss.NewMap[string, *Variable](16),
		objCounter: map[string]int{},
	}
}

// Get returns the variable named name, auto-vivifying it as EMPTY/nil
// unless Strict is set.
func (s *Store) Get(name string) (*Variable, error) {
	if v, ok := s.vars.Get(name); ok {
		return v, nil
	}
	if s.Strict {
		return nil, fmt.Errorf("machine: read of undeclared variable %q", name)
	}
	v := &Variable{Type: "EMPTY"}
	s.vars.Put(name, v)
	return v, nil
}

// Declare implements INSERT semantics: create (or reset) name with the
// given type, clearing its value.
func (s *Store) Declare(name, typ string) {
	s.vars.Put(name, &Variable{Type: typ})
}

// Write implements ASSIGN/COPY/OBJECT's write-path: set name's value,
// auto-creating the variable if absent, and optionally its type.
func (s *Store) Write(name string, value any, typ string, setType bool) {
	v, ok := s.vars.Get(name)
	if !ok {
		v = &Variable{Type: "EMPTY"}
		s.vars.Put(name, v)
	}
	v.Value = value
	if setType {
		v.Type = typ
	}
}

// CopyInto implements RETURN's "copy the whole variable" semantics (COPY
// writes only the value): dest receives src's type and value, so scalars are
// copied by value while object references (whose value is just a heap
// cell's synthetic name) are aliased.
func (s *Store) CopyInto(dest string, src *Variable) {
	s.Write(dest, src.Value, src.Type, true)
}

// NextObjectName synthesizes a fresh "<type>_<n>" heap cell name for
// OBJECT, scoped per type.
func (s *Store) NextObjectName(typ string) string {
	s.objCounter[typ]++
	return fmt.Sprintf("%s_%d", typ, s.objCounter[typ])
}

// Chase resolves an operand down to its value, per the "@" indirection
// convention: a bare literal or name operand resolves with zero lookups
// (the literal int, or the identifier text itself, e.g. for a pointer
// variable's "ASSIGN p, q" which stores the name "q" verbatim); each
// leading '@' adds exactly one more lookup, treating the previous result
// as the name of the next variable to read. "@@p" therefore means: read
// p's value, treat it as a name and read that variable's value in turn.
func (s *Store) Chase(op jgc.Operand) (any, error) {
	switch op.Kind {
	case jgc.OpLiteral:
		return parseJGCInt(op.Literal)
	case jgc.OpString:
		return op.Literal, nil
	case jgc.OpName:
		return op.Name, nil
	case jgc.OpDeref:
		depth := 0
		cur := &op
		for cur.Kind == jgc.OpDeref {
			depth++
			cur = cur.Inner
		}
		if cur.Kind != jgc.OpName {
			return nil, fmt.Errorf("machine: cannot dereference a non-name operand %q", cur.String())
		}
		var v any = cur.Name
		for i := 0; i < depth; i++ {
			name, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("machine: dereference chain hit a non-name value %v", v)
			}
			variable, err := s.Get(name)
			if err != nil {
				return nil, err
			}
			v = variable.Value
		}
		return v, nil
	default:
		return nil, fmt.Errorf("machine: invalid operand")
	}
}

// ChaseName is Chase, requiring the resolved value to be a variable name.
func (s *Store) ChaseName(op jgc.Operand) (string, error) {
	v, err := s.Chase(op)
	if err != nil {
		return "", err
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("machine: operand %q did not resolve to a name (got %v)", op.String(), v)
	}
	return name, nil
}

// ChaseInt is Chase, requiring the resolved value to be an integer.
func (s *Store) ChaseInt(op jgc.Operand) (int64, error) {
	v, err := s.Chase(op)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("machine: operand %q did not resolve to an integer (got %v)", op.String(), v)
	}
	return n, nil
}

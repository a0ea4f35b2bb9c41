package reducer

import (
	"strings"

	"github.com/justinmgarrigus/jgpl/lang/ast"
	"github.com/justinmgarrigus/jgpl/lang/token"
)

// identValueTypes are the parameter types whose identifier values must be
// dereferenced ('@name') rather than copied by name: scalar and boxed-value
// holders, as opposed to object/aggregate types passed by name alone.
var identValueTypes = map[string]bool{"int": true, "bool": true, "value": true}

// PassedParameter is one resolved argument binding for a production slot:
// either a literal/identifier value, or a nested Reduction supplying the
// value at runtime.
type PassedParameter struct {
	Alias      string
	VarType    string
	Value      string     // set when the argument is a literal or identifier
	Sub        *Reduction // set when the argument is itself a reduced sub-expression
}

// codeValue returns the right-hand side to assign to Alias: value
// identifiers of a dereference-requiring type are rewritten with a leading
// '@'.
func (p PassedParameter) codeValue() string {
	if p.Sub != nil {
		return ""
	}
	if isIdentifier(p.Value) && identValueTypes[p.VarType] {
		return "@" + p.Value
	}
	return p.Value
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if !(s[0] == '_' || (s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z')) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// Code emits this parameter's argument-binding prelude line(s), or "" if
// nothing needs to be emitted (the source is already identical to Alias).
func (p PassedParameter) Code() string {
	if p.Sub != nil {
		return p.Sub.Code(true) + "ASSIGN " + p.Alias + ", @result"
	}
	cv := p.codeValue()
	if p.Alias == cv {
		return ""
	}
	return "ASSIGN " + p.Alias + ", " + cv
}

// Reduction is the reducer's output for one matched production: the
// production plus, per signature slot, the alternative argument bindings
// found for it (ambiguous sub-expression matches keep every alternative;
// code generation always takes the first).
type Reduction struct {
	Production *ast.Production
	Parameters [][]PassedParameter
}

// Compare reports whether r is strictly preferable to other: fewer
// parameter slots wins, mirroring the original reducer's ambiguity rule.
func (r *Reduction) Compare(other *Reduction) bool {
	return len(r.Parameters) < len(other.Parameters)
}

// Code renders the FUNC call and its argument-binding prelude. isParameter
// marks a sub-expression reduction supplying a value via "result" rather
// than a standalone statement.
func (r *Reduction) Code(isParameter bool) string {
	call := "FUNC " + r.Production.Name
	if isParameter {
		call += ", result"
	}
	code := call + "\n"

	for _, alts := range r.Parameters {
		if len(alts) == 0 {
			continue
		}
		paramCode := alts[0].Code()
		if paramCode != "" {
			code = paramCode + "\n" + code
		}
	}
	return code
}

// TryReduce attempts to match tokens[pos:] against prod's signature. statement
// marks a top-level match, which must consume every token; a sub-expression
// match instead must stop exactly at an unconsumed ")".
func TryReduce(tokens []token.Token, pos int, prod *ast.Production, statement bool, reg *Registry) (*Reduction, bool) {
	red := &Reduction{Production: prod}
	cur := pos
	j := 0

	for j < len(prod.Signature) && cur < len(tokens) && tokens[cur].Lexeme != ")" {
		elem := prod.Signature[j]
		if elem.Hole == nil {
			if tokens[cur].Lexeme != elem.Literal.Lexeme {
				return nil, false
			}
			cur++
			j++
			continue
		}

		param := elem.Hole
		var alts []PassedParameter
		if tokens[cur].Lexeme == "(" {
			cur++
			subStart := cur
			for _, candidate := range reg.ProductionList(param.Type) {
				if sub, ok := TryReduce(tokens, subStart, candidate, false, reg); ok {
					alts = append(alts, PassedParameter{Alias: param.Alias, VarType: param.Type, Sub: sub})
				}
			}
			for cur < len(tokens) && tokens[cur].Lexeme != ")" {
				cur++
			}
			if cur >= len(tokens) {
				return nil, false // unmatched parenthesis
			}
			cur++ // consume ')'
		} else {
			tok := tokens[cur]
			ok := false
			switch {
			case tok.Kind == token.ID:
				ok = true
			case tok.Kind == token.NUMBER && param.Type == "int":
				ok = true
			case tok.Kind == token.STRING && param.Type == "string":
				ok = true
			case param.Type == "value":
				ok = true
			}
			if !ok {
				return nil, false
			}
			value := tok.Lexeme
			if tok.Kind == token.STRING {
				value = `"` + value + `"`
			}
			alts = append(alts, PassedParameter{Alias: param.Alias, VarType: param.Type, Value: value})
			cur++
		}
		red.Parameters = append(red.Parameters, alts)
		j++
	}

	if cur < len(tokens) && tokens[cur].Lexeme == ")" {
		if statement {
			return nil, false
		}
		return red, true
	}
	if cur >= len(tokens) && j >= len(prod.Signature) {
		return red, true
	}
	return nil, false
}

// ReduceStatement finds every statement production that matches tokens in
// full, in declaration order.
func ReduceStatement(tokens []token.Token, reg *Registry) []*Reduction {
	var out []*Reduction
	for _, prod := range reg.Statements() {
		if red, ok := TryReduce(tokens, 0, prod, true, reg); ok {
			out = append(out, red)
		}
	}
	return out
}

func (r *Reduction) String() string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(r.Production.String())
	b.WriteString("}")
	return b.String()
}

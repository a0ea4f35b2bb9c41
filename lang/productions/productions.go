// Package productions implements C3: extracting a Production (function or
// block declaration) and its typed Parameter holes from a Command headed by
// "func" or "block".
package productions

import (
	"fmt"

	"github.com/justinmgarrigus/jgpl/lang/ast"
	"github.com/justinmgarrigus/jgpl/lang/token"
)

// Counter assigns fresh production names F1, F2, … across a single compile
// run. Zero value is ready to use.
type Counter struct {
	next int
}

// Next returns the next fresh name, starting at F1.
func (c *Counter) Next() string {
	c.next++
	return fmt.Sprintf("F%d", c.next)
}

// IsDeclaration reports whether cmd declares a production: its first token
// is "func" or "block".
func IsDeclaration(cmd *ast.Command) bool {
	head := cmd.Head()
	return head == "func" || head == "block"
}

// Extract interprets cmd (for which IsDeclaration must hold) as a
// production declaration and returns the registered Production. Names are
// drawn from counter, except that a Command headed by a literal "main"
// token anywhere is not handled here — callers special-case "main" before
// calling Extract, per the reducer's top-level dispatch.
func Extract(cmd *ast.Command, counter *Counter) (*ast.Production, error) {
	prod := &ast.Production{Name: counter.Next(), Command: cmd}

	toks := cmd.Tokens
	i := 1 // skip the leading func/block keyword
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Lexeme == "<":
			param, next, err := parseParameter(toks, i)
			if err != nil {
				return nil, err
			}
			prod.Signature = append(prod.Signature, ast.SigElem{Hole: param})
			i = next

		case t.Lexeme == ":":
			if i+1 < len(toks) {
				prod.ReturnType = toks[i+1].Lexeme
				prod.HasReturn = true
			}
			return prod, nil

		default:
			tc := t
			prod.Signature = append(prod.Signature, ast.SigElem{Literal: &tc})
			i++
		}
	}
	return prod, nil
}

// parseParameter reads a <type alias> or <type * alias> hole starting at
// the '<' token at toks[i], returning the Parameter and the index of the
// token following the closing '>'.
func parseParameter(toks []token.Token, i int) (*ast.Parameter, int, error) {
	if i+2 >= len(toks) {
		return nil, 0, fmt.Errorf("productions: truncated parameter at token %d", i)
	}
	typeName := toks[i+1].Lexeme
	if toks[i+2].Lexeme == "*" {
		if i+4 >= len(toks) || toks[i+4].Lexeme != ">" {
			return nil, 0, fmt.Errorf("productions: malformed indirect parameter at token %d", i)
		}
		return &ast.Parameter{Type: typeName, Alias: toks[i+3].Lexeme, Indirect: true}, i + 5, nil
	}
	if i+3 >= len(toks) || toks[i+3].Lexeme != ">" {
		return nil, 0, fmt.Errorf("productions: malformed parameter at token %d", i)
	}
	return &ast.Parameter{Type: typeName, Alias: toks[i+2].Lexeme}, i + 4, nil
}

// IsCast reports whether prod should be registered as a type cast (a
// single-parameter signature whose parameter type differs from its return
// type) rather than as a normal production.
func IsCast(prod *ast.Production) (from, to string, ok bool) {
	if len(prod.Signature) != 1 || prod.Signature[0].Hole == nil || !prod.HasReturn {
		return "", "", false
	}
	hole := prod.Signature[0].Hole
	if hole.Type == prod.ReturnType {
		return "", "", false
	}
	return hole.Type, prod.ReturnType, true
}

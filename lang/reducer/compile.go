package reducer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/justinmgarrigus/jgpl/lang/ast"
	"github.com/justinmgarrigus/jgpl/lang/productions"
	"github.com/justinmgarrigus/jgpl/lang/token"
)

// Compile walks a forest of commands and emits a complete JGC text
// program, registering function/block declarations into a fresh Registry
// as it encounters them. Commands are visited depth-first in source order,
// with ENTERBLOCK/EXITBLOCK emitted around each non-declaration block. A
// production is registered when its declaration is reached, so a statement
// only matches productions declared before it.
//
// A command with no matching production is a diagnostic, not a fatal
// error: "ERROR: no valid reductions <command>" is written to diag (falling
// back to os.Stderr if diag is nil) and emission for that one command is
// skipped, so the rest of the program still compiles.
func Compile(commands *ast.Command, diag io.Writer) (string, error) {
	if diag == nil {
		diag = os.Stderr
	}
	reg := NewRegistry()
	var counter productions.Counter
	var code strings.Builder

	current := commands
	var stack []*ast.Command
	returnSpecified := false

	for current != nil {
		switch {
		case productions.IsDeclaration(current):
			prod, err := productions.Extract(current, &counter)
			if err != nil {
				return "", err
			}
			if from, to, ok := productions.IsCast(prod); ok {
				reg.AddCast(from, to)
			} else {
				reg.AddProduction(prod)
			}
			code.WriteString(prod.Name + ":\n")
			returnSpecified = false

		case current.Head() == "return":
			if current.Next != nil {
				return "", fmt.Errorf("reducer: a command following 'return' is unreachable: %q", current.Next.String())
			}
			code.WriteString("RETURN " + current.At(1).Lexeme + "\n")
			returnSpecified = true

		case current.Head() == "~":
			var b strings.Builder
			for i := 1; i < len(current.Tokens); i++ {
				if i > 1 {
					b.WriteByte(' ')
				}
				tok := current.Tokens[i]
				if tok.Kind == token.STRING {
					b.WriteByte('"')
					b.WriteString(tok.Lexeme)
					b.WriteByte('"')
				} else {
					b.WriteString(tok.Lexeme)
				}
			}
			code.WriteString(b.String() + "\n")

		case current.Head() == "main":
			code.WriteString("main:\n")

		default:
			reductions := ReduceStatement(current.Tokens, reg)
			if len(reductions) == 0 {
				fmt.Fprintf(diag, "ERROR: no valid reductions %s\n", current.String())
				break
			}
			best := reductions[0]
			for _, r := range reductions[1:] {
				if r.Compare(best) {
					best = r
				}
			}
			code.WriteString(best.Code(false))
		}

		if current.Contents != nil {
			if !productions.IsDeclaration(current) && current.Head() != "main" {
				code.WriteString("ENTERBLOCK\n")
			}
			stack = append(stack, current)
			current = current.Contents
			continue
		}

		for current.Next == nil && len(stack) > 0 {
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if productions.IsDeclaration(current) {
				if !returnSpecified {
					code.WriteString("RETURN\n")
				}
			} else if current.Head() != "main" {
				code.WriteString("EXITBLOCK\n")
			}
		}
		current = current.Next
	}

	return code.String(), nil
}

// Package grouper implements C2: folding a flat token stream into a forest
// of ast.Command trees, using indentation to delimit blocks.
package grouper

import (
	"github.com/justinmgarrigus/jgpl/lang/ast"
	"github.com/justinmgarrigus/jgpl/lang/token"
)

// Group folds tokens into a forest of commands. An empty or indent-only
// token stream yields a nil forest, not an error: inconsistent indentation
// and empty input are not failures at this stage.
func Group(tokens []token.Token) *ast.Command {
	var head, tail *ast.Command
	pos := 0
	for pos < len(tokens) {
		cmd, next := parseLine(tokens, pos)
		pos = next
		if cmd == nil {
			continue
		}
		if head == nil {
			head = cmd
			tail = cmd
		} else {
			tail.Next = cmd
			tail = tail.Next
		}
	}

	for cmd := head; cmd != nil; cmd = cmd.Next {
		if cmd.IsBlock() {
			cmd.SetBlock()
		}
	}
	return head
}

// parseLine extracts one Command starting at pos, skipping leading
// INDENT/NEWLINE tokens. It returns the new Command (nil if pos ran off the
// end or hit EOF) and the position to resume scanning from.
func parseLine(tokens []token.Token, pos int) (*ast.Command, int) {
	indent := 0
	for pos < len(tokens) {
		switch tokens[pos].Kind {
		case token.INDENT:
			indent = tokens[pos].Indent
			pos++
			continue
		case token.NEWLINE:
			indent = 0
			pos++
			continue
		}
		break
	}
	if pos >= len(tokens) || tokens[pos].Kind == token.EOF {
		return nil, len(tokens)
	}

	start := pos
	for pos < len(tokens) && tokens[pos].Kind != token.NEWLINE && tokens[pos].Kind != token.EOF {
		pos++
	}

	cmd := &ast.Command{
		Tokens: append([]token.Token(nil), tokens[start:pos]...),
		Indent: indent,
	}
	return cmd, pos
}

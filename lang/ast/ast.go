// Package ast defines the Command/Parameter/Production tree produced by the
// grouper and function extractor (C2/C3), and consumed by the reducer (C4).
package ast

import (
	"strings"

	"github.com/justinmgarrigus/jgpl/lang/token"
)

// Command is a logical line of source plus its optional block of children.
// A Command is itself part of a flat sibling chain via Next; Contents holds
// the first child of its block, if any.
type Command struct {
	Tokens   []token.Token
	Indent   int
	Next     *Command
	Contents *Command
}

// At returns the i'th token of the command's header line.
func (c *Command) At(i int) token.Token { return c.Tokens[i] }

// Head returns the lexeme of the first token, or "" for an empty command.
func (c *Command) Head() string {
	if len(c.Tokens) == 0 {
		return ""
	}
	return c.Tokens[0].Lexeme
}

// IsBlock reports whether c's immediate sibling starts a deeper-indented
// run of commands, meaning c is the header of a block.
func (c *Command) IsBlock() bool {
	return c.Next != nil && c.Indent < c.Next.Indent
}

// SetBlock consumes c's run of deeper-indented siblings into c.Contents,
// recursively folding any nested blocks found along the way, and relinks
// c.Next to the first sibling back at c's own indent level.
func (c *Command) SetBlock() {
	current := c.Next
	for current.Next != nil && c.Indent < current.Next.Indent {
		if current.IsBlock() {
			current.SetBlock()
		} else {
			current = current.Next
		}
	}

	c.Contents = c.Next
	c.Next = current.Next
	current.Next = nil

	if n := len(c.Tokens); c.Head() != "func" && c.Head() != "block" && n > 0 &&
		c.Tokens[n-1].Kind == token.TERMINAL && c.Tokens[n-1].Lexeme == ":" {
		c.Tokens = c.Tokens[:n-1] // strip the trailing ':'
	}
}

// String renders the command's header line, with a "--"-prefixed nested
// rendering of its children, for debug/display modes.
func (c *Command) String() string {
	var b strings.Builder
	for i, t := range c.Tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Lexeme)
	}
	if c.Contents != nil {
		for child := c.Contents; child != nil; child = child.Next {
			b.WriteString("\n--")
			b.WriteString(strings.ReplaceAll(child.String(), "\n", "\n--"))
		}
	}
	return b.String()
}

// Parameter is a typed hole in a production signature: <type alias> or, when
// Indirect is set, <type * alias>.
type Parameter struct {
	Type     string
	Alias    string
	Indirect bool
}

func (p *Parameter) String() string {
	return "P<" + p.Alias + "=" + p.Type + ">"
}

// SigElem is one element of a Production's signature: either a literal
// token or a typed Parameter hole, modeled as an explicit tagged union
// rather than an interface-typed linked list.
type SigElem struct {
	Literal *token.Token
	Hole    *Parameter
}

func (e SigElem) String() string {
	if e.Hole != nil {
		return e.Hole.String()
	}
	return e.Literal.Lexeme
}

// Production is a registered function/block declaration: a name, an
// optional return type, and an ordered signature of literals and
// parameters.
type Production struct {
	Name       string
	ReturnType string // "" unless HasReturn
	HasReturn  bool
	Signature  []SigElem
	Command    *Command // the originating declaration, for emitting its body
}

func (p *Production) String() string {
	rt := "_"
	if p.HasReturn {
		rt = p.ReturnType
	}
	var b strings.Builder
	b.WriteString(rt)
	b.WriteString(": ")
	for i, e := range p.Signature {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	return b.String()
}

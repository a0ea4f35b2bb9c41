package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/justinmgarrigus/jgpl/lang/jgc"
	"github.com/justinmgarrigus/jgpl/lang/machine"
)

// Run interprets one or more JGC text files directly, concatenating them
// (each file must declare distinct function names; "main" runs last-loaded
// wins, matching a simple single-module load).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	contents, err := readFiles(ctx, args)
	if err != nil {
		return printError(stdio, err)
	}
	var text string
	for _, name := range args {
		text += string(contents[name])
		if len(text) > 0 && text[len(text)-1] != '\n' {
			text += "\n"
		}
	}
	prog, err := jgc.Parse(text)
	if err != nil {
		return printError(stdio, err)
	}
	return c.runProgram(ctx, stdio, prog)
}

// Exec compiles one or more .jg files and immediately runs the result, the
// convenience path most users reach for.
func (c *Cmd) Exec(ctx context.Context, stdio mainer.Stdio, args []string) error {
	code, err := CompileFiles(ctx, stdio.Stderr, args)
	if err != nil {
		return printError(stdio, err)
	}
	prog, err := jgc.Parse(code)
	if err != nil {
		return printError(stdio, err)
	}
	return c.runProgram(ctx, stdio, prog)
}

func (c *Cmd) runProgram(ctx context.Context, stdio mainer.Stdio, prog *jgc.Program) error {
	m := machine.New(prog)
	m.Store.Strict = c.Strict
	thread := &machine.Thread{
		Stdin:    stdio.Stdin,
		Stdout:   stdio.Stdout,
		Stderr:   stdio.Stderr,
		MaxSteps: c.MaxSteps,
	}
	if err := m.Run(ctx, thread); err != nil {
		return printError(stdio, err)
	}
	return nil
}

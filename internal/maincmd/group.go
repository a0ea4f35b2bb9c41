package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/justinmgarrigus/jgpl/lang/grouper"
	"github.com/justinmgarrigus/jgpl/lang/scanner"
)

func (c *Cmd) Group(ctx context.Context, stdio mainer.Stdio, args []string) error {
	contents, err := readFiles(ctx, args)
	if err != nil {
		return printError(stdio, err)
	}
	toks, err := scanner.ScanFiles(args, contents)
	if err != nil {
		return printError(stdio, err)
	}
	cmds := grouper.Group(toks)
	for c := cmds; c != nil; c = c.Next {
		fmt.Fprintln(stdio.Stdout, c.String())
	}
	return nil
}

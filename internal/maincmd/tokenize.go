package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/justinmgarrigus/jgpl/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	contents, err := readFiles(ctx, args)
	if err != nil {
		return printError(stdio, err)
	}
	toks, err := scanner.ScanFiles(args, contents)
	if err != nil {
		return printError(stdio, err)
	}
	for _, tok := range toks {
		fmt.Fprintln(stdio.Stdout, tok.String())
	}
	return nil
}

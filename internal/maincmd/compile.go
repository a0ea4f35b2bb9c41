package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/justinmgarrigus/jgpl/lang/grouper"
	"github.com/justinmgarrigus/jgpl/lang/reducer"
	"github.com/justinmgarrigus/jgpl/lang/scanner"
)

// outFile is the compiler's one persisted artifact: the emitted JGC text,
// written alongside whatever directory the tool is invoked from.
const outFile = "out.jgc"

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	code, err := CompileFiles(ctx, stdio.Stderr, args)
	if err != nil {
		return printError(stdio, err)
	}
	if err := os.WriteFile(outFile, []byte(code), 0o644); err != nil {
		return printError(stdio, fmt.Errorf("writing %s: %w", outFile, err))
	}
	fmt.Fprint(stdio.Stdout, code)
	return nil
}

// CompileFiles runs the full C1-C5 pipeline over files, in order, and
// returns the emitted JGC text. diag receives any "no valid reductions"
// diagnostics logged along the way (falls back to os.Stderr if nil).
func CompileFiles(ctx context.Context, diag io.Writer, files []string) (string, error) {
	contents, err := readFiles(ctx, files)
	if err != nil {
		return "", err
	}
	toks, err := scanner.ScanFiles(files, contents)
	if err != nil {
		return "", err
	}
	cmds := grouper.Group(toks)
	return reducer.Compile(cmds, diag)
}

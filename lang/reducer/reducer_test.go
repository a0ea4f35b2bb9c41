package reducer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justinmgarrigus/jgpl/lang/ast"
	"github.com/justinmgarrigus/jgpl/lang/grouper"
	"github.com/justinmgarrigus/jgpl/lang/scanner"
)

func compileSrc(t *testing.T, src string) string {
	t.Helper()
	toks, err := scanner.ScanAll([]byte(src))
	require.NoError(t, err)
	cmds := grouper.Group(toks)
	code, err := Compile(cmds, nil)
	require.NoError(t, err)
	return code
}

func TestCompileSimpleCall(t *testing.T) {
	src := "func print < value x >:\n\t~PRINT x\n" +
		"main:\n\tprint 5\n"
	code := compileSrc(t, src)
	require.Equal(t, "F1:\nPRINT x\nRETURN\nmain:\nASSIGN x, 5\nFUNC F1\n", code)
}

func TestCompileReturnStatement(t *testing.T) {
	src := "func double < int n >: int\n\treturn n\n" +
		"main:\n\t~PRINT 1\n"
	code := compileSrc(t, src)
	require.Contains(t, code, "F1:\n")
	require.Contains(t, code, "RETURN n\n")
	require.Contains(t, code, "main:\nPRINT 1\n")
}

func TestCompileCastRegistration(t *testing.T) {
	src := "func < int x >: bool\n\treturn x\n" +
		"main:\n\t~PRINT 1\n"
	code := compileSrc(t, src)
	require.Contains(t, code, "F1:\n")
}

func TestCompileBlockWrapsEnterExit(t *testing.T) {
	src := "func loopbody < value n >:\n\t~PRINT n\n" +
		"main:\n\tloopbody 1:\n\t\t~PRINT 2\n"
	code := compileSrc(t, src)
	require.Contains(t, code, "ENTERBLOCK")
	require.Contains(t, code, "EXITBLOCK")
}

func TestCompileNoMatchingProductionLogsAndSkips(t *testing.T) {
	src := "main:\n\tnosuchcall 1\n\t~PRINT 2\n"
	toks, err := scanner.ScanAll([]byte(src))
	require.NoError(t, err)
	cmds := grouper.Group(toks)

	var diag bytes.Buffer
	code, err := Compile(cmds, &diag)
	require.NoError(t, err)
	require.Contains(t, diag.String(), "ERROR: no valid reductions")
	require.Equal(t, "main:\nPRINT 2\n", code)
}

func TestProductionListIncludesCasts(t *testing.T) {
	reg := NewRegistry()
	reg.AddCast("int", "bool")
	intProd := &ast.Production{Name: "F1", ReturnType: "int", HasReturn: true}
	reg.AddProduction(intProd)
	require.Contains(t, reg.ProductionList("bool"), intProd)
	src := "func show < bool b >:\n\treturn b\n"
	toks, err := scanner.ScanAll([]byte(src))
	require.NoError(t, err)
	cmds := grouper.Group(toks)
	code, err := Compile(cmds, nil)
	require.NoError(t, err)
	require.NotEmpty(t, code)
}

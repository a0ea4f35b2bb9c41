package jgc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOperandLiteral(t *testing.T) {
	op := ParseOperand("42")
	require.Equal(t, OpLiteral, op.Kind)
	require.Equal(t, "42", op.Literal)
}

func TestParseOperandName(t *testing.T) {
	op := ParseOperand("x")
	require.Equal(t, OpName, op.Kind)
	require.Equal(t, "x", op.Name)
}

func TestParseOperandDeref(t *testing.T) {
	op := ParseOperand("@x")
	require.Equal(t, OpDeref, op.Kind)
	require.Equal(t, OpName, op.Inner.Kind)
	require.Equal(t, "x", op.Inner.Name)
}

func TestParseOperandDoubleDeref(t *testing.T) {
	op := ParseOperand("@@x")
	require.Equal(t, OpDeref, op.Kind)
	require.Equal(t, OpDeref, op.Inner.Kind)
	require.Equal(t, "x", op.Inner.Inner.Name)
	require.Equal(t, "@@x", op.String())
}

func TestParseOperandString(t *testing.T) {
	op := ParseOperand(`"hello"`)
	require.Equal(t, OpString, op.Kind)
	require.Equal(t, "hello", op.Literal)
	require.Equal(t, `"hello"`, op.String())
}

func TestParseOperandStringWithNewline(t *testing.T) {
	op := ParseOperand(`"a\nb"`)
	require.Equal(t, OpString, op.Kind)
	require.Equal(t, "a\nb", op.Literal)
	require.Equal(t, `"a\nb"`, op.String())
}

func TestParseOperandDerefString(t *testing.T) {
	op := ParseOperand(`@"q"`)
	require.Equal(t, OpDeref, op.Kind)
	require.Equal(t, OpString, op.Inner.Kind)
	require.Equal(t, "q", op.Inner.Literal)
}

func TestParseSimpleProgram(t *testing.T) {
	src := "main:\n" +
		"ASSIGN x, 1\n" +
		"PRINT x\n"
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, 0, prog.Functions["main"])
	require.Len(t, prog.Instructions, 2)
	require.Equal(t, "ASSIGN", prog.Instructions[0].Op)
	require.Equal(t, []string{"x", "1"}, prog.Instructions[0].Args)
}

func TestParseBlockBounds(t *testing.T) {
	src := "main:\n" +
		"BR cond\n" +
		"ENTERBLOCK\n" +
		"PRINT x\n" +
		"EXITBLOCK\n" +
		"PRINT done\n"
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 3)
	require.Equal(t, 1, prog.Instructions[0].ContentsStart)
	require.Equal(t, 2, prog.Instructions[0].ContentsEnd)
	require.Equal(t, -1, prog.Instructions[1].ContentsStart)
}

func TestParseLabel(t *testing.T) {
	src := "F1:\n" +
		"LABEL loop\n" +
		"PRINT x\n" +
		"BR loop\n"
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, 0, prog.Labels["F1"]["loop"])
	require.Len(t, prog.Instructions, 2)
}

func TestParseUnmatchedEnterblock(t *testing.T) {
	_, err := Parse("main:\nPRINT x\nENTERBLOCK\n")
	require.Error(t, err)
}

func TestParseUnmatchedExitblock(t *testing.T) {
	_, err := Parse("main:\nEXITBLOCK\n")
	require.Error(t, err)
}

func TestParseLabelOutsideFunction(t *testing.T) {
	_, err := Parse("LABEL loop\n")
	require.Error(t, err)
}

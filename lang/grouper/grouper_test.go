package grouper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justinmgarrigus/jgpl/lang/scanner"
)

func TestGroupFlatLines(t *testing.T) {
	toks, err := scanner.ScanAll([]byte("a b\nc d\n"))
	require.NoError(t, err)
	head := Group(toks)
	require.NotNil(t, head)
	require.Equal(t, "a b", head.String())
	require.NotNil(t, head.Next)
	require.Equal(t, "c d", head.Next.String())
	require.Nil(t, head.Next.Next)
}

func TestGroupEmptyInput(t *testing.T) {
	toks, err := scanner.ScanAll([]byte(""))
	require.NoError(t, err)
	head := Group(toks)
	require.Nil(t, head)
}

func TestGroupBlockFolding(t *testing.T) {
	toks, err := scanner.ScanAll([]byte("if cond:\n\tfoo\n\tbar\nbaz\n"))
	require.NoError(t, err)
	head := Group(toks)
	require.NotNil(t, head)
	require.Equal(t, "if cond\n--foo\n--bar", head.String()) // trailing ':' stripped
	require.NotNil(t, head.Contents)
	require.Equal(t, "foo", head.Contents.String())
	require.Equal(t, "bar", head.Contents.Next.String())
	require.Nil(t, head.Contents.Next.Next)
	require.NotNil(t, head.Next)
	require.Equal(t, "baz", head.Next.String())
}

func TestGroupFuncKeepsColon(t *testing.T) {
	toks, err := scanner.ScanAll([]byte("func < int x > add:\n\treturn x\n"))
	require.NoError(t, err)
	head := Group(toks)
	require.NotNil(t, head)
	require.Contains(t, head.String(), ":")
}

func TestGroupNestedBlocks(t *testing.T) {
	toks, err := scanner.ScanAll([]byte("outer:\n\tinner:\n\t\tdeep\n\tafter\n"))
	require.NoError(t, err)
	head := Group(toks)
	require.NotNil(t, head.Contents)
	require.Equal(t, "inner\n--deep", head.Contents.String())
	require.NotNil(t, head.Contents.Contents)
	require.Equal(t, "deep", head.Contents.Contents.String())
	require.Equal(t, "after", head.Contents.Next.String())
}

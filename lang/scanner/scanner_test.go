package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justinmgarrigus/jgpl/lang/token"
)

func scanKinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := ScanAll([]byte(src))
	require.NoError(t, err)
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestScanIdentifiersAndTerminals(t *testing.T) {
	toks, err := ScanAll([]byte("foo12(bar)"))
	require.NoError(t, err)
	require.Equal(t, []token.Token{
		{Kind: token.ID, Lexeme: "foo12", Line: 1},
		{Kind: token.TERMINAL, Lexeme: "(", Line: 1},
		{Kind: token.ID, Lexeme: "bar", Line: 1},
		{Kind: token.TERMINAL, Lexeme: ")", Line: 1},
		{Kind: token.NEWLINE, Line: 1},
		{Kind: token.EOF, Line: 1},
	}, toks)
}

func TestScanIndent(t *testing.T) {
	toks, err := ScanAll([]byte("a\n\t\tb\n"))
	require.NoError(t, err)
	require.Equal(t, token.INDENT, toks[2].Kind)
	require.Equal(t, 2, toks[2].Indent)
}

func TestScanString(t *testing.T) {
	toks, err := ScanAll([]byte(`"hello world"`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Lexeme)
}

func TestScanNumber(t *testing.T) {
	toks, err := ScanAll([]byte("12345"))
	require.NoError(t, err)
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, "12345", toks[0].Lexeme)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := ScanAll([]byte(`"hello`))
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
}

func TestScanTabAfterIdentifier(t *testing.T) {
	_, err := ScanAll([]byte("foo\tbar"))
	require.Error(t, err)
}

func TestScanLetterAfterNumber(t *testing.T) {
	_, err := ScanAll([]byte("123abc"))
	require.Error(t, err)
}

func TestScanAllEndsInNewlineBeforeEOF(t *testing.T) {
	kinds := scanKinds(t, "a")
	require.Equal(t, []token.Kind{token.ID, token.NEWLINE, token.EOF}, kinds)

	kinds = scanKinds(t, "a\n")
	require.Equal(t, []token.Kind{token.ID, token.NEWLINE, token.EOF}, kinds)
}

func TestScanFilesConcatenatesDroppingIntermediateEOF(t *testing.T) {
	contents := map[string][]byte{
		"a.jg": []byte("x\n"),
		"b.jg": []byte("y\n"),
	}
	toks, err := ScanFiles([]string{"a.jg", "b.jg"}, contents)
	require.NoError(t, err)

	eofCount := 0
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			eofCount++
		}
	}
	require.Equal(t, 1, eofCount)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestScanFilesUnknownFile(t *testing.T) {
	_, err := ScanFiles([]string{"missing.jg"}, map[string][]byte{})
	require.Error(t, err)
}

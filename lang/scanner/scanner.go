// Package scanner implements the JG lexer (C1): it produces a flat stream of
// token.Token values from source bytes. The scanner is an external
// collaborator of the hard core (spec.md §1) — the grouper and reducer only
// depend on the token alphabet it emits, not on its internals.
package scanner

import (
	"fmt"

	"github.com/justinmgarrigus/jgpl/lang/token"
)

// Error is a lex error: an illegal character sequence was found. Lexing
// aborts on the first Error, per spec.md §7 (lex errors are fatal).
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at line %d: %s", e.Line, e.Msg)
}

// Scanner tokenizes a single JG source buffer.
type Scanner struct {
	src  []byte
	off  int  // offset of the next unread byte
	line int  // current 1-based line number
	bol  bool // true while only tabs have been consumed on the current line
}

// Init prepares s to scan src from the beginning.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.off = 0
	s.line = 1
	s.bol = true
}

func (s *Scanner) peek() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func isLetter(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool  { return b >= '0' && b <= '9' }

// Scan returns the next token in the source, or an *Error if the source
// contains an illegal lexeme. At end of input it returns a token.EOF token.
func (s *Scanner) Scan() (token.Token, error) {
	for {
		b := s.peek()
		switch {
		case s.off >= len(s.src):
			return token.Token{Kind: token.EOF, Line: s.line}, nil

		case b == '\n':
			s.off++
			line := s.line
			s.line++
			s.bol = true
			return token.Token{Kind: token.NEWLINE, Line: line}, nil

		case b == '\r':
			s.off++ // normalize CRLF; no token emitted for the \r itself

		case b == '\t' && s.bol:
			return s.scanIndent(), nil

		case b == ' ' || b == '\t':
			s.off++ // insignificant whitespace outside of leading indent

		case b == '"':
			return s.scanString()

		case isLetter(b):
			return s.scanIdent()

		case isDigit(b):
			return s.scanNumber()

		default:
			s.off++
			s.bol = false
			return token.Token{Kind: token.TERMINAL, Lexeme: string(b), Line: s.line}, nil
		}
	}
}

func (s *Scanner) scanIndent() token.Token {
	start := s.off
	for s.peek() == '\t' {
		s.off++
	}
	n := s.off - start
	s.bol = false
	return token.Token{Kind: token.INDENT, Indent: n, Line: s.line}
}

func (s *Scanner) scanIdent() (token.Token, error) {
	start := s.off
	line := s.line
	for isLetter(s.peek()) || isDigit(s.peek()) {
		s.off++
	}
	s.bol = false
	if s.peek() == '\t' {
		return token.Token{}, &Error{Line: line, Msg: "tab character immediately following an identifier"}
	}
	return token.Token{Kind: token.ID, Lexeme: string(s.src[start:s.off]), Line: line}, nil
}

func (s *Scanner) scanNumber() (token.Token, error) {
	start := s.off
	line := s.line
	for isDigit(s.peek()) {
		s.off++
	}
	s.bol = false
	if isLetter(s.peek()) {
		return token.Token{}, &Error{Line: line, Msg: "identifier character immediately following a number literal"}
	}
	return token.Token{Kind: token.NUMBER, Lexeme: string(s.src[start:s.off]), Line: line}, nil
}

func (s *Scanner) scanString() (token.Token, error) {
	line := s.line
	s.off++ // opening quote
	start := s.off
	for {
		if s.off >= len(s.src) {
			return token.Token{}, &Error{Line: line, Msg: "unterminated string literal"}
		}
		b := s.src[s.off]
		if b == '"' {
			break
		}
		if b == '\n' {
			return token.Token{}, &Error{Line: line, Msg: "unterminated string literal"}
		}
		s.off++
	}
	lit := string(s.src[start:s.off])
	s.off++ // closing quote
	s.bol = false
	return token.Token{Kind: token.STRING, Lexeme: lit, Line: line}, nil
}

// ScanAll tokenizes src fully, always ending with a NEWLINE immediately
// before the EOF, matching the original lexer's guarantee that command
// extraction always terminates on a NEWLINE.
func ScanAll(src []byte) ([]token.Token, error) {
	var s Scanner
	s.Init(src)

	var toks []token.Token
	for {
		tok, err := s.Scan()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			if len(toks) == 0 || toks[len(toks)-1].Kind != token.NEWLINE {
				toks = append(toks, token.Token{Kind: token.NEWLINE, Line: tok.Line})
			}
			toks = append(toks, tok)
			break
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// ScanFiles tokenizes multiple source files, in order, as a single
// concatenated stream: commands never straddle a file boundary because each
// file is guaranteed to end on a NEWLINE before the next file's tokens begin.
func ScanFiles(order []string, contents map[string][]byte) ([]token.Token, error) {
	var all []token.Token
	for _, name := range order {
		src, ok := contents[name]
		if !ok {
			return nil, fmt.Errorf("scanner: unknown file %q", name)
		}
		toks, err := ScanAll(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(all) > 0 {
			all = all[:len(all)-1] // drop the previous file's EOF; only the last file's EOF survives
		}
		all = append(all, toks...)
	}
	return all, nil
}

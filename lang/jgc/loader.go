package jgc

import (
	"fmt"
	"regexp"
	"strings"
)

// Parse loads a JGC text program (C5's output) into a Program, resolving
// function boundaries, intra-function labels, and block nesting. It
// mirrors the teacher's own text-assembly loader (lang/compiler/asm.go): a
// deferred-error struct that walks the source a line at a time and reports
// only the first failure.
func Parse(text string) (*Program, error) {
	l := &loader{prog: &Program{
		Functions: map[string]int{},
		Labels:    map[string]map[string]int{},
	}}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		l.line(i+1, line)
		if l.err != nil {
			return nil, l.err
		}
	}
	if len(l.blockStack) != 0 {
		return nil, fmt.Errorf("jgc: %d unterminated ENTERBLOCK at end of program", len(l.blockStack))
	}
	return l.prog, nil
}

var rxFuncHeader = regexp.MustCompile(`^\w+:$`)

type loader struct {
	prog       *Program
	funcName   string
	blockStack []int
	err        error
}

func (l *loader) line(lineNo int, line string) {
	if l.err != nil {
		return
	}

	if rxFuncHeader.MatchString(line) {
		name := strings.TrimSuffix(line, ":")
		l.funcName = name
		l.prog.Functions[name] = len(l.prog.Instructions)
		l.prog.Labels[name] = map[string]int{}
		return
	}

	op, args := splitInstruction(line)
	switch op {
	case "LABEL":
		if l.funcName == "" {
			l.err = fmt.Errorf("jgc:%d: LABEL outside of a function", lineNo)
			return
		}
		if len(args) != 1 {
			l.err = fmt.Errorf("jgc:%d: LABEL requires exactly one argument", lineNo)
			return
		}
		l.prog.Labels[l.funcName][args[0]] = len(l.prog.Instructions)

	case "ENTERBLOCK":
		if len(l.prog.Instructions) == 0 {
			l.err = fmt.Errorf("jgc:%d: ENTERBLOCK with no preceding instruction", lineNo)
			return
		}
		l.blockStack = append(l.blockStack, len(l.prog.Instructions)-1)

	case "EXITBLOCK":
		if len(l.blockStack) == 0 {
			l.err = fmt.Errorf("jgc:%d: EXITBLOCK without a matching ENTERBLOCK", lineNo)
			return
		}
		idx := l.blockStack[len(l.blockStack)-1]
		l.blockStack = l.blockStack[:len(l.blockStack)-1]
		l.prog.Instructions[idx].ContentsStart = idx + 1
		l.prog.Instructions[idx].ContentsEnd = len(l.prog.Instructions)

	default:
		l.prog.Instructions = append(l.prog.Instructions, Instruction{
			Op:            op,
			Args:          args,
			Func:          l.funcName,
			Line:          lineNo,
			ContentsStart: -1,
			ContentsEnd:   -1,
		})
	}
}

func splitInstruction(line string) (op string, args []string) {
	parts := strings.SplitN(line, " ", 2)
	op = parts[0]
	if len(parts) == 1 {
		return op, nil
	}
	for _, a := range splitArgs(parts[1]) {
		args = append(args, strings.TrimSpace(a))
	}
	return op, args
}

// splitArgs splits a comma-separated argument list, ignoring commas that
// fall inside a double-quoted string literal.
func splitArgs(s string) []string {
	var out []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// Package machine implements C6: a register/variable-store interpreter for
// a loaded jgc.Program, grounded on the teacher's machine.Thread/Frame
// execution model but built around JGPL's call stack, block bookkeeping,
// and "@"-chased variable store rather than Lua's value/coroutine model.
package machine

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/justinmgarrigus/jgpl/lang/jgc"
)

// Machine is one loaded program plus its single, process-wide variable
// store: a fresh Machine is created per run, but the store and program it
// holds are exactly the shared state §5's execution model describes.
type Machine struct {
	Program *jgc.Program
	Store   *Store
}

// New returns a Machine ready to Run prog.
func New(prog *jgc.Program) *Machine {
	return &Machine{Program: prog, Store: NewStore()}
}

type exconEntry struct {
	resumePC int
}

// Run executes prog starting at the "main" function, using thread for I/O
// and ctx for cancellation. Most runtime troubles (unknown opcodes,
// unresolved labels, incomparable operands) are non-fatal: they are logged
// to thread.Stderr and execution continues, per the interpreter's
// diagnostics-not-exceptions failure model. Run returns an error for
// unrecoverable conditions (no main function, a bad "@"-chase or operand,
// a non-integer IINPUT line, call-stack underflow, a negative program
// counter, exceeding thread.MaxSteps, context cancellation) and nil when
// execution runs off the end of the program.
func (m *Machine) Run(ctx context.Context, thread *Thread) error {
	if thread == nil {
		thread = NewThread()
	}
	start, ok := m.Program.Functions["main"]
	if !ok {
		return fmt.Errorf("machine: program has no main function")
	}

	instructions := m.Program.Instructions
	blockBodyStart := map[int]int{} // contents_start -> contents_end, dormant until EXCON
	for _, in := range instructions {
		if in.ContentsEnd != -1 {
			blockBodyStart[in.ContentsStart] = in.ContentsEnd
		}
	}

	var callStack []frame
	pendingExcon := map[int][]exconEntry{}
	justEnteredBlock := false
	pc := start
	steps := 0
	stdinReader := thread.reader()

	for {
		if runCancelled(ctx) {
			return fmt.Errorf("machine: run cancelled")
		}
		if pc >= len(instructions) && len(pendingExcon[pc]) == 0 {
			return nil
		}
		if pc < 0 {
			return fmt.Errorf("machine: invalid program counter %d", pc)
		}
		if thread.MaxSteps > 0 {
			steps++
			if steps > thread.MaxSteps {
				return fmt.Errorf("machine: exceeded MaxSteps (%d)", thread.MaxSteps)
			}
		}

		if entries, ok := pendingExcon[pc]; ok && len(entries) > 0 {
			last := entries[len(entries)-1]
			entries = entries[:len(entries)-1]
			if len(entries) == 0 {
				delete(pendingExcon, pc)
			} else {
				pendingExcon[pc] = entries
			}
			pc = last.resumePC
			continue
		}

		if !justEnteredBlock {
			if end, ok := blockBodyStart[pc]; ok {
				pc = end
				continue
			}
		}
		justEnteredBlock = false

		instr := instructions[pc]
		nextPC := pc + 1

		switch instr.Op {
		case "FUNC":
			target, ok := m.Program.Functions[instr.Args[0]]
			if !ok {
				fmt.Fprintf(thread.errOut(), "machine:%d: call to undefined function %q, jumping to pc=0\n", instr.Line, instr.Args[0])
			}
			f := frame{ReturnPC: pc + 1, CallSite: pc}
			if len(instr.Args) > 1 && instr.Args[1] != "" {
				f.Dest = instr.Args[1]
				f.HasDest = true
			}
			callStack = append(callStack, f)
			nextPC = target

		case "RETURN":
			if len(callStack) == 0 {
				return fmt.Errorf("machine:%d: RETURN with an empty call stack", instr.Line)
			}
			top := callStack[len(callStack)-1]
			callStack = callStack[:len(callStack)-1]
			if len(instr.Args) > 0 && instr.Args[0] != "" && top.HasDest {
				op := instr.Operand(0)
				switch op.Kind {
				case jgc.OpLiteral:
					n, err := parseJGCInt(op.Literal)
					if err != nil {
						return fmt.Errorf("machine:%d: %w", instr.Line, err)
					}
					m.Store.Write(top.Dest, n, "int", true)
				case jgc.OpString:
					m.Store.Write(top.Dest, op.Literal, "string", true)
				default:
					srcName, err := m.Store.ChaseName(op)
					if err != nil {
						return fmt.Errorf("machine:%d: %w", instr.Line, err)
					}
					srcVar, err := m.Store.Get(srcName)
					if err != nil {
						return fmt.Errorf("machine:%d: %w", instr.Line, err)
					}
					m.Store.CopyInto(top.Dest, srcVar)
				}
			}
			nextPC = top.ReturnPC

		case "INSERT":
			name, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			m.Store.Declare(name, instr.Args[1])

		case "ASSIGN":
			name, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			val, err := m.Store.Chase(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			if len(instr.Args) > 2 && instr.Args[2] != "" {
				m.Store.Write(name, val, instr.Args[2], true)
			} else {
				m.Store.Write(name, val, "", false)
			}

		case "COPY":
			destName, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			srcName, err := m.Store.ChaseName(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			srcVar, err := m.Store.Get(srcName)
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			m.Store.Write(destName, srcVar.Value, "", false)

		case "IINPUT":
			name, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			line, err := stdinReader.ReadString('\n')
			if err != nil && err != io.EOF {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil {
				return fmt.Errorf("machine:%d: IINPUT expected an integer line: %w", instr.Line, err)
			}
			m.Store.Write(name, n, "int", true)

		case "IADD", "ISUB":
			destName, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			a, err := m.Store.ChaseInt(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			b, err := m.Store.ChaseInt(instr.Operand(2))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			result := a + b
			if instr.Op == "ISUB" {
				result = a - b
			}
			m.Store.Write(destName, result, "int", true)

		case "PRINT":
			v, err := m.Store.Chase(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			writeValue(thread.out(), v)

		case "GT", "LT", "EQ", "GE", "LE", "NE":
			destName, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			a, err := m.Store.Chase(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			b, err := m.Store.Chase(instr.Operand(2))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			result := compareValues(thread.errOut(), instr.Line, instr.Op, a, b)
			n := int64(0)
			if result {
				n = 1
			}
			m.Store.Write(destName, n, "bool", true)

		case "BR":
			target, ok := m.Program.Labels[instr.Func][instr.Args[0]]
			if !ok {
				fmt.Fprintf(thread.errOut(), "machine:%d: unknown label %q, jumping to pc=0\n", instr.Line, instr.Args[0])
			}
			nextPC = target

		case "BRGT", "BRLT", "BREQ", "BRGE", "BRLE", "BRNE":
			a, err := m.Store.Chase(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			b, err := m.Store.Chase(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			cmp := compareValues(thread.errOut(), instr.Line, strings.TrimPrefix(instr.Op, "BR"), a, b)
			if cmp {
				target, ok := m.Program.Labels[instr.Func][instr.Args[2]]
				if !ok {
					fmt.Fprintf(thread.errOut(), "machine:%d: unknown label %q, jumping to pc=0\n", instr.Line, instr.Args[2])
				}
				nextPC = target
			}

		case "EXCON":
			if len(callStack) == 0 {
				fmt.Fprintln(thread.errOut(), "EXCON: caller has no attached block")
				break
			}
			top := callStack[len(callStack)-1]
			callSite := instructions[top.CallSite]
			if callSite.ContentsEnd == -1 {
				fmt.Fprintln(thread.errOut(), "EXCON: caller has no attached block")
				break
			}
			pendingExcon[callSite.ContentsEnd] = append(pendingExcon[callSite.ContentsEnd], exconEntry{resumePC: pc + 1})
			nextPC = callSite.ContentsStart
			justEnteredBlock = true

		case "OBJECT":
			destName, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			destVar, err := m.Store.Get(destName)
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			cellName := m.Store.NextObjectName(destVar.Type)
			m.Store.Declare(cellName, destVar.Type)
			m.Store.Write(cellName, newObject(), "", false)
			m.Store.Write(destName, cellName, "", false)

		case "ATTRIBUTE":
			cell, err := m.resolveObject(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			key, err := m.Store.Chase(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			val, err := m.Store.Chase(instr.Operand(2))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			cell.attrs[fmt.Sprint(key)] = val

		case "RETRIEVE":
			destName, err := m.Store.ChaseName(instr.Operand(0))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			cell, err := m.resolveObject(instr.Operand(1))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			key, err := m.Store.Chase(instr.Operand(2))
			if err != nil {
				return fmt.Errorf("machine:%d: %w", instr.Line, err)
			}
			m.Store.Write(destName, cell.attrs[fmt.Sprint(key)], "", false)

		default:
			fmt.Fprintf(thread.errOut(), "machine:%d: unknown opcode %q, skipping\n", instr.Line, instr.Op)
		}

		pc = nextPC
	}
}

// resolveObject follows an "obj" operand to its heap cell: the operand
// names a variable whose value is itself the synthetic name OBJECT gave
// the cell.
func (m *Machine) resolveObject(op jgc.Operand) (*object, error) {
	objName, err := m.Store.ChaseName(op)
	if err != nil {
		return nil, err
	}
	objVar, err := m.Store.Get(objName)
	if err != nil {
		return nil, err
	}
	cellName, ok := objVar.Value.(string)
	if !ok {
		return nil, fmt.Errorf("%q does not hold an object reference", objName)
	}
	cellVar, err := m.Store.Get(cellName)
	if err != nil {
		return nil, err
	}
	cell, ok := cellVar.Value.(*object)
	if !ok {
		return nil, fmt.Errorf("%q is not an object cell", cellName)
	}
	return cell, nil
}

func writeValue(w io.Writer, v any) {
	switch t := v.(type) {
	case int64:
		fmt.Fprintf(w, "%d", t)
	case string:
		fmt.Fprint(w, t)
	case nil:
	default:
		fmt.Fprint(w, t)
	}
}

// compareValues evaluates a, op, b for the GT/LT/EQ/GE/LE/NE family. An
// unknown mnemonic or an incompatible pair of operand types is a
// diagnostic, not a fatal error: it is logged to w and the comparison
// yields false, per the interpreter's log-and-continue failure semantics.
func compareValues(w io.Writer, line int, op string, a, b any) bool {
	switch av := a.(type) {
	case int64:
		bv, ok := b.(int64)
		if !ok {
			fmt.Fprintf(w, "machine:%d: cannot compare int %v with %v, treating as false\n", line, a, b)
			return false
		}
		switch op {
		case "GT":
			return av > bv
		case "LT":
			return av < bv
		case "EQ":
			return av == bv
		case "GE":
			return av >= bv
		case "LE":
			return av <= bv
		case "NE":
			return av != bv
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			fmt.Fprintf(w, "machine:%d: cannot compare string %v with %v, treating as false\n", line, a, b)
			return false
		}
		switch op {
		case "GT":
			return av > bv
		case "LT":
			return av < bv
		case "EQ":
			return av == bv
		case "GE":
			return av >= bv
		case "LE":
			return av <= bv
		case "NE":
			return av != bv
		}
	}
	fmt.Fprintf(w, "machine:%d: unknown condition mnemonic %q, treating as false\n", line, op)
	return false
}


// Package vm provides the tape machine that executes decoded programs.
// It implements a strictly synchronous execution model:
// - a program decoded once at construction and never modified
// - a byte tape that grows to the right on demand
// - bracket matching by linear scan, checked only when a jump is taken
// - one blocking read or write per Input or Output instruction
package vm

import (
	"io"
	"log/slog"

	"github.com/zurustar/emobf/pkg/dialect"
	"github.com/zurustar/emobf/pkg/logger"
	"github.com/zurustar/emobf/pkg/opcode"
)

// Machine holds a program and its execution state.
// A Machine must not be used from more than one goroutine at a time.
type Machine struct {
	program opcode.Program
	tape    *Tape
	pc      int // program counter
	cursor  int // tape cursor

	steps    int64
	maxSteps int64

	halted bool
	err    error

	registry *dialect.Registry
	log      *slog.Logger
}

// Option is a functional option for configuring the Machine.
type Option func(*Machine)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// WithRegistry decodes and renders with reg instead of the built-in tables.
func WithRegistry(reg *dialect.Registry) Option {
	return func(m *Machine) {
		m.registry = reg
	}
}

// WithMaxSteps stops execution with a step limit error once more than n
// instructions have run. Zero or a negative value means no limit.
func WithMaxSteps(n int64) Option {
	return func(m *Machine) {
		m.maxSteps = n
	}
}

// New decodes source and returns a machine ready to run it.
// Unrecognized characters in source are comments.
func New(source string, opts ...Option) *Machine {
	m := &Machine{
		tape:     NewTape(),
		registry: dialect.Default(),
		log:      logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.program = m.registry.Decode(source)

	m.log.Debug("Program loaded", "instructions", len(m.program))
	return m
}

// Program returns a copy of the decoded program.
func (m *Machine) Program() opcode.Program {
	out := make(opcode.Program, len(m.program))
	copy(out, m.program)
	return out
}

// PC returns the program counter.
func (m *Machine) PC() int { return m.pc }

// Cursor returns the tape cursor.
func (m *Machine) Cursor() int { return m.cursor }

// Tape returns a copy of the materialized tape cells.
func (m *Machine) Tape() []byte { return m.tape.Bytes() }

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() int64 { return m.steps }

// Halted reports whether the machine has finished, successfully or not.
func (m *Machine) Halted() bool { return m.halted }

// Render returns the program in the alphabet selected by kind.
func (m *Machine) Render(kind dialect.Kind) string {
	return m.registry.Encode(m.program, kind)
}

// RenderClassic returns the program in classic ASCII.
func (m *Machine) RenderClassic() string {
	return m.registry.Encode(m.program, dialect.Classic)
}

// RenderHands returns the program in the hand gesture alphabet.
func (m *Machine) RenderHands() string {
	return m.registry.Encode(m.program, dialect.Hands)
}

// RenderRandom returns the program with a fresh random emoji per instruction.
func (m *Machine) RenderRandom() string {
	return m.registry.EncodeWith(m.program, dialect.Random, nil)
}

// Run executes the program until the program counter runs off the end or a
// fatal error occurs. Input bytes are read from in and output bytes written
// to out, one byte per instruction and without buffering.
//
// A machine that has halted stays halted: calling Run again returns the
// error it stopped with, or nil.
func (m *Machine) Run(in io.Reader, out io.Writer) error {
	if m.halted {
		return m.err
	}
	for {
		more, err := m.step(in, out)
		if err != nil {
			m.halt(err)
			return err
		}
		if !more {
			m.halt(nil)
			return nil
		}
	}
}

func (m *Machine) halt(err error) {
	m.halted = true
	m.err = err
	if err != nil {
		m.log.Debug("Program halted with error", "error", err, "pc", m.pc, "steps", m.steps, "tape", m.tape.Len(), "cell", m.tape.Cell(m.cursor))
		return
	}
	m.log.Debug("Program finished", "steps", m.steps, "tape", m.tape.Len(), "cell", m.tape.Cell(m.cursor))
}

// step executes one instruction. It returns false once the program counter
// has reached the end of the program.
func (m *Machine) step(in io.Reader, out io.Writer) (bool, error) {
	if m.pc >= len(m.program) {
		return false, nil
	}
	if m.maxSteps > 0 && m.steps >= m.maxSteps {
		return false, NewStepLimitError(m.pc, m.maxSteps)
	}
	m.steps++

	switch m.program[m.pc] {
	case opcode.MoveRight:
		m.cursor++

	case opcode.MoveLeft:
		if m.cursor == 0 {
			return false, NewUnderflowError(m.pc)
		}
		m.cursor--

	case opcode.Increment:
		*m.tape.at(m.cursor)++

	case opcode.Decrement:
		*m.tape.at(m.cursor)--

	case opcode.Output:
		cell := m.tape.at(m.cursor)
		n, err := out.Write([]byte{*cell})
		if err == nil && n != 1 {
			err = io.ErrShortWrite
		}
		if err != nil {
			return false, NewIOError(m.pc, err)
		}

	case opcode.Input:
		var buf [1]byte
		if _, err := io.ReadFull(in, buf[:]); err != nil {
			return false, NewIOError(m.pc, err)
		}
		*m.tape.at(m.cursor) = buf[0]

	case opcode.JumpIfZero:
		if *m.tape.at(m.cursor) == 0 {
			target, ok := m.matchForward(m.pc)
			if !ok {
				return false, NewMismatchedBracketError(m.pc)
			}
			m.pc = target
		}

	case opcode.JumpIfNonZero:
		if *m.tape.at(m.cursor) != 0 {
			target, ok := m.matchBackward(m.pc)
			if !ok {
				return false, NewMismatchedBracketError(m.pc)
			}
			m.pc = target
		}
	}

	m.pc++
	return m.pc < len(m.program), nil
}

// matchForward returns the index of the JumpIfNonZero closing the
// JumpIfZero at from.
func (m *Machine) matchForward(from int) (int, bool) {
	level := 0
	for i := from; i < len(m.program); i++ {
		switch m.program[i] {
		case opcode.JumpIfZero:
			level++
		case opcode.JumpIfNonZero:
			level--
			if level == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// matchBackward returns the index of the JumpIfZero opening the
// JumpIfNonZero at from. The caller's pc++ then lands on the first
// instruction of the loop body, so the zero test is not repeated.
func (m *Machine) matchBackward(from int) (int, bool) {
	level := 0
	for i := from; i >= 0; i-- {
		switch m.program[i] {
		case opcode.JumpIfNonZero:
			level++
		case opcode.JumpIfZero:
			level--
			if level == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

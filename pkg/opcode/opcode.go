// Package opcode defines the instruction set of the tape machine.
// This package is the foundation that both the dialect decoder and the VM depend on.
// The decoder produces Op sequences from source text, and the VM executes them.
package opcode

import (
	"strings"
	"unicode/utf8"
)

// Op is one of the eight canonical instructions.
// The zero value is MoveRight; Op values outside the declared range are invalid.
type Op uint8

const (
	// MoveRight advances the tape cursor by one cell.
	MoveRight Op = iota
	// MoveLeft moves the tape cursor back by one cell.
	// Moving left of the first cell is a runtime error.
	MoveLeft
	// Increment adds one to the current cell, wrapping at 256.
	Increment
	// Decrement subtracts one from the current cell, wrapping at 256.
	Decrement
	// Output writes the current cell as a single byte.
	Output
	// Input reads a single byte into the current cell.
	Input
	// JumpIfZero skips past the matching JumpIfNonZero when the current cell is zero.
	JumpIfZero
	// JumpIfNonZero returns to the body of the matching JumpIfZero when the current cell is non-zero.
	JumpIfNonZero
)

// Count is the number of canonical instructions.
const Count = 8

// All lists every instruction in canonical order.
var All = [Count]Op{
	MoveRight,
	MoveLeft,
	Increment,
	Decrement,
	Output,
	Input,
	JumpIfZero,
	JumpIfNonZero,
}

var classic = [Count]rune{'>', '<', '+', '-', '.', ',', '[', ']'}

var names = [Count]string{
	"MoveRight",
	"MoveLeft",
	"Increment",
	"Decrement",
	"Output",
	"Input",
	"JumpIfZero",
	"JumpIfNonZero",
}

// Valid reports whether op is one of the eight canonical instructions.
func (op Op) Valid() bool {
	return op < Count
}

// Classic returns the ASCII symbol of op, or utf8.RuneError for an invalid Op.
func (op Op) Classic() rune {
	if !op.Valid() {
		return utf8.RuneError
	}
	return classic[op]
}

// String returns the instruction name.
func (op Op) String() string {
	if !op.Valid() {
		return "Op(?)"
	}
	return names[op]
}

// Program is an ordered instruction sequence.
// A Program handed to the VM is never modified afterwards.
type Program []Op

// String renders the program in classic ASCII symbols.
func (p Program) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, op := range p {
		b.WriteRune(op.Classic())
	}
	return b.String()
}

// Brackets reports the number of JumpIfZero and JumpIfNonZero instructions in p.
func (p Program) Brackets() (opens, closes int) {
	for _, op := range p {
		switch op {
		case JumpIfZero:
			opens++
		case JumpIfNonZero:
			closes++
		}
	}
	return opens, closes
}

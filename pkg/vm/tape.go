package vm

// Tape is the machine's byte memory. It starts with a single zero cell,
// grows to the right on demand and never shrinks.
type Tape struct {
	cells []byte
}

// NewTape creates a tape holding one zero cell.
func NewTape() *Tape {
	return &Tape{cells: make([]byte, 1, 64)}
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cell returns the value at i. Cells that were never materialized read as zero.
func (t *Tape) Cell(i int) byte {
	if i < 0 || i >= len(t.cells) {
		return 0
	}
	return t.cells[i]
}

// ensure grows the tape with zero cells so that index i is addressable.
func (t *Tape) ensure(i int) {
	if i < len(t.cells) {
		return
	}
	if i < cap(t.cells) {
		t.cells = t.cells[:i+1]
		return
	}
	grown := make([]byte, i+1, 2*(i+1))
	copy(grown, t.cells)
	t.cells = grown
}

// at returns a pointer to cell i, growing the tape first if needed.
func (t *Tape) at(i int) *byte {
	t.ensure(i)
	return &t.cells[i]
}

// Bytes returns a copy of the materialized cells.
func (t *Tape) Bytes() []byte {
	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out
}

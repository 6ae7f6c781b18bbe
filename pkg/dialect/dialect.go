// Package dialect translates between source text and canonical instructions.
//
// Three alphabets are known: classic ASCII, the fixed hand-gesture alphabet and
// the themed emoji families used by the random encoder. Decoding accepts the
// union of all of them at once, so the symbol sets of different instructions
// must never overlap; NewRegistry enforces that when the tables are loaded.
package dialect

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zurustar/emobf/pkg/opcode"
)

// Kind selects the alphabet used when rendering a program.
type Kind int

const (
	// Classic renders one fixed ASCII character per instruction.
	Classic Kind = iota
	// Hands renders one fixed hand emoji per instruction.
	Hands
	// Random draws every symbol from the instruction's emoji family.
	Random
)

// Kinds lists every render selector.
var Kinds = []Kind{Classic, Hands, Random}

func (k Kind) String() string {
	switch k {
	case Classic:
		return "classic"
	case Hands:
		return "hands"
	case Random:
		return "emoji"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a dialect name. "emoji" and "random" both select Random.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classic":
		return Classic, nil
	case "hands":
		return Hands, nil
	case "emoji", "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("unknown dialect: %q (must be classic, hands or emoji)", name)
	}
}

// Symbols describes the surface symbols of one instruction within an alphabet.
type Symbols struct {
	// Family is a human readable theme name, empty for fixed alphabets.
	Family string
	// Render holds the symbols the encoder may emit. A single symbol makes
	// the instruction fixed; several make the encoder pick one at random.
	Render string
	// Accept holds symbols that decode to the instruction but are never emitted.
	Accept string
}

// Candidates returns the symbols the encoder may emit.
func (s Symbols) Candidates() []rune {
	return []rune(s.Render)
}

// Accepted returns every symbol that decodes to the instruction.
func (s Symbols) Accepted() []rune {
	return []rune(s.Render + s.Accept)
}

// Alphabet is the symbol table of one dialect, indexed by instruction.
type Alphabet struct {
	Name    string
	Symbols [opcode.Count]Symbols
}

// Fixed reports whether every instruction renders to exactly one symbol.
func (a *Alphabet) Fixed() bool {
	for _, s := range a.Symbols {
		if utf8.RuneCountInString(s.Render) != 1 {
			return false
		}
	}
	return true
}

// ConflictError reports a symbol that decodes to two different instructions.
type ConflictError struct {
	Symbol       rune
	First        opcode.Op
	FirstSource  string
	Second       opcode.Op
	SecondSource string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("symbol %q (%U) decodes to both %s (%s) and %s (%s)",
		e.Symbol, e.Symbol, e.First, e.FirstSource, e.Second, e.SecondSource)
}

type entry struct {
	op     opcode.Op
	source string
}

// Registry is the immutable combination of all alphabets.
// It is safe for concurrent use once built.
type Registry struct {
	alphabets map[Kind]*Alphabet
	decode    map[rune]opcode.Op
}

// NewRegistry builds a registry from the classic, hands and emoji alphabets.
// It fails if an alphabet has no render symbol for some instruction or if any
// symbol would decode to two different instructions.
func NewRegistry(classic, hands, emoji *Alphabet) (*Registry, error) {
	reg := &Registry{
		alphabets: map[Kind]*Alphabet{
			Classic: classic,
			Hands:   hands,
			Random:  emoji,
		},
		decode: make(map[rune]opcode.Op),
	}

	for _, kind := range []Kind{Classic, Hands} {
		if a := reg.alphabets[kind]; !a.Fixed() {
			return nil, fmt.Errorf("alphabet %s must render exactly one symbol per instruction", a.Name)
		}
	}

	seen := make(map[rune]entry)
	for _, kind := range Kinds {
		a := reg.alphabets[kind]
		for _, op := range opcode.All {
			s := a.Symbols[op]
			if s.Render == "" {
				return nil, fmt.Errorf("alphabet %s has no symbol for %s", a.Name, op)
			}
			for _, r := range s.Accepted() {
				if prev, ok := seen[r]; ok && prev.op != op {
					return nil, &ConflictError{
						Symbol:       r,
						First:        prev.op,
						FirstSource:  prev.source,
						Second:       op,
						SecondSource: a.Name,
					}
				}
				seen[r] = entry{op: op, source: a.Name}
				reg.decode[r] = op
			}
		}
	}

	return reg, nil
}

var defaultRegistry = mustDefault()

func mustDefault() *Registry {
	reg, err := NewRegistry(ClassicAlphabet(), HandsAlphabet(), EmojiAlphabet())
	if err != nil {
		panic(fmt.Sprintf("dialect: built-in tables are inconsistent: %v", err))
	}
	return reg
}

// Default returns the registry built from the built-in tables.
func Default() *Registry {
	return defaultRegistry
}

// Alphabet returns the alphabet used to render kind, or nil if kind is unknown.
func (reg *Registry) Alphabet(kind Kind) *Alphabet {
	return reg.alphabets[kind]
}

// Lookup returns the instruction a single symbol decodes to.
func (reg *Registry) Lookup(r rune) (opcode.Op, bool) {
	op, ok := reg.decode[r]
	return op, ok
}

// Accepted returns every symbol of every dialect that decodes to op.
func (reg *Registry) Accepted(op opcode.Op) []rune {
	var out []rune
	for _, kind := range Kinds {
		out = append(out, reg.alphabets[kind].Symbols[op].Accepted()...)
	}
	return out
}

// Validate checks that the accepted symbol sets of distinct instructions are
// pairwise disjoint across all alphabets and that every symbol the decoder
// knows is accounted for by some alphabet.
func (reg *Registry) Validate() error {
	var sets [opcode.Count]map[rune]bool
	total := 0
	for _, op := range opcode.All {
		sets[op] = make(map[rune]bool)
		for _, r := range reg.Accepted(op) {
			sets[op][r] = true
		}
		total += len(sets[op])
	}
	for i, a := range opcode.All {
		for _, b := range opcode.All[i+1:] {
			for r := range sets[a] {
				if sets[b][r] {
					return &ConflictError{Symbol: r, First: a, FirstSource: "registry", Second: b, SecondSource: "registry"}
				}
			}
		}
	}
	if total != len(reg.decode) {
		return fmt.Errorf("decode table has %d symbols, alphabets declare %d", len(reg.decode), total)
	}
	return nil
}

// Decode converts source text to a program. Characters that belong to no
// dialect are comments and are dropped; decoding never fails.
func (reg *Registry) Decode(src string) opcode.Program {
	prog := make(opcode.Program, 0, utf8.RuneCountInString(src))
	for _, r := range src {
		if op, ok := reg.decode[r]; ok {
			prog = append(prog, op)
		}
	}
	return prog
}

// Decode converts source text using the default registry.
func Decode(src string) opcode.Program {
	return defaultRegistry.Decode(src)
}

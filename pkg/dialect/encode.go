package dialect

import (
	"math/rand/v2"
	"strings"

	"github.com/zurustar/emobf/pkg/opcode"
)

// Encode renders p in the alphabet selected by kind, one symbol per
// instruction and no separators. Random draws from the global generator.
func (reg *Registry) Encode(p opcode.Program, kind Kind) string {
	return reg.EncodeWith(p, kind, nil)
}

// EncodeWith is Encode with an explicit random source for the Random kind.
// A nil r uses the auto-seeded global generator, so repeated calls differ.
func (reg *Registry) EncodeWith(p opcode.Program, kind Kind, r *rand.Rand) string {
	a := reg.alphabets[kind]
	if a == nil {
		a = reg.alphabets[Classic]
	}

	var candidates [opcode.Count][]rune
	for _, op := range opcode.All {
		candidates[op] = a.Symbols[op].Candidates()
	}

	var b strings.Builder
	b.Grow(len(p) * 4)
	for _, op := range p {
		set := candidates[op]
		if len(set) == 1 {
			b.WriteRune(set[0])
			continue
		}
		b.WriteRune(set[pick(r, len(set))])
	}
	return b.String()
}

func pick(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}

// EncodeClassic renders p in classic ASCII.
func EncodeClassic(p opcode.Program) string {
	return defaultRegistry.Encode(p, Classic)
}

// EncodeHands renders p with the hand gesture alphabet.
func EncodeHands(p opcode.Program) string {
	return defaultRegistry.Encode(p, Hands)
}

// EncodeRandom renders p with a fresh random pick from each instruction's
// emoji family. r may be nil.
func EncodeRandom(p opcode.Program, r *rand.Rand) string {
	return defaultRegistry.EncodeWith(p, Random, r)
}

package nucleotide

import (
	"fmt"
	"strings"
)

// Symbol is one nucleotide. The zero value is A.
type Symbol uint8

const (
	A Symbol = iota // 00
	C               // 01
	G               // 10
	T               // 11
)

// BitsPerSymbol is the width of a symbol code in bits.
const BitsPerSymbol = 2

// Count is the size of the alphabet.
const Count = 1 << BitsPerSymbol

// Code returns the 2-bit code of s.
func (s Symbol) Code() uint64 {
	return uint64(s) & (Count - 1)
}

// Byte returns the upper-case letter for s.
func (s Symbol) Byte() byte {
	return letters[s&(Count-1)]
}

// String returns the upper-case letter for s.
func (s Symbol) String() string {
	if s >= Count {
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
	return string(letters[s])
}

// Complement returns the Watson-Crick partner of s (A<->T, C<->G).
// With the chosen code assignment this is a bitwise NOT of the 2-bit code.
func (s Symbol) Complement() Symbol {
	return ^s & (Count - 1)
}

var letters = [Count]byte{'A', 'C', 'G', 'T'}

// CasePolicy decides which letter cases Parse accepts.
type CasePolicy uint8

const (
	// CaseSensitive accepts only A, C, G and T.
	CaseSensitive CasePolicy = iota
	// CaseInsensitive additionally accepts a, c, g and t.
	CaseInsensitive
)

func (p CasePolicy) String() string {
	switch p {
	case CaseSensitive:
		return "sensitive"
	case CaseInsensitive:
		return "insensitive"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// ParseCasePolicy parses "sensitive" or "insensitive" (case-insensitive, surrounding space ignored).
func ParseCasePolicy(s string) (CasePolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sensitive", "strict", "upper":
		return CaseSensitive, true
	case "insensitive", "any", "ignore":
		return CaseInsensitive, true
	default:
		return CaseSensitive, false
	}
}

// lookup tables: -1 marks an invalid byte.
var (
	upperTable [256]int8
	anyTable   [256]int8
)

func init() {
	for i := range upperTable {
		upperTable[i] = -1
		anyTable[i] = -1
	}
	for code, b := range letters {
		upperTable[b] = int8(code)
		anyTable[b] = int8(code)
		anyTable[b|0x20] = int8(code) // lower-case
	}
}

// Parse maps b to its Symbol under policy. ok is false for any byte outside the alphabet.
func Parse(b byte, policy CasePolicy) (Symbol, bool) {
	var v int8
	if policy == CaseInsensitive {
		v = anyTable[b]
	} else {
		v = upperTable[b]
	}
	if v < 0 {
		return 0, false
	}
	return Symbol(v), true
}

// Valid reports whether every byte of seq parses under policy.
func Valid(seq []byte, policy CasePolicy) bool {
	for _, b := range seq {
		if _, ok := Parse(b, policy); !ok {
			return false
		}
	}
	return true
}

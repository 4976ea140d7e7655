package nucleotide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolCodes(t *testing.T) {
	tests := []struct {
		sym  Symbol
		code uint64
		b    byte
	}{
		{A, 0b00, 'A'},
		{C, 0b01, 'C'},
		{G, 0b10, 'G'},
		{T, 0b11, 'T'},
	}

	seen := map[uint64]bool{}
	for _, tt := range tests {
		t.Run(tt.sym.String(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.sym.Code())
			assert.Equal(t, tt.b, tt.sym.Byte())
			assert.False(t, seen[tt.code], "codes must be distinct")
			seen[tt.code] = true
		})
	}
}

func TestComplement(t *testing.T) {
	assert.Equal(t, T, A.Complement())
	assert.Equal(t, A, T.Complement())
	assert.Equal(t, G, C.Complement())
	assert.Equal(t, C, G.Complement())
}

func TestParse(t *testing.T) {
	t.Run("Sensitive", func(t *testing.T) {
		for _, b := range []byte("ACGT") {
			s, ok := Parse(b, CaseSensitive)
			require.True(t, ok)
			assert.Equal(t, b, s.Byte())
		}
		for _, b := range []byte("acgtNn*- 9U") {
			_, ok := Parse(b, CaseSensitive)
			assert.False(t, ok, "byte %q", b)
		}
	})

	t.Run("Insensitive", func(t *testing.T) {
		for i, b := range []byte("acgt") {
			s, ok := Parse(b, CaseInsensitive)
			require.True(t, ok)
			assert.Equal(t, Symbol(i), s)
		}
		for _, b := range []byte("Nn*- 9Uu") {
			_, ok := Parse(b, CaseInsensitive)
			assert.False(t, ok, "byte %q", b)
		}
	})
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte("GATTACA"), CaseSensitive))
	assert.False(t, Valid([]byte("GATTaCA"), CaseSensitive))
	assert.True(t, Valid([]byte("GATTaCA"), CaseInsensitive))
	assert.False(t, Valid([]byte("GATNACA"), CaseInsensitive))
}

func TestCasePolicy(t *testing.T) {
	assert.Equal(t, "sensitive", CaseSensitive.String())
	assert.Equal(t, "insensitive", CaseInsensitive.String())
	assert.Equal(t, "Unknown(9)", CasePolicy(9).String())

	p, ok := ParseCasePolicy(" Insensitive ")
	assert.True(t, ok)
	assert.Equal(t, CaseInsensitive, p)

	_, ok = ParseCasePolicy("maybe")
	assert.False(t, ok)
}

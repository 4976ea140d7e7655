package packed

import (
	"encoding/binary"
	"fmt"
)

// AppendBinary appends the wire form of s to b: uvarint(length) followed by the words in
// little-endian order.
func (s Sequence) AppendBinary(b []byte) ([]byte, error) {
	b = binary.AppendUvarint(b, uint64(s.length))
	for _, w := range s.words {
		b = binary.LittleEndian.AppendUint64(b, w)
	}
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s Sequence) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, binary.MaxVarintLen64+s.SizeBytes()))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// The input must contain exactly one sequence.
func (s *Sequence) UnmarshalBinary(data []byte) error {
	seq, n, err := DecodeBinary(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(data)-n)
	}
	*s = seq
	return nil
}

// DecodeBinary decodes one sequence from the front of data and returns the bytes consumed.
func DecodeBinary(data []byte) (Sequence, int, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return Sequence{}, 0, fmt.Errorf("%w: bad length prefix", ErrMalformed)
	}
	if length == 0 || length > uint64(len(data))*SymbolsPerWord {
		return Sequence{}, 0, fmt.Errorf("%w: length %d", ErrMalformed, length)
	}

	nwords := WordsFor(int(length))
	end := n + nwords*8
	if end > len(data) {
		return Sequence{}, 0, fmt.Errorf("%w: truncated words", ErrMalformed)
	}

	words := make([]uint64, nwords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[n+i*8:])
	}

	seq, err := FromWords(int(length), words)
	if err != nil {
		return Sequence{}, 0, err
	}
	return seq, end, nil
}

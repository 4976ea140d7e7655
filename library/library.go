package library

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hammy/distance"
	"github.com/hupe1980/hammy/packed"
)

// Library is a named, ordered collection of equal-length sequences with unique IDs.
//
// Add is not safe for concurrent use. Once populated, a Library may be read concurrently.
type Library struct {
	name   string
	length int
	ids    []string
	seqs   []packed.Sequence
	index  map[string]int
}

// New creates an empty library whose sequences all have length symbols.
func New(name string, length int) (*Library, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if length <= 0 {
		return nil, packed.ErrEmptyInput
	}
	if uint64(length) > MaxSeqLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidLength, length, uint64(MaxSeqLen))
	}
	return &Library{
		name:   name,
		length: length,
		index:  make(map[string]int),
	}, nil
}

// validName accepts names made of ASCII letters, digits, '.', '_' and '-'.
func validName(name string) bool {
	if name == "" || len(name) > 128 || name[0] == '.' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// Name returns the library name.
func (l *Library) Name() string { return l.name }

// SeqLen returns the number of symbols in every sequence.
func (l *Library) SeqLen() int { return l.length }

// Len returns the number of sequences.
func (l *Library) Len() int { return len(l.seqs) }

// Add appends seq under id.
func (l *Library) Add(id string, seq packed.Sequence) error {
	if id == "" {
		return ErrInvalidID
	}
	if seq.Len() != l.length {
		return &distance.LengthMismatchError{A: l.length, B: seq.Len()}
	}
	if _, ok := l.index[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	l.index[id] = len(l.seqs)
	l.ids = append(l.ids, id)
	l.seqs = append(l.seqs, seq)
	return nil
}

// AddString encodes raw and adds it under id.
func (l *Library) AddString(id, raw string, optFns ...packed.Option) error {
	seq, err := packed.EncodeString(raw, optFns...)
	if err != nil {
		return fmt.Errorf("library: id %q: %w", id, err)
	}
	return l.Add(id, seq)
}

// At returns the ID and sequence at position i. It panics if i is out of range.
func (l *Library) At(i int) (string, packed.Sequence) {
	return l.ids[i], l.seqs[i]
}

// Lookup returns the sequence stored under id.
func (l *Library) Lookup(id string) (packed.Sequence, bool) {
	i, ok := l.index[id]
	if !ok {
		return packed.Sequence{}, false
	}
	return l.seqs[i], true
}

// IDs returns a copy of the IDs in insertion order.
func (l *Library) IDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// Sequences returns the sequences in insertion order.
// The slice is a copy; the sequences share storage with the library.
func (l *Library) Sequences() []packed.Sequence {
	out := make([]packed.Sequence, len(l.seqs))
	copy(out, l.seqs)
	return out
}

// Filter returns a new library with the entries whose positions are set in bm.
// Positions beyond Len are ignored.
func (l *Library) Filter(bm *roaring.Bitmap) *Library {
	out := &Library{
		name:   l.name,
		length: l.length,
		index:  make(map[string]int),
	}
	if bm == nil {
		return out
	}
	it := bm.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= len(l.seqs) {
			break
		}
		out.index[l.ids[i]] = len(out.seqs)
		out.ids = append(out.ids, l.ids[i])
		out.seqs = append(out.seqs, l.seqs[i])
	}
	return out
}

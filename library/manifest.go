package library

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hupe1980/hammy/codec"
)

const (
	manifestVersion = 1
	manifestPrefix  = "manifests/"
	segmentPrefix   = "segments/"
)

// Manifest lists the live segment of every library in a store.
type Manifest struct {
	Version   int     `json:"version"`
	ID        uint64  `json:"id"`
	Libraries []Entry `json:"libraries"`
}

// Entry describes one saved library.
type Entry struct {
	Name        string `json:"name"`
	SeqLen      int    `json:"seq_len"`
	Count       int    `json:"count"`
	Segment     string `json:"segment"`
	Compression string `json:"compression"`
	Size        int64  `json:"size"`
	Checksum    uint32 `json:"checksum"`
}

// Lookup returns the entry for the named library.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	i, ok := m.find(name)
	if !ok {
		return Entry{}, false
	}
	return m.Libraries[i], true
}

// Names returns the library names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Libraries))
	for i, e := range m.Libraries {
		names[i] = e.Name
	}
	return names
}

func (m *Manifest) find(name string) (int, bool) {
	i := sort.Search(len(m.Libraries), func(i int) bool { return m.Libraries[i].Name >= name })
	return i, i < len(m.Libraries) && m.Libraries[i].Name == name
}

// with returns a copy of m with e inserted or replaced.
func (m *Manifest) with(e Entry) *Manifest {
	next := &Manifest{
		Version:   manifestVersion,
		ID:        m.ID,
		Libraries: slices.Clone(m.Libraries),
	}
	i, ok := next.find(e.Name)
	if ok {
		next.Libraries[i] = e
	} else {
		next.Libraries = slices.Insert(next.Libraries, i, e)
	}
	return next
}

// Blob names carry the manifest id for ordering and a per-save token so that concurrent
// writers never share a name.
func manifestName(id uint64, token string) string {
	return fmt.Sprintf("%sMANIFEST-%06d-%s", manifestPrefix, id, token)
}

func segmentName(library string, id uint64, token string) string {
	return fmt.Sprintf("%s%s-%06d-%s.hmy", segmentPrefix, library, id, token)
}

func encodeManifest(c codec.Codec, m *Manifest) ([]byte, error) {
	return codec.Encode(c, m)
}

func decodeManifest(blob string, data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := codec.Decode(data, &m); err != nil {
		return nil, corrupt(blob, "undecodable manifest", err)
	}
	if m.Version != manifestVersion {
		return nil, corrupt(blob, fmt.Sprintf("unsupported manifest version %d", m.Version), nil)
	}
	if !slices.IsSortedFunc(m.Libraries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) }) {
		return nil, corrupt(blob, "libraries not sorted", nil)
	}
	return &m, nil
}

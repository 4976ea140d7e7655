package library

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/hupe1980/hammy/packed"
	"github.com/klauspost/crc32"
)

const (
	segmentMagic      = "HMY1"
	segmentVersion    = 1
	segmentHeaderSize = len(segmentMagic) + 2
	checksumSize      = 4

	// MaxSeqLen is the longest sequence a library holds. Positions must fit a uint32.
	MaxSeqLen = math.MaxUint32
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func checksum(b []byte) uint32 {
	return crc32.Checksum(b, castagnoli)
}

// encodeSegment serializes l into an HMY1 segment.
func encodeSegment(l *Library, c Compression) ([]byte, error) {
	wordsPerSeq := packed.WordsFor(l.length)

	buf := make([]byte, 0, segmentHeaderSize+64+len(l.ids)*16)
	buf = append(buf, segmentMagic...)
	buf = append(buf, segmentVersion, byte(c))
	buf = binary.AppendUvarint(buf, uint64(l.length))
	buf = binary.AppendUvarint(buf, uint64(len(l.seqs)))
	buf = appendString(buf, l.name)
	for _, id := range l.ids {
		buf = appendString(buf, id)
	}

	payload := make([]byte, 0, len(l.seqs)*wordsPerSeq*8)
	for _, s := range l.seqs {
		for _, w := range s.RawWords() {
			payload = binary.LittleEndian.AppendUint64(payload, w)
		}
	}

	buf, err := appendBlock(buf, payload, c)
	if err != nil {
		return nil, err
	}
	return binary.LittleEndian.AppendUint32(buf, checksum(buf)), nil
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// decodeSegment parses an HMY1 segment. blob names the source in errors.
func decodeSegment(blob string, data []byte) (*Library, Compression, error) {
	if len(data) < segmentHeaderSize+checksumSize {
		return nil, 0, corrupt(blob, "truncated segment", nil)
	}
	body := data[:len(data)-checksumSize]
	if got, want := checksum(body), binary.LittleEndian.Uint32(data[len(body):]); got != want {
		return nil, 0, corrupt(blob, "checksum mismatch", nil)
	}
	if string(body[:len(segmentMagic)]) != segmentMagic {
		return nil, 0, corrupt(blob, "bad magic", nil)
	}
	if v := body[len(segmentMagic)]; v != segmentVersion {
		return nil, 0, corrupt(blob, "unsupported segment version", nil)
	}
	c := Compression(body[len(segmentMagic)+1])
	if !c.valid() {
		return nil, 0, corrupt(blob, "unknown compression", nil)
	}

	r := &segmentReader{buf: body[segmentHeaderSize:]}
	length := r.uvarint()
	count := r.uvarint()
	name := r.string()
	if r.err != nil {
		return nil, 0, corrupt(blob, "bad header", r.err)
	}
	if length == 0 || length > MaxSeqLen || length > math.MaxInt {
		return nil, 0, corrupt(blob, "bad sequence length", nil)
	}
	// Every ID takes at least one byte.
	if count > uint64(len(r.buf)) {
		return nil, 0, corrupt(blob, "bad sequence count", nil)
	}

	lib, err := New(name, int(length))
	if err != nil {
		return nil, 0, corrupt(blob, "bad name", err)
	}

	ids := make([]string, count)
	for i := range ids {
		ids[i] = r.string()
	}
	if r.err != nil {
		return nil, 0, corrupt(blob, "bad id table", r.err)
	}

	wordsPerSeq := packed.WordsFor(lib.length)
	if count > 0 && uint64(wordsPerSeq) > math.MaxInt/8/count {
		return nil, 0, corrupt(blob, "payload too large", nil)
	}
	payload, err := readBlock(r.buf, c, int(count)*wordsPerSeq*8)
	if err != nil {
		return nil, 0, corrupt(blob, "bad payload", err)
	}

	words := make([]uint64, wordsPerSeq)
	for i, id := range ids {
		off := i * wordsPerSeq * 8
		for j := range words {
			words[j] = binary.LittleEndian.Uint64(payload[off+j*8:])
		}
		seq, err := packed.FromWords(lib.length, words)
		if err != nil {
			return nil, 0, corrupt(blob, "bad sequence "+id, err)
		}
		if err := lib.Add(id, seq); err != nil {
			return nil, 0, corrupt(blob, "bad id table", err)
		}
	}
	return lib, c, nil
}

var errShortBuffer = errors.New("short buffer")

type segmentReader struct {
	buf []byte
	err error
}

func (r *segmentReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		r.err = errShortBuffer
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *segmentReader) string() string {
	n := r.uvarint()
	if r.err != nil {
		return ""
	}
	if n > uint64(len(r.buf)) {
		r.err = errShortBuffer
		return ""
	}
	s := string(r.buf[:n])
	r.buf = r.buf[n:]
	return s
}

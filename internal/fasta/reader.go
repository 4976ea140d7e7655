package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Record is one named sequence.
type Record struct {
	ID  string
	Seq []byte
}

type layout uint8

const (
	layoutUnknown layout = iota
	layoutFASTA
	layoutTable
)

// Reader yields records from FASTA or table input.
type Reader struct {
	r      *bufio.Reader
	layout layout
	line   int

	// pending FASTA header read while finishing the previous record
	header []byte
	done   bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next record, or io.EOF when the input is exhausted.
// The returned Seq is owned by the caller.
func (r *Reader) Next() (Record, error) {
	for {
		if r.header != nil {
			return r.fastaRecord()
		}
		line, err := r.readLine()
		if err != nil {
			return Record{}, err
		}
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}

		if r.layout == layoutUnknown {
			if trimmed[0] == '>' {
				r.layout = layoutFASTA
			} else {
				r.layout = layoutTable
			}
		}

		if r.layout == layoutFASTA {
			// Only the first header is seen here; fastaRecord consumes the rest.
			r.header = bytes.Clone(trimmed)
			continue
		}
		switch trimmed[0] {
		case '#':
			continue
		case '>':
			return Record{}, fmt.Errorf("fasta: line %d: FASTA header in table input", r.line)
		}
		return r.tableRecord(trimmed)
	}
}

func (r *Reader) tableRecord(line []byte) (Record, error) {
	fields := bytes.Fields(line)
	switch len(fields) {
	case 1:
		return Record{ID: strconv.Itoa(r.line), Seq: bytes.Clone(fields[0])}, nil
	case 2:
		return Record{ID: string(fields[0]), Seq: bytes.Clone(fields[1])}, nil
	default:
		return Record{}, fmt.Errorf("fasta: line %d: expected \"ID SEQ\" or \"SEQ\", got %d fields", r.line, len(fields))
	}
}

func (r *Reader) fastaRecord() (Record, error) {
	fields := bytes.Fields(r.header[1:])
	if len(fields) == 0 {
		return Record{}, fmt.Errorf("fasta: line %d: empty header", r.line)
	}
	rec := Record{ID: string(fields[0])}
	r.header = nil

	for {
		line, err := r.readLine()
		if err == io.EOF {
			return rec, nil
		}
		if err != nil {
			return Record{}, err
		}
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 && trimmed[0] == '>' {
			r.header = bytes.Clone(trimmed)
			return rec, nil
		}
		rec.Seq = append(rec.Seq, trimmed...)
	}
}

// readLine returns the next line without its terminator. The slice is only valid until the
// next call.
func (r *Reader) readLine() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}
	line, err := r.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Long sequence line: line aliases the bufio buffer, so copy it before reading on.
		head := bytes.Clone(line)
		var rest []byte
		rest, err = r.r.ReadBytes('\n')
		line = append(head, rest...)
	}
	switch {
	case err == io.EOF:
		r.done = true
		if len(line) == 0 {
			return nil, io.EOF
		}
	case err != nil:
		return nil, err
	}
	r.line++
	return bytes.TrimRight(line, "\r\n"), nil
}

// ReadAll returns every record of r.
func ReadAll(rd io.Reader) ([]Record, error) {
	r := NewReader(rd)
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// ReadFile opens path with Open and returns every record.
func ReadFile(path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return ReadAll(rc)
}

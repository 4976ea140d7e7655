package fasta

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// multiReadCloser closes every closer in order when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path for reading, decompressing it when needed. "-" is stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return Decompress(os.Stdin, "", io.NopCloser(os.Stdin))
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := Decompress(fh, path, fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return rc, nil
}

// Decompress wraps r in a gzip or zstd reader when the name suffix or the leading magic bytes
// call for it. closer is closed together with the returned reader.
func Decompress(r io.Reader, name string, closer io.Closer) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	sig, _ := br.Peek(len(zstdMagic))

	switch {
	case strings.HasSuffix(name, ".gz") || bytes.HasPrefix(sig, gzipMagic):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	case strings.HasSuffix(name, ".zst") || bytes.HasPrefix(sig, zstdMagic):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), closer}}, nil
	default:
		return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
	}
}

// Package cli implements the hammy command line.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hupe1980/hammy"
	"github.com/hupe1980/hammy/blobstore"
	"github.com/hupe1980/hammy/distance"
	"github.com/hupe1980/hammy/internal/fasta"
	"github.com/hupe1980/hammy/library"
	"github.com/hupe1980/hammy/nucleotide"
	"github.com/hupe1980/hammy/packed"
	"github.com/hupe1980/hammy/resource"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `usage: hammy <command> [flags] [args]

commands:
  dist     Hamming distance between two sequences
  matrix   all-pairs distance matrix of a sequence file
  pack     store a sequence file as a library
  query    find library entries close to one or more sequences
  info     show the popcount kernel, or the libraries in a store

Run "hammy <command> -h" for command flags.
`

// usageError marks errors caused by bad arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "dist":
		err = runDist(ctx, rest, stdout, stderr)
	case "matrix":
		err = runMatrix(ctx, rest, stdout, stderr)
	case "pack":
		err = runPack(ctx, rest, stdout, stderr)
	case "query":
		err = runQuery(ctx, rest, stdout, stderr)
	case "info":
		err = runInfo(ctx, rest, stdout, stderr)
	case "help", "-h", "-help", "--help":
		_, _ = fmt.Fprint(stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(stderr, "hammy: unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}

	var ue usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, &ue):
		_, _ = fmt.Fprintf(stderr, "hammy %s: %v\n", cmd, err)
		return exitUsage
	default:
		_, _ = fmt.Fprintf(stderr, "hammy %s: %v\n", cmd, err)
		return exitFailure
	}
}

// commonFlags are shared by every command.
type commonFlags struct {
	insensitive bool
	verbose     bool
	concurrency int
	memLimit    int64
	ioLimit     int64
}

func newFlagSet(name string, stderr io.Writer, c *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("hammy "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&c.insensitive, "i", false, "accept lowercase nucleotides")
	fs.BoolVar(&c.verbose, "v", false, "log debug output to stderr")
	fs.IntVar(&c.concurrency, "c", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.Int64Var(&c.memLimit, "mem-limit", 0, "memory budget for results in bytes (0 = unlimited)")
	fs.Int64Var(&c.ioLimit, "io-limit", 0, "store transfer limit in bytes/s (0 = unlimited)")
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{msg: err.Error()}
	}
	return nil
}

func (c *commonFlags) policy() nucleotide.CasePolicy {
	if c.insensitive {
		return nucleotide.CaseInsensitive
	}
	return nucleotide.CaseSensitive
}

func (c *commonFlags) engine(stderr io.Writer, extra ...hammy.Option) *hammy.Hammy {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := hammy.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []hammy.Option{
		hammy.WithCasePolicy(c.policy()),
		hammy.WithConcurrency(c.concurrency),
		hammy.WithLogger(logger),
	}
	if c.memLimit > 0 || c.ioLimit > 0 {
		opts = append(opts, hammy.WithResourceController(resource.NewController(resource.Config{
			MemoryLimitBytes:   c.memLimit,
			MaxConcurrentJobs:  1,
			IOLimitBytesPerSec: c.ioLimit,
		})))
	}
	return hammy.New(append(opts, extra...)...)
}

func runDist(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c commonFlags
	fs := newFlagSet("dist", stderr, &c)
	naive := fs.Bool("naive", false, "compare bytes as-is without packing")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usagef("expected 2 sequences, got %d", fs.NArg())
	}
	a, b := []byte(fs.Arg(0)), []byte(fs.Arg(1))

	var (
		d   int
		err error
	)
	if *naive {
		if c.insensitive {
			a, b = bytes.ToUpper(a), bytes.ToUpper(b)
		}
		d, err = distance.Naive(a, b)
	} else {
		d, err = c.engine(stderr).Compare(ctx, a, b)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, d)
	return err
}

// readSequences reads path and encodes every record with h.
func readSequences(ctx context.Context, h *hammy.Hammy, path string) ([]string, []packed.Sequence, error) {
	recs, err := fasta.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(recs))
	seqs := make([]packed.Sequence, len(recs))
	for i, r := range recs {
		s, err := h.Encode(ctx, r.Seq)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: record %s: %w", path, r.ID, err)
		}
		ids[i], seqs[i] = r.ID, s
	}
	return ids, seqs, nil
}

func runMatrix(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c commonFlags
	fs := newFlagSet("matrix", stderr, &c)
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("expected 1 input file, got %d", fs.NArg())
	}

	h := c.engine(stderr)
	ids, seqs, err := readSequences(ctx, h, fs.Arg(0))
	if err != nil {
		return err
	}
	m, err := h.Matrix(ctx, seqs)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout)
	_, _ = fmt.Fprintf(w, "\t%s\n", strings.Join(ids, "\t"))
	for i, row := range m {
		_, _ = w.WriteString(ids[i])
		for _, d := range row {
			_, _ = fmt.Fprintf(w, "\t%d", d)
		}
		_ = w.WriteByte('\n')
	}
	return w.Flush()
}

// storeFlags select and open a blob store.
type storeFlags struct {
	uri      string
	ddbTable string
}

func (s *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.uri, "store", "", "store: path, file://, s3://bucket/prefix, minio://host/bucket/prefix")
	fs.StringVar(&s.ddbTable, "ddb-table", "", "DynamoDB table for atomic commits (s3 stores only)")
}

func (s *storeFlags) open(ctx context.Context) (blobstore.BlobStore, error) {
	su, err := parseStoreURI(s.uri)
	if err != nil {
		return nil, usageError{msg: err.Error()}
	}
	return openStore(ctx, su, s.ddbTable)
}

func runPack(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		c  commonFlags
		sf storeFlags
	)
	fs := newFlagSet("pack", stderr, &c)
	sf.register(fs)
	name := fs.String("name", "", "library name (default: input file name without extensions)")
	compression := fs.String("compression", "lz4", "segment compression: none, lz4 or zstd")
	prune := fs.Bool("prune", false, "delete segments and manifests no longer referenced")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("expected 1 input file, got %d", fs.NArg())
	}
	comp, ok := library.ParseCompression(*compression)
	if !ok {
		return usagef("unknown compression %q", *compression)
	}
	if *name == "" {
		*name = baseName(fs.Arg(0))
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}

	h := c.engine(stderr, hammy.WithCompression(comp))
	ids, seqs, err := readSequences(ctx, h, fs.Arg(0))
	if err != nil {
		return err
	}
	if len(seqs) == 0 {
		return fmt.Errorf("%s: no sequences", fs.Arg(0))
	}

	lib, err := library.New(*name, seqs[0].Len())
	if err != nil {
		return err
	}
	for i, s := range seqs {
		if err := lib.Add(ids[i], s); err != nil {
			return fmt.Errorf("%s: record %s: %w", fs.Arg(0), ids[i], err)
		}
	}

	entry, err := h.Save(ctx, store, lib)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "saved %s: %d sequences of length %d -> %s (%d bytes, %s)\n",
		entry.Name, entry.Count, entry.SeqLen, entry.Segment, entry.Size, entry.Compression)

	if *prune {
		deleted, err := library.Prune(ctx, store)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "pruned %d blobs\n", len(deleted))
	}
	return nil
}

// baseName strips the directory and every extension: "dir/panel.fa.gz" -> "panel".
func baseName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func runQuery(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		c  commonFlags
		sf storeFlags
	)
	fs := newFlagSet("query", stderr, &c)
	sf.register(fs)
	name := fs.String("name", "", "library to search (default: all libraries)")
	maxDist := fs.Int("max", 1, "maximum Hamming distance")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("expected at least 1 query sequence")
	}
	if *maxDist < 0 {
		return usagef("-max must be >= 0")
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}
	h := c.engine(stderr)

	var libs []*library.Library
	if *name != "" {
		lib, err := h.Load(ctx, store, *name)
		if err != nil {
			return err
		}
		libs = append(libs, lib)
	} else {
		libs, err = h.LoadAll(ctx, store)
		if err != nil {
			return err
		}
	}

	w := bufio.NewWriter(stdout)
	for _, raw := range fs.Args() {
		q, err := h.EncodeString(ctx, raw)
		if err != nil {
			return fmt.Errorf("query %q: %w", raw, err)
		}
		for _, lib := range libs {
			if lib.SeqLen() != q.Len() {
				if *name != "" {
					return fmt.Errorf("query %q: %w", raw, &distance.LengthMismatchError{A: q.Len(), B: lib.SeqLen()})
				}
				continue
			}
			matches, err := h.Search(ctx, lib, q, *maxDist)
			if err != nil {
				return err
			}
			for _, m := range matches {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", raw, lib.Name(), m.ID, m.Distance)
			}
		}
	}
	return w.Flush()
}

func runInfo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		c  commonFlags
		sf storeFlags
	)
	fs := newFlagSet("info", stderr, &c)
	sf.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	caps := c.engine(stderr).Capabilities()
	_, _ = fmt.Fprintf(stdout, "kernel:\t%s (hardware available: %t, overridden: %t)\n", caps.Kernel, caps.Hardware, caps.Overridden)
	_, _ = fmt.Fprintf(stdout, "layout:\t%d bits/symbol, %d symbols per %d-bit word\n", caps.BitsPerSymbol, caps.SymbolsPerWord, caps.WordBits)

	if sf.uri == "" {
		return nil
	}
	store, err := sf.open(ctx)
	if err != nil {
		return err
	}
	m, err := library.ReadManifest(ctx, store)
	if errors.Is(err, blobstore.ErrNotFound) {
		_, _ = fmt.Fprintln(stdout, "store:\tempty")
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "store:\tmanifest %d, %d libraries\n", m.ID, len(m.Libraries))
	for _, e := range m.Libraries {
		_, _ = fmt.Fprintf(stdout, "\t%s\t%d x %d\t%s\t%d bytes\t%s\n", e.Name, e.Count, e.SeqLen, e.Compression, e.Size, e.Segment)
	}
	return nil
}

package library

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/hammy/blobstore"
	"golang.org/x/sync/errgroup"
)

// Save writes lib as a new segment and commits a manifest that points at it.
// Other libraries in the store are carried over unchanged.
//
// Every call writes blobs under names no other writer uses. If CURRENT moved since the live
// manifest was read, Save fails with ErrConflict and the caller may retry. Blobs of a save whose
// commit failed are left for Prune.
func Save(ctx context.Context, store blobstore.BlobStore, lib *Library, optFns ...Option) (Entry, error) {
	o := applyOptions(optFns)
	if !o.compression.valid() {
		return Entry{}, fmt.Errorf("library: unknown compression %s", o.compression)
	}
	start := time.Now()

	m, base, err := readManifest(ctx, store, o)
	switch {
	case err == nil:
	case errors.Is(err, ErrCorruptLibrary):
		return Entry{}, err
	case errors.Is(err, blobstore.ErrNotFound):
		// Only a missing CURRENT gets here: nothing has been saved yet.
		m = &Manifest{Version: manifestVersion}
	default:
		return Entry{}, err
	}
	id := m.ID + 1
	token := uuid.NewString()

	data, err := encodeSegment(lib, o.compression)
	if err != nil {
		return Entry{}, fmt.Errorf("library: encode %s: %w", lib.name, err)
	}

	seg := segmentName(lib.name, id, token)
	if err := writeBlob(ctx, store, seg, data, o); err != nil {
		_ = store.Delete(ctx, seg)
		return Entry{}, fmt.Errorf("library: write %s: %w", seg, err)
	}

	entry := Entry{
		Name:        lib.name,
		SeqLen:      lib.length,
		Count:       lib.Len(),
		Segment:     seg,
		Compression: o.compression.String(),
		Size:        int64(len(data)),
		Checksum:    binary.LittleEndian.Uint32(data[len(data)-checksumSize:]),
	}
	next := m.with(entry)
	next.ID = id

	mdata, err := encodeManifest(o.codec, next)
	if err != nil {
		_ = store.Delete(ctx, seg)
		return Entry{}, fmt.Errorf("library: encode manifest: %w", err)
	}
	mname := manifestName(id, token)
	if err := writeBlob(ctx, store, mname, mdata, o); err != nil {
		_ = store.Delete(ctx, seg)
		_ = store.Delete(ctx, mname)
		return Entry{}, fmt.Errorf("library: write %s: %w", mname, err)
	}

	if err := checkCurrent(ctx, store, base); err != nil {
		_ = store.Delete(ctx, seg)
		_ = store.Delete(ctx, mname)
		return Entry{}, err
	}

	if err := store.Put(ctx, blobstore.CurrentName, []byte(mname)); err != nil {
		// The commit may have landed despite the error, so the blobs stay.
		o.logger.WarnContext(ctx, "library commit failed",
			"library", lib.name,
			"manifest", mname,
			"error", err,
		)
		return Entry{}, fmt.Errorf("library: commit %s: %w", mname, err)
	}

	o.logger.InfoContext(ctx, "library saved",
		"library", lib.name,
		"segment", seg,
		"count", entry.Count,
		"bytes", entry.Size,
		"compression", entry.Compression,
		"duration", time.Since(start),
	)
	return entry, nil
}

// checkCurrent fails with ErrConflict unless CURRENT still names base ("" for an empty store).
func checkCurrent(ctx context.Context, store blobstore.BlobStore, base string) error {
	cur, err := blobstore.ReadAll(ctx, store, blobstore.CurrentName, nil)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		cur = nil
	case err != nil:
		return err
	}
	if got := strings.TrimSpace(string(cur)); got != base {
		return fmt.Errorf("%w: CURRENT moved from %q to %q", ErrConflict, base, got)
	}
	return nil
}

func writeBlob(ctx context.Context, store blobstore.BlobStore, name string, data []byte, o options) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := o.controller.Writer(ctx, w).Write(data); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Sync(); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// ReadManifest returns the live manifest.
// The error matches blobstore.ErrNotFound if nothing has been saved yet.
func ReadManifest(ctx context.Context, store blobstore.BlobStore, optFns ...Option) (*Manifest, error) {
	m, _, err := readManifest(ctx, store, applyOptions(optFns))
	return m, err
}

func readManifest(ctx context.Context, store blobstore.BlobStore, o options) (*Manifest, string, error) {
	cur, err := blobstore.ReadAll(ctx, store, blobstore.CurrentName, nil)
	if err != nil {
		return nil, "", err
	}
	name := strings.TrimSpace(string(cur))
	if !strings.HasPrefix(name, manifestPrefix) {
		return nil, "", corrupt(blobstore.CurrentName, fmt.Sprintf("bad pointer %q", name), nil)
	}

	data, err := blobstore.ReadAll(ctx, store, name, o.wrapReader(ctx))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, "", corrupt(name, "missing manifest", nil)
		}
		return nil, "", err
	}
	m, err := decodeManifest(name, data)
	if err != nil {
		return nil, "", err
	}
	return m, name, nil
}

func (o options) wrapReader(ctx context.Context) func(io.Reader) io.Reader {
	return func(r io.Reader) io.Reader {
		return o.controller.Reader(ctx, r)
	}
}

// Load reads the named library from the live manifest.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Library, error) {
	o := applyOptions(optFns)

	m, _, err := readManifest(ctx, store, o)
	switch {
	case errors.Is(err, ErrCorruptLibrary):
		return nil, err
	case errors.Is(err, blobstore.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case err != nil:
		return nil, err
	}
	e, ok := m.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return loadEntry(ctx, store, e, o)
}

// LoadAll reads every library of the live manifest, sorted by name.
// Segments are fetched in parallel, bounded by WithConcurrency.
func LoadAll(ctx context.Context, store blobstore.BlobStore, optFns ...Option) ([]*Library, error) {
	o := applyOptions(optFns)

	m, _, err := readManifest(ctx, store, o)
	if err != nil {
		return nil, err
	}

	libs := make([]*Library, len(m.Libraries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, e := range m.Libraries {
		g.Go(func() error {
			lib, err := loadEntry(gctx, store, e, o)
			if err != nil {
				return err
			}
			libs[i] = lib
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return libs, nil
}

func loadEntry(ctx context.Context, store blobstore.BlobStore, e Entry, o options) (*Library, error) {
	start := time.Now()

	data, err := blobstore.ReadAll(ctx, store, e.Segment, o.wrapReader(ctx))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, corrupt(e.Segment, "missing segment", nil)
		}
		return nil, err
	}
	if int64(len(data)) != e.Size {
		return nil, corrupt(e.Segment, "size does not match manifest", nil)
	}
	if len(data) < checksumSize || binary.LittleEndian.Uint32(data[len(data)-checksumSize:]) != e.Checksum {
		return nil, corrupt(e.Segment, "checksum does not match manifest", nil)
	}

	lib, _, err := decodeSegment(e.Segment, data)
	if err != nil {
		return nil, err
	}
	if lib.name != e.Name || lib.length != e.SeqLen || lib.Len() != e.Count {
		return nil, corrupt(e.Segment, "segment does not match manifest", nil)
	}

	o.logger.DebugContext(ctx, "library loaded",
		"library", e.Name,
		"segment", e.Segment,
		"count", e.Count,
		"bytes", e.Size,
		"duration", time.Since(start),
	)
	return lib, nil
}

// Prune deletes segments and manifests that the live manifest no longer references and
// returns their names. It must not run concurrently with Save on the same store.
func Prune(ctx context.Context, store blobstore.BlobStore, optFns ...Option) ([]string, error) {
	o := applyOptions(optFns)

	m, current, err := readManifest(ctx, store, o)
	if err != nil {
		return nil, err
	}

	keep := map[string]struct{}{current: {}}
	for _, e := range m.Libraries {
		keep[e.Segment] = struct{}{}
	}

	var deleted []string
	for _, prefix := range []string{manifestPrefix, segmentPrefix} {
		names, err := store.List(ctx, prefix)
		if err != nil {
			return deleted, err
		}
		for _, name := range names {
			if _, ok := keep[name]; ok {
				continue
			}
			if err := store.Delete(ctx, name); err != nil {
				return deleted, fmt.Errorf("library: prune %s: %w", name, err)
			}
			deleted = append(deleted, name)
		}
	}

	if len(deleted) > 0 {
		o.logger.InfoContext(ctx, "library store pruned", "deleted", len(deleted), "manifest", current)
	}
	return deleted, nil
}

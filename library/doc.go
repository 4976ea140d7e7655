// Package library manages named panels of equal-length nucleotide sequences (barcodes, UMIs,
// primers) and persists them to a blobstore.BlobStore.
//
// # Layout
//
// A store holds immutable segment blobs, one per saved library version, plus manifest blobs
// that list the live segment of every library. The CURRENT blob names the live manifest:
//
//	CURRENT                              -> "manifests/MANIFEST-000003-<token>"
//	manifests/MANIFEST-000003-<token>    -> codec name + encoded Manifest
//	segments/panel-a-000003-<token>.hmy  -> HMY1 segment
//
// The token is a random UUID per Save, so concurrent writers never overwrite or delete each
// other's blobs. Save writes the segment, then a new manifest, re-checks CURRENT (ErrConflict
// if it moved), then commits CURRENT. Readers never observe a half-written library. With
// s3.DDBCommitStore the CURRENT update is a conditional write, so racing savers fail with
// s3.ErrConcurrentModification instead of losing each other's commits.
//
// # Segment format (HMY1)
//
//	magic "HMY1" | version u8 | compression u8
//	uvarint length | uvarint count | name | count x id     (strings are uvarint length + bytes)
//	block: [uncompressed u32][compressed u32, 0 = stored][payload]
//	crc32c u32 over everything before it
//
// The payload holds count*WordsFor(length) little-endian words.
package library

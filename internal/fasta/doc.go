// Package fasta reads sequence records for the hammy CLI.
//
// Two layouts are accepted and detected from the first non-blank line:
//
//	>bc01 sample barcode         FASTA: the ID is the first word of the header,
//	ACGTAC                       sequence lines are concatenated.
//	GTTA
//
//	bc01  ACGTACGTTA             Table: "ID<whitespace>SEQ" per line, or a bare
//	ACGTTTGACA                   sequence whose ID is its 1-based line number.
//
// Inputs ending in .gz or .zst, or starting with the gzip or zstd magic, are decompressed.
// The path "-" reads stdin.
package fasta

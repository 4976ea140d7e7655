// Package nucleotide defines the closed four-letter DNA alphabet used by hammy.
//
// Each Symbol maps to a fixed 2-bit code:
//
//	| Symbol | Code |
//	|--------|------|
//	| A      | 00   |
//	| C      | 01   |
//	| G      | 10   |
//	| T      | 11   |
//
// Ambiguity codes (N, R, Y, ...) and gap characters are not symbols. Parsing them fails.
//
// # Case Policy
//
// CaseSensitive (the default) accepts only upper-case letters. CaseInsensitive also accepts
// a, c, g and t. A policy is applied uniformly to every position of an input.
package nucleotide

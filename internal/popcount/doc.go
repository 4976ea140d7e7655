// Package popcount provides the population-count kernel used by the distance engine.
//
// Two kernels exist:
//
//   - Hardware: math/bits.OnesCount64. On amd64 the compiler emits POPCNT behind its own
//     runtime feature check; on arm64 it uses VCNT unconditionally.
//   - Generic: a branch-free SWAR reduction (Hacker's Delight, fig. 5-2).
//
// Both kernels return identical counts on every platform; the choice only affects speed. On a
// CPU without POPCNT, math/bits already falls back to a software count, so selecting Generic
// there only drops the per-call feature branch. golang.org/x/sys/cpu reports whether the
// instruction exists, which Active and "hammy info" surface.
//
// Set HAMMY_POPCOUNT=generic or HAMMY_POPCOUNT=hardware to force a kernel, e.g. to benchmark
// one against the other.
package popcount

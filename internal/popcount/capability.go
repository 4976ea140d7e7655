package popcount

import (
	"math/bits"
	"os"
	"strings"
)

// Kernel identifies a popcount implementation.
type Kernel uint8

const (
	// Generic is the portable SWAR implementation.
	Generic Kernel = iota
	// Hardware uses math/bits, backed by a CPU instruction where available.
	Hardware
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Generic:
		return "generic"
	case Hardware:
		return "hardware"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "hardware":
		return Hardware, true
	default:
		return Generic, false
	}
}

// EnvOverride names the environment variable that forces a kernel.
const EnvOverride = "HAMMY_POPCOUNT"

// Package-level state, initialized once from platform init.
var (
	active      Kernel
	hasOverride bool

	// set by platform-specific init
	hasHardware bool

	count64 = bits.OnesCount64
)

func initCapabilities() {
	if override := os.Getenv(EnvOverride); override != "" {
		if k, ok := ParseKernel(override); ok {
			hasOverride = true
			use(k)
			return
		}
	}

	if hasHardware {
		use(Hardware)
	} else {
		use(Generic)
	}
}

func use(k Kernel) {
	active = k
	if k == Hardware {
		count64 = bits.OnesCount64
	} else {
		count64 = swar64
	}
}

// Active returns the kernel in use.
func Active() Kernel { return active }

// IsOverridden reports whether HAMMY_POPCOUNT selected the kernel.
func IsOverridden() bool { return hasOverride }

// HasHardware reports whether the CPU advertises a population-count instruction.
func HasHardware() bool { return hasHardware }

// Count64 returns the number of set bits in x.
func Count64(x uint64) int { return count64(x) }

// Func returns the popcount function for k.
func Func(k Kernel) func(uint64) int {
	if k == Hardware {
		return bits.OnesCount64
	}
	return swar64
}

//go:build arm64

package popcount

import "golang.org/x/sys/cpu"

func init() {
	// VCNT is part of ASIMD.
	hasHardware = cpu.ARM64.HasASIMD
	initCapabilities()
}

//go:build !amd64 && !arm64

package popcount

func init() {
	hasHardware = false
	initCapabilities()
}

package popcount

import (
	"fmt"
	"math/bits"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMain prints which kernel the tests run against.
func TestMain(m *testing.M) {
	fmt.Printf("=== popcount diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("%s=%q\n", EnvOverride, os.Getenv(EnvOverride))
	fmt.Printf("Active kernel: %s (override: %v, hardware: %v)\n", Active(), IsOverridden(), HasHardware())
	fmt.Printf("============================\n\n")

	os.Exit(m.Run())
}

func TestKernelsAgree(t *testing.T) {
	inputs := []uint64{
		0,
		1,
		^uint64(0),
		0x5555555555555555,
		0xAAAAAAAAAAAAAAAA,
		0x8000000000000001,
		0x0123456789ABCDEF,
	}
	for i := uint(0); i < 64; i++ {
		inputs = append(inputs, 1<<i, (1<<i)-1)
	}

	generic := Func(Generic)
	hardware := Func(Hardware)
	for _, x := range inputs {
		want := bits.OnesCount64(x)
		assert.Equal(t, want, generic(x), "generic %#x", x)
		assert.Equal(t, want, hardware(x), "hardware %#x", x)
		assert.Equal(t, want, Count64(x), "active %#x", x)
	}
}

func TestUse_ChangesKernelNotResult(t *testing.T) {
	prev := Active()
	t.Cleanup(func() { use(prev) })

	for _, k := range []Kernel{Generic, Hardware} {
		use(k)
		assert.Equal(t, k, Active())
		for _, x := range []uint64{0, 0x5555555555555555, ^uint64(0), 0xF0F0F0F00F0F0F0F} {
			assert.Equal(t, bits.OnesCount64(x), Count64(x), "%s %#x", k, x)
		}
	}
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in   string
		want Kernel
		ok   bool
	}{
		{"generic", Generic, true},
		{" HARDWARE ", Hardware, true},
		{"avx9000", Generic, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, ok := ParseKernel(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, k)
		})
	}

	assert.Equal(t, "generic", Generic.String())
	assert.Equal(t, "hardware", Hardware.String())
	assert.Equal(t, "unknown", Kernel(42).String())
}

func BenchmarkCount64(b *testing.B) {
	for _, k := range []Kernel{Generic, Hardware} {
		fn := Func(k)
		b.Run(k.String(), func(b *testing.B) {
			var sink int
			x := uint64(0x0123456789ABCDEF)
			for i := 0; i < b.N; i++ {
				sink += fn(x)
				x = x*6364136223846793005 + 1
			}
			_ = sink
		})
	}
}

package distance

import (
	"fmt"

	"github.com/hupe1980/hammy/packed"
)

// Metric selects how a distance is reported.
type Metric int

const (
	// MetricHamming reports the mismatch count.
	MetricHamming Metric = iota
	// MetricNormalized reports the mismatch count divided by the length.
	MetricNormalized
)

func (m Metric) String() string {
	switch m {
	case MetricHamming:
		return "Hamming"
	case MetricNormalized:
		return "Normalized"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a distance function over packed sequences.
type Func func(a, b packed.Sequence) (float64, error)

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricHamming:
		return func(a, b packed.Sequence) (float64, error) {
			d, err := Hamming(a, b)
			return float64(d), err
		}, nil
	case MetricNormalized:
		return Normalized, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

package face

import (
	"fmt"
	"math"
)

// DescriptorLength is the embedding size produced by the recognition model
// the clients run. Every stored enrollment has exactly this length.
const DescriptorLength = 128

// DefaultMatchThreshold is the Euclidean-distance cutoff below which two
// descriptors are considered the same person. 0.6 is the conventional value
// for this descriptor family and must stay the default.
const DefaultMatchThreshold = 0.6

// Descriptor is a fixed-length face embedding handed in by the capture
// pipeline. The backend never touches imagery, only these vectors.
type Descriptor []float32

// Validate checks the canonical enrollment length.
func (d Descriptor) Validate() error {
	if len(d) != DescriptorLength {
		return fmt.Errorf("%w: got %d elements, want %d", ErrDimensionMismatch, len(d), DescriptorLength)
	}
	return nil
}

// EuclideanDistance returns the L2 distance between two descriptors. Vectors
// of unequal length cannot be compared.
func EuclideanDistance(a, b Descriptor) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d elements", ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// Matcher decides whether a captured sample matches a stored enrollment.
type Matcher struct {
	threshold float64
}

// NewMatcher builds a matcher with the given distance threshold; zero or
// negative values fall back to DefaultMatchThreshold.
func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return Matcher{threshold: threshold}
}

// Threshold returns the distance cutoff in use.
func (m Matcher) Threshold() float64 {
	return m.threshold
}

// Match reports whether sample and enrolled belong to the same person.
// The outcome is binary; there are no partial matches.
func (m Matcher) Match(enrolled, sample Descriptor) (bool, error) {
	distance, err := EuclideanDistance(enrolled, sample)
	if err != nil {
		return false, err
	}
	return distance < m.threshold, nil
}

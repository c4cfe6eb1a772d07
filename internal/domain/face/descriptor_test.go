package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantDescriptor(value float32) Descriptor {
	d := make(Descriptor, DescriptorLength)
	for i := range d {
		d[i] = value
	}
	return d
}

func TestMatch_IdenticalDescriptors(t *testing.T) {
	t.Parallel()

	d := constantDescriptor(0.25)
	ok, err := NewMatcher(0).Match(d, d)
	require.NoError(t, err)
	assert.True(t, ok, "identical descriptors must always match")
}

func TestMatch_FarApartDescriptors(t *testing.T) {
	t.Parallel()

	// Every component differs by 1.0, so the distance is sqrt(128) >> 0.6.
	a := constantDescriptor(0)
	b := constantDescriptor(1)
	ok, err := NewMatcher(0).Match(a, b)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch_ThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	a := constantDescriptor(0)

	// Distance exactly at the threshold is not a match.
	b := constantDescriptor(0)
	b[0] = DefaultMatchThreshold
	ok, err := NewMatcher(0).Match(a, b)
	require.NoError(t, err)
	assert.False(t, ok)

	// Just under the threshold is.
	b[0] = DefaultMatchThreshold - 0.001
	ok, err = NewMatcher(0).Match(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatch_DimensionMismatch(t *testing.T) {
	t.Parallel()

	a := constantDescriptor(0)
	b := make(Descriptor, DescriptorLength-1)
	_, err := NewMatcher(0).Match(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEuclideanDistance(t *testing.T) {
	t.Parallel()

	a := Descriptor{3, 0}
	b := Descriptor{0, 4}
	d, err := EuclideanDistance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestDescriptorValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, constantDescriptor(0).Validate())
	assert.ErrorIs(t, make(Descriptor, 64).Validate(), ErrDimensionMismatch)
	assert.ErrorIs(t, Descriptor(nil).Validate(), ErrDimensionMismatch)
}

func TestNewMatcher_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultMatchThreshold, NewMatcher(0).Threshold())
	assert.Equal(t, 0.4, NewMatcher(0.4).Threshold())
}

package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{3, 4, 2}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements()) // scalar is one pixel
	assert.Equal(t, 5, Shape{5, 1}.NumElements())
}

func TestShapeValidate(t *testing.T) {
	require.NoError(t, Shape{3, 4}.Validate())
	require.NoError(t, Shape{}.Validate())
	require.Error(t, Shape{3, 0}.Validate())
	require.Error(t, Shape{-1}.Validate())
}

func TestComputeStridesSingleChannel(t *testing.T) {
	// Row-major, last axis fastest.
	assert.Equal(t, Strides{8, 2, 1}, Shape{3, 4, 2}.ComputeStrides(1))
	assert.Equal(t, Strides{}, Shape{}.ComputeStrides(1))
}

func TestComputeStridesInterleaved(t *testing.T) {
	// Three channels interleaved innermost: last spatial axis advances by 3.
	assert.Equal(t, Strides{24, 6, 3}, Shape{3, 4, 2}.ComputeStrides(3))
}

func TestBroadcastCompatible(t *testing.T) {
	assert.True(t, BroadcastCompatible(Shape{3, 4, 2}, Shape{3, 4, 2}))
	assert.True(t, BroadcastCompatible(Shape{3, 4, 2}, Shape{3, 1, 2}))
	assert.True(t, BroadcastCompatible(Shape{3, 4, 2}, Shape{1, 1, 1}))
	assert.False(t, BroadcastCompatible(Shape{3, 4, 2}, Shape{3, 2, 2}))
	assert.False(t, BroadcastCompatible(Shape{3, 4, 2}, Shape{3, 4}))
}

func TestShapeEqualClone(t *testing.T) {
	s := Shape{3, 4}
	c := s.Clone()
	assert.True(t, s.Equal(c))
	c[0] = 7
	assert.False(t, s.Equal(c))
}

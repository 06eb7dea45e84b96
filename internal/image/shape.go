package image

import "fmt"

// Shape represents the spatial dimensions of an image.
type Shape []int

// Strides holds per-axis sample offsets. Strides are signed: a view over a
// mirrored or singleton-expanded axis may carry a negative or zero stride.
type Strides []int

// NumElements returns the number of pixels described by the shape.
// A zero-dimensional shape describes a single pixel.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Clone returns a copy of the strides.
func (s Strides) Clone() Strides {
	clone := make(Strides, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major sample strides for the shape with
// tensor channels interleaved innermost: the last spatial axis advances by
// the tensor arity, and stride[i] = stride[i+1] * shape[i+1].
func (s Shape) ComputeStrides(tensor int) Strides {
	strides := make(Strides, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = tensor
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastCompatible reports whether mask (of shape m) can be walked over
// an image of shape s: per axis the extents must match, or the mask extent
// must be 1 so the axis can be singleton-expanded with a zero stride.
func BroadcastCompatible(s, m Shape) bool {
	if len(s) != len(m) {
		return false
	}
	for i := range s {
		if m[i] != s[i] && m[i] != 1 {
			return false
		}
	}
	return true
}

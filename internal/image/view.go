package image

import "fmt"

// Views are immutable once constructed: every method here returns a new
// RawImage sharing the buffer rather than moving an existing origin.

// View returns a derived view with the given shape, strides and origin
// offset. The geometry is taken at face value; callers are responsible for
// keeping it inside the buffer.
func (r *RawImage) View(shape Shape, strides Strides, offset int) (*RawImage, error) {
	if !r.IsForged() {
		return nil, fmt.Errorf("cannot take a view of an unforged image")
	}
	if len(shape) != len(strides) {
		return nil, fmt.Errorf("shape/strides rank mismatch: %d vs %d", len(shape), len(strides))
	}
	v := r.Clone()
	v.shape = shape.Clone()
	v.strides = strides.Clone()
	v.offset = offset
	return v, nil
}

// WithOffset returns a view identical to r but anchored at the given
// absolute sample offset. The projection odometer produces one of these per
// retained position instead of shifting a shared origin.
func (r *RawImage) WithOffset(offset int) *RawImage {
	v := r.Clone()
	v.offset = offset
	return v
}

// ElementView returns a zero-dimensional single-channel view of the sample
// at the given absolute offset.
func (r *RawImage) ElementView(offset int) *RawImage {
	v := r.Clone()
	v.shape = Shape{}
	v.strides = Strides{}
	v.tensor = 1
	v.tstride = 0
	v.offset = offset
	return v
}

// TensorToSpatial returns a single-channel view with the tensor dimension
// converted into a new leading spatial axis of extent Tensor().
func (r *RawImage) TensorToSpatial() *RawImage {
	v := r.Clone()
	v.shape = append(Shape{r.tensor}, r.shape...)
	v.strides = append(Strides{r.tstride}, r.strides...)
	v.tensor = 1
	v.tstride = 0
	return v
}

// PrependAxis returns a view with a new leading axis of the given extent
// and stride. A zero stride broadcasts the existing data along the axis.
func (r *RawImage) PrependAxis(extent, stride int) *RawImage {
	v := r.Clone()
	v.shape = append(Shape{extent}, v.shape...)
	v.strides = append(Strides{stride}, v.strides...)
	return v
}

// Squeeze returns a view with all size-1 spatial axes removed.
func (r *RawImage) Squeeze() *RawImage {
	v := r.Clone()
	shape := make(Shape, 0, len(v.shape))
	strides := make(Strides, 0, len(v.strides))
	for i, dim := range v.shape {
		if dim > 1 {
			shape = append(shape, dim)
			strides = append(strides, v.strides[i])
		}
	}
	v.shape = shape
	v.strides = strides
	return v
}

// ExpandSingletons returns a view whose shape matches target, with every
// singleton axis of r broadcast along a zero stride. The shapes must be
// broadcast-compatible.
func (r *RawImage) ExpandSingletons(target Shape) (*RawImage, error) {
	if !BroadcastCompatible(target, r.shape) {
		return nil, fmt.Errorf("shape %v cannot be expanded to %v", r.shape, target)
	}
	v := r.Clone()
	v.shape = target.Clone()
	for i := range v.strides {
		if r.shape[i] == 1 && target[i] != 1 {
			v.strides[i] = 0
		}
	}
	return v, nil
}

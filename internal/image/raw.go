package image

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// sampleBuffer is a reference-counted shared buffer. Views created from an
// image share its buffer; the count lets callers detect overlap-free reuse
// and lets Strip detach a destination without destroying the source data.
type sampleBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newSampleBuffer creates a new reference-counted buffer with refCount = 1.
func newSampleBuffer(size int) *sampleBuffer {
	buf := &sampleBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

func (sb *sampleBuffer) addRef() {
	sb.refCount.Add(1)
}

func (sb *sampleBuffer) release() {
	if sb.refCount.Add(-1) == 0 {
		sb.mu.Lock()
		defer sb.mu.Unlock()
		sb.data = nil
	}
}

func (sb *sampleBuffer) isUnique() bool {
	return sb.refCount.Load() == 1
}

// RawImage is a strided view over a shared sample buffer. A view never owns
// its memory exclusively: derived views reference the same buffer, and the
// buffer stays alive for as long as any view does.
//
// A RawImage may be unforged (no buffer attached). Forge allocates storage
// for the current geometry; Strip detaches it. Invariant:
// len(strides) == len(shape).
type RawImage struct {
	buffer  *sampleBuffer // Shared reference-counted buffer (nil when unforged)
	shape   Shape         // Spatial extents
	strides Strides       // Signed per-axis sample offsets
	tensor  int           // Channels per pixel (>= 1)
	tstride int           // Sample offset between channels of one pixel
	dtype   DataType      // Runtime type information
	offset  int           // Sample offset of the view origin in the buffer
}

// NewRaw creates a forged RawImage with the given spatial shape, tensor
// arity and sample type. Channels are interleaved innermost, spatial axes
// row-major. Memory is zero-initialized.
func NewRaw(shape Shape, tensor int, dtype DataType) (*RawImage, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if tensor < 1 {
		return nil, fmt.Errorf("invalid tensor arity: %d (must be >= 1)", tensor)
	}

	r := &RawImage{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(tensor),
		tensor:  tensor,
		tstride: 1,
		dtype:   dtype,
	}
	r.buffer = newSampleBuffer(r.Samples() * dtype.Size())
	return r, nil
}

// NewEmpty creates an unforged zero-dimensional image. Reduction entry
// points hand it to the scan, which reforges it to the output geometry.
func NewEmpty() *RawImage {
	return &RawImage{
		shape:   Shape{},
		strides: Strides{},
		tensor:  1,
		tstride: 1,
		dtype:   Float32,
	}
}

// NewScalar creates a forged single-sample image of the given type.
// Projection kernels use it as a scratch slot for one result element.
func NewScalar(dtype DataType) *RawImage {
	r, _ := NewRaw(Shape{}, 1, dtype)
	return r
}

// FromSlice creates a forged RawImage and copies data into it. The slice
// must hold exactly Samples() values, in interleaved row-major order
// (channels fastest, then the last spatial axis).
func FromSlice[T DType](data []T, shape Shape, tensor int) (*RawImage, error) {
	var dummy T
	r, err := NewRaw(shape, tensor, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	if len(data) != r.Samples() {
		return nil, fmt.Errorf("shape %v with %d channels requires %d samples, but got %d",
			shape, tensor, r.Samples(), len(data))
	}
	copy(BufferAs[T](r), data)
	return r, nil
}

// Shape returns the view's spatial extents.
func (r *RawImage) Shape() Shape {
	return r.shape
}

// Strides returns the view's per-axis sample strides.
func (r *RawImage) Strides() Strides {
	return r.strides
}

// Tensor returns the number of channels per pixel.
func (r *RawImage) Tensor() int {
	return r.tensor
}

// TensorStride returns the sample offset between channels of one pixel.
func (r *RawImage) TensorStride() int {
	return r.tstride
}

// DType returns the sample data type.
func (r *RawImage) DType() DataType {
	return r.dtype
}

// Offset returns the sample offset of the view origin within the buffer.
func (r *RawImage) Offset() int {
	return r.offset
}

// Pixels returns the number of pixels in the view.
func (r *RawImage) Pixels() int {
	return r.shape.NumElements()
}

// Samples returns the number of samples (pixels times channels).
func (r *RawImage) Samples() int {
	return r.Pixels() * r.tensor
}

// IsForged reports whether the image has storage attached.
func (r *RawImage) IsForged() bool {
	return r.buffer != nil
}

// Forge allocates storage for the current geometry. No-op when forged.
func (r *RawImage) Forge() {
	if r.buffer != nil {
		return
	}
	r.strides = r.shape.ComputeStrides(r.tensor)
	r.tstride = 1
	r.offset = 0
	r.buffer = newSampleBuffer(r.Samples() * r.dtype.Size())
}

// Strip detaches the image from its buffer, leaving it unforged. The data
// survives as long as other views reference it.
func (r *RawImage) Strip() {
	if r.buffer == nil {
		return
	}
	r.buffer.release()
	r.buffer = nil
	r.offset = 0
}

// ReForge gives the image the requested geometry and type, reusing the
// current buffer when it is an exclusive reference of exactly the right
// size, and reallocating otherwise.
func (r *RawImage) ReForge(shape Shape, tensor int, dtype DataType) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}
	if tensor < 1 {
		return fmt.Errorf("invalid tensor arity: %d (must be >= 1)", tensor)
	}
	byteSize := shape.NumElements() * tensor * dtype.Size()
	if r.buffer != nil && (!r.buffer.isUnique() || len(r.buffer.data) != byteSize || r.offset != 0) {
		r.Strip()
	}
	r.shape = shape.Clone()
	r.tensor = tensor
	r.dtype = dtype
	r.strides = shape.ComputeStrides(tensor)
	r.tstride = 1
	r.offset = 0
	if r.buffer == nil {
		r.buffer = newSampleBuffer(byteSize)
	} else {
		clear(r.buffer.data)
	}
	return nil
}

// SharesBuffer reports whether two images reference the same buffer.
func (r *RawImage) SharesBuffer(other *RawImage) bool {
	return r.buffer != nil && other != nil && r.buffer == other.buffer
}

// IsUnique reports whether this image is the only reference to its buffer.
func (r *RawImage) IsUnique() bool {
	return r.buffer != nil && r.buffer.isUnique()
}

// Clone creates a view with the same geometry sharing the buffer.
func (r *RawImage) Clone() *RawImage {
	if r.buffer != nil {
		r.buffer.addRef()
	}
	return &RawImage{
		buffer:  r.buffer,
		shape:   r.shape.Clone(),
		strides: r.strides.Clone(),
		tensor:  r.tensor,
		tstride: r.tstride,
		dtype:   r.dtype,
		offset:  r.offset,
	}
}

// Alias turns r into a view of src, stripping any storage r held. Used by
// the projection scan's nothing-to-reduce path, where the output is the
// input unchanged.
func (r *RawImage) Alias(src *RawImage) {
	if r == src {
		return
	}
	r.Strip()
	src.buffer.addRef()
	r.buffer = src.buffer
	r.shape = src.shape.Clone()
	r.strides = src.strides.Clone()
	r.tensor = src.tensor
	r.tstride = src.tstride
	r.dtype = src.dtype
	r.offset = src.offset
}

// String returns a human-readable representation of the image.
func (r *RawImage) String() string {
	forged := "unforged"
	if r.IsForged() {
		forged = "forged"
	}
	return fmt.Sprintf("RawImage[%s]%v x%d (%s)", r.dtype, r.shape, r.tensor, forged)
}

// BufferAs interprets the entire underlying buffer as []T, so that view
// offsets (including those reached through negative strides) index it
// directly. Panics if the image is unforged or T does not match the dtype.
func BufferAs[T DType](r *RawImage) []T {
	var dummy T
	if inferDataType(dummy) != r.dtype {
		panic(fmt.Sprintf("image dtype is %s, not %s", r.dtype, inferDataType(dummy)))
	}
	if r.buffer == nil {
		panic("image is not forged")
	}
	data := r.buffer.data
	n := len(data) / r.dtype.Size()
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds derive from the buffer size
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

// At returns the sample at channel c and the given spatial indices.
func At[T DType](r *RawImage, c int, indices ...int) T {
	return BufferAs[T](r)[r.sampleOffset(c, indices)]
}

// Set stores a sample at channel c and the given spatial indices.
func Set[T DType](r *RawImage, value T, c int, indices ...int) {
	BufferAs[T](r)[r.sampleOffset(c, indices)] = value
}

// Fill sets every sample of the view to value.
func Fill[T DType](r *RawImage, value T) {
	data := BufferAs[T](r)
	WalkTensor(r, func(off int) {
		data[off] = value
	})
}

func (r *RawImage) sampleOffset(c int, indices []int) int {
	if len(indices) != len(r.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(r.shape), len(indices)))
	}
	if c < 0 || c >= r.tensor {
		panic(fmt.Sprintf("channel %d out of bounds (tensor arity %d)", c, r.tensor))
	}
	off := r.offset + c*r.tstride
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, r.shape[i]))
		}
		off += idx * r.strides[i]
	}
	return off
}

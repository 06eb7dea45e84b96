package projection

import (
	"fmt"
	"math"

	"github.com/lumen-img/lumen/internal/image"
)

// Extrema kernels keep the input sample type: minima and maxima must not
// be disturbed by a precision change. The running extremum starts at the
// type's lowest (maximum) or highest (minimum) representable value; when a
// mask selects zero samples that sentinel is the result, a behavior
// callers rely on.

type maxKernel[T image.Real] struct {
	working image.DataType
}

func (k *maxKernel[T]) WorkingType() image.DataType { return k.working }

func (k *maxKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	m := lowest[T]()
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] && data[offIn] > m {
				m = data[offIn]
			}
		})
	} else {
		image.Walk(in, func(off int) {
			if data[off] > m {
				m = data[off]
			}
		})
	}
	image.BufferAs[T](out)[out.Offset()] = m
}

type minKernel[T image.Real] struct {
	working image.DataType
}

func (k *minKernel[T]) WorkingType() image.DataType { return k.working }

func (k *minKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	m := highest[T]()
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] && data[offIn] < m {
				m = data[offIn]
			}
		})
	} else {
		image.Walk(in, func(off int) {
			if data[off] < m {
				m = data[off]
			}
		})
	}
	image.BufferAs[T](out)[out.Offset()] = m
}

// boolExtremumKernel handles boolean samples, where the maximum is a
// logical OR (sentinel false) and the minimum a logical AND (sentinel
// true).
type boolExtremumKernel struct {
	maximum bool
}

func (k *boolExtremumKernel) WorkingType() image.DataType { return image.Bool }

func (k *boolExtremumKernel) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[bool](in)
	m := !k.maximum
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] && data[offIn] == k.maximum {
				m = k.maximum
			}
		})
	} else {
		image.Walk(in, func(off int) {
			if data[off] == k.maximum {
				m = k.maximum
			}
		})
	}
	image.BufferAs[bool](out)[out.Offset()] = m
}

// lowest returns the smallest representable value of T.
func lowest[T image.Real]() T {
	var z T
	switch p := any(&z).(type) {
	case *float32:
		*p = -math.MaxFloat32
	case *float64:
		*p = -math.MaxFloat64
	case *int32:
		*p = math.MinInt32
	case *int64:
		*p = math.MinInt64
	case *uint8:
		*p = 0
	}
	return z
}

// highest returns the largest representable value of T.
func highest[T image.Real]() T {
	var z T
	switch p := any(&z).(type) {
	case *float32:
		*p = math.MaxFloat32
	case *float64:
		*p = math.MaxFloat64
	case *int32:
		*p = math.MaxInt32
	case *int64:
		*p = math.MaxInt64
	case *uint8:
		*p = math.MaxUint8
	}
	return z
}

// newMaxKernel builds the maximum kernel; the working type is the input
// type unchanged.
func newMaxKernel(dt image.DataType) (Projector, error) {
	switch dt {
	case image.Float32:
		return &maxKernel[float32]{dt}, nil
	case image.Float64:
		return &maxKernel[float64]{dt}, nil
	case image.Int32:
		return &maxKernel[int32]{dt}, nil
	case image.Int64:
		return &maxKernel[int64]{dt}, nil
	case image.Uint8:
		return &maxKernel[uint8]{dt}, nil
	case image.Bool:
		return &boolExtremumKernel{maximum: true}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}

// newMinKernel builds the minimum kernel; the working type is the input
// type unchanged.
func newMinKernel(dt image.DataType) (Projector, error) {
	switch dt {
	case image.Float32:
		return &minKernel[float32]{dt}, nil
	case image.Float64:
		return &minKernel[float64]{dt}, nil
	case image.Int32:
		return &minKernel[int32]{dt}, nil
	case image.Int64:
		return &minKernel[int64]{dt}, nil
	case image.Uint8:
		return &minKernel[uint8]{dt}, nil
	case image.Bool:
		return &boolExtremumKernel{maximum: false}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}

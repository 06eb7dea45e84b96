package projection

import (
	"fmt"
	"math"

	"github.com/lumen-img/lumen/internal/image"
)

// absKernel accumulates a running sum of absolute values, optionally
// divided by the participating sample count. Unsigned input never reaches
// this kernel: abs(x) == x there, so dispatch routes it to the plain
// sum/mean kernel instead.
type absKernel[T image.Real] struct {
	working     image.DataType
	computeMean bool
}

func (k *absKernel[T]) WorkingType() image.DataType { return k.working }

func (k *absKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	n := 0
	sum := 0.0
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				sum += math.Abs(toFloat(data[offIn]))
				n++
			}
		})
	} else {
		image.Walk(in, func(off int) {
			sum += math.Abs(toFloat(data[off]))
		})
		n = in.Pixels()
	}
	if k.computeMean && n > 0 {
		sum /= float64(n)
	}
	writeFloat(out, sum)
}

// newAbsKernel builds the sum/mean-of-absolute-values kernel. Unsigned
// input reuses the plain sum/mean kernel; boolean input has no absolute
// value and is unsupported.
func newAbsKernel(dt image.DataType, computeMean bool) (Projector, error) {
	if dt.IsUnsigned() {
		return newMeanKernel(dt, computeMean)
	}
	working := image.SuggestFloat(dt)
	switch dt {
	case image.Float32:
		return &absKernel[float32]{working, computeMean}, nil
	case image.Float64:
		return &absKernel[float64]{working, computeMean}, nil
	case image.Int32:
		return &absKernel[int32]{working, computeMean}, nil
	case image.Int64:
		return &absKernel[int64]{working, computeMean}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no absolute value", ErrUnsupportedType, dt)
	}
}

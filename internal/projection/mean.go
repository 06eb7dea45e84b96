package projection

import (
	"fmt"

	"github.com/lumen-img/lumen/internal/image"
)

// meanKernel accumulates a running sum over the collapsed sub-volume and
// optionally divides by the number of participating samples. With zero
// participating samples the (zero) sum is written, never NaN.
type meanKernel[T image.DType] struct {
	working     image.DataType
	computeMean bool
}

func (k *meanKernel[T]) WorkingType() image.DataType { return k.working }

func (k *meanKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	n := 0
	sum := 0.0
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				sum += toFloat(data[offIn])
				n++
			}
		})
	} else {
		image.Walk(in, func(off int) {
			sum += toFloat(data[off])
		})
		n = in.Pixels()
	}
	if k.computeMean && n > 0 {
		sum /= float64(n)
	}
	writeFloat(out, sum)
}

// newMeanKernel builds the sum/mean kernel for the given input type.
// All sample types are supported; the working type is the flex promotion
// of the input type.
func newMeanKernel(dt image.DataType, computeMean bool) (Projector, error) {
	working := image.SuggestFlex(dt)
	switch dt {
	case image.Float32:
		return &meanKernel[float32]{working, computeMean}, nil
	case image.Float64:
		return &meanKernel[float64]{working, computeMean}, nil
	case image.Int32:
		return &meanKernel[int32]{working, computeMean}, nil
	case image.Int64:
		return &meanKernel[int64]{working, computeMean}, nil
	case image.Uint8:
		return &meanKernel[uint8]{working, computeMean}, nil
	case image.Bool:
		return &meanKernel[bool]{working, computeMean}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}

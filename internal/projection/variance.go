package projection

import (
	"fmt"
	"math"

	"github.com/lumen-img/lumen/internal/image"
)

// varianceAccumulator is a streaming (Welford-style) mean/variance
// accumulator, numerically stable under catastrophic cancellation.
// It is scoped to a single Project call.
type varianceAccumulator struct {
	n    int
	mean float64
	m2   float64
}

func (a *varianceAccumulator) push(v float64) {
	a.n++
	delta := v - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (v - a.mean)
}

// variance returns the population variance (division by n). Fewer than two
// samples have zero variance.
func (a *varianceAccumulator) variance() float64 {
	if a.n < 2 {
		return 0
	}
	return a.m2 / float64(a.n)
}

func (a *varianceAccumulator) standardDeviation() float64 {
	return math.Sqrt(a.variance())
}

// varianceKernel computes variance or standard deviation of the collapsed
// sub-volume in a streaming accumulator.
type varianceKernel[T image.DType] struct {
	working    image.DataType
	computeStd bool
}

func (k *varianceKernel[T]) WorkingType() image.DataType { return k.working }

func (k *varianceKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	var acc varianceAccumulator
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				acc.push(toFloat(data[offIn]))
			}
		})
	} else {
		image.Walk(in, func(off int) {
			acc.push(toFloat(data[off]))
		})
	}
	if k.computeStd {
		writeFloat(out, acc.standardDeviation())
	} else {
		writeFloat(out, acc.variance())
	}
}

// newVarianceKernel builds the variance/standard-deviation kernel for the
// given input type. All sample types are supported; the working type is
// the float promotion of the input type.
func newVarianceKernel(dt image.DataType, computeStd bool) (Projector, error) {
	working := image.SuggestFloat(dt)
	switch dt {
	case image.Float32:
		return &varianceKernel[float32]{working, computeStd}, nil
	case image.Float64:
		return &varianceKernel[float64]{working, computeStd}, nil
	case image.Int32:
		return &varianceKernel[int32]{working, computeStd}, nil
	case image.Int64:
		return &varianceKernel[int64]{working, computeStd}, nil
	case image.Uint8:
		return &varianceKernel[uint8]{working, computeStd}, nil
	case image.Bool:
		return &varianceKernel[bool]{working, computeStd}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}

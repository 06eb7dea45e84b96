package projection

import (
	"fmt"
	"math"

	"github.com/lumen-img/lumen/internal/image"
)

// Directional statistics treat samples as angles, where 0 and 2π are the
// same value: each sample contributes a unit vector (cos v, sin v) to a
// complex running sum, and the statistic is derived from that sum. Only
// real floating input carries angles.

// directionalMeanKernel writes the argument (phase) of the summed unit
// vectors: the circular mean angle.
type directionalMeanKernel[T image.Float] struct {
	working image.DataType
}

func (k *directionalMeanKernel[T]) WorkingType() image.DataType { return k.working }

func (k *directionalMeanKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	sum := complex(0, 0)
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				sum += angleToVector(float64(data[offIn]))
			}
		})
	} else {
		image.Walk(in, func(off int) {
			sum += angleToVector(float64(data[off]))
		})
	}
	writeFloat(out, math.Atan2(imag(sum), real(sum)))
}

// directionalVarianceKernel writes 1 - R for the variance or sqrt(-2 ln R)
// for the standard deviation, where R is the resultant length |sum|/n.
type directionalVarianceKernel[T image.Float] struct {
	working    image.DataType
	computeStd bool
}

func (k *directionalVarianceKernel[T]) WorkingType() image.DataType { return k.working }

func (k *directionalVarianceKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	n := 0
	sum := complex(0, 0)
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				sum += angleToVector(float64(data[offIn]))
				n++
			}
		})
	} else {
		image.Walk(in, func(off int) {
			sum += angleToVector(float64(data[off]))
		})
		n = in.Pixels()
	}
	r := 0.0
	if n > 0 {
		r = math.Hypot(real(sum), imag(sum)) / float64(n)
	}
	if k.computeStd {
		writeFloat(out, math.Sqrt(-2.0*math.Log(r)))
	} else {
		writeFloat(out, 1.0-r)
	}
}

func angleToVector(v float64) complex128 {
	return complex(math.Cos(v), math.Sin(v))
}

// newDirectionalMeanKernel builds the circular-mean kernel. Directional
// statistics are defined for real floating input only.
func newDirectionalMeanKernel(dt image.DataType) (Projector, error) {
	switch dt {
	case image.Float32:
		return &directionalMeanKernel[float32]{image.SuggestFloat(dt)}, nil
	case image.Float64:
		return &directionalMeanKernel[float64]{image.SuggestFloat(dt)}, nil
	default:
		return nil, fmt.Errorf("%w: directional statistics require floating input, got %s", ErrUnsupportedType, dt)
	}
}

// newDirectionalVarianceKernel builds the circular variance or standard
// deviation kernel.
func newDirectionalVarianceKernel(dt image.DataType, computeStd bool) (Projector, error) {
	switch dt {
	case image.Float32:
		return &directionalVarianceKernel[float32]{image.SuggestFloat(dt), computeStd}, nil
	case image.Float64:
		return &directionalVarianceKernel[float64]{image.SuggestFloat(dt), computeStd}, nil
	default:
		return nil, fmt.Errorf("%w: directional statistics require floating input, got %s", ErrUnsupportedType, dt)
	}
}

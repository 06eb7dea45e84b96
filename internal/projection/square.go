package projection

import (
	"fmt"

	"github.com/lumen-img/lumen/internal/image"
)

// squareKernel accumulates a running sum of squares, optionally divided by
// the participating sample count. Boolean input never reaches this kernel:
// the square of 0/1 is itself, so dispatch routes it to the plain sum/mean
// kernel instead.
type squareKernel[T image.Real] struct {
	working     image.DataType
	computeMean bool
}

func (k *squareKernel[T]) WorkingType() image.DataType { return k.working }

func (k *squareKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	n := 0
	sum := 0.0
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				v := toFloat(data[offIn])
				sum += v * v
				n++
			}
		})
	} else {
		image.Walk(in, func(off int) {
			v := toFloat(data[off])
			sum += v * v
		})
		n = in.Pixels()
	}
	if k.computeMean && n > 0 {
		sum /= float64(n)
	}
	writeFloat(out, sum)
}

// newSquareKernel builds the sum/mean-of-squares kernel.
func newSquareKernel(dt image.DataType, computeMean bool) (Projector, error) {
	if dt.IsBool() {
		return newMeanKernel(dt, computeMean)
	}
	working := image.SuggestFlex(dt)
	switch dt {
	case image.Float32:
		return &squareKernel[float32]{working, computeMean}, nil
	case image.Float64:
		return &squareKernel[float64]{working, computeMean}, nil
	case image.Int32:
		return &squareKernel[int32]{working, computeMean}, nil
	case image.Int64:
		return &squareKernel[int64]{working, computeMean}, nil
	case image.Uint8:
		return &squareKernel[uint8]{working, computeMean}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}

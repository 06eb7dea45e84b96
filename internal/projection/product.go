package projection

import (
	"fmt"

	"github.com/lumen-img/lumen/internal/image"
)

// productKernel accumulates a running product over the collapsed
// sub-volume. An empty selection yields the multiplicative identity 1.
type productKernel[T image.DType] struct {
	working image.DataType
}

func (k *productKernel[T]) WorkingType() image.DataType { return k.working }

func (k *productKernel[T]) Project(in, mask, out *image.RawImage) {
	data := image.BufferAs[T](in)
	product := 1.0
	if mask != nil {
		sel := image.BufferAs[bool](mask)
		image.WalkJoint(in, mask, func(offIn, offMask int) {
			if sel[offMask] {
				product *= toFloat(data[offIn])
			}
		})
	} else {
		image.Walk(in, func(off int) {
			product *= toFloat(data[off])
		})
	}
	writeFloat(out, product)
}

// newProductKernel builds the product kernel for the given input type.
func newProductKernel(dt image.DataType) (Projector, error) {
	working := image.SuggestFlex(dt)
	switch dt {
	case image.Float32:
		return &productKernel[float32]{working}, nil
	case image.Float64:
		return &productKernel[float64]{working}, nil
	case image.Int32:
		return &productKernel[int32]{working}, nil
	case image.Int64:
		return &productKernel[int64]{working}, nil
	case image.Uint8:
		return &productKernel[uint8]{working}, nil
	case image.Bool:
		return &productKernel[bool]{working}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}

// Package projection implements the Lumen dimension-reduction engine: an
// odometer-driven scan that collapses selected axes of a strided image by
// applying a reduction kernel to every collapsed sub-volume.
package projection

import (
	"math"

	"github.com/lumen-img/lumen/internal/image"
)

// Projector is the reduction strategy applied once per retained output
// position. Project consumes the entire collapsed sub-volume `in` (gated by
// `mask` when non-nil, which then has the same shape with possibly zero
// strides) and writes exactly one sample into `out`, a single-element view
// whose type is WorkingType().
//
// A Projector must be a pure function of the samples it is given: no
// mutable state across invocations, no mutation of in or mask. The scan
// relies on this to invoke it concurrently for independent output
// positions.
type Projector interface {
	// WorkingType is the sample type the kernel accumulates and writes in,
	// chosen independently of the caller-visible output storage type.
	WorkingType() image.DataType
	// Project reduces one collapsed sub-volume into the out sample.
	Project(in, mask, out *image.RawImage)
}

// toFloat widens one sample to the engine's float64 accumulation precision.
// Boolean samples count as 0/1.
func toFloat[T image.DType](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		panic("unsupported type")
	}
}

// writeFloat stores a float64 result into the out sample, which holds one
// of the two floating working types. Results beyond float32 range saturate
// instead of overflowing to infinity.
func writeFloat(out *image.RawImage, v float64) {
	switch out.DType() {
	case image.Float32:
		switch {
		case v > math.MaxFloat32:
			v = math.MaxFloat32
		case v < -math.MaxFloat32:
			v = -math.MaxFloat32
		}
		image.BufferAs[float32](out)[out.Offset()] = float32(v)
	case image.Float64:
		image.BufferAs[float64](out)[out.Offset()] = v
	default:
		panic("projection: float result requires a floating working type")
	}
}

package image

import (
	"fmt"
	"math"
)

// CopyScalar copies the origin sample of src into the origin sample of dst,
// converting between sample types. Conversions into a narrower type clamp
// into the destination's representable range; NaN converts to zero in
// integer targets. Same-type copies are exact.
func CopyScalar(src, dst *RawImage) error {
	if !src.IsForged() || !dst.IsForged() {
		return fmt.Errorf("cannot copy between unforged images")
	}
	if src.dtype == dst.dtype {
		es := src.dtype.Size()
		copy(dst.buffer.data[dst.offset*es:(dst.offset+1)*es],
			src.buffer.data[src.offset*es:(src.offset+1)*es])
		return nil
	}
	storeScalar(dst, loadScalar(src))
	return nil
}

// loadScalar reads the origin sample as float64 (bool as 0/1).
func loadScalar(src *RawImage) float64 {
	switch src.dtype {
	case Float32:
		return float64(BufferAs[float32](src)[src.offset])
	case Float64:
		return BufferAs[float64](src)[src.offset]
	case Int32:
		return float64(BufferAs[int32](src)[src.offset])
	case Int64:
		return float64(BufferAs[int64](src)[src.offset])
	case Uint8:
		return float64(BufferAs[uint8](src)[src.offset])
	case Bool:
		if BufferAs[bool](src)[src.offset] {
			return 1
		}
		return 0
	default:
		panic("unknown data type")
	}
}

// storeScalar writes v into the origin sample of dst, clamping into the
// destination range.
func storeScalar(dst *RawImage, v float64) {
	switch dst.dtype {
	case Float32:
		BufferAs[float32](dst)[dst.offset] = clampFloat32(v)
	case Float64:
		BufferAs[float64](dst)[dst.offset] = v
	case Int32:
		BufferAs[int32](dst)[dst.offset] = int32(clampInt(v, math.MinInt32, math.MaxInt32))
	case Int64:
		BufferAs[int64](dst)[dst.offset] = clampInt(v, math.MinInt64, math.MaxInt64)
	case Uint8:
		BufferAs[uint8](dst)[dst.offset] = uint8(clampInt(v, 0, math.MaxUint8))
	case Bool:
		BufferAs[bool](dst)[dst.offset] = v != 0
	default:
		panic("unknown data type")
	}
}

func clampFloat32(v float64) float32 {
	switch {
	case v > math.MaxFloat32:
		return math.MaxFloat32
	case v < -math.MaxFloat32:
		return -math.MaxFloat32
	default:
		return float32(v)
	}
}

func clampInt(v float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= float64(lo):
		return lo
	case v >= float64(hi):
		return hi
	default:
		return int64(v)
	}
}

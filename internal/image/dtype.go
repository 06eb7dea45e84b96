// Package image provides the strided multi-dimensional array views that the
// Lumen projection engine operates on.
package image

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// Real is the subset of DType with a total numeric ordering.
// Reducers that need comparison or signed arithmetic dispatch over Real.
type Real interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// Float is the subset of DType usable for angle-valued samples.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for image samples.
type DataType int

// Supported sample types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether the type is a (signed or unsigned) integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64 || dt == Uint8
}

// IsUnsigned reports whether the type is an unsigned integer type.
func (dt DataType) IsUnsigned() bool {
	return dt == Uint8
}

// IsBool reports whether the type is the boolean type.
func (dt DataType) IsBool() bool {
	return dt == Bool
}

// SuggestFlex returns the type a reduction should accumulate and store in
// when it needs flexible (fraction-capable) arithmetic: floating types are
// kept, narrow integer and boolean samples promote to float32, and wide
// integers promote to float64.
func SuggestFlex(dt DataType) DataType {
	switch dt {
	case Float32, Float64:
		return dt
	case Int32, Int64:
		return Float64
	case Uint8, Bool:
		return Float32
	default:
		panic("unknown data type")
	}
}

// SuggestFloat returns a real floating type wide enough for the given input
// type. With no complex types in the sample set it coincides with
// SuggestFlex; both names exist because callers select by policy.
func SuggestFloat(dt DataType) DataType {
	return SuggestFlex(dt)
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}

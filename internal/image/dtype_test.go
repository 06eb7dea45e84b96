package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeSize(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 8, Int64.Size())
	assert.Equal(t, 1, Uint8.Size())
	assert.Equal(t, 1, Bool.Size())
}

func TestDataTypePredicates(t *testing.T) {
	assert.True(t, Float32.IsFloat())
	assert.False(t, Int32.IsFloat())
	assert.True(t, Uint8.IsInteger())
	assert.True(t, Uint8.IsUnsigned())
	assert.False(t, Int64.IsUnsigned())
	assert.True(t, Bool.IsBool())
	assert.False(t, Bool.IsInteger())
}

func TestSuggestFlex(t *testing.T) {
	assert.Equal(t, Float32, SuggestFlex(Float32))
	assert.Equal(t, Float64, SuggestFlex(Float64))
	assert.Equal(t, Float64, SuggestFlex(Int32))
	assert.Equal(t, Float64, SuggestFlex(Int64))
	assert.Equal(t, Float32, SuggestFlex(Uint8))
	assert.Equal(t, Float32, SuggestFlex(Bool))
}

func TestSuggestFloatMatchesFlex(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64, Uint8, Bool} {
		assert.Equal(t, SuggestFlex(dt), SuggestFloat(dt))
	}
}

func TestInferDataType(t *testing.T) {
	assert.Equal(t, Float32, inferDataType(float32(0)))
	assert.Equal(t, Int64, inferDataType(int64(0)))
	assert.Equal(t, Bool, inferDataType(false))
}

// Copyright 2026 Lumen Imaging. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package image

import (
	"github.com/lumen-img/lumen/internal/image"
)

// RawImage is a strided view over a shared, reference-counted sample
// buffer.
//
// RawImage provides:
//   - Geometry via Shape(), Strides(), Tensor(), DType()
//   - Storage management via Forge(), Strip(), ReForge()
//   - Zero-copy derived views via Squeeze(), TensorToSpatial(),
//     ExpandSingletons(), View()
//   - Typed sample access via BufferAs, At, Set
type RawImage = image.RawImage

// Shape represents the spatial dimensions of an image.
type Shape = image.Shape

// Strides holds signed per-axis sample offsets.
type Strides = image.Strides

// DataType represents runtime type information for image samples.
type DataType = image.DataType

// Supported sample types.
const (
	Float32 = image.Float32
	Float64 = image.Float64
	Int32   = image.Int32
	Int64   = image.Int64
	Uint8   = image.Uint8
	Bool    = image.Bool
)

// DType is a constraint for supported element types.
type DType = image.DType

// NewRaw creates a forged RawImage with the given spatial shape, tensor
// arity and sample type.
func NewRaw(shape Shape, tensor int, dtype DataType) (*RawImage, error) {
	return image.NewRaw(shape, tensor, dtype)
}

// NewEmpty creates an unforged zero-dimensional image.
func NewEmpty() *RawImage {
	return image.NewEmpty()
}

// FromSlice creates a forged RawImage and copies data into it, interleaved
// row-major (channels fastest).
func FromSlice[T DType](data []T, shape Shape, tensor int) (*RawImage, error) {
	return image.FromSlice(data, shape, tensor)
}

// BufferAs interprets the entire underlying buffer as []T so view offsets
// index it directly.
func BufferAs[T DType](r *RawImage) []T {
	return image.BufferAs[T](r)
}

// At returns the sample at channel c and the given spatial indices.
func At[T DType](r *RawImage, c int, indices ...int) T {
	return image.At[T](r, c, indices...)
}

// Set stores a sample at channel c and the given spatial indices.
func Set[T DType](r *RawImage, value T, c int, indices ...int) {
	image.Set(r, value, c, indices...)
}

// Fill sets every sample of the view to value.
func Fill[T DType](r *RawImage, value T) {
	image.Fill(r, value)
}

// Walk visits every sample of the view in row-major order, calling fn with
// the flat buffer offset of each sample.
func Walk(r *RawImage, fn func(off int)) {
	image.Walk(r, fn)
}

// WalkJoint visits two views of equal shape in lockstep.
func WalkJoint(a, b *RawImage, fn func(offA, offB int)) {
	image.WalkJoint(a, b, fn)
}

// SuggestFlex returns the type a reduction should accumulate in when it
// needs fraction-capable arithmetic for the given input type.
func SuggestFlex(dt DataType) DataType {
	return image.SuggestFlex(dt)
}

// SuggestFloat returns a real floating type wide enough for the given
// input type.
func SuggestFloat(dt DataType) DataType {
	return image.SuggestFloat(dt)
}

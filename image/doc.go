// Copyright 2026 Lumen Imaging. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package image provides strided, multi-channel array views for the Lumen
// projection engine.
//
// # Overview
//
// A RawImage is a view over a shared sample buffer: shape, signed per-axis
// strides, a sample type tag, a tensor arity (channels per pixel) and an
// origin offset. Views never own memory exclusively; derived views
// (Squeeze, TensorToSpatial, ExpandSingletons, ...) are zero-copy and
// immutable once constructed.
//
// # Basic Usage
//
//	img, _ := image.NewRaw(image.Shape{3, 4, 2}, 3, image.Uint8)
//	image.Set[uint8](img, 7, 0, 0, 0, 0) // channel 0 at (0,0,0)
//	v := image.At[uint8](img, 0, 0, 0, 0)
//
// # Supported Sample Types
//
// float32, float64, int32, int64, uint8 and bool, tagged at runtime by
// DataType. Boolean images serve as masks for the projection engine.
//
// # Forging
//
// A RawImage may exist without storage ("unforged"). Forge allocates
// storage for the current geometry, Strip detaches it, and ReForge gives
// an image a new geometry, reusing the buffer when it is an exclusive
// reference of the right size.
package image

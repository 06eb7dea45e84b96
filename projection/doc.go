// Copyright 2026 Lumen Imaging. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package projection reduces selected axes of a strided image to a single
// value per remaining position: mean, sum, product, variance, extrema and
// directional (circular) statistics, with an optional boolean mask gating
// which samples participate.
//
// # Basic Usage
//
//	img, _ := image.FromSlice(samples, image.Shape{3, 4, 2}, 1)
//
//	// Collapse every axis.
//	mean, _ := projection.Mean(img, nil, projection.Linear, nil)
//
//	// Collapse only axis 0.
//	max, _ := projection.Maximum(img, nil, []bool{true, false, false})
//
// The axis-selection vector has one flag per input axis: true collapses
// the axis to extent 1, false retains it. An empty vector collapses all
// axes. Axes of extent 1 are always collapsed. The result keeps the
// input's dimensionality and tensor arity.
//
// Masks are boolean images of the input's shape; singleton mask axes are
// broadcast without copying. A nil mask means all samples participate.
//
// All failures are reported before the output is touched, as errors
// matching ErrShapeMismatch, ErrMaskIncompatible, ErrUnsupportedType,
// ErrOutputAliasing or ErrUnimplemented via errors.Is.
package projection

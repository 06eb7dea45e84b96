// Copyright 2026 Lumen Imaging. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package projection

import (
	"github.com/lumen-img/lumen/image"
	"github.com/lumen-img/lumen/internal/projection"
)

// Mode selects between linear and circular (directional) statistics.
type Mode = projection.Mode

// Statistic modes.
const (
	Linear      = projection.Linear
	Directional = projection.Directional
)

// Projector is the reduction strategy invoked once per retained output
// position. Implement it to drive Scan with a custom reduction.
type Projector = projection.Projector

// Error kinds reported by the engine. Match with errors.Is.
var (
	ErrShapeMismatch    = projection.ErrShapeMismatch
	ErrMaskIncompatible = projection.ErrMaskIncompatible
	ErrUnsupportedType  = projection.ErrUnsupportedType
	ErrOutputAliasing   = projection.ErrOutputAliasing
	ErrUnimplemented    = projection.ErrUnimplemented
	ErrNotForged        = projection.ErrNotForged
)

// Scan collapses the axes of in selected by process into out, invoking fn
// once per retained output position. Most callers want the named
// reductions below instead.
func Scan(in, mask, out *image.RawImage, outType image.DataType, process []bool, fn Projector) error {
	return projection.Scan(in, mask, out, outType, process, fn)
}

// Sum projects by summation.
func Sum(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.Sum(in, mask, process)
}

// Mean projects by averaging; Directional mode computes the circular mean
// of angle-valued samples.
func Mean(in, mask *image.RawImage, mode Mode, process []bool) (*image.RawImage, error) {
	return projection.Mean(in, mask, mode, process)
}

// Product projects by multiplication.
func Product(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.Product(in, mask, process)
}

// SumAbs projects by summing absolute values.
func SumAbs(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.SumAbs(in, mask, process)
}

// MeanAbs projects by averaging absolute values.
func MeanAbs(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.MeanAbs(in, mask, process)
}

// SumSquare projects by summing squares.
func SumSquare(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.SumSquare(in, mask, process)
}

// MeanSquare projects by averaging squares.
func MeanSquare(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.MeanSquare(in, mask, process)
}

// Variance projects to the population variance; Directional mode computes
// the circular variance 1 - R.
func Variance(in, mask *image.RawImage, mode Mode, process []bool) (*image.RawImage, error) {
	return projection.Variance(in, mask, mode, process)
}

// StandardDeviation projects to the population standard deviation;
// Directional mode computes sqrt(-2 ln R).
func StandardDeviation(in, mask *image.RawImage, mode Mode, process []bool) (*image.RawImage, error) {
	return projection.StandardDeviation(in, mask, mode, process)
}

// Maximum projects to the largest participating sample, keeping the input
// type. An all-false mask yields the type's lowest representable value.
func Maximum(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.Maximum(in, mask, process)
}

// Minimum projects to the smallest participating sample, keeping the input
// type. An all-false mask yields the type's highest representable value.
func Minimum(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	return projection.Minimum(in, mask, process)
}

// Percentile projects to the p-th percentile. Only p == 0 (Minimum) and
// p == 100 (Maximum) are implemented.
func Percentile(in, mask *image.RawImage, p float64, process []bool) (*image.RawImage, error) {
	return projection.Percentile(in, mask, p, process)
}

package projection

import (
	"fmt"

	"github.com/lumen-img/lumen/internal/image"
)

// Mode selects between linear and circular (directional) statistics for
// the reductions that have both.
type Mode int

const (
	// Linear treats samples as plain numbers.
	Linear Mode = iota
	// Directional treats samples as angles, where 0 and 2π coincide.
	Directional
)

// Every entry point takes the input image, an optional mask (nil for
// "all samples participate") and an axis-selection vector: one flag per
// input axis, true to collapse the axis, false to retain it, empty to
// collapse all axes. The result has the same dimensionality as the input
// with collapsed axes of extent 1, and the tensor arity of the input.

// Sum projects by summation. The result type is the flex promotion of the
// input type.
func Sum(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newMeanKernel(in.DType(), false)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFlex(in.DType()), process, fn)
}

// Mean projects by averaging over the participating samples. In
// Directional mode samples are angles and the result is the circular mean;
// directional statistics require floating input.
func Mean(in, mask *image.RawImage, mode Mode, process []bool) (*image.RawImage, error) {
	var fn Projector
	var err error
	var outType image.DataType
	if err = checkForged(in); err != nil {
		return nil, err
	}
	if mode == Directional {
		fn, err = newDirectionalMeanKernel(in.DType())
		outType = image.SuggestFloat(in.DType())
	} else {
		fn, err = newMeanKernel(in.DType(), true)
		outType = image.SuggestFlex(in.DType())
	}
	if err != nil {
		return nil, err
	}
	return run(in, mask, outType, process, fn)
}

// Product projects by multiplication, with identity 1 for an empty
// selection.
func Product(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newProductKernel(in.DType())
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFlex(in.DType()), process, fn)
}

// SumAbs projects by summing absolute values.
func SumAbs(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newAbsKernel(in.DType(), false)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFloat(in.DType()), process, fn)
}

// MeanAbs projects by averaging absolute values.
func MeanAbs(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newAbsKernel(in.DType(), true)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFloat(in.DType()), process, fn)
}

// SumSquare projects by summing squared values.
func SumSquare(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newSquareKernel(in.DType(), false)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFlex(in.DType()), process, fn)
}

// MeanSquare projects by averaging squared values.
func MeanSquare(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newSquareKernel(in.DType(), true)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFlex(in.DType()), process, fn)
}

// Variance projects to the population variance of the collapsed samples,
// or the circular variance 1 - R in Directional mode.
func Variance(in, mask *image.RawImage, mode Mode, process []bool) (*image.RawImage, error) {
	fn, err := varianceDispatch(in, mode, false)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFloat(in.DType()), process, fn)
}

// StandardDeviation projects to the population standard deviation, or the
// circular standard deviation sqrt(-2 ln R) in Directional mode.
func StandardDeviation(in, mask *image.RawImage, mode Mode, process []bool) (*image.RawImage, error) {
	fn, err := varianceDispatch(in, mode, true)
	if err != nil {
		return nil, err
	}
	return run(in, mask, image.SuggestFloat(in.DType()), process, fn)
}

// Maximum projects to the largest participating sample, keeping the input
// type. With a mask selecting zero samples the result is the type's lowest
// representable value.
func Maximum(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newMaxKernel(in.DType())
	if err != nil {
		return nil, err
	}
	return run(in, mask, in.DType(), process, fn)
}

// Minimum projects to the smallest participating sample, keeping the input
// type. With a mask selecting zero samples the result is the type's
// highest representable value.
func Minimum(in, mask *image.RawImage, process []bool) (*image.RawImage, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	fn, err := newMinKernel(in.DType())
	if err != nil {
		return nil, err
	}
	return run(in, mask, in.DType(), process, fn)
}

// Percentile projects to the p-th percentile of the participating samples.
// Only p == 0 (Minimum) and p == 100 (Maximum) are implemented; any other
// value returns ErrUnimplemented.
func Percentile(in, mask *image.RawImage, p float64, process []bool) (*image.RawImage, error) {
	switch p {
	case 0:
		return Minimum(in, mask, process)
	case 100:
		return Maximum(in, mask, process)
	default:
		return nil, fmt.Errorf("%w: percentile %v (only 0 and 100 are available)", ErrUnimplemented, p)
	}
}

func varianceDispatch(in *image.RawImage, mode Mode, computeStd bool) (Projector, error) {
	if err := checkForged(in); err != nil {
		return nil, err
	}
	if mode == Directional {
		return newDirectionalVarianceKernel(in.DType(), computeStd)
	}
	return newVarianceKernel(in.DType(), computeStd)
}

func run(in, mask *image.RawImage, outType image.DataType, process []bool, fn Projector) (*image.RawImage, error) {
	out := image.NewEmpty()
	if err := Scan(in, mask, out, outType, process, fn); err != nil {
		return nil, err
	}
	return out, nil
}

func checkForged(in *image.RawImage) error {
	if in == nil || !in.IsForged() {
		return ErrNotForged
	}
	return nil
}

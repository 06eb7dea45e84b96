package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-img/lumen/internal/image"
	"github.com/lumen-img/lumen/internal/parallel"
)

func sequentialImage(t *testing.T, shape image.Shape) *image.RawImage {
	t.Helper()
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32(i)
	}
	r, err := image.FromSlice(data, shape, 1)
	require.NoError(t, err)
	return r
}

func TestScanShapeLaw(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4, 2})

	for _, tc := range []struct {
		process []bool
		want    image.Shape
	}{
		{[]bool{true, true, true}, image.Shape{1, 1, 1}},
		{[]bool{true, false, false}, image.Shape{1, 4, 2}},
		{[]bool{false, true, false}, image.Shape{3, 1, 2}},
		{[]bool{false, false, true}, image.Shape{3, 4, 1}},
		{nil, image.Shape{1, 1, 1}}, // empty selection reduces all axes
	} {
		out, err := Sum(in, nil, tc.process)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out.Shape(), "process %v", tc.process)
	}
}

func TestScanNoOpLaw(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4})
	mask, err := image.NewRaw(image.Shape{3, 4}, 1, image.Bool)
	require.NoError(t, err)

	// Zero axes selected: the output is the input unchanged, the mask is
	// ignored and no kernel runs.
	out, err := Sum(in, mask, []bool{false, false})
	require.NoError(t, err)
	assert.True(t, out.SharesBuffer(in))
	assert.Equal(t, in.Shape(), out.Shape())
	assert.Equal(t, image.Float32, out.DType())
	assert.Equal(t, float32(5), image.At[float32](out, 0, 1, 1))
}

func TestScanSingletonAxesForcedToReduce(t *testing.T) {
	in := sequentialImage(t, image.Shape{1, 5})

	// Asking to retain the singleton axis still collapses it, so this is
	// not a no-op: the kernel runs once per retained position.
	out, err := Mean(in, nil, Linear, []bool{false, false})
	require.NoError(t, err)
	assert.Equal(t, image.Shape{1, 5}, out.Shape())
	assert.False(t, out.SharesBuffer(in))
	for j := 0; j < 5; j++ {
		assert.Equal(t, float32(j), image.At[float32](out, 0, 0, j))
	}
}

func TestScanAxisSelectionLengthMismatch(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4})
	_, err := Sum(in, nil, []bool{true})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestScanMaskValidation(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4})

	wrongType, err := image.NewRaw(image.Shape{3, 4}, 1, image.Uint8)
	require.NoError(t, err)
	_, err = Sum(in, wrongType, nil)
	require.ErrorIs(t, err, ErrMaskIncompatible)

	wrongShape, err := image.NewRaw(image.Shape{3, 2}, 1, image.Bool)
	require.NoError(t, err)
	_, err = Sum(in, wrongShape, nil)
	require.ErrorIs(t, err, ErrMaskIncompatible)

	wrongRank, err := image.NewRaw(image.Shape{3}, 1, image.Bool)
	require.NoError(t, err)
	_, err = Sum(in, wrongRank, nil)
	require.ErrorIs(t, err, ErrMaskIncompatible)
}

func TestScanMaskSingletonBroadcast(t *testing.T) {
	in := sequentialImage(t, image.Shape{2, 3})
	// One mask row gates both image rows without a copy.
	mask, err := image.FromSlice([]bool{true, false, true}, image.Shape{1, 3}, 1)
	require.NoError(t, err)

	out, err := Sum(in, mask, nil)
	require.NoError(t, err)
	// Rows are 0 1 2 / 3 4 5; columns 0 and 2 participate.
	assert.Equal(t, float32(0+2+3+5), image.At[float32](out, 0, 0, 0))
}

func TestScanNotForged(t *testing.T) {
	_, err := Sum(image.NewEmpty(), nil, nil)
	require.ErrorIs(t, err, ErrNotForged)

	var nilImg *image.RawImage
	_, err = Sum(nilImg, nil, nil)
	require.ErrorIs(t, err, ErrNotForged)
}

func TestScanOutputAliasingRejected(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4})
	fn, err := newMeanKernel(image.Float32, false)
	require.NoError(t, err)

	err = Scan(in, nil, in, image.Float32, nil, fn)
	require.ErrorIs(t, err, ErrOutputAliasing)
	// The input is untouched after the failed call.
	assert.Equal(t, float32(11), image.At[float32](in, 0, 2, 3))
}

func TestScanStripsOverlappingOutput(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4})
	fn, err := newMeanKernel(image.Float32, false)
	require.NoError(t, err)

	// A destination viewing the input's buffer must be detached, not
	// written through.
	out := in.Clone()
	require.NoError(t, Scan(in, nil, out, image.Float32, nil, fn))
	assert.False(t, out.SharesBuffer(in))
	assert.Equal(t, float32(66), image.At[float32](out, 0, 0, 0))
	// Input data survives.
	assert.Equal(t, float32(11), image.At[float32](in, 0, 2, 3))
}

func TestScanFullReductionMatchesGeneralPath(t *testing.T) {
	in := sequentialImage(t, image.Shape{3, 4, 2})

	// Reduce everything in one call.
	full, err := Sum(in, nil, nil)
	require.NoError(t, err)

	// Loop the general path down to a single retained cell: reduce axes
	// one at a time.
	step, err := Sum(in, nil, []bool{true, false, false})
	require.NoError(t, err)
	step, err = Sum(step, nil, []bool{false, true, false})
	require.NoError(t, err)
	step, err = Sum(step, nil, []bool{false, false, true})
	require.NoError(t, err)

	assert.Equal(t, image.At[float32](full, 0, 0, 0, 0), image.At[float32](step, 0, 0, 0, 0))
}

func TestScanScratchConversionPath(t *testing.T) {
	in := sequentialImage(t, image.Shape{2, 3})
	fn, err := newMeanKernel(image.Float32, true)
	require.NoError(t, err)

	// Request integer output storage: results pass through a working-type
	// scratch sample and a converting copy.
	out := image.NewEmpty()
	require.NoError(t, Scan(in, nil, out, image.Int32, []bool{false, true}, fn))
	assert.Equal(t, image.Int32, out.DType())
	assert.Equal(t, int32(1), image.At[int32](out, 0, 0, 0)) // mean 1.0
	assert.Equal(t, int32(4), image.At[int32](out, 0, 1, 0)) // mean 4.0
}

func TestScanParallelMatchesSequential(t *testing.T) {
	in := sequentialImage(t, image.Shape{8, 16, 4})
	fn, err := newMeanKernel(image.Float32, true)
	require.NoError(t, err)

	seq := image.NewEmpty()
	require.NoError(t, ScanWithConfig(in, nil, seq, image.Float32, []bool{false, false, true}, fn, parallel.Sequential()))

	par := image.NewEmpty()
	cfg := parallel.Config{Enabled: true, NumWorkers: 7, MinChunkSize: 1}
	require.NoError(t, ScanWithConfig(in, nil, par, image.Float32, []bool{false, false, true}, fn, cfg))

	for i := 0; i < 8; i++ {
		for j := 0; j < 16; j++ {
			assert.Equal(t,
				image.At[float32](seq, 0, i, j, 0),
				image.At[float32](par, 0, i, j, 0),
				"position (%d,%d)", i, j)
		}
	}
}

func TestScanTensorAxisRetained(t *testing.T) {
	// Two pixels, three channels: reducing all spatial axes keeps one
	// result per channel.
	in, err := image.FromSlice([]int32{1, 10, 100, 3, 30, 300}, image.Shape{2}, 3)
	require.NoError(t, err)

	out, err := Sum(in, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Shape{1}, out.Shape())
	assert.Equal(t, 3, out.Tensor())
	assert.Equal(t, float64(4), image.At[float64](out, 0, 0))
	assert.Equal(t, float64(40), image.At[float64](out, 1, 0))
	assert.Equal(t, float64(400), image.At[float64](out, 2, 0))
}

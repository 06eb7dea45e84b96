package projection

import (
	"fmt"

	"github.com/lumen-img/lumen/internal/image"
	"github.com/lumen-img/lumen/internal/parallel"
)

// Scan collapses the axes of `in` selected by `process` into `out`,
// invoking fn once per retained output position with a view of the
// corresponding collapsed sub-volume (and of `mask`, when non-nil).
//
// An empty `process` selects every axis; otherwise its length must equal
// the input dimensionality. Axes of extent 1 are always collapsed, since a
// size-1 axis has nothing to retain. `out` is reforged to the output
// geometry with sample type outType; if it was forged over a buffer shared
// with `in` or `mask`, it is stripped first. `out` must be a distinct
// image object from `in` and `mask`.
//
// Scan partitions the retained-position index space across workers using
// the default parallel configuration; use ScanWithConfig to control it.
func Scan(in, mask, out *image.RawImage, outType image.DataType, process []bool, fn Projector) error {
	return ScanWithConfig(in, mask, out, outType, process, fn, parallel.DefaultConfig())
}

// ScanWithConfig is Scan with an explicit worker configuration.
func ScanWithConfig(in, mask, out *image.RawImage, outType image.DataType, process []bool, fn Projector, cfg parallel.Config) error {
	if in == nil || !in.IsForged() {
		return ErrNotForged
	}
	if out == in || (mask != nil && out == mask) {
		return fmt.Errorf("%w: destination is the input or mask image", ErrOutputAliasing)
	}
	inSizes := in.Shape()
	nDims := len(inSizes)

	// An empty selection means all axes are to be processed.
	if len(process) == 0 {
		process = make([]bool, nDims)
		for i := range process {
			process[i] = true
		}
	} else if len(process) != nDims {
		return fmt.Errorf("%w: got %d flags for %d dimensions", ErrShapeMismatch, len(process), nDims)
	} else {
		process = append([]bool(nil), process...)
	}

	// Working views separate the scan from the caller's headers, so the
	// destination can be stripped and reforged without touching the input.
	input := in.Clone()
	outTensor := in.Tensor()

	var maskView *image.RawImage
	if mask != nil && mask.IsForged() {
		if mask.DType() != image.Bool {
			return fmt.Errorf("%w: mask has sample type %s, not bool", ErrMaskIncompatible, mask.DType())
		}
		if mask.Tensor() != 1 && mask.Tensor() != outTensor {
			return fmt.Errorf("%w: mask has %d channels, input has %d", ErrMaskIncompatible, mask.Tensor(), outTensor)
		}
		expanded, err := mask.ExpandSingletons(inSizes)
		if err != nil {
			return fmt.Errorf("%w: mask shape %v vs input shape %v", ErrMaskIncompatible, mask.Shape(), inSizes)
		}
		maskView = expanded
	}

	// Determine output sizes, forcing singleton axes into the reduce set.
	outSizes := inSizes.Clone()
	procSizes := inSizes.Clone()
	processAny := false
	for i := 0; i < nDims; i++ {
		if inSizes[i] == 1 {
			process[i] = true
		}
		if process[i] {
			outSizes[i] = 1
			processAny = true
		} else {
			procSizes[i] = 1
		}
	}

	// Nothing to reduce: the output is the input unchanged, mask ignored.
	if !processAny {
		out.Alias(input)
		return nil
	}

	// Detach the destination before reforging so the samples being read
	// are not clobbered.
	if out.IsForged() && (out.SharesBuffer(input) || (maskView != nil && out.SharesBuffer(maskView))) {
		out.Strip()
	}
	if err := out.ReForge(outSizes, outTensor, outType); err != nil {
		return fmt.Errorf("projection: reforging output: %w", err)
	}
	output := out.Clone()

	// Treat the tensor dimension as an extra retained leading axis so one
	// odometer covers spatial and channel looping alike.
	if outTensor > 1 {
		input = input.TensorToSpatial()
		if maskView != nil {
			if maskView.Tensor() == outTensor {
				maskView = maskView.TensorToSpatial()
			} else {
				maskView = maskView.PrependAxis(outTensor, 0)
			}
		}
		output = output.TensorToSpatial()
		process = append([]bool{false}, process...)
		procSizes = append(image.Shape{1}, procSizes...)
		outSizes = output.Shape()
		nDims++
	}

	processAll := true
	for i := range process {
		if !process[i] {
			processAll = false
		}
	}

	// Reduce everything: a single kernel invocation over the whole input.
	if processAll {
		projectOne(fn, input, maskView, output, output.Offset(), newScratch(fn, output))
		return nil
	}

	// Views over the processing axes only: retained axes are flattened out,
	// so the kernel never sees them.
	tempIn, err := input.View(procSizes, input.Strides(), input.Offset())
	if err != nil {
		return fmt.Errorf("projection: %w", err)
	}
	tempIn = tempIn.Squeeze()
	var tempMask *image.RawImage
	if maskView != nil {
		tempMask, err = maskView.View(procSizes, maskView.Strides(), maskView.Offset())
		if err != nil {
			return fmt.Errorf("projection: %w", err)
		}
		tempMask = tempMask.Squeeze() // keep in sync with tempIn
	}

	// Squeeze the retained index space, keeping input, mask and output
	// strides in sync so one position vector drives all three walks.
	inStride := input.Strides()
	outStride := output.Strides()
	maskStride := make(image.Strides, nDims)
	if maskView != nil {
		maskStride = maskView.Strides()
	}
	sizes := make(image.Shape, 0, nDims)
	inS := make(image.Strides, 0, nDims)
	maskS := make(image.Strides, 0, nDims)
	outS := make(image.Strides, 0, nDims)
	for i := 0; i < nDims; i++ {
		if outSizes[i] > 1 {
			sizes = append(sizes, outSizes[i])
			inS = append(inS, inStride[i])
			maskS = append(maskS, maskStride[i])
			outS = append(outS, outStride[i])
		}
	}
	retained := len(sizes)

	total := 1
	for _, n := range sizes {
		total *= n
	}

	// Iterate over the retained positions. Workers own disjoint contiguous
	// ranges of the flat index space, so every output sample is written by
	// exactly one goroutine and no locking is needed.
	parallel.ForRanges(total, func(start, end int) {
		// Decode the range start into an odometer position and the three
		// walk offsets.
		position := make([]int, retained)
		f := start
		for i := retained - 1; i >= 0; i-- {
			position[i] = f % sizes[i]
			f /= sizes[i]
		}
		inOff := tempIn.Offset()
		maskOff := 0
		if tempMask != nil {
			maskOff = tempMask.Offset()
		}
		outOff := output.Offset()
		for i := 0; i < retained; i++ {
			inOff += position[i] * inS[i]
			maskOff += position[i] * maskS[i]
			outOff += position[i] * outS[i]
		}

		scratch := newScratch(fn, output)
		for k := start; k < end; k++ {
			var m *image.RawImage
			if tempMask != nil {
				m = tempMask.WithOffset(maskOff)
			}
			projectOne(fn, tempIn.WithOffset(inOff), m, output, outOff, scratch)

			// Advance the odometer: increment the fastest axis, carry into
			// slower axes by rewinding extent*stride.
			dd := retained - 1
			for ; dd >= 0; dd-- {
				position[dd]++
				inOff += inS[dd]
				maskOff += maskS[dd]
				outOff += outS[dd]
				if position[dd] != sizes[dd] {
					break
				}
				inOff -= inS[dd] * position[dd]
				maskOff -= maskS[dd] * position[dd]
				outOff -= outS[dd] * position[dd]
				position[dd] = 0
			}
			if dd < 0 {
				break
			}
		}
	}, cfg)

	return nil
}

// newScratch returns a single-sample working buffer when the output storage
// type differs from the kernel's working type, nil when the kernel can
// write straight into the output.
func newScratch(fn Projector, output *image.RawImage) *image.RawImage {
	if output.DType() == fn.WorkingType() {
		return nil
	}
	return image.NewScalar(fn.WorkingType())
}

// projectOne invokes the kernel for one output sample, routing the result
// through the same-type scratch sample when present.
func projectOne(fn Projector, in, mask, output *image.RawImage, outOff int, scratch *image.RawImage) {
	outElem := output.ElementView(outOff)
	if scratch == nil {
		fn.Project(in, mask, outElem)
		return
	}
	fn.Project(in, mask, scratch)
	_ = image.CopyScalar(scratch, outElem)
}

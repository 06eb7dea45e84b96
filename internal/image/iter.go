package image

// Per-element iteration primitives used inside a single reduction pass.
// All walks are odometer-driven: the last axis varies fastest, and carries
// rewind pointers by extent*stride instead of recomputing offsets.

// Walk invokes fn with the buffer offset of every pixel of the view, in
// row-major order. A zero-dimensional view yields exactly one call.
func Walk(r *RawImage, fn func(off int)) {
	walk(r.shape, r.strides, r.offset, fn)
}

// WalkJoint walks two views of identical shape in lockstep, invoking fn
// with both buffer offsets. The second view's strides may include zeros
// from singleton expansion.
func WalkJoint(a, b *RawImage, fn func(offA, offB int)) {
	nDims := len(a.shape)
	if nDims == 0 {
		fn(a.offset, b.offset)
		return
	}
	position := make([]int, nDims)
	offA, offB := a.offset, b.offset
	for {
		fn(offA, offB)
		dd := nDims - 1
		for ; dd >= 0; dd-- {
			position[dd]++
			offA += a.strides[dd]
			offB += b.strides[dd]
			if position[dd] != a.shape[dd] {
				break
			}
			offA -= a.strides[dd] * position[dd]
			offB -= b.strides[dd] * position[dd]
			position[dd] = 0
		}
		if dd < 0 {
			return
		}
	}
}

// WalkTensor walks every sample of the view (channels fastest).
func WalkTensor(r *RawImage, fn func(off int)) {
	Walk(r, func(off int) {
		for c := 0; c < r.tensor; c++ {
			fn(off + c*r.tstride)
		}
	})
}

func walk(shape Shape, strides Strides, offset int, fn func(off int)) {
	nDims := len(shape)
	if nDims == 0 {
		fn(offset)
		return
	}
	position := make([]int, nDims)
	off := offset
	for {
		fn(off)
		dd := nDims - 1
		for ; dd >= 0; dd-- {
			position[dd]++
			off += strides[dd]
			if position[dd] != shape[dd] {
				break
			}
			off -= strides[dd] * position[dd]
			position[dd] = 0
		}
		if dd < 0 {
			return
		}
	}
}

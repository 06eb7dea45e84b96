// Copyright 2026 Lumen Imaging. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package projection_test

import (
	"errors"
	"testing"

	"github.com/lumen-img/lumen/image"
	"github.com/lumen-img/lumen/projection"
)

// TestSumAPI verifies the re-exported entry points operate on public image
// values end to end.
func TestSumAPI(t *testing.T) {
	img, err := image.FromSlice([]float32{1, 2, 3, 4, 5, 6}, image.Shape{2, 3}, 1)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	out, err := projection.Sum(img, nil, nil)
	if err != nil {
		t.Fatalf("Sum failed: %v", err)
	}
	if got := out.Shape(); !got.Equal(image.Shape{1, 1}) {
		t.Errorf("Shape() = %v, want [1 1]", got)
	}
	if v := image.At[float32](out, 0, 0, 0); v != 21 {
		t.Errorf("Sum = %v, want 21", v)
	}
}

// TestPartialProjection verifies axis selection through the public surface.
func TestPartialProjection(t *testing.T) {
	img, err := image.FromSlice([]float64{1, 2, 3, 4, 5, 6}, image.Shape{2, 3}, 1)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	out, err := projection.Mean(img, nil, projection.Linear, []bool{true, false})
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	if got := out.Shape(); !got.Equal(image.Shape{1, 3}) {
		t.Errorf("Shape() = %v, want [1 3]", got)
	}
	want := []float64{2.5, 3.5, 4.5}
	for j, w := range want {
		if v := image.At[float64](out, 0, 0, j); v != w {
			t.Errorf("Mean column %d = %v, want %v", j, v, w)
		}
	}
}

// TestErrorSentinels verifies the re-exported errors match with errors.Is.
func TestErrorSentinels(t *testing.T) {
	img, err := image.FromSlice([]int32{1, 2}, image.Shape{2}, 1)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if _, err := projection.Sum(img, nil, []bool{true, false}); !errors.Is(err, projection.ErrShapeMismatch) {
		t.Errorf("want ErrShapeMismatch, got %v", err)
	}
	if _, err := projection.Mean(img, nil, projection.Directional, nil); !errors.Is(err, projection.ErrUnsupportedType) {
		t.Errorf("want ErrUnsupportedType, got %v", err)
	}
	if _, err := projection.Sum(image.NewEmpty(), nil, nil); !errors.Is(err, projection.ErrNotForged) {
		t.Errorf("want ErrNotForged, got %v", err)
	}
}

// TestScanWithCustomProjector verifies Scan accepts a caller-supplied
// Projector through the alias.
func TestScanWithCustomProjector(t *testing.T) {
	img, err := image.FromSlice([]float64{4, 9, 16, 25}, image.Shape{4}, 1)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	out := image.NewEmpty()

	var fn projection.Projector = countProjector{}
	if err := projection.Scan(img, nil, out, image.Float64, nil, fn); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if v := image.At[float64](out, 0, 0); v != 4 {
		t.Errorf("count = %v, want 4", v)
	}
}

// countProjector counts participating samples.
type countProjector struct{}

func (countProjector) WorkingType() image.DataType { return image.Float64 }

func (countProjector) Project(in, mask, out *image.RawImage) {
	var n float64
	if mask != nil {
		buf := image.BufferAs[bool](mask)
		image.Walk(mask, func(off int) {
			if buf[off] {
				n++
			}
		})
	} else {
		image.Walk(in, func(int) { n++ })
	}
	image.BufferAs[float64](out)[out.Offset()] = n
}

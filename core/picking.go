// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"log/slog"

	"github.com/visualcomputing/frames/math32"
)

// Precision is the policy matching a pointer position against a frame for
// picking.
type Precision int32

const (
	// Fixed picks within a screen-space box of the precision threshold,
	// in pixels, around the frame's projected position.
	Fixed Precision = iota

	// Adaptive scales the threshold by the frame magnitude and the pixel
	// to graph ratio at the frame position, so a fixed world-space box
	// maps to a distance-dependent pixel box.
	Adaptive

	// Exact is a per-pixel silhouette test against a picking buffer. The
	// buffer must be supplied externally; without one, tracking falls
	// back to Fixed behavior with a diagnostic.
	Exact
)

// Precision returns the picking precision mode of this frame.
func (f *Frame) Precision() Precision {
	return f.precision
}

// SetPrecision sets the picking precision mode. Exact requires external
// picking-buffer support and behaves like Fixed at this layer.
func (f *Frame) SetPrecision(precision Precision) {
	if precision == Exact {
		slog.Error("core.Frame.SetPrecision: Exact picking requires an external buffer, tracking falls back to Fixed")
	}
	f.precision = precision
}

// PrecisionThreshold returns the effective picking threshold in pixels:
// the raw threshold for Fixed precision, or the world-space threshold
// scaled by the frame magnitude and the pixel to graph ratio at the frame
// position for Adaptive, growing with the distance to the eye.
func (f *Frame) PrecisionThreshold() float32 {
	if f.precision == Adaptive {
		return f.precisionThreshold * f.Scaling() * f.graph.PixelToGraphRatio(f.Position())
	}
	return f.precisionThreshold
}

// SetPrecisionThreshold sets the picking threshold. Negative values are
// ignored with a diagnostic.
func (f *Frame) SetPrecisionThreshold(threshold float32) {
	if threshold < 0 {
		slog.Error("core.Frame.SetPrecisionThreshold: threshold should not be negative, nothing done", "threshold", threshold)
		return
	}
	f.precisionThreshold = threshold
}

// Track returns whether the given pixel position picks this frame: the
// pointer must be within half the effective threshold of the frame's
// projected position, independently in x and y. Eye frames are never
// tracked.
func (f *Frame) Track(x, y float32) bool {
	if f.IsEye() {
		return false
	}
	threshold := f.PrecisionThreshold()
	proj := f.graph.ProjectedCoordinatesOf(f.Position())
	return math32.Abs(x-proj.X) < threshold/2 && math32.Abs(y-proj.Y) < threshold/2
}

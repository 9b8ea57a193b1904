// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package preview plans deterministic camera and lighting placements that
// frame an arbitrarily sized mesh collection across seven canonical
// viewpoints, and drives an external rendering engine once per view.
// All planning functions are pure: identical inputs give bit-identical
// placements.
package preview

import "cogentcore.org/core/math32"

// Framing captures the world-space extent that camera and light planning
// work from.
type Framing struct {

	// Center is the center of the model bounds.
	Center math32.Vector3

	// Size is the raw bounds size per axis, which can be zero for
	// degenerate or empty scenes.
	Size math32.Vector3

	// MaxDim is the largest bounds dimension, floored at 1 so that a
	// degenerate or point-like model cannot collapse the framing math.
	MaxDim float32
}

// NewFraming derives the framing from a bounding box, applying the unit
// fallback: MaxDim is the largest axis size, never less than 1.
func NewFraming(b math32.Box3) Framing {
	sz := b.Size()
	return Framing{
		Center: b.Center(),
		Size:   sz,
		MaxDim: math32.Max(math32.Max(sz.X, sz.Y), math32.Max(sz.Z, 1)),
	}
}

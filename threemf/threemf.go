// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package threemf is a self-contained importer for the 3MF packaged model
// format (a zip container holding an XML model document). It reconstructs
// mesh geometry and per-face material assignment without relying on any
// host importer, producing an immutable [Scene] that downstream planning
// code treats as read-only.
package threemf

import (
	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
)

// MaterialDefinition is one base material from a basematerials group:
// a display name and an RGBA color in 0-1 units. The 3MF core spec
// carries no surface properties, so Roughness and Metallic are fixed
// importer defaults chosen to read well in a lit preview.
type MaterialDefinition struct {

	// Name is the human-readable label from the archive. Names are not
	// unique across groups and are never used for addressing.
	Name string

	// Color is the RGBA display color, components in [0,1].
	Color math32.Vector4

	// Roughness is always 0.5.
	Roughness float32

	// Metallic is always 0.1.
	Metallic float32
}

// MaterialGroup is a named collection of material definitions.
// The position of a definition within Materials is its addressing
// index: triangles and objects refer to (group id, index) pairs.
type MaterialGroup struct {

	// ID is the basematerials group id from the archive.
	ID string

	// Materials holds the definitions in document order.
	Materials []*MaterialDefinition
}

// Triangle is one face of a [Mesh]: three indices into the mesh vertex
// list plus the resolved material slot.
type Triangle struct {

	// V1, V2, V3 index into [Mesh.Vertices].
	V1, V2, V3 int

	// Material indexes into [Mesh.Materials]. Faces with no resolvable
	// material get slot 0 by convention; if the mesh instantiates no
	// materials at all the slot is meaningless and the mesh renders
	// unmaterialled.
	Material int
}

// Mesh is one placed mesh instance: local-space vertices, triangles,
// the materials it actually uses, and its world transform.
type Mesh struct {

	// Name is the object name from the archive, or a generated one.
	Name string

	// Vertices are local-space positions.
	Vertices []math32.Vector3

	// Triangles index into Vertices; every index is validated < len(Vertices).
	Triangles []Triangle

	// Materials are the definitions referenced by this mesh, in first-use
	// order, with no duplicates. [Triangle.Material] indexes this list.
	Materials []*MaterialDefinition

	// Matrix is the world transform from the build item (and any component
	// chain); identity when the archive places nothing explicitly.
	Matrix math32.Matrix4
}

// Scene is the result of one import run: the placed meshes plus the full
// material palette. It is created once and read-only thereafter.
type Scene struct {

	// Meshes are the placed mesh instances, in build order.
	Meshes []*Mesh

	// Groups is the full material palette by group id, in document order,
	// including definitions no mesh ended up using.
	Groups ordmap.Map[string, *MaterialGroup]

	// Dropped counts objects skipped for missing or invalid geometry.
	// These are warnings, not errors; see [Import].
	Dropped int
}

// Bounds returns the world-space axis-aligned bounding box of all
// geometry, passing every vertex through its mesh world matrix.
// A scene with no geometry returns the zero box (center at the origin,
// size zero); callers framing a view must apply a unit fallback so the
// math does not collapse (see preview.NewFraming).
func (sc *Scene) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	for _, ms := range sc.Meshes {
		for _, v := range ms.Vertices {
			bb.ExpandByPoint(v.MulMatrix4AsVector4(&ms.Matrix, 1))
		}
	}
	if bb.IsEmpty() {
		return math32.Box3{}
	}
	return bb
}

// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preview

import "cogentcore.org/core/math32"

// Light is one area-type emitter placement.
type Light struct {

	// Name identifies the light's role in the rig.
	Name string

	// Pos is the emitter position in world space.
	Pos math32.Vector3

	// Quat is the orientation; emission is along the local -Z axis.
	Quat math32.Quat

	// Energy is the emitter intensity.
	Energy float32

	// Size is the emitter edge length, scaled to the model.
	Size float32
}

// PlanLights computes the fixed four-light rig for the given framing:
// key, fill, and rim approximate photographic three-point lighting, and
// a soft bottom fill keeps undersides from going pure black under
// shadow-revealing orthographic views. The relative offsets and
// intensity ratios are empirically tuned and must not drift, or renders
// stop being comparable across runs.
func PlanLights(fr Framing) []Light {
	d := fr.MaxDim * 2.5
	lights := []Light{
		{Name: "key", Pos: fr.Center.Add(math32.Vec3(0.8*d, -0.8*d, d)), Energy: 300, Size: 2 * fr.MaxDim},
		{Name: "fill", Pos: fr.Center.Add(math32.Vec3(-0.6*d, -0.6*d, 0.5*d)), Energy: 150, Size: 3 * fr.MaxDim},
		{Name: "rim", Pos: fr.Center.Add(math32.Vec3(0, 0.8*d, 0.8*d)), Energy: 200, Size: 2 * fr.MaxDim},
		{Name: "bottom", Pos: fr.Center.Add(math32.Vec3(0, 0, -0.5*d)), Energy: 50, Size: 4 * fr.MaxDim},
	}
	for i := range lights[:3] {
		lt := &lights[i]
		lt.Quat.SetFromRotationMatrix(math32.NewLookAt(lt.Pos, fr.Center, upZ))
	}
	// The bottom fill points straight up rather than tracking the center;
	// it exists to wash the underside, not to spotlight it.
	lights[3].Quat = math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.DegToRad(180))
	return lights
}

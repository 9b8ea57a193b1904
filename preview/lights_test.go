// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preview

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestPlanLightsRig(t *testing.T) {
	fr := testFraming()
	lights := PlanLights(fr)
	assert.Equal(t, 4, len(lights))

	d := fr.MaxDim * 2.5
	want := []struct {
		name   string
		offset math32.Vector3
		energy float32
		size   float32
	}{
		{"key", math32.Vec3(0.8*d, -0.8*d, d), 300, 2 * fr.MaxDim},
		{"fill", math32.Vec3(-0.6*d, -0.6*d, 0.5*d), 150, 3 * fr.MaxDim},
		{"rim", math32.Vec3(0, 0.8*d, 0.8*d), 200, 2 * fr.MaxDim},
		{"bottom", math32.Vec3(0, 0, -0.5*d), 50, 4 * fr.MaxDim},
	}
	for i, w := range want {
		lt := lights[i]
		assert.Equal(t, w.name, lt.Name)
		tolAssertVector(t, fr.Center.Add(w.offset), lt.Pos)
		assert.Equal(t, w.energy, lt.Energy)
		assert.Equal(t, w.size, lt.Size)
	}
}

func TestPlanLightsAimedAtCenter(t *testing.T) {
	fr := testFraming()
	lights := PlanLights(fr)
	for _, lt := range lights[:3] {
		fwd := math32.Vec3(0, 0, -1).MulQuat(lt.Quat)
		want := fr.Center.Sub(lt.Pos).Normal()
		tolAssertVector(t, want, fwd)
	}
}

func TestPlanLightsBottomPointsUp(t *testing.T) {
	fr := testFraming()
	bottom := PlanLights(fr)[3]
	fwd := math32.Vec3(0, 0, -1).MulQuat(bottom.Quat)
	tolAssertVector(t, math32.Vec3(0, 0, 1), fwd)
}

func TestPlanLightsDeterminism(t *testing.T) {
	fr := testFraming()
	assert.Equal(t, PlanLights(fr), PlanLights(fr))
}

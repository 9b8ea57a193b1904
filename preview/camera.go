// Copyright (c) 2026, The Previewmf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preview

import "cogentcore.org/core/math32"

// Canonical view names. The model convention is Z up, Y away from the
// viewer, matching the direction table below.
const (
	Iso    = "iso"
	Front  = "front"
	Back   = "back"
	Left   = "left"
	Right  = "right"
	Top    = "top"
	Bottom = "bottom"
)

// Views lists the canonical views in standard render order.
var Views = []string{Iso, Front, Back, Left, Right, Top, Bottom}

// viewDirs are unit directions from model center to camera, per view.
var viewDirs = map[string]math32.Vector3{
	Iso:    math32.Vec3(1, 1, 1).Normal(),
	Front:  math32.Vec3(0, -1, 0),
	Back:   math32.Vec3(0, 1, 0),
	Left:   math32.Vec3(-1, 0, 0),
	Right:  math32.Vec3(1, 0, 0),
	Top:    math32.Vec3(0, 0, 1),
	Bottom: math32.Vec3(0, 0, -1),
}

// upZ is the world vertical used for all look-at orientations.
var upZ = math32.Vec3(0, 0, 1)

// ValidView reports whether name is one of the canonical views.
func ValidView(name string) bool {
	_, ok := viewDirs[name]
	return ok
}

// Camera is a fully determined orthographic camera placement for one view.
type Camera struct {

	// Pos is the camera position in world space.
	Pos math32.Vector3

	// Target is the look-at point: always the model center.
	Target math32.Vector3

	// Quat is the orientation: forward axis (-Z) toward Target, up kept
	// as close to the world vertical as the view allows.
	Quat math32.Quat

	// HalfExtent is the orthographic half-extent: half the visible
	// world-space width and height under parallel projection. Always
	// exactly MaxDim * 1.8, reserving padding so silhouette lines are
	// not clipped at the frame border.
	HalfExtent float32

	// Near and Far are the clip planes. Far is generous so large
	// assemblies are never clipped; depth precision does not matter in
	// an orthographic line-rendered preview.
	Near, Far float32
}

// PlanCamera computes the camera placement for the named view. Unknown
// view names fall back to the iso direction: at this layer the tool
// always produces an image, and strict validation of requested names is
// the orchestrator's job (see [Render]).
func PlanCamera(view string, fr Framing) Camera {
	dir, ok := viewDirs[view]
	if !ok {
		dir = viewDirs[Iso]
	}
	dist := fr.MaxDim * 3.0
	cm := Camera{
		Pos:        fr.Center.Add(dir.MulScalar(dist)),
		Target:     fr.Center,
		HalfExtent: fr.MaxDim * 1.8,
		Near:       0.1,
		Far:        math32.Max(dist*2.0, fr.MaxDim*5.0),
	}
	cm.Quat.SetFromRotationMatrix(math32.NewLookAt(cm.Pos, cm.Target, upZ))
	return cm
}

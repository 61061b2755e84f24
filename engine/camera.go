// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/scene"
)

// Camera defines the viewing properties of the scene.
type Camera struct {
	// Pos is the position of the camera.
	Pos math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// UpDir is the up direction of the camera.
	UpDir math32.Vector3

	// Ortho makes an orthographic camera instead of the default
	// perspective one, viewing the volume between Near and Far.
	Ortho bool

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width/height).
	Aspect float32

	Near float32
	Far  float32

	ViewMatrix     math32.Matrix4
	ProjMatrix     math32.Matrix4
	ViewProjMatrix math32.Matrix4
}

// NewCamera returns a camera with [Camera.Defaults].
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.Pos = math32.Vec3(0, 0, 10)
	cm.Target = math32.Vector3{}
	cm.UpDir = math32.Vec3(0, 1, 0)
}

// UpdateMatrix updates the view and projection matrices.
func (cm *Camera) UpdateMatrix() {
	cm.ViewMatrix.SetLookAt(cm.Pos, cm.Target, cm.UpDir)
	if cm.Ortho {
		height := 2 * cm.Far * math32.Tan(math32.DegToRad(cm.FOV*0.5))
		width := cm.Aspect * height
		cm.ProjMatrix.SetOrthographic(-width/2, width/2, -height/2, height/2, cm.Near, cm.Far)
	} else {
		cm.ProjMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
	cm.ViewProjMatrix.MulMatrices(&cm.ProjMatrix, &cm.ViewMatrix)
}

// LookAt points the camera at the given target with the given up direction.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	cm.UpDir = upDir
	cm.UpdateMatrix()
}

// ViewVector returns the vector from the camera position to the target.
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Target.Sub(cm.Pos)
}

// Zoom moves the camera toward the target by the given percent of
// the distance to it; negative values move away.
func (cm *Camera) Zoom(zoomPct float32) {
	cm.Pos = cm.Pos.Add(cm.ViewVector().MulScalar(zoomPct / 100))
	cm.UpdateMatrix()
}

// Pan moves the camera and its target together.
func (cm *Camera) Pan(delta math32.Vector3) {
	cm.Pos = cm.Pos.Add(delta)
	cm.Target = cm.Target.Add(delta)
	cm.UpdateMatrix()
}

// View returns the culling view of the camera.
func (cm *Camera) View() *scene.View {
	cm.UpdateMatrix()
	return scene.NewView(cm.Pos, &cm.ViewProjMatrix)
}

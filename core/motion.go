// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"log/slog"

	"github.com/visualcomputing/frames/events"
	"github.com/visualcomputing/frames/math32"
)

// This file converts user gestures, expressed as [events.Motion] values,
// into frame motion. Every gesture routine is built from three conversion
// primitives: [Frame.ScreenToEye], [Frame.EyeToReferenceFrame] and
// [Frame.ScreenToQuaternion]. Gestures on the eye move the viewpoint,
// the same gestures on any other frame move that frame in the scene.

// wheel events carry a single degree of freedom.
func wheel(e events.Motion) bool { return e.DOF == 1 }

// computeAngle scales a pixel displacement to an angle, a full viewport
// width mapping to half a turn.
func (f *Frame) computeAngle(dx float32) float32 {
	return dx * math32.Pi / float32(f.graph.width)
}

// CONVERSION PRIMITIVES

// ScreenToVector transforms a gesture displacement from screen
// coordinates to the reference frame coordinates of this frame:
// EyeToReferenceFrame composed with ScreenToEye.
func (f *Frame) ScreenToVector(vector math32.Vector3) math32.Vector3 {
	return f.EyeToReferenceFrame(f.ScreenToEye(vector))
}

// EyeToReferenceFrame transforms the vector from eye coordinates to the
// reference frame coordinates of this frame.
func (f *Frame) EyeToReferenceFrame(vector math32.Vector3) math32.Vector3 {
	gFrame := f
	if !f.IsEye() {
		if gFrame = f.graph.Eye(); gFrame == nil {
			slog.Error("core.Frame.EyeToReferenceFrame: graph has no eye, vector returned unchanged")
			return vector
		}
	}
	t := gFrame.InverseTransformOf(vector)
	if ref := f.Reference(); ref != nil {
		t = ref.TransformOf(t)
	}
	return t
}

// ScreenToEye transforms the vector from screen (pixel) coordinates into
// eye coordinates, scaling the x and y displacements so that a gesture
// spanning the viewport spans the frustum cross section at the frame
// depth, and the z displacement by the distance to the anchor (for the
// eye) or to the eye (for any other frame).
func (f *Frame) ScreenToEye(vector math32.Vector3) math32.Vector3 {
	eye := f.graph.Eye()
	if eye == nil {
		slog.Error("core.Frame.ScreenToEye: graph has no eye, vector returned unchanged")
		return vector
	}
	eyeVector := vector
	switch f.graph.gtype {
	case Perspective:
		position := f.Position()
		if f.IsEye() {
			position = f.graph.anchor
		}
		k := math32.Tan(f.graph.fov/2) * math32.Abs(eye.CoordinatesOf(position).Z*eye.Magnitude())
		eyeVector.X *= 2 * k / float32(f.graph.height)
		eyeVector.Y *= 2 * k / float32(f.graph.height)
	case Orthographic, TwoD:
		hw, hh := f.graph.BoundaryWidthHeight()
		eyeVector.X *= 2 * hw / float32(f.graph.width)
		eyeVector.Y *= 2 * hh / float32(f.graph.height)
	}
	var coef float32
	if f.IsEye() {
		coef = math32.Max(math32.Abs(f.CoordinatesOf(f.graph.anchor).Z*f.Magnitude()), 0.2*f.graph.radius)
	} else {
		coef = eye.Position().Sub(f.Position()).Length()
	}
	eyeVector.Z *= coef / float32(f.graph.height)
	return eyeVector.DivScalar(eye.Magnitude())
}

// ScreenToQuaternion reduces screen extrinsic euler angles, in radians
// around the screen x, y and z axes, into a quaternion expressed in this
// frame's coordinates.
func (f *Frame) ScreenToQuaternion(roll, pitch, yaw float32) math32.Quat {
	if f.IsEye() {
		if f.graph.leftHanded {
			roll, yaw = -roll, -yaw
		}
		return math32.NewQuatEuler(math32.Vec3(roll, pitch, yaw))
	}
	eye := f.graph.Eye()
	if eye == nil {
		slog.Error("core.Frame.ScreenToQuaternion: graph has no eye, identity returned")
		return math32.Quat{W: 1}
	}
	if !f.graph.leftHanded {
		roll, yaw = -roll, -yaw
	}
	q := math32.NewQuatEuler(math32.Vec3(roll, -pitch, yaw))
	axis := f.TransformOf(eye.Orientation().RotateVec(math32.Vec3(-q.X, -q.Y, -q.Z)))
	q.X, q.Y, q.Z = axis.X, axis.Y, axis.Z
	return q
}

// GESTURE HELPERS

// updateUpVector keeps the up vector in sync with the frame orientation.
// First person and CAD gestures latch it when the gesture fires.
func (f *Frame) updateUpVector() {
	f.upVector = f.Orientation().RotateVec(math32.Vec3(0, 1, 0))
}

// originalDirection latches the dominant axis of the first decisive event
// of a gesture: 1 for horizontal, -1 for vertical, 0 while undecided.
func (f *Frame) originalDirection(e events.Motion) int {
	if !f.directionIsFixed {
		f.directionIsFixed = math32.Abs(e.DX) != math32.Abs(e.DY)
		f.horizontal = math32.Abs(e.DX) > math32.Abs(e.DY)
	}
	if !f.directionIsFixed {
		return 0
	}
	if f.horizontal {
		return 1
	}
	return -1
}

// projectOnBall maps a centered screen point to the z height of the
// deformed arcball surface: a sphere blended into a hyperbolic sheet away
// from the center so the quaternion varies smoothly at the silhouette.
func projectOnBall(x, y float32) float32 {
	const size = 1.0
	const size2 = size * size
	const sizeLimit = size2 * 0.5
	d := x*x + y*y
	if d < sizeLimit {
		return math32.Sqrt(size2 - d)
	}
	return sizeLimit / math32.Sqrt(d)
}

// deformedBallQuaternion returns the arcball rotation spanned by the
// event displacement around the given projected center, in pixels.
func (f *Frame) deformedBallQuaternion(e events.Motion, center math32.Vector3) math32.Quat {
	cx, cy := center.X, center.Y
	py := f.rotationSensitivity * (cy - e.PrevY) / float32(f.graph.height)
	dy := f.rotationSensitivity * (cy - e.Y) / float32(f.graph.height)
	if f.graph.leftHanded {
		py, dy = -py, -dy
	}
	px := f.rotationSensitivity * (e.PrevX - cx) / float32(f.graph.width)
	dx := f.rotationSensitivity * (e.X - cx) / float32(f.graph.width)
	p1 := math32.Vec3(px, py, projectOnBall(px, py))
	p2 := math32.Vec3(dx, dy, projectOnBall(dx, dy))
	axis := p2.Cross(p1)
	angle := 2 * math32.Asin(math32.Sqrt(axis.LengthSquared()/(p1.LengthSquared()*p2.LengthSquared())))
	return math32.NewQuatAxisAngle(axis, angle)
}

// rollPitchQuaternion composes the two rotations inferred from a 2-DOF
// gesture: pitch around the screen x axis and roll around the up vector.
func (f *Frame) rollPitchQuaternion(e events.Motion) math32.Quat {
	deltaX, deltaY := e.DX, e.DY
	if f.graph.IsRightHanded() {
		deltaY = -deltaY
	}
	rotX := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), f.rotationSensitivity*deltaY/float32(f.graph.height))
	rotY := math32.NewQuatAxisAngle(f.TransformOf(f.upVector), f.rotationSensitivity*(-deltaX)/float32(f.graph.width))
	return rotY.Mul(rotX)
}

// turnQuaternion is a rotation around the y axis proportional to the
// horizontal event displacement, used to steer while driving.
func (f *Frame) turnQuaternion(e events.Motion) math32.Quat {
	return math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), f.rotationSensitivity*(-e.DX)/float32(f.graph.width))
}

// ALIGN AND CENTER

// Align rotates the eye so its axes snap to the nearest world axes, or
// aligns any other frame with the eye frame.
func (f *Frame) Align() {
	if f.IsEye() {
		f.AlignWithFrame(nil, true, f.graph.settings.AlignThreshold)
		return
	}
	eye := f.graph.Eye()
	if eye == nil {
		slog.Error("core.Frame.Align: graph has no eye")
		return
	}
	f.AlignWithFrame(eye, false, f.graph.settings.AlignThreshold)
}

// Center translates the eye onto the line through the graph center along
// the view direction, or projects any other frame onto the eye axis, so
// the frame ends up centered in the viewport.
func (f *Frame) Center() {
	if f.IsEye() {
		f.ProjectOnLine(f.graph.center, f.graph.ViewDirection())
		return
	}
	eye := f.graph.Eye()
	if eye == nil {
		slog.Error("core.Frame.Center: graph has no eye")
		return
	}
	f.ProjectOnLine(eye.Position(), eye.ZAxis())
}

// TRANSLATION

// TranslateX translates the frame along the screen x axis by the event's
// horizontal delta. Wheel events use the wheel sensitivity.
func (f *Frame) TranslateX(e events.Motion) {
	sensitivity := f.translationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.translateX(e.Event1(true), sensitivity)
}

// TranslateXPos translates the frame one keyboard step along the positive
// screen x axis.
func (f *Frame) TranslateXPos() { f.translateXKey(true) }

// TranslateXNeg translates the frame one keyboard step along the negative
// screen x axis.
func (f *Frame) TranslateXNeg() { f.translateXKey(false) }

func (f *Frame) translateX(e events.Motion, sensitivity float32) {
	dx := e.DX
	if f.IsEye() {
		dx = -dx
	}
	f.Translate(f.ScreenToVector(math32.Vec3(dx, 0, 0).MulScalar(sensitivity)))
}

func (f *Frame) translateXKey(right bool) {
	dx := -f.keySensitivity
	if right != f.IsEye() {
		dx = f.keySensitivity
	}
	f.Translate(f.ScreenToVector(math32.Vec3(dx, 0, 0)))
}

// TranslateY translates the frame along the screen y axis by the event's
// vertical delta. Wheel events use the wheel sensitivity.
func (f *Frame) TranslateY(e events.Motion) {
	sensitivity := f.translationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.translateY(e.Event1(e.DOF == 1), sensitivity)
}

// TranslateYPos translates the frame one keyboard step along the positive
// screen y axis.
func (f *Frame) TranslateYPos() { f.translateYKey(true) }

// TranslateYNeg translates the frame one keyboard step along the negative
// screen y axis.
func (f *Frame) TranslateYNeg() { f.translateYKey(false) }

func (f *Frame) translateY(e events.Motion, sensitivity float32) {
	dy := e.DX
	if f.IsEye() != f.graph.IsRightHanded() {
		dy = -dy
	}
	f.Translate(f.ScreenToVector(math32.Vec3(0, dy, 0).MulScalar(sensitivity)))
}

func (f *Frame) translateYKey(up bool) {
	dy := -f.keySensitivity
	if (up != f.IsEye()) != f.graph.leftHanded {
		dy = f.keySensitivity
	}
	f.Translate(f.ScreenToVector(math32.Vec3(0, dy, 0)))
}

// TranslateZ translates the frame along the screen z axis by the event's
// horizontal delta. Wheel events use the wheel sensitivity.
func (f *Frame) TranslateZ(e events.Motion) {
	sensitivity := f.translationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.translateZ(e.Event1(true), sensitivity)
}

// TranslateZPos translates the frame one keyboard step along the positive
// screen z axis.
func (f *Frame) TranslateZPos() { f.translateZKey(true) }

// TranslateZNeg translates the frame one keyboard step along the negative
// screen z axis.
func (f *Frame) TranslateZNeg() { f.translateZKey(false) }

func (f *Frame) translateZ(e events.Motion, sensitivity float32) {
	dz := e.DX
	if f.IsEye() {
		dz = -dz
	}
	f.Translate(f.ScreenToVector(math32.Vec3(0, 0, dz).MulScalar(sensitivity)))
}

func (f *Frame) translateZKey(up bool) {
	dz := f.keySensitivity
	if up != f.IsEye() {
		dz = -f.keySensitivity
	}
	f.Translate(f.ScreenToVector(math32.Vec3(0, 0, dz)))
}

// TranslateMotion pans the frame in the screen plane by a 2-DOF event,
// typically a drag. The eye pans against the gesture so the scene follows
// the pointer.
func (f *Frame) TranslateMotion(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.TranslateMotion: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	dx := e2.DX
	if f.IsEye() {
		dx = -dx
	}
	dy := e2.DY
	if f.graph.IsRightHanded() != f.IsEye() {
		dy = -dy
	}
	f.Translate(f.ScreenToVector(math32.Vec3(dx, dy, 0).MulScalar(f.translationSensitivity)))
}

// TranslateXYZ translates the frame by a 3-DOF event.
func (f *Frame) TranslateXYZ(e events.Motion) {
	if e.DOF < 3 {
		slog.Error("core.Frame.TranslateXYZ: requires a motion event of at least 3 DOFs", "dof", e.DOF)
		return
	}
	dy := e.DY
	if f.graph.IsRightHanded() {
		dy = -dy
	}
	f.Translate(f.ScreenToVector(math32.Vec3(e.DX, dy, -e.DZ).MulScalar(f.translationSensitivity)))
}

// TranslateRotateXYZ converts a 6-DOF event, such as a space navigator
// displacement, into a translation from its translational deltas and a
// rotation from its rotational deltas.
func (f *Frame) TranslateRotateXYZ(e events.Motion) {
	if e.DOF < 6 {
		slog.Error("core.Frame.TranslateRotateXYZ: requires a motion event of 6 DOFs", "dof", e.DOF)
		return
	}
	f.TranslateXYZ(events.Motion{DOF: 3, DX: e.DX, DY: e.DY, DZ: e.DZ,
		Fired: e.Fired, Flushed: e.Flushed, Speed: e.Speed, Delay: e.Delay})
	f.RotateXYZ(events.Motion{DOF: 3, DX: e.DRX, DY: e.DRY, DZ: e.DRZ,
		Fired: e.Fired, Flushed: e.Flushed, Speed: e.Speed, Delay: e.Delay})
}

// ZOOM

// ZoomOnAnchor translates the frame along the line through its position
// and the graph anchor, zooming the eye in and out of the scene. Wheel
// events use the wheel sensitivity.
func (f *Frame) ZoomOnAnchor(e events.Motion) {
	sensitivity := f.translationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.zoomOnAnchor(e.Event1(true).DX, sensitivity)
}

// ZoomOnAnchorPos zooms the frame one keyboard step towards the anchor.
func (f *Frame) ZoomOnAnchorPos() { f.zoomOnAnchor(f.keySensitivity, 1) }

// ZoomOnAnchorNeg zooms the frame one keyboard step away from the anchor.
func (f *Frame) ZoomOnAnchorNeg() { f.zoomOnAnchor(-f.keySensitivity, 1) }

// zoomOnAnchor translates the frame along the direction to the anchor.
// Within two percent of the graph radius of the anchor only positive
// deltas keep being applied, so the frame cannot park on the anchor.
func (f *Frame) zoomOnAnchor(dx, sensitivity float32) {
	direction := f.graph.anchor.Sub(f.Position())
	if ref := f.Reference(); ref != nil {
		direction = ref.TransformOf(direction)
	}
	delta := dx * sensitivity / float32(f.graph.height)
	if direction.Length() > 0.02*f.graph.radius || delta > 0 {
		f.Translate(direction.MulScalar(delta))
	}
}

// ZoomOnRegion fits the screen rectangle spanned by a 2-DOF gesture into
// the viewport: the fired event anchors one corner, the flushed event
// drops the opposite one. Only the eye can zoom on a region.
func (f *Frame) ZoomOnRegion(e events.Motion) {
	if !f.IsEye() {
		slog.Error("core.Frame.ZoomOnRegion: only makes sense for the eye")
		return
	}
	if e.DOF < 2 {
		slog.Error("core.Frame.ZoomOnRegion: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	switch {
	case e.Fired:
		f.zoomInitX, f.zoomInitY = e.X, e.Y
	case e.Flushed:
		x := math32.Min(e.X, f.zoomInitX)
		y := math32.Min(e.Y, f.zoomInitY)
		f.graph.FitScreenRegion(x, y, math32.Abs(e.X-f.zoomInitX), math32.Abs(e.Y-f.zoomInitY))
	}
}

// ROTATION

// RotateMotion converts a 2-DOF drag into an arcball rotation: the eye
// orbits the anchor, any other frame rotates around its origin. Releasing
// the gesture with zero damping leaves the frame spinning.
func (f *Frame) RotateMotion(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.RotateMotion: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	if e2.Fired {
		f.StopSpinning()
		if eye := f.graph.Eye(); eye != nil {
			f.cadRotationIsReversed = eye.TransformOf(f.upVector).Y < 0
		}
	}
	if e2.Flushed {
		if f.damping == 0 {
			f.StartSpinning(f.spinningQuaternion, f.eventSpeed, f.eventDelay)
		}
		return
	}
	var rt math32.Quat
	if f.IsEye() {
		rt = f.deformedBallQuaternion(e2, f.graph.ProjectedCoordinatesOf(f.graph.anchor))
	} else {
		eye := f.graph.Eye()
		if eye == nil {
			slog.Error("core.Frame.RotateMotion: graph has no eye")
			return
		}
		rt = f.deformedBallQuaternion(e2, f.graph.ProjectedCoordinatesOf(f.Position()))
		axis := f.TransformOf(eye.Orientation().RotateVec(rt.Axis()))
		rt = math32.NewQuatAxisAngle(axis, -rt.Angle())
	}
	f.applySpin(rt, e2.Speed, e2.Delay)
}

// RotateX rotates the frame around the screen x axis by the event's
// horizontal delta. Wheel events use the wheel sensitivity.
func (f *Frame) RotateX(e events.Motion) {
	sensitivity := f.rotationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.rotateX(e.Event1(true), sensitivity)
}

// RotateXPos rotates the frame one keyboard step around the positive
// screen x axis.
func (f *Frame) RotateXPos() { f.rotateXKey(true) }

// RotateXNeg rotates the frame one keyboard step around the negative
// screen x axis.
func (f *Frame) RotateXNeg() { f.rotateXKey(false) }

func (f *Frame) rotateX(e events.Motion, sensitivity float32) {
	if f.IsEye() {
		sensitivity = -sensitivity
	}
	f.applySpin(f.ScreenToQuaternion(f.computeAngle(e.DX)*sensitivity, 0, 0), e.Speed, e.Delay)
}

func (f *Frame) rotateXKey(up bool) {
	step := f.keySensitivity
	if !up {
		step = -step
	}
	f.Rotate(f.ScreenToQuaternion(f.computeAngle(step), 0, 0))
}

// RotateY rotates the frame around the screen y axis by the event's
// horizontal delta. Wheel events use the wheel sensitivity.
func (f *Frame) RotateY(e events.Motion) {
	sensitivity := f.rotationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.rotateY(e.Event1(true), sensitivity)
}

// RotateYPos rotates the frame one keyboard step around the positive
// screen y axis.
func (f *Frame) RotateYPos() { f.rotateYKey(true) }

// RotateYNeg rotates the frame one keyboard step around the negative
// screen y axis.
func (f *Frame) RotateYNeg() { f.rotateYKey(false) }

func (f *Frame) rotateY(e events.Motion, sensitivity float32) {
	if f.IsEye() {
		sensitivity = -sensitivity
	}
	f.applySpin(f.ScreenToQuaternion(0, f.computeAngle(e.DX)*sensitivity, 0), e.Speed, e.Delay)
}

func (f *Frame) rotateYKey(up bool) {
	step := f.keySensitivity
	if !up {
		step = -step
	}
	f.Rotate(f.ScreenToQuaternion(0, f.computeAngle(step), 0))
}

// RotateZ rotates the frame around the screen z axis by the event's
// horizontal delta. Wheel events use the wheel sensitivity.
func (f *Frame) RotateZ(e events.Motion) {
	sensitivity := f.rotationSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.rotateZ(e.Event1(true), sensitivity)
}

// RotateZPos rotates the frame one keyboard step around the positive
// screen z axis.
func (f *Frame) RotateZPos() { f.rotateZKey(true) }

// RotateZNeg rotates the frame one keyboard step around the negative
// screen z axis.
func (f *Frame) RotateZNeg() { f.rotateZKey(false) }

func (f *Frame) rotateZ(e events.Motion, sensitivity float32) {
	angle := f.computeAngle(e.DX)
	if f.IsEye() {
		angle = -angle
	}
	f.applySpin(f.ScreenToQuaternion(0, 0, sensitivity*angle), e.Speed, e.Delay)
}

func (f *Frame) rotateZKey(up bool) {
	step := f.keySensitivity
	if !up {
		step = -step
	}
	f.Rotate(f.ScreenToQuaternion(0, 0, f.computeAngle(step)))
}

// RotateXYZ converts a 3-DOF event into a rotation from its three deltas,
// one euler angle per axis.
func (f *Frame) RotateXYZ(e events.Motion) {
	if e.DOF < 3 {
		slog.Error("core.Frame.RotateXYZ: requires a motion event of at least 3 DOFs", "dof", e.DOF)
		return
	}
	if e.Fired {
		if eye := f.graph.Eye(); eye != nil {
			f.cadRotationIsReversed = eye.TransformOf(f.upVector).Y < 0
		}
	}
	f.Rotate(f.ScreenToQuaternion(
		f.computeAngle(e.DX)*f.rotationSensitivity,
		f.computeAngle(-e.DY)*f.rotationSensitivity,
		f.computeAngle(-e.DZ)*f.rotationSensitivity))
}

// RotateCAD converts a 2-DOF drag into a CAD style rotation: a turntable
// rotation around the up vector composed with a tilt around the screen x
// axis, keeping the up vector upright. The horizontal sense reverses when
// the gesture starts with the scene upside down.
func (f *Frame) RotateCAD(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.RotateCAD: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	if e2.Fired {
		f.StopSpinning()
		if eye := f.graph.Eye(); eye != nil {
			f.cadRotationIsReversed = eye.TransformOf(f.upVector).Y < 0
		}
	}
	if e2.Flushed {
		if f.damping == 0 {
			f.StartSpinning(f.spinningQuaternion, f.eventSpeed, f.eventDelay)
		}
		return
	}
	// the factor of two roughly matches the deformed ball speed
	dx := -2 * f.rotationSensitivity * e2.DX / float32(f.graph.width)
	dy := 2 * f.rotationSensitivity * e2.DY / float32(f.graph.height)
	if f.cadRotationIsReversed {
		dx = -dx
	}
	if f.graph.IsRightHanded() {
		dy = -dy
	}
	verticalAxis := f.TransformOf(f.upVector)
	f.applySpin(math32.NewQuatAxisAngle(verticalAxis, dx).Mul(
		math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), dy)), e2.Speed, e2.Delay)
}

// ScreenRotate converts a 2-DOF drag into a rotation around the axis
// orthogonal to the screen, by the angle the pointer sweeps around the
// frame's projected position.
func (f *Frame) ScreenRotate(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.ScreenRotate: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	if e2.Fired {
		f.StopSpinning()
		if eye := f.graph.Eye(); eye != nil {
			f.cadRotationIsReversed = eye.TransformOf(f.upVector).Y < 0
		}
	}
	if e2.Flushed {
		if f.damping == 0 {
			f.StartSpinning(f.spinningQuaternion, f.eventSpeed, f.eventDelay)
		}
		return
	}
	var rt math32.Quat
	if f.IsEye() {
		center := f.graph.ProjectedCoordinatesOf(f.graph.anchor)
		angle := math32.Atan2(e2.Y-center.Y, e2.X-center.X) -
			math32.Atan2(e2.PrevY-center.Y, e2.PrevX-center.X)
		if f.graph.leftHanded {
			angle = -angle
		}
		rt = math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), angle)
	} else {
		eye := f.graph.Eye()
		if eye == nil {
			slog.Error("core.Frame.ScreenRotate: graph has no eye")
			return
		}
		center := f.graph.ProjectedCoordinatesOf(f.Position())
		prevAngle := math32.Atan2(e2.PrevY-center.Y, e2.PrevX-center.X)
		angle := math32.Atan2(e2.Y-center.Y, e2.X-center.X)
		axis := f.TransformOf(eye.Orientation().RotateVec(math32.Vec3(0, 0, -1)))
		if f.graph.IsRightHanded() {
			rt = math32.NewQuatAxisAngle(axis, angle-prevAngle)
		} else {
			rt = math32.NewQuatAxisAngle(axis, prevAngle-angle)
		}
	}
	f.applySpin(rt, e2.Speed, e2.Delay)
}

// ScreenTranslate translates the frame along the single screen axis the
// gesture starts along, snapping diagonal drags to their dominant axis.
func (f *Frame) ScreenTranslate(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.ScreenTranslate: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	if e2.Fired {
		f.directionIsFixed = false
	}
	switch f.originalDirection(e2) {
	case 1:
		f.TranslateX(e2)
	case -1:
		f.TranslateY(e2)
	}
}

// SCALING

// ScaleMotion scales the frame by the event's horizontal delta, a
// viewport-height displacement roughly doubling or halving it. Scaling
// the eye is inverted so the gesture zooms the scene the intuitive way.
// Wheel events use the wheel sensitivity.
func (f *Frame) ScaleMotion(e events.Motion) {
	sensitivity := f.scalingSensitivity
	if wheel(e) {
		sensitivity = f.wheelSensitivity
	}
	f.applyScale(e.Event1(true).DX, sensitivity)
}

// ScalePos scales the frame up one keyboard step.
func (f *Frame) ScalePos() { f.scaleKey(true) }

// ScaleNeg scales the frame down one keyboard step.
func (f *Frame) ScaleNeg() { f.scaleKey(false) }

func (f *Frame) applyScale(dx, sensitivity float32) {
	delta := dx * sensitivity
	height := float32(f.graph.height)
	if f.IsEye() {
		height = -height
	}
	s := 1 + math32.Abs(delta)/height
	if delta >= 0 {
		f.Scale(s)
	} else {
		f.Scale(1 / s)
	}
}

func (f *Frame) scaleKey(up bool) {
	height := float32(f.graph.height)
	if f.IsEye() {
		height = -height
	}
	s := 1 + math32.Abs(f.keySensitivity)/height
	if up {
		f.Scale(s)
	} else {
		f.Scale(1 / s)
	}
}

// FIRST PERSON

// LookAround rotates the frame in place from a 2-DOF drag: pitch around
// the screen x axis, roll around the up vector.
func (f *Frame) LookAround(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.LookAround: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	f.Rotate(f.rollPitchQuaternion(e.Event2()))
}

// MoveForward flies the frame forward at its fly speed while steering
// with the pointer, first person style. The fly stops when the gesture
// flushes.
func (f *Frame) MoveForward(e events.Motion) {
	f.moveForward(e, true)
}

// MoveBackward flies the frame backward at its fly speed while steering
// with the pointer.
func (f *Frame) MoveBackward(e events.Motion) {
	f.moveForward(e, false)
}

func (f *Frame) moveForward(e events.Motion, forward bool) {
	if e.DOF < 2 {
		slog.Error("core.Frame.MoveForward: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	if e2.Fired {
		f.updateUpVector()
	} else if e2.Flushed {
		f.StopFlying()
		return
	}
	speed := f.flySpeed
	if forward {
		speed = -speed
	}
	f.Rotate(f.rollPitchQuaternion(e2))
	f.startFlying(f.Rotation().RotateVec(math32.Vec3(0, 0, speed)), e2.Speed)
}

// Drive flies the frame like a vehicle: the vertical displacement from
// the gesture start sets the speed, forward or reverse, and the
// horizontal delta steers around the y axis. Releasing the gesture stops
// and restores the fly speed.
func (f *Frame) Drive(e events.Motion) {
	if e.DOF < 2 {
		slog.Error("core.Frame.Drive: requires a motion event of at least 2 DOFs", "dof", e.DOF)
		return
	}
	e2 := e.Event2()
	if e2.Fired {
		f.driveInitY = e2.Y
		f.updateUpVector()
		f.flySpeedCache = f.flySpeed
	} else if e2.Flushed {
		f.flySpeed = f.flySpeedCache
		f.StopFlying()
		return
	}
	f.flySpeed = 0.01 * f.graph.radius * 0.01 * (e2.Y - f.driveInitY)
	f.Rotate(f.turnQuaternion(e2.Event1(true)))
	f.startFlying(f.Rotation().RotateVec(math32.Vec3(0, 0, f.flySpeed)), e2.Speed)
}

// Hinge converts a 6-DOF event into globe navigation: the eye slides over
// a sphere centered at the anchor, the translational deltas moving it
// along and over the surface and the rotational deltas looking around.
// Only the eye can hinge.
func (f *Frame) Hinge(e events.Motion) {
	if !f.IsEye() {
		slog.Error("core.Frame.Hinge: only makes sense for the eye")
		return
	}
	if e.DOF < 6 {
		slog.Error("core.Frame.Hinge: requires a motion event of 6 DOFs", "dof", e.DOF)
		return
	}
	// relate the eye to a scratch frame on the anchor sphere
	position := f.Position()
	orientation := f.Orientation()
	oldReference := f.Reference()
	rFrame := f.graph.NewFrame()
	rFrame.SetPosition(f.graph.anchor)
	rFrame.SetZAxis(position.Sub(f.graph.anchor))
	rFrame.SetXAxis(f.XAxis())
	f.SetReference(rFrame)
	f.SetPosition(position)
	f.SetOrientation(orientation)
	// translate along the local z axis, in and out of the sphere
	trns := f.ScreenToEye(math32.Vec3(0, e.DZ, 0))
	pmag := trns.Length()
	if e.DZ > 0 {
		pmag = -pmag
	}
	f.Translate(math32.Vec3(0, 0, pmag))
	// rotating the scratch frame slides the eye over the sphere surface
	deltaY := f.computeAngle(e.DY)
	if !f.graph.IsRightHanded() {
		deltaY = -deltaY
	}
	rFrame.Rotate(math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), deltaY))
	rFrame.Rotate(math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), f.computeAngle(e.DX)))
	rz := f.computeAngle(e.DRZ)
	if f.graph.IsRightHanded() {
		rz = -rz
	}
	rFrame.Rotate(math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), rz))
	// rotating the eye itself moves the head up and down
	rx := f.computeAngle(e.DRX)
	if !f.graph.IsRightHanded() {
		rx = -rx
	}
	f.Rotate(math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), rx))
	// unrelate and restore
	position = f.Position()
	orientation = f.Orientation()
	f.SetReference(oldReference)
	f.graph.Delete(rFrame)
	f.SetPosition(position)
	f.SetOrientation(orientation)
}

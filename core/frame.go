// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"log/slog"
	"math/rand"

	"github.com/visualcomputing/frames/events"
	"github.com/visualcomputing/frames/math32"
	"github.com/visualcomputing/frames/timing"
)

// Frame is a coordinate system positioned relative to a reference frame,
// the node type of the scene graph. Its local translation, rotation and
// uniform scaling are defined with respect to [Frame.Reference]; the
// equivalent world-space quantities are [Frame.Position],
// [Frame.Orientation] and [Frame.Magnitude].
//
// Mutations go through constraint filtering when a [Constraint] is
// attached, bump the frame's modification stamp, and propagate the stamp
// to every descendant.
//
// Frames are created with [Graph.NewFrame] and addressed by stable
// handles within their graph.
type Frame struct {
	// OnVisit is called when the graph traversal reaches this frame.
	OnVisit func(frame *Frame)

	// OnInteract customizes how this frame reacts to a motion event
	// dispatched by an agent; frames with a nil callback ignore them.
	OnInteract func(frame *Frame, event events.Motion)

	graph     *Graph
	handle    Handle
	reference Handle
	children  []Handle

	translation math32.Vector3
	rotation    math32.Quat
	scaling     float32
	constraint  Constraint

	lastUpdate uint64
	culled     bool

	precision          Precision
	precisionThreshold float32

	rotationSensitivity    float32
	translationSensitivity float32
	scalingSensitivity     float32
	wheelSensitivity       float32
	keySensitivity         float32
	spinningSensitivity    float32
	damping                float32

	spinTask           *timing.Task
	spinningQuaternion math32.Quat
	eventSpeed         float32
	eventDelay         float32

	flyTask      *timing.Task
	flyDirection math32.Vector3
	flySpeed     float32
	upVector     math32.Vector3

	directionIsFixed      bool
	horizontal            bool
	cadRotationIsReversed bool
	driveInitY            float32
	flySpeedCache         float32
	zoomInitX             float32
	zoomInitY             float32
}

// NewFrame creates a new frame attached to the world, with identity
// transform, unit scaling, and the graph's interaction settings. The frame
// is registered with the graph's timing handler for spin and fly
// animation and with every agent as a pickable grabber.
func (g *Graph) NewFrame() *Frame {
	s := g.settings
	f := &Frame{
		graph:                  g,
		rotation:               math32.Quat{W: 1},
		scaling:                1,
		precision:              s.Precision,
		precisionThreshold:     s.PrecisionThreshold,
		rotationSensitivity:    s.RotationSensitivity,
		translationSensitivity: s.TranslationSensitivity,
		scalingSensitivity:     s.ScalingSensitivity,
		wheelSensitivity:       s.WheelSensitivity,
		keySensitivity:         s.KeySensitivity,
		spinningSensitivity:    s.SpinningSensitivity,
		damping:                s.Damping,
		flySpeed:               0.01 * g.radius,
		upVector:               math32.Vec3(0, 1, 0),
	}
	g.register(f)
	f.spinTask = g.timingHandler.NewTask(f.spinExecution)
	f.flyTask = g.timingHandler.NewTask(f.fly)
	for _, a := range g.agents {
		a.AddGrabber(f)
	}
	return f
}

// Graph returns the graph owning this frame.
func (f *Frame) Graph() *Graph { return f.graph }

// Handle returns the stable handle addressing this frame in its graph.
// It doubles as the frame's picking-color identity.
func (f *Frame) Handle() Handle { return f.handle }

// IsEye returns whether this frame is its graph's designated eye.
func (f *Frame) IsEye() bool { return f.graph.eye == f.handle && f.handle != World }

// Cull sets whether graph traversal skips this frame and its whole branch.
func (f *Frame) Cull(culled bool) { f.culled = culled }

// IsCulled returns whether this frame is culled from traversal.
func (f *Frame) IsCulled() bool { return f.culled }

// LastUpdate returns the timing tick at which this frame or one of its
// ancestors was last modified.
func (f *Frame) LastUpdate() uint64 { return f.lastUpdate }

// modified stamps this frame and every descendant with the current tick.
// Descendants are included because their global pose depends on this
// frame even when their local values are unchanged.
func (f *Frame) modified() {
	f.lastUpdate = f.graph.timingHandler.TickCount()
	for _, ch := range f.children {
		if c := f.graph.Frame(ch); c != nil {
			c.modified()
		}
	}
}

// HIERARCHY

// Reference returns the parent of this frame, or nil if the frame is
// attached directly to the world.
func (f *Frame) Reference() *Frame { return f.graph.Frame(f.reference) }

// Children returns the frames whose reference is this frame.
func (f *Frame) Children() []*Frame {
	children := make([]*Frame, 0, len(f.children))
	for _, h := range f.children {
		if c := f.graph.Frame(h); c != nil {
			children = append(children, c)
		}
	}
	return children
}

func (f *Frame) hasChild(h Handle) bool {
	for _, c := range f.children {
		if c == h {
			return true
		}
	}
	return false
}

func (f *Frame) addChild(h Handle) {
	if !f.hasChild(h) {
		f.children = append(f.children, h)
	}
}

func (f *Frame) removeChild(h Handle) {
	for i, c := range f.children {
		if c == h {
			f.children = append(f.children[:i], f.children[i+1:]...)
			return
		}
	}
}

// SetReference makes the given frame the new parent of this one, with nil
// meaning the world. The local translation, rotation and scaling are kept,
// so the frame's world pose changes. The call is a no-op with a diagnostic
// if it would create a cycle, i.e. when the candidate is this frame itself
// or one of its descendants.
func (f *Frame) SetReference(reference *Frame) {
	if reference == f {
		slog.Error("core.Frame.SetReference: a frame cannot be a reference of itself")
		return
	}
	if reference != nil && reference.graph != f.graph {
		slog.Error("core.Frame.SetReference: reference belongs to another graph")
		return
	}
	for a := reference; a != nil; a = a.Reference() {
		if a == f {
			slog.Error("core.Frame.SetReference: reference would create a cycle")
			return
		}
	}
	newRef := World
	if reference != nil {
		newRef = reference.handle
	}
	if f.reference == newRef {
		f.graph.restorePath(reference, f)
		return
	}
	if cur := f.Reference(); cur != nil {
		cur.removeChild(f.handle)
	} else {
		f.graph.removeLeading(f.handle)
	}
	f.reference = newRef
	f.graph.restorePath(reference, f)
	f.modified()
}

// restorePath re-registers child in parent's child list and repairs the
// ancestor bookkeeping up to the root, in case this branch was pruned or
// never attached.
func (g *Graph) restorePath(parent, child *Frame) {
	if parent == nil {
		g.addLeading(child.handle)
		return
	}
	if !parent.hasChild(child.handle) {
		parent.addChild(child.handle)
		g.restorePath(parent.Reference(), parent)
	}
}

// CONSTRAINT

// Constraint returns the constraint filtering this frame's motion, or nil.
func (f *Frame) Constraint() Constraint { return f.constraint }

// SetConstraint attaches the given constraint to this frame; nil removes
// any filtering. Constraints may be shared between frames.
func (f *Frame) SetConstraint(constraint Constraint) { f.constraint = constraint }

// TRANSLATION

// Translation returns the frame translation, defined with respect to the
// reference frame.
func (f *Frame) Translation() math32.Vector3 { return f.translation }

// SetTranslation sets the local translation. The proposed change goes
// through constraint filtering as a delta from the current value.
func (f *Frame) SetTranslation(translation math32.Vector3) {
	if f.constraint == nil {
		f.translation = translation
	} else {
		f.translation.SetAdd(f.constraint.ConstrainTranslation(translation.Sub(f.translation), f))
	}
	f.modified()
}

// Translate translates the frame by the given vector, defined with respect
// to the reference frame, after constraint filtering.
func (f *Frame) Translate(vector math32.Vector3) {
	if f.constraint != nil {
		vector = f.constraint.ConstrainTranslation(vector, f)
	}
	f.translation.SetAdd(vector)
	f.modified()
}

// ROTATION

// Rotation returns the frame rotation, defined with respect to the
// reference frame.
func (f *Frame) Rotation() math32.Quat { return f.rotation }

// SetRotation sets the local rotation. The proposed change goes through
// constraint filtering as a delta from the current value.
func (f *Frame) SetRotation(rotation math32.Quat) {
	if f.constraint == nil {
		f.rotation = rotation
	} else {
		delta := f.rotation.Inverse().Mul(rotation)
		f.rotation.SetMul(f.constraint.ConstrainRotation(delta, f))
	}
	f.rotation.Normalize() // prevents numerical drift
	f.modified()
}

// Rotate rotates the frame by the given quaternion, defined in the frame
// coordinate system, after constraint filtering.
func (f *Frame) Rotate(rotation math32.Quat) {
	if f.constraint != nil {
		rotation = f.constraint.ConstrainRotation(rotation, f)
	}
	f.rotation.SetMul(rotation)
	f.rotation.Normalize() // prevents numerical drift
	f.modified()
}

// RotateAroundPoint rotates the frame by the given quaternion around the
// given point. The point is defined in the world coordinate system while
// the rotation axis is defined in the frame coordinate system. Both the
// rotation and the induced translation go through constraint filtering.
func (f *Frame) RotateAroundPoint(rotation math32.Quat, point math32.Vector3) {
	if f.constraint != nil {
		rotation = f.constraint.ConstrainRotation(rotation, f)
	}
	f.rotation.SetMul(rotation)
	f.rotation.Normalize() // prevents numerical drift

	q := math32.NewQuatAxisAngle(f.Orientation().RotateVec(rotation.Axis()), rotation.Angle())
	t := point.Add(q.RotateVec(f.Position().Sub(point))).Sub(f.translation)
	if f.constraint != nil {
		t = f.constraint.ConstrainTranslation(t, f)
	}
	f.Translate(t)
}

// RotateAroundFrame applies the given rotation to this frame around the
// other frame, whose pose defines the rotation pivot and axes. Roll and
// yaw flip sign on left-handed graphs.
func (f *Frame) RotateAroundFrame(rotation math32.Quat, other *Frame) {
	if other == nil {
		return
	}
	euler := rotation.ToEuler()
	roll, pitch, yaw := euler.X, euler.Y, euler.Z
	if f.graph.IsLeftHanded() {
		roll, yaw = -roll, -yaw
	}
	axis := other.Detach()
	copied := f.Detach()
	copied.SetReference(axis)
	copied.SetWorldMatrix(f)
	axis.Rotate(math32.NewQuatEuler(math32.Vec3(roll, pitch, yaw)))
	f.SetWorldMatrix(copied)
	f.graph.Delete(copied)
	f.graph.Delete(axis)
}

// SCALING

// Scaling returns the frame scaling, defined with respect to the
// reference frame. Always strictly positive.
func (f *Frame) Scaling() float32 { return f.scaling }

// SetScaling sets the local scaling. Non-positive values are rejected
// with a diagnostic, leaving the frame unchanged.
func (f *Frame) SetScaling(scaling float32) {
	if scaling <= 0 {
		slog.Error("core.Frame.SetScaling: scaling should be positive, nothing done", "scaling", scaling)
		return
	}
	f.scaling = scaling
	f.modified()
}

// Scale multiplies the frame scaling by the given factor.
func (f *Frame) Scale(scaling float32) {
	f.SetScaling(f.scaling * scaling)
}

// GLOBAL POSE

// Position returns the frame origin expressed in the world coordinate
// system.
func (f *Frame) Position() math32.Vector3 {
	return f.InverseCoordinatesOf(math32.Vector3{})
}

// SetPosition sets the world position of the frame, going through the
// local translation setter so constraint filtering applies.
func (f *Frame) SetPosition(position math32.Vector3) {
	if ref := f.Reference(); ref != nil {
		position = ref.CoordinatesOf(position)
	}
	f.SetTranslation(position)
}

// Orientation returns the frame rotation expressed in the world coordinate
// system: the composition of every ancestor rotation down to this frame.
func (f *Frame) Orientation() math32.Quat {
	orientation := f.rotation
	for ref := f.Reference(); ref != nil; ref = ref.Reference() {
		orientation = ref.rotation.Mul(orientation)
	}
	return orientation
}

// SetOrientation sets the world orientation of the frame, going through
// the local rotation setter so constraint filtering applies.
func (f *Frame) SetOrientation(orientation math32.Quat) {
	if ref := f.Reference(); ref != nil {
		orientation = ref.Orientation().Inverse().Mul(orientation)
	}
	f.SetRotation(orientation)
}

// Magnitude returns the frame scaling expressed in the world coordinate
// system: the product of every ancestor scaling down to this frame.
func (f *Frame) Magnitude() float32 {
	if ref := f.Reference(); ref != nil {
		return ref.Magnitude() * f.scaling
	}
	return f.scaling
}

// SetMagnitude sets the world magnitude of the frame, going through the
// local scaling setter.
func (f *Frame) SetMagnitude(magnitude float32) {
	if ref := f.Reference(); ref != nil {
		f.SetScaling(magnitude / ref.Magnitude())
	} else {
		f.SetScaling(magnitude)
	}
}

// COORDINATE CONVERSIONS

// CoordinatesOf returns the frame coordinates of the given point defined
// in the world coordinate system.
func (f *Frame) CoordinatesOf(world math32.Vector3) math32.Vector3 {
	if ref := f.Reference(); ref != nil {
		return f.LocalCoordinatesOf(ref.CoordinatesOf(world))
	}
	return f.LocalCoordinatesOf(world)
}

// InverseCoordinatesOf returns the world coordinates of the given point
// defined in this frame's coordinate system.
func (f *Frame) InverseCoordinatesOf(local math32.Vector3) math32.Vector3 {
	res := local
	for fr := f; fr != nil; fr = fr.Reference() {
		res = fr.LocalInverseCoordinatesOf(res)
	}
	return res
}

// LocalCoordinatesOf returns the frame coordinates of a point defined in
// the reference frame coordinate system.
func (f *Frame) LocalCoordinatesOf(v math32.Vector3) math32.Vector3 {
	return f.rotation.InverseRotateVec(v.Sub(f.translation)).DivScalar(f.scaling)
}

// LocalInverseCoordinatesOf returns the reference frame coordinates of a
// point defined in this frame's coordinate system.
func (f *Frame) LocalInverseCoordinatesOf(v math32.Vector3) math32.Vector3 {
	return f.rotation.RotateVec(v.MulScalar(f.scaling)).Add(f.translation)
}

// TransformOf returns the frame transform of the given vector defined in
// the world coordinate system. Unlike CoordinatesOf, only rotation and
// scaling apply, not translation.
func (f *Frame) TransformOf(world math32.Vector3) math32.Vector3 {
	if ref := f.Reference(); ref != nil {
		return f.LocalTransformOf(ref.TransformOf(world))
	}
	return f.LocalTransformOf(world)
}

// InverseTransformOf returns the world transform of the given vector
// defined in this frame's coordinate system.
func (f *Frame) InverseTransformOf(local math32.Vector3) math32.Vector3 {
	res := local
	for fr := f; fr != nil; fr = fr.Reference() {
		res = fr.LocalInverseTransformOf(res)
	}
	return res
}

// LocalTransformOf returns the frame transform of a vector defined in the
// reference frame coordinate system.
func (f *Frame) LocalTransformOf(v math32.Vector3) math32.Vector3 {
	return f.rotation.InverseRotateVec(v).DivScalar(f.scaling)
}

// LocalInverseTransformOf returns the reference frame transform of a
// vector defined in this frame's coordinate system.
func (f *Frame) LocalInverseTransformOf(v math32.Vector3) math32.Vector3 {
	return f.rotation.RotateVec(v.MulScalar(f.scaling))
}

// CoordinatesOfFrom returns this frame's coordinates of a point whose
// coordinates in the from frame are given. The two frames need not be
// related in the hierarchy.
func (f *Frame) CoordinatesOfFrom(src math32.Vector3, from *Frame) math32.Vector3 {
	if f == from {
		return src
	}
	if ref := f.Reference(); ref != nil {
		return f.LocalCoordinatesOf(ref.CoordinatesOfFrom(src, from))
	}
	return f.LocalCoordinatesOf(from.InverseCoordinatesOf(src))
}

// CoordinatesOfIn returns the in frame's coordinates of a point whose
// coordinates in this frame are given. The conversion ascends from this
// frame until the in frame is found; if it is not an ancestor, the
// partial result has reached world space and the in frame converts it
// down itself.
func (f *Frame) CoordinatesOfIn(v math32.Vector3, in *Frame) math32.Vector3 {
	fr := f
	res := v
	for fr != nil && fr != in {
		res = fr.LocalInverseCoordinatesOf(res)
		fr = fr.Reference()
	}
	if fr != in {
		res = in.CoordinatesOf(res)
	}
	return res
}

// TransformOfFrom is the vector analogue of [Frame.CoordinatesOfFrom].
func (f *Frame) TransformOfFrom(src math32.Vector3, from *Frame) math32.Vector3 {
	if f == from {
		return src
	}
	if ref := f.Reference(); ref != nil {
		return f.LocalTransformOf(ref.TransformOfFrom(src, from))
	}
	return f.LocalTransformOf(from.InverseTransformOf(src))
}

// TransformOfIn is the vector analogue of [Frame.CoordinatesOfIn].
func (f *Frame) TransformOfIn(v math32.Vector3, in *Frame) math32.Vector3 {
	fr := f
	res := v
	for fr != nil && fr != in {
		res = fr.LocalInverseTransformOf(res)
		fr = fr.Reference()
	}
	if fr != in {
		res = in.TransformOf(res)
	}
	return res
}

// AXES

// XAxis returns the x-axis of the frame as a normalized vector in world
// coordinates.
func (f *Frame) XAxis() math32.Vector3 { return f.axis(math32.Vec3(1, 0, 0)) }

// YAxis returns the y-axis of the frame as a normalized vector in world
// coordinates.
func (f *Frame) YAxis() math32.Vector3 { return f.axis(math32.Vec3(0, 1, 0)) }

// ZAxis returns the z-axis of the frame as a normalized vector in world
// coordinates.
func (f *Frame) ZAxis() math32.Vector3 { return f.axis(math32.Vec3(0, 0, 1)) }

func (f *Frame) axis(local math32.Vector3) math32.Vector3 {
	axis := f.InverseTransformOf(local)
	if f.Magnitude() != 1 {
		axis.SetNormal()
	}
	return axis
}

// SetXAxis rotates the frame so that its x-axis becomes the given axis
// defined in world coordinates. The rotation is not uniquely defined.
func (f *Frame) SetXAxis(axis math32.Vector3) {
	var q math32.Quat
	q.SetFromUnitVectors(math32.Vec3(1, 0, 0), f.TransformOf(axis))
	f.Rotate(q)
}

// SetYAxis rotates the frame so that its y-axis becomes the given axis
// defined in world coordinates.
func (f *Frame) SetYAxis(axis math32.Vector3) {
	var q math32.Quat
	q.SetFromUnitVectors(math32.Vec3(0, 1, 0), f.TransformOf(axis))
	f.Rotate(q)
}

// SetZAxis rotates the frame so that its z-axis becomes the given axis
// defined in world coordinates.
func (f *Frame) SetZAxis(axis math32.Vector3) {
	var q math32.Quat
	q.SetFromUnitVectors(math32.Vec3(0, 0, 1), f.TransformOf(axis))
	f.Rotate(q)
}

// MATRICES

// Matrix returns the local 4x4 transform of the frame: the rotation
// matrix with the translation in the last column and the basis columns
// scaled by the frame scaling.
func (f *Frame) Matrix() math32.Matrix4 {
	m := f.rotation.Matrix()
	m.SetPos(f.translation)
	if f.scaling != 1 {
		scaleBasis(&m, f.scaling)
	}
	return m
}

// WorldMatrix returns the global 4x4 transform of the frame, built from
// its world position, orientation and magnitude.
func (f *Frame) WorldMatrix() math32.Matrix4 {
	if f.Reference() == nil {
		return f.Matrix()
	}
	m := f.Orientation().Matrix()
	m.SetPos(f.Position())
	if mag := f.Magnitude(); mag != 1 {
		scaleBasis(&m, mag)
	}
	return m
}

// scaleBasis scales the three basis columns of m, leaving translation
// untouched.
func scaleBasis(m *math32.Matrix4, s float32) {
	for col := 0; col < 3; col++ {
		m[col*4] *= s
		m[col*4+1] *= s
		m[col*4+2] *= s
	}
}

// View returns the inverse of the frame's world transform with magnitude
// forced to 1, suitable as a view matrix when this frame is the eye.
func (f *Frame) View() math32.Matrix4 {
	orientation := f.Orientation()
	m := orientation.Inverse().Matrix()
	m.SetPos(orientation.InverseRotateVec(f.Position()).Negate())
	return m
}

// SetMatrix copies the local translation, rotation and scaling of the
// other frame into this one, bypassing constraint filtering.
func (f *Frame) SetMatrix(other *Frame) {
	if other == nil {
		return
	}
	f.translation = other.translation
	f.rotation = other.rotation
	f.scaling = other.scaling
	f.modified()
}

// SetWorldMatrix sets this frame's world position, orientation and
// magnitude to those of the other frame, keeping its own reference and
// going through constraint filtering.
func (f *Frame) SetWorldMatrix(other *Frame) {
	if other == nil {
		return
	}
	f.SetPosition(other.Position())
	f.SetOrientation(other.Orientation())
	f.SetMagnitude(other.Magnitude())
}

// FromMatrix sets the frame translation and rotation from the given
// column-major transform matrix, with the given known uniform scaling.
// A zero homogeneous coordinate is rejected with a diagnostic.
func (f *Frame) FromMatrix(m *math32.Matrix4, scaling float32) {
	if m[15] == 0 {
		slog.Error("core.Frame.FromMatrix: zero homogeneous coordinate, nothing done")
		return
	}
	f.translation = math32.Vec3(m[12], m[13], m[14]).DivScalar(m[15])
	f.SetScaling(scaling)

	x := math32.Vec3(m[0], m[1], m[2]).DivScalar(m[15] * scaling)
	y := math32.Vec3(m[4], m[5], m[6]).DivScalar(m[15] * scaling)
	z := math32.Vec3(m[8], m[9], m[10]).DivScalar(m[15] * scaling)
	var q math32.Quat
	q.SetFromRotatedBasis(x, y, z)
	f.SetRotation(q)
}

// INVERSION

// Inverse returns a new frame whose local transform is the inverse of
// this frame's, sharing the same reference. Composing a frame transform
// with its inverse yields the identity within the reference frame.
func (f *Frame) Inverse() *Frame {
	inv := f.graph.NewFrame()
	inv.translation = f.rotation.InverseRotateVec(f.translation).Negate()
	inv.rotation = f.rotation.Inverse()
	inv.scaling = 1 / f.scaling
	inv.SetReference(f.Reference())
	inv.modified()
	return inv
}

// WorldInverse is the world-space analogue of [Frame.Inverse]: the
// returned frame has no reference and inverts this frame's global
// transform.
func (f *Frame) WorldInverse() *Frame {
	orientation := f.Orientation()
	inv := f.graph.NewFrame()
	inv.translation = orientation.InverseRotateVec(f.Position()).Negate()
	inv.rotation = orientation.Inverse()
	inv.scaling = 1 / f.Magnitude()
	inv.modified()
	return inv
}

// COPYING

// Get returns a new frame sharing this frame's reference and copying its
// local transform, constraint and interaction settings. Children are not
// copied.
func (f *Frame) Get() *Frame {
	nf := f.graph.NewFrame()
	nf.SetReference(f.Reference())
	nf.translation = f.translation
	nf.rotation = f.rotation
	nf.scaling = f.scaling
	nf.constraint = f.constraint
	nf.precision = f.precision
	nf.precisionThreshold = f.precisionThreshold
	nf.rotationSensitivity = f.rotationSensitivity
	nf.translationSensitivity = f.translationSensitivity
	nf.scalingSensitivity = f.scalingSensitivity
	nf.wheelSensitivity = f.wheelSensitivity
	nf.keySensitivity = f.keySensitivity
	nf.spinningSensitivity = f.spinningSensitivity
	nf.damping = f.damping
	nf.flySpeed = f.flySpeed
	nf.upVector = f.upVector
	nf.modified()
	return nf
}

// Detach returns a new frame, pruned from the traversal tree, carrying
// this frame's world pose. Detached frames stay live and animatable; they
// are used as scratch objects by several algorithms.
func (f *Frame) Detach() *Frame {
	nf := f.graph.NewFrame()
	f.graph.PruneBranch(nf)
	nf.SetWorldMatrix(f)
	return nf
}

// SYNC

// Matches returns whether this frame and the other have the same world
// position, orientation and magnitude within a small tolerance. Reference
// and constraint are not compared.
func (f *Frame) Matches(other *Frame) bool {
	const tol = 1.0e-5
	p1, p2 := f.Position(), other.Position()
	if math32.Abs(p1.X-p2.X) > tol || math32.Abs(p1.Y-p2.Y) > tol || math32.Abs(p1.Z-p2.Z) > tol {
		return false
	}
	q1, q2 := f.Orientation(), other.Orientation()
	if q1.Dot(q2) < 0 { // q and -q are the same rotation
		q2.X, q2.Y, q2.Z, q2.W = -q2.X, -q2.Y, -q2.Z, -q2.W
	}
	if math32.Abs(q1.X-q2.X) > tol || math32.Abs(q1.Y-q2.Y) > tol ||
		math32.Abs(q1.Z-q2.Z) > tol || math32.Abs(q1.W-q2.W) > tol {
		return false
	}
	return math32.Abs(f.Magnitude()-other.Magnitude()) <= tol
}

// Sync makes the older of the two frames take on the world pose of the
// one modified more recently. Reference and constraint are untouched, and
// nothing happens when the modification stamps are equal.
func Sync(f1, f2 *Frame) {
	if f1 == nil || f2 == nil || f1.lastUpdate == f2.lastUpdate {
		return
	}
	src, dst := f1, f2
	if f2.lastUpdate > f1.lastUpdate {
		src, dst = f2, f1
	}
	dst.SetWorldMatrix(src)
}

// ALIGNMENT

// AlignWithFrame rotates this frame so that two of its axes become
// parallel to axes of the other frame, nil meaning the world. An axis
// pair aligns when the absolute dot product of the normalized axes
// reaches the threshold, and a second perpendicular alignment is
// attempted afterwards. When move is set, the frame also translates so
// that the other frame's position keeps the same local coordinates.
func (f *Frame) AlignWithFrame(other *Frame, move bool, threshold float32) {
	var directions [2][3]math32.Vector3
	for d := 0; d < 3; d++ {
		dir := principalAxis(d)
		if other != nil {
			directions[0][d] = other.Orientation().RotateVec(dir)
		} else {
			directions[0][d] = dir
		}
		directions[1][d] = f.Orientation().RotateVec(dir)
	}

	maxProj := float32(0)
	var index [2]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if proj := math32.Abs(directions[0][i].Dot(directions[1][j])); proj >= maxProj {
				index[0], index[1] = i, j
				maxProj = proj
			}
		}
	}

	oldPosition := f.Position()
	oldOrientation := f.Orientation()
	oldMagnitude := f.Magnitude()

	coef := directions[0][index[0]].Dot(directions[1][index[1]])
	if math32.Abs(coef) >= threshold {
		axis := directions[0][index[0]].Cross(directions[1][index[1]])
		angle := math32.Asin(math32.Clamp(axis.Length(), -1, 1))
		if coef >= 0 {
			angle = -angle
		}
		q := math32.NewQuatAxisAngle(axis, angle)
		q = f.rotation.Inverse().Mul(q)
		q = q.Mul(f.Orientation())
		f.Rotate(q)

		// second alignment on a perpendicular axis
		dir := f.Orientation().RotateVec(principalAxis((index[1] + 1) % 3))
		max := float32(0)
		for i := 0; i < 3; i++ {
			if proj := math32.Abs(directions[0][i].Dot(dir)); proj > max {
				index[0] = i
				max = proj
			}
		}
		if max >= threshold {
			axis = directions[0][index[0]].Cross(dir)
			angle = math32.Asin(math32.Clamp(axis.Length(), -1, 1))
			if directions[0][index[0]].Dot(dir) >= 0 {
				angle = -angle
			}
			q = math32.NewQuatAxisAngle(axis, angle)
			q = f.rotation.Inverse().Mul(q)
			q = q.Mul(f.Orientation())
			f.Rotate(q)
		}
	}
	if move {
		center := math32.Vector3{}
		if other != nil {
			center = other.Position()
		}
		// the center's local coordinates in the pre-alignment pose
		oldLocal := oldOrientation.InverseRotateVec(center.Sub(oldPosition)).DivScalar(oldMagnitude)
		shift := center.Sub(f.InverseTransformOf(oldLocal)).Sub(f.translation)
		f.Translate(shift)
	}
}

func principalAxis(d int) math32.Vector3 {
	switch d {
	case 0:
		return math32.Vec3(1, 0, 0)
	case 1:
		return math32.Vec3(0, 1, 0)
	}
	return math32.Vec3(0, 0, 1)
}

// ProjectOnLine translates the frame so that its position lies on the
// line through origin along direction, both defined in world coordinates,
// using an orthogonal projection.
func (f *Frame) ProjectOnLine(origin, direction math32.Vector3) {
	position := f.Position()
	shift := origin.Sub(position)
	proj := shift.ProjectOnVector(direction)
	f.SetPosition(position.Add(shift.Sub(proj)))
}

// RANDOMIZATION

// Randomize sets the frame to a random world pose: a position uniformly
// directed inside the graph bounding sphere, a uniformly random
// orientation, and the magnitude scaled by a random factor in [0.5..2).
func (f *Frame) Randomize() {
	f.SetPosition(f.graph.center.Add(math32.RandomVector3().MulScalar(rand.Float32() * f.graph.radius)))
	f.SetOrientation(math32.RandomQuat())
	f.SetMagnitude(f.Magnitude() * (0.5 + 1.5*rand.Float32()))
}

// SENSITIVITIES

// RotationSensitivity returns the gain applied to pointer deltas in
// rotation gestures.
func (f *Frame) RotationSensitivity() float32 { return f.rotationSensitivity }

// SetRotationSensitivity sets the rotation gesture gain.
func (f *Frame) SetRotationSensitivity(s float32) { f.rotationSensitivity = s }

// TranslationSensitivity returns the gain applied to pointer deltas in
// translation gestures.
func (f *Frame) TranslationSensitivity() float32 { return f.translationSensitivity }

// SetTranslationSensitivity sets the translation gesture gain.
func (f *Frame) SetTranslationSensitivity(s float32) { f.translationSensitivity = s }

// ScalingSensitivity returns the gain applied to pointer deltas in
// scaling gestures.
func (f *Frame) ScalingSensitivity() float32 { return f.scalingSensitivity }

// SetScalingSensitivity sets the scaling gesture gain.
func (f *Frame) SetScalingSensitivity(s float32) { f.scalingSensitivity = s }

// WheelSensitivity returns the gain applied to wheel deltas.
func (f *Frame) WheelSensitivity() float32 { return f.wheelSensitivity }

// SetWheelSensitivity sets the wheel gain.
func (f *Frame) SetWheelSensitivity(s float32) { f.wheelSensitivity = s }

// KeySensitivity returns the step in pixels of the keyboard gestures.
func (f *Frame) KeySensitivity() float32 { return f.keySensitivity }

// SetKeySensitivity sets the keyboard gesture step.
func (f *Frame) SetKeySensitivity(s float32) { f.keySensitivity = s }

// SpinningSensitivity returns the minimum gesture speed that starts an
// undamped spin when the pointer is released.
func (f *Frame) SpinningSensitivity() float32 { return f.spinningSensitivity }

// SetSpinningSensitivity sets the minimum spin-triggering speed.
func (f *Frame) SetSpinningSensitivity(s float32) { f.spinningSensitivity = s }

// Damping returns the spin damping factor in [0..1]: 0 spins forever,
// 1 stops immediately.
func (f *Frame) Damping() float32 { return f.damping }

// SetDamping sets the spin damping factor, clamped to [0..1].
func (f *Frame) SetDamping(damping float32) {
	f.damping = math32.Clamp(damping, 0, 1)
}

// FlySpeed returns the translation step of the fly and drive gestures.
func (f *Frame) FlySpeed() float32 { return f.flySpeed }

// SetFlySpeed sets the fly translation step.
func (f *Frame) SetFlySpeed(speed float32) { f.flySpeed = speed }

// UpVector returns the up direction used by the CAD rotation and the
// first-person gestures, in world coordinates.
func (f *Frame) UpVector() math32.Vector3 { return f.upVector }

// SetUpVector sets the up direction used by the CAD rotation and the
// first-person gestures.
func (f *Frame) SetUpVector(up math32.Vector3) { f.upVector = up }

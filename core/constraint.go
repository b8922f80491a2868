// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/visualcomputing/frames/math32"

// Constraint filters the translations and rotations applied to a [Frame].
// The proposed delta is passed in along with the frame, so direction
// dependent or frame relative filtering is possible; the returned value is
// what gets applied. A single Constraint may be shared by several frames
// and must not be mutated by them.
type Constraint interface {
	// ConstrainTranslation filters the proposed translation delta,
	// expressed in the frame local coordinate system.
	ConstrainTranslation(translation math32.Vector3, frame *Frame) math32.Vector3

	// ConstrainRotation filters the proposed rotation delta, expressed in
	// the frame local coordinate system.
	ConstrainRotation(rotation math32.Quat, frame *Frame) math32.Quat
}

// ConstraintType characterizes how an [AxisPlaneConstraint] restricts
// motion along or around its direction.
type ConstraintType int32

const (
	// Free imposes no restriction.
	Free ConstraintType = iota

	// Plane restricts translation to the plane orthogonal to the
	// constraint direction. Meaningless for rotation.
	Plane

	// Axis restricts translation along, or rotation around, the
	// constraint direction.
	Axis

	// Forbidden forbids the motion entirely.
	Forbidden
)

// AxisPlaneConstraint restricts translation and rotation with respect to a
// direction vector, each independently set to [Free], [Plane], [Axis] or
// [Forbidden]. The coordinate system the directions are interpreted in is
// given by the concrete variant: [LocalConstraint], [WorldConstraint] or
// [EyeConstraint].
type AxisPlaneConstraint struct {
	// TranslationType restricts translation relative to TranslationDirection.
	TranslationType ConstraintType

	// TranslationDirection is the plane normal or axis for translation
	// filtering. It does not need to be normalized.
	TranslationDirection math32.Vector3

	// RotationType restricts rotation relative to RotationDirection.
	// Plane is meaningless here and treated as Free.
	RotationType ConstraintType

	// RotationDirection is the rotation axis for Axis filtering.
	RotationDirection math32.Vector3
}

// constrainTranslationDir filters translation against a direction already
// expressed in the frame local coordinate system.
func (c *AxisPlaneConstraint) constrainTranslationDir(translation, dir math32.Vector3) math32.Vector3 {
	switch c.TranslationType {
	case Plane:
		return translation.ProjectOnPlane(dir)
	case Axis:
		return translation.ProjectOnVector(dir)
	case Forbidden:
		return math32.Vector3{}
	}
	return translation
}

// constrainRotationAxis filters rotation against an axis already expressed
// in the frame local coordinate system.
func (c *AxisPlaneConstraint) constrainRotationAxis(rotation math32.Quat, axis math32.Vector3) math32.Quat {
	switch c.RotationType {
	case Axis:
		quatAxis := math32.Vec3(rotation.X, rotation.Y, rotation.Z).ProjectOnVector(axis)
		return math32.NewQuatAxisAngle(quatAxis, 2*math32.Acos(math32.Clamp(rotation.W, -1, 1)))
	case Forbidden:
		return math32.Quat{W: 1}
	}
	return rotation
}

// LocalConstraint is an [AxisPlaneConstraint] whose directions are
// expressed in the constrained frame's local coordinate system.
type LocalConstraint struct {
	AxisPlaneConstraint
}

func (c *LocalConstraint) ConstrainTranslation(translation math32.Vector3, frame *Frame) math32.Vector3 {
	return c.constrainTranslationDir(translation, frame.Rotation().RotateVec(c.TranslationDirection))
}

func (c *LocalConstraint) ConstrainRotation(rotation math32.Quat, frame *Frame) math32.Quat {
	return c.constrainRotationAxis(rotation, c.RotationDirection)
}

// WorldConstraint is an [AxisPlaneConstraint] whose directions are
// expressed in the world coordinate system.
type WorldConstraint struct {
	AxisPlaneConstraint
}

func (c *WorldConstraint) ConstrainTranslation(translation math32.Vector3, frame *Frame) math32.Vector3 {
	dir := c.TranslationDirection
	if ref := frame.Reference(); ref != nil {
		dir = ref.TransformOf(dir)
	}
	return c.constrainTranslationDir(translation, dir)
}

func (c *WorldConstraint) ConstrainRotation(rotation math32.Quat, frame *Frame) math32.Quat {
	return c.constrainRotationAxis(rotation, frame.TransformOf(c.RotationDirection))
}

// EyeConstraint is an [AxisPlaneConstraint] whose directions are expressed
// in the coordinate system of the owning graph's eye frame.
type EyeConstraint struct {
	AxisPlaneConstraint

	// Graph supplies the eye frame the directions are relative to.
	Graph *Graph
}

func (c *EyeConstraint) ConstrainTranslation(translation math32.Vector3, frame *Frame) math32.Vector3 {
	dir := c.TranslationDirection
	if eye := c.Graph.Eye(); eye != nil {
		dir = eye.InverseTransformOf(dir)
		if ref := frame.Reference(); ref != nil {
			dir = ref.TransformOf(dir)
		}
	}
	return c.constrainTranslationDir(translation, dir)
}

func (c *EyeConstraint) ConstrainRotation(rotation math32.Quat, frame *Frame) math32.Quat {
	axis := c.RotationDirection
	if eye := c.Graph.Eye(); eye != nil {
		axis = frame.TransformOf(eye.InverseTransformOf(axis))
	}
	return c.constrainRotationAxis(rotation, axis)
}

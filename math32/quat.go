// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from Cogent Core math32: cogentcore.org/core/math32
// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"math/rand"
)

// Quat is a unit quaternion with X, Y, Z and W components,
// representing a 3D rotation.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// NewQuatAxisAngle returns a new quaternion from the given axis and angle
// rotation (radians). The axis does not need to be normalized; a zero axis
// yields the identity quaternion.
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	nq := Quat{}
	nq.SetFromAxisAngle(axis, angle)
	return nq
}

// NewQuatEuler returns a new quaternion from the given Euler angles (radians).
func NewQuatEuler(euler Vector3) Quat {
	nq := Quat{}
	nq.SetFromEuler(euler)
	return nq
}

func (q Quat) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", q.X, q.Y, q.Z, q.W)
}

// Set sets this quaternion's components.
func (q *Quat) Set(x, y, z, w float32) {
	q.X = x
	q.Y = y
	q.Z = z
	q.W = w
}

// SetIdentity sets this quaternion to the identity quaternion.
func (q *Quat) SetIdentity() {
	q.X = 0
	q.Y = 0
	q.Z = 0
	q.W = 1
}

// IsIdentity returns whether this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// IsNil returns true if all values are 0 (uninitialized).
func (q Quat) IsNil() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// SetFromAxisAngle sets this quaternion to the rotation specified by the
// given axis and angle (radians). The axis does not need to be normalized;
// a zero axis yields the identity quaternion.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	norm := axis.Length()
	if norm == 0 {
		q.SetIdentity()
		return
	}
	s := Sin(angle/2) / norm
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = Cos(angle / 2)
}

// SetFromEuler sets this quaternion from the specified vector with Euler
// angles for each axis, in XYZ order.
func (q *Quat) SetFromEuler(euler Vector3) {
	c1 := Cos(euler.X / 2)
	c2 := Cos(euler.Y / 2)
	c3 := Cos(euler.Z / 2)
	s1 := Sin(euler.X / 2)
	s2 := Sin(euler.Y / 2)
	s3 := Sin(euler.Z / 2)

	q.X = s1*c2*c3 + c1*s2*s3
	q.Y = c1*s2*c3 - s1*c2*s3
	q.Z = c1*c2*s3 + s1*s2*c3
	q.W = c1*c2*c3 - s1*s2*s3
}

// ToEuler returns the Euler angles (XYZ order) corresponding to this
// quaternion, inverting [Quat.SetFromEuler].
func (q Quat) ToEuler() Vector3 {
	m13 := 2 * (q.X*q.Z + q.Y*q.W)
	m23 := 2 * (q.Y*q.Z - q.X*q.W)
	m33 := 1 - 2*(q.X*q.X+q.Y*q.Y)
	m12 := 2 * (q.X*q.Y - q.Z*q.W)
	m11 := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	m22 := 1 - 2*(q.X*q.X+q.Z*q.Z)
	m32 := 2 * (q.Y*q.Z + q.X*q.W)

	euler := Vector3{}
	euler.Y = Asin(Clamp(m13, -1, 1))
	if Abs(m13) < 0.99999 {
		euler.X = Atan2(-m23, m33)
		euler.Z = Atan2(-m12, m11)
	} else {
		euler.X = Atan2(m32, m22)
		euler.Z = 0
	}
	return euler
}

// Axis returns the normalized axis of rotation of this quaternion.
// The sign is chosen so that the corresponding [Quat.Angle] lies in [0..Pi].
func (q Quat) Axis() Vector3 {
	axis := Vec3(q.X, q.Y, q.Z)
	sinus := axis.Length()
	if sinus != 0 {
		axis = axis.DivScalar(sinus)
	}
	if 2*Acos(Clamp(q.W, -1, 1)) <= Pi {
		return axis
	}
	return axis.Negate()
}

// Angle returns the rotation angle of this quaternion, in [0..Pi].
func (q Quat) Angle() float32 {
	angle := 2 * Acos(Clamp(q.W, -1, 1))
	if angle <= Pi {
		return angle
	}
	return 2*Pi - angle
}

// SetFromRotationMatrix sets this quaternion from the rotation part of the
// specified matrix.
func (q *Quat) SetFromRotationMatrix(m *Matrix4) {
	m11 := m[0]
	m12 := m[4]
	m13 := m[8]
	m21 := m[1]
	m22 := m[5]
	m23 := m[9]
	m31 := m[2]
	m32 := m[6]
	m33 := m[10]
	trace := m11 + m22 + m33

	var s float32
	switch {
	case trace > 0:
		s = 0.5 / Sqrt(trace+1.0)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s = 2.0 * Sqrt(1.0+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s = 2.0 * Sqrt(1.0+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s = 2.0 * Sqrt(1.0+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
}

// SetFromRotatedBasis sets this quaternion from the three rotated basis axis
// vectors, which are normalized but need not be exactly orthogonal.
func (q *Quat) SetFromRotatedBasis(x, y, z Vector3) {
	var m Matrix4
	m.SetIdentity()
	xn := x.Normal()
	yn := y.Normal()
	zn := z.Normal()
	m[0] = xn.X
	m[1] = xn.Y
	m[2] = xn.Z
	m[4] = yn.X
	m[5] = yn.Y
	m[6] = yn.Z
	m[8] = zn.X
	m[9] = zn.Y
	m[10] = zn.Z
	q.SetFromRotationMatrix(&m)
	q.Normalize()
}

// SetFromUnitVectors sets this quaternion to the rotation from vector vFrom
// to vTo. The vectors do not need to be normalized.
func (q *Quat) SetFromUnitVectors(vFrom, vTo Vector3) {
	var v1 Vector3
	var eps float32 = 0.000001

	from := vFrom.Normal()
	to := vTo.Normal()

	r := from.Dot(to) + 1
	if r < eps {
		r = 0
		if Abs(from.X) > Abs(from.Z) {
			v1.Set(-from.Y, from.X, 0)
		} else {
			v1.Set(0, -from.Z, from.Y)
		}
	} else {
		v1 = from.Cross(to)
	}
	q.X = v1.X
	q.Y = v1.Y
	q.Z = v1.Z
	q.W = r

	q.Normalize()
}

// SetInverse sets this quaternion to its inverse.
func (q *Quat) SetInverse() {
	q.SetConjugate()
	q.Normalize()
}

// Inverse returns the inverse of this quaternion.
func (q Quat) Inverse() Quat {
	nq := q
	nq.SetInverse()
	return nq
}

// SetConjugate sets this quaternion to its conjugate.
func (q *Quat) SetConjugate() {
	q.X *= -1
	q.Y *= -1
	q.Z *= -1
}

// Dot returns the dot product of this quaternion with other.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// LengthSquared returns this quaternion's length squared.
func (q Quat) LengthSquared() float32 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Length returns the length of this quaternion.
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize normalizes this quaternion, countering floating-point drift
// after composition.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		q.SetIdentity()
		return
	}
	l = 1 / l
	q.X *= l
	q.Y *= l
	q.Z *= l
	q.W *= l
}

// MulQuats sets this quaternion to the multiplication of a by b.
func (q *Quat) MulQuats(a, b Quat) {
	q.X = a.X*b.W + a.W*b.X + a.Y*b.Z - a.Z*b.Y
	q.Y = a.Y*b.W + a.W*b.Y + a.Z*b.X - a.X*b.Z
	q.Z = a.Z*b.W + a.W*b.Z + a.X*b.Y - a.Y*b.X
	q.W = a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z
}

// SetMul sets this quaternion to the multiplication of itself by other.
func (q *Quat) SetMul(other Quat) {
	q.MulQuats(*q, other)
}

// Mul returns the multiplication of this quaternion with other.
func (q Quat) Mul(other Quat) Quat {
	nq := q
	nq.SetMul(other)
	return nq
}

// RotateVec returns the given vector rotated by this quaternion.
func (q Quat) RotateVec(v Vector3) Vector3 {
	q00 := 2 * q.X * q.X
	q11 := 2 * q.Y * q.Y
	q22 := 2 * q.Z * q.Z

	q01 := 2 * q.X * q.Y
	q02 := 2 * q.X * q.Z
	q03 := 2 * q.X * q.W

	q12 := 2 * q.Y * q.Z
	q13 := 2 * q.Y * q.W
	q23 := 2 * q.Z * q.W

	return Vec3(
		(1-q11-q22)*v.X+(q01-q23)*v.Y+(q02+q13)*v.Z,
		(q01+q23)*v.X+(1-q22-q00)*v.Y+(q12-q03)*v.Z,
		(q02-q13)*v.X+(q12+q03)*v.Y+(1-q11-q00)*v.Z)
}

// InverseRotateVec returns the given vector rotated by the inverse of this
// quaternion.
func (q Quat) InverseRotateVec(v Vector3) Vector3 {
	return q.Inverse().RotateVec(v)
}

// Matrix returns the rotation matrix associated with this quaternion.
func (q Quat) Matrix() Matrix4 {
	m := Identity4()
	m.SetRotationFromQuat(q)
	return m
}

// Random sets this quaternion to a uniformly sampled random rotation.
func (q *Quat) Random() {
	u1 := rand.Float32()
	u2 := rand.Float32() * 2 * Pi
	u3 := rand.Float32() * 2 * Pi
	q.X = Sqrt(1-u1) * Sin(u2)
	q.Y = Sqrt(1-u1) * Cos(u2)
	q.Z = Sqrt(u1) * Sin(u3)
	q.W = Sqrt(u1) * Cos(u3)
}

// RandomQuat returns a new uniformly sampled random rotation.
func RandomQuat() Quat {
	nq := Quat{}
	nq.Random()
	return nq
}

// IsEqual returns whether this quaternion is equal to other.
func (q Quat) IsEqual(other Quat) bool {
	return (other.X == q.X) && (other.Y == q.Y) && (other.Z == q.Z) && (other.W == q.W)
}

// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/visualcomputing/frames/tolassert"
)

const standardTol = float32(1.0e-6)

func tolAssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
	tolassert.EqualTol(t, vt.Z, va.Z, tol)
}

func tolAssertEqualQuat(t *testing.T, tol float32, qt, qa Quat) {
	if qt.Dot(qa) < 0 { // q and -q are the same rotation
		qa.X, qa.Y, qa.Z, qa.W = -qa.X, -qa.Y, -qa.Z, -qa.W
	}
	tolassert.EqualTol(t, qt.X, qa.X, tol)
	tolassert.EqualTol(t, qt.Y, qa.Y, tol)
	tolassert.EqualTol(t, qt.Z, qa.Z, tol)
	tolassert.EqualTol(t, qt.W, qa.W, tol)
}

func TestVector3(t *testing.T) {
	v := Vec3(1, 2, 3)
	assert.Equal(t, Vec3(3, 5, 7), v.Add(Vec3(2, 3, 4)))
	assert.Equal(t, Vec3(-1, -1, -1), v.Sub(Vec3(2, 3, 4)))
	assert.Equal(t, Vec3(2, 4, 6), v.MulScalar(2))
	assert.Equal(t, Vec3(0.5, 1, 1.5), v.DivScalar(2))
	assert.Equal(t, Vector3{}, v.DivScalar(0))
	assert.Equal(t, float32(20), v.Dot(Vec3(2, 3, 4)))
	tolassert.EqualTol(t, Sqrt(14), v.Length(), standardTol)
	tolassert.EqualTol(t, float32(1), v.Normal().Length(), standardTol)

	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	tolAssertEqualVector(t, standardTol, Vec3(2, 0, 0), Vec3(2, 3, 0).ProjectOnVector(Vec3(1, 0, 0)))
}

func TestQuatAxisAngle(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 0, 1), Pi/2)
	tolAssertEqualVector(t, standardTol, Vec3(0, 1, 0), q.RotateVec(Vec3(1, 0, 0)))
	tolAssertEqualVector(t, standardTol, Vec3(1, 0, 0), q.InverseRotateVec(Vec3(0, 1, 0)))

	tolAssertEqualVector(t, standardTol, Vec3(0, 0, 1), q.Axis())
	tolassert.EqualTol(t, Pi/2, q.Angle(), standardTol)

	// non-normalized axis behaves like the normalized one
	q2 := NewQuatAxisAngle(Vec3(0, 0, 10), Pi/2)
	tolAssertEqualQuat(t, standardTol, q, q2)

	// zero axis yields identity
	assert.True(t, NewQuatAxisAngle(Vector3{}, 1).IsIdentity())
}

func TestQuatMul(t *testing.T) {
	qx := NewQuatAxisAngle(Vec3(1, 0, 0), Pi/2)
	qy := NewQuatAxisAngle(Vec3(0, 1, 0), Pi/2)

	// composition applies the right factor first
	v := Vec3(0, 0, 1)
	got := qx.Mul(qy).RotateVec(v)
	want := qx.RotateVec(qy.RotateVec(v))
	tolAssertEqualVector(t, standardTol, want, got)

	// inverse undoes rotation
	q := qx.Mul(qy)
	tolAssertEqualVector(t, standardTol, v, q.Inverse().RotateVec(q.RotateVec(v)))
	tolassert.EqualTol(t, 1, q.Length(), standardTol)
}

func TestQuatEuler(t *testing.T) {
	euler := Vec3(0.3, -0.4, 0.5)
	q := NewQuatEuler(euler)
	tolAssertEqualVector(t, 1.0e-5, euler, q.ToEuler())
}

func TestQuatRotationMatrix(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(1, 2, 3), 0.7)
	m := q.Matrix()

	v := Vec3(-2, 1, 4)
	tolAssertEqualVector(t, 1.0e-5, q.RotateVec(v), v.MulMatrix4AsPoint4(&m, 1))

	var q2 Quat
	q2.SetFromRotationMatrix(&m)
	tolAssertEqualQuat(t, 1.0e-5, q, q2)
}

func TestQuatFromRotatedBasis(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), 0.9)
	x := q.RotateVec(Vec3(1, 0, 0))
	y := q.RotateVec(Vec3(0, 1, 0))
	z := q.RotateVec(Vec3(0, 0, 1))

	var q2 Quat
	q2.SetFromRotatedBasis(x, y, z)
	tolAssertEqualQuat(t, 1.0e-5, q, q2)

	// scaled basis columns give the same rotation
	q2.SetFromRotatedBasis(x.MulScalar(3), y.MulScalar(3), z.MulScalar(3))
	tolAssertEqualQuat(t, 1.0e-5, q, q2)
}

func TestQuatFromUnitVectors(t *testing.T) {
	var q Quat
	q.SetFromUnitVectors(Vec3(1, 0, 0), Vec3(0, 1, 0))
	tolAssertEqualVector(t, standardTol, Vec3(0, 1, 0), q.RotateVec(Vec3(1, 0, 0)))

	// antiparallel case
	q.SetFromUnitVectors(Vec3(0, 0, 1), Vec3(0, 0, -1))
	tolAssertEqualVector(t, standardTol, Vec3(0, 0, -1), q.RotateVec(Vec3(0, 0, 1)))
}

func TestMatrix4MulInverse(t *testing.T) {
	a := Identity4()
	a.SetRotationFromQuat(NewQuatAxisAngle(Vec3(1, 1, 0), 0.6))
	a.SetPos(Vec3(2, -1, 5))

	inv, err := a.Inverse()
	assert.NoError(t, err)

	var prod Matrix4
	prod.MulMatrices(&a, inv)
	ident := Identity4()
	for i := range prod {
		tolassert.EqualTol(t, ident[i], prod[i], 1.0e-5)
	}
}

func TestMatrix4Perspective(t *testing.T) {
	var m Matrix4
	m.SetPerspective(90, 1, 1, 100)

	// a point on the near plane edge maps to NDC y = 1
	p := Vec3(0, 1, -1).MulMatrix4AsPoint4(&m, 1)
	tolassert.EqualTol(t, 1, p.Y, 1.0e-5)
	tolassert.EqualTol(t, -1, p.Z, 1.0e-5)

	// far plane maps to NDC z = 1
	p = Vec3(0, 0, -100).MulMatrix4AsPoint4(&m, 1)
	tolassert.EqualTol(t, 1, p.Z, 1.0e-4)
}

func TestMatrix4Orthographic(t *testing.T) {
	var m Matrix4
	m.SetOrthographic(4, 2, 1, 100)

	p := Vec3(2, 1, -1).MulMatrix4AsPoint4(&m, 1)
	tolassert.EqualTol(t, 1, p.X, 1.0e-5)
	tolassert.EqualTol(t, 1, p.Y, 1.0e-5)
	tolassert.EqualTol(t, -1, p.Z, 1.0e-5)
}

// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotion2Deltas(t *testing.T) {
	e := NewMotion2(10, 20, 14, 17)
	assert.Equal(t, 2, e.DOF)
	assert.Equal(t, float32(4), e.DX)
	assert.Equal(t, float32(-3), e.DY)
	assert.Equal(t, float32(10), e.PrevX)
	assert.Equal(t, float32(17), e.Y)
}

func TestMotionEvent1(t *testing.T) {
	e := NewMotion2(10, 20, 14, 17)
	e.Fired = true
	e.Speed = 2.5

	ex := e.Event1(true)
	assert.Equal(t, 1, ex.DOF)
	assert.Equal(t, float32(4), ex.DX)
	assert.True(t, ex.Fired)
	assert.Equal(t, float32(2.5), ex.Speed)

	ey := e.Event1(false)
	assert.Equal(t, float32(-3), ey.DX)
	assert.Equal(t, float32(17), ey.X)
}

func TestMotionEvent2(t *testing.T) {
	e := NewMotion6(1, 2, 3, 4, 5, 6)
	e.Flushed = true

	e2 := e.Event2()
	assert.Equal(t, 2, e2.DOF)
	assert.Equal(t, float32(1), e2.DX)
	assert.Equal(t, float32(2), e2.DY)
	assert.Zero(t, e2.DZ)
	assert.Zero(t, e2.DRZ)
	assert.True(t, e2.Flushed)
}

// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/visualcomputing/frames/events"
	"github.com/visualcomputing/frames/math32"
	"github.com/visualcomputing/frames/tolassert"
)

func fired(e events.Motion) events.Motion {
	e.Fired = true
	return e
}

func flushed(e events.Motion) events.Motion {
	e.Flushed = true
	return e
}

func TestSpinDampedTerminates(t *testing.T) {
	g := NewGraph(800, 600)
	f := g.NewFrame()
	f.SetDamping(0.5)

	f.StartSpinning(quatZ(0.1), 1, 16)
	assert.True(t, f.IsSpinning())

	for i := 0; i < 200; i++ {
		g.TimingHandler().Handle()
	}
	assert.False(t, f.IsSpinning())
	assert.Greater(t, f.Rotation().Angle(), float32(0))
}

func TestSpinUndamped(t *testing.T) {
	g := NewGraph(800, 600)
	f := g.NewFrame()
	f.SetDamping(0)

	// releases slower than the spinning sensitivity are noise
	f.StartSpinning(quatZ(0.1), 0.2, 16)
	assert.False(t, f.IsSpinning())

	f.StartSpinning(quatZ(0.1), 1, 16)
	assert.True(t, f.IsSpinning())
	for i := 0; i < 50; i++ {
		g.TimingHandler().Handle()
	}
	// constant velocity until stopped explicitly
	assert.True(t, f.IsSpinning())
	f.StopSpinning()
	assert.False(t, f.IsSpinning())
}

func TestTranslateMotionEye(t *testing.T) {
	g, eye := newEyeGraph(t)

	eye.TranslateMotion(events.NewMotion2(400, 300, 410, 300))

	// ten pixels of drag move the eye against the gesture by ten pixels
	// worth of world units at the anchor depth
	want := -10 * 2 * math32.Tan(g.FieldOfView()/2) * 50 / 600
	pos := eye.Position()
	tolassert.Equal(t, want, pos.X)
	tolassert.Equal(t, float32(0), pos.Y)
	tolassert.Equal(t, float32(50), pos.Z)
}

func TestTranslateMotionFrame(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()

	f.TranslateMotion(events.NewMotion2(400, 300, 410, 300))

	want := 10 * 2 * math32.Tan(g.FieldOfView()/2) * 50 / 600
	pos := f.Position()
	tolassert.Equal(t, want, pos.X)
	tolassert.Equal(t, float32(0), pos.Y)
}

func TestTranslateMotionInsufficientDOF(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()
	f.TranslateMotion(events.NewMotion1(10))
	assertVector(t, math32.Vector3{}, f.Position())
}

func TestScreenTranslateLatchesDirection(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()

	f.ScreenTranslate(fired(events.NewMotion2(0, 0, 10, 2)))
	first := f.Position()
	assert.Greater(t, first.X, float32(0))
	tolassert.Equal(t, float32(0), first.Y)

	// the gesture stays horizontal even when the drag turns vertical
	f.ScreenTranslate(events.NewMotion2(10, 2, 12, 8))
	pos := f.Position()
	assert.Greater(t, pos.X, first.X)
	tolassert.Equal(t, float32(0), pos.Y)
}

func TestRotateMotionArcball(t *testing.T) {
	g, eye := newEyeGraph(t)
	eye.SetDamping(0)

	e := fired(events.NewMotion2(400, 300, 400, 300))
	e.Speed, e.Delay = 1, 16
	eye.RotateMotion(e)

	e = events.NewMotion2(400, 300, 420, 300)
	e.Speed, e.Delay = 1, 16
	eye.RotateMotion(e)

	// the eye orbits the anchor, keeping its distance
	pos := eye.Position()
	tolassert.EqualTol(t, 50, pos.Length(), 0.01)
	assert.Greater(t, math32.Abs(pos.X), float32(1))

	e = flushed(events.NewMotion2(420, 300, 420, 300))
	e.Speed, e.Delay = 1, 16
	eye.RotateMotion(e)
	assert.True(t, eye.IsSpinning())

	before := eye.Position()
	g.TimingHandler().Handle()
	assert.NotEqual(t, before, eye.Position())
	eye.StopSpinning()
}

func TestRotateMotionDampedStops(t *testing.T) {
	g, eye := newEyeGraph(t)
	eye.SetDamping(0.5)

	e := events.NewMotion2(400, 300, 420, 300)
	e.Speed, e.Delay = 1, 16
	eye.RotateMotion(e)
	assert.True(t, eye.IsSpinning())

	for i := 0; i < 200; i++ {
		g.TimingHandler().Handle()
	}
	assert.False(t, eye.IsSpinning())
}

func TestScaleMotion(t *testing.T) {
	g, eye := newEyeGraph(t)
	f := g.NewFrame()

	f.ScaleMotion(events.NewMotion2(0, 0, 60, 0))
	tolassert.Equal(t, float32(1.1), f.Scaling())

	// the same gesture on the eye scales the other way
	eye.ScaleMotion(events.NewMotion2(0, 0, 60, 0))
	tolassert.Equal(t, float32(0.9), eye.Scaling())
}

func TestScaleKeys(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()
	f.ScalePos()
	assert.Greater(t, f.Scaling(), float32(1))
	f.ScaleNeg()
	tolassert.Equal(t, float32(1), f.Scaling())
}

func TestZoomOnAnchor(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()
	f.SetPosition(math32.Vec3(50, 0, 0))

	f.ZoomOnAnchor(events.NewMotion2(0, 0, 60, 0))
	assertVector(t, math32.Vec3(45, 0, 0), f.Position())
}

func TestZoomOnAnchorStopsNearAnchor(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()
	f.SetPosition(math32.Vec3(0.5, 0, 0))

	// closer than two percent of the radius: zooming in is blocked
	f.ZoomOnAnchor(events.NewMotion2(0, 0, -60, 0))
	assertVector(t, math32.Vec3(0.5, 0, 0), f.Position())

	// the positive direction stays available
	f.ZoomOnAnchor(events.NewMotion2(0, 0, 60, 0))
	assert.Less(t, f.Position().X, float32(0.5))
}

func TestMoveForwardFlies(t *testing.T) {
	g, eye := newEyeGraph(t)

	eye.MoveForward(fired(events.NewMotion2(400, 300, 400, 300)))
	assert.True(t, eye.IsFlying())

	for i := 0; i < 5; i++ {
		g.TimingHandler().Handle()
	}
	// fly speed defaults to a hundredth of the radius per tick
	tolassert.Equal(t, float32(45), eye.Position().Z)

	eye.MoveForward(flushed(events.NewMotion2(400, 300, 400, 300)))
	assert.False(t, eye.IsFlying())
}

func TestDriveRestoresFlySpeed(t *testing.T) {
	_, eye := newEyeGraph(t)
	speed := eye.FlySpeed()

	eye.Drive(fired(events.NewMotion2(400, 300, 400, 300)))
	eye.Drive(events.NewMotion2(400, 300, 400, 360))
	assert.True(t, eye.IsFlying())
	assert.NotEqual(t, speed, eye.FlySpeed())

	eye.Drive(flushed(events.NewMotion2(400, 360, 400, 360)))
	assert.False(t, eye.IsFlying())
	tolassert.Equal(t, speed, eye.FlySpeed())
}

func TestHingeEyeOnly(t *testing.T) {
	g, eye := newEyeGraph(t)
	f := g.NewFrame()
	f.SetPosition(math32.Vec3(1, 2, 3))

	f.Hinge(events.NewMotion6(10, 0, 0, 0, 0, 0))
	assertVector(t, math32.Vec3(1, 2, 3), f.Position())

	// the scratch frame is cleaned up and the hierarchy restored
	frames := len(g.Frames())
	eye.Hinge(events.NewMotion6(10, 0, 0, 0, 0, 0))
	assert.Len(t, g.Frames(), frames)
	assert.Nil(t, eye.Reference())
	// sliding over the anchor sphere keeps the distance to the anchor
	tolassert.EqualTol(t, 50, eye.Position().Length(), 0.1)
}

func TestLookAroundRotatesInPlace(t *testing.T) {
	_, eye := newEyeGraph(t)

	eye.LookAround(events.NewMotion2(400, 300, 420, 300))
	tolassert.Equal(t, float32(50), eye.Position().Z)
	assert.Greater(t, eye.Orientation().Angle(), float32(0))
}

func TestRotateCAD(t *testing.T) {
	_, eye := newEyeGraph(t)
	eye.SetDamping(0)

	e := fired(events.NewMotion2(400, 300, 400, 300))
	eye.RotateCAD(e)
	e = events.NewMotion2(400, 300, 440, 300)
	e.Speed = 1
	eye.RotateCAD(e)

	// a horizontal CAD drag turns around the up vector, preserving it
	assertVector(t, math32.Vec3(0, 1, 0), eye.Orientation().RotateVec(math32.Vec3(0, 1, 0)))
	assert.Greater(t, eye.Orientation().Angle(), float32(0))
}

func TestScreenRotate(t *testing.T) {
	_, eye := newEyeGraph(t)
	eye.SetDamping(0)

	eye.ScreenRotate(fired(events.NewMotion2(500, 300, 500, 300)))
	// a quarter sweep around the projected anchor rolls the eye
	eye.ScreenRotate(events.NewMotion2(500, 300, 400, 200))

	axis := eye.Orientation().Axis()
	tolassert.Equal(t, float32(0), axis.X)
	tolassert.Equal(t, float32(0), axis.Y)
	assert.Greater(t, eye.Orientation().Angle(), float32(0.5))
}

func TestAlignGesture(t *testing.T) {
	g, eye := newEyeGraph(t)
	eye.SetRotation(quatZ(0.1))

	eye.Align()
	tolassert.Equal(t, float32(0), eye.Orientation().Angle())

	f := g.NewFrame()
	f.SetRotation(quatZ(0.1))
	f.Align()
	// non-eye frames align with the (now axis aligned) eye
	tolassert.Equal(t, float32(0), f.Orientation().Angle())
}

func TestCenterGesture(t *testing.T) {
	g, eye := newEyeGraph(t)
	f := g.NewFrame()
	f.SetPosition(math32.Vec3(3, 4, 0))

	// projecting on the eye axis centers the frame in the view
	f.Center()
	pos := f.Position()
	tolassert.Equal(t, float32(0), pos.X)
	tolassert.Equal(t, float32(0), pos.Y)

	eye.SetPosition(math32.Vec3(10, 0, 50))
	eye.Center()
	tolassert.Equal(t, float32(0), eye.Position().X)
}

func TestZoomOnRegion(t *testing.T) {
	_, eye := newEyeGraph(t)

	eye.ZoomOnRegion(fired(events.NewMotion2(300, 200, 300, 200)))
	assertVector(t, math32.Vec3(0, 0, 50), eye.Position())

	eye.ZoomOnRegion(flushed(events.NewMotion2(300, 200, 500, 400)))
	pos := eye.Position()
	tolassert.EqualTol(t, 0, pos.X, 0.01)
	tolassert.EqualTol(t, 0, pos.Y, 0.01)
	assert.Less(t, pos.Z, float32(50))
}

func TestRotateXYZ(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()

	f.RotateXYZ(fired(events.NewMotion3(80, 0, 0)))
	assert.Greater(t, f.Rotation().Angle(), float32(0))

	before := f.Rotation()
	f.RotateXYZ(events.NewMotion2(0, 0, 10, 0))
	assert.True(t, before.IsEqual(f.Rotation()))
}

func TestTranslateRotateXYZ(t *testing.T) {
	g, _ := newEyeGraph(t)
	f := g.NewFrame()

	f.TranslateRotateXYZ(events.NewMotion6(10, 0, 0, 80, 0, 0))
	assert.Greater(t, f.Position().X, float32(0))
	assert.Greater(t, f.Rotation().Angle(), float32(0))
}

func TestAdaptivePickingThreshold(t *testing.T) {
	g, _ := newEyeGraph(t)
	near := g.NewFrame()
	far := g.NewFrame()
	far.SetPosition(math32.Vec3(0, 0, -50))
	near.SetPrecision(Adaptive)
	far.SetPrecision(Adaptive)

	// twice the distance doubles the pixel threshold
	tolassert.Equal(t, 2*near.PrecisionThreshold(), far.PrecisionThreshold())

	half := near.PrecisionThreshold() / 2
	assert.True(t, near.Track(400+half/2, 300))
	assert.False(t, near.Track(400+2*half, 300))
}

func TestFixedPickingThreshold(t *testing.T) {
	g, eye := newEyeGraph(t)
	f := g.NewFrame()

	assert.True(t, f.Track(408, 300))
	assert.False(t, f.Track(411, 300))
	assert.False(t, eye.Track(400, 300))
}

func TestAgentDispatch(t *testing.T) {
	g, eye := newEyeGraph(t)
	agent := g.NewAgent()
	f := g.NewFrame()

	var got []events.Motion
	f.OnInteract = func(frame *Frame, e events.Motion) {
		assert.Equal(t, f, frame)
		got = append(got, e)
	}

	assert.Equal(t, f, agent.Track(400, 300))
	assert.True(t, f.GrabsInput(agent))
	agent.Handle(events.NewMotion2(400, 300, 410, 300))
	assert.Len(t, got, 1)

	// off target, input falls back to the default grabber
	assert.Nil(t, agent.Track(0, 0))
	agent.SetDefaultGrabber(eye)
	assert.Equal(t, eye, agent.InputGrabber())
	agent.Handle(events.NewMotion2(0, 0, 10, 0))
	assert.Len(t, got, 1)

	g.Delete(f)
	assert.NotContains(t, agent.Grabbers(), f)
}

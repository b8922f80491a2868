// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/visualcomputing/frames/math32"

// speeds below this stop a damped spin
const spinSpeedEpsilon = 0.001

// SPINNING

// IsSpinning returns whether the frame is currently spinning: rotating by
// [Frame.SpinningQuaternion] once per spin tick.
func (f *Frame) IsSpinning() bool {
	return f.spinTask.IsActive()
}

// SpinningQuaternion returns the incremental rotation applied at each
// spin tick.
func (f *Frame) SpinningQuaternion() math32.Quat {
	return f.spinningQuaternion
}

// StartSpinning spins the frame by the given incremental quaternion, with
// the gesture release speed in pixels per millisecond and the tick period
// in milliseconds. With zero damping the spin runs at constant velocity
// until stopped, and requests slower than the spinning sensitivity are
// dropped as noise; with damping the speed decays geometrically and the
// spin stops on its own.
func (f *Frame) StartSpinning(quaternion math32.Quat, speed, delay float32) {
	f.spinningQuaternion = quaternion
	f.eventSpeed = speed
	f.eventDelay = delay
	if f.damping == 0 && f.eventSpeed < f.spinningSensitivity {
		return
	}
	f.spinTask.Run(delay)
}

// StopSpinning cancels the spin. Idempotent, and safe to call from the
// spin tick itself.
func (f *Frame) StopSpinning() {
	f.spinTask.Stop()
}

// spinExecution is the spin tick. With damping it decays the speed after
// each step and terminates once the speed snaps to zero.
func (f *Frame) spinExecution() {
	if f.damping == 0 {
		f.spin()
		return
	}
	if f.eventSpeed == 0 {
		f.StopSpinning()
		return
	}
	f.spin()
	f.recomputeSpinningQuaternion()
}

// applySpin caches the quaternion and applies a single spin step; used by
// gestures when damping is zero, so that releasing the pointer leaves one
// discrete rotation plus the cached state for a possible spin.
func (f *Frame) applySpin(quaternion math32.Quat, speed, delay float32) {
	if f.damping == 0 {
		f.spinningQuaternion = quaternion
		f.spin()
		f.eventSpeed = speed
		f.eventDelay = delay
		return
	}
	f.StartSpinning(quaternion, speed, delay)
}

// spin applies one spin step: the eye orbits the graph anchor, any other
// frame rotates locally.
func (f *Frame) spin() {
	if f.IsEye() {
		f.RotateAroundPoint(f.spinningQuaternion, f.graph.anchor)
	} else {
		f.Rotate(f.spinningQuaternion)
	}
}

// recomputeSpinningQuaternion decays the event speed by 1 - damping^3,
// snapping to zero below the epsilon, and rescales the spinning
// quaternion angle by the new to previous speed ratio.
func (f *Frame) recomputeSpinningQuaternion() {
	prevSpeed := f.eventSpeed
	f.eventSpeed *= 1 - f.damping*f.damping*f.damping
	if math32.Abs(f.eventSpeed) < spinSpeedEpsilon {
		f.eventSpeed = 0
	}
	f.spinningQuaternion.SetFromAxisAngle(f.spinningQuaternion.Axis(),
		f.spinningQuaternion.Angle()*(f.eventSpeed/prevSpeed))
}

// FLYING

// IsFlying returns whether the frame is currently flying: translating by
// [Frame.FlyDirection] once per fly tick.
func (f *Frame) IsFlying() bool {
	return f.flyTask.IsActive()
}

// FlyDirection returns the translation applied at each fly tick, defined
// with respect to the reference frame.
func (f *Frame) FlyDirection() math32.Vector3 {
	return f.flyDirection
}

// startFlying translates the frame by direction at the fly update period
// until StopFlying. There is no decay: the driving gesture updates or
// stops the direction.
func (f *Frame) startFlying(direction math32.Vector3, speed float32) {
	f.eventSpeed = speed
	f.flyDirection = direction
	f.flyTask.Run(f.graph.settings.FlyUpdatePeriod)
}

// StopFlying cancels the fly. Idempotent.
func (f *Frame) StopFlying() {
	f.flyTask.Stop()
}

// fly is the fly tick.
func (f *Frame) fly() {
	f.Translate(f.flyDirection)
}

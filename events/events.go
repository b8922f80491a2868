// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the input events that drive frame gestures:
// motion events with one to six degrees of freedom, taps, and key presses.
package events

import "fmt"

// Motion is a gesture event with up to six degrees of freedom.
// A drag produces a stream of them: the first one has Fired set, the last
// one has Flushed set, and the ones in between have neither. DX through
// DRZ hold the per-event deltas; X, Y, PrevX and PrevY hold the current
// and previous cursor position for the 2+ DOF variants.
type Motion struct {
	// DOF is the number of degrees of freedom: 1, 2, 3 or 6.
	DOF int

	// X and Y are the current cursor position.
	X, Y float32

	// PrevX and PrevY are the cursor position of the previous event
	// in the gesture.
	PrevX, PrevY float32

	// DX, DY and DZ are the translational deltas.
	DX, DY, DZ float32

	// DRX, DRY and DRZ are the rotational deltas.
	DRX, DRY, DRZ float32

	// Fired marks the first event of a gesture.
	Fired bool

	// Flushed marks the final event of a gesture.
	Flushed bool

	// Speed is the cursor speed in pixels per millisecond, filled in by
	// the agent that produced the event.
	Speed float32

	// Delay is the time since the previous event of the gesture, in
	// milliseconds.
	Delay float32
}

// NewMotion1 returns a new 1-DOF motion event with the given delta.
func NewMotion1(dx float32) Motion {
	return Motion{DOF: 1, DX: dx}
}

// NewMotion2 returns a new 2-DOF motion event moving the cursor from
// (prevX, prevY) to (x, y).
func NewMotion2(prevX, prevY, x, y float32) Motion {
	return Motion{DOF: 2, X: x, Y: y, PrevX: prevX, PrevY: prevY, DX: x - prevX, DY: y - prevY}
}

// NewMotion3 returns a new 3-DOF motion event with the given deltas.
func NewMotion3(dx, dy, dz float32) Motion {
	return Motion{DOF: 3, DX: dx, DY: dy, DZ: dz}
}

// NewMotion6 returns a new 6-DOF motion event with the given translational
// and rotational deltas.
func NewMotion6(dx, dy, dz, drx, dry, drz float32) Motion {
	return Motion{DOF: 6, DX: dx, DY: dy, DZ: dz, DRX: drx, DRY: dry, DRZ: drz}
}

func (e Motion) String() string {
	return fmt.Sprintf("Motion%d(dx: %v, dy: %v, dz: %v, drx: %v, dry: %v, drz: %v, fired: %v, flushed: %v)",
		e.DOF, e.DX, e.DY, e.DZ, e.DRX, e.DRY, e.DRZ, e.Fired, e.Flushed)
}

// Event1 downgrades this event to 1-DOF, keeping the horizontal delta if
// fromX is true and the vertical one otherwise. Phase, speed and delay
// carry over.
func (e Motion) Event1(fromX bool) Motion {
	e1 := Motion{DOF: 1, Fired: e.Fired, Flushed: e.Flushed, Speed: e.Speed, Delay: e.Delay}
	if fromX {
		e1.DX = e.DX
		e1.X = e.X
		e1.PrevX = e.PrevX
	} else {
		e1.DX = e.DY
		e1.X = e.Y
		e1.PrevX = e.PrevY
	}
	return e1
}

// Event2 downgrades this event to 2-DOF, dropping the higher degrees of
// freedom. Phase, speed and delay carry over.
func (e Motion) Event2() Motion {
	e2 := e
	e2.DOF = 2
	e2.DZ = 0
	e2.DRX = 0
	e2.DRY = 0
	e2.DRZ = 0
	return e2
}

// Tap is a click or touch-tap event at the given screen position.
type Tap struct {
	X, Y  float32
	Count int
}

// NewTap returns a new tap event at the given position with the given
// number of consecutive taps.
func NewTap(x, y float32, count int) Tap {
	return Tap{X: x, Y: y, Count: count}
}

// Key is a key press event.
type Key struct {
	// Rune is the character produced by the key, if any.
	Rune rune

	// Code identifies keys with no character, such as arrows.
	Code int
}

// NewKey returns a new key event for the given character.
func NewKey(r rune) Key {
	return Key{Rune: r}
}

// NewKeyCode returns a new key event for the given key code.
func NewKeyCode(code int) Key {
	return Key{Code: code}
}

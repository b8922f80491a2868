// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/visualcomputing/frames/events"

// Agent routes input events to frames. It keeps the pool of pickable
// grabbers, tracks which one is under the pointer, and answers the "who
// currently owns input" question gestures depend on. Event sources feed
// it pointer positions through [Agent.Track] and motion events through
// [Agent.Handle].
type Agent struct {
	graph          *Graph
	grabbers       []*Frame
	tracked        *Frame
	defaultGrabber *Frame
}

// NewAgent returns a new agent registered with this graph. Every live
// frame joins its grabber pool, as does every frame created afterwards.
func (g *Graph) NewAgent() *Agent {
	a := &Agent{graph: g}
	for _, f := range g.Frames() {
		a.AddGrabber(f)
	}
	g.agents = append(g.agents, a)
	return a
}

// Agents returns the agents registered with this graph.
func (g *Graph) Agents() []*Agent { return g.agents }

// AddGrabber adds the given frame to the agent's pickable pool.
func (a *Agent) AddGrabber(frame *Frame) {
	if frame == nil {
		return
	}
	for _, f := range a.grabbers {
		if f == frame {
			return
		}
	}
	a.grabbers = append(a.grabbers, frame)
}

// RemoveGrabber removes the given frame from the pool and from the
// tracked and default slots.
func (a *Agent) RemoveGrabber(frame *Frame) {
	for i, f := range a.grabbers {
		if f == frame {
			a.grabbers = append(a.grabbers[:i], a.grabbers[i+1:]...)
			break
		}
	}
	if a.tracked == frame {
		a.tracked = nil
	}
	if a.defaultGrabber == frame {
		a.defaultGrabber = nil
	}
}

// Grabbers returns the agent's pickable pool.
func (a *Agent) Grabbers() []*Frame { return a.grabbers }

// Track updates the tracked grabber from the given pointer position,
// polling the pool with each frame's picking test, and returns it (nil
// when the pointer is over no frame).
func (a *Agent) Track(x, y float32) *Frame {
	a.tracked = nil
	for _, f := range a.grabbers {
		if f.Track(x, y) {
			a.tracked = f
			break
		}
	}
	return a.tracked
}

// TrackedGrabber returns the frame currently under the pointer, or nil.
func (a *Agent) TrackedGrabber() *Frame { return a.tracked }

// ResetTrackedGrabber clears the tracked grabber.
func (a *Agent) ResetTrackedGrabber() { a.tracked = nil }

// DefaultGrabber returns the frame input falls back to when no frame is
// tracked, conventionally the eye.
func (a *Agent) DefaultGrabber() *Frame { return a.defaultGrabber }

// SetDefaultGrabber sets the fallback input grabber.
func (a *Agent) SetDefaultGrabber(frame *Frame) { a.defaultGrabber = frame }

// InputGrabber returns the frame that currently owns input: the tracked
// grabber if any, the default grabber otherwise.
func (a *Agent) InputGrabber() *Frame {
	if a.tracked != nil {
		return a.tracked
	}
	return a.defaultGrabber
}

// Handle dispatches the given motion event to the input grabber's
// OnInteract callback. Events with no grabber or no callback are dropped.
func (a *Agent) Handle(event events.Motion) {
	if f := a.InputGrabber(); f != nil && f.OnInteract != nil {
		f.OnInteract(f, event)
	}
}

// GrabsInput returns whether this frame currently owns the given agent's
// input.
func (f *Frame) GrabsInput(agent *Agent) bool {
	return agent != nil && agent.InputGrabber() == f
}

// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timing provides a cooperative, frame-based task scheduler.
// A [Handler] owns a set of [Task] timers and fires the ones that are due
// each time its Handle method is called, once per rendered frame.
// Time is counted in ticks, converted from milliseconds using the
// handler's frame rate, so scheduling stays deterministic and needs no
// goroutines or wall clocks.
package timing

import "math"

// DefaultFrameRate is the frame rate assumed when converting milliseconds
// to ticks, in frames per second.
const DefaultFrameRate = 60

// Handler schedules [Task] timers against a frame counter.
// Register tasks with [Handler.NewTask] and call [Handler.Handle] once per
// frame to advance time and run the tasks that are due.
type Handler struct {
	tasks     []*Task
	tickCount uint64
	frameRate float32
}

// NewHandler returns a new [Handler] running at [DefaultFrameRate].
func NewHandler() *Handler {
	return &Handler{frameRate: DefaultFrameRate}
}

// Handle advances the frame counter by one tick and executes every
// registered task that is due. Tasks may stop themselves or other tasks
// from their callbacks.
func (h *Handler) Handle() {
	h.tickCount++
	due := make([]*Task, 0, len(h.tasks))
	for _, t := range h.tasks {
		if t.active && h.tickCount >= t.trigger {
			due = append(due, t)
		}
	}
	for _, t := range due {
		if !t.active { // stopped by an earlier task this tick
			continue
		}
		if t.once {
			t.active = false
		} else {
			t.trigger = h.tickCount + t.period
		}
		t.fn()
	}
}

// TickCount returns the number of frames handled so far.
func (h *Handler) TickCount() uint64 {
	return h.tickCount
}

// FrameRate returns the frame rate used to convert milliseconds to ticks.
func (h *Handler) FrameRate() float32 {
	return h.frameRate
}

// SetFrameRate sets the frame rate used to convert milliseconds to ticks.
// Rates <= 0 are ignored.
func (h *Handler) SetFrameRate(fps float32) {
	if fps > 0 {
		h.frameRate = fps
	}
}

// NewTask registers and returns a new task that calls fn when due.
// The task is created inactive; start it with [Task.Run] or [Task.RunOnce].
func (h *Handler) NewTask(fn func()) *Task {
	t := &Task{handler: h, fn: fn}
	h.tasks = append(h.tasks, t)
	return t
}

// Unregister removes the given task from this handler.
func (h *Handler) Unregister(task *Task) {
	task.active = false
	for i, t := range h.tasks {
		if t == task {
			h.tasks = append(h.tasks[:i], h.tasks[i+1:]...)
			return
		}
	}
}

// Tasks returns the tasks currently registered with this handler.
func (h *Handler) Tasks() []*Task {
	return h.tasks
}

// periodTicks converts a period in milliseconds to a tick count,
// at least 1 so a task can never fire twice in the same frame.
func (h *Handler) periodTicks(periodMS float32) uint64 {
	ticks := math.Round(float64(periodMS) * float64(h.frameRate) / 1000)
	if ticks < 1 {
		return 1
	}
	return uint64(ticks)
}

// Task is a timer registered with a [Handler]. It fires its callback
// repeatedly with a fixed period, or once after a delay.
type Task struct {
	handler *Handler
	fn      func()
	trigger uint64
	period  uint64
	active  bool
	once    bool
}

// Run starts (or restarts) the task firing repeatedly every periodMS
// milliseconds.
func (t *Task) Run(periodMS float32) {
	t.period = t.handler.periodTicks(periodMS)
	t.trigger = t.handler.tickCount + t.period
	t.once = false
	t.active = true
}

// RunOnce starts (or restarts) the task firing a single time after
// delayMS milliseconds.
func (t *Task) RunOnce(delayMS float32) {
	t.period = t.handler.periodTicks(delayMS)
	t.trigger = t.handler.tickCount + t.period
	t.once = true
	t.active = true
}

// Stop deactivates the task. It can be started again with [Task.Run] or
// [Task.RunOnce].
func (t *Task) Stop() {
	t.active = false
}

// IsActive returns whether the task is currently scheduled to fire.
func (t *Task) IsActive() bool {
	return t.active
}

// Period returns the task's current period, in ticks.
func (t *Task) Period() uint64 {
	return t.period
}

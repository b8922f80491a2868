// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskRun(t *testing.T) {
	h := NewHandler()
	count := 0
	task := h.NewTask(func() { count++ })
	assert.False(t, task.IsActive())

	// 50ms at 60fps is 3 ticks
	task.Run(50)
	assert.True(t, task.IsActive())
	assert.Equal(t, uint64(3), task.Period())

	for i := 0; i < 12; i++ {
		h.Handle()
	}
	assert.Equal(t, 4, count)
	assert.Equal(t, uint64(12), h.TickCount())

	task.Stop()
	h.Handle()
	h.Handle()
	h.Handle()
	assert.Equal(t, 4, count)
}

func TestTaskRunOnce(t *testing.T) {
	h := NewHandler()
	count := 0
	task := h.NewTask(func() { count++ })
	task.RunOnce(50)

	for i := 0; i < 12; i++ {
		h.Handle()
	}
	assert.Equal(t, 1, count)
	assert.False(t, task.IsActive())
}

func TestTaskMinimumPeriod(t *testing.T) {
	h := NewHandler()
	count := 0
	task := h.NewTask(func() { count++ })

	// sub-frame periods clamp to one tick per frame
	task.Run(1)
	for i := 0; i < 5; i++ {
		h.Handle()
	}
	assert.Equal(t, 5, count)
}

func TestTaskSelfStop(t *testing.T) {
	h := NewHandler()
	count := 0
	var task *Task
	task = h.NewTask(func() {
		count++
		if count == 3 {
			task.Stop()
		}
	})
	task.Run(16)

	for i := 0; i < 20; i++ {
		h.Handle()
	}
	assert.Equal(t, 3, count)
}

func TestUnregister(t *testing.T) {
	h := NewHandler()
	task := h.NewTask(func() {})
	other := h.NewTask(func() {})
	assert.Len(t, h.Tasks(), 2)

	h.Unregister(task)
	assert.Len(t, h.Tasks(), 1)
	assert.Same(t, other, h.Tasks()[0])
}

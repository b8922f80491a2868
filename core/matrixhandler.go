// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/visualcomputing/frames/math32"

// MatrixHandler is the boundary to a rendering backend: a push/pop-able
// transform stack with separate projection and modelview matrices, each
// bindable in replace and multiply modes. [Graph.Traverse] drives it while
// visiting the tree; [MatrixStack] is a backend-free implementation.
type MatrixHandler interface {
	// Bind replaces both the projection and modelview matrices, called
	// once at the start of a render pass.
	Bind(projection, view math32.Matrix4)

	// Projection returns the current projection matrix.
	Projection() math32.Matrix4

	// BindProjection replaces the projection matrix.
	BindProjection(m math32.Matrix4)

	// ApplyProjection multiplies the projection matrix by m.
	ApplyProjection(m *math32.Matrix4)

	// PushProjection saves the projection matrix on a stack.
	PushProjection()

	// PopProjection restores the last saved projection matrix.
	PopProjection()

	// ModelView returns the current modelview matrix.
	ModelView() math32.Matrix4

	// BindModelView replaces the modelview matrix.
	BindModelView(m math32.Matrix4)

	// ApplyModelView multiplies the modelview matrix by m.
	ApplyModelView(m *math32.Matrix4)

	// PushModelView saves the modelview matrix on a stack.
	PushModelView()

	// PopModelView restores the last saved modelview matrix.
	PopModelView()
}

// MatrixHandler returns the matrix handler bound to this graph, or nil.
func (g *Graph) MatrixHandler() MatrixHandler { return g.matrixHandler }

// SetMatrixHandler binds the given matrix handler to this graph; nil
// unbinds, making traversal skip matrix bookkeeping.
func (g *Graph) SetMatrixHandler(handler MatrixHandler) { g.matrixHandler = handler }

// PreDraw binds the graph projection and view matrices to the matrix
// handler; call it once per render pass, before [Graph.Traverse].
func (g *Graph) PreDraw() {
	if g.matrixHandler != nil {
		g.matrixHandler.Bind(g.Projection(), g.View())
	}
}

// ApplyTransformation multiplies the handler's modelview by the frame's
// local transform. Calling it for a frame and its ancestors in root to
// leaf order accumulates the frame's world transform.
func (g *Graph) ApplyTransformation(frame *Frame) {
	if g.matrixHandler == nil {
		return
	}
	m := frame.Matrix()
	g.matrixHandler.ApplyModelView(&m)
}

// ApplyWorldTransformation multiplies the handler's modelview by the
// frame's world transform, useful to draw a frame regardless of the
// current traversal position.
func (g *Graph) ApplyWorldTransformation(frame *Frame) {
	if g.matrixHandler == nil {
		return
	}
	m := frame.WorldMatrix()
	g.matrixHandler.ApplyModelView(&m)
}

// MatrixStack is a pure in-memory [MatrixHandler], for headless use and
// as the reference for graphics-API backends.
type MatrixStack struct {
	projection      math32.Matrix4
	modelview       math32.Matrix4
	projectionStack []math32.Matrix4
	modelviewStack  []math32.Matrix4
}

// NewMatrixStack returns a new matrix stack with identity matrices.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{
		projection: math32.Identity4(),
		modelview:  math32.Identity4(),
	}
}

func (s *MatrixStack) Bind(projection, view math32.Matrix4) {
	s.projection = projection
	s.modelview = view
}

func (s *MatrixStack) Projection() math32.Matrix4 { return s.projection }

func (s *MatrixStack) BindProjection(m math32.Matrix4) { s.projection = m }

func (s *MatrixStack) ApplyProjection(m *math32.Matrix4) { s.projection.SetMul(m) }

func (s *MatrixStack) PushProjection() {
	s.projectionStack = append(s.projectionStack, s.projection)
}

func (s *MatrixStack) PopProjection() {
	if n := len(s.projectionStack); n > 0 {
		s.projection = s.projectionStack[n-1]
		s.projectionStack = s.projectionStack[:n-1]
	}
}

func (s *MatrixStack) ModelView() math32.Matrix4 { return s.modelview }

func (s *MatrixStack) BindModelView(m math32.Matrix4) { s.modelview = m }

func (s *MatrixStack) ApplyModelView(m *math32.Matrix4) { s.modelview.SetMul(m) }

func (s *MatrixStack) PushModelView() {
	s.modelviewStack = append(s.modelviewStack, s.modelview)
}

func (s *MatrixStack) PopModelView() {
	if n := len(s.modelviewStack); n > 0 {
		s.modelview = s.modelviewStack[n-1]
		s.modelviewStack = s.modelviewStack[:n-1]
	}
}

// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/visualcomputing/frames/math32"
	"github.com/visualcomputing/frames/tolassert"
)

// newEyeGraph returns an 800x600 graph with an eye frame at (0, 0, 50)
// looking down the negative z axis at the origin.
func newEyeGraph(t *testing.T) (*Graph, *Frame) {
	t.Helper()
	g := NewGraph(800, 600)
	eye := g.NewFrame()
	eye.SetPosition(math32.Vec3(0, 0, 50))
	g.SetEye(eye)
	return g, eye
}

func TestHandles(t *testing.T) {
	g := NewGraph(800, 600)
	a := g.NewFrame()
	b := g.NewFrame()
	assert.NotEqual(t, a.Handle(), b.Handle())
	assert.NotEqual(t, World, a.Handle())
	assert.Equal(t, a, g.Frame(a.Handle()))
	assert.Nil(t, g.Frame(World))

	g.Delete(a)
	assert.Nil(t, g.Frame(a.Handle()))

	// handles are never recycled
	c := g.NewFrame()
	assert.NotEqual(t, a.Handle(), c.Handle())
}

func TestDeleteReattachesChildren(t *testing.T) {
	g := NewGraph(800, 600)
	parent := g.NewFrame()
	child := g.NewFrame()
	child.SetReference(parent)

	g.Delete(parent)
	assert.Nil(t, child.Reference())
	assert.Contains(t, g.Leading(), child)
}

func TestDeleteClearsEye(t *testing.T) {
	g, eye := newEyeGraph(t)
	g.Delete(eye)
	assert.Nil(t, g.Eye())
}

func TestSetEyeRejectsForeignFrame(t *testing.T) {
	g1 := NewGraph(800, 600)
	g2 := NewGraph(800, 600)
	foreign := g2.NewFrame()
	g1.SetEye(foreign)
	assert.Nil(t, g1.Eye())
}

func TestTraverseOrderAndCulling(t *testing.T) {
	g := NewGraph(800, 600)
	var order []Handle
	record := func(f *Frame) { order = append(order, f.Handle()) }

	a := g.NewFrame()
	b := g.NewFrame()
	b.SetReference(a)
	c := g.NewFrame()
	c.SetReference(b)
	d := g.NewFrame()
	for _, f := range []*Frame{a, b, c, d} {
		f.OnVisit = record
	}

	g.Traverse()
	assert.Equal(t, []Handle{a.Handle(), b.Handle(), c.Handle(), d.Handle()}, order)

	// culling b prunes its whole branch
	order = nil
	b.Cull(true)
	g.Traverse()
	assert.Equal(t, []Handle{a.Handle(), d.Handle()}, order)

	order = nil
	b.Cull(false)
	g.Traverse()
	assert.Len(t, order, 4)
}

func TestTraverseMatrixStack(t *testing.T) {
	g, _ := newEyeGraph(t)
	stack := NewMatrixStack()
	g.SetMatrixHandler(stack)

	parent := g.NewFrame()
	parent.SetTranslation(math32.Vec3(1, 0, 0))
	parent.SetRotation(math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), 0.5))
	leaf := g.NewFrame()
	leaf.SetReference(parent)
	leaf.SetTranslation(math32.Vec3(0, 2, 0))

	var atLeaf math32.Matrix4
	leaf.OnVisit = func(f *Frame) { atLeaf = stack.ModelView() }

	g.PreDraw()
	g.Traverse()

	view := g.View()
	world := leaf.WorldMatrix()
	var want math32.Matrix4
	want.MulMatrices(&view, &world)
	for i := range want {
		tolassert.Equal(t, want[i], atLeaf[i])
	}

	// the stack unwinds completely after the traversal
	after := stack.ModelView()
	for i := range view {
		tolassert.Equal(t, view[i], after[i])
	}
}

func TestClippingPlanes(t *testing.T) {
	g, _ := newEyeGraph(t)
	// the eye is well inside the clipping sphere, so the near plane clamps
	tolassert.Equal(t, 0.005*zClippingCoefficient*100, g.ZNear())
	tolassert.EqualTol(t, 50+zClippingCoefficient*100, g.ZFar(), 0.01)
}

func TestProjectedCoordinatesOf(t *testing.T) {
	g, _ := newEyeGraph(t)
	center := g.ProjectedCoordinatesOf(math32.Vector3{})
	tolassert.Equal(t, float32(400), center.X)
	tolassert.Equal(t, float32(300), center.Y)
	assert.Greater(t, center.Z, float32(0))
	assert.Less(t, center.Z, float32(1))

	// a point right of the axis lands right of the center, y grows downward
	right := g.ProjectedCoordinatesOf(math32.Vec3(5, 0, 0))
	assert.Greater(t, right.X, center.X)
	up := g.ProjectedCoordinatesOf(math32.Vec3(0, 5, 0))
	assert.Less(t, up.Y, center.Y)
}

func TestUnprojectRoundTrip(t *testing.T) {
	g, _ := newEyeGraph(t)
	world := math32.Vec3(1, 2, 3)
	back := g.UnprojectedCoordinatesOf(g.ProjectedCoordinatesOf(world))
	tolassert.EqualTol(t, world.X, back.X, 0.05)
	tolassert.EqualTol(t, world.Y, back.Y, 0.05)
	tolassert.EqualTol(t, world.Z, back.Z, 0.05)
}

func TestPixelToGraphRatio(t *testing.T) {
	g, _ := newEyeGraph(t)
	want := 2 * 50 * math32.Tan(g.FieldOfView()/2) / 600
	tolassert.Equal(t, want, g.PixelToGraphRatio(math32.Vector3{}))

	// twice as far, twice the units per pixel
	tolassert.Equal(t, 2*want, g.PixelToGraphRatio(math32.Vec3(0, 0, -50)))
}

func TestViewDirection(t *testing.T) {
	g, eye := newEyeGraph(t)
	assertVector(t, math32.Vec3(0, 0, -1), g.ViewDirection())

	eye.SetOrientation(math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2))
	assertVector(t, math32.Vec3(-1, 0, 0), g.ViewDirection())
}

func TestFitScreenRegionCentered(t *testing.T) {
	g, eye := newEyeGraph(t)
	g.FitScreenRegion(300, 200, 200, 200)

	// a region centered on the axis keeps the eye on the axis, further out
	pos := eye.Position()
	tolassert.EqualTol(t, 0, pos.X, 0.01)
	tolassert.EqualTol(t, 0, pos.Y, 0.01)
	assert.Greater(t, pos.Z, float32(0))
}

func TestBoundaryWidthHeight(t *testing.T) {
	g, _ := newEyeGraph(t)
	hw, hh := g.BoundaryWidthHeight()
	wantH := math32.Tan(g.FieldOfView()/2) * 50
	tolassert.Equal(t, wantH, hh)
	tolassert.Equal(t, wantH*g.AspectRatio(), hw)
}

func TestPruneBranchAndRestore(t *testing.T) {
	g := NewGraph(800, 600)
	parent := g.NewFrame()
	child := g.NewFrame()
	child.SetReference(parent)

	g.PruneBranch(parent)
	assert.NotContains(t, g.Leading(), parent)
	// pruning keeps the subtree intact
	assert.Equal(t, parent, child.Reference())

	// re-referencing restores the path to the root
	parent.SetReference(nil)
	assert.Contains(t, g.Leading(), parent)
}

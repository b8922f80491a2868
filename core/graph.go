// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core implements an interactive scene graph: a hierarchy of
// coordinate frames with constraint-filtered transforms, gesture to motion
// conversion, damped spin and fly animation, and screen-space picking.
//
// A [Graph] owns the frames, the eye designation, the viewport and
// projection parameters, and the timing handler that drives animation.
// A [Frame] holds a local translation, rotation and uniform scaling with
// respect to a reference frame, and exposes the equivalent global
// position, orientation and magnitude.
package core

import (
	"log/slog"

	"github.com/visualcomputing/frames/math32"
	"github.com/visualcomputing/frames/timing"
)

// Handle addresses a [Frame] within its owning [Graph]. Handles are stable
// for the lifetime of the frame; the zero handle stands for the world.
type Handle int32

// World is the handle of the implicit world frame.
const World Handle = 0

// maxFrames bounds the per-graph frame id space. Ids double as
// picking-color identities, which are encoded in 24 bits.
const maxFrames = 1 << 24

// Type is the projection type of a [Graph].
type Type int32

const (
	// Perspective is a perspective projection from the eye.
	Perspective Type = iota

	// Orthographic is an orthographic projection sized by the boundary
	// width and height.
	Orthographic

	// TwoD is an orthographic projection for 2D scenes.
	TwoD
)

// clipping plane coefficients, relative to the graph radius
const (
	zNearCoefficient     = 0.005
	zClippingCoefficient = 1.7320508 // sqrt(3)
)

// Graph is the owning context of a frame hierarchy. It stores the frames
// in an arena addressed by stable handles, designates one frame as the
// eye, and supplies the world-space parameters that gesture conversion
// depends on: viewport size, projection type and field of view, radius,
// center, anchor and handedness.
type Graph struct {
	nodes   map[Handle]*Frame
	leading []Handle
	counter int

	eye Handle

	width      int
	height     int
	gtype      Type
	fov        float32
	radius     float32
	center     math32.Vector3
	anchor     math32.Vector3
	leftHanded bool

	timingHandler *timing.Handler
	matrixHandler MatrixHandler
	agents        []*Agent
	settings      Settings
}

// NewGraph returns a new graph with the given viewport size in pixels,
// a perspective projection with a third of Pi vertical field of view,
// radius 100 centered at the origin, and right-handed coordinates.
func NewGraph(width, height int) *Graph {
	g := &Graph{
		nodes:         map[Handle]*Frame{},
		width:         width,
		height:        height,
		gtype:         Perspective,
		fov:           math32.Pi / 3,
		radius:        100,
		timingHandler: timing.NewHandler(),
		settings:      DefaultSettings(),
	}
	return g
}

// Width returns the viewport width in pixels.
func (g *Graph) Width() int { return g.width }

// Height returns the viewport height in pixels.
func (g *Graph) Height() int { return g.height }

// SetSize sets the viewport size in pixels.
func (g *Graph) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// AspectRatio returns the viewport width to height ratio.
func (g *Graph) AspectRatio() float32 {
	return float32(g.width) / float32(g.height)
}

// Type returns the projection type.
func (g *Graph) Type() Type { return g.gtype }

// SetType sets the projection type.
func (g *Graph) SetType(t Type) { g.gtype = t }

// FieldOfView returns the vertical field of view in radians, used by the
// perspective projection.
func (g *Graph) FieldOfView() float32 { return g.fov }

// SetFieldOfView sets the vertical field of view in radians.
func (g *Graph) SetFieldOfView(fov float32) { g.fov = fov }

// Radius returns the radius of the scene bounding sphere.
func (g *Graph) Radius() float32 { return g.radius }

// SetRadius sets the radius of the scene bounding sphere.
func (g *Graph) SetRadius(radius float32) { g.radius = radius }

// Center returns the center of the scene bounding sphere.
func (g *Graph) Center() math32.Vector3 { return g.center }

// SetCenter sets the center of the scene bounding sphere.
func (g *Graph) SetCenter(center math32.Vector3) { g.center = center }

// Anchor returns the point the eye orbits and zooms around.
func (g *Graph) Anchor() math32.Vector3 { return g.anchor }

// SetAnchor sets the point the eye orbits and zooms around.
func (g *Graph) SetAnchor(anchor math32.Vector3) { g.anchor = anchor }

// IsLeftHanded returns whether the graph uses left-handed coordinates.
func (g *Graph) IsLeftHanded() bool { return g.leftHanded }

// IsRightHanded returns whether the graph uses right-handed coordinates.
func (g *Graph) IsRightHanded() bool { return !g.leftHanded }

// SetLeftHanded sets whether the graph uses left-handed coordinates.
func (g *Graph) SetLeftHanded(leftHanded bool) { g.leftHanded = leftHanded }

// TimingHandler returns the timing handler driving this graph's spin and
// fly animation. Call its Handle method once per rendered frame.
func (g *Graph) TimingHandler() *timing.Handler { return g.timingHandler }

// Settings returns the interaction settings applied to new frames.
func (g *Graph) Settings() Settings { return g.settings }

// SetSettings sets the interaction settings applied to new frames.
func (g *Graph) SetSettings(s Settings) { g.settings = s }

// Eye returns the frame designated as the eye, or nil if none is set.
func (g *Graph) Eye() *Frame { return g.Frame(g.eye) }

// SetEye designates the given frame as the eye. A nil frame clears the
// designation.
func (g *Graph) SetEye(frame *Frame) {
	if frame == nil {
		g.eye = World
		return
	}
	if frame.graph != g {
		slog.Error("core.Graph.SetEye: frame belongs to another graph")
		return
	}
	g.eye = frame.handle
}

// Frame returns the frame addressed by the given handle, or nil for the
// world handle or a deleted frame.
func (g *Graph) Frame(h Handle) *Frame {
	if h == World {
		return nil
	}
	return g.nodes[h]
}

// Frames returns all live frames of this graph, in no particular order.
func (g *Graph) Frames() []*Frame {
	frames := make([]*Frame, 0, len(g.nodes))
	for _, f := range g.nodes {
		frames = append(frames, f)
	}
	return frames
}

// register assigns a handle and id to the given frame and lists it as a
// leading (world-referenced) frame. Id exhaustion is fatal: picking-color
// identities could no longer be unique.
func (g *Graph) register(f *Frame) {
	if g.counter+1 >= maxFrames {
		panic("core.Graph: frame id space exhausted (2^24 - 1 frames)")
	}
	g.counter++
	f.handle = Handle(g.counter)
	g.nodes[f.handle] = f
	g.addLeading(f.handle)
}

func (g *Graph) addLeading(h Handle) {
	for _, l := range g.leading {
		if l == h {
			return
		}
	}
	g.leading = append(g.leading, h)
}

func (g *Graph) removeLeading(h Handle) {
	for i, l := range g.leading {
		if l == h {
			g.leading = append(g.leading[:i], g.leading[i+1:]...)
			return
		}
	}
}

// Leading returns the frames whose reference is the world.
func (g *Graph) Leading() []*Frame {
	frames := make([]*Frame, 0, len(g.leading))
	for _, h := range g.leading {
		if f := g.Frame(h); f != nil {
			frames = append(frames, f)
		}
	}
	return frames
}

// PruneBranch detaches the given frame and its subtree from the traversal
// tree: the frame is removed from its parent's child list (or from the
// leading list) and left with no reference. The frame and its descendants
// stay live and keep their handles; reattach with SetReference.
func (g *Graph) PruneBranch(frame *Frame) {
	if frame == nil || frame.graph != g {
		return
	}
	if ref := frame.Reference(); ref != nil {
		ref.removeChild(frame.handle)
	} else {
		g.removeLeading(frame.handle)
	}
	frame.reference = World
}

// Delete removes the given frame from the graph entirely: it is pruned
// from the tree, its animation tasks are unregistered, it is removed from
// every agent, and its handle becomes invalid. Children are not deleted;
// they are reattached to the world.
func (g *Graph) Delete(frame *Frame) {
	if frame == nil || frame.graph != g {
		return
	}
	for _, ch := range frame.Children() {
		ch.SetReference(nil)
	}
	g.PruneBranch(frame)
	g.timingHandler.Unregister(frame.spinTask)
	g.timingHandler.Unregister(frame.flyTask)
	for _, a := range g.agents {
		a.RemoveGrabber(frame)
	}
	if g.eye == frame.handle {
		g.eye = World
	}
	delete(g.nodes, frame.handle)
}

// TRAVERSAL

// Traverse visits every frame of the tree in depth-first order, calling
// each frame's OnVisit callback. If a matrix handler is bound, the model
// view is pushed and the frame transform applied before descending, and
// popped afterwards. Culled frames prune their whole branch from the
// visit.
func (g *Graph) Traverse() {
	for _, h := range g.leading {
		g.visit(g.Frame(h))
	}
}

func (g *Graph) visit(frame *Frame) {
	if frame == nil || frame.culled {
		return
	}
	if g.matrixHandler != nil {
		g.matrixHandler.PushModelView()
		g.ApplyTransformation(frame)
	}
	if frame.OnVisit != nil {
		frame.OnVisit(frame)
	}
	for _, ch := range frame.children {
		g.visit(g.Frame(ch))
	}
	if g.matrixHandler != nil {
		g.matrixHandler.PopModelView()
	}
}

// PROJECTION

// ViewDirection returns the direction the eye is looking at, in world
// coordinates.
func (g *Graph) ViewDirection() math32.Vector3 {
	eye := g.Eye()
	if eye == nil {
		return math32.Vec3(0, 0, -1)
	}
	return eye.Orientation().RotateVec(math32.Vec3(0, 0, -1))
}

// distanceToCenter returns the distance from the eye to the scene center,
// projected along the view axis.
func (g *Graph) distanceToCenter() float32 {
	eye := g.Eye()
	if eye == nil {
		return g.radius
	}
	return math32.Abs(eye.Position().Sub(g.center).Dot(eye.ZAxis()))
}

// ZNear returns the near clipping plane distance, derived from the scene
// radius and the eye distance to the center.
func (g *Graph) ZNear() float32 {
	z := g.distanceToCenter() - zClippingCoefficient*g.radius
	zMin := float32(zNearCoefficient * zClippingCoefficient * g.radius)
	if z < zMin {
		if g.gtype == Perspective {
			z = zMin
		} else {
			z = 0
		}
	}
	return z
}

// ZFar returns the far clipping plane distance.
func (g *Graph) ZFar() float32 {
	return g.distanceToCenter() + zClippingCoefficient*g.radius
}

// BoundaryWidthHeight returns the half width and half height of the
// orthographic view volume, derived from the field of view and the eye
// distance to the anchor so that perspective and orthographic projections
// match at the anchor depth.
func (g *Graph) BoundaryWidthHeight() (float32, float32) {
	eye := g.Eye()
	dist := g.radius
	if eye != nil {
		dist = math32.Tan(g.fov/2) * math32.Abs(eye.CoordinatesOf(g.anchor).Z) * eye.Magnitude()
	}
	aspect := g.AspectRatio()
	if aspect < 1 {
		return dist, dist / aspect
	}
	return dist * aspect, dist
}

// Projection returns the projection matrix of this graph.
func (g *Graph) Projection() math32.Matrix4 {
	var m math32.Matrix4
	if g.gtype == Perspective {
		m.SetPerspective(math32.RadToDeg(g.fov), g.AspectRatio(), g.ZNear(), g.ZFar())
	} else {
		hw, hh := g.BoundaryWidthHeight()
		m.SetOrthographic(2*hw, 2*hh, g.ZNear(), g.ZFar())
	}
	return m
}

// View returns the view matrix of this graph, the inverse of the eye's
// world transform. The identity is returned if no eye is set.
func (g *Graph) View() math32.Matrix4 {
	eye := g.Eye()
	if eye == nil {
		return math32.Identity4()
	}
	return eye.View()
}

// ProjectedCoordinatesOf projects the given world point onto the screen.
// The returned X and Y are in pixels with the origin at the top left and
// Y growing downward; Z is the normalized depth in [0..1].
func (g *Graph) ProjectedCoordinatesOf(world math32.Vector3) math32.Vector3 {
	proj := g.Projection()
	view := g.View()
	var pv math32.Matrix4
	pv.MulMatrices(&proj, &view)
	ndc := world.MulMatrix4AsPoint4(&pv, 1)
	return math32.Vec3(
		(ndc.X+1)/2*float32(g.width),
		(1-ndc.Y)/2*float32(g.height),
		(ndc.Z+1)/2)
}

// UnprojectedCoordinatesOf maps screen coordinates (pixel X and Y, depth
// in [0..1]) back to a world point, inverting [Graph.ProjectedCoordinatesOf].
// The zero vector is returned if the combined projection view matrix is
// singular.
func (g *Graph) UnprojectedCoordinatesOf(screen math32.Vector3) math32.Vector3 {
	proj := g.Projection()
	view := g.View()
	var pv math32.Matrix4
	pv.MulMatrices(&proj, &view)
	inv, err := pv.Inverse()
	if err != nil {
		slog.Error("core.Graph.UnprojectedCoordinatesOf: singular projection view matrix")
		return math32.Vector3{}
	}
	ndc := math32.Vec3(
		screen.X/float32(g.width)*2-1,
		1-screen.Y/float32(g.height)*2,
		screen.Z*2-1)
	return ndc.MulMatrix4AsPoint4(inv, 1)
}

// PixelToGraphRatio returns the length in world units of a line segment
// that projects to one pixel at the depth of the given position.
func (g *Graph) PixelToGraphRatio(position math32.Vector3) float32 {
	if g.gtype == Perspective {
		eye := g.Eye()
		z := g.radius
		if eye != nil {
			z = math32.Abs(eye.CoordinatesOf(position).Z)
		}
		return 2 * z * math32.Tan(g.fov/2) / float32(g.height)
	}
	_, hh := g.BoundaryWidthHeight()
	return 2 * hh / float32(g.height)
}

// convertClickToLine returns the half line (origin and unit direction, in
// world coordinates) that the given pixel projects along.
func (g *Graph) convertClickToLine(pixelX, pixelY float32) (origin, direction math32.Vector3) {
	if g.gtype == Perspective {
		if eye := g.Eye(); eye != nil {
			origin = eye.Position()
		}
		direction = g.UnprojectedCoordinatesOf(math32.Vec3(pixelX, pixelY, 0.5)).Sub(origin).Normal()
		return origin, direction
	}
	origin = g.UnprojectedCoordinatesOf(math32.Vec3(pixelX, pixelY, 0))
	direction = g.ViewDirection()
	return origin, direction
}

// FitScreenRegion moves the eye backward along its view axis so that the
// given pixel rectangle covers the scene region currently behind it. The
// view direction and orientation are unchanged.
func (g *Graph) FitScreenRegion(x, y, width, height float32) {
	eye := g.Eye()
	if eye == nil {
		slog.Error("core.Graph.FitScreenRegion: no eye frame is set")
		return
	}
	vd := g.ViewDirection()
	distToPlane := g.distanceToCenter()
	cx := x + width/2
	cy := y + height/2

	pointAt := func(px, py float32) math32.Vector3 {
		orig, dir := g.convertClickToLine(px, py)
		return orig.Add(dir.MulScalar(distToPlane / dir.Dot(vd)))
	}
	newCenter := pointAt(cx, cy)
	pointX := pointAt(x, cy)
	pointY := pointAt(cx, y)

	var distance float32
	if g.gtype == Perspective {
		distX := pointX.Sub(newCenter).Length() / math32.Sin(g.horizontalFieldOfView()/2)
		distY := pointY.Sub(newCenter).Length() / math32.Sin(g.fov/2)
		distance = math32.Max(distX, distY)
	} else {
		dist := newCenter.Sub(g.anchor).Dot(vd)
		orthoCoef := math32.Tan(g.fov / 2)
		aspect := g.AspectRatio()
		distX := pointX.Sub(newCenter).Length() / orthoCoef / math32.Max(aspect, 1)
		distY := pointY.Sub(newCenter).Length() / orthoCoef / math32.Max(1/aspect, 1)
		distance = dist + math32.Max(distX, distY)
	}
	eye.SetPosition(newCenter.Sub(vd.MulScalar(distance)))
}

// horizontalFieldOfView returns the horizontal analogue of the vertical
// field of view.
func (g *Graph) horizontalFieldOfView() float32 {
	return 2 * math32.Atan(math32.Tan(g.fov/2)*g.AspectRatio())
}

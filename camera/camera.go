// Package camera provides 2D camera math: smooth following and
// world/screen conversion under an orthographic projection scale.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SmoothNudge moves current toward target by the fraction of the remaining
// distance that exponential decay at rate covers in dt seconds.
// It approaches target asymptotically and never overshoots.
func SmoothNudge(current, target r3.Vec, rate, dt float64) r3.Vec {
	if rate <= 0 || dt <= 0 {
		return current
	}
	t := 1 - math.Exp(-rate*dt)
	return r3.Add(current, r3.Scale(t, r3.Sub(target, current)))
}

// Follow nudges a camera at cam toward the xy of actor, keeping the camera depth.
func Follow(cam, actor r3.Vec, rate, dt float64) r3.Vec {
	target := r3.Vec{X: actor.X, Y: actor.Y, Z: cam.Z}
	next := SmoothNudge(cam, target, rate, dt)
	next.Z = cam.Z
	return next
}

// View converts between world and screen coordinates for a camera.
// World y points up, screen y points down.
type View struct {
	// Center is the camera position in world coordinates
	X, Y float64

	// Scale is world units per screen pixel (0.5 = 2x magnification)
	Scale float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64
}

// NewView creates a view of the given viewport size centered on the origin.
func NewView(viewportW, viewportH, scale float64) *View {
	if scale <= 0 {
		scale = 1
	}
	return &View{
		Scale:     scale,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// Zoom returns the magnification factor (screen pixels per world unit).
func (v *View) Zoom() float64 {
	return 1 / v.Scale
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *View) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = v.ViewportW/2 + (wx-v.X)/v.Scale
	sy = v.ViewportH/2 - (wy-v.Y)/v.Scale
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *View) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = v.X + (sx-v.ViewportW/2)*v.Scale
	wy = v.Y - (sy-v.ViewportH/2)*v.Scale
	return wx, wy
}

// IsVisible returns true if a square of half-extent radius at (wx, wy)
// could be visible on screen (conservative check for culling).
func (v *View) IsVisible(wx, wy, radius float64) bool {
	halfW := v.ViewportW*v.Scale/2 + radius
	halfH := v.ViewportH*v.Scale/2 + radius
	return math.Abs(wx-v.X) <= halfW && math.Abs(wy-v.Y) <= halfH
}

// Resize updates viewport dimensions.
func (v *View) Resize(viewportW, viewportH float64) {
	v.ViewportW = viewportW
	v.ViewportH = viewportH
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (v *View) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := v.ViewportW * v.Scale / 2
	halfH := v.ViewportH * v.Scale / 2

	minX = v.X - halfW
	maxX = v.X + halfW
	minY = v.Y - halfH
	maxY = v.Y + halfH
	return
}

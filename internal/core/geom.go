// Package core provides fundamental types and utilities shared by the
// simulation and the platform layers. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "cmp"

// Rect represents an axis-aligned bounding box in world units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Penetration returns how far r has pushed into other from each side.
// left is measured from other's left edge (r entering from the left), and so on.
// Values are only meaningful when the rectangles intersect.
func (r Rect) Penetration(other Rect) (left, right, top, bottom float64) {
	left = r.Right() - other.X
	right = other.Right() - r.X
	top = r.Bottom() - other.Y
	bottom = other.Bottom() - r.Y
	return left, right, top, bottom
}

// Clamp restricts a value to be within [lo, hi].
// When lo > hi, lo wins.
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val > hi {
		val = hi
	}
	if val < lo {
		val = lo
	}
	return val
}

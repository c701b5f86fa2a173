// Package physics provides vector math and circle-vs-rectangle contact helpers.
package physics

import "math"

// Vec is a 2D vector.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the magnitude of v.
func (v Vec) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Rect is an axis-aligned rectangle given by its bottom-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contact describes an overlap between a circle and a rectangle.
// Normal points from the rectangle towards the circle centre.
type Contact struct {
	Normal      Vec
	Penetration float64
}

// CircleRect tests a circle against a rectangle. Touching without overlap is not a contact.
func CircleRect(center Vec, radius float64, r Rect) (Contact, bool) {
	closest := Vec{clamp(center.X, r.X, r.MaxX()), clamp(center.Y, r.Y, r.MaxY())}
	d := center.Sub(closest)
	distSq := d.Dot(d)

	if distSq > 0 {
		if distSq >= radius*radius {
			return Contact{}, false
		}
		dist := math.Sqrt(distSq)
		return Contact{Normal: Vec{d.X / dist, d.Y / dist}, Penetration: radius - dist}, true
	}

	// Centre inside the rectangle: leave through the nearest face.
	left := center.X - r.X
	right := r.MaxX() - center.X
	bottom := center.Y - r.Y
	top := r.MaxY() - center.Y

	c := Contact{Normal: Vec{-1, 0}, Penetration: left + radius}
	if right < left {
		c = Contact{Normal: Vec{1, 0}, Penetration: right + radius}
	}
	if bottom < math.Min(left, right) {
		c = Contact{Normal: Vec{0, -1}, Penetration: bottom + radius}
	}
	if top < math.Min(math.Min(left, right), bottom) {
		c = Contact{Normal: Vec{0, 1}, Penetration: top + radius}
	}
	return c, true
}

// Reflect mirrors v about the surface with unit normal n when v points into the surface.
// Separating velocities are returned unchanged.
func Reflect(v, n Vec) Vec {
	vn := v.Dot(n)
	if vn >= 0 {
		return v
	}
	return v.Sub(n.Scale(2 * vn))
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

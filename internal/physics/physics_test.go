package physics

import (
	"math"
	"testing"
)

func TestCircleRectFaces(t *testing.T) {
	wall := Rect{X: 0, Y: 0, W: 30, H: 1200}

	tests := []struct {
		name   string
		center Vec
		hit    bool
		normal Vec
		pen    float64
	}{
		{"clear of wall", Vec{100, 600}, false, Vec{}, 0},
		{"touching is not contact", Vec{60, 600}, false, Vec{}, 0},
		{"overlapping right face", Vec{50, 600}, true, Vec{1, 0}, 10},
		{"centre inside near right face", Vec{25, 600}, true, Vec{1, 0}, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := CircleRect(tt.center, 30, wall)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if c.Normal != tt.normal {
				t.Errorf("normal = %+v, want %+v", c.Normal, tt.normal)
			}
			if math.Abs(c.Penetration-tt.pen) > 1e-9 {
				t.Errorf("penetration = %f, want %f", c.Penetration, tt.pen)
			}
		})
	}
}

func TestCircleRectCorner(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	c, ok := CircleRect(Vec{13, 14}, 6, r)
	if !ok {
		t.Fatal("expected corner contact")
	}
	if math.Abs(c.Normal.X-0.6) > 1e-9 || math.Abs(c.Normal.Y-0.8) > 1e-9 {
		t.Errorf("normal = %+v, want (0.6, 0.8)", c.Normal)
	}
	if math.Abs(c.Penetration-1) > 1e-9 {
		t.Errorf("penetration = %f, want 1", c.Penetration)
	}
}

func TestReflect(t *testing.T) {
	v := Reflect(Vec{550, 550}, Vec{0, -1})
	if v != (Vec{550, -550}) {
		t.Errorf("reflect off ceiling = %+v", v)
	}

	// Separating velocity stays untouched.
	v = Reflect(Vec{550, -550}, Vec{0, -1})
	if v != (Vec{550, -550}) {
		t.Errorf("separating velocity changed: %+v", v)
	}

	before := Vec{-300, 120}
	after := Reflect(before, Vec{1, 0})
	if math.Abs(after.Len()-before.Len()) > 1e-9 {
		t.Errorf("reflection changed speed: %f -> %f", before.Len(), after.Len())
	}
}

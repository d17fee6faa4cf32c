package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPolygon_AreaRectangle(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}})

	if got := p.Area(); !almostEqual(got, 50, 1e-9) {
		t.Errorf("Expected area 50, got %f", got)
	}
	if got := p.Perimeter(); !almostEqual(got, 30, 1e-9) {
		t.Errorf("Expected perimeter 30, got %f", got)
	}
}

func TestPolygon_AreaTriangle(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {4, 0}, {0, 3}})

	if got := p.Area(); !almostEqual(got, 6, 1e-9) {
		t.Errorf("Expected area 6, got %f", got)
	}
}

func TestNewPolygon_DropsClosingVertex(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}})

	if len(p.Vertices) != 4 {
		t.Errorf("Expected 4 vertices after dropping duplicate, got %d", len(p.Vertices))
	}
	if got := p.Area(); !almostEqual(got, 16, 1e-9) {
		t.Errorf("Expected area 16, got %f", got)
	}
}

func TestPolygon_OpenPolygonHasNoArea(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 10}})

	if p.IsClosed() {
		t.Error("Two-vertex polygon should not be closed")
	}
	if p.Area() != 0 {
		t.Errorf("Expected zero area, got %f", p.Area())
	}
}

func TestPolygon_Contains(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})

	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"center", Point{5, 5}, true},
		{"outside right", Point{15, 5}, false},
		{"outside above", Point{5, 15}, false},
		{"near corner inside", Point{0.5, 0.5}, true},
	}

	for _, tt := range tests {
		if got := p.Contains(tt.pt); got != tt.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tt.name, tt.pt, got, tt.want)
		}
	}
}

func TestPolygon_SamplePerimeter(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})

	samples := p.SamplePerimeter(8)
	if len(samples) != 8 {
		t.Fatalf("Expected 8 samples, got %d", len(samples))
	}

	// First sample is the first vertex
	if samples[0] != (Point{0, 0}) {
		t.Errorf("Expected first sample at origin, got %v", samples[0])
	}

	// All samples lie on the boundary
	for i, s := range samples {
		if d := p.DistanceToBoundary(s); d > 1e-9 {
			t.Errorf("Sample %d is %f off the boundary", i, d)
		}
	}

	// Perimeter 40, step 5: samples alternate corners and edge midpoints
	if samples[1] != (Point{5, 0}) {
		t.Errorf("Expected second sample at (5,0), got %v", samples[1])
	}
}

func TestPolygon_SamplePerimeterDegenerate(t *testing.T) {
	if got := NewPolygon(nil).SamplePerimeter(8); got != nil {
		t.Errorf("Expected nil samples for empty polygon, got %v", got)
	}
	single := NewPolygon([]Point{{1, 1}})
	if got := single.SamplePerimeter(4); got != nil {
		t.Errorf("Expected nil samples for single vertex, got %v", got)
	}
}

func TestPolygon_DistanceToBoundary(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})

	// Interior point 3 from the left edge
	if d := p.DistanceToBoundary(Point{3, 5}); !almostEqual(d, 3, 1e-9) {
		t.Errorf("Expected distance 3, got %f", d)
	}

	// Exterior point 5 right of the right edge
	if d := p.DistanceToBoundary(Point{15, 5}); !almostEqual(d, 5, 1e-9) {
		t.Errorf("Expected distance 5, got %f", d)
	}
}

func TestPolygon_Scale(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	scaled := p.Scale(3)

	if got := scaled.Area(); !almostEqual(got, 36, 1e-9) {
		t.Errorf("Expected scaled area 36, got %f", got)
	}
	// Original untouched
	if got := p.Area(); !almostEqual(got, 4, 1e-9) {
		t.Errorf("Original polygon mutated, area %f", got)
	}
}

func TestSegment_DistanceToPoint(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{10, 0}}

	tests := []struct {
		name string
		pt   Point
		want float64
	}{
		{"above midpoint", Point{5, 4}, 4},
		{"beyond end", Point{13, 0}, 3},
		{"before start", Point{-3, 4}, 5},
		{"on segment", Point{7, 0}, 0},
	}

	for _, tt := range tests {
		if got := s.DistanceToPoint(tt.pt); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("%s: got %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestSegment_DegenerateSegment(t *testing.T) {
	s := Segment{Start: Point{2, 2}, End: Point{2, 2}}
	if got := s.DistanceToPoint(Point{5, 6}); !almostEqual(got, 5, 1e-9) {
		t.Errorf("Expected distance 5 to degenerate segment, got %f", got)
	}
}

func TestBBox_Corners(t *testing.T) {
	b := NewBBox(1, 2, 3, 4)
	corners := b.Corners()
	if len(corners) != 4 {
		t.Fatalf("Expected 4 corners, got %d", len(corners))
	}
	if corners[0] != (Point{1, 2}) || corners[2] != (Point{4, 6}) {
		t.Errorf("Unexpected corners: %v", corners)
	}
}

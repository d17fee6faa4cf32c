package geom

import "math"

// Polygon represents a closed polygon as an ordered vertex list.
// The closing edge from the last vertex back to the first is implicit.
type Polygon struct {
	Vertices []Point
}

// NewPolygon creates a polygon from vertices. A trailing vertex that
// duplicates the first is dropped so the closing edge stays implicit.
func NewPolygon(vertices []Point) Polygon {
	if n := len(vertices); n > 1 && vertices[0] == vertices[n-1] {
		vertices = vertices[:n-1]
	}
	return Polygon{Vertices: vertices}
}

// FromBBox creates a rectangular polygon from a bounding box.
func FromBBox(b BBox) Polygon {
	return Polygon{Vertices: b.Corners()}
}

// IsClosed reports whether the polygon has enough vertices to enclose area.
func (p Polygon) IsClosed() bool { return len(p.Vertices) >= 3 }

// Area returns the enclosed area via the shoelace formula.
func (p Polygon) Area() float64 {
	if !p.IsClosed() {
		return 0
	}
	sum := 0.0
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the total edge length including the closing edge.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += p.Vertices[i].Distance(p.Vertices[(i+1)%n])
	}
	return total
}

// Centroid returns the arithmetic mean of the vertices.
func (p Polygon) Centroid() Point {
	if len(p.Vertices) == 0 {
		return Point{}
	}
	var cx, cy float64
	for _, v := range p.Vertices {
		cx += v.X
		cy += v.Y
	}
	n := float64(len(p.Vertices))
	return Point{X: cx / n, Y: cy / n}
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (p Polygon) Bounds() BBox {
	if len(p.Vertices) == 0 {
		return BBox{}
	}
	minX, minY := p.Vertices[0].X, p.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range p.Vertices[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Edges returns all edges including the closing edge.
func (p Polygon) Edges() []Segment {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Segment{Start: p.Vertices[i], End: p.Vertices[(i+1)%n]})
	}
	return edges
}

// Contains checks point containment using the ray-casting rule.
// Points exactly on an edge may fall either way.
func (p Polygon) Contains(pt Point) bool {
	if !p.IsClosed() {
		return false
	}
	inside := false
	n := len(p.Vertices)
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p.Vertices[i], p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// SamplePerimeter returns count points evenly spaced along the polygon's
// perimeter, starting at the first vertex.
func (p Polygon) SamplePerimeter(count int) []Point {
	if count <= 0 || len(p.Vertices) < 2 {
		return nil
	}
	perimeter := p.Perimeter()
	if perimeter == 0 {
		return nil
	}

	edges := p.Edges()
	step := perimeter / float64(count)
	samples := make([]Point, 0, count)

	edgeIdx := 0
	intoEdge := 0.0 // distance already consumed on the current edge
	for i := 0; i < count; i++ {
		target := float64(i) * step
		// Advance to the edge containing the target arc length
		for edgeIdx < len(edges) && intoEdge+edges[edgeIdx].Length() < target {
			intoEdge += edges[edgeIdx].Length()
			edgeIdx++
		}
		if edgeIdx >= len(edges) {
			edgeIdx = len(edges) - 1
		}
		edge := edges[edgeIdx]
		length := edge.Length()
		t := 0.0
		if length > 0 {
			t = (target - intoEdge) / length
		}
		samples = append(samples, Point{
			X: edge.Start.X + t*(edge.End.X-edge.Start.X),
			Y: edge.Start.Y + t*(edge.End.Y-edge.Start.Y),
		})
	}
	return samples
}

// DistanceToBoundary returns the shortest distance from pt to any edge.
func (p Polygon) DistanceToBoundary(pt Point) float64 {
	min := math.Inf(1)
	for _, e := range p.Edges() {
		if d := e.DistanceToPoint(pt); d < min {
			min = d
		}
	}
	return min
}

// Scale returns a copy of the polygon with every coordinate multiplied
// by factor. Used to convert page units to decimal feet.
func (p Polygon) Scale(factor float64) Polygon {
	scaled := make([]Point, len(p.Vertices))
	for i, v := range p.Vertices {
		scaled[i] = Point{X: v.X * factor, Y: v.Y * factor}
	}
	return Polygon{Vertices: scaled}
}

package setback

import (
	"math"
	"sort"

	"github.com/tsawler/plancheck/geom"
	"github.com/tsawler/plancheck/ingest"
	"github.com/tsawler/plancheck/model"
)

// DefaultSamplePoints is the number of measurement points taken along each
// footprint edge.
const DefaultSamplePoints = 8

// minCandidateArea filters decorative rectangles, in square feet.
const minCandidateArea = 50.0

// minSamplesPerDirection is the evidence floor below which a direction is
// flagged insufficient.
const minSamplesPerDirection = 2

// Config tunes the calculator.
type Config struct {
	// SamplePoints is the number of measurement points per footprint edge.
	// Zero means DefaultSamplePoints.
	SamplePoints int
}

// Calculator computes geometric setbacks for a sheet.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator.
func NewCalculator(cfg Config) *Calculator {
	if cfg.SamplePoints == 0 {
		cfg.SamplePoints = DefaultSamplePoints
	}
	return &Calculator{cfg: cfg}
}

// Calculate derives geometric setbacks from the sheet's rectangles. The
// result is empty when no plausible footprint/boundary pair exists.
func (c *Calculator) Calculate(sheet *ingest.Sheet) []*model.GeometricSetback {
	boundary, footprint, ok := findBoundaryAndFootprint(sheet)
	if !ok {
		return nil
	}

	// A setback is measured to the boundary edge facing the same way as
	// the footprint edge, not to whichever boundary edge happens to be
	// closest; near corners those differ.
	boundaryEdges := make(map[model.Direction][]geom.Segment)
	boundaryCentroid := boundary.Centroid()
	for _, edge := range boundary.Edges() {
		dir := edgeDirection(edge, boundaryCentroid)
		boundaryEdges[dir] = append(boundaryEdges[dir], edge)
	}

	type bucket struct {
		distances []float64
	}
	buckets := make(map[model.Direction]*bucket)

	centroid := footprint.Centroid()
	for _, edge := range footprint.Edges() {
		dir := edgeDirection(edge, centroid)
		facing := boundaryEdges[dir]
		if len(facing) == 0 {
			continue
		}
		b := buckets[dir]
		if b == nil {
			b = &bucket{}
			buckets[dir] = b
		}
		for i := 0; i < c.cfg.SamplePoints; i++ {
			// Offset sampling keeps measurement points off the corners,
			// where the facing direction is ambiguous.
			t := (float64(i) + 0.5) / float64(c.cfg.SamplePoints)
			p := geom.Point{
				X: edge.Start.X + t*(edge.End.X-edge.Start.X),
				Y: edge.Start.Y + t*(edge.End.Y-edge.Start.Y),
			}
			d := math.Inf(1)
			for _, be := range facing {
				d = math.Min(d, be.DistanceToPoint(p))
			}
			b.distances = append(b.distances, d)
		}
	}

	var out []*model.GeometricSetback
	for _, dir := range []model.Direction{
		model.DirectionFront, model.DirectionRear,
		model.DirectionLeft, model.DirectionRight,
	} {
		b := buckets[dir]
		if b == nil || len(b.distances) == 0 {
			continue
		}
		sb := &model.GeometricSetback{
			Base: model.Base{
				SheetNo:    sheet.Number,
				Loc:        centroid,
				Confidence: 0.75,
			},
			Direction:   dir,
			SampleCount: len(b.distances),
		}
		if len(b.distances) < minSamplesPerDirection {
			sb.InsufficientSamples = true
			sb.LowConf = true
			out = append(out, sb)
			continue
		}
		min, max, sum := math.Inf(1), math.Inf(-1), 0.0
		for _, d := range b.distances {
			min = math.Min(min, d)
			max = math.Max(max, d)
			sum += d
		}
		sb.MinDistance = min
		sb.MaxDistance = max
		sb.AvgDistance = sum / float64(len(b.distances))
		out = append(out, sb)
	}
	return out
}

// findBoundaryAndFootprint picks the property boundary and building
// footprint polygons. The largest rectangle is the boundary and the second
// largest the footprint; with a single candidate the sheet extent serves as
// the boundary.
func findBoundaryAndFootprint(sheet *ingest.Sheet) (boundary, footprint geom.Polygon, ok bool) {
	var candidates []geom.BBox
	for _, r := range sheet.Rectangles {
		if r.IsValid() && r.Area() >= minCandidateArea {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return geom.Polygon{}, geom.Polygon{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Area() > candidates[j].Area()
	})

	if len(candidates) == 1 {
		if sheet.Width <= 0 || sheet.Height <= 0 {
			return geom.Polygon{}, geom.Polygon{}, false
		}
		boundary = geom.FromBBox(geom.NewBBox(0, 0, sheet.Width, sheet.Height))
		footprint = geom.FromBBox(candidates[0])
		return boundary, footprint, true
	}

	outer, inner := candidates[0], candidates[1]
	// The footprint must actually sit inside the boundary.
	if !outer.Contains(inner.Center()) {
		return geom.Polygon{}, geom.Polygon{}, false
	}
	return geom.FromBBox(outer), geom.FromBBox(inner), true
}

// edgeDirection classifies a footprint edge by where its outward side faces.
// The sheet bottom is treated as the street frontage.
func edgeDirection(edge geom.Segment, centroid geom.Point) model.Direction {
	mid := edge.Midpoint()
	dx := mid.X - centroid.X
	dy := mid.Y - centroid.Y
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return model.DirectionRight
		}
		return model.DirectionLeft
	}
	if dy < 0 {
		return model.DirectionFront
	}
	return model.DirectionRear
}

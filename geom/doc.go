// Package geom provides 2D geometric primitives for architectural sheet
// analysis.
//
// All coordinates follow the PDF convention (origin bottom-left, Y up).
// The same types are used both in native page units and in decimal feet;
// conversion between the two happens with [Polygon.Scale] at ingestion time.
//
// # Primitives
//
//   - [Point] - 2D point with distance calculation
//   - [BBox] - bounding box with containment, intersection, and union
//   - [Segment] - line segment with point-to-segment distance
//   - [Polygon] - closed polygon with area, perimeter sampling, and
//     boundary distance, the workhorse of setback calculation
package geom

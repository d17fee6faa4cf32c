// Package setback derives directional setback measurements from sheet
// geometry when no setback annotation exists.
//
// The largest closed rectangle on a sheet is taken as the property boundary
// and the second largest as the building footprint; with only one candidate
// the sheet extent stands in for the boundary. Each footprint edge is
// classified by its outward direction (the bottom of the sheet faces the
// street, so bottom is "front"), sampled at evenly spaced points, and the
// distance from each sample to the property boundary is aggregated into
// per-direction minimum, maximum, and average distances.
//
// A direction backed by fewer than two samples is still reported but flagged
// insufficient, and carries no measurable attributes.
package setback

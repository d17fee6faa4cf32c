// Package model provides the intermediate representation for extracted
// compliance components and their evaluations.
//
// This package defines the user-facing data structures produced by
// extraction and consumed by rule matching and evaluation, making them the
// primary API for working with analyzed drawings.
//
// # Components
//
// All detected plan content implements the [Component] interface. The
// concrete types are:
//
//   - [Room] - named spaces with area and dimensions
//   - [Setback] - annotated clearance distances to a boundary
//   - [GeometricSetback] - directional clearances derived from geometry
//   - [Opening] - doors, windows, and other openings
//   - [ParkingSpace] - garages, carports, and open spaces
//   - [CirculationElement] - stairs, ramps, and elevators
//   - [FireSafetyFeature] - alarms, sprinklers, exits, rated doors
//   - [AccessibilityFeature] - ADA/AS1428 features
//   - [HeightLevel] - floor levels and elevations
//   - [BuildingEnvelope] - overall building dimensions
//   - [LotInfo] - site-plan lot/parcel data
//   - [AdjacentProperty] - neighboring lot identifiers
//
// Components are immutable once registered; the only post-registration
// mutation allowed is attaching an enrichment [Hint], which never alters
// extracted attribute values.
//
// # Registry
//
// The [Registry] aggregates all sheets' components, assigns document-unique
// IDs, and computes the [Summary] used by the components.json export.
//
// # Rules and Evaluations
//
// [Rule] is the external rule-store entity; [Candidate] pairs a rule with a
// retrieval relevance score. [Evaluation] is the graded result of checking
// one component against one rule. Evaluations are append-only: deduplication
// produces a new filtered list rather than editing in place.
package model

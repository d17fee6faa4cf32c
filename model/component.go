package model

import (
	"github.com/tsawler/plancheck/dimension"
	"github.com/tsawler/plancheck/geom"
)

// Kind identifies the concrete type of a component.
type Kind int

const (
	KindUnknown Kind = iota
	KindRoom
	KindSetback
	KindGeometricSetback
	KindOpening
	KindParking
	KindCirculation
	KindFireSafety
	KindAccessibility
	KindHeightLevel
	KindEnvelope
	KindLot
	KindAdjacentProperty
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindSetback:
		return "setback"
	case KindGeometricSetback:
		return "geometric_setback"
	case KindOpening:
		return "opening"
	case KindParking:
		return "parking"
	case KindCirculation:
		return "circulation"
	case KindFireSafety:
		return "fire_safety"
	case KindAccessibility:
		return "accessibility"
	case KindHeightLevel:
		return "height_level"
	case KindEnvelope:
		return "building_envelope"
	case KindLot:
		return "lot_info"
	case KindAdjacentProperty:
		return "adjacent_property"
	default:
		return "unknown"
	}
}

// Direction identifies which boundary edge a setback is measured against.
type Direction string

const (
	DirectionFront   Direction = "front"
	DirectionRear    Direction = "rear"
	DirectionLeft    Direction = "left_side"
	DirectionRight   Direction = "right_side"
	DirectionUnknown Direction = "unknown"
)

// Hint is an optional enrichment annotation. It is non-owning: attaching a
// hint never changes extracted attribute values.
type Hint struct {
	Label    string  `json:"label,omitempty"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// Component is the interface implemented by every extracted plan component.
type Component interface {
	// Kind returns the component's type tag.
	Kind() Kind

	// ID returns the document-unique component id. Empty until the
	// component is registered.
	ID() string

	// Sheet returns the 1-indexed sheet number the component was found on.
	Sheet() int

	// Location returns the component's anchor point in sheet feet.
	Location() geom.Point

	// Label returns a short human-readable name.
	Label() string

	// Attributes returns the measurable attributes present on the
	// component, in decimal feet (or square feet for areas). Absent
	// attributes are omitted, never zero-filled.
	Attributes() map[string]float64

	// LowConfidence reports whether classification fell below the
	// configured confidence threshold. Low-confidence components bias the
	// evaluator toward REVIEW.
	LowConfidence() bool
}

// Base carries the fields shared by every component variant.
type Base struct {
	Ident   string     `json:"id"`
	SheetNo int        `json:"sheet"`
	Loc     geom.Point `json:"location"`
	LowConf bool       `json:"low_confidence,omitempty"`

	// Confidence is the classifier's confidence in the type assignment.
	Confidence float64 `json:"confidence"`

	// EnrichHint is an optional annotation from the enrichment provider.
	EnrichHint *Hint `json:"hint,omitempty"`
}

func (b *Base) ID() string           { return b.Ident }
func (b *Base) Sheet() int           { return b.SheetNo }
func (b *Base) Location() geom.Point { return b.Loc }
func (b *Base) LowConfidence() bool  { return b.LowConf }

// AttachHint attaches an enrichment hint. The first hint wins; extracted
// attributes are never modified.
func (b *Base) AttachHint(h Hint) {
	if b.EnrichHint == nil {
		b.EnrichHint = &h
	}
}

// Room represents a named space such as a bedroom or kitchen.
type Room struct {
	Base
	Name       string                `json:"name"`
	RoomType   string                `json:"room_type"`
	Area       float64               `json:"area,omitempty"`   // square feet
	Width      float64               `json:"width,omitempty"`  // feet
	Length     float64               `json:"length,omitempty"` // feet
	Dimensions []dimension.Dimension `json:"dimensions,omitempty"`
	Boundary   *geom.Polygon         `json:"-"`
}

func (r *Room) Kind() Kind    { return KindRoom }
func (r *Room) Label() string { return r.Name }

func (r *Room) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "area", r.Area)
	putPositive(attrs, "width", r.Width)
	putPositive(attrs, "length", r.Length)
	return attrs
}

// Setback is a clearance distance read directly from a dimension annotation.
type Setback struct {
	Base
	Direction     Direction `json:"direction"`
	Distance      float64   `json:"distance"` // feet
	MeasuredFrom  string    `json:"measured_from"`
	DimensionText string    `json:"dimension_text,omitempty"`
}

func (s *Setback) Kind() Kind    { return KindSetback }
func (s *Setback) Label() string { return string(s.Direction) + " setback" }

func (s *Setback) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "distance", s.Distance)
	return attrs
}

// GeometricSetback is a directional clearance derived from footprint and
// boundary geometry when no annotation exists.
type GeometricSetback struct {
	Base
	Direction           Direction `json:"direction"`
	MinDistance         float64   `json:"min_distance"`
	MaxDistance         float64   `json:"max_distance"`
	AvgDistance         float64   `json:"avg_distance"`
	SampleCount         int       `json:"num_measurement_points"`
	InsufficientSamples bool      `json:"insufficient_samples,omitempty"`
}

func (s *GeometricSetback) Kind() Kind    { return KindGeometricSetback }
func (s *GeometricSetback) Label() string { return string(s.Direction) + " setback (geometric)" }

func (s *GeometricSetback) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	if s.InsufficientSamples {
		return attrs
	}
	putPositive(attrs, "distance", s.AvgDistance)
	putPositive(attrs, "min_distance", s.MinDistance)
	putPositive(attrs, "max_distance", s.MaxDistance)
	return attrs
}

// Opening represents a door, window, or other opening.
type Opening struct {
	Base
	OpeningType string  `json:"opening_type"` // door, window, opening
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	IsEgress    bool    `json:"is_egress,omitempty"`
}

func (o *Opening) Kind() Kind { return KindOpening }

func (o *Opening) Label() string {
	if o.IsEgress {
		return o.OpeningType + " (egress)"
	}
	return o.OpeningType
}

func (o *Opening) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "width", o.Width)
	putPositive(attrs, "height", o.Height)
	return attrs
}

// ParkingSpace represents a parking space, garage, or carport.
type ParkingSpace struct {
	Base
	SpaceType  string  `json:"space_type"` // garage, carport, open_space
	Width      float64 `json:"width,omitempty"`
	Length     float64 `json:"length,omitempty"`
	Count      int     `json:"count"`
	Accessible bool    `json:"accessible,omitempty"`
}

func (p *ParkingSpace) Kind() Kind { return KindParking }

func (p *ParkingSpace) Label() string {
	if p.Accessible {
		return p.SpaceType + " (accessible)"
	}
	return p.SpaceType
}

func (p *ParkingSpace) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "width", p.Width)
	putPositive(attrs, "length", p.Length)
	if p.Count > 0 {
		attrs["count"] = float64(p.Count)
	}
	return attrs
}

// CirculationElement represents stairs, ramps, and vertical circulation.
type CirculationElement struct {
	Base
	CirculationType string  `json:"circulation_type"` // stair, ramp, elevator
	Width           float64 `json:"width,omitempty"`
	Slope           float64 `json:"slope,omitempty"` // rise/run ratio
	HasHandrail     bool    `json:"has_handrail,omitempty"`
	IsEgress        bool    `json:"is_egress,omitempty"`
}

func (c *CirculationElement) Kind() Kind    { return KindCirculation }
func (c *CirculationElement) Label() string { return c.CirculationType }

func (c *CirculationElement) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "width", c.Width)
	putPositive(attrs, "slope", c.Slope)
	return attrs
}

// FireSafetyFeature represents smoke alarms, sprinklers, exits, rated
// assemblies, hydrants, and extinguishers.
type FireSafetyFeature struct {
	Base
	FeatureType  string  `json:"feature_type"`
	Rating       string  `json:"rating,omitempty"` // e.g. "1HR"
	CoverageArea float64 `json:"coverage_area,omitempty"`
}

func (f *FireSafetyFeature) Kind() Kind    { return KindFireSafety }
func (f *FireSafetyFeature) Label() string { return f.FeatureType }

func (f *FireSafetyFeature) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "coverage_area", f.CoverageArea)
	return attrs
}

// AccessibilityFeature represents ADA/AS1428 accessibility features.
type AccessibilityFeature struct {
	Base
	FeatureType string  `json:"feature_type"`
	ClearWidth  float64 `json:"clear_width,omitempty"`
	Slope       float64 `json:"slope,omitempty"`
	Compliant   bool    `json:"compliant,omitempty"`
}

func (a *AccessibilityFeature) Kind() Kind    { return KindAccessibility }
func (a *AccessibilityFeature) Label() string { return a.FeatureType }

func (a *AccessibilityFeature) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "clear_width", a.ClearWidth)
	putPositive(attrs, "slope", a.Slope)
	return attrs
}

// HeightLevel represents a floor level, ceiling height, or elevation mark.
type HeightLevel struct {
	Base
	LevelName string `json:"level_name"`

	// Elevation uses a pointer since grade-level marks are legitimately 0.
	Elevation        *float64 `json:"elevation,omitempty"`
	HeightAboveGrade float64  `json:"height_above_grade,omitempty"`
}

func (h *HeightLevel) Kind() Kind    { return KindHeightLevel }
func (h *HeightLevel) Label() string { return h.LevelName }

func (h *HeightLevel) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	if h.Elevation != nil {
		attrs["elevation"] = *h.Elevation
	}
	putPositive(attrs, "height", h.HeightAboveGrade)
	return attrs
}

// BuildingEnvelope holds overall building dimensions for a sheet.
type BuildingEnvelope struct {
	Base
	TotalWidth  float64 `json:"total_width,omitempty"`
	TotalLength float64 `json:"total_length,omitempty"`
	TotalHeight float64 `json:"total_height,omitempty"`
	FloorArea   float64 `json:"floor_area,omitempty"`
	Stories     int     `json:"num_stories,omitempty"`
	Perimeter   float64 `json:"perimeter,omitempty"`
}

func (e *BuildingEnvelope) Kind() Kind    { return KindEnvelope }
func (e *BuildingEnvelope) Label() string { return "building envelope" }

func (e *BuildingEnvelope) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "width", e.TotalWidth)
	putPositive(attrs, "length", e.TotalLength)
	putPositive(attrs, "height", e.TotalHeight)
	putPositive(attrs, "area", e.FloorArea)
	putPositive(attrs, "perimeter", e.Perimeter)
	if e.Stories > 0 {
		attrs["stories"] = float64(e.Stories)
	}
	return attrs
}

// LotInfo holds site-plan lot/parcel information.
type LotInfo struct {
	Base
	LotNumber          string                `json:"lot_number,omitempty"`
	LotArea            float64               `json:"lot_area,omitempty"`
	LotAreaUnit        string                `json:"lot_area_unit,omitempty"` // "ft²" or "m²"
	BoundaryDimensions []dimension.Dimension `json:"boundary_dimensions,omitempty"`
	StreetFrontage     string                `json:"street_frontage,omitempty"`
}

func (l *LotInfo) Kind() Kind { return KindLot }

func (l *LotInfo) Label() string {
	if l.LotNumber != "" {
		return "lot " + l.LotNumber
	}
	return "site lot"
}

func (l *LotInfo) Attributes() map[string]float64 {
	attrs := make(map[string]float64)
	putPositive(attrs, "lot_area", l.LotArea)
	return attrs
}

// AdjacentProperty identifies a neighboring lot on a site plan.
type AdjacentProperty struct {
	Base
	Identifier string    `json:"identifier"`
	Direction  Direction `json:"direction,omitempty"`
}

func (a *AdjacentProperty) Kind() Kind    { return KindAdjacentProperty }
func (a *AdjacentProperty) Label() string { return a.Identifier }

func (a *AdjacentProperty) Attributes() map[string]float64 { return map[string]float64{} }

// putPositive records an attribute only when it carries a measured value.
// Zero means "not extracted" for all positive-by-nature measurements.
func putPositive(attrs map[string]float64, key string, v float64) {
	if v > 0 {
		attrs[key] = v
	}
}

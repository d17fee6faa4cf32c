package model

import (
	"fmt"
	"sort"
)

// SheetComponents holds everything extracted from a single drawing sheet.
type SheetComponents struct {
	// Number is the 1-indexed sheet number.
	Number int `json:"sheet"`

	// Title is the detected sheet title, e.g. "FLOOR PLAN", or empty.
	Title string `json:"title,omitempty"`

	// Scale is the detected scale annotation, e.g. `1/4" = 1'-0"`.
	Scale string `json:"scale,omitempty"`

	Components []Component `json:"components"`
}

// Summary aggregates component counts across all sheets for reporting.
type Summary struct {
	SheetCount     int            `json:"total_sheets"`
	ComponentCount int            `json:"total_components"`
	CountsByKind   map[string]int `json:"components_by_type"`
	RoomTypes      map[string]int `json:"room_types,omitempty"`
}

// Registry aggregates extracted components across sheets, assigning each a
// document-unique ID at registration time. Registry is not safe for
// concurrent use; extraction is per-sheet sequential.
type Registry struct {
	sheets   []*SheetComponents
	byID     map[string]Component
	ordinals map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]Component),
		ordinals: make(map[string]int),
	}
}

// AddSheet starts a new sheet record and returns it. Sheets must be added in
// page order.
func (r *Registry) AddSheet(number int, title, scale string) *SheetComponents {
	s := &SheetComponents{Number: number, Title: title, Scale: scale}
	r.sheets = append(r.sheets, s)
	return s
}

// Register assigns the component a deterministic ID of the form
// kind-sheet-ordinal (for example "room-1-3") and appends it to the sheet.
// Ordinals count per kind per sheet, starting at 1.
func (r *Registry) Register(sheet *SheetComponents, c Component) string {
	base := BaseOf(c)
	key := fmt.Sprintf("%s-%d", c.Kind(), base.SheetNo)
	r.ordinals[key]++
	base.Ident = fmt.Sprintf("%s-%d", key, r.ordinals[key])

	sheet.Components = append(sheet.Components, c)
	r.byID[base.Ident] = c
	return base.Ident
}

// Sheets returns the registered sheets in page order.
func (r *Registry) Sheets() []*SheetComponents {
	return r.sheets
}

// All returns every registered component across sheets, in registration
// order.
func (r *Registry) All() []Component {
	var out []Component
	for _, s := range r.sheets {
		out = append(out, s.Components...)
	}
	return out
}

// ByID looks up a component by its assigned ID.
func (r *Registry) ByID(id string) (Component, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Summarize computes aggregate counts for the extraction report.
func (r *Registry) Summarize() Summary {
	sum := Summary{
		SheetCount:   len(r.sheets),
		CountsByKind: make(map[string]int),
		RoomTypes:    make(map[string]int),
	}
	for _, s := range r.sheets {
		for _, c := range s.Components {
			sum.ComponentCount++
			sum.CountsByKind[c.Kind().String()]++
			if room, ok := c.(*Room); ok && room.RoomType != "" {
				sum.RoomTypes[room.RoomType]++
			}
		}
	}
	if len(sum.RoomTypes) == 0 {
		sum.RoomTypes = nil
	}
	return sum
}

// Kinds returns the sorted kind names present in the registry. Useful for
// deterministic report output.
func (r *Registry) Kinds() []string {
	seen := make(map[string]bool)
	for _, c := range r.All() {
		seen[c.Kind().String()] = true
	}
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// BaseOf returns the embedded Base of any concrete component.
func BaseOf(c Component) *Base {
	switch v := c.(type) {
	case *Room:
		return &v.Base
	case *Setback:
		return &v.Base
	case *GeometricSetback:
		return &v.Base
	case *Opening:
		return &v.Base
	case *ParkingSpace:
		return &v.Base
	case *CirculationElement:
		return &v.Base
	case *FireSafetyFeature:
		return &v.Base
	case *AccessibilityFeature:
		return &v.Base
	case *HeightLevel:
		return &v.Base
	case *BuildingEnvelope:
		return &v.Base
	case *LotInfo:
		return &v.Base
	case *AdjacentProperty:
		return &v.Base
	default:
		panic(fmt.Sprintf("model: unknown component type %T", c))
	}
}

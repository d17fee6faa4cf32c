package model

import (
	"testing"

	"github.com/tsawler/plancheck/geom"
)

func TestRegistry_AssignsDeterministicIDs(t *testing.T) {
	r := NewRegistry()
	sheet := r.AddSheet(1, "FLOOR PLAN", `1/4" = 1'-0"`)

	id1 := r.Register(sheet, &Room{Base: Base{SheetNo: 1}, Name: "BEDROOM 1", RoomType: "bedroom"})
	id2 := r.Register(sheet, &Room{Base: Base{SheetNo: 1}, Name: "BEDROOM 2", RoomType: "bedroom"})
	id3 := r.Register(sheet, &Opening{Base: Base{SheetNo: 1}, OpeningType: "door"})

	if id1 != "room-1-1" {
		t.Errorf("first room id = %q, want room-1-1", id1)
	}
	if id2 != "room-1-2" {
		t.Errorf("second room id = %q, want room-1-2", id2)
	}
	if id3 != "opening-1-1" {
		t.Errorf("first opening id = %q, want opening-1-1", id3)
	}

	sheet2 := r.AddSheet(2, "SITE PLAN", "")
	id4 := r.Register(sheet2, &Room{Base: Base{SheetNo: 2}, Name: "GARAGE", RoomType: "garage"})
	if id4 != "room-2-1" {
		t.Errorf("room on sheet 2 id = %q, want room-2-1", id4)
	}
}

func TestRegistry_ByID(t *testing.T) {
	r := NewRegistry()
	sheet := r.AddSheet(1, "", "")
	room := &Room{Base: Base{SheetNo: 1}, Name: "KITCHEN", RoomType: "kitchen"}
	id := r.Register(sheet, room)

	got, ok := r.ByID(id)
	if !ok {
		t.Fatalf("ByID(%q) not found", id)
	}
	if got != Component(room) {
		t.Errorf("ByID returned a different component")
	}

	if _, ok := r.ByID("room-9-9"); ok {
		t.Error("ByID should not find an unregistered id")
	}
}

func TestRegistry_Summarize(t *testing.T) {
	r := NewRegistry()
	s1 := r.AddSheet(1, "FLOOR PLAN", "")
	r.Register(s1, &Room{Base: Base{SheetNo: 1}, Name: "BEDROOM 1", RoomType: "bedroom"})
	r.Register(s1, &Room{Base: Base{SheetNo: 1}, Name: "BEDROOM 2", RoomType: "bedroom"})
	r.Register(s1, &Room{Base: Base{SheetNo: 1}, Name: "KITCHEN", RoomType: "kitchen"})
	r.Register(s1, &Setback{Base: Base{SheetNo: 1}, Direction: DirectionFront, Distance: 20})

	s2 := r.AddSheet(2, "ELEVATIONS", "")
	r.Register(s2, &HeightLevel{Base: Base{SheetNo: 2}, LevelName: "FFL", HeightAboveGrade: 1.5})

	sum := r.Summarize()
	if sum.SheetCount != 2 {
		t.Errorf("SheetCount = %d, want 2", sum.SheetCount)
	}
	if sum.ComponentCount != 5 {
		t.Errorf("ComponentCount = %d, want 5", sum.ComponentCount)
	}
	if sum.CountsByKind["room"] != 3 {
		t.Errorf("room count = %d, want 3", sum.CountsByKind["room"])
	}
	if sum.CountsByKind["setback"] != 1 {
		t.Errorf("setback count = %d, want 1", sum.CountsByKind["setback"])
	}
	if sum.RoomTypes["bedroom"] != 2 {
		t.Errorf("bedroom count = %d, want 2", sum.RoomTypes["bedroom"])
	}
	if sum.RoomTypes["kitchen"] != 1 {
		t.Errorf("kitchen count = %d, want 1", sum.RoomTypes["kitchen"])
	}
}

func TestComponent_AttributesOmitAbsent(t *testing.T) {
	room := &Room{Name: "BEDROOM 1", RoomType: "bedroom", Area: 72.5}
	attrs := room.Attributes()
	if attrs["area"] != 72.5 {
		t.Errorf("area = %f, want 72.5", attrs["area"])
	}
	if _, ok := attrs["width"]; ok {
		t.Error("width should be absent when not extracted")
	}
	if _, ok := attrs["length"]; ok {
		t.Error("length should be absent when not extracted")
	}
}

func TestHeightLevel_ZeroElevationIsPresent(t *testing.T) {
	zero := 0.0
	level := &HeightLevel{LevelName: "GRADE", Elevation: &zero}
	attrs := level.Attributes()
	if v, ok := attrs["elevation"]; !ok || v != 0 {
		t.Errorf("elevation = %v present=%v, want 0 present", v, ok)
	}

	none := &HeightLevel{LevelName: "ROOF"}
	if _, ok := none.Attributes()["elevation"]; ok {
		t.Error("elevation should be absent when nil")
	}
}

func TestGeometricSetback_InsufficientSamplesOmitsAll(t *testing.T) {
	s := &GeometricSetback{
		Direction:           DirectionRear,
		MinDistance:         3,
		MaxDistance:         5,
		AvgDistance:         4,
		SampleCount:         1,
		InsufficientSamples: true,
	}
	if len(s.Attributes()) != 0 {
		t.Errorf("attributes should be empty with insufficient samples, got %v", s.Attributes())
	}
}

func TestBase_AttachHintFirstWins(t *testing.T) {
	room := &Room{Name: "BEDROOM 1"}
	room.AttachHint(Hint{Label: "floor_plan", Score: 0.9})
	room.AttachHint(Hint{Label: "site_plan", Score: 0.4})

	if room.EnrichHint == nil || room.EnrichHint.Label != "floor_plan" {
		t.Errorf("hint = %+v, want first attached to win", room.EnrichHint)
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPass, StatusFail, StatusReview, StatusNotApplicable} {
		if !s.Valid() {
			t.Errorf("Status %q should be valid", s)
		}
	}
	if Status("MAYBE").Valid() {
		t.Error(`Status "MAYBE" should be invalid`)
	}
}

func TestEvaluation_ClampConfidence(t *testing.T) {
	e := Evaluation{Confidence: 1.3}
	e.ClampConfidence()
	if e.Confidence != 1 {
		t.Errorf("clamped high = %f, want 1", e.Confidence)
	}

	e = Evaluation{Confidence: -0.2}
	e.ClampConfidence()
	if e.Confidence != 0 {
		t.Errorf("clamped low = %f, want 0", e.Confidence)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindRoom, "room"},
		{KindGeometricSetback, "geometric_setback"},
		{KindEnvelope, "building_envelope"},
		{KindUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestRegistry_AllPreservesOrder(t *testing.T) {
	r := NewRegistry()
	s1 := r.AddSheet(1, "", "")
	r.Register(s1, &Room{Base: Base{SheetNo: 1, Loc: geom.Point{X: 1}}, Name: "A"})
	s2 := r.AddSheet(2, "", "")
	r.Register(s2, &Room{Base: Base{SheetNo: 2, Loc: geom.Point{X: 2}}, Name: "B"})
	r.Register(s1, &Room{Base: Base{SheetNo: 1, Loc: geom.Point{X: 3}}, Name: "C"})

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("All() length = %d, want 3", len(all))
	}
	// Sheet order first, then registration order within a sheet.
	if all[0].Label() != "A" || all[1].Label() != "C" || all[2].Label() != "B" {
		t.Errorf("order = %s, %s, %s", all[0].Label(), all[1].Label(), all[2].Label())
	}
}

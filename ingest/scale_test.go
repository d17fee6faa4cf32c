package ingest

import (
	"math"
	"testing"

	"github.com/tsawler/plancheck/geom"
)

func TestParseScale_Imperial(t *testing.T) {
	tests := []struct {
		text      string
		wantRatio float64
	}{
		{`1/4" = 1'-0"`, 48},
		{`SCALE: 1/4" = 1'-0"`, 48},
		{`1/8" = 1'-0"`, 96},
		{`3/16" = 1'-0"`, 64},
		{`1/2" = 1'-0"`, 24},
	}

	for _, tt := range tests {
		u, ok := ParseScale(tt.text)
		if !ok {
			t.Errorf("ParseScale(%q) not recognized", tt.text)
			continue
		}
		if math.Abs(u.Ratio-tt.wantRatio) > 0.01 {
			t.Errorf("ParseScale(%q) ratio = %f, want %f", tt.text, u.Ratio, tt.wantRatio)
		}
		if u.Source != ScaleDetected {
			t.Errorf("ParseScale(%q) source = %q, want detected", tt.text, u.Source)
		}
	}
}

func TestParseScale_Metric(t *testing.T) {
	u, ok := ParseScale("SCALE 1:100")
	if !ok {
		t.Fatal("metric scale not recognized")
	}
	if u.Ratio != 100 {
		t.Errorf("ratio = %f, want 100", u.Ratio)
	}
	// At 1:100, 864 points (one full-scale foot of paper) covers 100 feet.
	if math.Abs(u.ToFeet(864)-100) > 0.001 {
		t.Errorf("ToFeet(864) = %f, want 100", u.ToFeet(864))
	}
}

func TestParseScale_Rejects(t *testing.T) {
	for _, text := range []string{"BEDROOM 2", "", "NOTES", `10'-6"`} {
		if _, ok := ParseScale(text); ok {
			t.Errorf("ParseScale(%q) should not be recognized", text)
		}
	}
}

func TestParseScale_QuarterInchConversion(t *testing.T) {
	u, _ := ParseScale(`1/4" = 1'-0"`)
	// A quarter inch of paper is 18 points and represents one real foot.
	if math.Abs(u.ToFeet(18)-1.0) > 0.0001 {
		t.Errorf("ToFeet(18) = %f, want 1.0", u.ToFeet(18))
	}
}

func TestDefaultScale(t *testing.T) {
	u := DefaultScale()
	if u.Ratio != DefaultScaleRatio {
		t.Errorf("ratio = %f, want %d", u.Ratio, DefaultScaleRatio)
	}
	if u.Source != ScaleDefault {
		t.Errorf("source = %q, want default", u.Source)
	}
}

func TestDetectScale_PrefersLabeledRun(t *testing.T) {
	texts := []TextAnnotation{
		{Text: "FLOOR PLAN", FontSize: 24},
		{Text: `SCALE: 1/8" = 1'-0"`, FontSize: 10},
	}
	u, raw := detectScale(texts)
	if u.Ratio != 96 {
		t.Errorf("ratio = %f, want 96", u.Ratio)
	}
	if raw != `SCALE: 1/8" = 1'-0"` {
		t.Errorf("raw = %q", raw)
	}
}

func TestDetectScale_FallsBackToDefault(t *testing.T) {
	u, raw := detectScale([]TextAnnotation{{Text: "BEDROOM 1"}})
	if u.Source != ScaleDefault {
		t.Errorf("source = %q, want default", u.Source)
	}
	if raw != "" {
		t.Errorf("raw = %q, want empty", raw)
	}
}

func TestDetectTitle(t *testing.T) {
	texts := []TextAnnotation{
		{Text: "PROPOSED RESIDENCE", FontSize: 18},
		{Text: "FIRST FLOOR PLAN", FontSize: 24},
		{Text: "SITE PLAN REFERENCE NOTE", FontSize: 8},
	}
	if got := detectTitle(texts); got != "FIRST FLOOR PLAN" {
		t.Errorf("detectTitle = %q, want FIRST FLOOR PLAN", got)
	}

	if got := detectTitle([]TextAnnotation{{Text: "NOTES"}}); got != "" {
		t.Errorf("detectTitle with no keyword = %q, want empty", got)
	}
}

func TestBuildSheet_ConvertsToFeet(t *testing.T) {
	ing := NewIngestor(Options{})
	raw := pagePrimitives{
		widthPts:  864, // one full-scale foot of paper
		heightPts: 432,
		lines: []geom.Segment{
			{Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 180, Y: 0}},
		},
		rects: []geom.BBox{
			geom.NewBBox(0, 0, 180, 180),
		},
		texts: []TextAnnotation{
			{Text: `SCALE: 1/4" = 1'-0"`, Center: geom.Point{X: 18, Y: 18}, FontSize: 10},
		},
	}

	s := ing.buildSheet(1, raw)

	// 1:48 means 864 points maps to 48 feet.
	if math.Abs(s.Width-48) > 0.001 {
		t.Errorf("Width = %f, want 48", s.Width)
	}
	// 180 points is 2.5 paper inches, i.e. 10 real feet at 1/4" scale.
	if math.Abs(s.Lines[0].Length()-10) > 0.001 {
		t.Errorf("line length = %f, want 10", s.Lines[0].Length())
	}
	if math.Abs(s.Rectangles[0].Width-10) > 0.001 {
		t.Errorf("rect width = %f, want 10", s.Rectangles[0].Width)
	}
	if math.Abs(s.Texts[0].Center.X-1) > 0.001 {
		t.Errorf("text center X = %f, want 1", s.Texts[0].Center.X)
	}
	if s.ScaleText == "" {
		t.Error("ScaleText should record the annotation")
	}
}

func TestBuildSheet_MinLineLengthFilter(t *testing.T) {
	ing := NewIngestor(Options{MinLineLength: 1.0})
	raw := pagePrimitives{
		widthPts: 864, heightPts: 864,
		lines: []geom.Segment{
			{Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 9, Y: 0}},   // 0.5 ft
			{Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 180, Y: 0}}, // 10 ft
		},
	}

	s := ing.buildSheet(1, raw)
	if len(s.Lines) != 1 {
		t.Fatalf("got %d lines, want 1 after filtering", len(s.Lines))
	}
	if math.Abs(s.Lines[0].Length()-10) > 0.001 {
		t.Errorf("surviving line length = %f, want 10", s.Lines[0].Length())
	}
}

func TestExtractionError_Message(t *testing.T) {
	err := &ExtractionError{Sheet: 3, Reason: "raster-only sheet, vector extraction not possible"}
	want := "ingest: sheet 3 skipped: raster-only sheet, vector extraction not possible"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

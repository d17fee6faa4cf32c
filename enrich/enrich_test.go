package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/tsawler/plancheck/geom"
	"github.com/tsawler/plancheck/ingest"
	"github.com/tsawler/plancheck/model"
)

func TestHeuristic_DrawingTypeFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"FIRST FLOOR PLAN", "floor_plan"},
		{"SITE PLAN", "site_plan"},
		{"NORTH ELEVATION", "elevation"},
		{"SECTION A-A", "section"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		in, err := Heuristic{}.Infer(context.Background(), &ingest.Sheet{Number: 1, Title: tt.title})
		if err != nil {
			t.Fatal(err)
		}
		if in.DrawingType != tt.want {
			t.Errorf("title %q -> %q, want %q", tt.title, in.DrawingType, tt.want)
		}
	}
}

func TestHeuristic_QualityScore(t *testing.T) {
	rich := &ingest.Sheet{
		Number: 1,
		Title:  "FLOOR PLAN",
		Scale:  ingest.UnitScale{FeetPerPoint: 1.0 / 18, Source: ingest.ScaleDetected},
	}
	for i := 0; i < 20; i++ {
		rich.Texts = append(rich.Texts, ingest.TextAnnotation{Text: "X"})
		rich.Lines = append(rich.Lines, geom.Segment{End: geom.Point{X: 1}})
	}

	poor := &ingest.Sheet{Number: 2}

	richIn, _ := Heuristic{}.Infer(context.Background(), rich)
	poorIn, _ := Heuristic{}.Infer(context.Background(), poor)

	if richIn.QualityScore <= poorIn.QualityScore {
		t.Errorf("rich sheet score %f should exceed poor sheet score %f",
			richIn.QualityScore, poorIn.QualityScore)
	}
	if richIn.QualityScore > 1 {
		t.Errorf("score %f above 1", richIn.QualityScore)
	}
}

func TestNoop(t *testing.T) {
	in, err := Noop{}.Infer(context.Background(), &ingest.Sheet{Number: 1, Title: "FLOOR PLAN"})
	if err != nil {
		t.Fatal(err)
	}
	if in.DrawingType != "unknown" || in.Confidence != 0 {
		t.Errorf("noop insight = %+v", in)
	}
}

// slowProvider never returns before its context expires.
type slowProvider struct{}

func (slowProvider) Infer(ctx context.Context, sheet *ingest.Sheet) (Insight, error) {
	<-ctx.Done()
	return Insight{}, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)
	_, err := p.Infer(context.Background(), &ingest.Sheet{Number: 1})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestAnnotate_AttachesHintWithoutTouchingMeasurements(t *testing.T) {
	room := &model.Room{Name: "BEDROOM 1", RoomType: "bedroom", Area: 120}
	Annotate(Insight{DrawingType: "floor_plan", Confidence: 0.85}, []model.Component{room})

	if room.EnrichHint == nil || room.EnrichHint.Label != "floor_plan" {
		t.Fatalf("hint = %+v", room.EnrichHint)
	}
	if room.Area != 120 {
		t.Error("annotation must not modify measurements")
	}

	// A second annotation must not replace the first hint.
	Annotate(Insight{DrawingType: "site_plan"}, []model.Component{room})
	if room.EnrichHint.Label != "floor_plan" {
		t.Error("first hint should win")
	}
}

// Package enrich annotates sheets and components with drawing-level
// insights: the drawing type, a content categorization, and a quality score.
//
// Insights are hints. They never change extracted measurements, and a
// provider failure degrades to the zero insight rather than failing the
// pipeline. The built-in [Heuristic] provider works from sheet titles and
// content counts; richer providers (a model-backed service, say) plug in
// through the [Provider] interface.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/tsawler/plancheck/ingest"
	"github.com/tsawler/plancheck/model"
)

// Insight is a provider's assessment of one sheet.
type Insight struct {
	// DrawingType is one of floor_plan, site_plan, elevation, section,
	// detail, or unknown.
	DrawingType string `json:"drawing_type"`

	// Confidence is the provider's confidence in DrawingType, in [0,1].
	Confidence float64 `json:"confidence"`

	// Categorization is a short free-form description of the sheet.
	Categorization string `json:"categorization,omitempty"`

	// QualityScore estimates how extractable the sheet was, in [0,1].
	QualityScore float64 `json:"quality_score"`
}

// Provider infers insights about a sheet.
type Provider interface {
	Infer(ctx context.Context, sheet *ingest.Sheet) (Insight, error)
}

// Noop is a provider that knows nothing. It reports an unknown drawing type
// with zero confidence.
type Noop struct{}

func (Noop) Infer(ctx context.Context, sheet *ingest.Sheet) (Insight, error) {
	return Insight{DrawingType: "unknown"}, nil
}

// Heuristic infers insights from sheet titles and content volume, with no
// external dependencies.
type Heuristic struct{}

var drawingTypes = []struct {
	keyword string
	name    string
}{
	{"SITE PLAN", "site_plan"},
	{"FLOOR PLAN", "floor_plan"},
	{"ROOF PLAN", "roof_plan"},
	{"FOUNDATION", "foundation_plan"},
	{"ELEVATION", "elevation"},
	{"SECTION", "section"},
	{"DETAIL", "detail"},
}

func (Heuristic) Infer(ctx context.Context, sheet *ingest.Sheet) (Insight, error) {
	if err := ctx.Err(); err != nil {
		return Insight{}, err
	}

	in := Insight{DrawingType: "unknown"}
	title := strings.ToUpper(sheet.Title)
	for _, dt := range drawingTypes {
		if strings.Contains(title, dt.keyword) {
			in.DrawingType = dt.name
			in.Confidence = 0.85
			in.Categorization = strings.ToLower(sheet.Title)
			break
		}
	}
	if in.DrawingType == "unknown" {
		// No usable title; fall back to content shape. Site plans are
		// dominated by long boundary lines with sparse text.
		if len(sheet.Texts) > 0 && len(sheet.Lines)+len(sheet.Rectangles) > 0 {
			in.DrawingType = "floor_plan"
			in.Confidence = 0.4
		}
	}

	in.QualityScore = qualityScore(sheet)
	return in, nil
}

// qualityScore estimates extraction quality from content volume and whether
// the scale was detected rather than assumed.
func qualityScore(sheet *ingest.Sheet) float64 {
	score := 0.0
	if len(sheet.Texts) >= 10 {
		score += 0.4
	} else if len(sheet.Texts) > 0 {
		score += 0.2
	}
	if len(sheet.Lines)+len(sheet.Rectangles) >= 20 {
		score += 0.3
	} else if len(sheet.Lines)+len(sheet.Rectangles) > 0 {
		score += 0.15
	}
	if sheet.Scale.Source == ingest.ScaleDetected {
		score += 0.3
	}
	if score > 1 {
		score = 1
	}
	return score
}

// WithTimeout wraps a provider with a per-sheet time budget. On timeout the
// zero insight is returned with the context error.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{p: p, d: d}
}

type timeoutProvider struct {
	p Provider
	d time.Duration
}

func (t *timeoutProvider) Infer(ctx context.Context, sheet *ingest.Sheet) (Insight, error) {
	tctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.p.Infer(tctx, sheet)
}

// Annotate attaches the insight to every component as an enrichment hint.
// Existing hints are kept; measurements are never modified.
func Annotate(in Insight, comps []model.Component) {
	for _, comp := range comps {
		model.BaseOf(comp).AttachHint(model.Hint{
			Label:    in.DrawingType,
			Category: in.Categorization,
			Score:    in.Confidence,
		})
	}
}

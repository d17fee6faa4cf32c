// Package export writes extraction and compliance reports as JSON.
//
// Two artifacts are produced: a components report (per-sheet typed component
// arrays plus aggregate counts) and a compliance report (graded evaluations
// under a metadata header with a run ID, timestamp, status breakdown, and
// pass rate). All measurements are reported in decimal feet.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tsawler/plancheck/model"
)

// ComponentsReport is the full extraction result for one document.
type ComponentsReport struct {
	Filename string         `json:"filename,omitempty"`
	Summary  model.Summary  `json:"summary"`
	Sheets   []SheetReport  `json:"sheets"`
	Skipped  []SkippedSheet `json:"skipped_sheets,omitempty"`
}

// SheetReport groups one sheet's components by type.
type SheetReport struct {
	Sheet       int    `json:"sheet"`
	Title       string `json:"title,omitempty"`
	Scale       string `json:"scale,omitempty"`
	DrawingType string `json:"drawing_type,omitempty"`

	Rooms              []*model.Room                 `json:"rooms,omitempty"`
	Setbacks           []*model.Setback              `json:"setbacks,omitempty"`
	GeometricSetbacks  []*model.GeometricSetback     `json:"geometric_setbacks,omitempty"`
	Openings           []*model.Opening              `json:"openings,omitempty"`
	Parking            []*model.ParkingSpace         `json:"parking,omitempty"`
	Circulation        []*model.CirculationElement   `json:"circulation,omitempty"`
	FireSafety         []*model.FireSafetyFeature    `json:"fire_safety,omitempty"`
	Accessibility      []*model.AccessibilityFeature `json:"accessibility,omitempty"`
	HeightLevels       []*model.HeightLevel          `json:"height_levels,omitempty"`
	BuildingEnvelope   *model.BuildingEnvelope       `json:"building_envelope,omitempty"`
	LotInfo            *model.LotInfo                `json:"lot_info,omitempty"`
	AdjacentProperties []*model.AdjacentProperty     `json:"adjacent_properties,omitempty"`
}

// SkippedSheet records a sheet that produced no usable content.
type SkippedSheet struct {
	Sheet  int    `json:"sheet"`
	Reason string `json:"reason"`
}

// BuildComponentsReport assembles the components report from a registry.
// Drawing types, when known, are supplied per sheet number.
func BuildComponentsReport(filename string, reg *model.Registry, drawingTypes map[int]string) ComponentsReport {
	report := ComponentsReport{
		Filename: filename,
		Summary:  reg.Summarize(),
	}

	for _, sheet := range reg.Sheets() {
		sr := SheetReport{
			Sheet:       sheet.Number,
			Title:       sheet.Title,
			Scale:       sheet.Scale,
			DrawingType: drawingTypes[sheet.Number],
		}
		for _, comp := range sheet.Components {
			switch v := comp.(type) {
			case *model.Room:
				sr.Rooms = append(sr.Rooms, v)
			case *model.Setback:
				sr.Setbacks = append(sr.Setbacks, v)
			case *model.GeometricSetback:
				sr.GeometricSetbacks = append(sr.GeometricSetbacks, v)
			case *model.Opening:
				sr.Openings = append(sr.Openings, v)
			case *model.ParkingSpace:
				sr.Parking = append(sr.Parking, v)
			case *model.CirculationElement:
				sr.Circulation = append(sr.Circulation, v)
			case *model.FireSafetyFeature:
				sr.FireSafety = append(sr.FireSafety, v)
			case *model.AccessibilityFeature:
				sr.Accessibility = append(sr.Accessibility, v)
			case *model.HeightLevel:
				sr.HeightLevels = append(sr.HeightLevels, v)
			case *model.BuildingEnvelope:
				sr.BuildingEnvelope = v
			case *model.LotInfo:
				sr.LotInfo = v
			case *model.AdjacentProperty:
				sr.AdjacentProperties = append(sr.AdjacentProperties, v)
			}
		}
		report.Sheets = append(report.Sheets, sr)
	}
	return report
}

// Metadata heads the compliance report.
type Metadata struct {
	GeneratedAt     string         `json:"generated_at"` // RFC 3339, UTC
	RunID           string         `json:"run_id"`
	Filename        string         `json:"filename,omitempty"`
	TotalComponents int            `json:"total_components"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	PassRate        float64        `json:"pass_rate"`
}

// ComplianceReport is the graded result of a compliance run.
type ComplianceReport struct {
	Metadata    Metadata           `json:"metadata"`
	Evaluations []model.Evaluation `json:"evaluations"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// BuildComplianceReport assembles the compliance report. The pass rate is
// the PASS share of decided (PASS or FAIL) evaluations.
func BuildComplianceReport(runID, filename string, totalComponents int, evals []model.Evaluation, warnings []string, now time.Time) ComplianceReport {
	breakdown := map[string]int{
		string(model.StatusPass):          0,
		string(model.StatusFail):          0,
		string(model.StatusReview):        0,
		string(model.StatusNotApplicable): 0,
	}
	for _, ev := range evals {
		breakdown[string(ev.Status)]++
	}

	passRate := 0.0
	decided := breakdown[string(model.StatusPass)] + breakdown[string(model.StatusFail)]
	if decided > 0 {
		passRate = float64(breakdown[string(model.StatusPass)]) / float64(decided)
	}

	return ComplianceReport{
		Metadata: Metadata{
			GeneratedAt:     now.UTC().Format(time.RFC3339),
			RunID:           runID,
			Filename:        filename,
			TotalComponents: totalComponents,
			StatusBreakdown: breakdown,
			PassRate:        passRate,
		},
		Evaluations: evals,
		Warnings:    warnings,
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteFile writes v as indented JSON to the named file.
func WriteFile(filename string, v any) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", filename, err)
	}
	defer f.Close()

	if err := WriteJSON(f, v); err != nil {
		return fmt.Errorf("export: write %s: %w", filename, err)
	}
	return f.Close()
}

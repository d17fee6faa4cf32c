package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultScaleRatio is the conventional architectural floor-plan scale
// assumed when a sheet carries no scale annotation: 1/4" = 1'-0", i.e. 1:48.
const DefaultScaleRatio = 48

// pointsPerFootAtFullScale is 72 points per inch times 12 inches per foot.
const pointsPerFootAtFullScale = 864

// ScaleSource records how a sheet's unit scale was determined.
type ScaleSource string

const (
	ScaleDetected ScaleSource = "detected"
	ScaleDefault  ScaleSource = "default"
)

// UnitScale converts PDF page points to real-world feet.
type UnitScale struct {
	// FeetPerPoint is the conversion factor applied to page coordinates.
	FeetPerPoint float64

	// Ratio is the drawing scale denominator (48 for 1/4" = 1'-0",
	// 100 for 1:100).
	Ratio float64

	Source ScaleSource
}

// ToFeet converts a page-point measurement to feet.
func (u UnitScale) ToFeet(points float64) float64 {
	return points * u.FeetPerPoint
}

// scaleForRatio builds a UnitScale for a 1:ratio drawing scale.
func scaleForRatio(ratio float64, source ScaleSource) UnitScale {
	return UnitScale{
		FeetPerPoint: ratio / pointsPerFootAtFullScale,
		Ratio:        ratio,
		Source:       source,
	}
}

// DefaultScale is the fallback scale for sheets with no annotation.
func DefaultScale() UnitScale {
	return scaleForRatio(DefaultScaleRatio, ScaleDefault)
}

// FallbackScale builds a default-source UnitScale for a 1:ratio drawing
// scale, for callers that configure their own fallback.
func FallbackScale(ratio float64) UnitScale {
	if ratio <= 0 {
		return DefaultScale()
	}
	return scaleForRatio(ratio, ScaleDefault)
}

var (
	reScalePrefix   = regexp.MustCompile(`(?i)SCALE:?\s*(.+)`)
	reImperialScale = regexp.MustCompile(`(\d+)/(\d+)"\s*=\s*(\d+)'(?:-?(\d+)")?`)
	reMetricScale   = regexp.MustCompile(`\b1\s*:\s*(\d+)\b`)
)

// ParseScale parses a scale annotation into a UnitScale. Recognized forms
// are imperial (1/4" = 1'-0", 1/8" = 1'-0") and metric ratios (1:100).
// The second return value is false when the text is not a scale annotation.
func ParseScale(text string) (UnitScale, bool) {
	s := strings.TrimSpace(text)
	if m := reScalePrefix.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	if m := reImperialScale.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		feet, _ := strconv.ParseFloat(m[3], 64)
		inches := 0.0
		if m[4] != "" {
			inches, _ = strconv.ParseFloat(m[4], 64)
		}
		realFeet := feet + inches/12
		if num == 0 || den == 0 || realFeet == 0 {
			return UnitScale{}, false
		}
		// num/den paper inches represent realFeet real feet, so one paper
		// inch covers realFeet*den/num feet and the ratio follows as
		// paper-inches-per-real-inch.
		feetPerInch := realFeet * den / num
		return UnitScale{
			FeetPerPoint: feetPerInch / 72,
			Ratio:        feetPerInch * 12,
			Source:       ScaleDetected,
		}, true
	}

	if m := reMetricScale.FindStringSubmatch(s); m != nil {
		ratio, _ := strconv.ParseFloat(m[1], 64)
		if ratio == 0 {
			return UnitScale{}, false
		}
		return scaleForRatio(ratio, ScaleDetected), true
	}

	return UnitScale{}, false
}

// detectScale scans a sheet's text runs for a scale annotation, preferring
// runs that carry the SCALE label. Returns the raw annotation text alongside
// the parsed scale.
func detectScale(texts []TextAnnotation) (UnitScale, string) {
	// Labeled annotations first.
	for _, t := range texts {
		if !strings.Contains(strings.ToUpper(t.Text), "SCALE") {
			continue
		}
		if u, ok := ParseScale(t.Text); ok {
			return u, strings.TrimSpace(t.Text)
		}
	}
	// Then bare imperial forms anywhere on the sheet. Bare metric ratios
	// are skipped here: "1:100" alone matches too many labels.
	for _, t := range texts {
		if reImperialScale.MatchString(t.Text) {
			if u, ok := ParseScale(t.Text); ok {
				return u, strings.TrimSpace(t.Text)
			}
		}
	}
	return DefaultScale(), ""
}

var titleKeywords = []string{
	"FLOOR PLAN", "SITE PLAN", "ROOF PLAN", "FOUNDATION PLAN",
	"ELEVATION", "SECTION", "DETAILS",
}

// detectTitle finds the sheet title, preferring the largest-font run that
// contains a title keyword.
func detectTitle(texts []TextAnnotation) string {
	var best string
	var bestSize float64
	for _, t := range texts {
		upper := strings.ToUpper(t.Text)
		for _, kw := range titleKeywords {
			if strings.Contains(upper, kw) && t.FontSize >= bestSize {
				best = strings.TrimSpace(t.Text)
				bestSize = t.FontSize
				break
			}
		}
	}
	if len(best) > 100 {
		best = best[:100]
	}
	return best
}

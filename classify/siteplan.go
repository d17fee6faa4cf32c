package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/plancheck/dimension"
	"github.com/tsawler/plancheck/geom"
	"github.com/tsawler/plancheck/ingest"
	"github.com/tsawler/plancheck/model"
)

// Site-plan extraction. Lot areas on Australian-style site plans are quoted
// in square meters; boundary dimensions in meters.

var (
	reLotNumber  = regexp.MustCompile(`LOT\s+(\d+)`)
	reLotArea    = regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*(?:m²|m2|sqm)`)
	reBareNumber = regexp.MustCompile(`^(\d+\.?\d*)$`)

	adjacentLotPatterns = []*regexp.Regexp{
		regexp.MustCompile(`LOT\s+\d+`),
		regexp.MustCompile(`SP\s*\d+`),
		regexp.MustCompile(`DP\s*\d+`),
	}
)

// lotInfo extracts lot number, area, and boundary dimensions. Returns nil
// when the sheet carries no site-plan data.
func (c *Classifier) lotInfo(sheet *ingest.Sheet) model.Component {
	lot := &model.LotInfo{
		Base: model.Base{SheetNo: sheet.Number, Confidence: confidenceStrong},
	}

	for _, run := range sheet.Texts {
		upper := strings.ToUpper(run.Text)
		if m := reLotNumber.FindStringSubmatch(upper); m != nil {
			lot.LotNumber = m[1]
			lot.Loc = run.Center
			break
		}
	}

	for _, run := range sheet.Texts {
		if lot.LotArea > 0 {
			break
		}
		if m := reLotArea.FindStringSubmatch(run.Text); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				// Stored in square feet like every other area attribute.
				lot.LotArea = v * dimension.FeetPerMeter * dimension.FeetPerMeter
				lot.LotAreaUnit = "m²"
				if (lot.Loc == geom.Point{}) {
					lot.Loc = run.Center
				}
			}
		}
	}

	// Boundary dimensions: metric runs first, then bare decimals in a
	// plausible range when nothing carried a unit.
	for _, run := range sheet.Texts {
		text := strings.TrimSpace(run.Text)
		if !strings.HasSuffix(text, "m") || !dimension.Looks(text) {
			continue
		}
		d, err := c.parser.Parse(text, run.Center)
		if err != nil || d.Unit != "m" {
			continue
		}
		meters := d.Value / dimension.FeetPerMeter
		if meters > 5 && meters < 500 {
			lot.BoundaryDimensions = append(lot.BoundaryDimensions, d)
		}
	}
	if len(lot.BoundaryDimensions) == 0 && lot.LotNumber != "" {
		for _, run := range sheet.Texts {
			m := reBareNumber.FindStringSubmatch(strings.TrimSpace(run.Text))
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil || v <= 5 || v >= 200 {
				continue
			}
			lot.BoundaryDimensions = append(lot.BoundaryDimensions, dimension.Dimension{
				Value:        v * dimension.FeetPerMeter,
				OriginalText: run.Text,
				Location:     run.Center,
				Unit:         "m",
			})
		}
	}

	if lot.LotNumber == "" && lot.LotArea == 0 && len(lot.BoundaryDimensions) == 0 {
		return nil
	}
	return lot
}

// adjacentProperties extracts neighboring lot identifiers (LOT 137,
// SP163257, DP123456), one component per distinct identifier.
func (c *Classifier) adjacentProperties(sheet *ingest.Sheet) []model.Component {
	var out []model.Component
	seen := make(map[string]bool)

	for _, run := range sheet.Texts {
		upper := strings.ToUpper(run.Text)
		for _, pat := range adjacentLotPatterns {
			for _, ident := range pat.FindAllString(upper, -1) {
				if seen[ident] {
					continue
				}
				seen[ident] = true
				out = append(out, &model.AdjacentProperty{
					Base: model.Base{
						SheetNo:    sheet.Number,
						Loc:        run.Center,
						Confidence: confidenceStrong,
					},
					Identifier: ident,
				})
			}
		}
	}
	return out
}

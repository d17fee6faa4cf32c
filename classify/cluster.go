package classify

import (
	"sort"
	"strings"

	"github.com/tsawler/plancheck/dimension"
	"github.com/tsawler/plancheck/geom"
	"github.com/tsawler/plancheck/ingest"
)

// Clustering radii in feet. At a 1/4" = 1'-0" drawing scale these
// correspond to roughly one to two inches of paper, which is how far a
// dimension string typically sits from the label it belongs to.
const (
	radiusTight  = 4.5
	radiusNormal = 6.0
	radiusWide   = 8.5
)

// nearbyText returns the runs within radius feet of center, nearest first.
// The run at the center itself is excluded.
func nearbyText(center geom.Point, texts []ingest.TextAnnotation, radius float64) []ingest.TextAnnotation {
	var out []ingest.TextAnnotation
	for _, t := range texts {
		d := t.Center.Distance(center)
		if d > 0 && d <= radius {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Center.Distance(center) < out[j].Center.Distance(center)
	})
	return out
}

// nearbyDimensions parses the runs within radius feet of center as
// dimensions, nearest first. Unparseable runs are skipped.
func (c *Classifier) nearbyDimensions(center geom.Point, texts []ingest.TextAnnotation, radius float64) []dimension.Dimension {
	var dims []dimension.Dimension
	for _, t := range nearbyText(center, texts, radius) {
		if !dimension.Looks(t.Text) {
			continue
		}
		d, err := c.parser.Parse(t.Text, t.Center)
		if err != nil {
			continue
		}
		dims = append(dims, d)
	}
	return dims
}

// contextText joins the nearby runs into one upper-cased string for
// attribute keyword scans (egress, handrail, fire rating).
func contextText(center geom.Point, texts []ingest.TextAnnotation, radius float64) string {
	parts := make([]string, 0, 8)
	for _, t := range nearbyText(center, texts, radius) {
		parts = append(parts, strings.ToUpper(t.Text))
	}
	return strings.Join(parts, " ")
}

// matchKeyword reports the first keyword found in the run. Keywords of one
// or two characters are treated as abbreviations and only match standalone
// tokens; abbreviation matches are reported as weak.
func matchKeyword(textUpper string, keywords []string) (keyword string, weak, ok bool) {
	tokens := strings.Fields(textUpper)
	for _, kw := range keywords {
		if len(kw) <= 2 {
			for _, tok := range tokens {
				if tok == kw {
					return kw, true, true
				}
			}
			continue
		}
		if strings.Contains(textUpper, kw) {
			return kw, false, true
		}
	}
	return "", false, false
}

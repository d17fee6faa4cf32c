package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/plancheck/dimension"
	"github.com/tsawler/plancheck/geom"
	"github.com/tsawler/plancheck/ingest"
	"github.com/tsawler/plancheck/model"
)

// Confidence assigned to keyword matches. Abbreviation-only matches fall
// below the default minimum and are flagged low-confidence rather than
// dropped.
const (
	confidenceStrong = 0.9
	confidenceWeak   = 0.45
)

// DefaultMinConfidence is the threshold below which a component is flagged
// for review.
const DefaultMinConfidence = 0.5

// Config tunes classification.
type Config struct {
	// MinConfidence flags components below this classification confidence
	// as low-confidence. Zero means DefaultMinConfidence.
	MinConfidence float64
}

// Classifier extracts typed components from sheets.
type Classifier struct {
	cfg    Config
	parser *dimension.Parser
}

// New creates a classifier.
func New(cfg Config) *Classifier {
	if cfg.MinConfidence == 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}
	return &Classifier{cfg: cfg, parser: dimension.NewParser()}
}

var (
	reSlopeRatio = regexp.MustCompile(`\b(\d+):(\d+)\b`)
	reSlopePct   = regexp.MustCompile(`(\d+)\s*%`)
	reFireRating = regexp.MustCompile(`(\d+)\s*HR`)
)

// Extract classifies every text run on the sheet and returns the resulting
// components, unregistered. Components keep the order categories are
// processed in: annotation-driven components first, then the building
// envelope and site-plan components.
func (c *Classifier) Extract(sheet *ingest.Sheet) []model.Component {
	var out []model.Component
	seen := make(map[string]bool)

	add := func(comp model.Component, key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, comp)
	}

	for _, run := range sheet.Texts {
		text := strings.TrimSpace(run.Text)
		if text == "" || dimension.Looks(text) {
			continue
		}
		upper := strings.ToUpper(text)

		// Priority order: a run matching several categories is classified
		// once, by the first category that claims it.
		if comp := c.fireSafety(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.accessibility(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.circulation(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.parking(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.setback(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.opening(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.room(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
		if comp := c.heightLevel(sheet, run, upper); comp != nil {
			add(comp, dedupKey(comp))
			continue
		}
	}

	if env := c.envelope(sheet); env != nil {
		out = append(out, env)
	}
	if lot := c.lotInfo(sheet); lot != nil {
		out = append(out, lot)
	}
	for _, ap := range c.adjacentProperties(sheet) {
		key := dedupKey(ap)
		if !seen[key] {
			seen[key] = true
			out = append(out, ap)
		}
	}

	return out
}

// dedupKey collapses repeated detections of the same component at the same
// spot, matching on kind, label, and location rounded to the nearest foot.
func dedupKey(comp model.Component) string {
	loc := comp.Location()
	return fmt.Sprintf("%s|%s|%.0f|%.0f", comp.Kind(), comp.Label(), loc.X, loc.Y)
}

func (c *Classifier) base(sheet *ingest.Sheet, run ingest.TextAnnotation, weak bool) model.Base {
	conf := confidenceStrong
	if weak {
		conf = confidenceWeak
	}
	return model.Base{
		SheetNo:    sheet.Number,
		Loc:        run.Center,
		Confidence: conf,
		LowConf:    conf < c.cfg.MinConfidence,
	}
}

func (c *Classifier) fireSafety(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	for _, featureType := range []string{"smoke_alarm", "sprinkler", "fire_exit", "fire_door", "hydrant", "extinguisher"} {
		_, weak, ok := matchKeyword(upper, fireSafetyKeywords[featureType])
		if !ok {
			continue
		}
		ctx := contextText(run.Center, sheet.Texts, radiusTight)
		f := &model.FireSafetyFeature{
			Base:        c.base(sheet, run, weak),
			FeatureType: featureType,
		}
		if m := reFireRating.FindStringSubmatch(ctx + " " + upper); m != nil {
			f.Rating = m[1] + "HR"
		}
		return f
	}
	return nil
}

func (c *Classifier) accessibility(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	_, weak, ok := matchKeyword(upper, accessibilityKeywords)
	if !ok {
		return nil
	}
	ctx := contextText(run.Center, sheet.Texts, radiusNormal) + " " + upper

	featureType := "accessible_feature"
	switch {
	case strings.Contains(ctx, "PARKING") || strings.Contains(ctx, "PARK"):
		featureType = "accessible_parking"
	case strings.Contains(ctx, "RAMP"):
		featureType = "accessible_ramp"
	case strings.Contains(ctx, "ENTRANCE") || strings.Contains(ctx, "ENTRY"):
		featureType = "accessible_entrance"
	case strings.Contains(ctx, "BATH") || strings.Contains(ctx, "TOILET"):
		featureType = "accessible_bathroom"
	}

	a := &model.AccessibilityFeature{
		Base:        c.base(sheet, run, weak),
		FeatureType: featureType,
		Compliant:   strings.Contains(ctx, "COMPLIANT") || strings.Contains(ctx, "ADA"),
	}
	if dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusNormal); len(dims) > 0 {
		a.ClearWidth = dims[0].Value
	}
	if m := reSlopeRatio.FindStringSubmatch(ctx); m != nil {
		a.Slope = ratio(m[1], m[2])
	}
	return a
}

func (c *Classifier) circulation(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	var circType string
	var weak bool
	if _, w, ok := matchKeyword(upper, stairKeywords); ok {
		circType, weak = "stair", w
	} else if _, w, ok := matchKeyword(upper, rampKeywords); ok {
		circType, weak = "ramp", w
	} else if _, w, ok := matchKeyword(upper, elevatorKeywords); ok {
		circType, weak = "elevator", w
	} else {
		return nil
	}

	ctx := contextText(run.Center, sheet.Texts, radiusNormal) + " " + upper
	elem := &model.CirculationElement{
		Base:            c.base(sheet, run, weak),
		CirculationType: circType,
		IsEgress:        strings.Contains(ctx, "EXIT") || strings.Contains(ctx, "EGRESS"),
		HasHandrail:     strings.Contains(ctx, "HANDRAIL") || strings.Contains(ctx, "RAIL"),
	}
	if dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusNormal); len(dims) > 0 {
		elem.Width = dims[0].Value
	}
	if circType == "ramp" {
		if m := reSlopeRatio.FindStringSubmatch(ctx); m != nil {
			elem.Slope = ratio(m[1], m[2])
		} else if m := reSlopePct.FindStringSubmatch(ctx); m != nil {
			elem.Slope = ratio(m[1], "100")
		}
	}
	return elem
}

func (c *Classifier) parking(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	_, weak, ok := matchKeyword(upper, parkingKeywords)
	if !ok {
		return nil
	}

	spaceType := "open_space"
	if strings.Contains(upper, "GARAGE") {
		spaceType = "garage"
	} else if strings.Contains(upper, "CARPORT") {
		spaceType = "carport"
	}

	p := &model.ParkingSpace{
		Base:       c.base(sheet, run, weak),
		SpaceType:  spaceType,
		Count:      1,
		Accessible: strings.Contains(upper, "ACCESSIBLE") || strings.Contains(upper, "ADA"),
	}
	dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusNormal)
	if len(dims) > 0 {
		p.Width = dims[0].Value
	}
	if len(dims) > 1 {
		p.Length = dims[1].Value
	}
	return p
}

func (c *Classifier) setback(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	_, weak, ok := matchKeyword(upper, setbackKeywords)
	if !ok {
		return nil
	}

	dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusWide)
	if len(dims) == 0 {
		return nil
	}

	ctx := contextText(run.Center, sheet.Texts, radiusWide) + " " + upper
	direction := model.DirectionUnknown
	switch {
	case strings.Contains(ctx, "FRONT"):
		direction = model.DirectionFront
	case strings.Contains(ctx, "REAR") || strings.Contains(ctx, "BACK"):
		direction = model.DirectionRear
	case strings.Contains(ctx, "SIDE"):
		direction = model.DirectionLeft
		if strings.Contains(ctx, "RIGHT") {
			direction = model.DirectionRight
		}
	}

	return &model.Setback{
		Base:          c.base(sheet, run, weak),
		Direction:     direction,
		Distance:      dims[0].Value,
		MeasuredFrom:  "property_line",
		DimensionText: dims[0].OriginalText,
	}
}

func (c *Classifier) opening(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	var openingType string
	var weak bool
	if _, w, ok := matchKeyword(upper, doorKeywords); ok {
		openingType, weak = "door", w
	} else if _, w, ok := matchKeyword(upper, windowKeywords); ok {
		openingType, weak = "window", w
	} else {
		return nil
	}

	o := &model.Opening{
		Base:        c.base(sheet, run, weak),
		OpeningType: openingType,
		IsEgress:    strings.Contains(upper, "EXIT") || strings.Contains(upper, "EGRESS"),
	}
	dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusTight)
	if len(dims) > 0 {
		o.Width = dims[0].Value
	}
	if len(dims) > 1 {
		o.Height = dims[1].Value
	}
	return o
}

func (c *Classifier) room(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	roomType, weak, ok := matchRoomType(upper)
	if !ok {
		return nil
	}

	room := &model.Room{
		Base:     c.base(sheet, run, weak),
		Name:     strings.TrimSpace(run.Text),
		RoomType: roomType,
	}

	dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusNormal)
	room.Dimensions = dims
	if len(dims) >= 2 {
		room.Width = dims[0].Value
		room.Length = dims[1].Value
		room.Area = room.Width * room.Length
	}

	// Shape prior: the smallest rectangle enclosing the label is taken as
	// the room boundary; it supplies the area when no dimension pair did.
	if rect, ok := enclosingRectangle(run.Center, sheet.Rectangles); ok {
		poly := geom.FromBBox(rect)
		room.Boundary = &poly
		if room.Area == 0 {
			room.Width = rect.Width
			room.Length = rect.Height
			room.Area = rect.Area()
		}
	}
	return room
}

func (c *Classifier) heightLevel(sheet *ingest.Sheet, run ingest.TextAnnotation, upper string) model.Component {
	_, weak, ok := matchKeyword(upper, heightKeywords)
	if !ok {
		_, weak, ok = matchKeyword(upper, roofKeywords)
		if !ok {
			return nil
		}
	}

	level := &model.HeightLevel{
		Base:      c.base(sheet, run, weak),
		LevelName: strings.TrimSpace(run.Text),
	}
	if dims := c.nearbyDimensions(run.Center, sheet.Texts, radiusNormal); len(dims) > 0 {
		v := dims[0].Value
		level.Elevation = &v
	}
	return level
}

// envelope builds the sheet's building envelope from "OVERALL" dimension
// callouts: the two largest overall dimensions become length and width.
func (c *Classifier) envelope(sheet *ingest.Sheet) model.Component {
	var overall []float64
	var anchor geom.Point
	for _, run := range sheet.Texts {
		if !strings.Contains(strings.ToUpper(run.Text), "OVERALL") {
			continue
		}
		if anchor == (geom.Point{}) {
			anchor = run.Center
		}
		for _, d := range c.nearbyDimensions(run.Center, sheet.Texts, radiusNormal) {
			overall = append(overall, d.Value)
		}
	}
	if len(overall) < 2 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(overall)))

	length, width := overall[0], overall[1]
	return &model.BuildingEnvelope{
		Base: model.Base{
			SheetNo:    sheet.Number,
			Loc:        anchor,
			Confidence: confidenceStrong,
		},
		TotalLength: length,
		TotalWidth:  width,
		FloorArea:   length * width,
		Perimeter:   2 * (length + width),
	}
}

// enclosingRectangle finds the smallest sheet rectangle that contains p and
// has a plausible room area.
func enclosingRectangle(p geom.Point, rects []geom.BBox) (geom.BBox, bool) {
	const minArea, maxArea = 20.0, 2000.0 // square feet
	var best geom.BBox
	found := false
	for _, r := range rects {
		if !r.Contains(p) {
			continue
		}
		area := r.Area()
		if area < minArea || area > maxArea {
			continue
		}
		if !found || area < best.Area() {
			best = r
			found = true
		}
	}
	return best, found
}

// matchRoomType checks room keyword groups in a stable order so overlapping
// keywords resolve deterministically.
func matchRoomType(upper string) (roomType string, weak, ok bool) {
	for _, rt := range roomTypeOrder {
		if _, w, matched := matchKeyword(upper, roomKeywords[rt]); matched {
			return rt, w, true
		}
	}
	return "", false, false
}

var roomTypeOrder = []string{
	"bedroom", "bathroom", "kitchen", "living", "dining",
	"garage", "laundry", "entry", "balcony", "storage",
}

func ratio(numStr, denStr string) float64 {
	var num, den float64
	fmt.Sscanf(numStr, "%f", &num)
	fmt.Sscanf(denStr, "%f", &den)
	if den == 0 {
		return 0
	}
	return num / den
}

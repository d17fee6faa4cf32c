package evaluate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/plancheck/dimension"
)

// Comparator is the relation a threshold imposes on a measured value.
type Comparator int

const (
	AtLeast Comparator = iota
	AtMost
	Exactly
	Between
)

// Threshold is a machine-checkable numeric requirement, normalized to feet
// (or square feet for areas).
type Threshold struct {
	Comparator Comparator
	Value      float64
	// Upper is the range upper bound, used only with Between.
	Upper float64
	// Unit is the normalized unit: "ft" or "sq ft".
	Unit string
	// Display is the threshold in the rule's original unit, for reports.
	Display string
}

// Satisfied reports whether the measured value (in the threshold's
// normalized unit) meets the requirement, within the shared dimension
// tolerance.
func (t Threshold) Satisfied(actual float64) bool {
	switch t.Comparator {
	case AtLeast:
		return actual >= t.Value-dimension.Epsilon
	case AtMost:
		return actual <= t.Value+dimension.Epsilon
	case Exactly:
		return actual >= t.Value-dimension.Epsilon && actual <= t.Value+dimension.Epsilon
	case Between:
		return actual >= t.Value-dimension.Epsilon && actual <= t.Upper+dimension.Epsilon
	}
	return false
}

var (
	reComparator = regexp.MustCompile(`(>=|<=|≥|≤|=|>|<)?\s*(\d+(?:\.\d+)?)\s*(?:-\s*(\d+(?:\.\d+)?)\s*)?([a-z²\s]*)`)

	wordedUnit  = `((?:sq\.?\s*|square\s+)?(?:feet|foot|ft|met(?:er|re)s?|mm|m|inch(?:es)?|in)\b)?`
	reWordedMin = regexp.MustCompile(`(?i)(?:not less than|at least|minimum(?: of)?|min\.?)\s+(\d+(?:\.\d+)?)\s*` + wordedUnit)
	reWordedMax = regexp.MustCompile(`(?i)(?:not (?:more than|exceed)|at most|maximum(?: of)?|max\.?|shall not exceed)\s+(\d+(?:\.\d+)?)\s*` + wordedUnit)
	reSymbolic  = regexp.MustCompile(`(?i)(>=|<=|≥|≤|>|<)\s*(\d+(?:\.\d+)?)\s*` + wordedUnit)
)

// ParseThreshold parses a threshold expression such as ">= 70 sq ft",
// "≥6m", "<= 30 ft", or "7-10 ft". Returns false when the text carries no
// usable numeric requirement.
func ParseThreshold(expr string) (Threshold, bool) {
	s := strings.TrimSpace(strings.ToLower(expr))
	if s == "" {
		return Threshold{}, false
	}

	m := reComparator.FindStringSubmatch(s)
	if m == nil {
		return Threshold{}, false
	}
	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Threshold{}, false
	}
	// A bare number with neither comparator nor unit is not a threshold.
	if m[1] == "" && strings.TrimSpace(m[4]) == "" {
		return Threshold{}, false
	}

	cmp := AtLeast
	switch m[1] {
	case "<=", "≤", "<":
		cmp = AtMost
	case "=":
		cmp = Exactly
	}
	if m[3] != "" {
		upper, err := strconv.ParseFloat(m[3], 64)
		if err != nil || upper < value {
			return Threshold{}, false
		}
		return normalize(Threshold{Comparator: Between, Value: value, Upper: upper}, m[4])
	}
	return normalize(Threshold{Comparator: cmp, Value: value}, m[4])
}

// DeriveThreshold extracts a threshold from prose requirement text, either
// worded ("a floor area of not less than 70 square feet") or symbolic
// ("front setback ≥6m").
func DeriveThreshold(requirement string) (Threshold, bool) {
	if m := reWordedMin.FindStringSubmatch(requirement); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		return normalize(Threshold{Comparator: AtLeast, Value: value}, m[2])
	}
	if m := reWordedMax.FindStringSubmatch(requirement); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		return normalize(Threshold{Comparator: AtMost, Value: value}, m[2])
	}
	if m := reSymbolic.FindStringSubmatch(requirement); m != nil {
		value, _ := strconv.ParseFloat(m[2], 64)
		cmp := AtLeast
		switch m[1] {
		case "<=", "≤", "<":
			cmp = AtMost
		}
		return normalize(Threshold{Comparator: cmp, Value: value}, m[3])
	}
	return Threshold{}, false
}

// normalize converts the threshold to feet or square feet and records a
// display string in the original unit.
func normalize(t Threshold, unitText string) (Threshold, bool) {
	unit := strings.Join(strings.Fields(strings.ToLower(unitText)), " ")
	unit = strings.ReplaceAll(unit, "sq.", "sq")
	unit = strings.TrimSuffix(unit, ".")

	display := func(u string) string {
		if t.Comparator == Between {
			return fmt.Sprintf("%s-%s %s", trimFloat(t.Value), trimFloat(t.Upper), u)
		}
		return fmt.Sprintf("%s %s", trimFloat(t.Value), u)
	}

	switch unit {
	case "ft", "feet", "foot", "'", "":
		t.Unit = "ft"
		t.Display = display("ft")
	case "in", "inch", "inches", `"`:
		t.Value /= 12
		t.Upper /= 12
		t.Unit = "ft"
		t.Display = display("in")
	case "m", "meter", "meters", "metre", "metres":
		t.Display = display("m")
		t.Value *= dimension.FeetPerMeter
		t.Upper *= dimension.FeetPerMeter
		t.Unit = "ft"
	case "mm", "millimeters", "millimetres":
		t.Display = display("mm")
		t.Value = t.Value / 1000 * dimension.FeetPerMeter
		t.Upper = t.Upper / 1000 * dimension.FeetPerMeter
		t.Unit = "ft"
	case "sq ft", "sqft", "square feet", "sf", "ft²":
		t.Unit = "sq ft"
		t.Display = display("sq ft")
	case "sq m", "sqm", "square meters", "square metres", "m²", "m2":
		t.Display = display("sq m")
		factor := dimension.FeetPerMeter * dimension.FeetPerMeter
		t.Value *= factor
		t.Upper *= factor
		t.Unit = "sq ft"
	default:
		return Threshold{}, false
	}
	return t, true
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

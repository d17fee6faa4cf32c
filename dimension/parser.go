package dimension

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/plancheck/geom"
)

// Epsilon is the tolerance, in feet, used for dimension equality checks
// downstream. Parsed values themselves are not rounded.
const Epsilon = 0.05

// FeetPerMeter converts metric site-plan dimensions to decimal feet.
const FeetPerMeter = 3.28084

// Dimension is a parsed measurement in decimal feet.
type Dimension struct {
	// Value is the measurement converted to decimal feet.
	Value float64

	// OriginalText is the annotation exactly as it appeared on the sheet.
	OriginalText string

	// Location is the center of the source text run, in sheet coordinates.
	Location geom.Point

	// Unit is the unit of the original annotation: "ft", "in", "m", "mm", "cm".
	Unit string
}

// ParseError indicates that a text run did not match any dimension grammar.
// It is non-fatal; the run is treated as a plain label.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dimension: unrecognized dimension text %q", e.Text)
}

// Grammar order matters: the fraction form must not be eaten by the plain
// feet-inches prefix, so every pattern is anchored end to end.
var (
	reFeetInchesFraction = regexp.MustCompile(`^(\d+)'-?(\d+)\s+(\d+)/(\d+)"$`)
	reFeetInches         = regexp.MustCompile(`^(\d+)'-?(\d+)"$`)
	reDecimalFeet        = regexp.MustCompile(`^(\d+(?:\.\d+)?)'$`)
	reInchesOnly         = regexp.MustCompile(`^(\d+(?:\.\d+)?)"$`)
	reMeters             = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*m$`)
	reMillimeters        = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*mm$`)
	reCentimeters        = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*cm$`)
)

// Parser parses architectural dimension text.
type Parser struct{}

// NewParser creates a dimension parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse attempts to parse a single text run as a dimension. The location is
// attached to the result so downstream clustering can associate the value
// with nearby geometry.
func (p *Parser) Parse(text string, location geom.Point) (Dimension, error) {
	cleaned := normalize(text)

	if m := reFeetInchesFraction.FindStringSubmatch(cleaned); m != nil {
		feet := mustFloat(m[1])
		inches := mustFloat(m[2])
		num := mustFloat(m[3])
		den := mustFloat(m[4])
		if den == 0 {
			return Dimension{}, &ParseError{Text: text}
		}
		return Dimension{
			Value:        feet + inches/12 + num/(den*12),
			OriginalText: text,
			Location:     location,
			Unit:         "ft",
		}, nil
	}

	if m := reFeetInches.FindStringSubmatch(cleaned); m != nil {
		feet := mustFloat(m[1])
		inches := mustFloat(m[2])
		return Dimension{
			Value:        feet + inches/12,
			OriginalText: text,
			Location:     location,
			Unit:         "ft",
		}, nil
	}

	if m := reDecimalFeet.FindStringSubmatch(cleaned); m != nil {
		return Dimension{
			Value:        mustFloat(m[1]),
			OriginalText: text,
			Location:     location,
			Unit:         "ft",
		}, nil
	}

	if m := reInchesOnly.FindStringSubmatch(cleaned); m != nil {
		return Dimension{
			Value:        mustFloat(m[1]) / 12,
			OriginalText: text,
			Location:     location,
			Unit:         "in",
		}, nil
	}

	// Metric forms appear on site plans. Millimeters before meters so the
	// "mm" suffix is not consumed as "m".
	if m := reMillimeters.FindStringSubmatch(cleaned); m != nil {
		return Dimension{
			Value:        mustFloat(m[1]) / 1000 * FeetPerMeter,
			OriginalText: text,
			Location:     location,
			Unit:         "mm",
		}, nil
	}

	if m := reCentimeters.FindStringSubmatch(cleaned); m != nil {
		return Dimension{
			Value:        mustFloat(m[1]) / 100 * FeetPerMeter,
			OriginalText: text,
			Location:     location,
			Unit:         "cm",
		}, nil
	}

	if m := reMeters.FindStringSubmatch(cleaned); m != nil {
		return Dimension{
			Value:        mustFloat(m[1]) * FeetPerMeter,
			OriginalText: text,
			Location:     location,
			Unit:         "m",
		}, nil
	}

	return Dimension{}, &ParseError{Text: text}
}

// Looks reports whether the text run plausibly contains a dimension without
// doing a full parse. Used by the classifier to skip label-only runs cheaply.
func Looks(text string) bool {
	cleaned := normalize(text)
	return strings.ContainsAny(cleaned, `'"`) ||
		reMeters.MatchString(cleaned) ||
		reMillimeters.MatchString(cleaned) ||
		reCentimeters.MatchString(cleaned)
}

// normalize prepares raw annotation text for grammar matching: NFKC folds
// fraction glyphs to digit sequences, then typographic primes and the
// Unicode fraction slash are mapped to their ASCII forms.
func normalize(text string) string {
	s := norm.NFKC.String(strings.TrimSpace(text))
	replacer := strings.NewReplacer(
		"′", "'", // prime
		"″", `"`, // double prime
		"’", "'", // right single quote
		"”", `"`, // right double quote
		"⁄", "/", // fraction slash (from NFKC-decomposed ½ etc.)
		"−", "-", // minus sign
		"–", "-", // en dash
	)
	s = replacer.Replace(s)
	// NFKC turns "6½" into "61/2" with no separating space; restore the
	// space between whole inches and the fraction so the grammar matches.
	s = reGluedFraction.ReplaceAllString(s, "$1 $2/$3")
	return s
}

var reGluedFraction = regexp.MustCompile(`(\d)(\d)/(\d+)"$`)

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

package ingest

import (
	"fmt"

	"github.com/tsawler/plancheck/geom"
)

// TextAnnotation is a single text run on a sheet, positioned in sheet feet.
type TextAnnotation struct {
	Text     string
	Center   geom.Point
	Bounds   geom.BBox
	FontSize float64
}

// Sheet is one drawing page converted to real-world coordinates.
type Sheet struct {
	// Number is the 1-indexed page number.
	Number int

	// Title is the detected sheet title ("FLOOR PLAN", "SITE PLAN", ...),
	// or empty when none was found.
	Title string

	// ScaleText is the raw scale annotation, e.g. `1/4" = 1'-0"`.
	ScaleText string

	// Scale converts between page points and feet.
	Scale UnitScale

	// Width and Height are the sheet extents in feet.
	Width, Height float64

	// Lines and Rectangles are the sheet's vector primitives in feet.
	Lines      []geom.Segment
	Rectangles []geom.BBox

	// Texts are the sheet's text runs in feet.
	Texts []TextAnnotation
}

// ExtractionError reports a sheet that could not be extracted. It is
// non-fatal: the remaining sheets are still processed.
type ExtractionError struct {
	Sheet  int
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("ingest: sheet %d skipped: %s", e.Sheet, e.Reason)
}

// Document is the result of extracting one PDF file.
type Document struct {
	Filename string
	Sheets   []*Sheet

	// Skipped lists sheets that produced no usable content.
	Skipped []*ExtractionError
}

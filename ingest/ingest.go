package ingest

import (
	"fmt"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"

	"github.com/tsawler/plancheck/geom"
)

// Options configures extraction.
type Options struct {
	// FallbackScale is used for sheets with no scale annotation. The zero
	// value means DefaultScale().
	FallbackScale UnitScale

	// MinLineLength drops vector segments shorter than this many feet,
	// filtering hatching and tick marks. Zero keeps everything.
	MinLineLength float64
}

// Ingestor extracts sheets from PDF drawings.
type Ingestor struct {
	opts Options
}

// NewIngestor creates an ingestor with the given options.
func NewIngestor(opts Options) *Ingestor {
	if opts.FallbackScale.FeetPerPoint == 0 {
		opts.FallbackScale = DefaultScale()
	}
	return &Ingestor{opts: opts}
}

// Extract opens the named PDF and extracts every sheet. Sheets without
// vector content are recorded in Document.Skipped; a non-nil error means the
// document itself could not be read.
func (ing *Ingestor) Extract(filename string) (*Document, error) {
	r, err := reader.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", filename, err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("ingest: page count: %w", err)
	}

	doc := &Document{Filename: filename}
	for i := 0; i < count; i++ {
		sheet, xerr := ing.extractPage(r, i)
		if xerr != nil {
			doc.Skipped = append(doc.Skipped, xerr)
			continue
		}
		doc.Sheets = append(doc.Sheets, sheet)
	}
	return doc, nil
}

func (ing *Ingestor) extractPage(r *reader.Reader, index int) (*Sheet, *ExtractionError) {
	number := index + 1

	page, err := r.GetPage(index)
	if err != nil {
		return nil, &ExtractionError{Sheet: number, Reason: fmt.Sprintf("unreadable page: %v", err)}
	}

	width, err := page.Width()
	if err != nil {
		return nil, &ExtractionError{Sheet: number, Reason: "missing media box"}
	}
	height, _ := page.Height()

	var raw pagePrimitives
	raw.widthPts = width
	raw.heightPts = height

	contents, err := page.Contents()
	if err != nil {
		return nil, &ExtractionError{Sheet: number, Reason: fmt.Sprintf("unreadable contents: %v", err)}
	}

	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Decode()
		if err != nil {
			return nil, &ExtractionError{Sheet: number, Reason: fmt.Sprintf("undecodable content stream: %v", err)}
		}
		data = append(data, decoded...)
	}

	if len(data) > 0 {
		gx := graphicsstate.NewGraphicsExtractor()
		if err := gx.ExtractFromBytes(data); err != nil {
			return nil, &ExtractionError{Sheet: number, Reason: fmt.Sprintf("bad content stream: %v", err)}
		}
		for _, l := range gx.GetLines() {
			raw.lines = append(raw.lines, geom.Segment{
				Start: geom.Point{X: l.Start.X, Y: l.Start.Y},
				End:   geom.Point{X: l.End.X, Y: l.End.Y},
			})
		}
		for _, rect := range gx.GetRectangles() {
			raw.rects = append(raw.rects, geom.NewBBox(
				rect.BBox.X, rect.BBox.Y, rect.BBox.Width, rect.BBox.Height))
		}
	}

	fragments, err := r.ExtractTextFragments(page)
	if err != nil {
		return nil, &ExtractionError{Sheet: number, Reason: fmt.Sprintf("unreadable text: %v", err)}
	}
	for _, f := range fragments {
		raw.texts = append(raw.texts, TextAnnotation{
			Text: f.Text,
			Center: geom.Point{
				X: f.X + f.Width/2,
				Y: f.Y + f.Height/2,
			},
			Bounds:   geom.NewBBox(f.X, f.Y, f.Width, f.Height),
			FontSize: f.FontSize,
		})
	}

	if len(raw.lines) == 0 && len(raw.rects) == 0 && len(raw.texts) == 0 {
		reason := "no extractable content"
		if hasImageXObject(r, page) {
			reason = "raster-only sheet, vector extraction not possible"
		}
		return nil, &ExtractionError{Sheet: number, Reason: reason}
	}

	return ing.buildSheet(number, raw), nil
}

// pagePrimitives is the page content in PDF points, before scale conversion.
type pagePrimitives struct {
	widthPts, heightPts float64
	lines               []geom.Segment
	rects               []geom.BBox
	texts               []TextAnnotation
}

// buildSheet converts page-point primitives to a Sheet in feet. Scale
// detection runs on the raw text before any coordinate conversion.
func (ing *Ingestor) buildSheet(number int, raw pagePrimitives) *Sheet {
	scale, scaleText := detectScale(raw.texts)
	if scale.Source == ScaleDefault {
		scale = ing.opts.FallbackScale
	}

	s := &Sheet{
		Number:    number,
		Title:     detectTitle(raw.texts),
		ScaleText: scaleText,
		Scale:     scale,
		Width:     scale.ToFeet(raw.widthPts),
		Height:    scale.ToFeet(raw.heightPts),
	}

	f := scale.FeetPerPoint
	for _, l := range raw.lines {
		seg := geom.Segment{
			Start: geom.Point{X: l.Start.X * f, Y: l.Start.Y * f},
			End:   geom.Point{X: l.End.X * f, Y: l.End.Y * f},
		}
		if ing.opts.MinLineLength > 0 && seg.Length() < ing.opts.MinLineLength {
			continue
		}
		s.Lines = append(s.Lines, seg)
	}
	for _, r := range raw.rects {
		s.Rectangles = append(s.Rectangles, geom.NewBBox(
			r.X*f, r.Y*f, r.Width*f, r.Height*f))
	}
	for _, t := range raw.texts {
		s.Texts = append(s.Texts, TextAnnotation{
			Text: t.Text,
			Center: geom.Point{
				X: t.Center.X * f,
				Y: t.Center.Y * f,
			},
			Bounds: geom.NewBBox(
				t.Bounds.X*f, t.Bounds.Y*f,
				t.Bounds.Width*f, t.Bounds.Height*f),
			FontSize: t.FontSize,
		})
	}
	return s
}

// hasImageXObject reports whether the page's resources reference an image
// XObject, distinguishing scanned sheets from genuinely blank pages.
func hasImageXObject(r *reader.Reader, page *pages.Page) bool {
	res, err := page.Resources()
	if err != nil || res == nil {
		return false
	}
	xobjs, ok := res.GetDict("XObject")
	if !ok {
		// Resources may hold an indirect reference to the XObject dict.
		if ref, refOK := res.GetIndirectRef("XObject"); refOK {
			obj, rerr := r.ResolveReference(ref)
			if rerr != nil {
				return false
			}
			if d, dOK := obj.(core.Dict); dOK {
				xobjs = d
				ok = true
			}
		}
	}
	return ok && len(xobjs) > 0
}

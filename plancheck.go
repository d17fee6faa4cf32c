// Package plancheck provides a fluent API for checking architectural
// drawings against building-code rules.
//
// Basic usage:
//
//	result, warnings, err := plancheck.Open("plan.pdf").Components()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", plancheck.FormatWarnings(warnings))
//	}
//
// With a rule store:
//
//	report, warnings, err := plancheck.Open("plan.pdf").
//	    MinConfidence(0.6).
//	    Workers(8).
//	    Evaluate(ctx, store)
//
// Configuration methods return a new Checker, so a configured Checker can be
// shared and further specialized safely.
package plancheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/plancheck/classify"
	"github.com/tsawler/plancheck/config"
	"github.com/tsawler/plancheck/enrich"
	"github.com/tsawler/plancheck/evaluate"
	"github.com/tsawler/plancheck/export"
	"github.com/tsawler/plancheck/ingest"
	"github.com/tsawler/plancheck/model"
	"github.com/tsawler/plancheck/rules"
	"github.com/tsawler/plancheck/setback"
)

// Checker provides a fluent interface for extracting and evaluating
// compliance components. Each configuration method returns a new Checker
// instance.
type Checker struct {
	filename string
	document *ingest.Document // pre-extracted input, bypasses the PDF reader
	cfg      config.Config
	provider enrich.Provider

	// Accumulated error (fail-fast).
	err error
}

// Open prepares a checker for the named PDF drawing set.
func Open(filename string) *Checker {
	return &Checker{
		filename: filename,
		cfg:      *config.Default(),
		provider: enrich.Heuristic{},
	}
}

// FromDocument creates a checker over already-extracted sheets. Useful when
// the caller manages extraction itself.
func FromDocument(doc *ingest.Document) *Checker {
	return &Checker{
		filename: doc.Filename,
		document: doc,
		cfg:      *config.Default(),
		provider: enrich.Heuristic{},
	}
}

// clone creates a copy so configuration methods never mutate the receiver.
func (c *Checker) clone() *Checker {
	copied := *c
	return &copied
}

// WithConfig replaces the whole configuration.
func (c *Checker) WithConfig(cfg *config.Config) *Checker {
	next := c.clone()
	if err := cfg.Validate(); err != nil {
		next.err = err
		return next
	}
	next.cfg = *cfg
	return next
}

// MinConfidence sets the classification confidence below which components
// are flagged for review.
func (c *Checker) MinConfidence(v float64) *Checker {
	next := c.clone()
	if v < 0 || v > 1 {
		next.err = fmt.Errorf("plancheck: min confidence %f out of [0,1]", v)
		return next
	}
	next.cfg.Classify.MinConfidence = v
	return next
}

// SamplePoints sets the number of geometric setback measurement points per
// footprint edge.
func (c *Checker) SamplePoints(n int) *Checker {
	next := c.clone()
	if n < 1 {
		next.err = fmt.Errorf("plancheck: sample points must be at least 1")
		return next
	}
	next.cfg.Setback.SamplePoints = n
	return next
}

// Workers bounds the evaluation worker pool.
func (c *Checker) Workers(n int) *Checker {
	next := c.clone()
	if n < 1 {
		next.err = fmt.Errorf("plancheck: workers must be at least 1")
		return next
	}
	next.cfg.Evaluate.Workers = n
	return next
}

// WithEnrichment replaces the enrichment provider. Use enrich.Noop{} to
// disable enrichment.
func (c *Checker) WithEnrichment(p enrich.Provider) *Checker {
	next := c.clone()
	next.provider = p
	return next
}

// Result is the outcome of component extraction.
type Result struct {
	// Registry holds every extracted component with its assigned ID.
	Registry *model.Registry

	// DrawingTypes maps sheet numbers to inferred drawing types.
	DrawingTypes map[int]string

	// Skipped lists sheets that produced no usable content.
	Skipped []*ingest.ExtractionError
}

// Components extracts compliance components from every sheet. This is a
// terminal operation.
func (c *Checker) Components() (*Result, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	doc := c.document
	if doc == nil {
		ing := ingest.NewIngestor(ingest.Options{
			FallbackScale: ingest.FallbackScale(c.cfg.Ingest.DefaultScaleRatio),
			MinLineLength: c.cfg.Ingest.MinLineLength,
		})
		var err error
		doc, err = ing.Extract(c.filename)
		if err != nil {
			return nil, nil, err
		}
	}

	var warnings []Warning
	for _, skipped := range doc.Skipped {
		warnings = append(warnings, Warning{
			Code:    WarnSheetSkipped,
			Message: skipped.Reason,
			Sheet:   skipped.Sheet,
		})
	}

	classifier := classify.New(classify.Config{MinConfidence: c.cfg.Classify.MinConfidence})
	calculator := setback.NewCalculator(setback.Config{SamplePoints: c.cfg.Setback.SamplePoints})

	result := &Result{
		Registry:     model.NewRegistry(),
		DrawingTypes: make(map[int]string),
		Skipped:      doc.Skipped,
	}

	for _, sheet := range doc.Sheets {
		record := result.Registry.AddSheet(sheet.Number, sheet.Title, sheet.ScaleText)

		comps := classifier.Extract(sheet)
		for _, sb := range calculator.Calculate(sheet) {
			if sb.InsufficientSamples {
				warnings = append(warnings, Warning{
					Code:    WarnInsufficientSamples,
					Message: fmt.Sprintf("%s setback measured from %d point(s), not reported", sb.Direction, sb.SampleCount),
					Sheet:   sheet.Number,
				})
			}
			comps = append(comps, sb)
		}

		insight, err := c.provider.Infer(context.Background(), sheet)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnEnrichmentFailed,
				Message: err.Error(),
				Sheet:   sheet.Number,
			})
		} else {
			result.DrawingTypes[sheet.Number] = insight.DrawingType
			enrich.Annotate(insight, comps)
		}

		for _, comp := range comps {
			id := result.Registry.Register(record, comp)
			if comp.LowConfidence() {
				warnings = append(warnings, Warning{
					Code:    WarnLowConfidence,
					Message: fmt.Sprintf("%s (%s) classified with low confidence", id, comp.Label()),
					Sheet:   sheet.Number,
				})
			}
		}
	}

	return result, warnings, nil
}

// Report is the outcome of a full compliance run.
type Report struct {
	Result *Result

	// Evaluations are the deduplicated graded findings.
	Evaluations []model.Evaluation

	// Compliance is the export-ready report with metadata.
	Compliance export.ComplianceReport
}

// Evaluate extracts components and grades them against the rule store. This
// is a terminal operation. Canceling the context stops new components from
// being dispatched; in-flight evaluations finish and are included.
func (c *Checker) Evaluate(ctx context.Context, store rules.RuleStore) (*Report, []Warning, error) {
	result, warnings, err := c.Components()
	if err != nil {
		return nil, warnings, err
	}

	matcher := rules.NewMatcher(store, rules.MatcherConfig{
		TopK:         c.cfg.Rules.TopK,
		TopM:         c.cfg.Rules.TopM,
		QueryTimeout: c.cfg.Rules.QueryTimeout,
		Retries:      c.cfg.Rules.Retries,
	})
	evaluator := evaluate.New(matcher, evaluate.Config{Workers: c.cfg.Evaluate.Workers})

	evals, evalErrs := evaluator.EvaluateAll(ctx, result.Registry.All())
	for _, e := range evalErrs {
		code := WarnEvaluationFailed
		if errors.Is(e, rules.ErrStoreUnavailable) {
			code = WarnStoreUnavailable
		}
		warnings = append(warnings, Warning{Code: code, Message: e.Error()})
	}

	warningStrings := make([]string, 0, len(warnings))
	for _, w := range warnings {
		warningStrings = append(warningStrings, w.String())
	}

	report := &Report{
		Result:      result,
		Evaluations: evals,
		Compliance: export.BuildComplianceReport(
			uuid.NewString(),
			c.filename,
			result.Registry.Summarize().ComponentCount,
			evals,
			warningStrings,
			time.Now(),
		),
	}

	if writer, ok := store.(rules.EvaluationWriter); ok {
		if err := writer.WriteEvaluations(ctx, evals); err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnWritebackFailed,
				Message: err.Error(),
			})
		}
	}

	return report, warnings, nil
}

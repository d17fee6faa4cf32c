package evaluate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/plancheck/model"
	"github.com/tsawler/plancheck/rules"
)

// LowConfidencePenalty is subtracted from the confidence of decided grades
// when the underlying component classification was low-confidence.
const LowConfidencePenalty = 0.15

// DefaultWorkers bounds the evaluation worker pool.
const DefaultWorkers = 4

// EvaluationError wraps a per-component evaluation failure. It downgrades
// the component to REVIEW instead of aborting the run.
type EvaluationError struct {
	ComponentID string
	Err         error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate: component %s: %v", e.ComponentID, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// Config tunes evaluation.
type Config struct {
	// Workers bounds the worker pool. Zero means DefaultWorkers.
	Workers int
}

// Evaluator grades components against rules retrieved by a matcher.
type Evaluator struct {
	matcher *rules.Matcher
	cfg     Config
}

// New creates an evaluator.
func New(matcher *rules.Matcher, cfg Config) *Evaluator {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Evaluator{matcher: matcher, cfg: cfg}
}

// EvaluateComponent grades a single component against every retrieved rule.
// The returned error is advisory (store outage, retrieval failure); usable
// evaluations are returned alongside it.
func (e *Evaluator) EvaluateComponent(ctx context.Context, comp model.Component) ([]model.Evaluation, error) {
	cands, err := e.matcher.Match(ctx, comp)
	if err != nil {
		if errors.Is(err, rules.ErrStoreUnavailable) {
			ev := notApplicable(comp)
			ev.Notes = append(ev.Notes, "rule store unavailable, component not checked")
			return []model.Evaluation{ev}, err
		}
		ev := notApplicable(comp)
		ev.Status = model.StatusReview
		ev.Notes = append(ev.Notes, fmt.Sprintf("rule retrieval aborted: %v", err))
		return []model.Evaluation{ev}, &EvaluationError{ComponentID: comp.ID(), Err: err}
	}

	if len(cands) == 0 {
		return []model.Evaluation{notApplicable(comp)}, nil
	}

	evals := make([]model.Evaluation, 0, len(cands))
	for _, cand := range cands {
		evals = append(evals, e.grade(comp, cand))
	}
	return Dedup(evals), nil
}

// grade produces the evaluation for one component/rule pair.
func (e *Evaluator) grade(comp model.Component, cand model.Candidate) model.Evaluation {
	ev := model.Evaluation{
		ComponentID:   comp.ID(),
		ComponentType: comp.Kind().String(),
		ComponentName: comp.Label(),
		RuleID:        cand.Rule.ID,
		Requirement:   cand.Rule.Requirement,
	}
	if cand.Rule.Source != "" {
		ev.Sources = []string{cand.Rule.Source}
	}

	threshold, haveThreshold := ParseThreshold(cand.Rule.Value)
	if !haveThreshold {
		threshold, haveThreshold = DeriveThreshold(cand.Rule.Requirement)
	}

	if !haveThreshold {
		ev.Status = model.StatusReview
		ev.Confidence = cand.Score
		ev.Notes = append(ev.Notes, "rule has no machine-readable threshold")
		ev.ClampConfidence()
		return ev
	}
	ev.ExpectedValue = threshold.Display

	attrName := cand.Rule.Attribute
	if attrName == "" {
		attrName = attributeForUnit(threshold.Unit)
	}
	actual, present := comp.Attributes()[attrName]
	if !present {
		ev.Status = model.StatusReview
		ev.Confidence = cand.Score
		ev.Notes = append(ev.Notes, fmt.Sprintf("component has no measured %s", attrName))
		ev.ClampConfidence()
		return ev
	}
	ev.ActualValue = formatValue(actual, threshold.Unit)

	if threshold.Satisfied(actual) {
		ev.Status = model.StatusPass
	} else {
		ev.Status = model.StatusFail
	}
	ev.Confidence = 1.0
	if comp.LowConfidence() {
		ev.Confidence -= LowConfidencePenalty
		ev.Notes = append(ev.Notes, "component classification was low-confidence")
	}
	ev.ClampConfidence()
	return ev
}

// EvaluateAll grades all components through a bounded worker pool. Advisory
// errors (store outages, per-component failures) are collected and returned
// beside the evaluations. Canceling the context stops new components from
// being dispatched; in-flight evaluations finish.
func (e *Evaluator) EvaluateAll(ctx context.Context, comps []model.Component) ([]model.Evaluation, []error) {
	jobs := make(chan model.Component)

	var mu sync.Mutex
	var all []model.Evaluation
	var errs []error

	// Cancellation only stops dispatch. A component already handed to a
	// worker finishes its queries on a detached context (per-query timeouts
	// still apply) so its evaluation is emitted.
	workCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for comp := range jobs {
				evals, err := e.EvaluateComponent(workCtx, comp)
				mu.Lock()
				all = append(all, evals...)
				if err != nil {
					errs = append(errs, err)
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, comp := range comps {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- comp:
		}
	}
	close(jobs)
	wg.Wait()

	// Worker completion order is nondeterministic; restore component order
	// for stable reports.
	indexOf := make(map[string]int, len(comps))
	for i, comp := range comps {
		indexOf[comp.ID()] = i
	}
	sort.SliceStable(all, func(i, j int) bool {
		return indexOf[all[i].ComponentID] < indexOf[all[j].ComponentID]
	})
	return all, errs
}

func notApplicable(comp model.Component) model.Evaluation {
	return model.Evaluation{
		ComponentID:   comp.ID(),
		ComponentType: comp.Kind().String(),
		ComponentName: comp.Label(),
		Status:        model.StatusNotApplicable,
		Confidence:    0,
	}
}

// attributeForUnit guesses the component attribute a unit-only threshold
// constrains.
func attributeForUnit(unit string) string {
	if unit == "sq ft" {
		return "area"
	}
	return "distance"
}

func formatValue(v float64, unit string) string {
	return fmt.Sprintf("%s %s", strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), "."), unit)
}

// Package evaluate grades extracted components against retrieved
// building-code rules.
//
// Each component/rule pair produces exactly one [model.Evaluation] with one
// of four grades. A rule with a parseable numeric threshold and a matching
// measured attribute grades PASS or FAIL; a relevant rule that cannot be
// decided automatically (no threshold, or the component lacks the measured
// attribute) grades REVIEW with the retrieval score as confidence; a
// component with no retrieved rules at all grades NOT_APPLICABLE with zero
// confidence. Low-confidence components carry a fixed confidence penalty on
// decided grades.
//
// Near-duplicate findings for the same component, where two retrieved rules
// impose the same requirement, are collapsed after evaluation: the highest
// confidence survives and the code citations are merged. Deduplication
// builds a new list; evaluations are never edited in place.
//
// [Evaluator.EvaluateAll] runs components through a bounded worker pool.
// Canceling the context stops new work; evaluations already in flight
// finish and are included in the result.
package evaluate

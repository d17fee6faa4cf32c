// Package rules retrieves building-code rules relevant to extracted
// components.
//
// A [RuleStore] answers two kinds of queries: free-text relevance search and
// topic keyword lookup. [Matcher] issues both for a component, merges the
// result sets by rule ID keeping the higher score, and returns candidates in
// descending relevance order. Store outages surface as
// [ErrStoreUnavailable] after a bounded retry, never as a panic or a hang;
// the evaluator downgrades affected components instead of failing the run.
//
// [MemoryStore] is a self-contained store backed by a rule slice, used by
// the CLI (loading rules from a JSON file) and by tests. Stores that also
// implement [EvaluationWriter] receive the finished evaluations for
// write-back.
package rules

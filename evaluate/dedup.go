package evaluate

import (
	"strings"

	"github.com/tsawler/plancheck/model"
)

// DedupSimilarity is the requirement-text similarity at or above which two
// findings for the same component are considered the same requirement.
const DedupSimilarity = 0.82

// Dedup collapses near-duplicate findings for the same component. Two
// evaluations are duplicates when they grade the same component the same way
// against the same effective requirement: either their normalized thresholds
// are identical, or their requirement texts are nearly identical. The
// surviving evaluation is the one with the higher confidence; code citations
// from collapsed evaluations are merged into it. The input is not modified.
func Dedup(evals []model.Evaluation) []model.Evaluation {
	out := make([]model.Evaluation, 0, len(evals))
	for _, ev := range evals {
		merged := false
		for i := range out {
			if !sameFinding(out[i], ev) {
				continue
			}
			if ev.Confidence > out[i].Confidence {
				keep := ev
				keep.Sources = mergeSources(out[i].Sources, ev.Sources)
				out[i] = keep
			} else {
				out[i].Sources = mergeSources(out[i].Sources, ev.Sources)
			}
			merged = true
			break
		}
		if !merged {
			out = append(out, ev)
		}
	}
	return out
}

func sameFinding(a, b model.Evaluation) bool {
	if a.ComponentID != b.ComponentID || a.Status != b.Status {
		return false
	}
	if a.ExpectedValue != "" && a.ExpectedValue == b.ExpectedValue {
		return true
	}
	return similarity(a.Requirement, b.Requirement) >= DedupSimilarity
}

// similarity is the Jaccard index over lower-cased requirement tokens.
func similarity(a, b string) float64 {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	both := 0
	for t := range ta {
		if tb[t] {
			both++
		}
	}
	union := len(ta) + len(tb) - both
	return float64(both) / float64(union)
}

func tokens(s string) map[string]bool {
	out := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(s)) {
		out[strings.Trim(f, ".,;:()")] = true
	}
	return out
}

func mergeSources(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

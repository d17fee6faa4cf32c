package plancheck

import (
	"fmt"
	"strings"
)

// Warning codes reported by the checker.
const (
	WarnSheetSkipped        = "sheet_skipped"
	WarnInsufficientSamples = "insufficient_samples"
	WarnLowConfidence       = "low_confidence"
	WarnStoreUnavailable    = "store_unavailable"
	WarnEvaluationFailed    = "evaluation_failed"
	WarnEnrichmentFailed    = "enrichment_failed"
	WarnWritebackFailed     = "writeback_failed"
)

// Warning is a non-fatal problem encountered while checking a document.
// Warnings are returned beside results, never instead of them.
type Warning struct {
	// Code is a stable machine-readable identifier.
	Code string

	// Message describes the problem.
	Message string

	// Sheet is the 1-indexed sheet number, or 0 for document-level
	// warnings.
	Sheet int
}

func (w Warning) String() string {
	if w.Sheet > 0 {
		return fmt.Sprintf("[%s] sheet %d: %s", w.Code, w.Sheet, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings one per line for logs and reports.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

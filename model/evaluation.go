package model

import "fmt"

// Status grades the outcome of checking one component against one rule.
type Status string

const (
	// StatusPass means the measured value satisfies the rule threshold.
	StatusPass Status = "PASS"

	// StatusFail means the measured value violates the rule threshold.
	StatusFail Status = "FAIL"

	// StatusReview means the rule is relevant but could not be decided
	// automatically; a human should check it.
	StatusReview Status = "REVIEW"

	// StatusNotApplicable means no retrieved rule applied to the component.
	StatusNotApplicable Status = "NOT_APPLICABLE"
)

// Valid reports whether s is one of the four defined grades.
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusReview, StatusNotApplicable:
		return true
	}
	return false
}

// Evaluation is the graded result of checking one component against one rule.
type Evaluation struct {
	ComponentID   string  `json:"component_id"`
	ComponentType string  `json:"component_type"`
	ComponentName string  `json:"component_name,omitempty"`
	RuleID        string  `json:"rule_id,omitempty"`
	Requirement   string  `json:"requirement,omitempty"`
	ExpectedValue string  `json:"expected_value,omitempty"`
	ActualValue   string  `json:"actual_value,omitempty"`
	Status        Status  `json:"status"`
	Confidence    float64 `json:"confidence"`

	// Notes carry human-readable evaluation remarks, such as why a rule
	// landed in REVIEW.
	Notes []string `json:"notes,omitempty"`

	// Sources lists the code citations backing the evaluation. Deduplication
	// merges sources from collapsed near-duplicate rules.
	Sources []string `json:"sources,omitempty"`
}

// ClampConfidence forces the confidence into [0,1].
func (e *Evaluation) ClampConfidence() {
	if e.Confidence < 0 {
		e.Confidence = 0
	}
	if e.Confidence > 1 {
		e.Confidence = 1
	}
}

// String summarizes the evaluation for logs and error messages.
func (e Evaluation) String() string {
	return fmt.Sprintf("%s [%s] %s (%.2f)", e.ComponentID, e.Status, e.RuleID, e.Confidence)
}

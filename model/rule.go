package model

// Rule is a building-code requirement retrieved from a rule store.
type Rule struct {
	// ID uniquely identifies the rule within its store.
	ID string `json:"id"`

	// Requirement is the rule text, e.g. "Habitable rooms shall have a
	// floor area of not less than 70 square feet."
	Requirement string `json:"requirement"`

	// Source cites the code section, e.g. "IRC R304.1".
	Source string `json:"source,omitempty"`

	// Topic tags the rule for keyword retrieval: "room", "setback",
	// "parking", "fire_safety", and so on.
	Topic string `json:"topic,omitempty"`

	// Attribute names the component attribute the rule constrains, when
	// the store records one ("area", "width", "distance"). Empty when the
	// rule carries no machine-readable threshold.
	Attribute string `json:"attribute,omitempty"`

	// Value is the threshold expression in the rule's own words, e.g.
	// ">= 70 sq ft". Empty when the rule is advisory.
	Value string `json:"value,omitempty"`
}

// Candidate pairs a retrieved rule with its relevance score.
type Candidate struct {
	Rule Rule

	// Score is the retrieval relevance in [0,1], higher is more relevant.
	Score float64

	// Origin records which retrieval path produced the candidate:
	// "semantic" or "keyword". A merged candidate keeps the origin of the
	// higher-scoring hit.
	Origin string
}

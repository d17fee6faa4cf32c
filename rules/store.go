package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tsawler/plancheck/model"
)

// ErrStoreUnavailable indicates the rule store could not be reached. The
// caller treats affected components as NOT_APPLICABLE rather than failing
// the run.
var ErrStoreUnavailable = errors.New("rules: store unavailable")

// RuleStore retrieves building-code rules.
type RuleStore interface {
	// Query returns up to topK rules relevant to the free-text query,
	// scored in [0,1], best first.
	Query(ctx context.Context, text string, topK int) ([]model.Candidate, error)

	// KeywordQuery returns up to topM rules whose topic or requirement
	// matches the given terms, scored in [0,1], best first.
	KeywordQuery(ctx context.Context, terms []string, topM int) ([]model.Candidate, error)
}

// EvaluationWriter is implemented by stores that accept evaluation
// write-back for audit trails.
type EvaluationWriter interface {
	WriteEvaluations(ctx context.Context, evals []model.Evaluation) error
}

// MemoryStore is an in-memory RuleStore scoring rules by token overlap.
type MemoryStore struct {
	rules []model.Rule
}

// NewMemoryStore creates a store over the given rules.
func NewMemoryStore(ruleSet []model.Rule) *MemoryStore {
	return &MemoryStore{rules: ruleSet}
}

// LoadRuleFile reads a JSON array of rules from disk.
func LoadRuleFile(path string) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	var ruleSet []model.Rule
	if err := json.Unmarshal(data, &ruleSet); err != nil {
		return nil, fmt.Errorf("rules: parse %s: %w", path, err)
	}
	return ruleSet, nil
}

// Query scores each rule by token overlap between the query and the rule's
// requirement and topic.
func (s *MemoryStore) Query(ctx context.Context, text string, topK int) ([]model.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	queryTokens := tokenize(text)
	if len(queryTokens) == 0 || topK <= 0 {
		return nil, nil
	}

	var out []model.Candidate
	for _, r := range s.rules {
		score := overlap(queryTokens, tokenize(r.Requirement+" "+r.Topic))
		if score > 0 {
			out = append(out, model.Candidate{Rule: r, Score: score, Origin: "semantic"})
		}
	}
	sortCandidates(out)
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// KeywordQuery matches rules whose topic equals a term, or whose requirement
// contains one.
func (s *MemoryStore) KeywordQuery(ctx context.Context, terms []string, topM int) ([]model.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(terms) == 0 || topM <= 0 {
		return nil, nil
	}

	var out []model.Candidate
	for _, r := range s.rules {
		score := 0.0
		reqLower := strings.ToLower(r.Requirement)
		for _, term := range terms {
			t := strings.ToLower(strings.TrimSpace(term))
			if t == "" {
				continue
			}
			if strings.EqualFold(r.Topic, t) {
				score = 1.0
				break
			}
			if strings.Contains(reqLower, t) {
				score = maxFloat(score, 0.6)
			}
		}
		if score > 0 {
			out = append(out, model.Candidate{Rule: r, Score: score, Origin: "keyword"})
		}
	}
	sortCandidates(out)
	if len(out) > topM {
		out = out[:topM]
	}
	return out, nil
}

func sortCandidates(cands []model.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Rule.ID < cands[j].Rule.ID
	})
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(s)) {
		f = strings.Trim(f, ".,;:()[]\"'")
		if len(f) > 2 {
			tokens[f] = true
		}
	}
	return tokens
}

// overlap is the fraction of query tokens present in the document.
func overlap(query, doc map[string]bool) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for t := range query {
		if doc[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

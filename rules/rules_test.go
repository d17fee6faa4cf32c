package rules

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/plancheck/model"
)

func testRules() []model.Rule {
	return []model.Rule{
		{
			ID:          "irc-r304-1",
			Requirement: "Habitable rooms shall have a floor area of not less than 70 square feet",
			Source:      "IRC R304.1",
			Topic:       "room",
			Attribute:   "area",
			Value:       ">= 70 sq ft",
		},
		{
			ID:          "irc-r304-2",
			Requirement: "Habitable rooms shall not be less than 7 feet in any horizontal dimension",
			Source:      "IRC R304.2",
			Topic:       "room",
			Attribute:   "width",
			Value:       ">= 7 ft",
		},
		{
			ID:          "zon-front-setback",
			Requirement: "Front setback shall be at least 6m for residential lots",
			Source:      "Zoning 4.2",
			Topic:       "setback",
			Attribute:   "distance",
			Value:       ">= 6 m",
		},
		{
			ID:          "fire-smoke-alarm",
			Requirement: "Smoke alarms shall be installed in each sleeping room",
			Source:      "IRC R314.3",
			Topic:       "fire_safety",
		},
	}
}

func TestMemoryStore_Query(t *testing.T) {
	store := NewMemoryStore(testRules())

	cands, err := store.Query(context.Background(), "room floor area square feet", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) == 0 {
		t.Fatal("no candidates for room area query")
	}
	if cands[0].Rule.ID != "irc-r304-1" {
		t.Errorf("top candidate = %s, want irc-r304-1", cands[0].Rule.ID)
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Score > cands[i-1].Score {
			t.Error("candidates not in descending score order")
		}
	}
	for _, c := range cands {
		if c.Origin != "semantic" {
			t.Errorf("origin = %q, want semantic", c.Origin)
		}
		if c.Score < 0 || c.Score > 1 {
			t.Errorf("score %f out of [0,1]", c.Score)
		}
	}
}

func TestMemoryStore_QueryTopK(t *testing.T) {
	store := NewMemoryStore(testRules())
	cands, err := store.Query(context.Background(), "rooms shall", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) > 1 {
		t.Errorf("got %d candidates, want at most 1", len(cands))
	}
}

func TestMemoryStore_KeywordQuery(t *testing.T) {
	store := NewMemoryStore(testRules())

	cands, err := store.KeywordQuery(context.Background(), []string{"setback"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 || cands[0].Rule.ID != "zon-front-setback" {
		t.Fatalf("candidates = %+v, want only zon-front-setback", cands)
	}
	if cands[0].Origin != "keyword" {
		t.Errorf("origin = %q, want keyword", cands[0].Origin)
	}
	if cands[0].Score != 1.0 {
		t.Errorf("topic match score = %f, want 1.0", cands[0].Score)
	}
}

func TestMatcher_MergesByRuleID(t *testing.T) {
	store := NewMemoryStore(testRules())
	m := NewMatcher(store, MatcherConfig{})

	room := &model.Room{Name: "BEDROOM 1", RoomType: "bedroom", Area: 65}
	cands, err := m.Match(context.Background(), room)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) == 0 {
		t.Fatal("no candidates for a room")
	}

	seen := make(map[string]bool)
	for _, c := range cands {
		if seen[c.Rule.ID] {
			t.Errorf("rule %s appears twice after merge", c.Rule.ID)
		}
		seen[c.Rule.ID] = true
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Score > cands[i-1].Score {
			t.Error("merged candidates not in descending score order")
		}
	}
	if len(cands) > DefaultTopK+DefaultTopM {
		t.Errorf("got %d candidates, cap is %d", len(cands), DefaultTopK+DefaultTopM)
	}
}

// failingStore fails a fixed number of times before succeeding.
type failingStore struct {
	failures int
	calls    int
}

func (f *failingStore) Query(ctx context.Context, text string, topK int) ([]model.Candidate, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection refused")
	}
	return []model.Candidate{{Rule: model.Rule{ID: "r1"}, Score: 0.5, Origin: "semantic"}}, nil
}

func (f *failingStore) KeywordQuery(ctx context.Context, terms []string, topM int) ([]model.Candidate, error) {
	return nil, nil
}

func TestMatcher_RetriesTransientFailures(t *testing.T) {
	store := &failingStore{failures: 2}
	m := NewMatcher(store, MatcherConfig{Retries: 2, RetryBackoff: time.Millisecond})

	cands, err := m.Match(context.Background(), &model.Room{Name: "BEDROOM"})
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if len(cands) != 1 {
		t.Errorf("got %d candidates, want 1", len(cands))
	}
	if store.calls != 3 {
		t.Errorf("store called %d times, want 3", store.calls)
	}
}

func TestMatcher_ReportsStoreUnavailable(t *testing.T) {
	store := &failingStore{failures: 100}
	m := NewMatcher(store, MatcherConfig{Retries: 2, RetryBackoff: time.Millisecond})

	_, err := m.Match(context.Background(), &model.Room{Name: "BEDROOM"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestMatcher_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &failingStore{failures: 100}
	m := NewMatcher(store, MatcherConfig{Retries: 2, RetryBackoff: time.Millisecond})

	_, err := m.Match(ctx, &model.Room{Name: "BEDROOM"})
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	if errors.Is(err, ErrStoreUnavailable) && !errors.Is(err, context.Canceled) {
		// Cancellation must not be disguised as an outage retried to
		// exhaustion; either context error is acceptable.
		t.Errorf("canceled context reported as store outage: %v", err)
	}
}

func TestQueryText_IncludesAttributes(t *testing.T) {
	room := &model.Room{Name: "BEDROOM 1", RoomType: "bedroom", Area: 65, Width: 8}
	q := QueryText(room)
	for _, want := range []string{"room", "bedroom 1", "area", "width"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
}

func TestKeywordTerms_PerKind(t *testing.T) {
	sb := &model.GeometricSetback{Direction: model.DirectionFront, AvgDistance: 10}
	terms := KeywordTerms(sb)
	if !containsString(terms, "setback") {
		t.Errorf("terms %v missing setback", terms)
	}

	fire := &model.FireSafetyFeature{FeatureType: "smoke_alarm"}
	terms = KeywordTerms(fire)
	if !containsString(terms, "fire") || !containsString(terms, "smoke_alarm") {
		t.Errorf("terms %v missing fire/smoke_alarm", terms)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

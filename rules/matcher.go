package rules

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/plancheck/model"
)

// Matcher defaults.
const (
	DefaultTopK         = 5
	DefaultTopM         = 5
	DefaultQueryTimeout = 5 * time.Second
	DefaultRetries      = 2
	DefaultRetryBackoff = 200 * time.Millisecond
)

// MatcherConfig tunes retrieval.
type MatcherConfig struct {
	TopK         int           // semantic results, zero means DefaultTopK
	TopM         int           // keyword results, zero means DefaultTopM
	QueryTimeout time.Duration // per-query budget, zero means DefaultQueryTimeout
	Retries      int           // retry attempts after the first failure
	RetryBackoff time.Duration // delay between attempts, doubled each retry
}

func (c MatcherConfig) withDefaults() MatcherConfig {
	if c.TopK == 0 {
		c.TopK = DefaultTopK
	}
	if c.TopM == 0 {
		c.TopM = DefaultTopM
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = DefaultQueryTimeout
	}
	if c.Retries == 0 {
		c.Retries = DefaultRetries
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	return c
}

// Matcher retrieves candidate rules for components through both the
// free-text and keyword paths of a store.
type Matcher struct {
	store RuleStore
	cfg   MatcherConfig
}

// NewMatcher creates a matcher over the given store.
func NewMatcher(store RuleStore, cfg MatcherConfig) *Matcher {
	return &Matcher{store: store, cfg: cfg.withDefaults()}
}

// Match retrieves candidate rules for the component. The two result sets are
// merged by rule ID keeping the higher score, ordered by descending
// relevance, and capped at TopK+TopM. A store outage is reported as
// ErrStoreUnavailable after retries are exhausted.
func (m *Matcher) Match(ctx context.Context, comp model.Component) ([]model.Candidate, error) {
	queryText := QueryText(comp)

	semantic, err := m.withRetry(ctx, func(qctx context.Context) ([]model.Candidate, error) {
		return m.store.Query(qctx, queryText, m.cfg.TopK)
	})
	if err != nil {
		return nil, err
	}

	keyword, err := m.withRetry(ctx, func(qctx context.Context) ([]model.Candidate, error) {
		return m.store.KeywordQuery(qctx, KeywordTerms(comp), m.cfg.TopM)
	})
	if err != nil {
		return nil, err
	}

	merged := mergeByID(semantic, keyword)
	if limit := m.cfg.TopK + m.cfg.TopM; len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (m *Matcher) withRetry(ctx context.Context, query func(context.Context) ([]model.Candidate, error)) ([]model.Candidate, error) {
	backoff := m.cfg.RetryBackoff
	var lastErr error
	for attempt := 0; attempt <= m.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		qctx, cancel := context.WithTimeout(ctx, m.cfg.QueryTimeout)
		cands, err := query(qctx)
		cancel()
		if err == nil {
			return cands, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lastErr)
}

// mergeByID combines the two result sets. A rule appearing in both keeps its
// higher score and that hit's origin.
func mergeByID(a, b []model.Candidate) []model.Candidate {
	byID := make(map[string]model.Candidate)
	order := make([]string, 0, len(a)+len(b))
	for _, c := range append(append([]model.Candidate{}, a...), b...) {
		existing, ok := byID[c.Rule.ID]
		if !ok {
			byID[c.Rule.ID] = c
			order = append(order, c.Rule.ID)
			continue
		}
		if c.Score > existing.Score {
			byID[c.Rule.ID] = c
		}
	}

	out := make([]model.Candidate, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// QueryText builds the free-text retrieval query for a component: its kind,
// label, the drawing type when an enrichment hint attached one, and the
// attributes it actually carries.
func QueryText(comp model.Component) string {
	parts := []string{
		strings.ReplaceAll(comp.Kind().String(), "_", " "),
		strings.ToLower(comp.Label()),
	}
	if hint := model.BaseOf(comp).EnrichHint; hint != nil && hint.Label != "" && hint.Label != "unknown" {
		parts = append(parts, strings.ReplaceAll(hint.Label, "_", " "))
	}
	attrs := comp.Attributes()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, strings.ReplaceAll(name, "_", " "))
	}
	sort.Strings(names)
	parts = append(parts, names...)
	return strings.Join(parts, " ")
}

// KeywordTerms builds the topic terms for a component's keyword lookup.
func KeywordTerms(comp model.Component) []string {
	terms := []string{comp.Kind().String()}
	switch v := comp.(type) {
	case *model.Room:
		terms = append(terms, v.RoomType, "habitable room")
	case *model.Setback, *model.GeometricSetback:
		terms = append(terms, "setback", "yard")
	case *model.Opening:
		terms = append(terms, v.OpeningType)
	case *model.ParkingSpace:
		terms = append(terms, "parking", v.SpaceType)
	case *model.CirculationElement:
		terms = append(terms, v.CirculationType, "egress")
	case *model.FireSafetyFeature:
		terms = append(terms, "fire", v.FeatureType)
	case *model.AccessibilityFeature:
		terms = append(terms, "accessibility", v.FeatureType)
	case *model.HeightLevel:
		terms = append(terms, "height")
	case *model.BuildingEnvelope:
		terms = append(terms, "height", "floor area", "coverage")
	case *model.LotInfo:
		terms = append(terms, "lot", "site")
	}
	return terms
}

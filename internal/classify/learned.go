package classify

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/faturaflow/faturaflow/internal/common"
	"github.com/faturaflow/faturaflow/internal/model"
	"github.com/faturaflow/faturaflow/internal/service"
)

// Scoring constants for the adaptive stage. An exact normalized hit is
// near-certain; partial hits are capped below it and only accepted when
// token overlap plus the usage bonus clears the threshold.
const (
	exactConfidence   = 0.95
	partialCap        = 0.9
	acceptThreshold   = 0.6
	usageBonusStep    = 0.1
	usageBonusCap     = 0.3
	candidatesPerWord = 5
)

// Matcher is the adaptive second stage. It is stateless apart from the
// pattern repository and safe for concurrent use; stale repository reads
// during classification are acceptable.
type Matcher struct {
	repo service.PatternRepository
}

// NewMatcher creates a matcher over the given repository.
func NewMatcher(repo service.PatternRepository) *Matcher {
	return &Matcher{repo: repo}
}

// Match looks the description up in the learned patterns. An exact match on
// the normalized description reports confidence 0.95; otherwise candidates
// sharing a keyword are scored by Jaccard token overlap plus a usage bonus,
// and the best one is reported as partial when its score exceeds 0.6.
func (m *Matcher) Match(ctx context.Context, description string) (model.MatchResult, error) {
	none := model.MatchResult{MatchType: model.MatchNone}

	normalized := NormalizeDescription(description)
	if normalized == "" {
		return none, nil
	}

	exact, err := m.repo.ExactLookup(ctx, normalized)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return none, fmt.Errorf("exact lookup failed: %w", err)
	}
	if exact != nil {
		return model.MatchResult{
			Found:      true,
			Category:   exact.Category,
			Confidence: exactConfidence,
			MatchType:  model.MatchExact,
		}, nil
	}

	queryTokens := Tokenize(normalized)
	if len(queryTokens) == 0 {
		return none, nil
	}

	var (
		bestScore   float64
		bestPattern *model.CategoryPattern
		seen        = make(map[string]struct{})
	)

	for _, keyword := range queryTokens {
		candidates, lookupErr := m.repo.KeywordLookup(ctx, keyword, candidatesPerWord)
		if lookupErr != nil {
			return none, fmt.Errorf("keyword lookup failed: %w", lookupErr)
		}

		for i := range candidates {
			candidate := &candidates[i]
			key := candidate.NormalizedDescription + "\x00" + candidate.Category
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			score := jaccard(queryTokens, Tokenize(candidate.NormalizedDescription)) +
				math.Min(float64(candidate.UsageCount)*usageBonusStep, usageBonusCap)
			if score > bestScore {
				bestScore = score
				bestPattern = candidate
			}
		}
	}

	if bestPattern == nil || bestScore <= acceptThreshold {
		return none, nil
	}

	return model.MatchResult{
		Found:      true,
		Category:   bestPattern.Category,
		Confidence: math.Min(bestScore, partialCap),
		MatchType:  model.MatchPartial,
	}, nil
}

// RecordCorrection learns from a manual categorization: it creates a pattern
// for the normalized description or reinforces an existing one.
func (m *Matcher) RecordCorrection(ctx context.Context, description, category string) (*model.CategoryPattern, error) {
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	normalized := NormalizeDescription(description)
	if normalized == "" {
		return nil, fmt.Errorf("description normalizes to nothing: %q", description)
	}

	pattern, err := m.repo.Upsert(ctx, normalized, category)
	if err != nil {
		return nil, fmt.Errorf("failed to record correction: %w", err)
	}
	return pattern, nil
}

// jaccard computes intersection-over-union of the two token sets.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}

	intersection := 0
	union := len(setA)
	seenB := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seenB[t]; dup {
			continue
		}
		seenB[t] = struct{}{}
		if _, ok := setA[t]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

package model

import (
	"fmt"
	"time"
)

// CategoryPattern is a learned association between a normalized transaction
// description and a category. Created on the first manual correction and
// reinforced (usage count, last-used timestamp) on repeated ones.
type CategoryPattern struct {
	CreatedAt             time.Time
	LastUsedAt            time.Time
	NormalizedDescription string
	Category              string
	ID                    int64
	UsageCount            int
	ConfidenceSeed        float64
}

// Validate ensures the pattern has valid data.
func (p *CategoryPattern) Validate() error {
	if p.NormalizedDescription == "" {
		return fmt.Errorf("normalized description is required")
	}
	if !ValidCategory(p.Category) {
		return fmt.Errorf("unknown category %q", p.Category)
	}
	if p.UsageCount < 1 {
		return fmt.Errorf("usage count must be at least 1")
	}
	if p.ConfidenceSeed < 0 || p.ConfidenceSeed > 1 {
		return fmt.Errorf("confidence seed must be between 0 and 1")
	}
	return nil
}

// MatchType identifies how a learned match was made.
type MatchType string

// Match types returned by the learned matcher.
const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchNone    MatchType = "none"
)

// MatchResult is the outcome of querying the learned patterns for a description.
type MatchResult struct {
	Category   string
	MatchType  MatchType
	Confidence float64
	Found      bool
}

package resolver

import (
	"strings"

	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/similarity"
)

// Scorer names accepted by ScorerByName.
const (
	ScorerTokenSort = "token_sort"
	ScorerNull      = "null"
)

// Match is the best-scoring choice returned by a Scorer.
type Match struct {
	Choice string
	Index  int
	Score  int
}

// Scorer ranks candidate keys against a query.
//
// ExtractOne returns the highest-scoring choice. When several choices tie the
// earliest one wins. ok is false when the scorer cannot produce a match at
// all, either because it is unavailable or because choices is empty.
type Scorer interface {
	Name() string
	ExtractOne(query string, choices []string) (m Match, ok bool)
}

// TokenSortScorer scores with similarity.TokenSortRatio.
type TokenSortScorer struct{}

// Name implements Scorer.
func (TokenSortScorer) Name() string { return ScorerTokenSort }

// ExtractOne implements Scorer.
func (TokenSortScorer) ExtractOne(query string, choices []string) (Match, bool) {
	if len(choices) == 0 {
		return Match{}, false
	}
	best := Match{Index: -1, Score: -1}
	for i, choice := range choices {
		if score := similarity.TokenSortRatio(query, choice); score > best.Score {
			best = Match{Choice: choice, Index: i, Score: score}
		}
	}
	return best, true
}

// NullScorer is the scorer used when similarity ranking is disabled.
// It never produces a match, so resolution falls through to substring search.
type NullScorer struct{}

// Name implements Scorer.
func (NullScorer) Name() string { return ScorerNull }

// ExtractOne implements Scorer.
func (NullScorer) ExtractOne(string, []string) (Match, bool) {
	return Match{}, false
}

// ScorerByName returns the scorer registered under name.
// The empty name selects the token-sort scorer.
func ScorerByName(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScorerTokenSort:
		return TokenSortScorer{}, nil
	case ScorerNull, "none":
		return NullScorer{}, nil
	default:
		return nil, errors.NewValidationError("scorer", name, "must be one of token_sort, null")
	}
}

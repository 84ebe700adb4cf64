package relevance

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// KeywordRelevanceFilter scores content against the terms of a search query.
type KeywordRelevanceFilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordRelevanceFilter initializes the filter from a free-text query.
// Each whitespace-separated term becomes one keyword.
func NewKeywordRelevanceFilter(query string) (*KeywordRelevanceFilter, error) {
	parts := strings.Fields(query)
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("query has no usable keywords")
	}

	matcher := ahocorasick.NewStringMatcher(keywords)

	return &KeywordRelevanceFilter{
		matcher:  matcher,
		keywords: keywords,
	}, nil
}

// IsContentRelevant checks if at least one query term is in the content.
// Returns true if at least one term matches, along with a score (fraction of distinct terms found).
func (f *KeywordRelevanceFilter) IsContentRelevant(content string) (bool, float32, error) {
	if content == "" {
		return false, 0.0, nil
	}
	contentLower := strings.ToLower(content)

	matches := f.matcher.MatchThreadSafe([]byte(contentLower))
	if len(matches) == 0 {
		return false, 0.0, nil
	}

	// Count unique matches for scoring
	found := make(map[string]struct{})
	for _, idx := range matches {
		found[f.keywords[idx]] = struct{}{}
	}

	score := float32(len(found)) / float32(len(f.keywords))

	return true, score, nil
}

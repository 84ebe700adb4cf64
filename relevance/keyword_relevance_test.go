package relevance

import (
	"testing"
)

func TestKeywordRelevanceFilter(t *testing.T) {
	snippet := `Rust's async story is built around futures and executors. Tokio is the most
	widely used async runtime and pairs well with the ecosystem. Many comparisons are drawn
	with goroutines and channels when developers move between languages.`

	testCases := []struct {
		name        string
		query       string
		content     string
		expectedRel bool
	}{
		{"SingleTermMatch", "tokio", snippet, true},
		{"MultiTermMatch", "rust async runtime", snippet, true},
		{"NoMatch", "quantum chemistry", snippet, false},
		{"EmptyContent", "rust", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter, err := NewKeywordRelevanceFilter(tc.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			rel, _, err := filter.IsContentRelevant(tc.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if rel != tc.expectedRel {
				t.Errorf("expected relevance %v, got %v", tc.expectedRel, rel)
			}
		})
	}
}

func TestKeywordRelevanceFilterScore(t *testing.T) {
	filter, err := NewKeywordRelevanceFilter("apple banana cherry grape")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rel, score, err := filter.IsContentRelevant("apple pie with banana slices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rel {
		t.Fatal("expected content to be relevant")
	}
	if score != 0.5 {
		t.Errorf("expected score 0.5 (2 of 4 terms), got %v", score)
	}
}

func TestKeywordRelevanceFilterEmptyQuery(t *testing.T) {
	if _, err := NewKeywordRelevanceFilter("   "); err == nil {
		t.Fatal("expected error for query without keywords")
	}
}

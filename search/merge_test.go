package search

import (
	"reflect"
	"testing"
)

func testPriority(t *testing.T) func(string) int {
	t.Helper()
	reg, err := NewRegistry(DefaultSpecs()...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return reg.PriorityRank
}

func TestDedupeByURLFirstWins(t *testing.T) {
	items := []ResultItem{
		{URL: "https://a.com", Provider: "bing"},
		{URL: "https://a.com", Provider: "google"},
		{URL: "https://b.com", Provider: "google"},
		{URL: "", Provider: "google"},
	}

	deduped := dedupeByURL(items)
	if len(deduped) != 2 {
		t.Fatalf("expected 2 items, got %d", len(deduped))
	}
	if deduped[0].Provider != "bing" {
		t.Errorf("expected first occurrence (bing) to win, got %s", deduped[0].Provider)
	}
	if deduped[1].URL != "https://b.com" {
		t.Errorf("unexpected second item: %s", deduped[1].URL)
	}
}

func TestDedupeByURLIdempotent(t *testing.T) {
	items := []ResultItem{
		{URL: "https://a.com", Provider: "google"},
		{URL: "https://b.com", Provider: "bing"},
		{URL: "https://a.com", Provider: "reddit"},
	}

	once := dedupeByURL(items)
	twice := dedupeByURL(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedup is not idempotent: %v vs %v", once, twice)
	}
}

func TestDedupeCaseSensitiveURLs(t *testing.T) {
	// Dedup keys on the exact URL string; no canonicalization.
	items := []ResultItem{
		{URL: "https://a.com/Page"},
		{URL: "https://a.com/page"},
	}
	if got := len(dedupeByURL(items)); got != 2 {
		t.Errorf("expected case-distinct URLs to survive, got %d items", got)
	}
}

func TestRankScoreThenPriority(t *testing.T) {
	priority := testPriority(t)

	testCases := []struct {
		name  string
		items []ResultItem
		want  []string
	}{
		{
			name: "ScoreDescending",
			items: []ResultItem{
				{URL: "low", Score: 0.5, Provider: "google"},
				{URL: "high", Score: 0.9, Provider: "github"},
			},
			want: []string{"high", "low"},
		},
		{
			name: "TieBrokenByPriority",
			items: []ResultItem{
				{URL: "from-reddit", Score: 0.8, Provider: "reddit"},
				{URL: "from-google", Score: 0.8, Provider: "google"},
			},
			want: []string{"from-google", "from-reddit"},
		},
		{
			name: "TieBreakIgnoresInputOrder",
			items: []ResultItem{
				{URL: "from-bing", Score: 0.7, Provider: "bing"},
				{URL: "from-google", Score: 0.7, Provider: "google"},
				{URL: "from-unknown", Score: 0.7, Provider: "duckduckgo_related"},
			},
			want: []string{"from-google", "from-bing", "from-unknown"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rank(tc.items, priority)
			got := make([]string, len(tc.items))
			for i, item := range tc.items {
				got[i] = item.URL
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected order %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	items := make([]ResultItem, 7)
	for i := range items {
		items[i].URL = string(rune('a' + i))
	}

	testCases := []struct {
		name    string
		offset  int
		limit   int
		wantLen int
	}{
		{"FullFirstPage", 0, 5, 5},
		{"PartialLastPage", 5, 5, 2},
		{"ExactEnd", 7, 5, 0},
		{"PastEnd", 100, 5, 0},
		{"LimitLargerThanSet", 0, 50, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := paginate(items, tc.offset, tc.limit)
			if len(page) != tc.wantLen {
				t.Errorf("expected %d items, got %d", tc.wantLen, len(page))
			}
			if tc.wantLen > 0 && page[0].URL != items[tc.offset].URL {
				t.Errorf("page starts at wrong item: %s", page[0].URL)
			}
		})
	}
}

func TestFilterByType(t *testing.T) {
	items := []ResultItem{
		{URL: "a", ResultType: ResultTypeWeb},
		{URL: "b", ResultType: ResultTypeCode},
		{URL: "c", ResultType: ResultTypeForum},
	}

	filtered := filterByType(items, []ResultType{ResultTypeWeb, ResultTypeForum})
	if len(filtered) != 2 {
		t.Fatalf("expected 2 items, got %d", len(filtered))
	}
	if filtered[0].URL != "a" || filtered[1].URL != "c" {
		t.Errorf("unexpected filter output: %v", filtered)
	}

	if got := filterByType(items, nil); len(got) != 3 {
		t.Errorf("empty filter must keep everything, got %d", len(got))
	}
}

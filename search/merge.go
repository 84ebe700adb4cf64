package search

import (
	"sort"
)

// dedupeByURL keeps the first occurrence of every exact URL string, in input
// order. Items without a URL are dropped. Because input is ordered by
// fan-in completion, the provider whose call finished first wins a collision.
func dedupeByURL(items []ResultItem) []ResultItem {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]ResultItem, 0, len(items))
	for _, item := range items {
		if item.URL == "" {
			continue
		}
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}

// rank sorts items by descending score, breaking ties with the fixed
// provider-priority rank (lower rank first). The sort is stable so equal
// keys keep their arrival order and output stays deterministic.
func rank(items []ResultItem, priority func(provider string) int) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return priority(items[i].Provider) < priority(items[j].Provider)
	})
}

// filterByType keeps only items whose result type is in the requested set.
// An empty set keeps everything.
func filterByType(items []ResultItem, types []ResultType) []ResultItem {
	if len(types) == 0 {
		return items
	}
	wanted := make(map[ResultType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}
	filtered := make([]ResultItem, 0, len(items))
	for _, item := range items {
		if _, ok := wanted[item.ResultType]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// paginate slices the [offset, offset+limit) window. An offset past the end
// yields an empty page, never an error.
func paginate(items []ResultItem, offset, limit int) []ResultItem {
	if offset >= len(items) {
		return []ResultItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

package search

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// KeywordExtractor extracts the significant terms of a search query.
type KeywordExtractor interface {
	ExtractKeywords(query string) ([]string, error)
}

// SnowballKeywordExtractor implements KeywordExtractor using stop-word
// removal and snowball stemming to collapse inflected duplicates.
type SnowballKeywordExtractor struct {
	stopWords   map[string]bool
	punctuation *regexp.Regexp
}

// NewSnowballKeywordExtractor creates a keyword extractor for English queries.
func NewSnowballKeywordExtractor() *SnowballKeywordExtractor {
	stopWords := map[string]bool{
		"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
		"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
		"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
		"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
		"with": true, "would": true, "could": true, "should": true, "may": true,
		"might": true, "can": true, "must": true, "shall": true, "do": true,
		"does": true, "did": true, "have": true, "had": true, "this": true,
		"these": true, "they": true, "them": true, "their": true, "how": true,
		"what": true, "when": true, "where": true, "why": true, "who": true,
	}

	return &SnowballKeywordExtractor{
		stopWords:   stopWords,
		punctuation: regexp.MustCompile(`[^\w\s]`),
	}
}

// ExtractKeywords returns the deduplicated significant terms of a query, in
// query order. Dedup happens on the stemmed form; the original surface form
// of the first occurrence is kept.
func (e *SnowballKeywordExtractor) ExtractKeywords(query string) ([]string, error) {
	query = strings.ToLower(query)
	query = e.punctuation.ReplaceAllString(query, " ")

	var keywords []string
	seen := make(map[string]bool)

	for _, word := range strings.Fields(query) {
		if len(word) < 2 {
			continue
		}
		if e.stopWords[word] {
			continue
		}
		stem := stemWord(word)
		if seen[stem] {
			continue
		}
		seen[stem] = true
		keywords = append(keywords, word)
	}

	return keywords, nil
}

func stemWord(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stem
}

// Suggester derives alternative queries from a partial query's keywords.
type Suggester struct {
	extractor KeywordExtractor
}

// NewSuggester creates a suggester backed by the given extractor.
func NewSuggester(extractor KeywordExtractor) *Suggester {
	return &Suggester{extractor: extractor}
}

// Suggest returns up to limit query suggestions: the condensed keyword form
// first, then each individual keyword as a narrower query.
func (s *Suggester) Suggest(query string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	keywords, err := s.extractor.ExtractKeywords(query)
	if err != nil || len(keywords) == 0 {
		return nil
	}

	suggestions := make([]string, 0, limit)
	seen := map[string]bool{query: true}
	add := func(candidate string) {
		if len(suggestions) >= limit || seen[candidate] {
			return
		}
		seen[candidate] = true
		suggestions = append(suggestions, candidate)
	}

	if len(keywords) > 1 {
		add(strings.Join(keywords, " "))
	}
	for _, kw := range keywords {
		add(kw)
	}
	return suggestions
}

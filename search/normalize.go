package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// normalized is what a normalizer produces from one raw provider payload:
// the mapped items plus the provider-reported total.
type normalized struct {
	Items        []ResultItem
	TotalResults int
}

// normalize maps a raw payload into the common result schema. Dispatch is a
// closed switch over Kind; a kind without a case lands on the
// unsupported-provider fallback.
func (k Kind) normalize(raw []byte, provider, query string) (normalized, error) {
	switch k {
	case KindGoogle:
		return normalizeGoogle(raw, provider)
	case KindBing:
		return normalizeBing(raw, provider)
	case KindDuckDuckGo:
		return normalizeDuckDuckGo(raw, provider)
	case KindReddit:
		return normalizeReddit(raw, provider)
	case KindGitHub:
		return normalizeGitHub(raw, provider)
	default:
		return normalized{}, &UnsupportedProviderError{Provider: provider}
	}
}

// stripHTML reduces an HTML fragment to its text content. Some providers
// embed markup in snippets (DuckDuckGo wraps results in anchors).
func stripHTML(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}

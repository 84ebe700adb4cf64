package search

import (
	"fmt"
)

// Kind selects the normalizer for a provider. The set is closed: adding a
// provider shape means adding a Kind and its normalize function.
type Kind int

const (
	KindUnsupported Kind = iota
	KindGoogle
	KindBing
	KindDuckDuckGo
	KindReddit
	KindGitHub
)

// Spec is the static description of one upstream search provider.
// Param and header values are templates; see template.go for placeholders.
type Spec struct {
	ID          string
	DisplayName string
	Endpoint    string
	Params      map[string]string
	Headers     map[string]string
	Kind        Kind
}

// SupportsSafeSearch reports whether the provider accepts a safe-search parameter.
func (s Spec) SupportsSafeSearch() bool { return s.usesPlaceholder("safe_search") }

// SupportsRegion reports whether the provider accepts a region parameter.
func (s Spec) SupportsRegion() bool { return s.usesPlaceholder("region") }

// SupportsLanguage reports whether the provider accepts a language parameter.
func (s Spec) SupportsLanguage() bool { return s.usesPlaceholder("language") }

func (s Spec) usesPlaceholder(name string) bool {
	for _, tmpl := range s.Params {
		if containsPlaceholder(tmpl, name) {
			return true
		}
	}
	return false
}

// Registry is the immutable catalog of known providers. Registration order
// doubles as the provider-priority ranking used to break score ties.
type Registry struct {
	order []string
	specs map[string]Spec
}

// NewRegistry builds a registry from the given specs. IDs must be unique.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(specs)),
		specs: make(map[string]Spec, len(specs)),
	}
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("provider spec has empty id")
		}
		if _, ok := r.specs[spec.ID]; ok {
			return nil, fmt.Errorf("duplicate provider id: %s", spec.ID)
		}
		r.order = append(r.order, spec.ID)
		r.specs[spec.ID] = spec
	}
	return r, nil
}

// Resolve returns the spec for the given provider id.
func (r *Registry) Resolve(id string) (Spec, bool) {
	spec, ok := r.specs[id]
	return spec, ok
}

// All returns every registered spec in registration order.
func (r *Registry) All() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.specs[id])
	}
	return out
}

// IDs returns every registered provider id in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// PriorityRank returns the fixed tie-break rank for a provider id, lower is
// better. Ids not in the registry (including synthetic ones like
// "duckduckgo_related") rank after every registered provider.
func (r *Registry) PriorityRank(id string) int {
	for i, known := range r.order {
		if known == id {
			return i + 1
		}
	}
	return len(r.order) + 1
}

// DefaultSpecs returns the built-in provider catalog. The endpoints and
// parameter templates target each provider's public JSON search API.
// Wikipedia is registered without a normalizer and resolves to the
// unsupported-provider path until one is written.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			ID:          "google",
			DisplayName: "Google",
			Endpoint:    "https://www.googleapis.com/customsearch/v1",
			Params: map[string]string{
				"key":   "{api_key}",
				"cx":    "{search_engine_id}",
				"q":     "{query}",
				"num":   "{limit}",
				"start": "{offset}",
				"safe":  "{safe_search}",
				"hl":    "{language}",
				"gl":    "{region}",
			},
			Headers: map[string]string{
				"Accept": "application/json",
			},
			Kind: KindGoogle,
		},
		{
			ID:          "bing",
			DisplayName: "Bing",
			Endpoint:    "https://api.bing.microsoft.com/v7.0/search",
			Params: map[string]string{
				"q":          "{query}",
				"count":      "{limit}",
				"offset":     "{offset}",
				"safeSearch": "{safe_search}",
				"mkt":        "{region}-{language}",
			},
			Headers: map[string]string{
				"Ocp-Apim-Subscription-Key": "{api_key}",
				"Accept":                    "application/json",
			},
			Kind: KindBing,
		},
		{
			ID:          "duckduckgo",
			DisplayName: "DuckDuckGo",
			Endpoint:    "https://api.duckduckgo.com/",
			Params: map[string]string{
				"q":           "{query}",
				"format":      "json",
				"no_html":     "1",
				"no_redirect": "1",
				"kp":          "{safe_search}",
				"kl":          "{language}",
				"region":      "{region}",
			},
			Headers: map[string]string{
				"Accept": "application/json",
			},
			Kind: KindDuckDuckGo,
		},
		{
			ID:          "reddit",
			DisplayName: "Reddit",
			Endpoint:    "https://www.reddit.com/search.json",
			Params: map[string]string{
				"q":           "{query}",
				"limit":       "{limit}",
				"after":       "{offset}",
				"restrict_sr": "0",
				"sort":        "relevance",
			},
			Headers: map[string]string{
				"User-Agent": "{user_agent}",
			},
			Kind: KindReddit,
		},
		{
			ID:          "github",
			DisplayName: "GitHub",
			Endpoint:    "https://api.github.com/search/repositories",
			Params: map[string]string{
				"q":        "{query}",
				"per_page": "{limit}",
				"page":     "{page}",
				"sort":     "stars",
				"order":    "desc",
			},
			Headers: map[string]string{
				"Accept": "application/vnd.github.v3+json",
			},
			Kind: KindGitHub,
		},
		{
			ID:          "wikipedia",
			DisplayName: "Wikipedia",
			Endpoint:    "https://en.wikipedia.org/w/api.php",
			Params: map[string]string{
				"action":   "query",
				"list":     "search",
				"srsearch": "{query}",
				"format":   "json",
			},
			Kind: KindUnsupported,
		},
	}
}

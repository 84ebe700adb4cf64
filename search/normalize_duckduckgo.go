package search

import (
	"encoding/json"
	"fmt"
)

type duckDuckGoResponse struct {
	Results []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Result   string `json:"Result"`
		Icon     struct {
			URL string `json:"URL"`
		} `json:"Icon"`
	} `json:"Results"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Icon     struct {
			URL string `json:"URL"`
		} `json:"Icon"`
	} `json:"RelatedTopics"`
}

// normalizeDuckDuckGo maps a DuckDuckGo Instant Answer payload. Direct
// results score from a 0.9 base (0.01 penalty per rank); related topics are
// credited to a "<provider>_related" id and score from 0.8 with a smaller
// 0.005 penalty. DuckDuckGo reports no total, so the item count stands in.
func normalizeDuckDuckGo(raw []byte, provider string) (normalized, error) {
	var resp duckDuckGoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return normalized{}, fmt.Errorf("failed to decode %s response: %w", provider, err)
	}

	items := make([]ResultItem, 0, len(resp.Results)+len(resp.RelatedTopics))
	for i, entry := range resp.Results {
		metadata := map[string]string{}
		if entry.Icon.URL != "" {
			metadata["icon"] = entry.Icon.URL
		}
		items = append(items, ResultItem{
			Title:      entry.Text,
			URL:        entry.FirstURL,
			Snippet:    stripHTML(entry.Result),
			Provider:   provider,
			ResultType: ResultTypeWeb,
			Score:      0.9 - float64(i)*0.01,
			Metadata:   metadata,
		})
	}

	for i, topic := range resp.RelatedTopics {
		if topic.FirstURL == "" {
			continue
		}
		metadata := map[string]string{}
		if topic.Icon.URL != "" {
			metadata["icon"] = topic.Icon.URL
		}
		items = append(items, ResultItem{
			Title:      topic.Text,
			URL:        topic.FirstURL,
			Snippet:    topic.Text,
			Provider:   provider + "_related",
			ResultType: ResultTypeWeb,
			Score:      0.8 - float64(i)*0.005,
			Metadata:   metadata,
		})
	}

	return normalized{Items: items, TotalResults: len(items)}, nil
}

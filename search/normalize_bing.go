package search

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type bingResponse struct {
	WebPages struct {
		TotalEstimatedMatches int `json:"totalEstimatedMatches"`
		Value                 []struct {
			Name           string `json:"name"`
			URL            string `json:"url"`
			Snippet        string `json:"snippet"`
			DisplayURL     string `json:"displayUrl"`
			DatePublished  string `json:"datePublished"`
			IsNavigational bool   `json:"isNavigational"`
			ThumbnailURL   string `json:"thumbnailUrl"`
		} `json:"value"`
	} `json:"webPages"`
}

// normalizeBing maps a Bing Web Search API payload.
// Results score from a 1.0 base with a 0.01 penalty per rank.
func normalizeBing(raw []byte, provider string) (normalized, error) {
	var resp bingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return normalized{}, fmt.Errorf("failed to decode %s response: %w", provider, err)
	}

	items := make([]ResultItem, 0, len(resp.WebPages.Value))
	for i, entry := range resp.WebPages.Value {
		metadata := map[string]string{
			"is_navigational": strconv.FormatBool(entry.IsNavigational),
		}
		if entry.DisplayURL != "" {
			metadata["display_url"] = entry.DisplayURL
		}
		if entry.DatePublished != "" {
			metadata["date_published"] = entry.DatePublished
		}

		items = append(items, ResultItem{
			Title:      entry.Name,
			URL:        entry.URL,
			Snippet:    entry.Snippet,
			Provider:   provider,
			ResultType: ResultTypeWeb,
			Score:      1.0 - float64(i)*0.01,
			ImageURL:   entry.ThumbnailURL,
			Metadata:   metadata,
		})
	}

	return normalized{Items: items, TotalResults: resp.WebPages.TotalEstimatedMatches}, nil
}

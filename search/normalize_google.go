package search

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type googleResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		DisplayLink string `json:"displayLink"`
		Mime        string `json:"mime"`
		FileFormat  string `json:"fileFormat"`
		Pagemap     struct {
			CSEImage []struct {
				Src string `json:"src"`
			} `json:"cse_image"`
		} `json:"pagemap"`
	} `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

// normalizeGoogle maps a Google Custom Search JSON API payload.
// Results score from a 1.0 base with a 0.01 penalty per rank.
func normalizeGoogle(raw []byte, provider string) (normalized, error) {
	var resp googleResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return normalized{}, fmt.Errorf("failed to decode %s response: %w", provider, err)
	}

	items := make([]ResultItem, 0, len(resp.Items))
	for i, entry := range resp.Items {
		metadata := map[string]string{}
		if entry.DisplayLink != "" {
			metadata["display_link"] = entry.DisplayLink
		}
		if entry.Mime != "" {
			metadata["mime"] = entry.Mime
		}
		if entry.FileFormat != "" {
			metadata["file_format"] = entry.FileFormat
		}

		item := ResultItem{
			Title:      entry.Title,
			URL:        entry.Link,
			Snippet:    entry.Snippet,
			Provider:   provider,
			ResultType: ResultTypeWeb,
			Score:      1.0 - float64(i)*0.01,
			Metadata:   metadata,
		}
		if len(entry.Pagemap.CSEImage) > 0 {
			item.ImageURL = entry.Pagemap.CSEImage[0].Src
		}
		items = append(items, item)
	}

	total, _ := strconv.Atoi(resp.SearchInformation.TotalResults)
	return normalized{Items: items, TotalResults: total}, nil
}

package search

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type redditResponse struct {
	Data struct {
		Dist     int `json:"dist"`
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				Title       string  `json:"title"`
				URL         string  `json:"url"`
				Permalink   string  `json:"permalink"`
				Selftext    string  `json:"selftext"`
				Subreddit   string  `json:"subreddit"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Author      string  `json:"author"`
				IsSelf      bool    `json:"is_self"`
				Domain      string  `json:"domain"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

const redditSnippetLimit = 200

// normalizeReddit maps a Reddit search payload. Only t3 (link) posts with a
// URL are kept; ads and other listing noise are skipped. Posts score from a
// 0.8 base with a 0.01 penalty per listing position.
func normalizeReddit(raw []byte, provider string) (normalized, error) {
	var resp redditResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return normalized{}, fmt.Errorf("failed to decode %s response: %w", provider, err)
	}

	items := make([]ResultItem, 0, len(resp.Data.Children))
	for i, post := range resp.Data.Children {
		if post.Kind != "t3" || post.Data.URL == "" {
			continue
		}

		snippet := ""
		if post.Data.Selftext != "" {
			snippet = truncateRunes(post.Data.Selftext, redditSnippetLimit) + "..."
		}

		items = append(items, ResultItem{
			Title:      post.Data.Title,
			URL:        "https://reddit.com" + post.Data.Permalink,
			Snippet:    snippet,
			Provider:   provider,
			ResultType: ResultTypeForum,
			Score:      0.8 - float64(i)*0.01,
			Metadata: map[string]string{
				"subreddit":    post.Data.Subreddit,
				"score":        strconv.Itoa(post.Data.Score),
				"num_comments": strconv.Itoa(post.Data.NumComments),
				"created_utc":  strconv.FormatFloat(post.Data.CreatedUTC, 'f', -1, 64),
				"author":       post.Data.Author,
				"is_self":      strconv.FormatBool(post.Data.IsSelf),
				"domain":       post.Data.Domain,
			},
		})
	}

	return normalized{Items: items, TotalResults: resp.Data.Dist}, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

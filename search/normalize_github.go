package search

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type gitHubResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		FullName        string `json:"full_name"`
		HTMLURL         string `json:"html_url"`
		Description     string `json:"description"`
		Language        string `json:"language"`
		StargazersCount int    `json:"stargazers_count"`
		ForksCount      int    `json:"forks_count"`
		OpenIssuesCount int    `json:"open_issues_count"`
		CreatedAt       string `json:"created_at"`
		UpdatedAt       string `json:"updated_at"`
		Owner           struct {
			Login string `json:"login"`
		} `json:"owner"`
		License *struct {
			Name string `json:"name"`
		} `json:"license"`
	} `json:"items"`
}

// normalizeGitHub maps a GitHub repository search payload.
// Repositories score from a 0.8 base with a 0.01 penalty per rank.
func normalizeGitHub(raw []byte, provider string) (normalized, error) {
	var resp gitHubResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return normalized{}, fmt.Errorf("failed to decode %s response: %w", provider, err)
	}

	items := make([]ResultItem, 0, len(resp.Items))
	for i, repo := range resp.Items {
		metadata := map[string]string{
			"stars":       strconv.Itoa(repo.StargazersCount),
			"forks":       strconv.Itoa(repo.ForksCount),
			"open_issues": strconv.Itoa(repo.OpenIssuesCount),
			"owner":       repo.Owner.Login,
		}
		if repo.Language != "" {
			metadata["language"] = repo.Language
		}
		if repo.CreatedAt != "" {
			metadata["created_at"] = repo.CreatedAt
		}
		if repo.UpdatedAt != "" {
			metadata["updated_at"] = repo.UpdatedAt
		}
		if repo.License != nil {
			metadata["license"] = repo.License.Name
		}

		items = append(items, ResultItem{
			Title:      repo.FullName,
			URL:        repo.HTMLURL,
			Snippet:    repo.Description,
			Provider:   provider,
			ResultType: ResultTypeCode,
			Score:      0.8 - float64(i)*0.01,
			Metadata:   metadata,
		})
	}

	return normalized{Items: items, TotalResults: resp.TotalCount}, nil
}

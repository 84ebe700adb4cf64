package search

// ResultType classifies what kind of content a result points at.
type ResultType string

const (
	ResultTypeWeb   ResultType = "web"
	ResultTypeForum ResultType = "forum"
	ResultTypeCode  ResultType = "code"
	ResultTypeImage ResultType = "image"
	ResultTypeVideo ResultType = "video"
	ResultTypeNews  ResultType = "news"
	ResultTypeOther ResultType = "other"
)

// Request describes one aggregation call.
type Request struct {
	Query       string       `json:"query"`
	Providers   []string     `json:"providers,omitempty"`
	Limit       int          `json:"limit,omitempty"`
	Offset      int          `json:"offset,omitempty"`
	SafeSearch  bool         `json:"safe_search,omitempty"`
	Region      string       `json:"region,omitempty"`
	Language    string       `json:"language,omitempty"`
	ResultTypes []ResultType `json:"result_types,omitempty"`
}

// ResultItem is the common normalized unit every provider response is mapped into.
type ResultItem struct {
	Title      string            `json:"title"`
	URL        string            `json:"url"`
	Snippet    string            `json:"snippet,omitempty"`
	Provider   string            `json:"provider"`
	ResultType ResultType        `json:"result_type"`
	Score      float64           `json:"score"`
	ImageURL   string            `json:"image_url,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// RawResult is the outcome of a single dispatched provider call.
// Seq records fan-in completion order, which decides who wins a URL collision.
type RawResult struct {
	Provider string
	Body     []byte
	Err      error
	Seq      int
}

// Succeeded reports whether the provider call completed without error.
func (r RawResult) Succeeded() bool {
	return r.Err == nil
}

// Response is the merged, ranked and paginated output of one aggregation call.
type Response struct {
	RequestID       string            `json:"request_id"`
	Query           string            `json:"query"`
	TotalResults    int               `json:"total_results"`
	Page            int               `json:"page"`
	PageSize        int               `json:"page_size"`
	Results         []ResultItem      `json:"results"`
	ProvidersUsed   []string          `json:"providers_used"`
	ProviderErrors  map[string]string `json:"provider_errors,omitempty"`
	ExecutionTimeMs int64             `json:"execution_time_ms"`
	Cached          bool              `json:"cached,omitempty"`
}

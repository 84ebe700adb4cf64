package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"metasearch/relevance"
)

const (
	maxQueryLength = 500
	defaultLimit   = 10
	maxLimit       = 100
)

// ResponseCache stores serialized aggregated responses by fingerprint.
// Implementations decide expiry; a nil cache disables caching entirely.
type ResponseCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Aggregator fans a search request out to the requested providers, merges
// the normalized results and returns one paginated response. Construct one
// per process and inject it where needed.
type Aggregator struct {
	registry   *Registry
	dispatcher *Dispatcher
	cache      ResponseCache
	logger     *zap.Logger
}

// NewAggregator creates an aggregator. Cache may be nil.
func NewAggregator(registry *Registry, dispatcher *Dispatcher, cache ResponseCache, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		registry:   registry,
		dispatcher: dispatcher,
		cache:      cache,
		logger:     logger,
	}
}

// Aggregate runs one full search cycle: validate, fan out, normalize, merge,
// rank, paginate. Per-provider failures land in ProviderErrors and never
// fail the call; only validation and full cancellation are hard errors.
func (a *Aggregator) Aggregate(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	specs, err := a.validate(req)
	if err != nil {
		return nil, err
	}
	providersUsed := make([]string, len(specs))
	for i, spec := range specs {
		providersUsed[i] = spec.ID
	}

	key := cacheKey(req, providersUsed)
	if cached, ok := a.cacheGet(key); ok {
		cached.RequestID = requestID
		cached.Cached = true
		cached.ExecutionTimeMs = time.Since(start).Milliseconds()
		a.logger.Info("search served from cache",
			zap.String("request_id", requestID),
			zap.String("query", req.Query))
		return cached, nil
	}

	raws := a.dispatcher.Dispatch(ctx, req, specs)

	// Normalize in fan-in completion order; it decides URL-collision winners.
	byCompletion := make([]RawResult, len(raws))
	copy(byCompletion, raws)
	sort.SliceStable(byCompletion, func(i, j int) bool {
		return byCompletion[i].Seq < byCompletion[j].Seq
	})

	providerErrors := make(map[string]string)
	var pool []ResultItem
	succeeded := 0
	for _, raw := range byCompletion {
		if raw.Err != nil {
			providerErrors[raw.Provider] = raw.Err.Error()
			continue
		}
		spec, _ := a.registry.Resolve(raw.Provider)
		norm, err := spec.Kind.normalize(raw.Body, raw.Provider, req.Query)
		if err != nil {
			providerErrors[raw.Provider] = err.Error()
			continue
		}
		succeeded++
		pool = append(pool, norm.Items...)
	}

	if succeeded == 0 && ctx.Err() != nil {
		return nil, &CancellationError{Err: ctx.Err()}
	}

	merged := dedupeByURL(pool)
	merged = filterByType(merged, req.ResultTypes)
	rank(merged, a.registry.PriorityRank)
	annotateKeywordScores(req.Query, merged)

	resp := &Response{
		RequestID:       requestID,
		Query:           req.Query,
		TotalResults:    len(merged),
		Page:            req.Offset/req.Limit + 1,
		PageSize:        req.Limit,
		Results:         paginate(merged, req.Offset, req.Limit),
		ProvidersUsed:   providersUsed,
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}
	if len(providerErrors) > 0 {
		resp.ProviderErrors = providerErrors
	}

	a.cachePut(key, resp)

	a.logger.Info("search completed",
		zap.String("request_id", requestID),
		zap.String("query", req.Query),
		zap.Int("total_results", resp.TotalResults),
		zap.Int("providers", len(providersUsed)),
		zap.Int("provider_errors", len(providerErrors)),
		zap.Int64("duration_ms", resp.ExecutionTimeMs))

	return resp, nil
}

// validate normalizes the request in place and resolves the provider specs
// to dispatch. Unknown provider ids are filtered out; a request that names
// zero known providers is rejected before any call is made.
func (a *Aggregator) validate(req *Request) ([]Spec, error) {
	length := utf8.RuneCountInString(req.Query)
	if length == 0 {
		return nil, &ValidationError{Reason: "query must not be empty"}
	}
	if length > maxQueryLength {
		return nil, &ValidationError{Reason: "query exceeds 500 characters"}
	}
	if req.Limit < 0 {
		return nil, &ValidationError{Reason: "limit must not be negative"}
	}
	if req.Limit > maxLimit {
		return nil, &ValidationError{Reason: "limit exceeds 100"}
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}
	if req.Offset < 0 {
		return nil, &ValidationError{Reason: "offset must not be negative"}
	}

	requested := req.Providers
	if len(requested) == 0 {
		requested = a.registry.IDs()
	}
	specs := make([]Spec, 0, len(requested))
	for _, id := range requested {
		if spec, ok := a.registry.Resolve(id); ok {
			specs = append(specs, spec)
		}
	}
	if len(specs) == 0 {
		return nil, &ValidationError{Reason: "no valid search providers specified"}
	}
	return specs, nil
}

// annotateKeywordScores attaches the fraction of query keywords found in
// each item's title and snippet. Informational only; ranking never reads it.
func annotateKeywordScores(query string, items []ResultItem) {
	filter, err := relevance.NewKeywordRelevanceFilter(query)
	if err != nil {
		return
	}
	for i := range items {
		_, score, err := filter.IsContentRelevant(items[i].Title + " " + items[i].Snippet)
		if err != nil {
			continue
		}
		if items[i].Metadata == nil {
			items[i].Metadata = map[string]string{}
		}
		items[i].Metadata["keyword_score"] = strconv.FormatFloat(float64(score), 'f', 2, 32)
	}
}

func cacheKey(req *Request, providers []string) string {
	types := make([]string, len(req.ResultTypes))
	for i, t := range req.ResultTypes {
		types[i] = string(t)
	}
	parts := []string{
		req.Query,
		strings.Join(providers, ","),
		strconv.Itoa(req.Limit),
		strconv.Itoa(req.Offset),
		strconv.FormatBool(req.SafeSearch),
		req.Region,
		req.Language,
		strings.Join(types, ","),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func (a *Aggregator) cacheGet(key string) (*Response, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, ok, err := a.cache.Get(key)
	if err != nil {
		a.logger.Warn("cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		a.logger.Warn("cache entry decode failed", zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (a *Aggregator) cachePut(key string, resp *Response) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := a.cache.Put(key, data); err != nil {
		a.logger.Warn("cache write failed", zap.Error(err))
	}
}

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultCallTimeout is the per-provider call ceiling.
const DefaultCallTimeout = 10 * time.Second

const defaultUserAgent = "Metasearch/1.0"

// CredentialSource supplies provider credentials at dispatch time.
// Implementations must never log or persist the values they return.
type CredentialSource interface {
	APIKey(provider string) string
	SearchEngineID(provider string) string
}

// Dispatcher fans one request out to a set of providers concurrently.
type Dispatcher struct {
	client    *http.Client
	gate      Gate
	creds     CredentialSource
	logger    *zap.Logger
	timeout   time.Duration
	userAgent string
}

// NewDispatcher creates a dispatcher. A zero timeout falls back to
// DefaultCallTimeout; a nil gate falls back to NoopGate.
func NewDispatcher(client *http.Client, gate Gate, creds CredentialSource, logger *zap.Logger, timeout time.Duration) *Dispatcher {
	if gate == nil {
		gate = NoopGate{}
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Dispatcher{
		client:    client,
		gate:      gate,
		creds:     creds,
		logger:    logger,
		timeout:   timeout,
		userAgent: defaultUserAgent,
	}
}

// Dispatch issues one call per spec in parallel and waits for all of them to
// settle. The returned slice has the same length and order as specs; Seq on
// each entry records completion order across the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request, specs []Spec) []RawResult {
	results := make([]RawResult, len(specs))
	var seq atomic.Int64
	var wg sync.WaitGroup

	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec Spec) {
			defer wg.Done()
			body, err := d.call(ctx, req, spec)
			results[i] = RawResult{
				Provider: spec.ID,
				Body:     body,
				Err:      err,
				Seq:      int(seq.Add(1)),
			}
			if err != nil {
				d.logger.Warn("provider call failed",
					zap.String("provider", spec.ID),
					zap.Error(err))
			}
		}(i, spec)
	}
	wg.Wait()

	return results
}

func (d *Dispatcher) call(ctx context.Context, req *Request, spec Spec) ([]byte, error) {
	// No normalizer, no point burning an upstream call. The fallback
	// normalizer turns the empty body into an unsupported-provider error.
	if spec.Kind == KindUnsupported {
		return nil, nil
	}

	if err := d.gate.Wait(ctx, spec.ID); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	reqURL, err := d.buildURL(req, spec)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	vars := d.templateVars(req, spec)
	for name, tmpl := range spec.Headers {
		value, _ := expandTemplate(tmpl, vars, PassThrough)
		httpReq.Header.Set(name, value)
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Provider: spec.ID}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Provider: spec.ID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{Provider: spec.ID, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Provider: spec.ID}
		}
		return nil, &NetworkError{Provider: spec.ID, Err: err}
	}
	return body, nil
}

// buildURL expands the provider's parameter templates into the final query
// string. Template values are already query-encoded, so fragments are joined
// as-is instead of being re-encoded through url.Values.
func (d *Dispatcher) buildURL(req *Request, spec Spec) (string, error) {
	base, err := url.Parse(spec.Endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to parse endpoint for %s: %w", spec.ID, err)
	}

	vars := d.templateVars(req, spec)
	names := make([]string, 0, len(spec.Params))
	for name := range spec.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		value, _ := expandTemplate(spec.Params[name], vars, PassThrough)
		pairs = append(pairs, name+"="+value)
	}
	base.RawQuery = strings.Join(pairs, "&")

	return base.String(), nil
}

func (d *Dispatcher) templateVars(req *Request, spec Spec) map[string]string {
	page := 1
	if req.Limit > 0 {
		page = req.Offset/req.Limit + 1
	}
	safeSearch := "off"
	if req.SafeSearch {
		safeSearch = "moderate"
	}

	vars := map[string]string{
		"query":       url.QueryEscape(req.Query),
		"limit":       strconv.Itoa(req.Limit),
		"offset":      strconv.Itoa(req.Offset),
		"page":        strconv.Itoa(page),
		"safe_search": safeSearch,
		"region":      url.QueryEscape(req.Region),
		"language":    url.QueryEscape(req.Language),
		"user_agent":  d.userAgent,
	}

	// Missing credentials stay out of the map so the placeholder passes
	// through literally and only that provider degrades.
	if d.creds != nil {
		if key := d.creds.APIKey(spec.ID); key != "" {
			vars["api_key"] = url.QueryEscape(key)
		}
		if id := d.creds.SearchEngineID(spec.ID); id != "" {
			vars["search_engine_id"] = url.QueryEscape(id)
		}
	}
	return vars
}

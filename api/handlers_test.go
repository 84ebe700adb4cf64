package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"metasearch/search"
)

type fakeService struct {
	gotReq *search.Request
	resp   *search.Response
	err    error
}

func (f *fakeService) Aggregate(ctx context.Context, req *search.Request) (*search.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

func newTestHandlers(t *testing.T, service SearchService) *Handlers {
	t.Helper()
	reg, err := search.NewRegistry(search.DefaultSpecs()...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	suggester := search.NewSuggester(search.NewSnowballKeywordExtractor())
	return NewHandlers(service, reg, suggester, zap.NewNop())
}

func TestSearchHandler(t *testing.T) {
	service := &fakeService{resp: &search.Response{
		RequestID:    "abc",
		Query:        "rust",
		TotalResults: 1,
		Results:      []search.ResultItem{{Title: "t", URL: "https://a.com"}},
	}}
	h := newTestHandlers(t, service)

	body := `{"query": "rust", "providers": ["google"], "limit": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if service.gotReq.Query != "rust" || service.gotReq.Limit != 5 {
		t.Errorf("request not decoded: %+v", service.gotReq)
	}

	var resp search.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RequestID != "abc" || resp.TotalResults != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSearchHandlerErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Validation", &search.ValidationError{Reason: "query must not be empty"}, http.StatusBadRequest},
		{"Cancellation", &search.CancellationError{Err: context.Canceled}, http.StatusServiceUnavailable},
		{"Internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers(t, &fakeService{err: tc.err})
			req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "x"}`))
			rec := httptest.NewRecorder()
			h.SearchHandler(rec, req)
			if rec.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestSearchHandlerRejectsBadInput(t *testing.T) {
	h := newTestHandlers(t, &fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	h.SearchHandler(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{broken"))
	rec = httptest.NewRecorder()
	h.SearchHandler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestProvidersHandler(t *testing.T) {
	h := newTestHandlers(t, &fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
	rec := httptest.NewRecorder()
	h.ProvidersHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var infos []ProviderInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(infos) != 6 {
		t.Fatalf("expected 6 providers, got %d", len(infos))
	}
	if infos[0].ID != "google" || !infos[0].SupportsSafeSearch {
		t.Errorf("unexpected first provider: %+v", infos[0])
	}
}

func TestSuggestionsHandler(t *testing.T) {
	h := newTestHandlers(t, &fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=how+to+learn+rust", nil)
	rec := httptest.NewRecorder()
	h.SuggestionsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var suggestions []string
	if err := json.Unmarshal(rec.Body.Bytes(), &suggestions); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(suggestions) == 0 || suggestions[0] != "learn rust" {
		t.Errorf("unexpected suggestions: %v", suggestions)
	}
}

func TestSuggestionsHandlerValidation(t *testing.T) {
	h := newTestHandlers(t, &fakeService{})

	testCases := []struct {
		name   string
		target string
		want   int
	}{
		{"MissingQuery", "/api/search/suggestions", http.StatusBadRequest},
		{"LimitTooLarge", "/api/search/suggestions?q=rust&limit=21", http.StatusBadRequest},
		{"LimitNotANumber", "/api/search/suggestions?q=rust&limit=abc", http.StatusBadRequest},
		{"ValidLimit", "/api/search/suggestions?q=rust+async&limit=3", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			rec := httptest.NewRecorder()
			h.SuggestionsHandler(rec, req)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestSuggestionsHandlerEmptyResultIsJSONArray(t *testing.T) {
	h := newTestHandlers(t, &fakeService{})

	// All stop words, so no suggestions; the body must still be [].
	req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=how+to", nil)
	rec := httptest.NewRecorder()
	h.SuggestionsHandler(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %q", got)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"metasearch/search"
)

// SearchService is the aggregation engine the search handler calls into.
type SearchService interface {
	Aggregate(ctx context.Context, req *search.Request) (*search.Response, error)
}

// ProviderInfo describes one provider's capabilities for the catalog endpoint.
type ProviderInfo struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	SupportsSafeSearch bool   `json:"supports_safe_search"`
	SupportsRegion     bool   `json:"supports_region"`
	SupportsLanguage   bool   `json:"supports_language"`
}

// Handlers bundles the HTTP handlers with their dependencies.
type Handlers struct {
	service   SearchService
	registry  *search.Registry
	suggester *search.Suggester
	logger    *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(service SearchService, registry *search.Registry, suggester *search.Suggester, logger *zap.Logger) *Handlers {
	return &Handlers{
		service:   service,
		registry:  registry,
		suggester: suggester,
		logger:    logger,
	}
}

// SearchHandler runs one aggregated search.
func (h *Handlers) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	resp, err := h.service.Aggregate(r.Context(), &req)
	if err != nil {
		var validationErr *search.ValidationError
		var cancelErr *search.CancellationError
		switch {
		case errors.As(err, &validationErr):
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
		case errors.As(err, &cancelErr):
			http.Error(w, cancelErr.Error(), http.StatusServiceUnavailable)
		default:
			h.logger.Error("search failed", zap.Error(err))
			http.Error(w, "search failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, resp)
}

// ProvidersHandler lists the registered providers and their capabilities.
func (h *Handlers) ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	specs := h.registry.All()
	infos := make([]ProviderInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, ProviderInfo{
			ID:                 spec.ID,
			Name:               spec.DisplayName,
			SupportsSafeSearch: spec.SupportsSafeSearch(),
			SupportsRegion:     spec.SupportsRegion(),
			SupportsLanguage:   spec.SupportsLanguage(),
		})
	}

	writeJSON(w, infos)
}

// SuggestionsHandler returns autocomplete suggestions for a partial query.
func (h *Handlers) SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 20 {
			http.Error(w, "limit must be between 1 and 20", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	suggestions := h.suggester.Suggest(q, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	writeJSON(w, suggestions)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

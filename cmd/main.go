package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"metasearch/api"
	"metasearch/config"
	"metasearch/pkg/boltcache"
	"metasearch/search"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	overrides, err := config.LoadProviderOverrides(cfg.ProvidersFilePath)
	if err != nil {
		log.Fatalf("Failed to load provider overrides: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Provider registry
	// =========
	specs := make([]search.Spec, 0)
	for _, spec := range search.DefaultSpecs() {
		if overrides.Disabled(spec.ID) {
			logger.Info("provider disabled", zap.String("provider", spec.ID))
			continue
		}
		if endpoint := overrides.EndpointFor(spec.ID); endpoint != "" {
			spec.Endpoint = endpoint
		}
		specs = append(specs, spec)
	}
	registry, err := search.NewRegistry(specs...)
	if err != nil {
		log.Fatalf("Failed to build provider registry: %v", err)
	}

	// =========
	// HTTP
	// =========
	httpClient, err := NewHttpClient(cfg.ProxyURL)
	if err != nil {
		log.Fatalf("Failed to create http client: %v", err)
	}

	// =========
	// Response cache
	// =========
	cache, err := boltcache.New(cfg.CachePath, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to open response cache: %v", err)
	}
	defer cache.Close()

	// =========
	// Aggregation service
	// =========
	gate := search.NewTokenBucketGate(cfg.RateLimitPerSecond, cfg.RateLimitBurst, overrides.RateLimits())
	dispatcher := search.NewDispatcher(httpClient, gate, config.EnvCredentials{}, logger, search.DefaultCallTimeout)
	aggregator := search.NewAggregator(registry, dispatcher, cache, logger)
	suggester := search.NewSuggester(search.NewSnowballKeywordExtractor())

	// =========
	// API server
	// =========
	handlers := api.NewHandlers(aggregator, registry, suggester, logger)
	server := api.NewServer(handlers, strconv.Itoa(cfg.AppPort))
	log.Fatal(server.Start())
}

// NewHttpClient builds the shared outbound client, optionally dialing
// through a SOCKS5 proxy.
func NewHttpClient(proxyUrl string) (*http.Client, error) {
	transport := &http.Transport{
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	if proxyUrl != "" {
		dialer, err := proxy.SOCKS5("tcp", proxyUrl, nil, proxy.Direct)
		if err != nil {
			return nil, err
		}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}

	return &http.Client{Transport: transport}, nil
}

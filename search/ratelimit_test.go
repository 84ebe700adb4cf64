package search

import (
	"context"
	"testing"
	"time"
)

func TestNoopGateNeverBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (NoopGate{}).Wait(ctx, "google"); err != nil {
		t.Errorf("noop gate must not fail: %v", err)
	}
}

func TestTokenBucketGateBurst(t *testing.T) {
	gate := NewTokenBucketGate(1, 2, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Two calls fit in the burst and return immediately.
	for i := 0; i < 2; i++ {
		if err := gate.Wait(ctx, "google"); err != nil {
			t.Fatalf("call %d within burst must pass: %v", i, err)
		}
	}
	// The third exceeds the bucket and has to wait past the deadline.
	if err := gate.Wait(ctx, "google"); err == nil {
		t.Error("expected deadline to interrupt the third call")
	}
}

func TestTokenBucketGatePerProviderBuckets(t *testing.T) {
	gate := NewTokenBucketGate(1, 1, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := gate.Wait(ctx, "google"); err != nil {
		t.Fatalf("first google call must pass: %v", err)
	}
	// A different provider draws from its own bucket.
	if err := gate.Wait(ctx, "bing"); err != nil {
		t.Errorf("bing must not share google's bucket: %v", err)
	}
	if err := gate.Wait(ctx, "google"); err == nil {
		t.Error("expected google's bucket to be drained")
	}
}

func TestTokenBucketGateOverride(t *testing.T) {
	gate := NewTokenBucketGate(0.001, 1, map[string]float64{"github": 1000})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := gate.Wait(ctx, "github"); err != nil {
			t.Fatalf("override rate should admit call %d: %v", i, err)
		}
	}
}

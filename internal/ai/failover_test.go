package ai

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"asuka-bot/pkg/retrylimit"
)

func fastRetry() retrylimit.Config {
	return retrylimit.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func countingAdapter(calls *atomic.Int64, healthyCredential string) Adapter {
	return func(_ context.Context, _ []Message, _, credential string, _ int) (string, error) {
		calls.Add(1)
		if credential == healthyCredential {
			return "Hi there", nil
		}
		return "", &ProviderError{Provider: "fake", Status: 401, Reason: "bad key"}
	}
}

func failingAdapter(calls *atomic.Int64) Adapter {
	return func(context.Context, []Message, string, string, int) (string, error) {
		calls.Add(1)
		return "", &ProviderError{Provider: "fake", Status: 503, Reason: "down"}
	}
}

func TestWorkingModel_FirstHealthyPairWins(t *testing.T) {
	var aCalls, bCalls atomic.Int64
	r := NewRegistry(
		Descriptor{ID: "model-a", Tier: TierPrimary, RequiresCredential: true, Invoke: countingAdapter(&aCalls, "key-2")},
		Descriptor{ID: "model-b", Tier: TierPrimary, RequiresCredential: true, Invoke: countingAdapter(&bCalls, "key-1")},
	)
	f := NewFailover(r, []string{"key-1", "key-2"}, nil, 0)
	f.SetRetryPolicy(fastRetry())

	sel, err := f.WorkingModel(context.Background())
	if err != nil {
		t.Fatalf("working model: %v", err)
	}
	if sel.Model.ID != "model-a" || sel.Credential != "key-2" {
		t.Fatalf("expected (model-a, key-2), got (%s, %s)", sel.Model.ID, sel.Credential)
	}
	// model-b must never be touched once model-a found a key.
	if bCalls.Load() != 0 {
		t.Fatalf("later model probed %d times despite earlier success", bCalls.Load())
	}
	// key-1 burns 3 retries, key-2 succeeds on the first.
	if aCalls.Load() != 4 {
		t.Fatalf("expected 4 probes on model-a, got %d", aCalls.Load())
	}
}

func TestWorkingModel_ExhaustionCountsEveryAttempt(t *testing.T) {
	var calls atomic.Int64
	r := NewRegistry(
		Descriptor{ID: "p1", Tier: TierPrimary, RequiresCredential: true, Invoke: failingAdapter(&calls)},
		Descriptor{ID: "p2", Tier: TierPrimary, RequiresCredential: true, Invoke: failingAdapter(&calls)},
		Descriptor{ID: "f1", Tier: TierFallback, Invoke: failingAdapter(&calls)},
	)
	f := NewFailover(r, []string{"k1", "k2"}, nil, 0)
	f.SetRetryPolicy(fastRetry())

	_, err := f.WorkingModel(context.Background())
	if !errors.Is(err, ErrNoWorkingModel) {
		t.Fatalf("expected ErrNoWorkingModel, got %v", err)
	}
	// 2 primaries x 2 keys x 3 retries + 1 fallback x 3 retries.
	if want := int64(2*2*3 + 3); calls.Load() != want {
		t.Fatalf("expected %d attempts, got %d", want, calls.Load())
	}
}

func TestWorkingModel_FallbackTierAfterPrimaries(t *testing.T) {
	var primaryCalls, fallbackCalls atomic.Int64
	r := NewRegistry(
		Descriptor{ID: "p1", Tier: TierPrimary, RequiresCredential: true, Invoke: failingAdapter(&primaryCalls)},
		Descriptor{ID: "f1", Tier: TierFallback, Invoke: func(_ context.Context, _ []Message, _, credential string, _ int) (string, error) {
			fallbackCalls.Add(1)
			if credential != "" {
				t.Errorf("fallback received credential %q", credential)
			}
			return "pong", nil
		}},
	)
	f := NewFailover(r, []string{"k1"}, nil, 0)
	f.SetRetryPolicy(fastRetry())

	sel, err := f.WorkingModel(context.Background())
	if err != nil {
		t.Fatalf("working model: %v", err)
	}
	if sel.Model.ID != "f1" || sel.Credential != "" {
		t.Fatalf("expected fallback with empty credential, got (%s, %q)", sel.Model.ID, sel.Credential)
	}
	if primaryCalls.Load() != 3 {
		t.Fatalf("expected 3 primary probes, got %d", primaryCalls.Load())
	}
	if fallbackCalls.Load() != 1 {
		t.Fatalf("expected 1 fallback probe, got %d", fallbackCalls.Load())
	}
}

func TestWorkingModel_EmptyHealthReplyIsFailure(t *testing.T) {
	var calls atomic.Int64
	r := NewRegistry(
		Descriptor{ID: "p1", Tier: TierPrimary, RequiresCredential: true, Invoke: func(context.Context, []Message, string, string, int) (string, error) {
			calls.Add(1)
			return "", nil
		}},
	)
	f := NewFailover(r, []string{"k1"}, nil, 0)
	f.SetRetryPolicy(fastRetry())

	if _, err := f.WorkingModel(context.Background()); !errors.Is(err, ErrNoWorkingModel) {
		t.Fatalf("expected exhaustion on empty replies, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestWorkingModel_CacheSkipsRecheck(t *testing.T) {
	var calls atomic.Int64
	r := NewRegistry(
		Descriptor{ID: "p1", Tier: TierPrimary, RequiresCredential: true, Invoke: countingAdapter(&calls, "k1")},
	)
	f := NewFailover(r, []string{"k1"}, nil, time.Minute)
	f.SetRetryPolicy(fastRetry())

	if _, err := f.WorkingModel(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := f.WorkingModel(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single health check with cache on, got %d", calls.Load())
	}

	f.Invalidate()
	if _, err := f.WorkingModel(context.Background()); err != nil {
		t.Fatalf("post-invalidate call: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected re-check after invalidate, got %d", calls.Load())
	}
}

func TestWorkingModel_NoCredentialsNoPrimaries(t *testing.T) {
	var calls atomic.Int64
	r := NewRegistry(
		Descriptor{ID: "p1", Tier: TierPrimary, RequiresCredential: true, Invoke: countingAdapter(&calls, "any")},
	)
	f := NewFailover(r, nil, nil, 0)
	f.SetRetryPolicy(fastRetry())

	if _, err := f.WorkingModel(context.Background()); !errors.Is(err, ErrNoWorkingModel) {
		t.Fatalf("expected ErrNoWorkingModel with empty pool, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected zero probes with no credentials, got %d", calls.Load())
	}
}

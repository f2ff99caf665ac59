package ai

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"asuka-bot/pkg/retrylimit"
)

// ErrNoWorkingModel means every primary/key pair and every fallback failed
// its health check. The caller serves a canned line instead of an error.
var ErrNoWorkingModel = errors.New("no working model available")

const (
	healthPrompt  = "You are an AI assistant."
	healthMessage = "Hi"
)

// Selection is a model/credential pair that just passed a health check.
type Selection struct {
	Model      Descriptor
	Credential string
}

// Failover walks the primary tier across every credential, then the fallback
// tier, and returns the first pair whose health check produces a non-empty
// reply. Health checks retry 3 times with 1s doubling backoff before the next
// pair is tried. A positive cacheTTL reuses the last good pair for that long.
type Failover struct {
	registry    *Registry
	credentials []string
	limiter     *retrylimit.AdaptiveLimiter
	cacheTTL    time.Duration
	retryCfg    retrylimit.Config

	mu        sync.Mutex
	cached    Selection
	cachedAt  time.Time
	haveCache bool
}

func NewFailover(registry *Registry, credentials []string, limiter *retrylimit.AdaptiveLimiter, cacheTTL time.Duration) *Failover {
	return &Failover{
		registry:    registry,
		credentials: credentials,
		limiter:     limiter,
		cacheTTL:    cacheTTL,
		retryCfg:    retrylimit.DefaultConfig(),
	}
}

// SetRetryPolicy overrides the per-pair health-check retry policy. Tests use
// this to shrink the backoff delays.
func (f *Failover) SetRetryPolicy(cfg retrylimit.Config) {
	f.retryCfg = cfg
}

// WorkingModel returns a healthy model/credential pair or ErrNoWorkingModel.
func (f *Failover) WorkingModel(ctx context.Context) (Selection, error) {
	if sel, ok := f.fromCache(); ok {
		return sel, nil
	}

	for _, d := range f.registry.Tier(TierPrimary) {
		for _, cred := range f.credentials {
			if err := ctx.Err(); err != nil {
				return Selection{}, err
			}
			if f.healthy(ctx, d, cred) {
				sel := Selection{Model: d, Credential: cred}
				f.store(sel)
				return sel, nil
			}
		}
	}

	for _, d := range f.registry.Tier(TierFallback) {
		if err := ctx.Err(); err != nil {
			return Selection{}, err
		}
		if f.healthy(ctx, d, "") {
			sel := Selection{Model: d}
			f.store(sel)
			return sel, nil
		}
	}

	return Selection{}, ErrNoWorkingModel
}

// Invalidate drops the cached pair, e.g. after a generation call fails on it.
func (f *Failover) Invalidate() {
	f.mu.Lock()
	f.haveCache = false
	f.mu.Unlock()
}

func (f *Failover) healthy(ctx context.Context, d Descriptor, credential string) bool {
	history := []Message{{Role: "user", Content: healthMessage}}

	err := retrylimit.Do(ctx, func() error {
		reply, err := d.Invoke(ctx, history, healthPrompt, credential, 0)
		if err != nil {
			return err
		}
		if reply == "" {
			return &ProviderError{Provider: d.ID, Reason: "empty health reply"}
		}
		return nil
	}, f.limiter, f.retryCfg)

	if err != nil {
		log.Warn().
			Str("model", d.ID).
			Str("key", RedactKey(credential)).
			Err(err).
			Msg("health check failed")
		return false
	}

	log.Debug().
		Str("model", d.ID).
		Str("key", RedactKey(credential)).
		Msg("health check passed")
	return true
}

func (f *Failover) fromCache() (Selection, bool) {
	if f.cacheTTL <= 0 {
		return Selection{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.haveCache && time.Since(f.cachedAt) < f.cacheTTL {
		return f.cached, true
	}
	return Selection{}, false
}

func (f *Failover) store(sel Selection) {
	if f.cacheTTL <= 0 {
		return
	}
	f.mu.Lock()
	f.cached = sel
	f.cachedAt = time.Now()
	f.haveCache = true
	f.mu.Unlock()
}

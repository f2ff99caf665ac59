package ai

import (
	"context"
	"fmt"
)

// Message is one chat turn sent to a model.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Adapter invokes one provider wire protocol. maxTokens <= 0 means the
// provider default. Returns ProviderError on transport/auth/quota failure.
type Adapter func(ctx context.Context, history []Message, systemPrompt, credential string, maxTokens int) (string, error)

// Tier separates the primary rotation from the last-resort models.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierFallback Tier = "fallback"
)

// Descriptor binds a model identifier to its adapter. Immutable after startup.
type Descriptor struct {
	ID                 string
	Tier               Tier
	RequiresCredential bool
	Invoke             Adapter
}

// ProviderError is any failed provider call: transport error, non-2xx status
// or a malformed/empty body. Status is 0 when no HTTP response was seen.
type ProviderError struct {
	Provider string
	Status   int
	Reason   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status=%d %s", e.Provider, e.Status, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StatusCode satisfies retrylimit.HTTPError so 429/5xx feed the limiter.
func (e *ProviderError) StatusCode() int { return e.Status }

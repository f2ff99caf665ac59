package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModel is returned when a configured model id has no adapter. This
// is a configuration mistake and must surface loudly, never as a silent skip.
var ErrUnknownModel = errors.New("unknown model")

// Registry holds the adapters for every configured model, in configuration
// order. Built once at startup and read-only afterwards.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// BuildOptions carries the provider wiring shared by adapter constructors.
type BuildOptions struct {
	SiteURL    string
	SiteName   string
	GoogleKey  string
	OllamaHost string
}

// BuildRegistry maps model ids to adapters. Primary ids go to the OpenRouter
// wire format. Fallback ids are routed by vendor prefix: "google/" to the
// Gemini API, "ollama/" to a local Ollama server. An id with no route is an
// ErrUnknownModel at startup rather than at request time.
func BuildRegistry(primaries, fallbacks []string, opts BuildOptions) (*Registry, error) {
	r := &Registry{byID: make(map[string]Descriptor)}

	for _, id := range primaries {
		r.add(Descriptor{
			ID:                 id,
			Tier:               TierPrimary,
			RequiresCredential: true,
			Invoke:             OpenRouterAdapter(id, opts.SiteURL, opts.SiteName),
		})
	}

	for _, id := range fallbacks {
		switch {
		case strings.HasPrefix(id, "google/"):
			r.add(Descriptor{
				ID:     id,
				Tier:   TierFallback,
				Invoke: GeminiAdapter(id, opts.GoogleKey),
			})
		case strings.HasPrefix(id, "ollama/"):
			if opts.OllamaHost == "" {
				return nil, fmt.Errorf("model %q: ollama host not configured: %w", id, ErrUnknownModel)
			}
			r.add(Descriptor{
				ID:     id,
				Tier:   TierFallback,
				Invoke: OllamaAdapter(opts.OllamaHost, strings.TrimPrefix(id, "ollama/")),
			})
		default:
			return nil, fmt.Errorf("model %q: %w", id, ErrUnknownModel)
		}
	}

	return r, nil
}

// NewRegistry wires pre-built descriptors directly, bypassing the vendor
// routing. Used by tests and embedders with custom adapters.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{byID: make(map[string]Descriptor)}
	for _, d := range descriptors {
		r.add(d)
	}
	return r
}

func (r *Registry) add(d Descriptor) {
	if _, ok := r.byID[d.ID]; ok {
		return
	}
	r.order = append(r.order, d.ID)
	r.byID[d.ID] = d
}

// Lookup returns the descriptor for id or ErrUnknownModel.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("model %q: %w", id, ErrUnknownModel)
	}
	return d, nil
}

// Tier lists descriptors of one tier in configuration order.
func (r *Registry) Tier(tier Tier) []Descriptor {
	var out []Descriptor
	for _, id := range r.order {
		if d := r.byID[id]; d.Tier == tier {
			out = append(out, d)
		}
	}
	return out
}

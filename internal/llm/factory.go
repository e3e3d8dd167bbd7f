package llm

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/config"
)

// Factory selects among the configured providers. Providers are probed in
// priority order and the first available one is cached for reuse.
type Factory struct {
	providers []Provider
	logger    *zap.Logger
	current   Provider
}

// NewFactory builds a factory with the default priority order:
// gemini first, then openai.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		providers: []Provider{
			NewGeminiProvider(cfg),
			NewOpenAIProvider(cfg),
		},
		logger: logger,
	}
}

// newFactoryWith is the injection point for tests.
func newFactoryWith(logger *zap.Logger, providers ...Provider) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{providers: providers, logger: logger}
}

// Provider returns the active provider. When force names a provider it is
// selected regardless of priority; otherwise the cached provider is reused
// while it stays available, and the highest-priority available provider is
// chosen otherwise.
func (f *Factory) Provider(force string) (Provider, error) {
	if force != "" {
		for _, p := range f.providers {
			if p.Name() == force {
				if !p.Available() {
					return nil, errors.Newf("provider %q is not configured", force)
				}
				return p, nil
			}
		}
		return nil, errors.Newf("unsupported provider: %q", force)
	}

	if f.current != nil && f.current.Available() {
		return f.current, nil
	}

	for _, p := range f.providers {
		if p.Available() {
			f.logger.Info("selected LLM provider", zap.String("provider", p.Name()))
			f.current = p
			return p, nil
		}
	}

	return nil, errors.New("no LLM providers are available; check your API keys and configuration")
}

// ProviderStatus describes one provider's availability for display.
type ProviderStatus struct {
	Name      string     `json:"name"`
	Available bool       `json:"available"`
	ModelInfo *ModelInfo `json:"model_info,omitempty"`
}

// List reports every known provider with its availability, in priority
// order.
func (f *Factory) List() []ProviderStatus {
	out := make([]ProviderStatus, 0, len(f.providers))
	for _, p := range f.providers {
		status := ProviderStatus{Name: p.Name(), Available: p.Available()}
		if status.Available {
			info := p.ModelInfo()
			status.ModelInfo = &info
		}
		out = append(out, status)
	}
	return out
}

package llm

import (
	"fmt"
	"log/slog"
	"sync"

	"docstudio/internal/config"
	domainllm "docstudio/internal/domain/services/llm"
)

// GeneratorRegistry routes agent profiles to generators.
// Generators are created lazily through the factory and cached.
type GeneratorRegistry struct {
	factory         func(provider string) (domainllm.Generator, error)
	defaultProvider string
	defaultModel    string
	cache           map[string]domainllm.Generator
	mu              sync.RWMutex
	logger          *slog.Logger
}

// NewGeneratorRegistry builds a registry backed by meridian-llm-go providers
func NewGeneratorRegistry(cfg *config.Config, logger *slog.Logger) *GeneratorRegistry {
	factory := NewProviderFactory(cfg)
	return NewGeneratorRegistryWithFactory(func(provider string) (domainllm.Generator, error) {
		p, err := factory.GetProvider(provider)
		if err != nil {
			return nil, err
		}
		return NewProviderGenerator(p), nil
	}, cfg.DefaultProvider, cfg.DefaultModel, logger)
}

// NewGeneratorRegistryWithFactory builds a registry over any generator factory
func NewGeneratorRegistryWithFactory(
	factory func(provider string) (domainllm.Generator, error),
	defaultProvider, defaultModel string,
	logger *slog.Logger,
) *GeneratorRegistry {
	return &GeneratorRegistry{
		factory:         factory,
		defaultProvider: defaultProvider,
		defaultModel:    defaultModel,
		cache:           make(map[string]domainllm.Generator),
		logger:          logger,
	}
}

// Select returns the generator and model for a provider/model pair.
// An empty provider is inferred from the model name. When the provider cannot be
// created (for example a missing API key) the configured default is used instead.
func (r *GeneratorRegistry) Select(provider, model string) (domainllm.Generator, string, error) {
	if provider == "" && model != "" {
		if info, err := ParseModel(model); err == nil {
			provider, model = info.Provider, info.Model
		}
	}

	if provider != "" {
		gen, err := r.get(provider)
		if err == nil {
			return gen, model, nil
		}
		r.logger.Warn("generator unavailable, using default",
			"provider", provider,
			"default_provider", r.defaultProvider,
			"error", err,
		)
	}

	gen, err := r.get(r.defaultProvider)
	if err != nil {
		return nil, "", fmt.Errorf("default generator %s: %w", r.defaultProvider, err)
	}
	return gen, r.defaultModel, nil
}

func (r *GeneratorRegistry) get(provider string) (domainllm.Generator, error) {
	r.mu.RLock()
	if cached, ok := r.cache[provider]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock
	if cached, ok := r.cache[provider]; ok {
		return cached, nil
	}

	gen, err := r.factory(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", provider, err)
	}
	r.cache[provider] = gen
	return gen, nil
}

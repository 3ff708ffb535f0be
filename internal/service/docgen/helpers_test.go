package docgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"docstudio/internal/catalog"
	domainllm "docstudio/internal/domain/services/llm"
	"docstudio/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGenerator records prompts and returns a canned reply
type fakeGenerator struct {
	reply    string
	err      error
	requests []*domainllm.CompletionRequest
}

func (g *fakeGenerator) Name() string { return "fake" }

func (g *fakeGenerator) Complete(_ context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &domainllm.CompletionResponse{Text: g.reply, Model: req.Model, InputTokens: 10, OutputTokens: 20}, nil
}

type fakeSelector struct {
	gen      *fakeGenerator
	provider string
	model    string
}

func (s *fakeSelector) Select(provider, model string) (domainllm.Generator, string, error) {
	s.provider, s.model = provider, model
	if s.gen == nil {
		return nil, "", errors.New("no generator")
	}
	return s.gen, model, nil
}

// newSeededStore returns a memory store holding the embedded rule set
func newSeededStore(t *testing.T) (*memory.Store, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	store := memory.NewStore()
	for _, rule := range cat.Rules() {
		rule := rule
		require.NoError(t, store.Rules().Upsert(context.Background(), &rule))
	}
	return store, cat
}

package llm

import (
	"context"
	"fmt"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	domainllm "docstudio/internal/domain/services/llm"
)

const blockTypeText = "text"

// ProviderGenerator adapts a meridian-llm-go provider to the Generator interface.
type ProviderGenerator struct {
	provider llmprovider.Provider
}

// NewProviderGenerator wraps an existing provider
func NewProviderGenerator(provider llmprovider.Provider) *ProviderGenerator {
	return &ProviderGenerator{provider: provider}
}

// Name returns the provider name
func (g *ProviderGenerator) Name() string {
	return g.provider.Name().String()
}

// Complete sends a single user turn and joins the returned text blocks.
// The system instruction is sent as a leading text block of the same turn.
func (g *ProviderGenerator) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	if !g.provider.SupportsModel(req.Model) {
		return nil, fmt.Errorf("model %q is not supported by provider %s", req.Model, g.Name())
	}

	blocks := make([]*llmprovider.Block, 0, 2)
	if req.System != "" {
		system := req.System
		blocks = append(blocks, &llmprovider.Block{BlockType: blockTypeText, Sequence: 0, TextContent: &system})
	}
	prompt := req.Prompt
	blocks = append(blocks, &llmprovider.Block{BlockType: blockTypeText, Sequence: len(blocks), TextContent: &prompt})

	libResp, err := g.provider.GenerateResponse(ctx, &llmprovider.GenerateRequest{
		Messages: []llmprovider.Message{{Role: "user", Blocks: blocks}},
		Model:    req.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("generate with %s: %w", g.Name(), err)
	}

	var sb strings.Builder
	for _, block := range libResp.Blocks {
		if block == nil || block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(*block.TextContent)
	}

	return &domainllm.CompletionResponse{
		Text:         sb.String(),
		Model:        libResp.Model,
		InputTokens:  libResp.InputTokens,
		OutputTokens: libResp.OutputTokens,
		StopReason:   libResp.StopReason,
	}, nil
}

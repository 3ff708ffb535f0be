package docgen

import (
	"context"

	models "docstudio/internal/domain/models/docgen"
)

// GenerateRequest is a single AI document-generation call
type GenerateRequest struct {
	Input  models.GenerationInput
	Config models.AgentConfig
	Author string // Required; the authenticated subject or the configured default author
}

// GenerateResult is the stored outcome of a generation
type GenerateResult struct {
	DocID   string
	DocData string
}

// GenerationService turns request/response samples into documentation
type GenerationService interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
}

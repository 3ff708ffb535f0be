package docgen

import (
	"context"

	models "docstudio/internal/domain/models/docgen"
)

// UpdateDocumentRequest saves an edited document
type UpdateDocumentRequest struct {
	DocID   string // Empty = new graph root
	DocData string
	Name    string
	Author  string // Required
}

// DocumentService reads and revises documents
type DocumentService interface {
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// UpdateDocument stores a new revision and returns it
	UpdateDocument(ctx context.Context, req *UpdateDocumentRequest) (*models.Document, error)
}

// GraphService builds document graphs
type GraphService interface {
	// GetGraph returns the whole graph containing docID, rooted at its top ancestor
	GetGraph(ctx context.Context, docID string) (*models.DocNode, error)
}

// HistoryService pages prompt history
type HistoryService interface {
	// ListHistory takes a zero-based page index and a page size
	ListHistory(ctx context.Context, page, pageSize int) ([]models.PromptDocument, int, error)
}

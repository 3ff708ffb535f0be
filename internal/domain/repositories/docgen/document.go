package docgen

import (
	"context"

	models "docstudio/internal/domain/models/docgen"
)

// DocumentRepository stores document revisions.
// Revisions form a forest through ParentID; every node of one graph shares LatestID.
type DocumentRepository interface {
	// Create inserts a revision. ID and CreatedAt are assigned when empty.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID returns a single revision
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListGraph returns the root and every descendant of rootID, ordered by created_at
	ListGraph(ctx context.Context, rootID string) ([]models.Document, error)

	// SetLatest points every revision of the graph rooted at rootID to latestID
	SetLatest(ctx context.Context, rootID, latestID string) error
}

package docgen

import (
	"context"

	models "docstudio/internal/domain/models/docgen"
)

// HistoryRepository stores prompt history. Append-only.
type HistoryRepository interface {
	Append(ctx context.Context, record *models.PromptRecord) error

	// List returns records newest first plus the total count
	List(ctx context.Context, offset, limit int) ([]models.PromptRecord, int, error)
}

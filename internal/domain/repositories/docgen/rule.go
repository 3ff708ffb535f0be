package docgen

import (
	"context"

	models "docstudio/internal/domain/models/docgen"
)

// RuleRepository stores the published rule catalog
type RuleRepository interface {
	// List returns every rule ordered by name
	List(ctx context.Context) ([]models.RuleBase, error)

	// GetByID returns a rule including its template
	GetByID(ctx context.Context, id string) (*models.RuleBase, error)

	// Upsert inserts or replaces a rule (used by seeding)
	Upsert(ctx context.Context, rule *models.RuleBase) error
}

package docgen

import (
	"context"

	models "docstudio/internal/domain/models/docgen"
)

// RuleService exposes the published rule catalog
type RuleService interface {
	ListRules(ctx context.Context) ([]models.RuleBase, error)
}

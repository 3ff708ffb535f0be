package docgen

import (
	"context"
	"log/slog"

	models "docstudio/internal/domain/models/docgen"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
)

// ruleService implements the RuleService interface
type ruleService struct {
	ruleRepo docgenRepo.RuleRepository
	logger   *slog.Logger
}

// NewRuleService creates a new rule service
func NewRuleService(ruleRepo docgenRepo.RuleRepository, logger *slog.Logger) docgenSvc.RuleService {
	return &ruleService{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// ListRules returns the published rule catalog
func (s *ruleService) ListRules(ctx context.Context) ([]models.RuleBase, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rules listed", "count", len(rules))
	return rules, nil
}

package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docstudio/internal/catalog"
	"docstudio/internal/config"
	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/domain/repositories"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
	domainllm "docstudio/internal/domain/services/llm"
)

// generationService implements the GenerationService interface
type generationService struct {
	ruleRepo    docgenRepo.RuleRepository
	docRepo     docgenRepo.DocumentRepository
	historyRepo docgenRepo.HistoryRepository
	txManager   repositories.TransactionManager
	catalog     *catalog.Catalog
	generators  domainllm.GeneratorSelector
	logger      *slog.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	ruleRepo docgenRepo.RuleRepository,
	docRepo docgenRepo.DocumentRepository,
	historyRepo docgenRepo.HistoryRepository,
	txManager repositories.TransactionManager,
	cat *catalog.Catalog,
	generators domainllm.GeneratorSelector,
	logger *slog.Logger,
) docgenSvc.GenerationService {
	return &generationService{
		ruleRepo:    ruleRepo,
		docRepo:     docRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		catalog:     cat,
		generators:  generators,
		logger:      logger,
	}
}

// Generate asks the agent's model for documentation of the sample exchange and
// stores the result as a new root document with one prompt-history record.
func (s *generationService) Generate(ctx context.Context, req *docgenSvc.GenerateRequest) (*docgenSvc.GenerateResult, error) {
	if err := s.validateGenerateRequest(req); err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.GetByID(ctx, req.Config.RuleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown rule %s", domain.ErrValidation, req.Config.RuleID)
		}
		return nil, fmt.Errorf("failed to load rule: %w", err)
	}

	agent, err := s.catalog.Resolve(req.Config)
	if err != nil {
		return nil, err
	}

	generator, model, err := s.generators.Select(agent.Provider, agent.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to select generator: %w", err)
	}

	s.logger.Info("generating documentation",
		"rule_id", rule.RuleID,
		"agent", agent.Name,
		"provider", generator.Name(),
		"model", model,
	)

	resp, err := generator.Complete(ctx, &domainllm.CompletionRequest{
		Model:  model,
		System: agent.System,
		Prompt: buildPrompt(rule, &req.Input),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate documentation: %w", err)
	}
	content := strings.TrimSpace(resp.Text)
	if content == "" {
		return nil, fmt.Errorf("failed to generate documentation: %s returned no content", generator.Name())
	}

	doc := &models.Document{
		Name:        documentName(req.Input.Description),
		Description: strings.TrimSpace(req.Input.Description),
		CreatedBy:   req.Author,
		Version:     0,
		Status:      models.StatusActive,
		RuleID:      rule.RuleID,
		Content:     content,
	}
	if doc.Name == "" {
		doc.Name = models.DefaultDocumentName
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}
		return s.historyRepo.Append(txCtx, &models.PromptRecord{
			DocID:        doc.ID,
			RuleID:       rule.RuleID,
			RequestJSON:  req.Input.Request,
			ResponseJSON: req.Input.Response,
			Description:  doc.Description,
			AgentName:    agent.Name,
			CreatedBy:    req.Author,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store generated document: %w", err)
	}

	s.logger.Info("documentation generated",
		"doc_id", doc.ID,
		"rule_id", rule.RuleID,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"stop_reason", resp.StopReason,
	)

	return &docgenSvc.GenerateResult{DocID: doc.ID, DocData: doc.Content}, nil
}

func (s *generationService) validateGenerateRequest(req *docgenSvc.GenerateRequest) error {
	in := &req.Input
	err := validation.ValidateStruct(in,
		validation.Field(&in.Request, validation.Required, validation.Length(0, config.MaxSampleLength), isJSON),
		validation.Field(&in.Response, validation.Required, validation.Length(0, config.MaxSampleLength), isJSON),
		validation.Field(&in.Description,
			validation.Required,
			validation.By(notBlank),
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
	if err != nil {
		return asValidationError(err)
	}

	cfg := &req.Config
	err = validation.ValidateStruct(cfg,
		validation.Field(&cfg.Name, validation.Required),
		validation.Field(&cfg.RuleID, validation.Required),
	)
	if err != nil {
		return asValidationError(err)
	}

	if strings.TrimSpace(req.Author) == "" {
		return fmt.Errorf("%w: author is required", domain.ErrValidation)
	}
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// buildPrompt renders the rule template followed by the sample exchange
func buildPrompt(rule *models.RuleBase, in *models.GenerationInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Documentation rule: %s\n", rule.RuleName)
	if rule.RuleDescription != "" {
		fmt.Fprintf(&sb, "%s\n", rule.RuleDescription)
	}
	if tmpl := strings.TrimSpace(rule.Template); tmpl != "" {
		fmt.Fprintf(&sb, "\n%s\n", tmpl)
	}
	fmt.Fprintf(&sb, "\nDescription:\n%s\n", strings.TrimSpace(in.Description))
	fmt.Fprintf(&sb, "\nRequest JSON:\n```json\n%s\n```\n", strings.TrimSpace(in.Request))
	fmt.Fprintf(&sb, "\nResponse JSON:\n```json\n%s\n```\n", strings.TrimSpace(in.Response))
	sb.WriteString("\nWrite the documentation in Markdown.")
	return sb.String()
}

package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docstudio/internal/config"
	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/domain/repositories"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
)

// maxGraphDepth bounds ancestor walks over corrupted parent chains
const maxGraphDepth = 1000

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   docgenRepo.DocumentRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docgenRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docgenSvc.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetDocument retrieves a revision by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: docId is required", domain.ErrValidation)
	}
	return s.docRepo.GetByID(ctx, id)
}

// UpdateDocument saves edited content.
// With a DocID the content becomes a child revision of that document and the
// whole graph's latest pointer moves to it; without one a new root is created.
func (s *documentService) UpdateDocument(ctx context.Context, req *docgenSvc.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultDocumentName
	}

	revision := &models.Document{
		Name:      name,
		CreatedBy: req.Author,
		Status:    models.StatusActive,
		Content:   req.DocData,
	}

	if req.DocID == "" {
		if err := s.docRepo.Create(ctx, revision); err != nil {
			return nil, fmt.Errorf("failed to create document: %w", err)
		}
		s.logger.Info("document created", "id", revision.ID, "name", revision.Name)
		return revision, nil
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		parent, err := s.docRepo.GetByID(txCtx, req.DocID)
		if err != nil {
			return err
		}
		root, err := findRoot(txCtx, s.docRepo, parent)
		if err != nil {
			return err
		}

		revision.ParentID = &parent.ID
		revision.Version = parent.Version + 1
		revision.Description = parent.Description
		revision.RuleID = parent.RuleID

		if err := s.docRepo.Create(txCtx, revision); err != nil {
			return err
		}
		return s.docRepo.SetLatest(txCtx, root.ID, revision.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save revision of %s: %w", req.DocID, err)
	}

	s.logger.Info("document revision saved",
		"id", revision.ID,
		"parent_id", req.DocID,
		"version", revision.Version,
	)
	return revision, nil
}

func (s *documentService) validateUpdateRequest(req *docgenSvc.UpdateDocumentRequest) error {
	return asValidationError(validation.ValidateStruct(req,
		validation.Field(&req.DocData, validation.Required, validation.By(notBlank)),
		validation.Field(&req.Name, validation.Length(0, config.MaxDocumentNameLength)),
		validation.Field(&req.Author, validation.Required, validation.By(notBlank)),
	))
}

// findRoot follows ParentID links up to the graph root
func findRoot(ctx context.Context, repo docgenRepo.DocumentRepository, doc *models.Document) (*models.Document, error) {
	current := doc
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= maxGraphDepth {
			return nil, fmt.Errorf("document %s: ancestor chain exceeds %d levels", doc.ID, maxGraphDepth)
		}
		parent, err := repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ancestor %s: %w", *current.ParentID, err)
		}
		current = parent
	}
	return current, nil
}

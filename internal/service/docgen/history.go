package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"docstudio/internal/config"
	"docstudio/internal/domain"
	models "docstudio/internal/domain/models/docgen"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	docgenSvc "docstudio/internal/domain/services/docgen"
)

// historyService implements the HistoryService interface
type historyService struct {
	historyRepo docgenRepo.HistoryRepository
	docRepo     docgenRepo.DocumentRepository
	logger      *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(
	historyRepo docgenRepo.HistoryRepository,
	docRepo docgenRepo.DocumentRepository,
	logger *slog.Logger,
) docgenSvc.HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		docRepo:     docRepo,
		logger:      logger,
	}
}

// ListHistory returns one page of prompt history, newest first.
// Negative pages read as the first page; the size is clamped to [1, MaxPageSize].
// Pages whose offset does not fit in an int are rejected.
func (s *historyService) ListHistory(ctx context.Context, page, pageSize int) ([]models.PromptDocument, int, error) {
	if page < 0 {
		page = 0
	}
	switch {
	case pageSize <= 0:
		pageSize = config.DefaultPageSize
	case pageSize > config.MaxPageSize:
		pageSize = config.MaxPageSize
	}
	if page > math.MaxInt/pageSize {
		return nil, 0, fmt.Errorf("%w: offset %d out of range", domain.ErrValidation, page)
	}

	records, total, err := s.historyRepo.List(ctx, page*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]models.PromptDocument, 0, len(records))
	for _, record := range records {
		row := models.PromptDocument{
			DocID:     record.DocID,
			Path:      record.RuleID + "/" + record.DocID + ".md",
			CreatedBy: record.CreatedBy,
			CreatedAt: record.CreatedAt.Format(models.CreatedAtLayout),
			RuleID:    record.RuleID,
		}

		doc, err := s.docRepo.GetByID(ctx, record.DocID)
		switch {
		case err == nil:
			row.Version = strconv.Itoa(doc.Version)
			row.Status = string(doc.Status)
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("prompt history references missing document", "doc_id", record.DocID)
		default:
			return nil, 0, err
		}
		rows = append(rows, row)
	}

	return rows, total, nil
}

package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	models "docstudio/internal/domain/models/docgen"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	"docstudio/internal/repository/postgres"
)

// PostgresHistoryRepository implements HistoryRepository
type PostgresHistoryRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewHistoryRepository creates a new prompt-history repository
func NewHistoryRepository(config *postgres.RepositoryConfig) docgenRepo.HistoryRepository {
	return &PostgresHistoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Append stores a record
func (r *PostgresHistoryRepository) Append(ctx context.Context, record *models.PromptRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc_id, rule_id, request_json, response_json, description, agent_name, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.PromptHistory)

	_, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query,
		record.ID,
		record.DocID,
		record.RuleID,
		record.RequestJSON,
		record.ResponseJSON,
		record.Description,
		record.AgentName,
		record.CreatedBy,
		record.CreatedAt,
	)
	if err != nil {
		return postgres.WrapError("append prompt history", "document", record.DocID, err)
	}
	return nil
}

// List returns a page of records newest first and the total count
func (r *PostgresHistoryRepository) List(ctx context.Context, offset, limit int) ([]models.PromptRecord, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	if offset < 0 {
		offset = 0
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.PromptHistory)
	if err := executor.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count prompt history: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, doc_id, rule_id, request_json, response_json, description, agent_name, created_by, created_at
		FROM %s
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`, r.tables.PromptHistory)

	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list prompt history: %w", err)
	}
	defer rows.Close()

	records := make([]models.PromptRecord, 0, limit)
	for rows.Next() {
		var rec models.PromptRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.DocID,
			&rec.RuleID,
			&rec.RequestJSON,
			&rec.ResponseJSON,
			&rec.Description,
			&rec.AgentName,
			&rec.CreatedBy,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan prompt history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate prompt history: %w", err)
	}

	return records, total, nil
}

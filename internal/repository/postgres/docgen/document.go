package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	models "docstudio/internal/domain/models/docgen"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	"docstudio/internal/repository/postgres"
)

// errNoRows stands in for a lookup that cannot match
var errNoRows = pgx.ErrNoRows

// PostgresDocumentRepository implements DocumentRepository
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docgenRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, latest_id, parent_id, name, description, created_by, created_at, version, status, rule_id, content`

func scanDocument(row interface{ Scan(dest ...any) error }, doc *models.Document) error {
	var status string
	err := row.Scan(
		&doc.ID,
		&doc.LatestID,
		&doc.ParentID,
		&doc.Name,
		&doc.Description,
		&doc.CreatedBy,
		&doc.CreatedAt,
		&doc.Version,
		&status,
		&doc.RuleID,
		&doc.Content,
	)
	doc.Status = models.DocumentStatus(status)
	return err
}

// Create inserts a revision
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.LatestID == "" {
		doc.LatestID = doc.ID
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Documents, documentColumns)

	_, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.ID,
		doc.LatestID,
		doc.ParentID,
		doc.Name,
		doc.Description,
		doc.CreatedBy,
		doc.CreatedAt,
		doc.Version,
		string(doc.Status),
		doc.RuleID,
		doc.Content,
	)
	if err != nil {
		return postgres.WrapError("create document", "document", doc.ID, err)
	}

	return nil
}

// GetByID returns a single revision
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		// Not a UUID, so it cannot exist; avoids a driver cast error
		return nil, postgres.WrapError("get document", "document", id, errNoRows)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	var doc models.Document
	if err := scanDocument(postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &doc); err != nil {
		return nil, postgres.WrapError("get document", "document", id, err)
	}
	return &doc, nil
}

// ListGraph returns the root and all descendants using a recursive CTE
func (r *PostgresDocumentRepository) ListGraph(ctx context.Context, rootID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE graph AS (
			SELECT %[1]s FROM %[2]s WHERE id = $1
			UNION ALL
			SELECT d.id, d.latest_id, d.parent_id, d.name, d.description, d.created_by,
			       d.created_at, d.version, d.status, d.rule_id, d.content
			FROM %[2]s d
			JOIN graph g ON d.parent_id = g.id
		)
		SELECT %[1]s FROM graph ORDER BY created_at, id
	`, documentColumns, r.tables.Documents)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, rootID)
	if err != nil {
		return nil, fmt.Errorf("list document graph: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	r.logger.Debug("document graph loaded", "root_id", rootID, "count", len(docs))
	return docs, nil
}

// SetLatest updates latest_id across the graph rooted at rootID
func (r *PostgresDocumentRepository) SetLatest(ctx context.Context, rootID, latestID string) error {
	query := fmt.Sprintf(`
		WITH RECURSIVE graph AS (
			SELECT id FROM %[1]s WHERE id = $1
			UNION ALL
			SELECT d.id FROM %[1]s d JOIN graph g ON d.parent_id = g.id
		)
		UPDATE %[1]s SET latest_id = $2 WHERE id IN (SELECT id FROM graph)
	`, r.tables.Documents)

	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, rootID, latestID); err != nil {
		return fmt.Errorf("set latest revision: %w", err)
	}
	return nil
}

package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	models "docstudio/internal/domain/models/docgen"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	"docstudio/internal/repository/postgres"
)

// PostgresRuleRepository implements RuleRepository
type PostgresRuleRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewRuleRepository creates a new rule repository
func NewRuleRepository(config *postgres.RepositoryConfig) docgenRepo.RuleRepository {
	return &PostgresRuleRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const ruleColumns = `id, name, description, path, status, team, project, division, template, created_at, updated_at`

func scanRule(row interface{ Scan(dest ...any) error }) (*models.RuleBase, error) {
	var (
		r                    models.RuleBase
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&r.RuleID,
		&r.RuleName,
		&r.RuleDescription,
		&r.RulePath,
		&r.Status,
		&r.Team,
		&r.Project,
		&r.Division,
		&r.Template,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = createdAt.UnixMilli()
	r.UpdatedAt = updatedAt.UnixMilli()
	return &r, nil
}

// List returns every rule ordered by name
func (r *PostgresRuleRepository) List(ctx context.Context) ([]models.RuleBase, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name, id`, ruleColumns, r.tables.Rules)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	rules := make([]models.RuleBase, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}

	return rules, nil
}

// GetByID returns a rule including its template
func (r *PostgresRuleRepository) GetByID(ctx context.Context, id string) (*models.RuleBase, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, ruleColumns, r.tables.Rules)

	rule, err := scanRule(postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.WrapError("get rule", "rule", id, err)
	}
	return rule, nil
}

// Upsert inserts or replaces a rule
func (r *PostgresRuleRepository) Upsert(ctx context.Context, rule *models.RuleBase) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, path, status, team, project, division, template, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			path = EXCLUDED.path,
			status = EXCLUDED.status,
			team = EXCLUDED.team,
			project = EXCLUDED.project,
			division = EXCLUDED.division,
			template = EXCLUDED.template,
			updated_at = now()
	`, r.tables.Rules)

	_, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query,
		rule.RuleID,
		rule.RuleName,
		rule.RuleDescription,
		rule.RulePath,
		rule.Status,
		rule.Team,
		rule.Project,
		rule.Division,
		rule.Template,
	)
	if err != nil {
		return postgres.WrapError("upsert rule", "rule", rule.RuleID, err)
	}

	r.logger.Debug("rule upserted", "rule_id", rule.RuleID)
	return nil
}

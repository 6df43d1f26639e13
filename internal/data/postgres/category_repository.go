package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL.
// Rows of kind ACCOUNT share the table but are only visible through KindOf.
type CategoryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(logger *slog.Logger, db *persistence.PostgresDB) category.Repository {
	return &CategoryRepository{
		querier: db.Querier(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *CategoryRepository) WithTx(tx pgx.Tx) category.Repository {
	return &CategoryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create inserts the category and assigns its ID
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, kind, type, parent_id, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		c.Name,
		string(category.KindCategory),
		string(c.Type),
		c.ParentID,
		c.Position,
	).Scan(&c.ID)
	if err != nil {
		r.logger.Error("Failed to create category", "name", c.Name, "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `
		SELECT id, name, type, parent_id, position
		FROM categories
		WHERE id = $1 AND kind = 'CATEGORY'
	`

	c, err := scanCategory(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound{CategoryID: id}
		}
		r.logger.Error("Failed to get category", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

// GetAll returns all categories ordered by parent and position
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*category.Category, error) {
	query := `
		SELECT id, name, type, parent_id, position
		FROM categories
		WHERE kind = 'CATEGORY'
		ORDER BY parent_id NULLS FIRST, position, id
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			r.logger.Error("Failed to scan category", "error", err)
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over categories", "error", err)
		return nil, fmt.Errorf("error iterating over categories: %w", err)
	}

	return categories, nil
}

// Update overwrites name, type, parent and position
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, type = $2, parent_id = $3, position = $4
		WHERE id = $5 AND kind = 'CATEGORY'
	`

	result, err := r.querier.Exec(ctx, query, c.Name, string(c.Type), c.ParentID, c.Position, c.ID)
	if err != nil {
		r.logger.Error("Failed to update category", "id", c.ID, "error", err)
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound{CategoryID: c.ID}
	}

	return nil
}

// Delete removes the category row
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1 AND kind = 'CATEGORY'`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete category", "id", id, "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound{CategoryID: id}
	}

	return nil
}

// NextPosition returns the position after the last child of parentID
func (r *CategoryRepository) NextPosition(ctx context.Context, parentID int64) (int, error) {
	query := `
		SELECT COALESCE(MAX(position) + 1, 0)
		FROM categories
		WHERE parent_id = $1 AND kind = 'CATEGORY'
	`

	var position int
	if err := r.querier.QueryRow(ctx, query, parentID).Scan(&position); err != nil {
		r.logger.Error("Failed to get next category position", "parent_id", parentID, "error", err)
		return 0, fmt.Errorf("failed to get next category position: %w", err)
	}

	return position, nil
}

// KindOf returns the kind of the row with the given id, including accounts
func (r *CategoryRepository) KindOf(ctx context.Context, id int64) (category.Kind, error) {
	query := `SELECT kind FROM categories WHERE id = $1`

	var kind string
	if err := r.querier.QueryRow(ctx, query, id).Scan(&kind); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", category.ErrCategoryNotFound{CategoryID: id}
		}
		r.logger.Error("Failed to get category kind", "id", id, "error", err)
		return "", fmt.Errorf("failed to get category kind: %w", err)
	}

	return category.Kind(kind), nil
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var (
		c       category.Category
		catType string
	)
	if err := row.Scan(&c.ID, &c.Name, &catType, &c.ParentID, &c.Position); err != nil {
		return nil, err
	}
	c.Type = category.Type(catType)
	return &c, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/model"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error

	// DeleteWithReassign removes the category and, in the same
	// transaction, moves every report referencing it to
	// RECATEGORIZACAO with the category reference cleared. Returns the
	// number of reports reassigned.
	DeleteWithReassign(ctx context.Context, id uuid.UUID) (int, error)
}

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, course_id, name, max_hours, created_at, updated_at`

func scanCategory(row interface{ Scan(dest ...any) error }) (*model.Category, error) {
	c := &model.Category{}
	err := row.Scan(&c.ID, &c.CourseID, &c.Name, &c.MaxHours, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, apperr.ErrCategoryNotFound, apperr.ErrDependencyExists)
	}
	return c, nil
}

func (r *categoryRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE course_id = $1 ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, course_id, name, max_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, query,
		category.ID, category.CourseID, category.Name, category.MaxHours,
	).Scan(&category.CreatedAt, &category.UpdatedAt)
	return mapError(err, apperr.ErrCategoryNotFound, apperr.ErrDependencyExists)
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET name = $1, max_hours = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, category.Name, category.MaxHours, category.ID).Scan(&category.UpdatedAt)
	return mapError(err, apperr.ErrCategoryNotFound, apperr.ErrDependencyExists)
}

func (r *categoryRepository) DeleteWithReassign(ctx context.Context, id uuid.UUID) (int, error) {
	var reassigned int

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE reports
			SET status = $1, category_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE category_id = $2
		`, model.StatusRecategorizacao, id)
		if err != nil {
			return err
		}
		reassigned = int(tag.RowsAffected())

		delTag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if delTag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return 0, mapError(err, apperr.ErrCategoryNotFound, apperr.ErrDependencyExists)
	}
	return reassigned, nil
}

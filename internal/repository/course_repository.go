package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/model"
)

type CourseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	List(ctx context.Context) ([]*model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseRepository struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, code, name, created_at, updated_at`

func scanCourse(row interface{ Scan(dest ...any) error }) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, apperr.ErrCourseNotFound, apperr.ErrCourseCodeTaken)
	}
	return c, nil
}

func (r *courseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE code = $1`
	c, err := scanCourse(r.db.QueryRow(ctx, query, code))
	if err != nil {
		return nil, mapError(err, apperr.ErrCourseNotFound, apperr.ErrCourseCodeTaken)
	}
	return c, nil
}

func (r *courseRepository) List(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (id, code, name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, query, course.ID, course.Code, course.Name).Scan(&course.CreatedAt, &course.UpdatedAt)
	return mapError(err, apperr.ErrCourseNotFound, apperr.ErrCourseCodeTaken)
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	query := `
		UPDATE courses
		SET code = $1, name = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, course.Code, course.Name, course.ID).Scan(&course.UpdatedAt)
	return mapError(err, apperr.ErrCourseNotFound, apperr.ErrCourseCodeTaken)
}

func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return mapError(err, apperr.ErrCourseNotFound, apperr.ErrCourseCodeTaken)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(apperr.ErrCourseNotFound)
	}
	return nil
}

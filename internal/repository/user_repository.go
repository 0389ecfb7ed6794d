package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]*model.User, int, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	SetRole(ctx context.Context, id uuid.UUID, role model.Role, courseID *uuid.UUID) error
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAlunosByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
}

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, banned, course_id, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Banned, &u.CourseID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*model.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, apperr.Internal(err)
		}
		users = append(users, u)
	}
	return users, total, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, banned, course_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Banned, user.CourseID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, course_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.CourseID, user.ID).Scan(&user.UpdatedAt)
	return mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
}

func (r *userRepository) SetRole(ctx context.Context, id uuid.UUID, role model.Role, courseID *uuid.UUID) error {
	query := `
		UPDATE users SET role = $1, course_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id
	`
	var returned uuid.UUID
	err := r.db.QueryRow(ctx, query, role, courseID, id).Scan(&returned)
	return mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
}

func (r *userRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	query := `
		UPDATE users SET banned = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id
	`
	var returned uuid.UUID
	err := r.db.QueryRow(ctx, query, banned, id).Scan(&returned)
	return mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
}

func (r *userRepository) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `
		UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id
	`
	var returned uuid.UUID
	err := r.db.QueryRow(ctx, query, hash, id).Scan(&returned)
	return mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, apperr.ErrUserNotFound, apperr.ErrEmailTaken)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(apperr.ErrUserNotFound)
	}
	return nil
}

func (r *userRepository) CountAlunosByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND course_id = $2`
	if err := r.db.QueryRow(ctx, query, model.RoleAluno, courseID).Scan(&count); err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

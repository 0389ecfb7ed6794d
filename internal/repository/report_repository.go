package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/model"
)

type ReportRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*model.Report, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*model.Report, int, error)
	Create(ctx context.Context, report *model.Report) error
	Update(ctx context.Context, report *model.Report) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `id, owner_id, category_id, title, description, hours, status, created_at, updated_at`

func scanReport(row interface{ Scan(dest ...any) error }) (*model.Report, error) {
	rep := &model.Report{}
	err := row.Scan(&rep.ID, &rep.OwnerID, &rep.CategoryID, &rep.Title, &rep.Description, &rep.Hours, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, apperr.ErrReportNotFound, apperr.ErrDependencyExists)
	}
	return rep, nil
}

func (r *reportRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*model.Report, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, apperr.Internal(err)
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, apperr.Internal(err)
		}
		reports = append(reports, rep)
	}
	return reports, total, nil
}

func (r *reportRepository) ListAll(ctx context.Context, limit, offset int) ([]*model.Report, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, apperr.Internal(err)
	}

	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, apperr.Internal(err)
		}
		reports = append(reports, rep)
	}
	return reports, total, nil
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (id, owner_id, category_id, title, description, hours, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, query,
		report.ID, report.OwnerID, report.CategoryID, report.Title, report.Description, report.Hours, report.Status,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
	return mapError(err, apperr.ErrReportNotFound, apperr.ErrDependencyExists)
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	query := `
		UPDATE reports
		SET category_id = $1, title = $2, description = $3, hours = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		report.CategoryID, report.Title, report.Description, report.Hours, report.ID,
	).Scan(&report.UpdatedAt)
	return mapError(err, apperr.ErrReportNotFound, apperr.ErrDependencyExists)
}

func (r *reportRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus) error {
	query := `
		UPDATE reports SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id
	`
	var returned uuid.UUID
	err := r.db.QueryRow(ctx, query, status, id).Scan(&returned)
	return mapError(err, apperr.ErrReportNotFound, apperr.ErrDependencyExists)
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return mapError(err, apperr.ErrReportNotFound, apperr.ErrDependencyExists)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(apperr.ErrReportNotFound)
	}
	return nil
}

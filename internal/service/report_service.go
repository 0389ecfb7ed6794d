package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/authz"
	"github.com/sigac/sigac-core/internal/guard"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/repository"
	"github.com/sigac/sigac-core/internal/response"
	"golang.org/x/sync/errgroup"
)

// ReportService handles activity-report use-cases. Every entry point
// runs through the guard first, then the evaluator, then the ownership
// policy, before touching the store.
type ReportService struct {
	guard        *guard.Guard
	eval         *authz.Evaluator
	policy       authz.ReportPolicy
	reportRepo   repository.ReportRepository
	categoryRepo repository.CategoryRepository
	log          zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	g *guard.Guard,
	eval *authz.Evaluator,
	reportRepo repository.ReportRepository,
	categoryRepo repository.CategoryRepository,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		guard:        g,
		eval:         eval,
		reportRepo:   reportRepo,
		categoryRepo: categoryRepo,
		log:          log,
	}
}

// CreateReportInput is the payload for submitting a report.
type CreateReportInput struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=2000"`
	Hours       int       `json:"hours" validate:"required,min=1,max=500"`
}

// UpdateReportInput is the payload for editing a pending report.
type UpdateReportInput struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=2000"`
	Hours       int       `json:"hours" validate:"required,min=1,max=500"`
}

// ValidateReportInput is the payload for a reviewer's verdict.
type ValidateReportInput struct {
	Status model.ReportStatus `json:"status" validate:"required,oneof=VALIDO INVALIDO"`
}

// Create submits a new report for the calling aluno. The report starts
// in AGUARDANDO_VALIDACAO.
func (s *ReportService) Create(ctx context.Context, input CreateReportInput) (*model.Report, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: []model.Role{model.RoleAluno}})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceReport, authz.ActionCreate)); err != nil {
		return nil, err
	}

	// The category must exist before the report can point at it.
	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	report := &model.Report{
		OwnerID:     gctx.Principal.ID,
		CategoryID:  &input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Hours:       input.Hours,
		Status:      model.StatusAguardandoValidacao,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("report_id", report.ID.String()).
		Str("owner_id", report.OwnerID.String()).
		Msg("Report submitted")

	return report, nil
}

// List returns reports visible to the caller: an aluno sees only their
// own, reviewers and admins see everything.
func (s *ReportService) List(ctx context.Context, page, perPage int) ([]*model.Report, *response.Pagination, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{RequireAuth: true})
	if err != nil {
		return nil, nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceReport, authz.ActionList)); err != nil {
		return nil, nil, err
	}

	page, perPage = normalizePage(page, perPage)
	offset := (page - 1) * perPage

	var (
		reports []*model.Report
		total   int
	)
	if gctx.Principal.Role == model.RoleAluno {
		reports, total, err = s.reportRepo.ListByOwner(ctx, gctx.Principal.ID, perPage, offset)
	} else {
		reports, total, err = s.reportRepo.ListAll(ctx, perPage, offset)
	}
	if err != nil {
		return nil, nil, err
	}

	return reports, response.NewPagination(page, perPage, total), nil
}

// Update edits a pending report. Only the owner may edit, and only
// while the report is AGUARDANDO_VALIDACAO.
func (s *ReportService) Update(ctx context.Context, id uuid.UUID, input UpdateReportInput) (*model.Report, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: []model.Role{model.RoleAluno}})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceReport, authz.ActionUpdate)); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanMutate(gctx.Principal, report) {
		return nil, apperr.Forbidden()
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	report.CategoryID = &input.CategoryID
	report.Title = input.Title
	report.Description = input.Description
	report.Hours = input.Hours

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a pending report, subject to the same ownership and
// state rules as Update.
func (s *ReportService) Delete(ctx context.Context, id uuid.UUID) error {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: []model.Role{model.RoleAluno}})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceReport, authz.ActionDelete)); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanMutate(gctx.Principal, report) {
		return apperr.Forbidden()
	}

	return s.reportRepo.Delete(ctx, id)
}

// Validate records a reviewer's verdict on a pending report.
func (s *ReportService) Validate(ctx context.Context, id uuid.UUID, input ValidateReportInput) error {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{
		Roles: []model.Role{model.RoleProfessor, model.RoleCoordenador},
	})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceReport, authz.ActionValidate)); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if report.Status != model.StatusAguardandoValidacao {
		return apperr.Conflict(apperr.ErrReportLocked)
	}

	return s.reportRepo.SetStatus(ctx, id, input.Status)
}

// BatchOutcome is the per-item result of a batch operation.
type BatchOutcome string

const (
	OutcomeDeleted BatchOutcome = "deleted"
	OutcomeSkipped BatchOutcome = "skipped"
	OutcomeFailed  BatchOutcome = "failed"
)

// BatchItem reports what happened to a single report in a batch.
type BatchItem struct {
	ID      uuid.UUID    `json:"id"`
	Outcome BatchOutcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}

// BatchResult aggregates a batch delete. Partial failure is expected:
// one locked report never blocks the others.
type BatchResult struct {
	Succeeded int         `json:"succeeded"`
	Skipped   int         `json:"skipped"`
	Failed    int         `json:"failed"`
	Items     []BatchItem `json:"items"`
	Message   string      `json:"message"`
}

// BatchDelete deletes the selected reports as independent per-item
// operations executed concurrently. Items denied by ownership or the
// status gate are skipped; store failures are reported as failed.
func (s *ReportService) BatchDelete(ctx context.Context, ids []uuid.UUID) (*BatchResult, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: []model.Role{model.RoleAluno}})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceReport, authz.ActionDelete)); err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(ids))
	g, gtx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, id := range ids {
		g.Go(func() error {
			items[i] = s.deleteOne(gtx, gctx.Principal, id)
			return nil
		})
	}
	_ = g.Wait() // items never return errors

	result := &BatchResult{Items: items}
	for _, item := range items {
		switch item.Outcome {
		case OutcomeDeleted:
			result.Succeeded++
		case OutcomeSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}
	result.Message = batchMessage(result)

	return result, nil
}

func (s *ReportService) deleteOne(ctx context.Context, p *model.Principal, id uuid.UUID) BatchItem {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return BatchItem{ID: id, Outcome: OutcomeFailed, Reason: apperr.From(err).Message}
	}
	if !s.policy.CanMutate(p, report) {
		return BatchItem{ID: id, Outcome: OutcomeSkipped, Reason: apperr.GetMessage(apperr.ErrReportLocked)}
	}
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return BatchItem{ID: id, Outcome: OutcomeFailed, Reason: apperr.From(err).Message}
	}
	return BatchItem{ID: id, Outcome: OutcomeDeleted}
}

func batchMessage(r *BatchResult) string {
	if r.Skipped == 0 && r.Failed == 0 {
		return fmt.Sprintf("%d relatório(s) excluído(s).", r.Succeeded)
	}
	return fmt.Sprintf(
		"%d relatório(s) excluído(s), %d ignorado(s), %d com falha.",
		r.Succeeded, r.Skipped, r.Failed,
	)
}

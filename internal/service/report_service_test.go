package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(p *model.Principal) (*ReportService, *fakeReportRepo, *fakeCategoryRepo) {
	reports := newFakeReportRepo()
	categories := newFakeCategoryRepo(reports)
	svc := NewReportService(newTestGuard(p), newTestEvaluator(), reports, categories, zerolog.Nop())
	return svc, reports, categories
}

func alunoPrincipal() *model.Principal {
	return &model.Principal{ID: uuid.New(), Role: model.RoleAluno}
}

func seedCategory(t *testing.T, categories *fakeCategoryRepo) *model.Category {
	t.Helper()
	category := &model.Category{CourseID: uuid.New(), Name: "Extensão", MaxHours: 60}
	require.NoError(t, categories.Create(context.Background(), category))
	return category
}

func seedReport(repo *fakeReportRepo, ownerID uuid.UUID, status model.ReportStatus) *model.Report {
	report := &model.Report{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       "Monitoria de Cálculo",
		Description: "Semestre 2026.1",
		Hours:       30,
		Status:      status,
	}
	repo.reports[report.ID] = report
	return report
}

func TestReportCreateStartsPending(t *testing.T) {
	p := alunoPrincipal()
	svc, _, categories := newReportFixture(p)
	category := seedCategory(t, categories)

	report, err := svc.Create(context.Background(), CreateReportInput{
		CategoryID:  category.ID,
		Title:       "Semana acadêmica",
		Description: "Participação integral",
		Hours:       8,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAguardandoValidacao, report.Status)
	assert.Equal(t, p.ID, report.OwnerID)
	require.NotNil(t, report.CategoryID)
	assert.Equal(t, category.ID, *report.CategoryID)
}

func TestReportCreateUnknownCategory(t *testing.T) {
	svc, _, _ := newReportFixture(alunoPrincipal())

	_, err := svc.Create(context.Background(), CreateReportInput{
		CategoryID:  uuid.New(),
		Title:       "Semana acadêmica",
		Description: "Participação integral",
		Hours:       8,
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReportCreateRejectsNonAluno(t *testing.T) {
	p := &model.Principal{ID: uuid.New(), Role: model.RoleProfessor}
	svc, _, categories := newReportFixture(p)
	category := seedCategory(t, categories)

	_, err := svc.Create(context.Background(), CreateReportInput{
		CategoryID:  category.ID,
		Title:       "Semana acadêmica",
		Description: "Participação integral",
		Hours:       8,
	})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestReportValidationPrecedesAuthentication(t *testing.T) {
	svc, _, _ := newReportFixture(nil)

	_, err := svc.Create(context.Background(), CreateReportInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReportListScopedToOwnerForAluno(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, _ := newReportFixture(p)
	seedReport(reports, p.ID, model.StatusAguardandoValidacao)
	seedReport(reports, p.ID, model.StatusValido)
	seedReport(reports, uuid.New(), model.StatusAguardandoValidacao)

	list, pagination, err := svc.List(context.Background(), 1, 20)
	require.NoError(t, err)

	assert.Len(t, list, 2)
	assert.Equal(t, 2, pagination.TotalItems)
	for _, r := range list {
		assert.Equal(t, p.ID, r.OwnerID)
	}
}

func TestReportListUnscopedForCoordenador(t *testing.T) {
	p := &model.Principal{ID: uuid.New(), Role: model.RoleCoordenador}
	svc, reports, _ := newReportFixture(p)
	seedReport(reports, uuid.New(), model.StatusAguardandoValidacao)
	seedReport(reports, uuid.New(), model.StatusValido)

	list, _, err := svc.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReportUpdateLockedAfterValidation(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, categories := newReportFixture(p)
	category := seedCategory(t, categories)
	report := seedReport(reports, p.ID, model.StatusValido)

	_, err := svc.Update(context.Background(), report.ID, UpdateReportInput{
		CategoryID:  category.ID,
		Title:       "Título novo",
		Description: "Descrição nova",
		Hours:       10,
	})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestReportUpdateByNonOwner(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, categories := newReportFixture(p)
	category := seedCategory(t, categories)
	report := seedReport(reports, uuid.New(), model.StatusAguardandoValidacao)

	_, err := svc.Update(context.Background(), report.ID, UpdateReportInput{
		CategoryID:  category.ID,
		Title:       "Título novo",
		Description: "Descrição nova",
		Hours:       10,
	})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestReportUpdateMissing(t *testing.T) {
	p := alunoPrincipal()
	svc, _, categories := newReportFixture(p)
	category := seedCategory(t, categories)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateReportInput{
		CategoryID:  category.ID,
		Title:       "Título novo",
		Description: "Descrição nova",
		Hours:       10,
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReportDeletePending(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, _ := newReportFixture(p)
	report := seedReport(reports, p.ID, model.StatusAguardandoValidacao)

	require.NoError(t, svc.Delete(context.Background(), report.ID))

	_, err := reports.GetByID(context.Background(), report.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReportValidateVerdicts(t *testing.T) {
	reviewer := &model.Principal{ID: uuid.New(), Role: model.RoleProfessor}
	svc, reports, _ := newReportFixture(reviewer)
	report := seedReport(reports, uuid.New(), model.StatusAguardandoValidacao)

	require.NoError(t, svc.Validate(context.Background(), report.ID, ValidateReportInput{Status: model.StatusValido}))

	stored, err := reports.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusValido, stored.Status)

	// A second verdict on the same report is a conflict.
	err = svc.Validate(context.Background(), report.ID, ValidateReportInput{Status: model.StatusInvalido})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestReportValidateRejectsAluno(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, _ := newReportFixture(p)
	report := seedReport(reports, p.ID, model.StatusAguardandoValidacao)

	err := svc.Validate(context.Background(), report.ID, ValidateReportInput{Status: model.StatusValido})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestReportBatchDeletePartialSuccess(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, _ := newReportFixture(p)

	pending1 := seedReport(reports, p.ID, model.StatusAguardandoValidacao)
	pending2 := seedReport(reports, p.ID, model.StatusAguardandoValidacao)
	locked := seedReport(reports, p.ID, model.StatusValido)
	missing := uuid.New()

	result, err := svc.BatchDelete(context.Background(), []uuid.UUID{
		pending1.ID, locked.ID, pending2.ID, missing,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 4)

	// Outcomes line up with the request order.
	assert.Equal(t, OutcomeDeleted, result.Items[0].Outcome)
	assert.Equal(t, OutcomeSkipped, result.Items[1].Outcome)
	assert.Equal(t, OutcomeDeleted, result.Items[2].Outcome)
	assert.Equal(t, OutcomeFailed, result.Items[3].Outcome)
	assert.NotEmpty(t, result.Items[1].Reason)
	assert.NotEmpty(t, result.Message)

	// The locked report survived; the pending ones are gone.
	_, err = reports.GetByID(context.Background(), locked.ID)
	assert.NoError(t, err)
	_, err = reports.GetByID(context.Background(), pending1.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReportBatchDeleteSkipsForeignReports(t *testing.T) {
	p := alunoPrincipal()
	svc, reports, _ := newReportFixture(p)
	foreign := seedReport(reports, uuid.New(), model.StatusAguardandoValidacao)

	result, err := svc.BatchDelete(context.Background(), []uuid.UUID{foreign.ID})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 1, result.Skipped)

	_, err = reports.GetByID(context.Background(), foreign.ID)
	assert.NoError(t, err)
}

func TestReportBatchDeleteEmpty(t *testing.T) {
	svc, _, _ := newReportFixture(alunoPrincipal())

	result, err := svc.BatchDelete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Succeeded)
	assert.Empty(t, result.Items)
}

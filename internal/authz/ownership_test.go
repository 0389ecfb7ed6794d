package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestReportPolicyOwnership(t *testing.T) {
	var policy ReportPolicy

	owner := &model.Principal{ID: uuid.New(), Role: model.RoleAluno}
	other := &model.Principal{ID: uuid.New(), Role: model.RoleAluno}
	report := &model.Report{
		ID:      uuid.New(),
		OwnerID: owner.ID,
		Status:  model.StatusAguardandoValidacao,
	}

	assert.True(t, policy.CanMutate(owner, report))
	assert.False(t, policy.CanMutate(other, report), "another aluno must never mutate the report")

	// Privilege does not substitute for ownership on report contents.
	admin := &model.Principal{ID: uuid.New(), Role: model.RoleAdmin}
	assert.False(t, policy.CanMutate(admin, report))
}

func TestReportPolicyStateGate(t *testing.T) {
	var policy ReportPolicy

	owner := &model.Principal{ID: uuid.New(), Role: model.RoleAluno}

	locked := []model.ReportStatus{
		model.StatusValido,
		model.StatusInvalido,
		model.StatusRecategorizacao,
	}
	for _, status := range locked {
		report := &model.Report{ID: uuid.New(), OwnerID: owner.ID, Status: status}
		assert.False(t, policy.CanMutate(owner, report),
			"owner mutated report in status %s", status)
	}
}

func TestReportPolicyNilInputs(t *testing.T) {
	var policy ReportPolicy
	assert.False(t, policy.Owns(nil, &model.Report{}))
	assert.False(t, policy.Owns(&model.Principal{}, nil))
	assert.False(t, policy.StateAllows(nil))
}

func TestCategoryPolicyScope(t *testing.T) {
	var policy CategoryPolicy

	courseA := uuid.New()
	courseB := uuid.New()
	category := &model.Category{ID: uuid.New(), CourseID: courseA}

	coordA := &model.Principal{ID: uuid.New(), Role: model.RoleCoordenador, CourseID: &courseA}
	coordB := &model.Principal{ID: uuid.New(), Role: model.RoleCoordenador, CourseID: &courseB}
	admin := &model.Principal{ID: uuid.New(), Role: model.RoleAdmin}
	aluno := &model.Principal{ID: uuid.New(), Role: model.RoleAluno, CourseID: &courseA}

	assert.True(t, policy.CanManage(coordA, category))
	assert.False(t, policy.CanManage(coordB, category), "coordenador of another course")
	assert.True(t, policy.CanManage(admin, category))
	assert.False(t, policy.CanManage(aluno, category))

	// A coordenador without a responsible course manages nothing.
	orphan := &model.Principal{ID: uuid.New(), Role: model.RoleCoordenador}
	assert.False(t, policy.CanManage(orphan, category))
}

package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/authz"
	"github.com/sigac/sigac-core/internal/guard"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/session"
	"github.com/sigac/sigac-core/internal/validator"
)

// In-memory stand-ins for the pgx repositories. They reproduce the
// repository contract, including the NotFound/Conflict mapping, so
// services behave exactly as they do against Postgres.

type fakeSessions struct {
	principal *model.Principal
}

func (f fakeSessions) Current(_ context.Context) (*model.Principal, error) {
	if f.principal == nil {
		return nil, session.ErrNoSession
	}
	return f.principal, nil
}

func newTestGuard(p *model.Principal) *guard.Guard {
	return guard.New(fakeSessions{principal: p}, validator.New(), zerolog.Nop())
}

func newTestEvaluator() *authz.Evaluator {
	return authz.NewEvaluator(authz.NewDefaultRegistry())
}

// ─── Reports ───────────────────────────────────────────────────────────

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*model.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*model.Report)}
}

func (f *fakeReportRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, apperr.NotFound(apperr.ErrReportNotFound)
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReportRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*model.Report, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Report
	for _, r := range f.reports {
		if r.OwnerID == ownerID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeReportRepo) ListAll(_ context.Context, limit, offset int) ([]*model.Report, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Report
	for _, r := range f.reports {
		clone := *r
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeReportRepo) Create(_ context.Context, report *model.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	clone := *report
	f.reports[report.ID] = &clone
	return nil
}

func (f *fakeReportRepo) Update(_ context.Context, report *model.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[report.ID]; !ok {
		return apperr.NotFound(apperr.ErrReportNotFound)
	}
	clone := *report
	f.reports[report.ID] = &clone
	return nil
}

func (f *fakeReportRepo) SetStatus(_ context.Context, id uuid.UUID, status model.ReportStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return apperr.NotFound(apperr.ErrReportNotFound)
	}
	r.Status = status
	return nil
}

func (f *fakeReportRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[id]; !ok {
		return apperr.NotFound(apperr.ErrReportNotFound)
	}
	delete(f.reports, id)
	return nil
}

// ─── Categories ────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*model.Category

	// reports, when set, receives the recategorization cascade exactly
	// as the SQL transaction would apply it.
	reports *fakeReportRepo
}

func newFakeCategoryRepo(reports *fakeReportRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[uuid.UUID]*model.Category),
		reports:    reports,
	}
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound(apperr.ErrCategoryNotFound)
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCategoryRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Category
	for _, c := range f.categories {
		if c.CourseID == courseID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	for _, c := range f.categories {
		if c.CourseID == category.CourseID && c.Name == category.Name {
			return apperr.Conflict(apperr.ErrDependencyExists)
		}
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[category.ID]; !ok {
		return apperr.NotFound(apperr.ErrCategoryNotFound)
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) DeleteWithReassign(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return 0, apperr.NotFound(apperr.ErrCategoryNotFound)
	}

	reassigned := 0
	if f.reports != nil {
		f.reports.mu.Lock()
		for _, r := range f.reports.reports {
			if r.CategoryID != nil && *r.CategoryID == id {
				r.CategoryID = nil
				r.Status = model.StatusRecategorizacao
				reassigned++
			}
		}
		f.reports.mu.Unlock()
	}

	delete(f.categories, id)
	return reassigned, nil
}

// ─── Courses ───────────────────────────────────────────────────────────

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*model.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uuid.UUID]*model.Course)}
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, apperr.NotFound(apperr.ErrCourseNotFound)
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.Code == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperr.NotFound(apperr.ErrCourseNotFound)
}

func (f *fakeCourseRepo) List(_ context.Context) ([]*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Course
	for _, c := range f.courses {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeCourseRepo) Create(_ context.Context, course *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	for _, c := range f.courses {
		if c.Code == course.Code {
			return apperr.Conflict(apperr.ErrCourseCodeTaken)
		}
	}
	clone := *course
	f.courses[course.ID] = &clone
	return nil
}

func (f *fakeCourseRepo) Update(_ context.Context, course *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[course.ID]; !ok {
		return apperr.NotFound(apperr.ErrCourseNotFound)
	}
	clone := *course
	f.courses[course.ID] = &clone
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[id]; !ok {
		return apperr.NotFound(apperr.ErrCourseNotFound)
	}
	delete(f.courses, id)
	return nil
}

// ─── Users ─────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound(apperr.ErrUserNotFound)
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound(apperr.ErrUserNotFound)
}

func (f *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*model.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.User
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperr.Conflict(apperr.ErrEmailTaken)
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound(apperr.ErrUserNotFound)
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, id uuid.UUID, role model.Role, courseID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound(apperr.ErrUserNotFound)
	}
	u.Role = role
	u.CourseID = courseID
	return nil
}

func (f *fakeUserRepo) SetBanned(_ context.Context, id uuid.UUID, banned bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound(apperr.ErrUserNotFound)
	}
	u.Banned = banned
	return nil
}

func (f *fakeUserRepo) SetPasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound(apperr.ErrUserNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound(apperr.ErrUserNotFound)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountAlunosByCourse(_ context.Context, courseID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, u := range f.users {
		if u.Role == model.RoleAluno && u.CourseID != nil && *u.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

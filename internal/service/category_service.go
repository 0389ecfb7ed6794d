package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/authz"
	"github.com/sigac/sigac-core/internal/guard"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/repository"
)

// CategoryService handles activity-category use-cases. A coordenador
// may only manage categories of the course they are responsible for;
// admins manage any course.
type CategoryService struct {
	guard        *guard.Guard
	eval         *authz.Evaluator
	policy       authz.CategoryPolicy
	categoryRepo repository.CategoryRepository
	courseRepo   repository.CourseRepository
	log          zerolog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(
	g *guard.Guard,
	eval *authz.Evaluator,
	categoryRepo repository.CategoryRepository,
	courseRepo repository.CourseRepository,
	log zerolog.Logger,
) *CategoryService {
	return &CategoryService{
		guard:        g,
		eval:         eval,
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		log:          log,
	}
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
	Name     string    `json:"name" validate:"required,max=120"`
	MaxHours int       `json:"max_hours" validate:"required,min=1,max=1000"`
}

var categoryManagers = []model.Role{model.RoleCoordenador, model.RoleAdmin}

// Create adds a category to a course.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: categoryManagers})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCategory, authz.ActionCreate)); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	category := &model.Category{
		CourseID: input.CourseID,
		Name:     input.Name,
		MaxHours: input.MaxHours,
	}
	if !s.policy.CanManage(gctx.Principal, category) {
		return nil, apperr.Forbidden()
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category's name and hour cap.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*model.Category, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: categoryManagers})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCategory, authz.ActionUpdate)); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanManage(gctx.Principal, category) {
		return nil, apperr.Forbidden()
	}

	// Categories cannot move between courses; only the input's name and
	// cap are applied.
	category.Name = input.Name
	category.MaxHours = input.MaxHours

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteResult reports the side effects of a category deletion.
type DeleteResult struct {
	Reassigned int `json:"reassigned"`
}

// Delete removes a category. All reports referencing it are moved to
// RECATEGORIZACAO with the reference cleared, atomically with the
// deletion, so no report is ever left pointing at a dead category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: categoryManagers})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCategory, authz.ActionDelete)); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanManage(gctx.Principal, category) {
		return nil, apperr.Forbidden()
	}

	reassigned, err := s.categoryRepo.DeleteWithReassign(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("category_id", id.String()).
		Int("reassigned", reassigned).
		Msg("Category deleted, reports flagged for recategorization")

	return &DeleteResult{Reassigned: reassigned}, nil
}

// ListByCourse returns the categories of a course, visible to any
// authenticated user.
func (s *CategoryService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Category, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{RequireAuth: true})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCategory, authz.ActionList)); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByCourse(ctx, courseID)
}

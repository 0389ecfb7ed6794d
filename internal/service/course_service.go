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

// CourseService handles course administration. All mutations are
// admin-only through the role grants.
type CourseService struct {
	guard      *guard.Guard
	eval       *authz.Evaluator
	courseRepo repository.CourseRepository
	userRepo   repository.UserRepository
	log        zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	g *guard.Guard,
	eval *authz.Evaluator,
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	log zerolog.Logger,
) *CourseService {
	return &CourseService{guard: g, eval: eval, courseRepo: courseRepo, userRepo: userRepo, log: log}
}

// CourseInput is the payload for creating or updating a course.
type CourseInput struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=160"`
}

// Create registers a new course. A duplicate code surfaces as Conflict.
func (s *CourseService) Create(ctx context.Context, input CourseInput) (*model.Course, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: []model.Role{model.RoleAdmin}})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCourse, authz.ActionCreate)); err != nil {
		return nil, err
	}

	course := &model.Course{Code: input.Code, Name: input.Name}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]*model.Course, error) {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{RequireAuth: true})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCourse, authz.ActionList)); err != nil {
		return nil, err
	}
	return s.courseRepo.List(ctx)
}

// Update edits a course's code and name.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error) {
	gctx, err := guard.Run(ctx, s.guard, input, guard.Options{Roles: []model.Role{model.RoleAdmin}})
	if err != nil {
		return nil, err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCourse, authz.ActionUpdate)); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Code = input.Code
	course.Name = input.Name

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course. A course with enrolled alunos cannot be
// deleted; that is a Conflict, not a Forbidden.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	gctx, err := guard.Run(ctx, s.guard, guard.None{}, guard.Options{Roles: []model.Role{model.RoleAdmin}})
	if err != nil {
		return err
	}
	if err := denyError(s.eval.Evaluate(gctx.Principal, authz.ResourceCourse, authz.ActionDelete)); err != nil {
		return err
	}

	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}

	enrolled, err := s.userRepo.CountAlunosByCourse(ctx, id)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return apperr.Conflict(apperr.ErrCourseHasAlunos)
	}

	return s.courseRepo.Delete(ctx, id)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/config"
	"github.com/sigac/sigac-core/internal/database"
	"github.com/sigac/sigac-core/internal/logger"
	"github.com/sigac/sigac-core/internal/model"
	"github.com/sigac/sigac-core/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo course with categories and one user per role, for local
// development. Idempotent: existing records are reused.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	courseRepo := repository.NewCourseRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	fmt.Println("=== Seeding demo data ===")

	course, err := courseRepo.GetByCode(ctx, "BCC")
	if err != nil {
		if apperr.KindOf(err) != apperr.KindNotFound {
			log.Fatal().Err(err).Msg("Failed to look up course")
		}
		course = &model.Course{Code: "BCC", Name: "Bacharelado em Ciência da Computação"}
		if err := courseRepo.Create(ctx, course); err != nil {
			log.Fatal().Err(err).Msg("Failed to create course")
		}
		fmt.Printf("Created course %s (%s)\n", course.Code, course.ID)
	}

	categories := []struct {
		name     string
		maxHours int
	}{
		{"Monitoria", 60},
		{"Iniciação Científica", 120},
		{"Palestras e Eventos", 40},
	}
	for _, c := range categories {
		category := &model.Category{CourseID: course.ID, Name: c.name, MaxHours: c.maxHours}
		if err := categoryRepo.Create(ctx, category); err != nil {
			var e *apperr.Error
			if errors.As(err, &e) && e.Kind == apperr.KindConflict {
				continue // already seeded
			}
			log.Fatal().Err(err).Str("category", c.name).Msg("Failed to create category")
		}
		fmt.Printf("Created category %q\n", c.name)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha12345"), cfg.BcryptCost)
	users := []*model.User{
		{Name: "Aluno Demo", Email: "aluno@sigac.dev", Role: model.RoleAluno, CourseID: &course.ID},
		{Name: "Professor Demo", Email: "professor@sigac.dev", Role: model.RoleProfessor},
		{Name: "Coordenador Demo", Email: "coordenador@sigac.dev", Role: model.RoleCoordenador, CourseID: &course.ID},
		{Name: "Admin Demo", Email: "admin@sigac.dev", Role: model.RoleAdmin},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		if err := userRepo.Create(ctx, u); err != nil {
			var e *apperr.Error
			if errors.As(err, &e) && e.Kind == apperr.KindConflict {
				continue
			}
			log.Fatal().Err(err).Str("email", u.Email).Msg("Failed to create user")
		}
		fmt.Printf("Created %s (%s)\n", u.Role, u.Email)
	}

	fmt.Println("Done. Default password: senha12345")
}

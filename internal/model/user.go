package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents any account in the system: aluno, professor,
// coordenador, or admin.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Banned       bool       `json:"banned"`
	CourseID     *uuid.UUID `json:"course_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal is the authenticated actor resolved from a session.
// CourseID is the aluno's enrollment or, for a coordenador, the course
// they are responsible for.
type Principal struct {
	ID       uuid.UUID  `json:"id"`
	Role     Role       `json:"role"`
	Banned   bool       `json:"banned"`
	CourseID *uuid.UUID `json:"course_id,omitempty"`
}

// Principal derives the authorization view of a user.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:       u.ID,
		Role:     u.Role,
		Banned:   u.Banned,
		CourseID: u.CourseID,
	}
}

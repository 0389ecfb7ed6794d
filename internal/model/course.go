package model

import (
	"time"

	"github.com/google/uuid"
)

// Course is a degree program. Alunos enroll in a course; each
// coordenador is responsible for exactly one.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

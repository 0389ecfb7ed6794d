package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is an activity category belonging to a course. Reports are
// submitted against a category and count toward its hour cap.
type Category struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Name      string    `json:"name"`
	MaxHours  int       `json:"max_hours"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the validation lifecycle of an activity report.
type ReportStatus string

const (
	// StatusAguardandoValidacao is the initial state. Only while here may
	// the owning aluno edit or delete the report.
	StatusAguardandoValidacao ReportStatus = "AGUARDANDO_VALIDACAO"

	// StatusValido marks a report accepted by a reviewer.
	StatusValido ReportStatus = "VALIDO"

	// StatusInvalido marks a report rejected by a reviewer.
	StatusInvalido ReportStatus = "INVALIDO"

	// StatusRecategorizacao marks a report whose category was deleted and
	// which must be assigned to a new category before re-validation.
	StatusRecategorizacao ReportStatus = "RECATEGORIZACAO"
)

// Report is a complementary-activity report submitted by an aluno.
type Report struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Hours       int          `json:"hours"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

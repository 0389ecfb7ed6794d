package response

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sigac/sigac-core/internal/apperr"
)

// Envelope is the standardized result surfaced to any caller (API
// route, CLI, job). Exactly one of Data or Error is populated.
type Envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// ErrorBody is the serialized form of an apperr.Error.
type ErrorBody struct {
	Code    apperr.ErrCode    `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination holds pagination information for list results.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination derives page counts from a total.
func NewPagination(page, perPage, total int) *Pagination {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return &Pagination{Page: page, PerPage: perPage, TotalItems: total, TotalPages: pages}
}

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Ok wraps successful data in an envelope.
func Ok(data any) Envelope {
	return Envelope{Success: true, Data: data, Metadata: buildMetadata()}
}

// Fail wraps any error in an envelope. Non-taxonomy errors are
// normalized to an internal failure so the message is always safe to
// display.
func Fail(err error) Envelope {
	e := apperr.From(err)
	return Envelope{
		Success:  false,
		Error:    &ErrorBody{Code: e.Code, Message: e.Message, Fields: e.Fields},
		Metadata: buildMetadata(),
	}
}

// StatusFor maps an error kind to the HTTP status a transport should
// respond with.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func buildMetadata() Metadata {
	return Metadata{
		RequestID: uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

package service

import (
	"github.com/sigac/sigac-core/internal/apperr"
	"github.com/sigac/sigac-core/internal/authz"
)

// denyError maps an evaluator denial onto the error taxonomy. A
// missing principal is an authentication problem; everything else is
// Forbidden, with the same generic message whether the role lacks the
// capability or the account is banned.
func denyError(d authz.Decision) error {
	if d.Allowed {
		return nil
	}
	if d.Reason == authz.DenyNoPrincipal {
		return apperr.Unauthorized()
	}
	return apperr.Forbidden()
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// normalizePage clamps pagination inputs to sane bounds.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

type memberLister interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
}

// statsInvalidator is satisfied by StatsService; mutations that change aggregates call it.
type statsInvalidator interface {
	Invalidate(ctx context.Context)
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// lookupError maps a repository read failure onto NOT_FOUND or INTERNAL_ERROR.
func lookupError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+resource)
}

// writeError maps a repository write failure; a zero-row write means the target vanished.
func writeError(err error, resource, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+action+" "+resource)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) {}

func invalidatorOrNop(stats statsInvalidator) statsInvalidator {
	if stats == nil {
		return nopInvalidator{}
	}
	return stats
}

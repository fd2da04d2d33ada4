package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// lookupError maps a repository read failure for the named resource.
func lookupError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, resource+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+resource)
}

// validID rejects ids Postgres would refuse to compare against a UUID column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// invalidateTimetable drops the cached entries after a catalogue row is removed,
// since its timetable entries are removed with it.
func invalidateTimetable(ctx context.Context, cache *CacheService, logger *zap.Logger) {
	if err := cache.Invalidate(ctx, TimetableEntriesCacheKey); err != nil {
		logger.Warn("failed to invalidate timetable cache", zap.Error(err))
	}
}

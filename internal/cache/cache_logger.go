package cache

import (
	"context"
	"log/slog"
)

// Stats cache keys, relative to the stats prefix
const (
	AdminStatsKey = "admin"
)

func TeacherStatsKey(teacherID string) string {
	return "teacher:" + teacherID
}

func StudentStatsKey(studentID string) string {
	return "student:" + studentID
}

// SafeDelete deletes cache keys, logging instead of returning failures
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeInvalidatePattern invalidates a key pattern, logging instead of returning failures
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateAdminStats drops the platform-wide counters
func InvalidateAdminStats(ctx context.Context, cm *CacheManager) {
	SafeDelete(ctx, cm.Stats, AdminStatsKey)
}

// InvalidateTeacherStats drops the teacher dashboard and, when studentIDs are given, their dashboards too
func InvalidateTeacherStats(ctx context.Context, cm *CacheManager, teacherID string, studentIDs ...string) {
	keys := make([]string, 0, len(studentIDs)+1)
	keys = append(keys, TeacherStatsKey(teacherID))
	for _, id := range studentIDs {
		keys = append(keys, StudentStatsKey(id))
	}
	SafeDelete(ctx, cm.Stats, keys...)
}

// InvalidateAllStats drops every cached dashboard
func InvalidateAllStats(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

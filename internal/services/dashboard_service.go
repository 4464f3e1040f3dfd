package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/testing-service/internal/cache"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

// NewDashboardService reads counters through cm; a CacheManager without a client reads straight from the store
func NewDashboardService(repo repositories.Repository, cm *cache.CacheManager, logger *slog.Logger) DashboardService {
	if cm == nil {
		cm = cache.NewCacheManager(nil, 0)
	}
	return &dashboardService{
		repo:   repo,
		cache:  cm,
		logger: logger,
	}
}

func (s *dashboardService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	err := s.cache.Stats.CacheOrExecute(ctx, cache.AdminStatsKey, &stats, s.cache.StatsTTL, func() (interface{}, error) {
		return s.repo.Dashboard().GetAdminStats(ctx, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	}
	return &stats, nil
}

func (s *dashboardService) TeacherStats(ctx context.Context, teacherID string) (*models.TeacherDashboardStats, error) {
	var stats models.TeacherDashboardStats
	err := s.cache.Stats.CacheOrExecute(ctx, cache.TeacherStatsKey(teacherID), &stats, s.cache.StatsTTL, func() (interface{}, error) {
		return s.repo.Dashboard().GetTeacherStats(ctx, nil, teacherID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher stats: %w", err)
	}
	return &stats, nil
}

func (s *dashboardService) StudentStats(ctx context.Context, studentID string) (*models.StudentDashboardStats, error) {
	var stats models.StudentDashboardStats
	err := s.cache.Stats.CacheOrExecute(ctx, cache.StudentStatsKey(studentID), &stats, s.cache.StatsTTL, func() (interface{}, error) {
		return s.repo.Dashboard().GetStudentStats(ctx, nil, studentID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get student stats: %w", err)
	}
	return &stats, nil
}

// ===== INVALIDATION =====

func (s *dashboardService) InvalidateAdmin(ctx context.Context) {
	cache.InvalidateAdminStats(ctx, s.cache)
}

func (s *dashboardService) InvalidateTeacher(ctx context.Context, teacherID string, studentIDs ...string) {
	cache.InvalidateTeacherStats(ctx, s.cache, teacherID, studentIDs...)
}

package repositories

import (
	"context"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"gorm.io/gorm"
)

// DashboardRepository computes the aggregate counts behind the three dashboards
type DashboardRepository interface {
	// Platform-wide counts for super-admins
	GetAdminStats(ctx context.Context, tx *gorm.DB) (*models.AdminStats, error)

	// Counts scoped to one teacher's students and tests
	GetTeacherStats(ctx context.Context, tx *gorm.DB, teacherID string) (*models.TeacherDashboardStats, error)

	// Counts scoped to one student's assignments and submissions
	GetStudentStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.StudentDashboardStats, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== ADMIN =====

func (r *dashboardRepository) GetAdminStats(ctx context.Context, tx *gorm.DB) (*models.AdminStats, error) {
	db := r.getDB(tx).WithContext(ctx)
	stats := &models.AdminStats{}
	var err error

	if stats.ActiveTeachers, err = count(db, &models.User{}, "role = ? AND is_active = ?", models.RoleTeacher, true); err != nil {
		return nil, fmt.Errorf("failed to count active teachers: %w", err)
	}
	if stats.TotalStudents, err = count(db, &models.Student{}, nil); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if stats.TotalTests, err = count(db, &models.Test{}, nil); err != nil {
		return nil, fmt.Errorf("failed to count tests: %w", err)
	}

	return stats, nil
}

// ===== TEACHER =====

func (r *dashboardRepository) GetTeacherStats(ctx context.Context, tx *gorm.DB, teacherID string) (*models.TeacherDashboardStats, error) {
	db := r.getDB(tx).WithContext(ctx)
	stats := &models.TeacherDashboardStats{}
	var err error

	if stats.TotalStudents, err = count(db, &models.Student{}, "teacher_id = ?", teacherID); err != nil {
		return nil, fmt.Errorf("failed to count teacher students: %w", err)
	}
	if stats.TotalTests, err = count(db, &models.Test{}, "teacher_id = ?", teacherID); err != nil {
		return nil, fmt.Errorf("failed to count teacher tests: %w", err)
	}

	teacherTests := db.Model(&models.Test{}).Select("id").Where("teacher_id = ?", teacherID)
	if stats.TotalSubmissions, err = count(db, &models.Submission{}, "test_id IN (?)", teacherTests); err != nil {
		return nil, fmt.Errorf("failed to count teacher submissions: %w", err)
	}

	return stats, nil
}

// ===== STUDENT =====

func (r *dashboardRepository) GetStudentStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.StudentDashboardStats, error) {
	db := r.getDB(tx).WithContext(ctx)
	stats := &models.StudentDashboardStats{}

	if err := db.Table(testAssignmentsTable).
		Where("user_id = ?", studentID).
		Count(&stats.TotalAssignedTests).Error; err != nil {
		return nil, fmt.Errorf("failed to count assigned tests: %w", err)
	}

	var err error
	if stats.TotalSubmitted, err = count(db, &models.Submission{}, "student_id = ?", studentID); err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	if stats.TotalGraded, err = count(db, &models.Submission{}, "student_id = ? AND graded = ?", studentID, true); err != nil {
		return nil, fmt.Errorf("failed to count graded submissions: %w", err)
	}

	return stats, nil
}

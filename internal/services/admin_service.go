package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
)

type adminService struct {
	repo      repositories.Repository
	auth      AuthService
	dashboard DashboardService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewAdminService(repo repositories.Repository, auth AuthService, dashboard DashboardService, publisher events.EventPublisher, logger *slog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		auth:      auth,
		dashboard: dashboard,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *adminService) ListTeachers(ctx context.Context) ([]*models.User, error) {
	teachers, err := s.repo.User().ListByRole(ctx, nil, models.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

// CreateTeacher applies the same rules as self-registration
func (s *adminService) CreateTeacher(ctx context.Context, req *RegisterTeacherRequest, adminID string) (*models.UserSummary, error) {
	return s.auth.RegisterTeacher(ctx, req, adminID)
}

func (s *adminService) DeactivateTeacher(ctx context.Context, teacherID, adminID string) error {
	s.logger.Info("Deactivating teacher", "teacher_id", teacherID, "admin_id", adminID)

	teacher, err := s.repo.User().GetByID(ctx, nil, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher.Role != models.RoleTeacher {
		return ErrTeacherNotFound
	}
	if !teacher.IsActive {
		return nil
	}

	if err := s.repo.User().Deactivate(ctx, nil, teacherID); err != nil {
		return fmt.Errorf("failed to deactivate teacher: %w", err)
	}

	s.dashboard.InvalidateAdmin(ctx)
	publishEvent(ctx, s.publisher, s.logger, events.TeacherDeactivated, events.TeacherEventData{
		TeacherID: teacherID,
		ActorID:   adminID,
	})
	return nil
}

func (s *adminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.dashboard.AdminStats(ctx)
}

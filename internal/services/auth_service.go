package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/testing-service/internal/auth"
	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"github.com/SAP-F-2025/testing-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	hasher    *auth.PasswordHasher
	dashboard DashboardService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	hasher *auth.PasswordHasher,
	dashboard DashboardService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		hasher:    hasher,
		dashboard: dashboard,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ===== REGISTRATION =====

func (s *authService) RegisterTeacher(ctx context.Context, req *RegisterTeacherRequest, createdBy string) (*models.UserSummary, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, models.RoleTeacher)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Teacher registered", "teacher_id", user.ID, "created_by", createdBy)
	s.dashboard.InvalidateAdmin(ctx)
	publishEvent(ctx, s.publisher, s.logger, events.TeacherRegistered, events.TeacherEventData{
		TeacherID: user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ActorID:   createdBy,
	})

	summary := models.NewUserSummary(user)
	return &summary, nil
}

func (s *authService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest, teacherID string) (*models.RegisteredStudent, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.StudentID = strings.TrimSpace(req.StudentID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	taken, err := s.repo.Student().ExistsByStudentID(ctx, nil, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student id: %w", err)
	}
	if taken {
		return nil, ErrStudentIDTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleStudent,
		IsActive: true,
	}
	student := &models.Student{
		StudentID: req.StudentID,
		TeacherID: teacherID,
		Grade:     req.Grade,
	}

	// user and profile are written together or not at all
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, nil, user); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("failed to create student user: %w", err)
		}

		student.UserID = user.ID
		if err := tx.Student().Create(ctx, nil, student); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrStudentIDTaken
			}
			return fmt.Errorf("failed to create student profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student registered", "student_id", user.ID, "teacher_id", teacherID)
	s.dashboard.InvalidateAdmin(ctx)
	s.dashboard.InvalidateTeacher(ctx, teacherID)
	publishEvent(ctx, s.publisher, s.logger, events.StudentRegistered, events.StudentRegisteredData{
		UserID:    user.ID,
		StudentID: student.StudentID,
		TeacherID: teacherID,
		Email:     user.Email,
	})

	return &models.RegisteredStudent{
		ID:        user.ID,
		Name:      user.Name,
		StudentID: student.StudentID,
		Email:     user.Email,
		Grade:     student.Grade,
		Password:  req.Password,
	}, nil
}

// createUser hashes the password and stores the user, mapping uniqueness failures to ErrUserAlreadyExists
func (s *authService) createUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	exists, err := s.repo.User().ExistsByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ===== LOGIN =====

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetActiveByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		s.logger.Warn("Login rejected", "user_id", user.ID, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User: models.AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (s *authService) Authenticate(token string) (*auth.Identity, error) {
	return s.tokens.Parse(token)
}

// ===== BOOTSTRAP =====

func (s *authService) EnsureSuperAdmin(ctx context.Context, name, email, password string) (bool, error) {
	req := &RegisterTeacherRequest{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return false, fmt.Errorf("invalid super-admin configuration: %w", errs)
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, models.RoleSuperAdmin)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("Super-admin created", "user_id", user.ID, "email", user.Email)
	return true, nil
}

package services

import (
	"context"

	"github.com/SAP-F-2025/testing-service/internal/auth"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request types live with their validation rules
type RegisterTeacherRequest = validator.RegisterTeacherRequest
type RegisterStudentRequest = validator.RegisterStudentRequest
type LoginRequest = validator.LoginRequest
type CreateTestRequest = validator.CreateTestRequest
type QuestionRequest = validator.QuestionRequest
type SubmitTestRequest = validator.SubmitTestRequest
type AnswerRequest = validator.AnswerRequest
type GradeSubmissionRequest = validator.GradeSubmissionRequest

// ExportFile is a generated spreadsheet ready to be streamed
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// createdBy is empty for self-registration
	RegisterTeacher(ctx context.Context, req *RegisterTeacherRequest, createdBy string) (*models.UserSummary, error)
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest, teacherID string) (*models.RegisteredStudent, error)
	Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error)

	// Authenticate verifies a bearer token and returns the caller identity
	Authenticate(token string) (*auth.Identity, error)

	// EnsureSuperAdmin creates the super-admin when the email is unused; it reports whether a user was created
	EnsureSuperAdmin(ctx context.Context, name, email, password string) (bool, error)
}

type AdminService interface {
	ListTeachers(ctx context.Context) ([]*models.User, error)
	CreateTeacher(ctx context.Context, req *RegisterTeacherRequest, adminID string) (*models.UserSummary, error)
	DeactivateTeacher(ctx context.Context, teacherID, adminID string) error
	Stats(ctx context.Context) (*models.AdminStats, error)
}

type TeacherService interface {
	ListStudents(ctx context.Context, teacherID string) ([]models.StudentResponse, error)

	CreateTest(ctx context.Context, req *CreateTestRequest, teacherID string) (*models.TestResponse, error)
	ListTests(ctx context.Context, teacherID string) ([]models.TestResponse, error)

	ListSubmissions(ctx context.Context, testID uint, teacherID string) ([]models.SubmissionResponse, error)
	GradeSubmission(ctx context.Context, submissionID uint, req *GradeSubmissionRequest, teacherID string) (*models.SubmissionResponse, error)

	DashboardStats(ctx context.Context, teacherID string) (*models.TeacherDashboardStats, error)
}

type StudentService interface {
	ListAssignedTests(ctx context.Context, studentID string) ([]models.StudentTestResponse, error)
	SubmitTest(ctx context.Context, testID uint, req *SubmitTestRequest, studentID string) (*models.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, studentID string) ([]models.SubmissionResponse, error)
	DashboardStats(ctx context.Context, studentID string) (*models.StudentDashboardStats, error)
}

// DashboardService serves the cached counters and drops them when the underlying data changes
type DashboardService interface {
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	TeacherStats(ctx context.Context, teacherID string) (*models.TeacherDashboardStats, error)
	StudentStats(ctx context.Context, studentID string) (*models.StudentDashboardStats, error)

	InvalidateAdmin(ctx context.Context)
	InvalidateTeacher(ctx context.Context, teacherID string, studentIDs ...string)
}

type ExportService interface {
	ExportSubmissions(ctx context.Context, testID uint, teacherID string) (*ExportFile, error)
}

// ServiceManager manages all services
type ServiceManager interface {
	Auth() AuthService
	Admin() AdminService
	Teacher() TeacherService
	Student() StudentService
	Dashboard() DashboardService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

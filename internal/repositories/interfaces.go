package repositories

import (
	"context"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository stores identities for all three roles
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.User, error)

	ListByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) ([]*models.User, error)

	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Deactivate(ctx context.Context, tx *gorm.DB, id string) error
}

// StudentRepository stores student profiles linked to student users
type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Student, error)
	ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Student, error)

	ExistsByStudentID(ctx context.Context, tx *gorm.DB, studentID string) (bool, error)
}

// TestRepository stores tests and their assignee sets
type TestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, test *models.Test) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Test, error)
	GetByIDWithAssignees(ctx context.Context, tx *gorm.DB, id uint) (*models.Test, error)

	ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Test, error)
	ListAssignedTo(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Test, error)

	IsAssigned(ctx context.Context, tx *gorm.DB, testID uint, userID string) (bool, error)
}

// SubmissionRepository stores student submissions
type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	GetByIDWithTest(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error

	ListByTest(ctx context.Context, tx *gorm.DB, testID uint) ([]*models.Submission, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Submission, error)
	// Keyed by test id; tests without a submission are absent
	MapByStudentAndTests(ctx context.Context, tx *gorm.DB, studentID string, testIDs []uint) (map[uint]*models.Submission, error)

	ExistsByTestAndStudent(ctx context.Context, tx *gorm.DB, testID uint, studentID string) (bool, error)
}

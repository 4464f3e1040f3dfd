package postgres

import (
	"context"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type submissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &submissionPostgreSQL{db: db}
}

func (r *submissionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *submissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(submission).Error; err != nil {
		return handleDBError(err, "create submission")
	}
	return nil
}

func (r *submissionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := r.getDB(tx)
	var submission models.Submission

	if err := db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, handleDBError(err, "get submission by id")
	}
	return &submission, nil
}

func (r *submissionPostgreSQL) GetByIDWithTest(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := r.getDB(tx)
	var submission models.Submission

	if err := db.WithContext(ctx).
		Preload("Test").
		First(&submission, id).Error; err != nil {
		return nil, handleDBError(err, "get submission with test")
	}
	return &submission, nil
}

// Update persists the grading fields; answers are immutable after creation
func (r *submissionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(submission).
		Select("Score", "Feedback", "Graded").
		Omit(clause.Associations).
		Updates(submission).Error; err != nil {
		return handleDBError(err, "update submission")
	}
	return nil
}

func (r *submissionPostgreSQL) ListByTest(ctx context.Context, tx *gorm.DB, testID uint) ([]*models.Submission, error) {
	db := r.getDB(tx)
	var submissions []*models.Submission

	if err := db.WithContext(ctx).
		Preload("Student").
		Where("test_id = ?", testID).
		Scopes(newestFirst("submitted_at")).
		Find(&submissions).Error; err != nil {
		return nil, handleDBError(err, "list submissions by test")
	}
	return submissions, nil
}

func (r *submissionPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Submission, error) {
	db := r.getDB(tx)
	var submissions []*models.Submission

	if err := db.WithContext(ctx).
		Preload("Test").
		Where("student_id = ?", studentID).
		Scopes(newestFirst("submitted_at")).
		Find(&submissions).Error; err != nil {
		return nil, handleDBError(err, "list submissions by student")
	}
	return submissions, nil
}

func (r *submissionPostgreSQL) MapByStudentAndTests(ctx context.Context, tx *gorm.DB, studentID string, testIDs []uint) (map[uint]*models.Submission, error) {
	result := make(map[uint]*models.Submission, len(testIDs))
	if len(testIDs) == 0 {
		return result, nil
	}

	db := r.getDB(tx)
	var submissions []*models.Submission
	if err := db.WithContext(ctx).
		Where("student_id = ? AND test_id IN ?", studentID, testIDs).
		Find(&submissions).Error; err != nil {
		return nil, handleDBError(err, "map submissions by tests")
	}

	for _, s := range submissions {
		result[s.TestID] = s
	}
	return result, nil
}

func (r *submissionPostgreSQL) ExistsByTestAndStudent(ctx context.Context, tx *gorm.DB, testID uint, studentID string) (bool, error) {
	n, err := count(r.getDB(tx).WithContext(ctx), &models.Submission{}, "test_id = ? AND student_id = ?", testID, studentID)
	if err != nil {
		return false, handleDBError(err, "check existing submission")
	}
	return n > 0, nil
}

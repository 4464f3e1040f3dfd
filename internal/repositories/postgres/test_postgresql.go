package postgres

import (
	"context"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"gorm.io/gorm"
)

const testAssignmentsTable = "test_assignments"

type testPostgreSQL struct {
	db *gorm.DB
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &testPostgreSQL{db: db}
}

func (r *testPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts the test and its assignment rows; assigned users must already exist
func (r *testPostgreSQL) Create(ctx context.Context, tx *gorm.DB, test *models.Test) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Omit("Teacher", "AssignedTo.*").
		Create(test).Error; err != nil {
		return handleDBError(err, "create test")
	}
	return nil
}

func (r *testPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Test, error) {
	db := r.getDB(tx)
	var test models.Test

	if err := db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, handleDBError(err, "get test by id")
	}
	return &test, nil
}

func (r *testPostgreSQL) GetByIDWithAssignees(ctx context.Context, tx *gorm.DB, id uint) (*models.Test, error) {
	db := r.getDB(tx)
	var test models.Test

	if err := db.WithContext(ctx).
		Preload("Teacher").
		Preload("AssignedTo").
		First(&test, id).Error; err != nil {
		return nil, handleDBError(err, "get test with assignees")
	}
	return &test, nil
}

func (r *testPostgreSQL) ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Test, error) {
	db := r.getDB(tx)
	var tests []*models.Test

	if err := db.WithContext(ctx).
		Preload("AssignedTo").
		Where("teacher_id = ?", teacherID).
		Scopes(newestFirst("created_at")).
		Find(&tests).Error; err != nil {
		return nil, handleDBError(err, "list tests by teacher")
	}
	return tests, nil
}

func (r *testPostgreSQL) ListAssignedTo(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Test, error) {
	db := r.getDB(tx)
	var tests []*models.Test

	if err := db.WithContext(ctx).
		Joins("JOIN "+testAssignmentsTable+" ta ON ta.test_id = tests.id").
		Where("ta.user_id = ?", userID).
		Preload("Teacher").
		Order("tests.created_at DESC").
		Order("tests.id DESC").
		Find(&tests).Error; err != nil {
		return nil, handleDBError(err, "list tests assigned to user")
	}
	return tests, nil
}

func (r *testPostgreSQL) IsAssigned(ctx context.Context, tx *gorm.DB, testID uint, userID string) (bool, error) {
	db := r.getDB(tx)
	var n int64

	if err := db.WithContext(ctx).
		Table(testAssignmentsTable).
		Where("test_id = ? AND user_id = ?", testID, userID).
		Count(&n).Error; err != nil {
		return false, handleDBError(err, "check test assignment")
	}
	return n > 0, nil
}

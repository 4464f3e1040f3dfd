package postgres

import (
	"context"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type studentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentPostgreSQL{db: db}
}

func (r *studentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *studentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentPostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).
		Preload("User").
		First(&student, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get student by user id")
	}
	return &student, nil
}

func (r *studentPostgreSQL) ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Student, error) {
	db := r.getDB(tx)
	var students []*models.Student

	if err := db.WithContext(ctx).
		Preload("User").
		Where("teacher_id = ?", teacherID).
		Scopes(newestFirst("created_at")).
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list students by teacher")
	}
	return students, nil
}

func (r *studentPostgreSQL) ExistsByStudentID(ctx context.Context, tx *gorm.DB, studentID string) (bool, error) {
	n, err := count(r.getDB(tx).WithContext(ctx), &models.Student{}, "student_id = ?", studentID)
	if err != nil {
		return false, handleDBError(err, "check student id")
	}
	return n > 0, nil
}

// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories/postgres"
)

// NewTestDB opens a private in-memory SQLite database with the full schema migrated.
// A single connection is used, so code under test must run transactional work through the tx handle.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := postgres.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts an active user with the given role. passwordHash may be empty.
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole, name, email, passwordHash string) *models.User {
	t.Helper()

	if passwordHash == "" {
		passwordHash = "x"
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// CreateStudent inserts a student user and its profile owned by teacherID
func CreateStudent(t *testing.T, db *gorm.DB, teacherID, name, email, studentID string) *models.User {
	t.Helper()

	user := CreateUser(t, db, models.RoleStudent, name, email, "")
	profile := &models.Student{UserID: user.ID, StudentID: studentID, TeacherID: teacherID}
	if err := db.Omit("User", "Teacher").Create(profile).Error; err != nil {
		t.Fatalf("create student profile %s: %v", studentID, err)
	}
	return user
}

// CreateTest inserts a test owned by teacherID and assigned to the given users
func CreateTest(t *testing.T, db *gorm.DB, teacherID, title string, questions []models.Question, assignees ...*models.User) *models.Test {
	t.Helper()

	test := &models.Test{
		Title:     title,
		Questions: questions,
		TeacherID: teacherID,
	}
	for _, u := range assignees {
		test.AssignedTo = append(test.AssignedTo, *u)
	}
	if err := db.Omit("Teacher", "AssignedTo.*").Create(test).Error; err != nil {
		t.Fatalf("create test %s: %v", title, err)
	}
	return test
}

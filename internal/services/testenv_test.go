package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/testing-service/internal/cache"
	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/testing-service/internal/testutil"
	"github.com/SAP-F-2025/testing-service/internal/validator"
)

const testSecret = "test-secret-with-at-least-32-characters!"

type testEnv struct {
	sm        ServiceManager
	db        *gorm.DB
	publisher *events.MockEventPublisher
	redis     *miniredis.Miniredis
	ctx       context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.NewTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	publisher := events.NewMockEventPublisher(logger)
	sm := NewServiceManager(ServiceDependencies{
		Repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		Cache:     cache.NewCacheManager(client, time.Minute),
		Publisher: publisher,
		Logger:    logger,
		Validator: validator.New(),
	}, ServiceManagerConfig{
		JWTSecret:  testSecret,
		JWTIssuer:  "school-testing-service",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize services: %v", err)
	}

	return &testEnv{sm: sm, db: db, publisher: publisher, redis: mr, ctx: context.Background()}
}

func (e *testEnv) registerTeacher(t *testing.T, name, email string) *models.UserSummary {
	t.Helper()
	teacher, err := e.sm.Auth().RegisterTeacher(e.ctx, &RegisterTeacherRequest{Name: name, Email: email, Password: "secret123"}, "")
	if err != nil {
		t.Fatalf("register teacher %s: %v", email, err)
	}
	return teacher
}

func (e *testEnv) registerStudent(t *testing.T, teacherID, name, email, studentID string) *models.RegisteredStudent {
	t.Helper()
	student, err := e.sm.Auth().RegisterStudent(e.ctx, &RegisterStudentRequest{
		Name:      name,
		Email:     email,
		Password:  "secret123",
		StudentID: studentID,
	}, teacherID)
	if err != nil {
		t.Fatalf("register student %s: %v", email, err)
	}
	return student
}

func (e *testEnv) createTest(t *testing.T, teacherID, title string, questions int, assignedTo ...string) *models.TestResponse {
	t.Helper()
	req := &CreateTestRequest{Title: title, AssignedTo: assignedTo}
	for i := 0; i < questions; i++ {
		req.Questions = append(req.Questions, QuestionRequest{Question: "question", Type: models.QuestionText})
	}
	test, err := e.sm.Teacher().CreateTest(e.ctx, req, teacherID)
	if err != nil {
		t.Fatalf("create test %s: %v", title, err)
	}
	return test
}

// insertBeforeCreate runs sql once, inside the statement's connection,
// right before the next INSERT into table.
func (e *testEnv) insertBeforeCreate(t *testing.T, table, sql string, args ...interface{}) {
	t.Helper()
	name := "test:insert_before_" + table
	done := false
	err := e.db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if done || tx.Statement.Table != table {
			return
		}
		done = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Exec(sql, args...).Error; err != nil {
			_ = tx.AddError(err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	t.Cleanup(func() { _ = e.db.Callback().Create().Remove(name) })
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"github.com/SAP-F-2025/testing-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/testing-service/internal/testutil"
)

func newRepo(t *testing.T) repositories.Repository {
	db := testutil.NewTestDB(t)
	return postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := &models.User{Name: "A", Email: "a@school.test", Password: "h", Role: models.RoleTeacher, IsActive: true}
	if err := repo.User().Create(ctx, nil, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}

	dup := &models.User{Name: "B", Email: "a@school.test", Password: "h", Role: models.RoleTeacher, IsActive: true}
	err := repo.User().Create(ctx, nil, dup)
	if !repositories.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	exists, err := repo.User().ExistsByEmail(ctx, nil, "a@school.test")
	if err != nil || !exists {
		t.Fatalf("ExistsByEmail = %v, %v", exists, err)
	}
}

func TestUserRepository_DeactivateAndActiveLookup(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	user := &models.User{Name: "T", Email: "t@school.test", Password: "h", Role: models.RoleTeacher, IsActive: true}
	if err := repo.User().Create(ctx, nil, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.User().GetActiveByEmail(ctx, nil, "t@school.test"); err != nil {
		t.Fatalf("active lookup before deactivate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.User().Deactivate(ctx, nil, user.ID); err != nil {
			t.Fatalf("deactivate #%d: %v", i+1, err)
		}
	}

	_, err := repo.User().GetActiveByEmail(ctx, nil, "t@school.test")
	if !repositories.IsNotFoundError(err) {
		t.Fatalf("expected not found for inactive user, got %v", err)
	}

	got, err := repo.User().GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.IsActive {
		t.Error("user should be inactive")
	}

	err = repo.User().Deactivate(ctx, nil, "missing")
	if !repositories.IsNotFoundError(err) {
		t.Fatalf("expected not found for missing user, got %v", err)
	}
}

func TestUserRepository_ListByRole(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	for _, u := range []*models.User{
		{Name: "T1", Email: "t1@school.test", Password: "h", Role: models.RoleTeacher, IsActive: true},
		{Name: "S1", Email: "s1@school.test", Password: "h", Role: models.RoleStudent, IsActive: true},
		{Name: "T2", Email: "t2@school.test", Password: "h", Role: models.RoleTeacher, IsActive: true},
	} {
		if err := repo.User().Create(ctx, nil, u); err != nil {
			t.Fatalf("create %s: %v", u.Email, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	teachers, err := repo.User().ListByRole(ctx, nil, models.RoleTeacher)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teachers) != 2 {
		t.Fatalf("expected 2 teachers, got %d", len(teachers))
	}
	if teachers[0].Name != "T2" {
		t.Errorf("expected newest first, got %s", teachers[0].Name)
	}
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		u := &models.User{Name: "S", Email: "s@school.test", Password: "h", Role: models.RoleStudent, IsActive: true}
		if err := tx.User().Create(ctx, nil, u); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	exists, err := repo.User().ExistsByEmail(ctx, nil, "s@school.test")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("user should have been rolled back")
	}
}

func TestTestRepository_AssignmentQueries(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	teacher := testutil.CreateUser(t, db, models.RoleTeacher, "T", "t@school.test", "")
	s1 := testutil.CreateStudent(t, db, teacher.ID, "S1", "s1@school.test", "ST-1")
	s2 := testutil.CreateStudent(t, db, teacher.ID, "S2", "s2@school.test", "ST-2")

	test := &models.Test{
		Title:      "Algebra",
		TeacherID:  teacher.ID,
		Questions:  []models.Question{{Question: "1+1", Type: models.QuestionText, Options: []string{}}},
		AssignedTo: []models.User{*s1},
	}
	if err := repo.Test().Create(ctx, nil, test); err != nil {
		t.Fatalf("create test: %v", err)
	}

	assigned, err := repo.Test().IsAssigned(ctx, nil, test.ID, s1.ID)
	if err != nil || !assigned {
		t.Fatalf("IsAssigned(s1) = %v, %v", assigned, err)
	}
	assigned, err = repo.Test().IsAssigned(ctx, nil, test.ID, s2.ID)
	if err != nil || assigned {
		t.Fatalf("IsAssigned(s2) = %v, %v", assigned, err)
	}

	tests, err := repo.Test().ListAssignedTo(ctx, nil, s1.ID)
	if err != nil {
		t.Fatalf("list assigned: %v", err)
	}
	if len(tests) != 1 || tests[0].Teacher.ID != teacher.ID {
		t.Fatalf("unexpected assigned tests: %+v", tests)
	}
	if len(tests[0].Questions) != 1 || tests[0].Questions[0].Question != "1+1" {
		t.Errorf("questions not round-tripped: %+v", tests[0].Questions)
	}

	full, err := repo.Test().GetByIDWithAssignees(ctx, nil, test.ID)
	if err != nil {
		t.Fatalf("get with assignees: %v", err)
	}
	if !full.IsAssignedTo(s1.ID) || full.IsAssignedTo(s2.ID) {
		t.Errorf("unexpected assignees: %+v", full.AssignedTo)
	}

	// assigning must not overwrite the student's user row
	stored, err := repo.User().GetByID(ctx, nil, s1.ID)
	if err != nil || stored.Name != "S1" {
		t.Fatalf("student user changed: %+v, %v", stored, err)
	}
}

func TestSubmissionRepository_UniquePerTestAndStudent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	teacher := testutil.CreateUser(t, db, models.RoleTeacher, "T", "t@school.test", "")
	student := testutil.CreateStudent(t, db, teacher.ID, "S", "s@school.test", "ST-1")
	test := testutil.CreateTest(t, db, teacher.ID, "Quiz", nil, student)

	first := &models.Submission{TestID: test.ID, StudentID: student.ID, SubmittedAt: time.Now()}
	if err := repo.Submission().Create(ctx, nil, first); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	second := &models.Submission{TestID: test.ID, StudentID: student.ID, SubmittedAt: time.Now()}
	if err := repo.Submission().Create(ctx, nil, second); !repositories.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	score := 75.0
	first.Score = &score
	first.Graded = true
	if err := repo.Submission().Update(ctx, nil, first); err != nil {
		t.Fatalf("update: %v", err)
	}

	byTests, err := repo.Submission().MapByStudentAndTests(ctx, nil, student.ID, []uint{test.ID, test.ID + 100})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	got, ok := byTests[test.ID]
	if !ok || !got.Graded || got.Score == nil || *got.Score != 75 {
		t.Fatalf("unexpected mapped submission: %+v", got)
	}
	if _, ok := byTests[test.ID+100]; ok {
		t.Error("unexpected entry for unknown test")
	}
}

func TestDashboardRepository_Counts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	t1 := testutil.CreateUser(t, db, models.RoleTeacher, "T1", "t1@school.test", "")
	t2 := testutil.CreateUser(t, db, models.RoleTeacher, "T2", "t2@school.test", "")
	s1 := testutil.CreateStudent(t, db, t1.ID, "S1", "s1@school.test", "ST-1")
	s2 := testutil.CreateStudent(t, db, t1.ID, "S2", "s2@school.test", "ST-2")
	testA := testutil.CreateTest(t, db, t1.ID, "A", nil, s1, s2)
	testutil.CreateTest(t, db, t1.ID, "B", nil, s1)
	testC := testutil.CreateTest(t, db, t2.ID, "C", nil, s1)

	if err := repo.User().Deactivate(ctx, nil, t2.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	score := 50.0
	for _, sub := range []*models.Submission{
		{TestID: testA.ID, StudentID: s1.ID, SubmittedAt: time.Now(), Graded: true, Score: &score},
		{TestID: testA.ID, StudentID: s2.ID, SubmittedAt: time.Now()},
		{TestID: testC.ID, StudentID: s1.ID, SubmittedAt: time.Now()},
	} {
		if err := repo.Submission().Create(ctx, nil, sub); err != nil {
			t.Fatalf("create submission: %v", err)
		}
	}

	admin, err := repo.Dashboard().GetAdminStats(ctx, nil)
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	if *admin != (models.AdminStats{ActiveTeachers: 1, TotalStudents: 2, TotalTests: 3}) {
		t.Errorf("admin stats = %+v", *admin)
	}

	teacher, err := repo.Dashboard().GetTeacherStats(ctx, nil, t1.ID)
	if err != nil {
		t.Fatalf("teacher stats: %v", err)
	}
	if *teacher != (models.TeacherDashboardStats{TotalStudents: 2, TotalTests: 2, TotalSubmissions: 2}) {
		t.Errorf("teacher stats = %+v", *teacher)
	}

	student, err := repo.Dashboard().GetStudentStats(ctx, nil, s1.ID)
	if err != nil {
		t.Fatalf("student stats: %v", err)
	}
	if *student != (models.StudentDashboardStats{TotalAssignedTests: 3, TotalSubmitted: 2, TotalGraded: 1}) {
		t.Errorf("student stats = %+v", *student)
	}
}

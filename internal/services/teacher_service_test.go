package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/models"
)

func TestTeacherService_CreateTest(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.registerTeacher(t, "Ada", "ada@school.test")
	s1 := env.registerStudent(t, teacher.ID, "Sam", "sam@school.test", "ST-1")
	s2 := env.registerStudent(t, teacher.ID, "Kim", "kim@school.test", "ST-2")

	test, err := env.sm.Teacher().CreateTest(env.ctx, &CreateTestRequest{
		Title: "  Fractions ",
		Questions: []QuestionRequest{
			{Question: "1/2 + 1/4?"},
			{Question: "Pick one", Type: models.QuestionMultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: "a"},
		},
		AssignedTo: []string{s1.ID, s2.ID, s1.ID},
	}, teacher.ID)
	if err != nil {
		t.Fatalf("create test: %v", err)
	}

	if test.Title != "Fractions" {
		t.Errorf("title = %q", test.Title)
	}
	if test.Questions[0].Type != models.QuestionText {
		t.Errorf("default question type = %q, want text", test.Questions[0].Type)
	}
	if test.Questions[0].Options == nil {
		t.Error("options should default to an empty list")
	}
	if len(test.AssignedTo) != 2 || test.AssignedTo[0].ID != s1.ID || test.AssignedTo[1].Name != "Kim" {
		t.Errorf("assignedTo not resolved and de-duplicated: %+v", test.AssignedTo)
	}

	tests, err := env.sm.Teacher().ListTests(env.ctx, teacher.ID)
	if err != nil {
		t.Fatalf("list tests: %v", err)
	}
	if len(tests) != 1 || len(tests[0].AssignedTo) != 2 {
		t.Fatalf("unexpected tests: %+v", tests)
	}
	if tests[0].Questions[1].CorrectAnswer != "a" {
		t.Error("teacher view should keep the correct answer")
	}

	if n := len(env.publisher.EventsOfType(events.TestCreated)); n != 1 {
		t.Errorf("expected 1 test.created event, got %d", n)
	}
}

func TestTeacherService_CreateTestValidation(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.registerTeacher(t, "Ada", "ada@school.test")
	other := env.registerTeacher(t, "Bob", "bob@school.test")

	tests := []struct {
		name  string
		req   CreateTestRequest
		field string
	}{
		{"missing title", CreateTestRequest{Title: "   "}, "title"},
		{"bad question type", CreateTestRequest{Title: "T", Questions: []QuestionRequest{{Question: "q", Type: "essay"}}}, "questions[0].type"},
		{"unknown assignee", CreateTestRequest{Title: "T", AssignedTo: []string{"missing"}}, "assignedTo[0]"},
		{"teacher as assignee", CreateTestRequest{Title: "T", AssignedTo: []string{other.ID}}, "assignedTo[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.sm.Teacher().CreateTest(env.ctx, &req, teacher.ID)
			var verr ValidationErrors
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if verr[0].Field != tt.field {
				t.Errorf("field = %s, want %s", verr[0].Field, tt.field)
			}
		})
	}

	if n := env.countRows(t, &models.Test{}); n != 0 {
		t.Errorf("no test should be stored, got %d", n)
	}
}

func TestTeacherService_ListStudents(t *testing.T) {
	env := newTestEnv(t)
	t1 := env.registerTeacher(t, "Ada", "ada@school.test")
	t2 := env.registerTeacher(t, "Bob", "bob@school.test")
	env.registerStudent(t, t1.ID, "Sam", "sam@school.test", "ST-1")
	env.registerStudent(t, t2.ID, "Kim", "kim@school.test", "ST-2")

	students, err := env.sm.Teacher().ListStudents(env.ctx, t1.ID)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
	if students[0].User.Name != "Sam" || students[0].User.Email != "sam@school.test" || students[0].StudentID != "ST-1" {
		t.Errorf("unexpected student: %+v", students[0])
	}
}

func TestTeacherService_SubmissionOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerTeacher(t, "Ada", "ada@school.test")
	intruder := env.registerTeacher(t, "Bob", "bob@school.test")
	student := env.registerStudent(t, owner.ID, "Sam", "sam@school.test", "ST-1")
	test := env.createTest(t, owner.ID, "Quiz", 1, student.ID)

	sub, err := env.sm.Student().SubmitTest(env.ctx, test.ID, &SubmitTestRequest{
		Answers: []AnswerRequest{{QuestionIndex: 0, Answer: "42"}},
	}, student.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var perr *PermissionError
	if _, err := env.sm.Teacher().ListSubmissions(env.ctx, test.ID, intruder.ID); !errors.As(err, &perr) {
		t.Fatalf("list by non-owner: expected PermissionError, got %v", err)
	}
	if _, err := env.sm.Teacher().ListSubmissions(env.ctx, test.ID+99, owner.ID); !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("list missing test: expected ErrTestNotFound, got %v", err)
	}

	score := 90.0
	_, err = env.sm.Teacher().GradeSubmission(env.ctx, sub.ID, &GradeSubmissionRequest{Score: &score}, intruder.ID)
	if !errors.As(err, &perr) {
		t.Fatalf("grade by non-owner: expected PermissionError, got %v", err)
	}

	var stored models.Submission
	if err := env.db.First(&stored, sub.ID).Error; err != nil {
		t.Fatalf("load submission: %v", err)
	}
	if stored.Graded || stored.Score != nil {
		t.Errorf("submission must stay ungraded: %+v", stored)
	}

	if _, err := env.sm.Teacher().GradeSubmission(env.ctx, sub.ID+99, &GradeSubmissionRequest{Score: &score}, owner.ID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("grade missing: expected ErrSubmissionNotFound, got %v", err)
	}

	list, err := env.sm.Teacher().ListSubmissions(env.ctx, test.ID, owner.ID)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(list) != 1 || list[0].Student == nil || list[0].Student.Email != "sam@school.test" {
		t.Errorf("unexpected submissions: %+v", list)
	}
}

func TestTeacherService_GradeValidationAndRegrade(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.registerTeacher(t, "Ada", "ada@school.test")
	student := env.registerStudent(t, teacher.ID, "Sam", "sam@school.test", "ST-1")
	test := env.createTest(t, teacher.ID, "Quiz", 1, student.ID)
	sub, err := env.sm.Student().SubmitTest(env.ctx, test.ID, &SubmitTestRequest{}, student.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	negative := -1.0
	for _, req := range []GradeSubmissionRequest{{}, {Score: &negative}} {
		req := req
		var verr ValidationErrors
		if _, err := env.sm.Teacher().GradeSubmission(env.ctx, sub.ID, &req, teacher.ID); !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}

	first, second := 60.0, 85.0
	feedback := "better"
	if _, err := env.sm.Teacher().GradeSubmission(env.ctx, sub.ID, &GradeSubmissionRequest{Score: &first}, teacher.ID); err != nil {
		t.Fatalf("first grade: %v", err)
	}
	graded, err := env.sm.Teacher().GradeSubmission(env.ctx, sub.ID, &GradeSubmissionRequest{Score: &second, Feedback: &feedback}, teacher.ID)
	if err != nil {
		t.Fatalf("regrade: %v", err)
	}
	if !graded.Graded || *graded.Score != 85 || *graded.Feedback != "better" {
		t.Errorf("unexpected regrade result: %+v", graded)
	}
	if n := len(env.publisher.EventsOfType(events.SubmissionGraded)); n != 2 {
		t.Errorf("expected 2 graded events, got %d", n)
	}
}

func TestExportService_ExportSubmissions(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.registerTeacher(t, "Ada", "ada@school.test")
	intruder := env.registerTeacher(t, "Bob", "bob@school.test")
	student := env.registerStudent(t, teacher.ID, "Sam", "sam@school.test", "ST-1")
	test := env.createTest(t, teacher.ID, "Quiz", 2, student.ID)

	_, err := env.sm.Student().SubmitTest(env.ctx, test.ID, &SubmitTestRequest{
		Answers: []AnswerRequest{{QuestionIndex: 1, Answer: "second"}},
	}, student.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var perr *PermissionError
	if _, err := env.sm.Export().ExportSubmissions(env.ctx, test.ID, intruder.ID); !errors.As(err, &perr) {
		t.Fatalf("expected PermissionError, got %v", err)
	}

	file, err := env.sm.Export().ExportSubmissions(env.ctx, test.ID, teacher.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.ContentType != xlsxContentType || file.Filename == "" {
		t.Errorf("unexpected file metadata: %s %s", file.Filename, file.ContentType)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(submissionsSheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if len(rows[0]) != len(submissionExportHeader)+2 {
		t.Errorf("header width = %d", len(rows[0]))
	}
	if rows[1][0] != "Sam" || rows[1][1] != "sam@school.test" {
		t.Errorf("unexpected student cells: %v", rows[1])
	}
	if got := rows[1][len(rows[1])-1]; got != "second" {
		t.Errorf("answer for question 2 = %q", got)
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"github.com/SAP-F-2025/testing-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	dashboard DashboardService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(
	repo repositories.Repository,
	dashboard DashboardService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) TeacherService {
	return &teacherService{
		repo:      repo,
		dashboard: dashboard,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== STUDENTS =====

func (s *teacherService) ListStudents(ctx context.Context, teacherID string) ([]models.StudentResponse, error) {
	students, err := s.repo.Student().ListByTeacher(ctx, nil, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	out := make([]models.StudentResponse, 0, len(students))
	for _, st := range students {
		out = append(out, models.NewStudentResponse(st))
	}
	return out, nil
}

// ===== TESTS =====

func (s *teacherService) CreateTest(ctx context.Context, req *CreateTestRequest, teacherID string) (*models.TestResponse, error) {
	s.logger.Info("Creating test", "teacher_id", teacherID, "title", req.Title)

	req.Title = strings.TrimSpace(req.Title)
	req.AssignedTo = dedupeIDs(req.AssignedTo)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	assignees, err := s.resolveAssignees(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	test := &models.Test{
		Title:       req.Title,
		Description: req.Description,
		Questions:   buildQuestions(req.Questions),
		TeacherID:   teacherID,
		DueDate:     req.DueDate,
		AssignedTo:  assignees,
	}
	if err := s.repo.Test().Create(ctx, nil, test); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	s.dashboard.InvalidateAdmin(ctx)
	s.dashboard.InvalidateTeacher(ctx, teacherID, req.AssignedTo...)
	publishEvent(ctx, s.publisher, s.logger, events.TestCreated, events.TestCreatedData{
		TestID:        test.ID,
		TeacherID:     teacherID,
		Title:         test.Title,
		QuestionCount: len(test.Questions),
		AssignedTo:    req.AssignedTo,
		DueDate:       test.DueDate,
	})

	resp := models.NewTestResponse(test)
	return &resp, nil
}

func (s *teacherService) ListTests(ctx context.Context, teacherID string) ([]models.TestResponse, error) {
	tests, err := s.repo.Test().ListByTeacher(ctx, nil, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}

	out := make([]models.TestResponse, 0, len(tests))
	for _, t := range tests {
		out = append(out, models.NewTestResponse(t))
	}
	return out, nil
}

// resolveAssignees loads the users in ids order; every id must be an existing student
func (s *teacherService) resolveAssignees(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	users, err := s.repo.User().GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignees: %w", err)
	}

	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var errs ValidationErrors
	out := make([]models.User, 0, len(ids))
	for i, id := range ids {
		u, ok := byID[id]
		if !ok || u.Role != models.RoleStudent {
			errs = errs.Add(fmt.Sprintf("assignedTo[%d]", i), "must reference an existing student", "student")
			continue
		}
		out = append(out, *u)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// buildQuestions applies defaults: type text, options empty
func buildQuestions(reqs []QuestionRequest) []models.Question {
	out := make([]models.Question, 0, len(reqs))
	for _, q := range reqs {
		qt := q.Type
		if qt == "" {
			qt = models.QuestionText
		}
		options := q.Options
		if options == nil {
			options = []string{}
		}
		out = append(out, models.Question{
			Question:      strings.TrimSpace(q.Question),
			Type:          qt,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out
}

// dedupeIDs drops repeated ids, keeping first occurrence order
func dedupeIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ===== SUBMISSIONS =====

func (s *teacherService) ListSubmissions(ctx context.Context, testID uint, teacherID string) ([]models.SubmissionResponse, error) {
	if _, err := loadOwnedTest(ctx, s.repo, testID, teacherID, "list_submissions"); err != nil {
		return nil, err
	}

	submissions, err := s.repo.Submission().ListByTest(ctx, nil, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]models.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		out = append(out, models.NewSubmissionResponse(sub).WithStudent(&sub.Student))
	}
	return out, nil
}

func (s *teacherService) GradeSubmission(ctx context.Context, submissionID uint, req *GradeSubmissionRequest, teacherID string) (*models.SubmissionResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	submission, err := s.repo.Submission().GetByIDWithTest(ctx, nil, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission.Test.TeacherID != teacherID {
		return nil, NewPermissionError(teacherID, submissionID, "submission", "grade", "test belongs to another teacher")
	}

	submission.Score = req.Score
	submission.Feedback = req.Feedback
	submission.Graded = true
	if err := s.repo.Submission().Update(ctx, nil, submission); err != nil {
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}

	s.logger.Info("Submission graded", "submission_id", submissionID, "teacher_id", teacherID, "score", *req.Score)
	s.dashboard.InvalidateTeacher(ctx, teacherID, submission.StudentID)
	publishEvent(ctx, s.publisher, s.logger, events.SubmissionGraded, events.SubmissionEventData{
		SubmissionID: submission.ID,
		TestID:       submission.TestID,
		StudentID:    submission.StudentID,
		TeacherID:    teacherID,
		Score:        submission.Score,
	})

	resp := models.NewSubmissionResponse(submission)
	return &resp, nil
}

// loadOwnedTest loads a test and checks the caller owns it
func loadOwnedTest(ctx context.Context, repo repositories.Repository, testID uint, teacherID, action string) (*models.Test, error) {
	test, err := repo.Test().GetByID(ctx, nil, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	if test.TeacherID != teacherID {
		return nil, NewPermissionError(teacherID, testID, "test", action, "not owner")
	}
	return test, nil
}

func (s *teacherService) DashboardStats(ctx context.Context, teacherID string) (*models.TeacherDashboardStats, error) {
	return s.dashboard.TeacherStats(ctx, teacherID)
}

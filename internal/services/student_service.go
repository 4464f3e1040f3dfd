package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/testing-service/internal/events"
	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
	"github.com/SAP-F-2025/testing-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	dashboard DashboardService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewStudentService(
	repo repositories.Repository,
	dashboard DashboardService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) StudentService {
	return &studentService{
		repo:      repo,
		dashboard: dashboard,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

// ListAssignedTests returns the caller's tests annotated with their own submission status
func (s *studentService) ListAssignedTests(ctx context.Context, studentID string) ([]models.StudentTestResponse, error) {
	tests, err := s.repo.Test().ListAssignedTo(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tests: %w", err)
	}

	testIDs := make([]uint, 0, len(tests))
	for _, t := range tests {
		testIDs = append(testIDs, t.ID)
	}

	submissions, err := s.repo.Submission().MapByStudentAndTests(ctx, nil, studentID, testIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	out := make([]models.StudentTestResponse, 0, len(tests))
	for _, t := range tests {
		out = append(out, models.NewStudentTestResponse(t, submissions[t.ID]))
	}
	return out, nil
}

func (s *studentService) SubmitTest(ctx context.Context, testID uint, req *SubmitTestRequest, studentID string) (*models.SubmissionResponse, error) {
	s.logger.Info("Submitting test", "test_id", testID, "student_id", studentID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	test, err := s.repo.Test().GetByID(ctx, nil, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	assigned, err := s.repo.Test().IsAssigned(ctx, nil, testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	exists, err := s.repo.Submission().ExistsByTestAndStudent(ctx, nil, testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if exists {
		return nil, ErrTestAlreadySubmitted
	}

	answers, err := buildAnswers(req.Answers, len(test.Questions))
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		TestID:      testID,
		StudentID:   studentID,
		Answers:     answers,
		SubmittedAt: s.now().UTC(),
		Graded:      false,
	}
	if err := s.repo.Submission().Create(ctx, nil, submission); err != nil {
		// lost a race with a concurrent submit
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrTestAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.dashboard.InvalidateTeacher(ctx, test.TeacherID, studentID)
	publishEvent(ctx, s.publisher, s.logger, events.SubmissionSubmitted, events.SubmissionEventData{
		SubmissionID: submission.ID,
		TestID:       testID,
		StudentID:    studentID,
		TeacherID:    test.TeacherID,
	})

	resp := models.NewSubmissionResponse(submission)
	return &resp, nil
}

// buildAnswers checks every index addresses one of questionCount questions
func buildAnswers(reqs []AnswerRequest, questionCount int) ([]models.Answer, error) {
	var errs ValidationErrors
	out := make([]models.Answer, 0, len(reqs))
	for i, a := range reqs {
		if a.QuestionIndex < 0 || a.QuestionIndex >= questionCount {
			errs = errs.Add(fmt.Sprintf("answers[%d].questionIndex", i), "must address an existing question", "question_index")
			continue
		}
		out = append(out, models.Answer{QuestionIndex: a.QuestionIndex, Answer: a.Answer})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s *studentService) ListSubmissions(ctx context.Context, studentID string) ([]models.SubmissionResponse, error) {
	submissions, err := s.repo.Submission().ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]models.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		out = append(out, models.NewSubmissionResponse(sub).WithTest(&sub.Test))
	}
	return out, nil
}

func (s *studentService) DashboardStats(ctx context.Context, studentID string) (*models.StudentDashboardStats, error) {
	return s.dashboard.StudentStats(ctx, studentID)
}

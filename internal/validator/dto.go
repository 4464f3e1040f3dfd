package validator

import (
	"time"

	"github.com/SAP-F-2025/testing-service/internal/models"
)

// ===== AUTH =====

// RegisterTeacherRequest is used by both self-registration and admin creation
type RegisterTeacherRequest struct {
	Name     string `json:"name" validate:"required,not_blank,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72,max_bytes=72"`
}

type RegisterStudentRequest struct {
	Name      string  `json:"name" validate:"required,not_blank,max=100"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=6,max=72,max_bytes=72"`
	StudentID string  `json:"studentId" validate:"required,not_blank,max=100"`
	Grade     *string `json:"grade" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ===== TESTS =====

type QuestionRequest struct {
	Question      string              `json:"question" validate:"required,not_blank"`
	Type          models.QuestionType `json:"type" validate:"omitempty,question_type"`
	Options       []string            `json:"options"`
	CorrectAnswer string              `json:"correctAnswer"`
}

type CreateTestRequest struct {
	Title       string            `json:"title" validate:"required,not_blank,max=200"`
	Description string            `json:"description" validate:"max=2000"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
	AssignedTo  []string          `json:"assignedTo" validate:"dive,required"`
	DueDate     *time.Time        `json:"dueDate"`
}

// ===== SUBMISSIONS =====

type AnswerRequest struct {
	QuestionIndex int    `json:"questionIndex" validate:"min=0"`
	Answer        string `json:"answer"`
}

type SubmitTestRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"dive"`
}

type GradeSubmissionRequest struct {
	Score    *float64 `json:"score" validate:"required,min=0"`
	Feedback *string  `json:"feedback" validate:"omitempty,max=5000"`
}

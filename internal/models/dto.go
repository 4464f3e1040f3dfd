package models

import (
	"time"
)

// ===== USER DTOs =====

// UserSummary is the public projection of a user embedded in other responses
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserSummary(u *User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type AuthUser struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// RegisteredStudent carries the initial plaintext password back to the registering teacher
type RegisteredStudent struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StudentID string  `json:"studentId"`
	Email     string  `json:"email"`
	Grade     *string `json:"grade,omitempty"`
	Password  string  `json:"password"`
}

type StudentResponse struct {
	ID        uint        `json:"id"`
	StudentID string      `json:"studentId"`
	Grade     *string     `json:"grade,omitempty"`
	TeacherID string      `json:"teacherId"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewStudentResponse(s *Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		StudentID: s.StudentID,
		Grade:     s.Grade,
		TeacherID: s.TeacherID,
		User:      NewUserSummary(&s.User),
		CreatedAt: s.CreatedAt,
	}
}

// ===== TEST DTOs =====

type TestResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []Question    `json:"questions"`
	TeacherID   string        `json:"teacherId"`
	AssignedTo  []UserSummary `json:"assignedTo"`
	DueDate     *time.Time    `json:"dueDate"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func NewTestResponse(t *Test) TestResponse {
	assigned := make([]UserSummary, 0, len(t.AssignedTo))
	for i := range t.AssignedTo {
		assigned = append(assigned, NewUserSummary(&t.AssignedTo[i]))
	}

	questions := []Question(t.Questions)
	if questions == nil {
		questions = []Question{}
	}

	return TestResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Questions:   questions,
		TeacherID:   t.TeacherID,
		AssignedTo:  assigned,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
	}
}

// StudentTestResponse is a test as seen by an assigned student, annotated with their submission status
type StudentTestResponse struct {
	ID           uint        `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Questions    []Question  `json:"questions"`
	Teacher      UserSummary `json:"teacher"`
	DueDate      *time.Time  `json:"dueDate"`
	CreatedAt    time.Time   `json:"createdAt"`
	Submitted    bool        `json:"submitted"`
	SubmissionID *uint       `json:"submissionId"`
	Graded       bool        `json:"graded"`
	Score        *float64    `json:"score"`
}

func NewStudentTestResponse(t *Test, submission *Submission) StudentTestResponse {
	questions := make([]Question, 0, len(t.Questions))
	for _, q := range t.Questions {
		q.CorrectAnswer = ""
		questions = append(questions, q)
	}

	resp := StudentTestResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Questions:   questions,
		Teacher:     NewUserSummary(&t.Teacher),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
	}

	if submission != nil {
		id := submission.ID
		resp.Submitted = true
		resp.SubmissionID = &id
		resp.Graded = submission.Graded
		resp.Score = submission.Score
	}

	return resp
}

type TestSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ===== SUBMISSION DTOs =====

type SubmissionResponse struct {
	ID          uint         `json:"id"`
	TestID      uint         `json:"testId"`
	StudentID   string       `json:"studentId"`
	Answers     []Answer     `json:"answers"`
	Score       *float64     `json:"score"`
	Feedback    *string      `json:"feedback"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Graded      bool         `json:"graded"`
	Student     *UserSummary `json:"student,omitempty"`
	Test        *TestSummary `json:"test,omitempty"`
}

func NewSubmissionResponse(s *Submission) SubmissionResponse {
	answers := []Answer(s.Answers)
	if answers == nil {
		answers = []Answer{}
	}

	return SubmissionResponse{
		ID:          s.ID,
		TestID:      s.TestID,
		StudentID:   s.StudentID,
		Answers:     answers,
		Score:       s.Score,
		Feedback:    s.Feedback,
		SubmittedAt: s.SubmittedAt,
		Graded:      s.Graded,
	}
}

// WithStudent attaches the resolved student identity
func (r SubmissionResponse) WithStudent(u *User) SubmissionResponse {
	summary := NewUserSummary(u)
	r.Student = &summary
	return r
}

// WithTest attaches the resolved test title and description
func (r SubmissionResponse) WithTest(t *Test) SubmissionResponse {
	r.Test = &TestSummary{ID: t.ID, Title: t.Title, Description: t.Description}
	return r
}

// ===== STATISTICS DTOs =====

type AdminStats struct {
	ActiveTeachers int64 `json:"activeTeachers"`
	TotalStudents  int64 `json:"totalStudents"`
	TotalTests     int64 `json:"totalTests"`
}

type TeacherDashboardStats struct {
	TotalStudents    int64 `json:"totalStudents"`
	TotalTests       int64 `json:"totalTests"`
	TotalSubmissions int64 `json:"totalSubmissions"`
}

type StudentDashboardStats struct {
	TotalAssignedTests int64 `json:"totalAssignedTests"`
	TotalSubmitted     int64 `json:"totalSubmitted"`
	TotalGraded        int64 `json:"totalGraded"`
}
